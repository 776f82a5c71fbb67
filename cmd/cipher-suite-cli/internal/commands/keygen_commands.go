package commands

import (
	"crypto/rand"
	"fmt"
	"os"
	"path/filepath"

	"github.com/transportsec/cipher-suite/internal/infrastructure/cryptography"
	"github.com/transportsec/cipher-suite/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// KeygenCommandHandler encapsulates logic for generating benchmark key files
// via CLI.
type KeygenCommandHandler struct {
	logger logger.Logger
}

// NewKeygenCommandHandler initializes and returns a KeygenCommandHandler
// instance with a configured logger.
func NewKeygenCommandHandler() (*KeygenCommandHandler, error) {
	loggerInstance, err := setupLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to setup logger: %w", err)
	}

	return &KeygenCommandHandler{
		logger: loggerInstance,
	}, nil
}

// KeygenCmd generates a random key sized for the named cipher and persists
// it in the selected directory.
func (commandHandler *KeygenCommandHandler) KeygenCmd(cmd *cobra.Command, _ []string) error {
	name, err := cmd.Flags().GetString("cipher")
	if err != nil {
		return fmt.Errorf("invalid cipher flag: %w", err)
	}
	keyDir, err := cmd.Flags().GetString("key-dir")
	if err != nil {
		return fmt.Errorf("invalid key-dir flag: %w", err)
	}

	t, err := cryptography.Lookup(name)
	if err != nil {
		return err
	}

	uniqueID := uuid.New()

	key := make([]byte, t.MaxKeyLen)
	if _, err := rand.Read(key); err != nil {
		return fmt.Errorf("failed to generate key: %w", err)
	}

	keyFilePath := filepath.Join(keyDir, fmt.Sprintf("%s-%s-key.bin", uniqueID, name))
	if err := os.WriteFile(keyFilePath, key, 0600); err != nil {
		return fmt.Errorf("failed to write key file: %w", err)
	}

	commandHandler.logger.Info(name, " key saved to ", keyFilePath)
	return nil
}

// InitKeygenCommands registers the keygen command with the root command.
func InitKeygenCommands(rootCmd *cobra.Command) error {
	handler, err := NewKeygenCommandHandler()
	if err != nil {
		return fmt.Errorf("failed to initialize keygen command handler: %w", err)
	}

	keygenCmd := &cobra.Command{
		Use:   "keygen",
		Short: "Generate a random key file for a cipher",
		RunE:  handler.KeygenCmd,
	}
	keygenCmd.Flags().StringP("cipher", "c", "", "Cipher name to size the key for")
	keygenCmd.Flags().String("key-dir", ".", "Directory to write the key file to")
	if err := keygenCmd.MarkFlagRequired("cipher"); err != nil {
		return fmt.Errorf("failed to mark cipher flag required: %w", err)
	}
	rootCmd.AddCommand(keygenCmd)

	return nil
}
