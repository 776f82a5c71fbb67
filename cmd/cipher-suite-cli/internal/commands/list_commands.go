package commands

import (
	"fmt"

	"github.com/transportsec/cipher-suite/internal/infrastructure/cryptography"
	"github.com/transportsec/cipher-suite/internal/pkg/logger"

	"github.com/spf13/cobra"
)

// ListCommandHandler encapsulates logic for listing the registered cipher
// descriptors via CLI.
type ListCommandHandler struct {
	logger logger.Logger
}

// NewListCommandHandler initializes and returns a ListCommandHandler
// instance with a configured logger.
func NewListCommandHandler() (*ListCommandHandler, error) {
	loggerInstance, err := setupLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to setup logger: %w", err)
	}

	return &ListCommandHandler{
		logger: loggerInstance,
	}, nil
}

// ListCmd prints every registered cipher descriptor with its key, IV and tag
// geometry.
func (commandHandler *ListCommandHandler) ListCmd(cmd *cobra.Command, _ []string) error {
	for _, name := range cryptography.List() {
		t, err := cryptography.Lookup(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(),
			"%-20s algorithm=%s key=%d..%d bytes iv=%d bytes tag=%d bytes vectors=%d\n",
			t.Name, t.Algorithm, t.MinKeyLen, t.MaxKeyLen, t.IVLen, t.MaxTagLen, len(t.TestCases))
	}
	return nil
}

// InitListCommands registers the list command with the root command.
func InitListCommands(rootCmd *cobra.Command) error {
	handler, err := NewListCommandHandler()
	if err != nil {
		return fmt.Errorf("failed to initialize list command handler: %w", err)
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List the registered cipher descriptors",
		RunE:  handler.ListCmd,
	}
	rootCmd.AddCommand(listCmd)

	return nil
}
