package commands

import (
	"crypto/rand"
	"fmt"
	"os"
	"path/filepath"

	"github.com/transportsec/cipher-suite/internal/app"
	"github.com/transportsec/cipher-suite/internal/domain/cipher"
	"github.com/transportsec/cipher-suite/internal/infrastructure/cryptography"
	"github.com/transportsec/cipher-suite/internal/pkg/logger"

	"github.com/spf13/cobra"
)

// BenchCommandHandler encapsulates logic for measuring cipher throughput via
// CLI.
type BenchCommandHandler struct {
	benchmark cipher.BenchmarkService
	logger    logger.Logger
}

// NewBenchCommandHandler initializes and returns a BenchCommandHandler
// instance with configured logger and benchmark service.
func NewBenchCommandHandler() (*BenchCommandHandler, error) {
	loggerInstance, err := setupLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to setup logger: %w", err)
	}

	benchmark, err := app.NewBenchmarkService(loggerInstance)
	if err != nil {
		return nil, fmt.Errorf("failed to create benchmark service: %w", err)
	}

	return &BenchCommandHandler{
		benchmark: benchmark,
		logger:    loggerInstance,
	}, nil
}

// BenchCmd constructs and keys an instance of the named cipher and reports
// its sustained encryption throughput in bits per second.
func (commandHandler *BenchCommandHandler) BenchCmd(cmd *cobra.Command, _ []string) error {
	name, err := cmd.Flags().GetString("cipher")
	if err != nil {
		return fmt.Errorf("invalid cipher flag: %w", err)
	}
	size, err := cmd.Flags().GetInt("size")
	if err != nil {
		return fmt.Errorf("invalid size flag: %w", err)
	}
	trials, err := cmd.Flags().GetInt("trials")
	if err != nil {
		return fmt.Errorf("invalid trials flag: %w", err)
	}
	keyFile, err := cmd.Flags().GetString("key-file")
	if err != nil {
		return fmt.Errorf("invalid key-file flag: %w", err)
	}

	t, err := cryptography.Lookup(name)
	if err != nil {
		return err
	}

	key, err := commandHandler.loadOrGenerateKey(t, keyFile)
	if err != nil {
		return err
	}

	c, err := cipher.New(t, len(key), t.MaxTagLen)
	if err != nil {
		return fmt.Errorf("failed to construct %s instance: %w", name, err)
	}
	defer func() {
		if err := c.Close(); err != nil {
			commandHandler.logger.Warn("failed to close cipher instance: ", err)
		}
	}()

	if err := c.Init(key); err != nil {
		return fmt.Errorf("failed to key %s instance: %w", name, err)
	}

	bps := commandHandler.benchmark.BitsPerSecond(c, size, trials)
	if bps == 0 {
		return fmt.Errorf("could not measure throughput for %s (run failed or too fast to time)", name)
	}

	commandHandler.logger.Info(name, ": ", bps, " bits per second (", size, "-byte payload, ", trials, " trials)")
	return nil
}

// loadOrGenerateKey reads the benchmark key from keyFile when given,
// otherwise draws a random key of the descriptor's maximum length.
func (commandHandler *BenchCommandHandler) loadOrGenerateKey(t *cipher.Type, keyFile string) ([]byte, error) {
	if keyFile != "" {
		key, err := os.ReadFile(filepath.Clean(keyFile))
		if err != nil {
			return nil, fmt.Errorf("failed to read key file: %w", err)
		}
		return key, nil
	}

	// Benchmark keys face no peer, but they are still drawn from the
	// production source; testrand is reserved for the conformance suite.
	key := make([]byte, t.MaxKeyLen)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("failed to generate benchmark key: %w", err)
	}
	return key, nil
}

// InitBenchCommands registers the bench command with the root command.
func InitBenchCommands(rootCmd *cobra.Command) error {
	handler, err := NewBenchCommandHandler()
	if err != nil {
		return fmt.Errorf("failed to initialize bench command handler: %w", err)
	}

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "Measure sustained encryption throughput of a cipher",
		RunE:  handler.BenchCmd,
	}
	benchCmd.Flags().StringP("cipher", "c", "", "Cipher name to benchmark")
	benchCmd.Flags().Int("size", 1024, "Payload size in bytes")
	benchCmd.Flags().Int("trials", 10000, "Number of encryption trials")
	benchCmd.Flags().String("key-file", "", "Key file to use (default: random key)")
	if err := benchCmd.MarkFlagRequired("cipher"); err != nil {
		return fmt.Errorf("failed to mark cipher flag required: %w", err)
	}
	rootCmd.AddCommand(benchCmd)

	return nil
}
