// Package main is the entry point for the cipher-suite-cli application.
// It initializes the root command and registers the sub-commands (list,
// selftest, bench, keygen) for the CLI, then executes the command-line
// interface.
package main

import (
	"fmt"
	"log"
	"os"

	commands "github.com/transportsec/cipher-suite/cmd/cipher-suite-cli/internal/commands"

	"github.com/spf13/cobra"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func run() error {
	rootCmd := &cobra.Command{
		Use:   "cipher-suite-cli",
		Short: "Symmetric-cipher conformance and benchmark tool",
		Long: `cipher-suite-cli drives the pluggable symmetric-cipher layer from the
command line. It lists the registered cipher descriptors, runs the
known-answer and randomized-invertibility conformance suite against them,
measures sustained encryption throughput, and generates random key files
for benchmarking.`,
	}

	if err := initializeCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize commands: %w", err)
	}

	if err := rootCmd.Execute(); err != nil {
		return fmt.Errorf("command execution failed: %w", err)
	}

	return nil
}

// initializeCommands registers all command groups with the root command.
func initializeCommands(rootCmd *cobra.Command) error {
	if err := commands.InitListCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize list commands: %w", err)
	}

	if err := commands.InitSelfTestCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize selftest commands: %w", err)
	}

	if err := commands.InitBenchCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize bench commands: %w", err)
	}

	if err := commands.InitKeygenCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize keygen commands: %w", err)
	}

	return nil
}

// init sets up any necessary initialization before main runs.
func init() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stderr)
}
