//go:build unit
// +build unit

package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/transportsec/cipher-suite/internal/pkg/testutil"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupRootCommand builds a fresh root command with every sub-command
// registered, so flag state never leaks between tests.
func setupRootCommand(t *testing.T) (*cobra.Command, *bytes.Buffer) {
	t.Helper()

	rootCmd := &cobra.Command{Use: "cipher-suite-cli", SilenceUsage: true}
	require.NoError(t, InitListCommands(rootCmd))
	require.NoError(t, InitSelfTestCommands(rootCmd))
	require.NoError(t, InitBenchCommands(rootCmd))
	require.NoError(t, InitKeygenCommands(rootCmd))

	out := &bytes.Buffer{}
	rootCmd.SetOut(out)
	rootCmd.SetErr(out)
	return rootCmd, out
}

func TestListCmd(t *testing.T) {
	rootCmd, out := setupRootCommand(t)
	rootCmd.SetArgs([]string{"list"})

	require.NoError(t, rootCmd.Execute())

	for _, name := range []string{"null", "aes-ctr-128", "aes-ctr-256", "aes-gcm-128", "aes-gcm-256", "chacha20-poly1305"} {
		assert.Contains(t, out.String(), name)
	}
}

func TestSelfTestCmd(t *testing.T) {
	t.Run("NamedCipher", func(t *testing.T) {
		rootCmd, _ := setupRootCommand(t)
		rootCmd.SetArgs([]string{"selftest", "--cipher", "aes-gcm-128"})
		assert.NoError(t, rootCmd.Execute())
	})

	t.Run("AllCiphersSkipUncheckable", func(t *testing.T) {
		// aes-ctr-256 carries no vectors; the all-ciphers run must skip it
		// rather than fail.
		rootCmd, _ := setupRootCommand(t)
		rootCmd.SetArgs([]string{"selftest"})
		assert.NoError(t, rootCmd.Execute())
	})

	t.Run("NamedUncheckableCipherFails", func(t *testing.T) {
		rootCmd, _ := setupRootCommand(t)
		rootCmd.SetArgs([]string{"selftest", "--cipher", "aes-ctr-256"})
		assert.Error(t, rootCmd.Execute())
	})

	t.Run("UnknownCipherFails", func(t *testing.T) {
		rootCmd, _ := setupRootCommand(t)
		rootCmd.SetArgs([]string{"selftest", "--cipher", "aes-xts-512"})
		assert.Error(t, rootCmd.Execute())
	})
}

func TestBenchCmd(t *testing.T) {
	t.Run("RandomKey", func(t *testing.T) {
		rootCmd, _ := setupRootCommand(t)
		rootCmd.SetArgs([]string{"bench", "--cipher", "aes-gcm-128", "--size", "1024", "--trials", "64"})
		assert.NoError(t, rootCmd.Execute())
	})

	t.Run("KeyFile", func(t *testing.T) {
		keyFilePath := filepath.Join(t.TempDir(), "bench-key.bin")
		require.NoError(t, testutil.CreateTestFile(keyFilePath, bytes.Repeat([]byte{0x42}, 16)))

		rootCmd, _ := setupRootCommand(t)
		rootCmd.SetArgs([]string{"bench", "--cipher", "aes-gcm-128", "--size", "1024", "--trials", "64", "--key-file", keyFilePath})
		assert.NoError(t, rootCmd.Execute())
	})

	t.Run("KeyFileOfWrongLengthFails", func(t *testing.T) {
		keyFilePath := filepath.Join(t.TempDir(), "short-key.bin")
		require.NoError(t, testutil.CreateTestFile(keyFilePath, []byte{1, 2, 3}))

		rootCmd, _ := setupRootCommand(t)
		rootCmd.SetArgs([]string{"bench", "--cipher", "aes-gcm-128", "--key-file", keyFilePath})
		assert.Error(t, rootCmd.Execute())
	})
}

func TestKeygenCmd(t *testing.T) {
	keyDir := t.TempDir()

	rootCmd, _ := setupRootCommand(t)
	rootCmd.SetArgs([]string{"keygen", "--cipher", "chacha20-poly1305", "--key-dir", keyDir})
	require.NoError(t, rootCmd.Execute())

	entries, err := os.ReadDir(keyDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, strings.HasSuffix(entries[0].Name(), "-chacha20-poly1305-key.bin"))

	key, err := os.ReadFile(filepath.Join(keyDir, entries[0].Name()))
	require.NoError(t, err)
	assert.Len(t, key, 32)
}
