package testutil

import (
	"fmt"
	"os"
)

// CreateTestFile writes content to fileName with owner-only permissions, for
// tests that need fixture files such as benchmark keys on disk.
func CreateTestFile(fileName string, content []byte) error {
	err := os.WriteFile(fileName, content, 0600)
	if err != nil {
		return fmt.Errorf("failed to create test file: %w", err)
	}
	return nil
}
