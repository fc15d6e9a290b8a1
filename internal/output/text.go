// Package output writes the final transcript to disk.
package output

import (
	"fmt"
	"os"
	"path/filepath"
)

// WriteTextFile writes text as the complete content of path, creating
// missing parent directories and overwriting any existing file.
func WriteTextFile(path, text string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("write transcript: %w", err)
	}
	return nil
}
