package docs

import (
	"fmt"
	"os"
)

// WriteFile writes documentation content to path atomically: the
// content goes to a temp file in the same directory first, then a
// rename replaces the target. A crash mid-write never leaves a
// half-written README behind.
func WriteFile(path, content string) error {
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write documentation: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write documentation: %w", err)
	}
	return nil
}
