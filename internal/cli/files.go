package cli

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/afero"
)

// readInput loads the definition to upload.
func readInput(fs afero.Fs, path string) ([]byte, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, newUsageError(fmt.Sprintf("cannot read input %q: %v", path, err))
	}
	return data, nil
}

// writeOutput stores content at path, creating parent directories. An empty
// path or "-" writes to stdout instead.
func writeOutput(fs afero.Fs, stdout io.Writer, path, content string) error {
	if path == "" || path == "-" {
		_, err := io.WriteString(stdout, content)
		return err
	}

	if err := fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return newUsageError(fmt.Sprintf("cannot create parent directory for %s: %v", path, err))
	}

	// Atomic write via temp + rename
	tmp := path + ".tmp"
	if err := afero.WriteFile(fs, tmp, []byte(content), 0o644); err != nil {
		return newUsageError(fmt.Sprintf("cannot write temp file: %v\nHint: choose a different --output or check directory permissions.", err))
	}
	if err := fs.Rename(tmp, path); err != nil {
		_ = fs.Remove(tmp)
		return newUsageError(fmt.Sprintf("cannot place file at %s: %v", path, err))
	}
	return nil
}
