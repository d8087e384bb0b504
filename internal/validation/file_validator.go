// Package validation provides the input checks shared by the batch tools.
package validation

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// FileValidator checks tool inputs before any expensive work starts, so
// path mistakes surface as one clear error instead of a mid-run failure.
type FileValidator struct {
	logger *slog.Logger
}

// NewFileValidator creates a validator.
func NewFileValidator(logger *slog.Logger) *FileValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileValidator{logger: logger}
}

// ValidateInputFile checks that path exists, is a regular non-empty file,
// and carries one of the allowed extensions.
func (v *FileValidator) ValidateInputFile(path string, extensions ...string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("input file does not exist: %s", path)
	}
	if err != nil {
		return fmt.Errorf("stat input file %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("input path is a directory, not a file: %s", path)
	}
	if info.Size() == 0 {
		return fmt.Errorf("input file is empty: %s", path)
	}

	if len(extensions) > 0 {
		ext := strings.ToLower(filepath.Ext(path))
		ok := false
		for _, allowed := range extensions {
			if ext == allowed {
				ok = true
				break
			}
		}
		if !ok {
			return fmt.Errorf("input file %s has extension %q, want one of %s",
				path, ext, strings.Join(extensions, ", "))
		}
	}

	v.logger.Debug("input file validated", "path", path, "size", info.Size())
	return nil
}

// ValidateOutputPath checks that the output file's parent directory exists
// or can be created, without touching the file itself.
func (v *FileValidator) ValidateOutputPath(path string) error {
	if path == "" {
		return fmt.Errorf("output path is empty")
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create output directory %s: %w", dir, err)
	}
	return nil
}
