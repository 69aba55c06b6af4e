package utils

import (
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// SetupLogging routes the standard logger. With debug off everything is
// discarded since the interactive UI owns the terminal; with debug on logs
// are appended to path. The returned file is nil when logging is disabled.
func SetupLogging(debug bool, path string) (*os.File, error) {
	if !debug {
		log.SetOutput(io.Discard)
		return nil, nil
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errors.Wrapf(err, "[SetupLogging] failed to create dir: %+v", dir)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, errors.Wrapf(err, "[SetupLogging] failed to open file: %+v", path)
	}
	log.SetOutput(f)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	return f, nil
}
