package fsutil

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	dirPermUserGroupRX = 0o750
	filePermUserRW     = 0o644
)

// Writer operations.

// WriteFile writes content to output, creating missing parent directories and
// replacing an existing file. A leading ~/ in output is expanded.
//
// Failures other than an empty path are returned as *WriteError.
func WriteFile(output, content string) (string, error) {
	if output == "" {
		return "", ErrEmptyOutputPath
	}

	path, err := ExpandHomePath(output)
	if err != nil {
		return "", &WriteError{Path: output, Err: err}
	}

	dir := filepath.Dir(path)

	err = os.MkdirAll(dir, dirPermUserGroupRX)
	if err != nil {
		return "", &WriteError{Path: output, Err: fmt.Errorf("failed to create directory %s: %w", dir, err)}
	}

	err = os.WriteFile(path, []byte(content), filePermUserRW)
	if err != nil {
		return "", &WriteError{Path: output, Err: err}
	}

	return path, nil
}
