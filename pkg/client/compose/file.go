package compose

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-wordwrap"
)

// Compose file errors.
var (
	// ErrFileNotFound is returned when an explicitly named compose file does not exist.
	ErrFileNotFound = errors.New("no such file or directory")
	// ErrNoComposeFile is returned when no default compose file exists in the directory.
	ErrNoComposeFile = errors.New("can't find a suitable configuration file in this directory")
)

// fileErrorExitCode is the CLI exit code for missing or unreadable compose files.
const fileErrorExitCode = 14

// hintWidth is the column at which the supported filenames hint wraps.
const hintWidth = 80

// DefaultFileNames lists the files searched, in order, when no file is given.
//
//nolint:gochecknoglobals // Fixed search order.
var DefaultFileNames = []string{
	"compose.yaml",
	"compose.yml",
	"docker-compose.yaml",
	"docker-compose.yml",
	"docker/compose.yaml",
	"docker/compose.yml",
	"docker/docker-compose.yaml",
	"docker/docker-compose.yml",
}

// FileError reports a compose file that could not be located or read.
type FileError struct {
	Path string
	Hint string
	Err  error
}

// Error implements the error interface.
func (e *FileError) Error() string {
	message := e.Err.Error()
	if e.Path != "" {
		message = fmt.Sprintf("%s: '%s'", message, e.Path)
	}

	if e.Hint != "" {
		message += "\n" + e.Hint
	}

	return message
}

// Unwrap returns the underlying error.
func (e *FileError) Unwrap() error {
	return e.Err
}

// ExitCode returns the CLI exit code for file lookup failures.
func (e *FileError) ExitCode() int {
	return fileErrorExitCode
}

// FindFile resolves the compose file to use. An explicit path must exist. Otherwise
// DefaultFileNames are searched relative to dir; when several exist the first one is
// returned along with a warning naming all of them.
func FindFile(dir, explicit string) (string, string, error) {
	if explicit != "" {
		path := explicit
		if !filepath.IsAbs(path) {
			path = filepath.Join(dir, path)
		}

		if _, err := os.Stat(path); err != nil {
			return "", "", &FileError{Path: explicit, Err: ErrFileNotFound}
		}

		return explicit, "", nil
	}

	var found []string

	for _, name := range DefaultFileNames {
		if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
			found = append(found, name)
		}
	}

	switch len(found) {
	case 0:
		hint := "Are you in the right directory?\n\n" + wordwrap.WrapString(
			"Supported filenames: "+strings.Join(DefaultFileNames, ", "),
			hintWidth,
		)

		return "", "", &FileError{Err: ErrNoComposeFile, Hint: hint}
	case 1:
		return found[0], "", nil
	default:
		warning := fmt.Sprintf(
			"Found multiple config files with supported names: %s\nUsing %s",
			strings.Join(found, ", "),
			found[0],
		)

		return found[0], warning, nil
	}
}

// ReadFile finds the compose file like FindFile and returns its content.
func ReadFile(dir, explicit string) (string, string, error) {
	name, warning, err := FindFile(dir, explicit)
	if err != nil {
		return "", "", err
	}

	path := name
	if !filepath.IsAbs(path) {
		path = filepath.Join(dir, path)
	}

	content, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return "", warning, &FileError{Path: name, Err: err}
	}

	return string(content), warning, nil
}
