package util

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNetwork                = errors.New("network error")
	ErrParse                  = errors.New("parse error")
	ErrLoaderFetch            = errors.New("failed to fetch loader profile")
	ErrUnknownInstallerLayout = errors.New("unknown installer layout")
	ErrMissingArtifactPath    = errors.New("artifact missing path field")
	ErrJavaNotFound           = errors.New("java not found, install java 17 or newer")
	ErrVersionNotFound        = errors.New("version not found")
	ErrUnknownLoader          = errors.New("unknown mod loader")
)

// HttpStatusError is returned when an upstream answers with a non-success status.
type HttpStatusError struct {
	URL        string
	StatusCode int
	Status     string
}

func (e *HttpStatusError) Error() string {
	return fmt.Sprintf("GET %s: bad status: %s", e.URL, e.Status)
}

// InstallerExecutionError carries the captured output of a failed installer run.
type InstallerExecutionError struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

func (e *InstallerExecutionError) Error() string {
	msg := fmt.Sprintf("installer failed with exit code %d", e.ExitCode)
	if tail := lastLine(e.Stderr); tail != "" {
		msg += ": " + tail
	}
	return msg
}

// IsHttpStatus reports whether err wraps an HttpStatusError.
func IsHttpStatus(err error) bool {
	var statusErr *HttpStatusError
	return errors.As(err, &statusErr)
}

func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	return strings.TrimSpace(lines[len(lines)-1])
}
