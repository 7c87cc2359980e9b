// Package errors defines application errors and exit code mapping.
package errors

import (
	sterrors "errors"
	"fmt"
)

var (
	// ErrUsage indicates a command usage failure.
	ErrUsage = sterrors.New("usage error")
	// ErrInvalidAlgorithm indicates a hash algorithm outside the supported set.
	ErrInvalidAlgorithm = fmt.Errorf("invalid algorithm: %w", ErrUsage)
	// ErrPathNotFound indicates the target path is missing or not a readable file.
	ErrPathNotFound = sterrors.New("path not found")
	// ErrIOFailure indicates opening or reading the target failed.
	ErrIOFailure = sterrors.New("io failure")
)

// ExitCode maps an error to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}

	if sterrors.Is(err, ErrUsage) {
		return 2
	}

	return 1
}
