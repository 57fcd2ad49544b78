// Package errutils provides the error handling vocabulary for narma.
// It defines sentinel errors for the fatal failure classes of the cache
// commands and offers helpers for wrapping them with context.
//
// Recoverable conditions (missing cache directory, missing artifact, an
// unrecognised command) are reported to the user directly and never surface
// as errors; everything declared here aborts the running command.
package errutils

import (
	"fmt"
)

// Common error types used throughout the application.
// Errors are grouped by their domain or functionality.
var (
	// Cache errors are related to the on-disk ACIR cache directory.

	// ErrCacheDirectory is returned when the cache directory is empty or cannot be created.
	ErrCacheDirectory = fmt.Errorf("invalid cache directory")

	// ErrCacheWrite is returned when an artifact cannot be written to the cache directory.
	ErrCacheWrite = fmt.Errorf("failed to write artifact")

	// ErrCacheRead is returned when the cache directory cannot be enumerated.
	ErrCacheRead = fmt.Errorf("failed to read cache directory")

	// ErrCacheClean is returned when the cache directory cannot be removed or recreated.
	ErrCacheClean = fmt.Errorf("failed to clean cache")

	// ErrInvalidTimestamp is returned when a user supplied or filename derived
	// timestamp is not an integer.
	ErrInvalidTimestamp = fmt.Errorf("invalid timestamp")

	// ErrTimestampRange is returned when a timestamp cannot be represented as a calendar date.
	ErrTimestampRange = fmt.Errorf("timestamp out of range")

	// Toolchain errors are returned when invoking external programs.

	// ErrSpawn is returned when an external program cannot be started.
	ErrSpawn = fmt.Errorf("failed to run external program")

	// ErrInvalidUTF8 is returned when captured program output is not valid UTF-8.
	ErrInvalidUTF8 = fmt.Errorf("output is not valid UTF-8")

	// ErrVersionParse is returned when no version can be found in the compiler's version output.
	ErrVersionParse = fmt.Errorf("failed to parse compiler version")

	// ErrVersionConstraint is returned when the compiler version does not satisfy the configured constraint.
	ErrVersionConstraint = fmt.Errorf("compiler version does not satisfy constraint")

	// Config errors are related to configuration file operations and validation.

	ErrConfigParse = fmt.Errorf(
		"failed to parse config") // When config file cannot be parsed

	// ErrConfigValidation is returned when configuration values fail validation.
	ErrConfigValidation = fmt.Errorf(
		"invalid configuration") // When config values fail validation

	ErrConfigMarshal = fmt.Errorf("failed to marshal config to YAML")

	// ErrInvalidLogLevel is returned when an invalid log level is specified.
	ErrInvalidLogLevel = fmt.Errorf("invalid log level")

	// ErrInvalidLogFormat is returned when an invalid log format is specified.
	ErrInvalidLogFormat = fmt.Errorf("invalid log format")

	// ErrEmptyProgram is returned when the compiler or diff tool is configured as an empty string.
	ErrEmptyProgram = fmt.Errorf("program name cannot be empty")

	// Archive errors.

	// ErrArchive is returned when an export or import archive cannot be processed.
	ErrArchive = fmt.Errorf("archive operation failed")
)

// Wrap wraps an error with additional context.
// This is useful for adding context to errors as they propagate up the call stack.
// If the error is nil, Wrap returns nil.
//
// Example:
//
//	if err := someOperation(); err != nil {
//	    return errutils.Wrap(err, "failed to perform operation")
//	}
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// Wrapf wraps an error with additional formatted context.
// If the error is nil, Wrapf returns nil.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// ErrInvalidTimestampWithValue creates an error naming the offending timestamp text.
func ErrInvalidTimestampWithValue(value string, cause error) error {
	return fmt.Errorf("%w %q: %w", ErrInvalidTimestamp, value, cause)
}

// ErrInvalidLogLevelWithDetails is a helper to create a wrapped error with the invalid level and valid options.
func ErrInvalidLogLevelWithDetails(level string) error {
	return fmt.Errorf("%w: '%s', must be one of: debug, info, warn, error", ErrInvalidLogLevel, level)
}

// ErrInvalidLogFormatWithDetails is a helper to create a wrapped error with the invalid format and valid options.
func ErrInvalidLogFormatWithDetails(format string) error {
	return fmt.Errorf("%w: '%s', must be one of: text, json", ErrInvalidLogFormat, format)
}

// ErrEmptyProgramWithKey is a helper to create a wrapped error naming the empty setting.
func ErrEmptyProgramWithKey(key string) error {
	return fmt.Errorf("%s: %w", key, ErrEmptyProgram)
}
