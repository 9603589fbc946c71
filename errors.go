package natsort

import (
	"errors"
	"fmt"
)

// ErrTruncated is matched by every *TruncatedError.
var ErrTruncated = errors.New("natural sort key truncated")

// RunOverflowError reports a digit run longer than the key width.
type RunOverflowError struct {
	// Offset is the byte offset of the run in the input
	Offset int
	// Digits is the length of the whole run
	Digits int
	// Width is the configured key width
	Width int
}

func (e *RunOverflowError) Error() string {
	return fmt.Sprintf("digit run at offset %d has %d digits, more than width %d", e.Offset, e.Digits, e.Width)
}

// TruncatedError reports a key cut short by Config.MaxLen. The key returned
// next to it is the prefix of the full key of length MaxLen.
type TruncatedError struct {
	// MaxLen is the configured key length limit
	MaxLen int
	// Offset is the input offset of the first byte that did not fully fit
	Offset int
}

func (e *TruncatedError) Error() string {
	return fmt.Sprintf("natural sort key truncated to %d bytes at input offset %d", e.MaxLen, e.Offset)
}

func (e *TruncatedError) Unwrap() error {
	return ErrTruncated
}

// ConfigError represents an error in configuration parameters
type ConfigError struct {
	// Field is the name of the configuration field that's invalid
	Field string
	// Value is the invalid value provided
	Value interface{}
	// Reason explains why the value is invalid
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error in field %s (value: %v): %s", e.Field, e.Value, e.Reason)
}

// NewDiskError wraps an I/O error from the sorter's temporary storage
func NewDiskError(err error, operation, path string) error {
	if path != "" {
		return fmt.Errorf("disk error during %s on %s: %w", operation, path, err)
	}
	return fmt.Errorf("disk error during %s: %w", operation, err)
}

// RecordError reports a value the sorter could not key.
type RecordError struct {
	// Value is the offending input
	Value string
	// Err is the key error, usually a *RunOverflowError
	Err error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("cannot key %q: %v", e.Value, e.Err)
}

func (e *RecordError) Unwrap() error {
	return e.Err
}
