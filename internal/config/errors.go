package config

import (
	"errors"
	"fmt"
)

// ErrInvalidSettings wraps every ValidationError returned by FromMap.
var ErrInvalidSettings = errors.New("invalid settings")

// ValidationError describes one bad setting.
type ValidationError struct {
	// Path is the dotted setting path, e.g. "kinds.comment.edit".
	Path string
	// Message describes the problem.
	Message string
	// Value is the offending value.
	Value any
	// Code categorizes the error.
	Code ValidationErrorCode
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (value: %v)", e.Path, e.Message, e.Value)
}

// Is reports ErrInvalidSettings as a match.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidSettings
}

// ValidationErrorCode categorizes validation errors.
type ValidationErrorCode uint8

const (
	// ErrCodeUnknownSetting indicates an unrecognized setting path.
	ErrCodeUnknownSetting ValidationErrorCode = iota
	// ErrCodeTypeMismatch indicates the value type is wrong.
	ErrCodeTypeMismatch
	// ErrCodeInvalidEnum indicates the value is not one of the allowed names.
	ErrCodeInvalidEnum
)

// String returns a human-readable name for the error code.
func (c ValidationErrorCode) String() string {
	switch c {
	case ErrCodeUnknownSetting:
		return "unknown_setting"
	case ErrCodeTypeMismatch:
		return "type_mismatch"
	case ErrCodeInvalidEnum:
		return "invalid_enum"
	default:
		return "unknown"
	}
}
