package domain

import "fmt"

// Error codes for domain errors
const (
	ErrCodeInvalidInput   = "INVALID_INPUT"
	ErrCodeFileNotFound   = "FILE_NOT_FOUND"
	ErrCodeConfigError    = "CONFIG_ERROR"
	ErrCodeReportError    = "REPORT_ERROR"
	ErrCodeBinaryNotFound = "BINARY_NOT_FOUND"
)

// DomainError is the common error shape across the harness
type DomainError struct {
	Code    string
	Message string
	Cause   error
}

// Error implements the error interface
func (e DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause
func (e DomainError) Unwrap() error {
	return e.Cause
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string, cause error) error {
	return DomainError{Code: code, Message: message, Cause: cause}
}

// NewInvalidInputError creates an error for invalid user input
func NewInvalidInputError(message string, cause error) error {
	return DomainError{Code: ErrCodeInvalidInput, Message: message, Cause: cause}
}

// NewFileNotFoundError creates an error for a missing file
func NewFileNotFoundError(path string, cause error) error {
	return DomainError{Code: ErrCodeFileNotFound, Message: fmt.Sprintf("file not found: %s", path), Cause: cause}
}

// NewConfigError creates an error for configuration problems
func NewConfigError(message string, cause error) error {
	return DomainError{Code: ErrCodeConfigError, Message: message, Cause: cause}
}

// NewReportError creates an error for report persistence problems
func NewReportError(message string, cause error) error {
	return DomainError{Code: ErrCodeReportError, Message: message, Cause: cause}
}
