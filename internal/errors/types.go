package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorType represents different categories of errors.
type ErrorType string

const (
	ErrorTypeInput      ErrorType = "input"
	ErrorTypeParse      ErrorType = "parse"
	ErrorTypeRender     ErrorType = "render"
	ErrorTypeValidation ErrorType = "validation"
	ErrorTypeConfig     ErrorType = "config"
	ErrorTypeOutput     ErrorType = "output"
	ErrorTypeInternal   ErrorType = "internal"
)

// Common error codes.
const (
	ErrCodeFileNotFound       = "ERR_FILE_NOT_FOUND"
	ErrCodeInvalidEncoding    = "ERR_INVALID_ENCODING"
	ErrCodeReadFailed         = "ERR_READ_FAILED"
	ErrCodeParseFailed        = "ERR_PARSE_FAILED"
	ErrCodeNotAMapping        = "ERR_NOT_A_MAPPING"
	ErrCodeNonStringKey       = "ERR_NON_STRING_KEY"
	ErrCodeUnknownFormat      = "ERR_UNKNOWN_FORMAT"
	ErrCodeRenderFailed       = "ERR_RENDER_FAILED"
	ErrCodeUnknownEngine      = "ERR_UNKNOWN_ENGINE"
	ErrCodeConflictingSources = "ERR_CONFLICTING_SOURCES"
	ErrCodeInvalidRootKey     = "ERR_INVALID_ROOT_KEY"
	ErrCodeConfigInvalid      = "ERR_CONFIG_INVALID"
	ErrCodeWriteFailed        = "ERR_WRITE_FAILED"
	ErrCodeInternalError      = "ERR_INTERNAL"
)

// ToolError is a structured error type with context.
type ToolError struct {
	Type     ErrorType
	Code     string
	Message  string
	Cause    error
	Context  map[string]interface{}
	Stage    string
	FilePath string
	Line     int
	Column   int
}

// Error implements the error interface.
func (e *ToolError) Error() string {
	var parts []string

	if e.Code != "" {
		parts = append(parts, fmt.Sprintf("[%s]", e.Code))
	}

	if e.Stage != "" {
		parts = append(parts, "stage:"+e.Stage)
	}

	if e.FilePath != "" {
		location := e.FilePath
		if e.Line > 0 {
			location += fmt.Sprintf(":%d", e.Line)
			if e.Column > 0 {
				location += fmt.Sprintf(":%d", e.Column)
			}
		}
		parts = append(parts, location)
	}

	parts = append(parts, e.Message)

	result := strings.Join(parts, " ")

	if e.Cause != nil {
		result += fmt.Sprintf(": %v", e.Cause)
	}

	return result
}

// Unwrap returns the underlying cause error.
func (e *ToolError) Unwrap() error {
	return e.Cause
}

// Is implements error comparison.
func (e *ToolError) Is(target error) bool {
	var t *ToolError
	if errors.As(target, &t) {
		return e.Type == t.Type && e.Code == t.Code
	}

	return false
}

// WithContext adds context information to the error.
func (e *ToolError) WithContext(key string, value interface{}) *ToolError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value

	return e
}

// WithLocation adds file location information.
func (e *ToolError) WithLocation(filePath string, line, column int) *ToolError {
	e.FilePath = filePath
	e.Line = line
	e.Column = column

	return e
}

// WithPath records the file the error refers to.
func (e *ToolError) WithPath(filePath string) *ToolError {
	e.FilePath = filePath

	return e
}

// WithStage records the pipeline stage that failed. An existing stage is kept.
func (e *ToolError) WithStage(stage string) *ToolError {
	if e.Stage == "" {
		e.Stage = stage
	}

	return e
}

// NewInputError creates an input error.
func NewInputError(code, message string, cause error) *ToolError {
	return &ToolError{
		Type:    ErrorTypeInput,
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// NewParseError creates a parse error.
func NewParseError(code, message string, cause error) *ToolError {
	return &ToolError{
		Type:    ErrorTypeParse,
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// NewRenderError creates a render error.
func NewRenderError(code, message string, cause error) *ToolError {
	return &ToolError{
		Type:    ErrorTypeRender,
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// NewValidationError creates a validation error.
func NewValidationError(code, message string) *ToolError {
	return &ToolError{
		Type:    ErrorTypeValidation,
		Code:    code,
		Message: message,
	}
}

// NewConfigError creates a configuration error.
func NewConfigError(code, message string, cause error) *ToolError {
	return &ToolError{
		Type:    ErrorTypeConfig,
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// NewOutputError creates an output error.
func NewOutputError(code, message string, cause error) *ToolError {
	return &ToolError{
		Type:    ErrorTypeOutput,
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// HasCode reports whether any ToolError in err's chain carries code.
func HasCode(err error, code string) bool {
	for err != nil {
		var te *ToolError
		if !errors.As(err, &te) {
			return false
		}
		if te.Code == code {
			return true
		}
		err = te.Cause
	}

	return false
}

// TypeOf returns the type of the outermost ToolError in err's chain.
func TypeOf(err error) (ErrorType, bool) {
	var te *ToolError
	if errors.As(err, &te) {
		return te.Type, true
	}

	return "", false
}

// IsInputError checks if an error is an input error.
func IsInputError(err error) bool {
	t, ok := TypeOf(err)
	return ok && t == ErrorTypeInput
}

// IsParseError checks if an error is a parse error.
func IsParseError(err error) bool {
	t, ok := TypeOf(err)
	return ok && t == ErrorTypeParse
}

// IsRenderError checks if an error is a render error.
func IsRenderError(err error) bool {
	t, ok := TypeOf(err)
	return ok && t == ErrorTypeRender
}

// IsValidationError checks if an error is a validation error.
func IsValidationError(err error) bool {
	t, ok := TypeOf(err)
	return ok && t == ErrorTypeValidation
}
