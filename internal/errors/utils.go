package errors

import (
	"errors"
)

// Process exit codes, one per failure class.
const (
	ExitOK         = 0
	ExitGeneral    = 1
	ExitInputError = 2
	ExitParseError = 3
	ExitRenderErr  = 4
	ExitOutputErr  = 5
)

// Wrap wraps an error with additional context, creating a ToolError if the input is not already one
func Wrap(err error, errType ErrorType, code, message string) *ToolError {
	if err == nil {
		return nil
	}

	// Keep location and stage from an inner ToolError so the outer message stays actionable
	var te *ToolError
	if errors.As(err, &te) {
		return &ToolError{
			Type:     errType,
			Code:     code,
			Message:  message,
			Cause:    te,
			Context:  te.Context,
			Stage:    te.Stage,
			FilePath: te.FilePath,
			Line:     te.Line,
			Column:   te.Column,
		}
	}

	return &ToolError{
		Type:    errType,
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// WrapInternal wraps an error as an internal error
func WrapInternal(err error, message string) *ToolError {
	return Wrap(err, ErrorTypeInternal, ErrCodeInternalError, message)
}

// AtStage tags err with the pipeline stage it escaped from. Errors that are not
// ToolErrors are wrapped as internal errors first.
func AtStage(err error, stage string) error {
	if err == nil {
		return nil
	}

	var te *ToolError
	if errors.As(err, &te) {
		te.WithStage(stage)
		return err
	}

	return WrapInternal(err, "unexpected failure").WithStage(stage)
}

// ExitCode maps an error to the process exit status.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	t, ok := TypeOf(err)
	if !ok {
		return ExitGeneral
	}

	switch t {
	case ErrorTypeInput:
		return ExitInputError
	case ErrorTypeParse:
		return ExitParseError
	case ErrorTypeRender:
		return ExitRenderErr
	case ErrorTypeOutput:
		return ExitOutputErr
	default:
		return ExitGeneral
	}
}

// FormatError formats an error for user display
func FormatError(err error) string {
	if err == nil {
		return ""
	}

	return "tera: " + err.Error()
}
