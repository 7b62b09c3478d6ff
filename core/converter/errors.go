package converter

import (
	"strings"
)

// ErrorType classifies a per-item failure.
type ErrorType string

const (
	// ErrorTypeToolUnavailable means the encoder binary could not be
	// resolved from the runtime environment.
	ErrorTypeToolUnavailable ErrorType = "TOOL_UNAVAILABLE"
	// ErrorTypeToolExecution means the encoder ran but exited non-zero.
	ErrorTypeToolExecution ErrorType = "TOOL_EXECUTION"
	// ErrorTypeDecode means the source image could not be read or parsed.
	ErrorTypeDecode ErrorType = "DECODE"
	// ErrorTypeEncode means the output image could not be encoded or written.
	ErrorTypeEncode ErrorType = "ENCODE"
	// ErrorTypeIO is a generic filesystem failure.
	ErrorTypeIO ErrorType = "IO"
)

// maxDiagnosticChars bounds tool-diagnostic text carried in error messages.
const maxDiagnosticChars = 200

// ConvertError is a classified per-item failure. It never propagates past
// the item processor boundary; processors fold it into an ItemResult.
type ConvertError struct {
	Type    ErrorType
	Message string
	Cause   error
}

func (ce *ConvertError) Error() string {
	var b strings.Builder
	b.WriteString("[")
	b.WriteString(string(ce.Type))
	b.WriteString("] ")
	b.WriteString(ce.Message)
	if ce.Cause != nil {
		b.WriteString(": ")
		b.WriteString(ce.Cause.Error())
	}
	return b.String()
}

func (ce *ConvertError) Unwrap() error {
	return ce.Cause
}

func newConvertError(errType ErrorType, message string, cause error) *ConvertError {
	return &ConvertError{Type: errType, Message: message, Cause: cause}
}

// truncateDiagnostic bounds free-form tool output to maxDiagnosticChars
// characters. Invalid UTF-8 in the stream is carried through as-is rather
// than rejected; truncation counts runes so multi-byte output is not cut
// mid-character.
func truncateDiagnostic(s string) string {
	runes := []rune(s)
	if len(runes) <= maxDiagnosticChars {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(string(runes[:maxDiagnosticChars]))
}

// failedResult folds an error into the per-item result shape stored in a
// BatchResult.
func failedResult(err error) ItemResult {
	return ItemResult{Success: false, ErrorMessage: err.Error()}
}
