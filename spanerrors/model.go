package spanerrors

import (
	"fmt"
	"runtime/debug"
	"strconv"

	uuid "github.com/satori/go.uuid"
	"golang.org/x/xerrors"
)

/*
SpanErrorType defines a TYPE of error that CAN be returned by services in an ecosystem.

Each SpanErrorType for a given ecosystem should have a unique Name and ApiCode. Codes
1000-1999 are reserved for the defaults in this package.

Since types are shared as pointers, the fields are private to protect against
accidental mutation by other packages. Define new error types using
NewSpanErrorType().
*/
type SpanErrorType struct {
	// Unique human-readable name of the error type for the API ecosystem.
	name string

	// Unique number to identify the error type in the API ecosystem.
	apiCode int

	// HTTP code that should be returned when this error type is returned. Set to -1
	// if the http code is determined dynamically.
	httpCode int
}

// Returns a span error type definition. Each definition should only need to be declared
// once in a shared library for any given ecosystem.
func NewSpanErrorType(name string, apiCode int, httpCode int) *SpanErrorType {
	return &SpanErrorType{
		name:     name,
		apiCode:  apiCode,
		httpCode: httpCode,
	}
}

// Returns a new span error of this type.
func (errorType *SpanErrorType) New(
	message string,
	errorData map[string]interface{},
	source error,
) *SpanError {
	return &SpanError{
		SpanErrorType: errorType,
		Message:       message,
		ID:            uuid.NewV4(),
		ErrorData:     errorData,
		sourceErr:     source,
		sourceStack:   debug.Stack(),
		frame:         xerrors.Caller(1),
	}
}

// Unique human-readable name of the error type for the API ecosystem.
func (errorType *SpanErrorType) Name() string {
	return errorType.name
}

// Unique number to identify the error type in the API ecosystem.
func (errorType *SpanErrorType) ApiCode() int {
	return errorType.apiCode
}

// HTTP code that should be returned when this error type is returned. -1 if the http
// code is determined dynamically.
func (errorType *SpanErrorType) HttpCode() int {
	return errorType.httpCode
}

// Returns a copy of the error type with the given http code replaced.
func (errorType *SpanErrorType) WithHttpCode(newHttpCode int) *SpanErrorType {
	return &SpanErrorType{
		name:     errorType.name,
		apiCode:  errorType.apiCode,
		httpCode: newHttpCode,
	}
}

// Lets the type definition itself act as an error, for xerrors.Is comparisons.
func (errorType *SpanErrorType) Error() string {
	return errorType.name + " (" + strconv.Itoa(errorType.apiCode) + ")"
}

// A specific error instance.
type SpanError struct {
	// The type of error we are returning.
	*SpanErrorType

	// A message detailing what caused the error. Sent to the client.
	Message string

	// An id for the error being returned.
	ID uuid.UUID

	// A string / any mapping of data related to the error. Sent to the client.
	ErrorData map[string]interface{}

	// If this error was returned because of another error, the original error is stored
	// here. Never sent to the client.
	sourceErr error

	// The debug.Stack() from where this error was instantiated.
	sourceStack []byte

	// The xerrors.Frame from where this error was instantiated.
	frame xerrors.Frame
}

// Returns true if the underlying type of this error is the same as errorType. Types
// copied with WithHttpCode still match their original.
func (spanError *SpanError) IsType(errorType *SpanErrorType) bool {
	return spanError.SpanErrorType.Error() == errorType.Error()
}

// Is lets xerrors.Is(err, RequestValidationError) match any error of that type.
func (spanError *SpanError) Is(target error) bool {
	errorType, ok := target.(*SpanErrorType)
	if !ok {
		return false
	}
	return spanError.IsType(errorType)
}

// Error string to conform to builtin error interface.
func (spanError *SpanError) Error() string {
	return spanError.SpanErrorType.Error() + " - " + spanError.Message
}

// Unwrap returns the source error, if any.
func (spanError *SpanError) Unwrap() error {
	return spanError.sourceErr
}

// FormatError implements xerrors.Formatter. The creation frame and source error are
// only printed with "%+v"; "%v" matches Error().
func (spanError *SpanError) FormatError(printer xerrors.Printer) error {
	printer.Print(spanError.Error())
	if !printer.Detail() {
		return nil
	}
	spanError.frame.Format(printer)
	return spanError.sourceErr
}

// Format lets fmt use FormatError.
func (spanError *SpanError) Format(state fmt.State, verb rune) {
	xerrors.FormatError(spanError, state, verb)
}

// More verbose error message that includes the creation stack and source error. This
// is not part of Error(), Message, or ErrorData since it may contain information that
// should not be returned to the client.
func (spanError *SpanError) LogMessage() string {
	return fmt.Sprint(
		"\nMESSAGE: ",
		spanError.Error(),
		"\nORIGINAL: ",
		spanError.sourceErr,
		"\nSTACK:\n",
		string(spanError.sourceStack),
	)
}
