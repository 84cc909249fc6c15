package spanerrors

// Base Error. Used when generic error is returned by route handler.
var APIError = NewSpanErrorType(
	"APIError",
	1000,
	502,
)

// Route does not implement HTTP method (GET, POST, PUT, etc.)
var InvalidMethodError = NewSpanErrorType(
	"InvalidMethodError",
	1001,
	405,
)

// No media to return.
var NothingToReturnError = NewSpanErrorType(
	"NothingToReturnError",
	1002,
	400,
)

// Request body could not be read: missing or unsupported Content-Type, or a body
// that does not parse in the declared representation.
var RequestValidationError = NewSpanErrorType(
	"RequestValidationError",
	1003,
	400,
)

// Request Exceeds API limit.
var APILimitError = NewSpanErrorType(
	"APILimitError",
	1004,
	400,
)

// Response could not be written in the negotiated representation.
var ResponseValidationError = NewSpanErrorType(
	"ResponseValidationError",
	1005,
	500,
)

// Sent back when the server framework raises an error it does not handle. The http
// code is decided at the point of failure.
var ServerError = NewSpanErrorType(
	"ServerError",
	1006,
	-1,
)

// List of default SpanError definitions.
var ErrorList = []*SpanErrorType{
	APIError,
	InvalidMethodError,
	NothingToReturnError,
	RequestValidationError,
	APILimitError,
	ResponseValidationError,
	ServerError,
}

// ApiCode:*SpanErrorType indexing of default errors.
var ErrorTypeCodeIndex = NewErrorTypeCodeIndex(ErrorList)

// NewErrorTypeCodeIndex indexes error types by API code, for use with
// ErrorFromHeaders. Services with their own types append them to ErrorList first.
func NewErrorTypeCodeIndex(errorTypes []*SpanErrorType) map[int]*SpanErrorType {
	index := make(map[int]*SpanErrorType, len(errorTypes))
	for _, errorType := range errorTypes {
		index[errorType.apiCode] = errorType
	}
	return index
}
