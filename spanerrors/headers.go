package spanerrors

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/illuscio-dev/spanpayload-go/encoding"
	"github.com/illuscio-dev/spanpayload-go/mimetype"
	uuid "github.com/satori/go.uuid"
	"golang.org/x/xerrors"
)

// Header names a SpanError is written to.
const (
	HeaderName    = "error-name"
	HeaderCode    = "error-code"
	HeaderMessage = "error-message"
	HeaderID      = "error-id"
	HeaderData    = "error-data"
)

// Interface for object that can set header information, like http.Header.
type headerSetter interface {
	Set(key string, value string)
}

type headerFetcher interface {
	Get(key string) string
}

// ToHeader writes the error to an object with a Set(key string, value string) method
// like http.Header. ErrorData is written as JSON through dataEngine.
func (spanError *SpanError) ToHeader(
	setter headerSetter, dataEngine encoding.ContentEngine,
) error {
	setter.Set(HeaderName, spanError.name)
	setter.Set(HeaderCode, strconv.Itoa(spanError.apiCode))
	setter.Set(HeaderMessage, spanError.Message)
	setter.Set(HeaderID, spanError.ID.String())

	if spanError.ErrorData != nil {
		dataBytes := &bytes.Buffer{}
		err := dataEngine.Encode(mimetype.JSON, spanError.ErrorData, dataBytes)
		if err != nil {
			return xerrors.Errorf("error encoding error data: %w", err)
		}
		setter.Set(HeaderData, dataBytes.String())
	}

	return nil
}

/*
ErrorFromHeaders rebuilds an error from the headers of an HTTP response. If a
SpanError can be made from the header data, a pointer to it is returned. If an error
code is present but the rest of the header data is malformed, hasError is true and
err describes the parsing issue.

If the headers do not contain an error, hasError is false, spanError is nil, and err
says that no error was found.
*/
func ErrorFromHeaders(
	headers headerFetcher,
	dataEngine encoding.ContentEngine,
	errorTypeCodeIndex map[int]*SpanErrorType,
) (spanError *SpanError, hasError bool, err error) {
	errorCodeStr := headers.Get(HeaderCode)
	if errorCodeStr == "" {
		return nil, false, xerrors.New("no error in headers")
	}

	errorCode, err := strconv.Atoi(errorCodeStr)
	if err != nil {
		return nil, false, xerrors.New("error-code not int")
	}

	if errorTypeCodeIndex == nil {
		return nil, true, xerrors.New("no error index provided")
	}
	errorType, ok := errorTypeCodeIndex[errorCode]
	if !ok {
		return nil, true, xerrors.New("no known error for code " + errorCodeStr)
	}

	errorID, err := uuid.FromString(headers.Get(HeaderID))
	if err != nil {
		return nil, true, xerrors.New("error-id is not valid UUID")
	}

	var errorData map[string]interface{}
	if errorDataStr := headers.Get(HeaderData); errorDataStr != "" {
		errorData = make(map[string]interface{})
		err := dataEngine.Decode(
			mimetype.JSON, &errorData, strings.NewReader(errorDataStr),
		)
		if err != nil {
			return nil, true, xerrors.New("error-data could not be parsed as JSON")
		}
	}

	spanError = errorType.New(headers.Get(HeaderMessage), errorData, nil)
	spanError.ID = errorID

	return spanError, true, nil
}
