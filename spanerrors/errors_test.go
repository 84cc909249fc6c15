package spanerrors_test

//revive:disable:import-shadowing reason: Disabled for assert := assert.New(), which is
// the preferred method of using multiple asserts in a test.

import (
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/illuscio-dev/spanpayload-go/encoding"
	"github.com/illuscio-dev/spanpayload-go/spanerrors"
	uuid "github.com/satori/go.uuid"
	"github.com/stretchr/testify/assert"
	"golang.org/x/xerrors"
)

var errSource = xerrors.New("some source error")

// Creates a consistent test error for multiple tests
func createTestError() *spanerrors.SpanError {
	return spanerrors.ResponseValidationError.New(
		"test message",
		map[string]interface{}{"key": "value"},
		errSource,
	)
}

func createEngine(test *testing.T) encoding.ContentEngine {
	engine, err := encoding.NewContentEngine(false)
	if err != nil {
		test.Fatal(err)
	}
	return engine
}

func TestNewSpanError(test *testing.T) {
	assert := assert.New(test)

	spanErr := createTestError()

	assert.Equal(spanerrors.ResponseValidationError, spanErr.SpanErrorType)
	assert.NotEqual(uuid.Nil, spanErr.ID)
	assert.Equal("test message", spanErr.Message)
	assert.Equal(map[string]interface{}{"key": "value"}, spanErr.ErrorData)
	assert.Equal(errSource, spanErr.Unwrap())

	assert.Equal("ResponseValidationError", spanErr.Name())
	assert.Equal(1005, spanErr.ApiCode())
	assert.Equal(500, spanErr.HttpCode())
	assert.Equal("ResponseValidationError (1005) - test message", spanErr.Error())

	assert.True(spanErr.IsType(spanerrors.ResponseValidationError))
	assert.False(spanErr.IsType(spanerrors.RequestValidationError))
}

func TestSpanErrorIs(test *testing.T) {
	assert := assert.New(test)

	spanErr := createTestError()
	wrapped := xerrors.Errorf("handler failed: %w", spanErr)

	assert.True(xerrors.Is(wrapped, spanerrors.ResponseValidationError))
	assert.False(xerrors.Is(wrapped, spanerrors.RequestValidationError))
	assert.True(xerrors.Is(wrapped, errSource))

	var target *spanerrors.SpanError
	assert.True(xerrors.As(wrapped, &target))
	assert.Equal(spanErr.ID, target.ID)
}

func TestWithHttpCode(test *testing.T) {
	assert := assert.New(test)

	errorType := spanerrors.RequestValidationError.WithHttpCode(422)
	spanErr := errorType.New("unprocessable", nil, nil)

	assert.Equal(422, spanErr.HttpCode())
	assert.Equal(400, spanerrors.RequestValidationError.HttpCode())
	assert.True(spanErr.IsType(spanerrors.RequestValidationError))
}

func TestLogMessage(test *testing.T) {
	message := createTestError().LogMessage()

	assert.True(test, strings.Contains(message, "MESSAGE: ResponseValidationError"))
	assert.True(test, strings.Contains(message, "ORIGINAL: some source error"))
	assert.True(test, strings.Contains(message, "STACK:"))
}

func TestVerboseFormat(test *testing.T) {
	formatted := fmt.Sprintf("%+v", createTestError())

	assert.True(test, strings.Contains(formatted, "ResponseValidationError (1005)"))
	assert.True(test, strings.Contains(formatted, "errors_test.go"))
	assert.True(test, strings.Contains(formatted, "some source error"))
}

func TestPlainFormatHidesSource(test *testing.T) {
	assert := assert.New(test)
	spanErr := createTestError()

	assert.Equal(spanErr.Error(), fmt.Sprint(spanErr))
	assert.Equal(spanErr.Error(), fmt.Sprintf("%v", spanErr))
	assert.Equal(spanErr.Error(), fmt.Sprintf("%s", spanErr))
	assert.False(strings.Contains(fmt.Sprint(spanErr), "some source error"))
}

func TestResponseValidationErrorStatus(test *testing.T) {
	assert.Equal(test, 500, spanerrors.ResponseValidationError.HttpCode())
}

func TestHeaderRoundTrip(test *testing.T) {
	assert := assert.New(test)
	engine := createEngine(test)

	spanErr := createTestError()
	headers := make(http.Header)

	assert.Nil(spanErr.ToHeader(headers, engine))
	assert.Equal("ResponseValidationError", headers.Get(spanerrors.HeaderName))
	assert.Equal("1005", headers.Get(spanerrors.HeaderCode))

	loaded, hasError, err := spanerrors.ErrorFromHeaders(
		headers, engine, spanerrors.ErrorTypeCodeIndex,
	)

	assert.Nil(err)
	assert.True(hasError)
	assert.Equal(spanErr.ID, loaded.ID)
	assert.Equal(spanErr.Message, loaded.Message)
	assert.Equal(spanErr.ErrorData, loaded.ErrorData)
	assert.True(loaded.IsType(spanerrors.ResponseValidationError))
}

func TestHeaderWithoutData(test *testing.T) {
	assert := assert.New(test)
	engine := createEngine(test)

	spanErr := spanerrors.RequestValidationError.New("bad request", nil, nil)
	headers := make(http.Header)

	assert.Nil(spanErr.ToHeader(headers, engine))
	assert.Equal("", headers.Get(spanerrors.HeaderData))

	loaded, hasError, err := spanerrors.ErrorFromHeaders(
		headers, engine, spanerrors.ErrorTypeCodeIndex,
	)
	assert.Nil(err)
	assert.True(hasError)
	assert.Nil(loaded.ErrorData)
}

func TestErrorFromHeadersFailures(test *testing.T) {
	engine := createEngine(test)
	validID := uuid.NewV4().String()

	cases := []struct {
		name     string
		headers  map[string]string
		index    map[int]*spanerrors.SpanErrorType
		hasError bool
		message  string
	}{
		{
			name:     "no error",
			headers:  map[string]string{},
			index:    spanerrors.ErrorTypeCodeIndex,
			hasError: false,
			message:  "no error in headers",
		},
		{
			name:     "code not int",
			headers:  map[string]string{spanerrors.HeaderCode: "abc"},
			index:    spanerrors.ErrorTypeCodeIndex,
			hasError: false,
			message:  "error-code not int",
		},
		{
			name:     "no index",
			headers:  map[string]string{spanerrors.HeaderCode: "1003"},
			index:    nil,
			hasError: true,
			message:  "no error index provided",
		},
		{
			name:     "unknown code",
			headers:  map[string]string{spanerrors.HeaderCode: "9999"},
			index:    spanerrors.ErrorTypeCodeIndex,
			hasError: true,
			message:  "no known error for code 9999",
		},
		{
			name: "bad id",
			headers: map[string]string{
				spanerrors.HeaderCode: "1003",
				spanerrors.HeaderID:   "not-a-uuid",
			},
			index:    spanerrors.ErrorTypeCodeIndex,
			hasError: true,
			message:  "error-id is not valid UUID",
		},
		{
			name: "bad data",
			headers: map[string]string{
				spanerrors.HeaderCode: "1003",
				spanerrors.HeaderID:   validID,
				spanerrors.HeaderData: "not json",
			},
			index:    spanerrors.ErrorTypeCodeIndex,
			hasError: true,
			message:  "error-data could not be parsed as JSON",
		},
	}

	for _, thisCase := range cases {
		thisCase := thisCase
		test.Run(thisCase.name, func(subTest *testing.T) {
			assert := assert.New(subTest)

			headers := make(http.Header)
			for key, value := range thisCase.headers {
				headers.Set(key, value)
			}

			spanErr, hasError, err := spanerrors.ErrorFromHeaders(
				headers, engine, thisCase.index,
			)

			assert.Nil(spanErr)
			assert.Equal(thisCase.hasError, hasError)
			assert.EqualError(err, thisCase.message)
		})
	}
}

func TestErrorTypeCodeIndex(test *testing.T) {
	assert := assert.New(test)

	assert.Len(spanerrors.ErrorTypeCodeIndex, len(spanerrors.ErrorList))
	for _, errorType := range spanerrors.ErrorList {
		assert.Equal(errorType, spanerrors.ErrorTypeCodeIndex[errorType.ApiCode()])
	}
}
