package mimetype_test

//revive:disable:import-shadowing reason: Disabled for assert := assert.New(), which is
// the preferred method of using multiple asserts in a test.

import (
	"net/http"
	"testing"

	"github.com/illuscio-dev/spanpayload-go/mimetype"
	"github.com/stretchr/testify/assert"
)

func parameterizeFromString(
	test *testing.T, testStrings []string, mimeTypeExpected mimetype.MimeType,
) {
	for _, mimeTypeString := range testStrings {
		mimeTypeExtracted := mimetype.FromString(mimeTypeString)
		assert.Equal(test, mimeTypeExpected, mimeTypeExtracted, mimeTypeString)
	}
}

func parameterizeFromHeader(
	test *testing.T, testStrings []string, mimeTypeExpected mimetype.MimeType,
) {
	for _, mimeTypeString := range testStrings {
		headers := make(http.Header)
		headers.Set("Content-Type", mimeTypeString)
		mimeTypeExtracted := mimetype.FromHeader(headers)
		assert.Equal(test, mimeTypeExpected, mimeTypeExtracted, mimeTypeString)
	}
}

func runBoth(test *testing.T, stringValues []string, expected mimetype.MimeType) {
	test.Run("FromString", func(subTest *testing.T) {
		parameterizeFromString(subTest, stringValues, expected)
	})
	test.Run("FromHeader", func(subTest *testing.T) {
		parameterizeFromHeader(subTest, stringValues, expected)
	})
}

func TestFromJSON(test *testing.T) {
	runBoth(test, []string{
		"json",
		"JSON",
		"x-json",
		"application/json",
		"application/JSON",
		"application/x-json",
		"application/json; charset=utf-8",
	}, mimetype.JSON)
}

func TestFromProtobuf(test *testing.T) {
	runBoth(test, []string{
		"protobuf",
		"x-protobuf",
		"application/protobuf",
		"application/x-protobuf",
		"application/octet-stream",
		"APPLICATION/OCTET-STREAM",
	}, mimetype.PROTOBUF)
}

func TestFromBSON(test *testing.T) {
	runBoth(test, []string{
		"bson",
		"BSON",
		"application/bson",
		"application/x-bson",
	}, mimetype.BSON)
}

func TestFromMsgpack(test *testing.T) {
	runBoth(test, []string{
		"msgpack",
		"application/msgpack",
		"application/x-msgpack",
		"application/vnd.msgpack",
	}, mimetype.MSGPACK)
}

func TestFromCBOR(test *testing.T) {
	runBoth(test, []string{"cbor", "application/cbor"}, mimetype.CBOR)
}

func TestFromYAML(test *testing.T) {
	runBoth(test, []string{
		"yaml",
		"application/yaml",
		"application/x-yaml",
		"application/x-yml",
		"text/yaml",
	}, mimetype.YAML)
}

func TestFromText(test *testing.T) {
	runBoth(test, []string{"text", "TEXT", "text/plain", "text/plain; charset=utf-8"}, mimetype.TEXT)
}

func TestFromUnknown(test *testing.T) {
	runBoth(test, []string{"", " ", "; charset=utf-8"}, mimetype.UNKNOWN)
}

func TestFromStringOther(test *testing.T) {
	runBoth(test, []string{"text/csv", "TEXT/CSV", "text/CSV"}, mimetype.MimeType("text/csv"))
}
