// Enumeration-like type for content mimetypes.
package mimetype

import (
	"strings"
)

// Header names used when reading and writing content descriptors.
const (
	ContentTypeHeader = "Content-Type"
	AcceptHeader      = "Accept"
)

/*
MimeType is used to enumerate the default representation for content encoding types.
Non default MimeTypes can be used by wrapping a custom string:

	MimeType("text/csv")
*/
type MimeType string

const (
	// PROTOBUF is the descriptor used for protocol buffer payloads. It is sent as a
	// generic octet stream, which is what most proto-over-http stacks expect.
	PROTOBUF = MimeType("application/octet-stream")
	JSON     = MimeType("application/json")
	BSON     = MimeType("application/bson")
	MSGPACK  = MimeType("application/msgpack")
	CBOR     = MimeType("application/cbor")
	YAML     = MimeType("application/yaml")
	TEXT     = MimeType("text/plain")
	// UNKNOWN is used when the incoming string is blank
	UNKNOWN = MimeType("")
)

// List of default mimeTypes that are encoded to / from objects (as opposed to raw
// text).
var objectMimeTypes = []MimeType{JSON, BSON, MSGPACK, CBOR, YAML, PROTOBUF}

// Short names which do not share a suffix with their canonical descriptor.
var aliases = map[string]MimeType{
	"protobuf":                PROTOBUF,
	"x-protobuf":              PROTOBUF,
	"application/protobuf":    PROTOBUF,
	"application/x-protobuf":  PROTOBUF,
	"application/vnd.msgpack": MSGPACK,
	"application/x-yml":       YAML,
	"text/yaml":               YAML,
}

// Interface for object used to read headers such as http.Request.Header or
// http.Response.Header
type headerFetcher interface {
	Get(string) string
}

// Extract content type from a message / request header.
func FromHeader(headers headerFetcher) MimeType {
	return FromString(headers.Get(ContentTypeHeader))
}

/*
Convert MimeType from a string. Ignores case and any parameters after ';'. If the
MimeType is a default type, multiple formats are respected. For instance, all of the
following will yield "mimetype.JSON":

• "application/json"

• "application/JSON; charset=utf-8"

• "application/x-json"

• "json"

• "x-json"

This is the lenient form used by the content engine. Payload negotiation compares raw
header values exactly and does not go through here.
*/
func FromString(incoming string) MimeType {
	incoming = strings.ToLower(incoming)
	if index := strings.IndexByte(incoming, ';'); index >= 0 {
		incoming = incoming[:index]
	}
	incoming = strings.TrimSpace(incoming)

	if incoming == "" {
		return UNKNOWN
	}
	if incoming == "text/plain" || incoming == "text" {
		return TEXT
	}
	if mimeType, ok := aliases[incoming]; ok {
		return mimeType
	}

	for _, mimeType := range objectMimeTypes {
		subtype := strings.Split(string(mimeType), "/")[1]
		if strings.HasSuffix(incoming, subtype) {
			return mimeType
		}
	}

	return MimeType(incoming)
}
