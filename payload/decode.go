package payload

import (
	"io"
	"net/http"

	"github.com/illuscio-dev/spanpayload-go/mimetype"
	"google.golang.org/protobuf/proto"
)

// Message constrains PT to a pointer to T that is a proto.Message, so Decode can
// allocate the receiver.
type Message[T any] interface {
	*T
	proto.Message
}

/*
DecodeBody reads a payload from headers and body.

The Content-Type header is matched with Classify. The binary descriptor decodes body
as protocol buffers, the text descriptor as JSON. Anything else is rejected without
reading body. Every failure is a *spanerrors.SpanError of type RequestValidationError
with the same message; the cause is available through Unwrap.

body is consumed, and closed if it is an io.ReadCloser.
*/
func DecodeBody[T any, PT Message[T]](
	negotiator *Negotiator, headers headerFetcher, body io.Reader,
) (Payload[PT], error) {
	contentType := headers.Get(mimetype.ContentTypeHeader)
	selection := Classify(contentType)

	var representation Representation
	switch selection {
	case SelectionBinary:
		representation = RepresentationBinary
	case SelectionText:
		representation = RepresentationText
	case SelectionMissing:
		return Payload[PT]{}, negotiator.reject(contentType, selection, ErrMissingContentType)
	default:
		return Payload[PT]{}, negotiator.reject(
			contentType, selection, &ContentTypeError{ContentType: contentType},
		)
	}

	receiver := PT(new(T))
	err := negotiator.engine.Decode(representation.Descriptor(), receiver, body)
	if err != nil {
		return Payload[PT]{}, negotiator.reject(contentType, selection, err)
	}

	return Payload[PT]{representation: representation, value: receiver}, nil
}

// Decode reads a payload from an inbound request. See DecodeBody.
func Decode[T any, PT Message[T]](
	negotiator *Negotiator, request *http.Request,
) (Payload[PT], error) {
	var body io.Reader = request.Body
	if request.Body == nil {
		body = http.NoBody
	}
	return DecodeBody[T, PT](negotiator, request.Header, body)
}
