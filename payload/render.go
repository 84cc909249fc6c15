package payload

import (
	"bytes"
	"io"
	"net/http"

	"github.com/illuscio-dev/spanpayload-go/mimetype"
	"github.com/illuscio-dev/spanpayload-go/spanerrors"
	"golang.org/x/xerrors"
	"google.golang.org/protobuf/proto"
)

// EncodeBody writes the payload's value to writer with the codec matching its tag and
// returns the descriptor that should be declared for it.
func EncodeBody[T proto.Message](
	negotiator *Negotiator, writer io.Writer, payload Payload[T],
) (mimetype.MimeType, error) {
	descriptor := payload.Descriptor()
	if err := negotiator.engine.Encode(descriptor, payload.value, writer); err != nil {
		return descriptor, xerrors.Errorf("error encoding %v payload: %w", descriptor, err)
	}
	return descriptor, nil
}

// Render writes the payload as a 200 response. See RenderStatus.
func Render[T proto.Message](
	negotiator *Negotiator, writer http.ResponseWriter, payload Payload[T],
) error {
	return RenderStatus(negotiator, writer, http.StatusOK, payload)
}

/*
RenderStatus writes the payload as a response with the given status, declaring the
payload's descriptor as Content-Type.

The body is encoded before anything is written. If encoding fails, a 500
ResponseValidationError is written instead and returned.
*/
func RenderStatus[T proto.Message](
	negotiator *Negotiator, writer http.ResponseWriter, status int, payload Payload[T],
) error {
	body := &bytes.Buffer{}
	descriptor, err := EncodeBody(negotiator, body, payload)
	if err != nil {
		spanErr := spanerrors.ResponseValidationError.New("error encoding response", nil, err)
		negotiator.WriteError(writer, spanErr)
		return spanErr
	}

	writer.Header().Set(mimetype.ContentTypeHeader, string(descriptor))
	writer.WriteHeader(status)

	if _, err := body.WriteTo(writer); err != nil {
		return xerrors.Errorf("error writing response body: %w", err)
	}
	return nil
}
