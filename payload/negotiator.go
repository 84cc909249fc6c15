package payload

import (
	"net/http"

	"github.com/illuscio-dev/spanpayload-go/encoding"
	"github.com/illuscio-dev/spanpayload-go/spanerrors"
	"github.com/rs/zerolog"
	"golang.org/x/xerrors"
)

// Message sent back with every rejected request, whatever the cause.
const rejectionMessage = "bad request"

// Negotiator holds what Decode, Render and Handle need from the host: the codecs,
// a logger, and how errors are written. It has no mutable state after construction.
type Negotiator struct {
	engine       encoding.ContentEngine
	logger       zerolog.Logger
	errorHeaders bool
}

// Option configures a Negotiator.
type Option func(negotiator *Negotiator)

// WithEngine sets the engine providing the codecs. The engine must handle both
// BinaryContentType and TextContentType.
func WithEngine(engine encoding.ContentEngine) Option {
	return func(negotiator *Negotiator) {
		negotiator.engine = engine
	}
}

// WithLogger sets the logger used for rejected requests and write failures. Defaults
// to a disabled logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(negotiator *Negotiator) {
		negotiator.logger = logger
	}
}

// WithErrorHeaders controls whether WriteError adds the spanerrors headers to the
// status code. Off by default, so a rejection is a bare 400.
func WithErrorHeaders(enabled bool) Option {
	return func(negotiator *Negotiator) {
		negotiator.errorHeaders = enabled
	}
}

// NewNegotiator builds a Negotiator. Without WithEngine, a default non-sniffing
// encoding.SpanEngine is created. Negotiation only uses its protobuf and JSON codecs;
// the other codecs it registers (BSON, msgpack, CBOR, YAML, text) stay available to
// callers through Engine().
func NewNegotiator(options ...Option) (*Negotiator, error) {
	negotiator := &Negotiator{logger: zerolog.Nop()}
	for _, option := range options {
		option(negotiator)
	}

	if negotiator.engine == nil {
		engine, err := encoding.NewContentEngine(false)
		if err != nil {
			return nil, xerrors.Errorf("error creating content engine: %w", err)
		}
		negotiator.engine = engine
	}

	for _, contentType := range []Representation{RepresentationBinary, RepresentationText} {
		if !negotiator.engine.Handles(contentType.Descriptor()) {
			return nil, xerrors.Errorf(
				"content engine does not handle %v", contentType.Descriptor(),
			)
		}
	}

	return negotiator, nil
}

// Engine returns the engine providing the codecs.
func (negotiator *Negotiator) Engine() encoding.ContentEngine {
	return negotiator.engine
}

// Builds the generic rejection. cause is only kept for logs and Unwrap.
func (negotiator *Negotiator) reject(
	contentType string, selection Selection, cause error,
) *spanerrors.SpanError {
	negotiator.logger.Debug().
		Err(cause).
		Str("content_type", contentType).
		Stringer("selection", selection).
		Msg("rejected request payload")

	return spanerrors.RequestValidationError.New(rejectionMessage, nil, cause)
}

// WriteError writes err as a response with no body. A *spanerrors.SpanError anywhere in
// the chain decides the status; other errors are sent as an APIError. Types with a
// dynamic http code are sent as 500.
func (negotiator *Negotiator) WriteError(writer http.ResponseWriter, err error) {
	var spanErr *spanerrors.SpanError
	if !xerrors.As(err, &spanErr) {
		spanErr = spanerrors.APIError.New("unhandled error", nil, err)
	}

	status := spanErr.HttpCode()
	if status < 100 {
		status = http.StatusInternalServerError
	}

	if negotiator.errorHeaders {
		if headerErr := spanErr.ToHeader(writer.Header(), negotiator.engine); headerErr != nil {
			negotiator.logger.Warn().Err(headerErr).Msg("error writing error headers")
		}
	}

	if status >= http.StatusInternalServerError {
		negotiator.logger.Error().
			Err(err).
			Str("error_id", spanErr.ID.String()).
			Int("status", status).
			Msg("request failed")
	}

	writer.WriteHeader(status)
}
