package encoding

import (
	"io"
)

// Encoder writes content in a single representation.
type Encoder interface {
	// Encode writes content to writer. The engine doing the encoding is passed in so
	// encoders can reach engine-level settings.
	Encode(engine ContentEngine, writer io.Writer, content interface{}) error
}

// Decoder reads content in a single representation.
type Decoder interface {
	// Decode reads from reader and unmarshals into contentReceiver, which must be a
	// pointer. The engine doing the decoding is passed in so decoders can reach
	// engine-level settings.
	Decode(engine ContentEngine, reader io.Reader, contentReceiver interface{}) error
}
