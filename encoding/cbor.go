package encoding

import (
	"io"

	"github.com/fxamacker/cbor/v2"
)

// Handles encoding to / decoding from CBOR. Output uses the canonical encoding so
// equal values produce equal bytes.
type cborEncoder struct {
	encMode cbor.EncMode
	decMode cbor.DecMode
}

func (encoder *cborEncoder) Encode(
	engine ContentEngine, writer io.Writer, content interface{},
) error {
	return encoder.encMode.NewEncoder(writer).Encode(content)
}

func (encoder *cborEncoder) Decode(
	engine ContentEngine, reader io.Reader, contentReceiver interface{},
) error {
	return encoder.decMode.NewDecoder(reader).Decode(contentReceiver)
}
