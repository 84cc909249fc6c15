package encoding

import (
	"io"

	"github.com/vmihailenco/msgpack/v5"
)

// Handles encoding to / decoding from MessagePack.
type msgpackEncoder struct{}

func (encoder *msgpackEncoder) Encode(
	engine ContentEngine, writer io.Writer, content interface{},
) error {
	return msgpack.NewEncoder(writer).Encode(content)
}

func (encoder *msgpackEncoder) Decode(
	engine ContentEngine, reader io.Reader, contentReceiver interface{},
) error {
	return msgpack.NewDecoder(reader).Decode(contentReceiver)
}
