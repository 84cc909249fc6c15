package encoding

import (
	"io"

	"golang.org/x/xerrors"
	"google.golang.org/protobuf/proto"
)

// Handles encoding to / decoding from protocol buffers.
type protoEncoder struct{}

func (encoder *protoEncoder) Encode(
	engine ContentEngine, writer io.Writer, content interface{},
) error {
	message, ok := content.(proto.Message)
	if !ok {
		return xerrors.Errorf("content must implement proto.Message, got %T", content)
	}

	data, err := proto.Marshal(message)
	if err != nil {
		return err
	}

	_, err = writer.Write(data)
	return err
}

func (encoder *protoEncoder) Decode(
	engine ContentEngine, reader io.Reader, contentReceiver interface{},
) error {
	message, ok := contentReceiver.(proto.Message)
	if !ok {
		return xerrors.Errorf(
			"content receiver must implement proto.Message, got %T", contentReceiver,
		)
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}

	return proto.Unmarshal(data, message)
}
