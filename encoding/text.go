package encoding

import (
	"fmt"
	"io"

	"golang.org/x/xerrors"
)

// Handles encoding to / decoding from text/plain. Any value can be written, using
// fmt.Sprint; only string pointers can be read into.
type textEncoder struct{}

func (encoder *textEncoder) Encode(
	engine ContentEngine, writer io.Writer, content interface{},
) error {
	if pointer, ok := content.(*string); ok && pointer != nil {
		content = *pointer
	}
	_, err := io.WriteString(writer, fmt.Sprint(content))
	return err
}

func (encoder *textEncoder) Decode(
	engine ContentEngine, reader io.Reader, contentReceiver interface{},
) error {
	stringPointer, ok := contentReceiver.(*string)
	if !ok || stringPointer == nil {
		return xerrors.New(
			"content receiver must be a string pointer to receive a string",
		)
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}

	*stringPointer = string(data)
	return nil
}
