package encoding

import (
	"io"

	"golang.org/x/xerrors"
	"gopkg.in/yaml.v2"
)

// Handles encoding to / decoding from yaml.
type yamlEncoder struct{}

func (encoder *yamlEncoder) Encode(
	engine ContentEngine, writer io.Writer, content interface{},
) error {
	yamlWriter := yaml.NewEncoder(writer)
	if err := yamlWriter.Encode(content); err != nil {
		return err
	}
	if err := yamlWriter.Close(); err != nil {
		return xerrors.Errorf("error flushing yaml: %w", err)
	}
	return nil
}

func (encoder *yamlEncoder) Decode(
	engine ContentEngine, reader io.Reader, contentReceiver interface{},
) error {
	return yaml.NewDecoder(reader).Decode(contentReceiver)
}
