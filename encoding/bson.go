package encoding

import (
	"bufio"
	"bytes"
	"io"
	"reflect"

	uuid "github.com/satori/go.uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsoncodec"
	"go.mongodb.org/mongo-driver/bson/bsonrw"
	"golang.org/x/xerrors"
)

// BSONListSep separates documents when a list is written as BSON, which has no top
// level arrays. It is the unicode SYMBOL FOR RECORD SEPARATOR.
const BSONListSep = "\u241E"

var bsonListSepBytes = []byte(BSONListSep)

// Splits a stream of separated bson documents.
func splitBSONDocuments(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}

	if index := bytes.Index(data, bsonListSepBytes); index >= 0 {
		return index + len(bsonListSepBytes), data[:index], nil
	}

	if atEOF {
		return len(data), data, nil
	}

	// Request more data.
	return 0, nil, nil
}

// BSONCodecOpts holds options for registering new BSON codecs with SpanEngine.
type BSONCodecOpts struct {
	// Type this codec handles encoding / decoding to.
	ValueType reflect.Type

	// Codec to register for this type.
	Codec bsoncodec.ValueCodec
}

var defaultBSONCodecs = []*BSONCodecOpts{
	{
		ValueType: reflect.TypeOf(uuid.UUID{}),
		Codec:     bsonCodecUUID{},
	},
}

// Stores uuid.UUID values as binary subtype 0x3.
type bsonCodecUUID struct{}

func (codec bsonCodecUUID) EncodeValue(
	_ bsoncodec.EncodeContext, valueWriter bsonrw.ValueWriter, value reflect.Value,
) error {
	valueUUID, ok := value.Interface().(uuid.UUID)
	if !ok {
		return xerrors.Errorf("expected uuid.UUID, got %v", value.Type())
	}
	return valueWriter.WriteBinaryWithSubtype(valueUUID.Bytes(), 0x3)
}

func (codec bsonCodecUUID) DecodeValue(
	_ bsoncodec.DecodeContext, valueReader bsonrw.ValueReader, value reflect.Value,
) error {
	data, subtype, err := valueReader.ReadBinary()
	if err != nil {
		return err
	}
	if subtype != 0x3 {
		return xerrors.Errorf("expected binary subtype 0x3 for uuid, got 0x%x", subtype)
	}

	valueUUID, err := uuid.FromBytes(data)
	if err != nil {
		return err
	}

	value.Set(reflect.ValueOf(valueUUID))
	return nil
}

// Adds BSON codecs to the engine and rebuilds its registry. The json extension for
// bson.Raw is refreshed so raw documents rendered as json see the new codecs.
func (engine *SpanEngine) AddBSONCodecs(codecs []*BSONCodecOpts) error {
	engine.bsonCodecs = append(engine.bsonCodecs, codecs...)

	registry := bson.NewRegistry()
	for _, codecOpts := range engine.bsonCodecs {
		registry.RegisterTypeEncoder(codecOpts.ValueType, codecOpts.Codec)
		registry.RegisterTypeDecoder(codecOpts.ValueType, codecOpts.Codec)
	}
	engine.bsonRegistry = registry

	err := engine.AddJSONExtensions([]*JSONExtensionOpts{
		{
			ValueType:    reflect.TypeOf(bson.Raw{}),
			Tag:          2,
			ExtInterface: &jsonExtBSONRaw{bsonRegistry: registry},
		},
	})
	if err != nil {
		return xerrors.Errorf("error building bson extension for json handle: %w", err)
	}

	return nil
}

// BSON codec. Slices and arrays are written as separated documents.
type bsonEncoder struct{}

func (encoder *bsonEncoder) registry(engine ContentEngine) (*bsoncodec.Registry, error) {
	spanEngine, ok := engine.(*SpanEngine)
	if !ok {
		return nil, xerrors.Errorf("bson codec requires *SpanEngine, got %T", engine)
	}
	return spanEngine.bsonRegistry, nil
}

func isSequence(value reflect.Value) bool {
	return value.Kind() == reflect.Slice || value.Kind() == reflect.Array
}

func (encoder *bsonEncoder) encodeSingle(
	registry *bsoncodec.Registry, writer io.Writer, content interface{},
) error {
	var document []byte
	switch typed := content.(type) {
	case bson.Raw:
		document = typed
	case *bson.Raw:
		document = *typed
	default:
		marshalled, err := bson.MarshalWithRegistry(registry, content)
		if err != nil {
			return err
		}
		document = marshalled
	}

	_, err := writer.Write(document)
	return err
}

func (encoder *bsonEncoder) Encode(
	engine ContentEngine, writer io.Writer, content interface{},
) error {
	registry, err := encoder.registry(engine)
	if err != nil {
		return err
	}

	contentValue := reflect.Indirect(reflect.ValueOf(content))
	_, isRaw := content.(bson.Raw)
	_, isRawPointer := content.(*bson.Raw)

	if !isSequence(contentValue) || isRaw || isRawPointer {
		return encoder.encodeSingle(registry, writer, content)
	}

	for index := 0; index < contentValue.Len(); index++ {
		if index > 0 {
			if _, err := writer.Write(bsonListSepBytes); err != nil {
				return xerrors.Errorf("error writing document separator: %w", err)
			}
		}

		item := contentValue.Index(index).Interface()
		if err := encoder.encodeSingle(registry, writer, item); err != nil {
			return err
		}
	}
	return nil
}

func (encoder *bsonEncoder) Decode(
	engine ContentEngine, reader io.Reader, contentReceiver interface{},
) error {
	registry, err := encoder.registry(engine)
	if err != nil {
		return err
	}

	receiverPointer := reflect.ValueOf(contentReceiver)
	if receiverPointer.Kind() != reflect.Ptr {
		return xerrors.New("bson receiver must be a pointer")
	}

	rawReceiver, isRaw := contentReceiver.(*bson.Raw)
	sliceValue := receiverPointer.Elem()

	if isRaw || sliceValue.Kind() != reflect.Slice {
		// Read the whole body so the length prefix is checked against real bytes.
		document, err := io.ReadAll(reader)
		if err != nil {
			return err
		}
		if isRaw {
			if err := bson.Raw(document).Validate(); err != nil {
				return err
			}
			*rawReceiver = document
			return nil
		}
		return bson.UnmarshalWithRegistry(registry, document, contentReceiver)
	}

	elementType := sliceValue.Type().Elem()
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), 16*1024*1024)
	scanner.Split(splitBSONDocuments)

	for scanner.Scan() {
		element := reflect.New(elementType)
		err := bson.UnmarshalWithRegistry(registry, scanner.Bytes(), element.Interface())
		if err != nil {
			return err
		}
		sliceValue.Set(reflect.Append(sliceValue, element.Elem()))
	}

	return scanner.Err()
}
