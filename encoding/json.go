package encoding

import (
	"io"
	"reflect"

	uuid "github.com/satori/go.uuid"
	"github.com/ugorji/go/codec"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsoncodec"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/xerrors"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
)

// BinData holds raw binary blobs for structs that need to travel as both JSON and
// BSON. BSON stores it as a Binary primitive of subtype 0x0.
type BinData []byte

// JSONExtensionOpts holds options for a json handle extension to add to the engine.
type JSONExtensionOpts struct {
	ValueType    reflect.Type
	Tag          uint64
	ExtInterface codec.InterfaceExt
}

var defaultJSONExtensions = []*JSONExtensionOpts{
	{
		ValueType:    reflect.TypeOf(primitive.Binary{}),
		Tag:          1,
		ExtInterface: &jsonExtBSONBinary{},
	},
}

// Converts BSON binary fields to json. Supports blobs (0x0) and UUIDs (0x3).
type jsonExtBSONBinary struct{}

func (ext *jsonExtBSONBinary) ConvertExt(value interface{}) interface{} {
	var binary primitive.Binary
	switch typed := value.(type) {
	case *primitive.Binary:
		binary = *typed
	case primitive.Binary:
		binary = typed
	default:
		panic(xerrors.Errorf("expected bson binary, got %T", value))
	}

	switch binary.Subtype {
	case 0x3:
		valueUUID, err := uuid.FromBytes(binary.Data)
		if err != nil {
			panic(xerrors.Errorf("error converting bson uuid: %w", err))
		}
		return valueUUID
	case 0x0:
		return BinData(binary.Data)
	}

	panic(xerrors.Errorf("unsupported bson binary subtype 0x%x", binary.Subtype))
}

func (ext *jsonExtBSONBinary) UpdateExt(dest interface{}, value interface{}) {
	panic(xerrors.New(
		"decoding to bson binary field not supported -- " +
			"use uuid or BinData type as intermediary",
	))
}

// Converts a BSON Raw document to a json object.
type jsonExtBSONRaw struct {
	bsonRegistry *bsoncodec.Registry
}

func (ext *jsonExtBSONRaw) ConvertExt(value interface{}) interface{} {
	var raw bson.Raw
	switch typed := value.(type) {
	case *bson.Raw:
		raw = *typed
	case bson.Raw:
		raw = typed
	default:
		panic(xerrors.Errorf("expected bson raw, got %T", value))
	}

	document := make(map[string]interface{})
	if len(raw) == 0 {
		return document
	}

	if err := bson.UnmarshalWithRegistry(ext.bsonRegistry, raw, &document); err != nil {
		panic(xerrors.Errorf("error unmarshalling bson for json encoding: %w", err))
	}
	return document
}

func (ext *jsonExtBSONRaw) UpdateExt(dest interface{}, value interface{}) {
	panic(xerrors.New("decoding to bson raw field not supported"))
}

// Adds extensions to the json handle. Extensions must be added before the engine
// encodes or decodes any json.
func (engine *SpanEngine) AddJSONExtensions(extensions []*JSONExtensionOpts) error {
	for _, extOpts := range extensions {
		err := engine.jsonHandle.SetInterfaceExt(
			extOpts.ValueType, extOpts.Tag, extOpts.ExtInterface,
		)
		if err != nil {
			return xerrors.Errorf(
				"error adding json extension for %v: %w", extOpts.ValueType, err,
			)
		}
	}
	return nil
}

// Default JSON codec. Protobuf messages use protojson, everything else uses the
// engine's json handle.
type jsonEncoder struct{}

func (encoder *jsonEncoder) handle(engine ContentEngine) (*codec.JsonHandle, error) {
	spanEngine, ok := engine.(*SpanEngine)
	if !ok {
		return nil, xerrors.Errorf("json codec requires *SpanEngine, got %T", engine)
	}
	return spanEngine.jsonHandle, nil
}

func (encoder *jsonEncoder) Encode(
	engine ContentEngine, writer io.Writer, content interface{},
) error {
	if message, ok := content.(proto.Message); ok {
		data, err := protojson.Marshal(message)
		if err != nil {
			return err
		}
		_, err = writer.Write(data)
		return err
	}

	handle, err := encoder.handle(engine)
	if err != nil {
		return err
	}
	return codec.NewEncoder(writer, handle).Encode(content)
}

func (encoder *jsonEncoder) Decode(
	engine ContentEngine, reader io.Reader, contentReceiver interface{},
) error {
	if message, ok := contentReceiver.(proto.Message); ok {
		data, err := io.ReadAll(reader)
		if err != nil {
			return err
		}
		return protojson.Unmarshal(data, message)
	}

	handle, err := encoder.handle(engine)
	if err != nil {
		return err
	}
	return codec.NewDecoder(reader, handle).Decode(contentReceiver)
}
