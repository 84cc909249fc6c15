package encoding

import (
	"bytes"
	"io"

	"github.com/fxamacker/cbor/v2"
	"github.com/illuscio-dev/spanpayload-go/mimetype"
	"github.com/ugorji/go/codec"
	"go.mongodb.org/mongo-driver/bson/bsoncodec"
	"golang.org/x/xerrors"
)

// Type helpers
type encoderMapping map[mimetype.MimeType]Encoder
type decoderMapping map[mimetype.MimeType]Decoder

/*
ContentEngine details the contract for a content encoding engine. The goal of the
content engine is to allow a common decoding and encoding methodology for any
supported mimetype, so a payload can be read in whatever representation a client sent
and written back in whatever representation it asked for.
*/
type ContentEngine interface {
	// Registers an encoder for a given mimetype.
	SetEncoder(mimeType mimetype.MimeType, encoder Encoder)

	// Registers a decoder for a given mimetype.
	SetDecoder(mimeType mimetype.MimeType, decoder Decoder)

	// Returns true if the engine has a registered encoder for the mimetype.
	HandlesEncode(mimeType mimetype.MimeType) bool

	// Returns true if the engine has a registered decoder for the mimetype.
	HandlesDecode(mimeType mimetype.MimeType) bool

	// Returns true if the engine has a registered encoder AND decoder for the mimetype.
	Handles(mimeType mimetype.MimeType) bool

	// Whether the engine will attempt to decode unknown mimetypes.
	SniffType() bool

	// Decode mimeType content from reader using the decoder for mimeType. Decoded
	// content is stored in contentReceiver.
	Decode(
		mimeType mimetype.MimeType,
		contentReceiver interface{},
		reader io.Reader,
	) error

	// Encode content as mimetype using registered mimeType to writer.
	Encode(
		mimeType mimetype.MimeType,
		content interface{},
		writer io.Writer,
	) error
}

/*
SpanEngine is the default implementation of the ContentEngine interface.

Instantiation

Use NewContentEngine() to create a new SpanEngine. Registration methods are meant to
be called during setup; once the engine is in use it is safe for concurrent Encode and
Decode calls.

Protocol Buffers

application/octet-stream is bound to protocol buffers. Content must implement
proto.Message.

JSON

Content implementing proto.Message is written with protojson, so the json form of a
message matches the one any other protobuf stack produces. Everything else goes
through the codec library (https://godoc.org/github.com/ugorji/go/codec), which allows
the definition of extensions. SpanEngine ships with extensions for BSON
primitive.Binary (uuid subtype 0x3 becomes a UUID, subtype 0x0 becomes BinData) and
bson.Raw (converted to a map first).

BSON

Handled by the official driver. UUIDs from "github.com/satori/go.uuid" are stored as
primitive.Binary of subtype 0x3. Slices are written as multiple documents separated by
BSONListSep.

Type Sniffing

If created with "allowSniff" set to true, decoding an UNKNOWN mimetype tries each
decoder in registration order until one succeeds.

Panics

If an encoder or decoder panics during execution, that panic is caught and returned as
an error.
*/
type SpanEngine struct {
	// MimeType:Encoder mapping
	encoders encoderMapping
	// MimeType:Decoder mapping
	decoders decoderMapping
	// Decoder mimetypes in registration order. Used for sniffing.
	sniffOrder []mimetype.MimeType
	// Whether to attempt decoding when no explicit mimetype is known.
	sniffMimeType bool

	// JSON handle for default JSON encoder
	jsonHandle *codec.JsonHandle
	// BSON registry for default BSON encoder
	bsonRegistry *bsoncodec.Registry
	// BSON codecs added so far, kept so the registry can be rebuilt.
	bsonCodecs []*BSONCodecOpts
}

// Register an encoder for a given mimeType
func (engine *SpanEngine) SetEncoder(mimeType mimetype.MimeType, encoder Encoder) {
	engine.encoders[mimeType] = encoder
}

// Register a decoder for a given mimeType
func (engine *SpanEngine) SetDecoder(mimeType mimetype.MimeType, decoder Decoder) {
	if _, exists := engine.decoders[mimeType]; !exists {
		engine.sniffOrder = append(engine.sniffOrder, mimeType)
	}
	engine.decoders[mimeType] = decoder
}

// Whether SpanEngine will attempt to decode UNKNOWN content.
func (engine *SpanEngine) SniffType() bool {
	return engine.sniffMimeType
}

// Whether the SpanEngine has a registered encoder for mimeType.
func (engine *SpanEngine) HandlesEncode(mimeType mimetype.MimeType) bool {
	_, ok := engine.encoders[mimeType]
	return ok
}

// Whether the SpanEngine has a registered decoder for mimeType.
func (engine *SpanEngine) HandlesDecode(mimeType mimetype.MimeType) bool {
	_, ok := engine.decoders[mimeType]
	return ok
}

// Whether the SpanEngine has a registered decoder AND encoder for mimeType.
func (engine *SpanEngine) Handles(mimeType mimetype.MimeType) bool {
	return engine.HandlesEncode(mimeType) && engine.HandlesDecode(mimeType)
}

// Runs an encoder, returning a panic as an error.
func (engine *SpanEngine) safeEncode(
	encoder Encoder, writer io.Writer, content interface{},
) (err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			err = xerrors.Errorf("panic during encode: %v", recovered)
		}
	}()

	return encoder.Encode(engine, writer, content)
}

// Runs a decoder, returning a panic as an error.
func (engine *SpanEngine) safeDecode(
	decoder Decoder, reader io.Reader, contentReceiver interface{},
) (err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			err = xerrors.Errorf("panic during decode: %v", recovered)
		}
	}()

	return decoder.Decode(engine, reader, contentReceiver)
}

// Tries every registered decoder until one succeeds. Errors from every attempt are
// chained together if all of them fail.
func (engine *SpanEngine) sniffContent(
	contentReceiver interface{}, reader io.Reader,
) error {
	// Every attempt needs the full body, so it is buffered once up front.
	content := new(bytes.Buffer)
	if _, err := content.ReadFrom(reader); err != nil {
		return xerrors.Errorf("error reading content: %w", err)
	}

	var sniffErr error
	for _, mimeType := range engine.sniffOrder {
		attemptReader := bytes.NewReader(content.Bytes())
		err := engine.safeDecode(engine.decoders[mimeType], attemptReader, contentReceiver)
		if err == nil {
			return nil
		}

		if sniffErr == nil {
			sniffErr = xerrors.Errorf("%v: %w", mimeType, err)
		} else {
			sniffErr = xerrors.Errorf("%v: %v after: %w", mimeType, err, sniffErr)
		}
	}

	if sniffErr == nil {
		sniffErr = xerrors.New("no decoders registered")
	}
	return sniffErr
}

// Picks the mimetype for encoding / decoding objects when source or target mimetype is
// unknown.
func pickContentMimeType(
	mimeType mimetype.MimeType, content interface{}, encoding bool,
) mimetype.MimeType {
	if mimeType != mimetype.UNKNOWN {
		return mimeType
	}

	switch content.(type) {
	case string, *string:
		return mimetype.TEXT
	}

	// Decoding an object from an unknown type is left to sniffing.
	if encoding {
		return mimetype.JSON
	}
	return mimetype.UNKNOWN
}

func (engine *SpanEngine) Decode(
	mimeType mimetype.MimeType,
	contentReceiver interface{},
	reader io.Reader,
) error {
	mimeType = pickContentMimeType(mimeType, contentReceiver, false)

	if readCloser, ok := reader.(io.ReadCloser); ok {
		defer func() {
			_ = readCloser.Close()
		}()
	}

	if mimeType == mimetype.UNKNOWN {
		if !engine.SniffType() {
			return xerrors.New("mimetype is unknown and sniffing is disabled")
		}
		return engine.sniffContent(contentReceiver, reader)
	}

	decoder, ok := engine.decoders[mimeType]
	if !ok {
		return xerrors.New("no decoder for " + string(mimeType))
	}

	if err := engine.safeDecode(decoder, reader, contentReceiver); err != nil {
		return xerrors.Errorf("decode err: %w", err)
	}
	return nil
}

func (engine *SpanEngine) Encode(
	mimeType mimetype.MimeType,
	content interface{},
	writer io.Writer,
) error {
	mimeType = pickContentMimeType(mimeType, content, true)

	encoder, ok := engine.encoders[mimeType]
	if !ok {
		return xerrors.New("no encoder for " + string(mimeType))
	}

	if err := engine.safeEncode(encoder, writer, content); err != nil {
		return xerrors.Errorf("encode err: %w", err)
	}
	return nil
}

// JSONHandle returns the handle used for non-protobuf JSON content.
func (engine *SpanEngine) JSONHandle() *codec.JsonHandle {
	return engine.jsonHandle
}

// Returns the internal bsoncodec.Registry used by the bson encoder/decoder.
func (engine *SpanEngine) BSONRegistry() *bsoncodec.Registry {
	return engine.bsonRegistry
}

// Sets both the encoder and the decoder for a codec that implements both.
func (engine *SpanEngine) setCodec(mimeType mimetype.MimeType, handler interface {
	Encoder
	Decoder
}) {
	engine.SetEncoder(mimeType, handler)
	engine.SetDecoder(mimeType, handler)
}

// NewContentEngine returns a SpanEngine with every default codec registered.
func NewContentEngine(allowSniff bool) (*SpanEngine, error) {
	engine := &SpanEngine{
		encoders:      make(encoderMapping),
		decoders:      make(decoderMapping),
		sniffMimeType: allowSniff,
		jsonHandle:    &codec.JsonHandle{},
	}

	cborEncode, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		return nil, xerrors.Errorf("error building cbor encode mode: %w", err)
	}
	cborDecode, err := cbor.DecOptions{}.DecMode()
	if err != nil {
		return nil, xerrors.Errorf("error building cbor decode mode: %w", err)
	}

	// Sniff order follows registration. YAML must come after JSON since it accepts
	// JSON documents, and text goes last since it accepts anything.
	engine.setCodec(mimetype.PROTOBUF, &protoEncoder{})
	engine.setCodec(mimetype.JSON, &jsonEncoder{})
	engine.setCodec(mimetype.BSON, &bsonEncoder{})
	engine.setCodec(mimetype.MSGPACK, &msgpackEncoder{})
	engine.setCodec(mimetype.CBOR, &cborEncoder{encMode: cborEncode, decMode: cborDecode})
	engine.setCodec(mimetype.YAML, &yamlEncoder{})
	engine.setCodec(mimetype.TEXT, &textEncoder{})

	if err := engine.AddJSONExtensions(defaultJSONExtensions); err != nil {
		return nil, xerrors.Errorf("error adding default json extensions: %w", err)
	}

	if err := engine.AddBSONCodecs(defaultBSONCodecs); err != nil {
		return nil, xerrors.Errorf("error adding default bson codecs: %w", err)
	}

	return engine, nil
}
