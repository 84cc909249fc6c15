package payload_test

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/illuscio-dev/spanpayload-go/encoding"
	"github.com/illuscio-dev/spanpayload-go/payload"
	"github.com/rs/zerolog"
	"golang.org/x/xerrors"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/testing/protocmp"
	"google.golang.org/protobuf/types/known/structpb"
)

// Records calls and always fails, so a test can tell whether a codec was reached.
type spyCodec struct {
	encodeCalls int
	decodeCalls int
}

func (spy *spyCodec) Encode(
	engine encoding.ContentEngine, writer io.Writer, content interface{},
) error {
	spy.encodeCalls++
	return xerrors.New("spy encode")
}

func (spy *spyCodec) Decode(
	engine encoding.ContentEngine, reader io.Reader, contentReceiver interface{},
) error {
	spy.decodeCalls++
	return xerrors.New("spy decode")
}

type panickyCodec struct{}

func (codec panickyCodec) Encode(
	engine encoding.ContentEngine, writer io.Writer, content interface{},
) error {
	panic("encode panicked")
}

func (codec panickyCodec) Decode(
	engine encoding.ContentEngine, reader io.Reader, contentReceiver interface{},
) error {
	panic("decode panicked")
}

func createEngine(test *testing.T) *encoding.SpanEngine {
	engine, err := encoding.NewContentEngine(false)
	if err != nil {
		test.Fatal(err)
	}
	return engine
}

func createNegotiator(test *testing.T, options ...payload.Option) *payload.Negotiator {
	negotiator, err := payload.NewNegotiator(options...)
	if err != nil {
		test.Fatal(err)
	}
	return negotiator
}

// Returns a negotiator whose binary and text codecs are spies.
func createSpyNegotiator(
	test *testing.T, options ...payload.Option,
) (*payload.Negotiator, *spyCodec, *spyCodec) {
	engine := createEngine(test)
	binarySpy := &spyCodec{}
	textSpy := &spyCodec{}

	engine.SetEncoder(payload.BinaryContentType, binarySpy)
	engine.SetDecoder(payload.BinaryContentType, binarySpy)
	engine.SetEncoder(payload.TextContentType, textSpy)
	engine.SetDecoder(payload.TextContentType, textSpy)

	options = append(options, payload.WithEngine(engine))
	return createNegotiator(test, options...), binarySpy, textSpy
}

// Returns a negotiator that logs to the returned buffer at debug level.
func createLoggedNegotiator(
	test *testing.T, options ...payload.Option,
) (*payload.Negotiator, *bytes.Buffer) {
	logs := &bytes.Buffer{}
	logger := zerolog.New(logs).Level(zerolog.DebugLevel)
	options = append(options, payload.WithLogger(logger))
	return createNegotiator(test, options...), logs
}

func createName(test *testing.T) *structpb.Struct {
	name, err := structpb.NewStruct(map[string]interface{}{
		"first": "Harry",
		"last":  "Potter",
	})
	if err != nil {
		test.Fatal(err)
	}
	return name
}

func marshalBinary(test *testing.T, message proto.Message) []byte {
	data, err := proto.Marshal(message)
	if err != nil {
		test.Fatal(err)
	}
	return data
}

func marshalText(test *testing.T, message proto.Message) []byte {
	data, err := protojson.Marshal(message)
	if err != nil {
		test.Fatal(err)
	}
	return data
}

func newRequest(contentType string, body []byte) *http.Request {
	request := httptest.NewRequest(http.MethodPost, "/names", bytes.NewReader(body))
	if contentType != "" {
		request.Header.Set("Content-Type", contentType)
	}
	return request
}

func assertProtoEqual(test *testing.T, expected proto.Message, actual proto.Message) {
	test.Helper()
	if diff := cmp.Diff(expected, actual, protocmp.Transform()); diff != "" {
		test.Errorf("message mismatch (-want +got):\n%s", diff)
	}
}
