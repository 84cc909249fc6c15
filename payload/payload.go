package payload

import (
	"github.com/illuscio-dev/spanpayload-go/mimetype"
)

// The two recognized descriptors.
const (
	BinaryContentType = mimetype.PROTOBUF
	TextContentType   = mimetype.JSON
)

// Representation tags a Payload with how its value is carried.
type Representation int

const (
	// The zero value, so an empty Payload is always a valid text payload.
	RepresentationText Representation = iota
	RepresentationBinary
)

// Descriptor returns the Content-Type for the representation.
func (representation Representation) Descriptor() mimetype.MimeType {
	if representation == RepresentationBinary {
		return BinaryContentType
	}
	return TextContentType
}

func (representation Representation) String() string {
	if representation == RepresentationBinary {
		return "binary"
	}
	return "text"
}

// Payload is a value tagged with exactly one representation. The value is only
// handed out together with its descriptor, through Decompose.
type Payload[T any] struct {
	representation Representation
	value          T
}

// Binary wraps value to be carried as protocol buffers.
func Binary[T any](value T) Payload[T] {
	return Payload[T]{representation: RepresentationBinary, value: value}
}

// Text wraps value to be carried as JSON.
func Text[T any](value T) Payload[T] {
	return Payload[T]{representation: RepresentationText, value: value}
}

// New wraps value in the representation named by contentType. Only the two exact
// descriptors are accepted; anything else returns a *ContentTypeError holding the
// string as given.
func New[T any](value T, contentType string) (Payload[T], error) {
	switch mimetype.MimeType(contentType) {
	case BinaryContentType:
		return Binary(value), nil
	case TextContentType:
		return Text(value), nil
	}
	return Payload[T]{}, &ContentTypeError{ContentType: contentType}
}

// FromAccept picks a representation from a client preference. Binary is used only
// when accept is exactly the binary descriptor; every other value, including empty,
// falls back to text. It never fails.
func FromAccept[T any](value T, accept string) Payload[T] {
	if mimetype.MimeType(accept) == BinaryContentType {
		return Binary(value)
	}
	return Text(value)
}

type headerFetcher interface {
	Get(key string) string
}

// FromAcceptHeader calls FromAccept with the Accept header. A missing header reads as
// empty and gives text.
func FromAcceptHeader[T any](value T, headers headerFetcher) Payload[T] {
	return FromAccept(value, headers.Get(mimetype.AcceptHeader))
}

// Decompose returns the value and the descriptor of its representation.
func (payload Payload[T]) Decompose() (T, string) {
	return payload.value, string(payload.representation.Descriptor())
}

// Representation returns the payload's tag.
func (payload Payload[T]) Representation() Representation {
	return payload.representation
}

// Descriptor returns the Content-Type for the payload's tag.
func (payload Payload[T]) Descriptor() mimetype.MimeType {
	return payload.representation.Descriptor()
}

// IsBinary reports whether the payload is carried as protocol buffers.
func (payload Payload[T]) IsBinary() bool {
	return payload.representation == RepresentationBinary
}
