package payload

import (
	"golang.org/x/xerrors"
)

// ErrMissingContentType is the cause recorded when a request has no Content-Type.
var ErrMissingContentType = xerrors.New("missing Content-Type")

// ContentTypeError is returned by New for a descriptor it does not recognize. It is
// also recorded as the cause when Decode rejects a request for the same reason.
type ContentTypeError struct {
	// The descriptor exactly as it was given.
	ContentType string
}

func (err *ContentTypeError) Error() string {
	return "invalid Content-Type " + err.ContentType
}
