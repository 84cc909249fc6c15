package payload

import (
	"github.com/illuscio-dev/spanpayload-go/mimetype"
)

// Selection is the outcome of matching an inbound Content-Type.
type Selection int

const (
	SelectionMissing Selection = iota
	SelectionUnrecognized
	SelectionBinary
	SelectionText
)

func (selection Selection) String() string {
	switch selection {
	case SelectionBinary:
		return "binary"
	case SelectionText:
		return "text"
	case SelectionUnrecognized:
		return "unrecognized"
	default:
		return "missing"
	}
}

// Classify matches contentType against the two descriptors. The match is exact and
// case-sensitive; parameters such as charset are not stripped.
func Classify(contentType string) Selection {
	switch mimetype.MimeType(contentType) {
	case mimetype.UNKNOWN:
		return SelectionMissing
	case BinaryContentType:
		return SelectionBinary
	case TextContentType:
		return SelectionText
	default:
		return SelectionUnrecognized
	}
}
