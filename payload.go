package papermill

import (
	"bytes"
	"context"
)

// PayloadKind is the expected format of a downloaded payload.
type PayloadKind string

const (
	PayloadKindPDF  PayloadKind = "pdf"
	PayloadKindHTML PayloadKind = "html"
)

// Extension returns the file extension for stored payloads of this kind.
func (k PayloadKind) Extension() string {
	return "." + string(k)
}

// PDFSignature is the magic prefix of every PDF file.
var PDFSignature = []byte("%PDF")

// Validate confirms that b is a payload of the expected kind.
func Validate(b []byte, kind PayloadKind) error {
	switch kind {
	case PayloadKindPDF:
		if !bytes.HasPrefix(b, PDFSignature) {
			return Errorf(EBADSIGNATURE, "payload does not start with %%PDF signature")
		}
	case PayloadKindHTML:
		if len(bytes.TrimSpace(b)) == 0 {
			return Errorf(ENOCONTENT, "empty html payload")
		}
	default:
		return Errorf(EINVALID, "unknown payload kind %q", kind)
	}
	return nil
}

// PayloadStore persists validated payloads.
type PayloadStore interface {
	// Save validates the payload and writes it under name, returning the
	// written path. Nothing remains on disk when validation or the write fails.
	Save(ctx context.Context, name string, kind PayloadKind, p *Payload) (string, error)
}
