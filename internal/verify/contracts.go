package verify

import (
	"context"
	"image"

	"github.com/joseph-ayodele/aadhaar-verifier/constants"
	"github.com/joseph-ayodele/aadhaar-verifier/internal/fields"
)

// PageSource turns an uploaded payload into an ordered sequence of page
// images.
type PageSource interface {
	Materialize(ctx context.Context, payload []byte, kind constants.ContentKind) ([]image.Image, error)
}

// CodeScanner detects and decodes a structured code from a page image.
// ok=false means no code present or decodable on that page, which is an
// expected outcome, not an error.
type CodeScanner interface {
	Scan(img image.Image) (payload string, ok bool)
}

// SecureDecoder turns a raw code payload into a provisional field set, or
// errors on malformed input.
type SecureDecoder interface {
	Decode(payload string) (fields.Fields, error)
}

// TextRecognizer runs OCR over the whole payload and returns concatenated
// recognized text (may be empty).
type TextRecognizer interface {
	ExtractText(ctx context.Context, payload []byte, kind constants.ContentKind) (string, error)
}
