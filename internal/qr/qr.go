// Package qr scans a page image for an embedded QR code. Code absence is an
// expected, non-fatal outcome: the caller advances to the next page and only
// falls back to OCR once every page has yielded nothing.
package qr

import (
	"image"
	"log/slog"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/qrcode"
)

// Scanner detects and decodes a single QR payload from a page image.
type Scanner struct {
	logger *slog.Logger
}

func NewScanner(logger *slog.Logger) *Scanner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scanner{logger: logger}
}

// Scan returns the first decoded QR payload as UTF-8 text, or ok=false when
// no code is present or decodable. Never returns an error: a failed scan is
// a defined fallback trigger, not a fault.
func (s *Scanner) Scan(img image.Image) (payload string, ok bool) {
	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		s.logger.Debug("qr bitmap conversion failed", "error", err)
		return "", false
	}

	result, err := qrcode.NewQRCodeReader().Decode(bmp, nil)
	if err != nil {
		s.logger.Debug("no qr code detected")
		return "", false
	}

	text := result.GetText()
	if text == "" {
		return "", false
	}
	s.logger.Debug("qr code decoded", "payload_bytes", len(text))
	return text, true
}
