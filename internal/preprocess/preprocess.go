// Package preprocess prepares a page image for recognition. The same
// treatment feeds both the QR scanner and the OCR engine; the scanner
// benefits from the contrast/sharpen pass as much as free-text recognition.
package preprocess

import (
	"image"

	"github.com/disintegration/imaging"
)

// Fixed adjustment multipliers. Tuned for scanned identity documents;
// recognition accuracy depends on these staying identical across both
// decode tiers.
const (
	contrastBoost   = 100 // percent
	sharpenSigma    = 1.0
	brightnessBoost = 20 // percent
)

// Enhance converts a page image to grayscale, boosts contrast, sharpens
// edges, and lifts brightness. Pure function: deterministic for identical
// input, no side effects.
func Enhance(img image.Image) *image.NRGBA {
	out := imaging.Grayscale(img)
	out = imaging.AdjustContrast(out, contrastBoost)
	out = imaging.Sharpen(out, sharpenSigma)
	out = imaging.AdjustBrightness(out, brightnessBoost)
	return out
}
