// Package verify implements the two-tier extraction pipeline: decode the
// document's structured code when present, fall back to text recognition
// otherwise, and normalize either tier's fields into the result record.
package verify

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/joseph-ayodele/aadhaar-verifier/constants"
	"github.com/joseph-ayodele/aadhaar-verifier/internal/common"
	"github.com/joseph-ayodele/aadhaar-verifier/internal/fields"
	"github.com/joseph-ayodele/aadhaar-verifier/internal/preprocess"
)

type Verifier struct {
	pages      PageSource
	scanner    CodeScanner
	decoder    SecureDecoder
	recognizer TextRecognizer
	logger     *slog.Logger
	now        func() time.Time
}

func NewVerifier(pages PageSource, scanner CodeScanner, decoder SecureDecoder, recognizer TextRecognizer, logger *slog.Logger) *Verifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Verifier{
		pages:      pages,
		scanner:    scanner,
		decoder:    decoder,
		recognizer: recognizer,
		logger:     logger,
		now:        time.Now,
	}
}

// pipeline states. The short-circuit rule (a complete code-tier result never
// invokes recognition) is easier to audit as explicit states than as nested
// conditionals.
type state int

const (
	stateTryCode state = iota
	stateFallback
	stateDone
)

// Verify runs the pipeline over one payload. It returns a non-nil error only
// for an unsupported media kind, checked before any recognition work; every
// other failure is absorbed into the record, which is always well-formed.
// Exactly one tier contributes the provisional field set: a code-tier result
// that is incomplete is discarded entirely, never merged with OCR fields.
func (v *Verifier) Verify(ctx context.Context, payload []byte, kind constants.ContentKind) (res Result, err error) {
	if !constants.IsAllowed(kind) {
		return Result{}, fmt.Errorf("%w: %q", common.ErrUnsupportedMediaKind, kind)
	}

	defer func() {
		if r := recover(); r != nil {
			v.logger.Error("pipeline panic", "panic", r)
			// keep whatever was populated so far; the message goes out verbatim
			msg := fmt.Sprintf("%v", r)
			res.Error = &msg
			res.Valid = false
			err = nil
		}
	}()

	st := stateTryCode
	for st != stateDone {
		switch st {
		case stateTryCode:
			pf, ok, fatal := v.tryCode(ctx, payload, kind)
			if fatal != nil {
				res = failureResult(fatal.Error())
				st = stateDone
				continue
			}
			if ok {
				res = normalize(pf, v.now())
				if complete(res) {
					v.logger.Info("verified via structured code")
					st = stateDone
					continue
				}
				v.logger.Info("structured code incomplete, falling back to recognition")
			}
			st = stateFallback

		case stateFallback:
			text, rerr := v.recognizer.ExtractText(ctx, payload, kind)
			if rerr != nil {
				res = failureResult(rerr.Error())
				st = stateDone
				continue
			}
			res = normalize(fields.Extract(text), v.now())
			v.logger.Info("verified via text recognition", "valid", res.Valid)
			st = stateDone
		}
	}
	return res, nil
}

// tryCode scans each page for a structured code, stopping at the first
// payload found, and decodes it. ok=false covers both "no code on any page"
// and "payload would not decode"; either way the pipeline falls through to
// recognition. fatal is reserved for failures before scanning could start.
func (v *Verifier) tryCode(ctx context.Context, payload []byte, kind constants.ContentKind) (fields.Fields, bool, error) {
	imgs, err := v.pages.Materialize(ctx, payload, kind)
	if err != nil {
		return fields.Fields{}, false, err
	}

	var raw string
	for i, img := range imgs {
		if p, ok := v.scanner.Scan(preprocess.Enhance(img)); ok {
			v.logger.Debug("structured code found", "page", i+1)
			raw = p
			break
		}
	}
	if raw == "" {
		v.logger.Debug("no structured code on any page", "pages", len(imgs))
		return fields.Fields{}, false, nil
	}

	pf, err := v.decoder.Decode(raw)
	if err != nil {
		// malformed payload is "no structured data", not a fault
		v.logger.Warn("secure code decode failed", "error", err)
		return fields.Fields{}, false, nil
	}
	return pf, true, nil
}

// complete reports whether a code-tier result satisfies the short-circuit
// rule: valid id, parsed date, non-empty name.
func complete(res Result) bool {
	return res.Valid && res.DOB != nil && res.Name != nil && *res.Name != ""
}

// failureResult carries an unexpected failure message verbatim. The fixed
// extraction-incomplete message never overwrites it.
func failureResult(msg string) Result {
	return Result{Error: &msg}
}
