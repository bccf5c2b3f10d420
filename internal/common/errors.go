package common

import (
	"errors"
	"net/http"
)

// Pipeline error taxonomy. Only ErrUnsupportedMediaKind maps to a rejected
// request; every other condition is absorbed into the result record so the
// call itself always succeeds at the transport level.
var (
	// ErrUnsupportedMediaKind rejects payloads whose declared media type is
	// neither a recognized image nor a PDF. Checked before any recognition work.
	ErrUnsupportedMediaKind = errors.New("unsupported media kind")

	// ErrCodeDecodeFailure marks a structured code whose payload could not be
	// decoded. Recoverable: triggers the OCR fallback, never surfaced.
	ErrCodeDecodeFailure = errors.New("secure code decode failed")

	// ErrDateParseFailure marks a date of birth that did not parse under any
	// supported convention. Recoverable: resets the date/age fields.
	ErrDateParseFailure = errors.New("date of birth parse failed")
)

// ExtractionIncompleteMessage is the fixed error text set on the result when
// neither tier produced a valid id number.
const ExtractionIncompleteMessage = "could not extract valid identity details"

// HTTPStatus maps pipeline errors to HTTP status codes for the boundary.
func HTTPStatus(err error) int {
	if errors.Is(err, ErrUnsupportedMediaKind) {
		return http.StatusUnsupportedMediaType
	}
	return http.StatusInternalServerError
}
