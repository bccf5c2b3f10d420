// Package secureqr decodes the machine-readable payload embedded in the
// document's secure QR code. The payload is a base-10 decimal rendering of a
// gzip-compressed byte stream whose fields are delimited by 0xFF, in order:
// id number, date of birth (DD-MM-YYYY), holder name, then optional extras.
package secureqr

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"math/big"
	"strings"

	"github.com/joseph-ayodele/aadhaar-verifier/internal/common"
)

// fieldSeparator delimits fields inside the decompressed payload.
const fieldSeparator = 0xFF

// Data is the decoded field structure. Values are raw, pre-validation
// strings; downstream decides what counts as valid.
type Data struct {
	IDNumber string
	DOB      string // DD-MM-YYYY
	Name     string
}

// Decode parses a raw QR payload string. Malformed payloads return an error
// wrapping common.ErrCodeDecodeFailure; callers treat that as "no structured
// data" and fall through to recognition.
func Decode(payload string) (Data, error) {
	n, ok := new(big.Int).SetString(strings.TrimSpace(payload), 10)
	if !ok {
		return Data{}, fmt.Errorf("%w: payload is not base-10", common.ErrCodeDecodeFailure)
	}

	zr, err := gzip.NewReader(bytes.NewReader(n.Bytes()))
	if err != nil {
		return Data{}, fmt.Errorf("%w: %v", common.ErrCodeDecodeFailure, err)
	}
	raw, err := io.ReadAll(zr)
	if cerr := zr.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return Data{}, fmt.Errorf("%w: %v", common.ErrCodeDecodeFailure, err)
	}

	parts := bytes.Split(raw, []byte{fieldSeparator})
	if len(parts) < 3 {
		return Data{}, fmt.Errorf("%w: expected at least 3 fields, got %d", common.ErrCodeDecodeFailure, len(parts))
	}

	return Data{
		IDNumber: string(parts[0]),
		DOB:      string(parts[1]),
		Name:     string(parts[2]),
	}, nil
}
