package secureqr

import (
	"bytes"
	"compress/gzip"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/aadhaar-verifier/internal/common"
)

// encodePayload builds a wire payload the way the issuing authority would:
// 0xFF-joined fields, gzip-compressed, rendered as a base-10 integer.
func encodePayload(t *testing.T, fieldValues ...string) string {
	t.Helper()
	var raw bytes.Buffer
	for i, f := range fieldValues {
		if i > 0 {
			raw.WriteByte(0xFF)
		}
		raw.WriteString(f)
	}
	var compressed bytes.Buffer
	zw := gzip.NewWriter(&compressed)
	_, err := zw.Write(raw.Bytes())
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return new(big.Int).SetBytes(compressed.Bytes()).String()
}

func TestDecodeRoundTrip(t *testing.T) {
	payload := encodePayload(t, "123456789012", "15-06-2000", "Jane Doe")

	d, err := Decode(payload)
	require.NoError(t, err)
	assert.Equal(t, "123456789012", d.IDNumber)
	assert.Equal(t, "15-06-2000", d.DOB)
	assert.Equal(t, "Jane Doe", d.Name)
}

func TestDecodeToleratesExtraFields(t *testing.T) {
	payload := encodePayload(t, "123456789012", "15-06-2000", "Jane Doe", "F", "110001")

	d, err := Decode(payload)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", d.Name)
}

func TestDecodeToleratesSurroundingWhitespace(t *testing.T) {
	payload := "  " + encodePayload(t, "123456789012", "15-06-2000", "Jane Doe") + "\n"

	d, err := Decode(payload)
	require.NoError(t, err)
	assert.Equal(t, "123456789012", d.IDNumber)
}

func TestDecodeMalformed(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"not base-10", "hello world"},
		{"empty", ""},
		{"decimal but not gzip", "123456789012345678901234567890"},
		{"too few fields", encodeRaw(t, "only-one-field")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.payload)
			require.Error(t, err)
			assert.ErrorIs(t, err, common.ErrCodeDecodeFailure)
		})
	}
}

func encodeRaw(t *testing.T, s string) string {
	t.Helper()
	var compressed bytes.Buffer
	zw := gzip.NewWriter(&compressed)
	_, err := zw.Write([]byte(s))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return new(big.Int).SetBytes(compressed.Bytes()).String()
}

func TestDecoderAdapterMapsFields(t *testing.T) {
	payload := encodePayload(t, "123456789012", "15-06-2000", "Jane Doe")

	f, err := Decoder{}.Decode(payload)
	require.NoError(t, err)
	assert.Equal(t, "123456789012", f.ID)
	assert.Equal(t, "15-06-2000", f.DOB)
	assert.Equal(t, "Jane Doe", f.Name)
}
