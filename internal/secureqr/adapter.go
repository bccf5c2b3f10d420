package secureqr

import "github.com/joseph-ayodele/aadhaar-verifier/internal/fields"

// Decoder adapts Decode to the pipeline's provisional field set.
type Decoder struct{}

func (Decoder) Decode(payload string) (fields.Fields, error) {
	d, err := Decode(payload)
	if err != nil {
		return fields.Fields{}, err
	}
	return fields.Fields{ID: d.IDNumber, DOB: d.DOB, Name: d.Name}, nil
}
