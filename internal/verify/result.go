package verify

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/joseph-ayodele/aadhaar-verifier/internal/common"
	"github.com/joseph-ayodele/aadhaar-verifier/internal/fields"
)

// Result is the sole output of a verification call. The id number is masked
// before the record leaves the normalizer; the unmasked digits exist only
// inside normalize.
type Result struct {
	IDNumber    *string `json:"id_number"`
	DOB         *string `json:"dob"`
	Name        *string `json:"name"`
	Is18OrOlder bool    `json:"is_18_or_older"`
	Valid       bool    `json:"valid"`
	Error       *string `json:"error"`
}

var reValidID = regexp.MustCompile(`^\d{12}$`)

const adultAge = 18

// normalize validates a provisional field set, computes age eligibility,
// masks the id number, and assembles the result record. Shared by both
// decode tiers. now is the call time; age depends only on it and the parsed
// date.
func normalize(f fields.Fields, now time.Time) Result {
	var res Result

	// unmasked id stays local to this function
	id := f.ID
	if reValidID.MatchString(id) {
		res.Valid = true
	}

	if f.DOB != "" {
		if dob, err := parseDOB(f.DOB); err == nil {
			d := f.DOB
			res.DOB = &d
			res.Is18OrOlder = ageYears(dob, now) >= adultAge
		}
		// parse failure: dob and age flag stay absent/false; a malformed
		// date must not retain a stale value
	}

	if f.Name != "" {
		n := f.Name
		res.Name = &n
	}

	if !res.Valid {
		msg := common.ExtractionIncompleteMessage
		res.Error = &msg
	}

	if id != "" {
		masked := maskID(id)
		res.IDNumber = &masked
	}

	return res
}

// parseDOB selects the layout by the separator convention of the raw value.
func parseDOB(s string) (time.Time, error) {
	var layout string
	switch {
	case strings.Contains(s, "/"):
		layout = "02/01/2006"
	case strings.Contains(s, "-"):
		if len(strings.SplitN(s, "-", 2)[0]) == 2 {
			layout = "02-01-2006"
		} else {
			layout = "2006-01-02"
		}
	default:
		layout = "02 01 2006"
	}
	t, err := time.Parse(layout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", common.ErrDateParseFailure, err)
	}
	return t, nil
}

// ageYears computes age as whole elapsed days floor-divided by 365. This is
// a deliberate approximation, not calendar-exact year subtraction;
// downstream eligibility checks depend on reproducing it exactly.
func ageYears(dob, now time.Time) int {
	days := int(now.Sub(dob).Hours() / 24)
	return days / 365
}

// maskID hides all but the last four digits, regardless of validity.
func maskID(id string) string {
	last4 := id
	if len(id) > 4 {
		last4 = id[len(id)-4:]
	}
	return "XXXX XXXX " + last4
}
