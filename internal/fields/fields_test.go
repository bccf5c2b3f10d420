package fields

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractIDNumber(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"grouped digits", "Government of India\n1234 5678 9012\n", "123456789012"},
		{"first match wins", "1111 2222 3333 and later 4444 5555 6666", "111122223333"},
		{"ungrouped digits ignored", "123456789012", ""},
		{"too few groups", "1234 5678", ""},
		{"empty text", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Extract(tt.text).ID)
		})
	}
}

func TestExtractDOB(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"slash", "DOB: 15/06/2000", "15/06/2000"},
		{"dash", "DOB: 15-06-2000", "15-06-2000"},
		{"space", "DOB 15 06 2000", "15 06 2000"},
		{"iso", "born 2000-06-15 in", "2000-06-15"},
		{"no date", "no digits here", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Extract(tt.text).DOB)
		})
	}
}

func TestExtractName(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			"anchored to DOB label",
			"Some Header Text\nDOB: 15/06/2000\nJane Doe\n",
			"Jane Doe",
		},
		{
			"anchored to sex marker",
			"Header\nMale\nRavi Kumar Sharma\n",
			"Ravi Kumar Sharma",
		},
		{
			"anchored match preferred over earlier positional match",
			"Unique Identification Authority\nDOB: 15/06/2000\nJane Doe\n",
			"Jane Doe",
		},
		{
			"positional fallback without marker",
			"1234 5678 9012\nJane Doe\n",
			"Jane Doe",
		},
		{
			"no candidate",
			"1234 5678 9012",
			"",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Extract(tt.text).Name)
		})
	}
}

// The positional fallback knowingly matches any 2-3 word alphabetic phrase.
func TestExtractNameFallbackFalsePositive(t *testing.T) {
	f := Extract("Income Tax Department\n")
	assert.Equal(t, "Income Tax Department", f.Name)
}

func TestExtractIndependentHeuristics(t *testing.T) {
	f := Extract("1234 5678 9012 with no date or name tokens like X")
	assert.Equal(t, "123456789012", f.ID)
	assert.Empty(t, f.DOB)
}
