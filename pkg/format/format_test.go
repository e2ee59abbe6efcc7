package format

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFullName(t *testing.T) {
	cases := []struct {
		raw   string
		first string
		last  string
	}{
		{"", "", ""},
		{"   ", "", ""},
		{"Ivan", "Ivan", ""},
		{"  Ivan  ", "Ivan", ""},
		{"Ivan Petrov", "Ivan", "Petrov"},
		{"Ivan   Petrovich\tPetrov", "Ivan", "Petrovich Petrov"},
	}
	for _, tc := range cases {
		first, last := ParseFullName(tc.raw)
		assert.Equal(t, tc.first, first, tc.raw)
		assert.Equal(t, tc.last, last, tc.raw)
	}
}

func TestParseFullNameRejoinsNormalisedTokens(t *testing.T) {
	for _, raw := range []string{"Anna Maria  Schmidt", "\tLe   Van Thanh ", "Иван Иванович Иванов"} {
		first, last := ParseFullName(raw)
		assert.Equal(t, strings.Join(strings.Fields(raw), " "), first+" "+last)
	}
}

func TestFormatTimestamp(t *testing.T) {
	cases := map[string]string{
		"2024-01-15T14:30:00.123456+00:00": "2024-01-15 14:30",
		"2024-01-15T14:30:00+00:00":        "2024-01-15 14:30",
		"2024-01-15T14:30:00Z":             "2024-01-15 14:30",
		"2024-01-15 14:30:00.5+03:00":      "2024-01-15 14:30",
		"2024-01-15 14:30:00+0300":         "2024-01-15 14:30",
		"2024-01-15T14:30:00":              "2024-01-15 14:30",
		"2024-01-15 14:30:00":              "2024-01-15 14:30",
		"2024-01-15":                       "2024-01-15 00:00",
		"not-a-date":                       "not-a-date",
		"yesterday around lunchtime":       "yesterday around",
		"":                                 "",
	}
	for raw, want := range cases {
		assert.Equal(t, want, FormatTimestamp(raw, "2006-01-02 15:04"), raw)
	}
}

func TestFormatTimestampKeepsOffsetWallClock(t *testing.T) {
	assert.Equal(t, "15.01.2024 23:59", FormatTimestamp("2024-01-15T23:59:00-05:00", "02.01.2006 15:04"))
}

func TestFormatTimestampTruncatesByCharacter(t *testing.T) {
	assert.Equal(t, "пятнадцатое янва", FormatTimestamp("пятнадцатое января", DisplayLayout))
}

func TestParseTimestamp(t *testing.T) {
	ts, ok := ParseTimestamp("2024-01-15 14:30:00")
	require.True(t, ok)
	assert.Equal(t, time.UTC, ts.Location())

	_, ok = ParseTimestamp("15/01/2024")
	assert.False(t, ok)
}

func TestFormatValue(t *testing.T) {
	ts := time.Date(2024, 3, 1, 9, 5, 0, 0, time.UTC)
	assert.Equal(t, "2024-03-01 09:05", FormatValue(ts, ""))
	assert.Equal(t, "2024-03-01 09:05", FormatValue(&ts, ""))
	assert.Equal(t, "", FormatValue(nil, ""))
	assert.Equal(t, "", FormatValue(time.Time{}, ""))
	assert.Equal(t, "2024-01-15 14:30", FormatValue([]byte("2024-01-15T14:30:00Z"), ""))
	assert.Equal(t, "42", FormatValue(42, ""))
}
