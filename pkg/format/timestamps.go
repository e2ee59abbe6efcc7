package format

import (
	"fmt"
	"strings"
	"time"
)

// DisplayLayout is the panel-wide rendering of timestamps.
const DisplayLayout = "2006-01-02 15:04"

const fallbackRunes = 16

// inputLayouts are tried in order. Go accepts a fractional second after the seconds field while
// parsing even when the layout omits it, so each layout covers both precisions.
var inputLayouts = []string{
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05-0700",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05-0700",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTimestamp parses the loosely formatted timestamps written by the bot. Inputs without an
// offset are returned in UTC.
func ParseTimestamp(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range inputLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatTimestamp reformats raw with layout. Unparseable input is returned truncated to its first
// 16 characters, which keeps "YYYY-MM-DDTHH:MM" readable for unexpected formats.
func FormatTimestamp(raw, layout string) string {
	if raw == "" {
		return ""
	}
	if layout == "" {
		layout = DisplayLayout
	}
	if t, ok := ParseTimestamp(raw); ok {
		return t.Format(layout)
	}
	runes := []rune(raw)
	if len(runes) > fallbackRunes {
		return string(runes[:fallbackRunes])
	}
	return raw
}

// FormatValue renders any timestamp-like value coming out of the store or a template.
func FormatValue(value interface{}, layout string) string {
	if layout == "" {
		layout = DisplayLayout
	}
	switch v := value.(type) {
	case nil:
		return ""
	case time.Time:
		if v.IsZero() {
			return ""
		}
		return v.Format(layout)
	case *time.Time:
		if v == nil || v.IsZero() {
			return ""
		}
		return v.Format(layout)
	case string:
		return FormatTimestamp(v, layout)
	case []byte:
		return FormatTimestamp(string(v), layout)
	default:
		return fmt.Sprint(v)
	}
}
