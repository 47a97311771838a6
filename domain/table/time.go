package table

import (
	"strings"
	"time"
)

// timeLayouts are the accepted temporal formats, most specific first.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"01/02/2006",
	"2006/01/02",
	"02-Jan-2006",
	"Jan 2, 2006",
}

// ParseTime parses a raw cell value as a timestamp under the accepted
// layouts. Used by the loader for type inference and by the synthesizer's
// non-mutating temporal probe.
func ParseTime(s string) (time.Time, bool) {
	clean := strings.TrimSpace(s)
	if clean == "" {
		return time.Time{}, false
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, clean); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
