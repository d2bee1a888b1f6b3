package dateextract

import (
	"strings"
	"time"
)

// dateFormats is the fixed ordered list of accepted timestamp layouts. The
// first layout that parses wins. Fractional seconds are accepted after the
// seconds field regardless of layout.
var dateFormats = []string{
	"2006-01-02T15:04:05Z0700",  // explicit offset, or literal Z
	"2006-01-02T15:04:05Z07:00", // colon-separated offset
	"2006-01-02T15:04:05",       // no zone; treated as UTC
	"2006-01-02",                // date only
}

// ParseDate parses an ISO-8601-ish date string. UTC-offset spellings are
// normalized (+00:00 and -00:00 become +0000) before the layout list is
// tried. A timestamp with no explicit zone is treated as UTC. Returns false
// when no layout matches.
func ParseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}

	value = strings.ReplaceAll(value, "+00:00", "+0000")
	value = strings.ReplaceAll(value, "-00:00", "+0000")

	for _, layout := range dateFormats {
		t, err := time.Parse(layout, value)
		if err != nil {
			continue
		}
		return t.UTC(), true
	}

	return time.Time{}, false
}
