// Package temporal converts the heterogeneous timestamp representations the
// record sources deliver (RFC3339 strings, naive local strings, epoch
// numbers, already-typed values) into one canonical form: UTC time.Time.
// Parsing is tolerant: an unusable value reports absence, it never errors.
package temporal

import (
	"strconv"
	"strings"
	"time"

	"github.com/vkleiv/energy-data-pipeline/internal/record"
)

// layouts are tried in order. Layouts without a zone designator are
// interpreted as UTC, which is the canonical policy everywhere in this
// service; conversion to local time happens only at presentation boundaries.
var layouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// Parse converts a source value into a canonical UTC timestamp.
// Returns false for missing, malformed, boolean and collection values.
func Parse(v record.Value) (time.Time, bool) {
	switch v.Kind() {
	case record.KindTime:
		t, _ := v.TimeVal()
		return t.UTC(), true
	case record.KindString:
		s, _ := v.Str()
		return ParseString(s)
	case record.KindNumber:
		n, _ := v.Num()
		return parseEpoch(n)
	}
	return time.Time{}, false
}

// ParseString tries the known layouts, then an epoch number in string form.
func ParseString(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	if n, err := strconv.ParseFloat(s, 64); err == nil {
		return parseEpoch(n)
	}
	return time.Time{}, false
}

// parseEpoch treats values of at least 1e12 as unix milliseconds, anything
// else positive as unix seconds.
func parseEpoch(n float64) (time.Time, bool) {
	if n <= 0 {
		return time.Time{}, false
	}
	if n >= 1e12 {
		return time.UnixMilli(int64(n)).UTC(), true
	}
	return time.Unix(int64(n), 0).UTC(), true
}
