package models

import (
	"fmt"
	"strings"
	"time"
)

// NormalizeDate parses a stored date that may be a bare YYYY-MM-DD or a full
// RFC 3339 timestamp and returns the calendar date reconstructed at local
// noon. Reconstructing at noon keeps the date stable across timezone offsets
// when callers later truncate back to a day.
func NormalizeDate(s string) (time.Time, error) {
	datePart := s
	if i := strings.IndexByte(s, 'T'); i >= 0 {
		datePart = s[:i]
	}
	d, err := time.ParseInLocation("2006-01-02", datePart, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing date %q: %w", s, err)
	}
	return d.Add(12 * time.Hour), nil
}
