package util

import (
	"fmt"
	"time"

	"crossmarket/internal/domain"
)

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(domain.DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: want YYYY-MM-DD", s)
	}
	return t, nil
}

// ValidateRange checks that both bounds parse as calendar dates and that
// start does not come after end. Empty bounds are allowed and mean
// open-ended.
func ValidateRange(start, end string) error {
	if start != "" {
		if _, err := ParseDate(start); err != nil {
			return err
		}
	}
	if end != "" {
		if _, err := ParseDate(end); err != nil {
			return err
		}
	}
	if start != "" && end != "" && start > end {
		return fmt.Errorf("invalid range: start %s is after end %s", start, end)
	}
	return nil
}
