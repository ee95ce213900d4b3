package moderation

import (
	"fmt"
	"math"
	"strconv"
	"time"
	"unicode"
)

var durationUnits = map[rune]time.Duration{
	's': time.Second,
	'm': time.Minute,
	'h': time.Hour,
	'd': 24 * time.Hour,
	'w': 7 * 24 * time.Hour,
}

// ParseDuration parses punishment durations made of <number><unit> groups,
// e.g. "30m", "1d" or "1w2d12h". Units are s, m, h, d and w, case-insensitive.
func ParseDuration(s string) (time.Duration, error) {
	if s == "" {
		return 0, fmt.Errorf("empty duration")
	}

	var total time.Duration
	number := ""
	for _, r := range s {
		switch {
		case unicode.IsDigit(r):
			number += string(r)
		default:
			unit, ok := durationUnits[unicode.ToLower(r)]
			if !ok {
				return 0, fmt.Errorf("invalid duration %q: unknown unit %q", s, r)
			}
			if number == "" {
				return 0, fmt.Errorf("invalid duration %q: unit %q without a number", s, r)
			}
			n, err := strconv.ParseInt(number, 10, 64)
			if err != nil {
				return 0, fmt.Errorf("invalid duration %q: %w", s, err)
			}
			if n > math.MaxInt64/int64(unit) {
				return 0, fmt.Errorf("invalid duration %q: out of range", s)
			}
			part := time.Duration(n) * unit
			if total > math.MaxInt64-part {
				return 0, fmt.Errorf("invalid duration %q: out of range", s)
			}
			total += part
			number = ""
		}
	}

	if number != "" {
		return 0, fmt.Errorf("invalid duration %q: missing unit after %s", s, number)
	}
	if total <= 0 {
		return 0, fmt.Errorf("invalid duration %q: must be positive", s)
	}
	return total, nil
}
