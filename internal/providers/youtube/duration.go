package youtube

import (
	"fmt"
	"strconv"
	"time"
)

// parseDuration reads the ISO-8601 durations the Data API returns, such as
// "PT1H2M3S" or "P1DT30M". Years and months never occur for videos and are
// rejected.
func parseDuration(s string) (time.Duration, error) {
	if len(s) < 2 || s[0] != 'P' {
		return 0, fmt.Errorf("invalid duration %q", s)
	}

	var total time.Duration
	inTime := false
	num := ""
	for _, r := range s[1:] {
		switch {
		case r == 'T':
			if inTime || num != "" {
				return 0, fmt.Errorf("invalid duration %q", s)
			}
			inTime = true
		case r >= '0' && r <= '9', r == '.':
			num += string(r)
		default:
			if num == "" {
				return 0, fmt.Errorf("invalid duration %q", s)
			}
			v, err := strconv.ParseFloat(num, 64)
			if err != nil {
				return 0, fmt.Errorf("invalid duration %q: %w", s, err)
			}
			num = ""

			var unit time.Duration
			switch {
			case r == 'W' && !inTime:
				unit = 7 * 24 * time.Hour
			case r == 'D' && !inTime:
				unit = 24 * time.Hour
			case r == 'H' && inTime:
				unit = time.Hour
			case r == 'M' && inTime:
				unit = time.Minute
			case r == 'S' && inTime:
				unit = time.Second
			default:
				return 0, fmt.Errorf("unsupported duration unit %q in %q", r, s)
			}
			total += time.Duration(v * float64(unit))
		}
	}
	if num != "" {
		return 0, fmt.Errorf("invalid duration %q", s)
	}
	return total, nil
}

// durationBucket maps a maximum duration to the search API's videoDuration
// parameter.
func durationBucket(max time.Duration) string {
	switch {
	case max <= 0:
		return ""
	case max <= 4*time.Minute:
		return "short"
	case max <= 20*time.Minute:
		return "medium"
	default:
		return "long"
	}
}
