package time

import (
	"strings"
	"time"
)

// ShortDur shortens the string representation of a time.Duration from
// d.String(), dropping zero-valued trailing units ("1m0s" -> "1m").
func ShortDur(d time.Duration) string {
	s := d.String()
	if d == 0 {
		return "0s"
	}
	if strings.HasSuffix(s, "m0s") {
		s = s[:len(s)-2]
	}
	if strings.HasSuffix(s, "h0m") {
		s = s[:len(s)-2]
	}
	return s
}

// HumanDur renders a duration for the report table: sub-second durations are
// rounded to the millisecond, everything else to the second.
func HumanDur(d time.Duration) string {
	if d < 0 {
		d = -d
	}
	if d < time.Second {
		return ShortDur(d.Round(time.Millisecond))
	}
	return ShortDur(d.Round(time.Second))
}
