// Package timefmt formats and parses track times in M:SS form.
package timefmt

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// Format renders seconds as M:SS. Minutes carry no leading zero and may
// exceed 59; negative input renders as 0:00.
func Format(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

// Parse reads an M:SS string back into seconds.
func Parse(s string) (int, error) {
	minutes, secs, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return 0, errors.Newf("invalid time %q: missing ':'", s)
	}

	m, err := strconv.Atoi(minutes)
	if err != nil || m < 0 {
		return 0, errors.Newf("invalid minutes in %q", s)
	}

	if len(secs) != 2 {
		return 0, errors.Newf("invalid seconds in %q: want two digits", s)
	}
	sec, err := strconv.Atoi(secs)
	if err != nil || sec < 0 || sec > 59 {
		return 0, errors.Newf("invalid seconds in %q", s)
	}

	return m*60 + sec, nil
}

// Percent returns position as a percentage of duration, 0 when duration is 0.
func Percent(position, duration int) float64 {
	if duration <= 0 || position <= 0 {
		return 0
	}
	if position >= duration {
		return 100
	}
	return float64(position) / float64(duration) * 100
}
