package time

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

var (
	ErrInvalidFormat = errors.New("duration is empty")
	ErrInvalidNumber = errors.New("invalid duration number")
	ErrInvalidUnit   = errors.New("invalid duration unit")
)

// units maps a duration suffix to its length in seconds.
var units = map[rune]int64{
	's': 1,
	'm': 60,
	'h': 60 * 60,
	'd': 24 * 60 * 60,
}

// ParseDuration parses a compact duration such as "14d", "23m", "12h" or "1s".
//
// The last character is the unit and everything before it must be an unsigned
// decimal integer. The result is always a whole number of seconds.
func ParseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidFormat
	}

	unit, size := utf8.DecodeLastRuneInString(s)
	num := s[:len(s)-size]

	n, err := parseUnsigned(num)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidNumber, s)
	}

	secs, ok := units[unit]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidUnit, string(unit))
	}

	if n > uint64(math.MaxInt64/int64(time.Second)/secs) {
		return 0, fmt.Errorf("%w: %q is out of range", ErrInvalidNumber, s)
	}

	return time.Duration(int64(n)*secs) * time.Second, nil
}

// parseUnsigned accepts ASCII digits only.
func parseUnsigned(s string) (uint64, error) {
	if s == "" {
		return 0, errors.New("empty number")
	}

	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, fmt.Errorf("unexpected character %q", s[i])
		}
	}

	return strconv.ParseUint(s, 10, 64)
}
