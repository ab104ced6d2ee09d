package household

import (
	"fmt"
	"strconv"
	"strings"
)

// Count bounds. Values outside them are clamped, never rejected. The maximums keep every derived
// quantity far inside the int range.
const (
	MinOccupants = 1
	MaxOccupants = 50
	MinHelpers   = 0
	MaxHelpers   = 50
	MinCount     = 0
	MaxCount     = 500
)

// ErrInputRange describes a raw numeric input that had to be corrected. It is informational: the
// corrected value is always returned alongside it and the caller carries on.
type ErrInputRange struct {
	error
}

func NewErrInputRange(field, raw string, corrected int) *ErrInputRange {
	return &ErrInputRange{fmt.Errorf("%s: %q is not a valid count, using %d", field, raw, corrected)}
}

func ClampOccupants(n int) int { return clamp(n, MinOccupants, MaxOccupants) }

func ClampHelpers(n int) int { return clamp(n, MinHelpers, MaxHelpers) }

func ClampCount(n int) int { return clamp(n, MinCount, MaxCount) }

// ParseCount reads a raw count entered by a user. Values that are empty or non-numeric are replaced by
// min, values outside [min, max] by the nearest bound; both are reported with ErrInputRange.
func ParseCount(field, raw string, min, max int) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return min, NewErrInputRange(field, raw, min)
	}
	if c := clamp(n, min, max); c != n {
		return c, NewErrInputRange(field, raw, c)
	}
	return n, nil
}

func clamp(n, min, max int) int {
	if n < min {
		return min
	}
	if n > max {
		return max
	}
	return n
}
