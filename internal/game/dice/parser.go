package dice

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cory-johannsen/geoquest/internal/game/combaterr"
)

// Expression represents a parsed dice expression ready to be rolled.
// Precondition: Count >= 1, Sides >= 1 after successful Parse.
type Expression struct {
	Raw         string // original input string
	Count       int    // number of dice
	Sides       int    // faces per die
	Modifier    int    // flat modifier (may be negative)
	KeepHighest int    // if > 0, keep only the N highest dice (e.g. 4d6kh3)
}

// Min returns the smallest total the expression can produce.
func (e Expression) Min() int {
	n := e.Count
	if e.KeepHighest > 0 {
		n = e.KeepHighest
	}
	return n + e.Modifier
}

// Max returns the largest total the expression can produce.
func (e Expression) Max() int {
	n := e.Count
	if e.KeepHighest > 0 {
		n = e.KeepHighest
	}
	return n*e.Sides + e.Modifier
}

// MaxDice is the largest die count a single expression may roll.
const MaxDice = 100

// invalid wraps a parse failure so callers can match combaterr.ErrInvalidDiceNotation.
func invalid(raw, format string, args ...any) error {
	return combaterr.Wrap(combaterr.KindInvalidDiceNotation,
		fmt.Errorf(format, args...), fmt.Sprintf("dice: invalid notation %q", raw))
}

// Parse parses a dice expression string into an Expression.
// Supported forms: "d20", "2d6", "2d6+3", "4d8-2", "4d6kh3".
//
// Precondition: expr must be a non-empty string.
// Postcondition: Returns a valid Expression or an error matching
// combaterr.ErrInvalidDiceNotation.
func Parse(expr string) (Expression, error) {
	raw := expr
	s := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(expr), " ", ""))
	if s == "" {
		return Expression{}, invalid(raw, "empty expression")
	}

	dIdx := strings.Index(s, "d")
	if dIdx < 0 {
		return Expression{}, invalid(raw, "missing 'd'")
	}

	// Count defaults to 1 when omitted.
	count := 1
	if countStr := s[:dIdx]; countStr != "" {
		var err error
		count, err = strconv.Atoi(countStr)
		if err != nil {
			return Expression{}, invalid(raw, "die count: %w", err)
		}
		if count <= 0 {
			return Expression{}, invalid(raw, "die count must be >= 1")
		}
		if count > MaxDice {
			return Expression{}, invalid(raw, "die count %d exceeds %d", count, MaxDice)
		}
	}

	rest := s[dIdx+1:]

	keepHighest := 0
	if khIdx := strings.Index(rest, "kh"); khIdx >= 0 {
		khPart := rest[khIdx+2:]
		rest = rest[:khIdx]

		khStr := khPart
		if off := signOffset(khPart); off >= 0 {
			khStr = khPart[:off]
			rest += khPart[off:]
		}
		kh, err := strconv.Atoi(khStr)
		if err != nil {
			return Expression{}, invalid(raw, "kh value: %w", err)
		}
		if kh <= 0 || kh >= count {
			return Expression{}, invalid(raw, "kh value %d must be > 0 and < count %d", kh, count)
		}
		keepHighest = kh
	}

	sidesStr, modStr := rest, ""
	if off := signOffset(rest); off >= 0 {
		sidesStr, modStr = rest[:off], rest[off:]
	}

	sides, err := strconv.Atoi(sidesStr)
	if err != nil {
		return Expression{}, invalid(raw, "die sides: %w", err)
	}
	if sides < 1 {
		return Expression{}, invalid(raw, "die sides must be >= 1")
	}

	modifier := 0
	if modStr != "" {
		modifier, err = strconv.Atoi(modStr)
		if err != nil {
			return Expression{}, invalid(raw, "modifier: %w", err)
		}
	}

	return Expression{
		Raw:         raw,
		Count:       count,
		Sides:       sides,
		Modifier:    modifier,
		KeepHighest: keepHighest,
	}, nil
}

// signOffset returns the index of the first '+' or '-' after position 0, or -1.
func signOffset(s string) int {
	for i := 1; i < len(s); i++ {
		if s[i] == '+' || s[i] == '-' {
			return i
		}
	}
	return -1
}
