package jsonpatch

import (
	"fmt"
	"math"
	"strconv"
)

// Number is a JSON number held either as an exact int64 or as a float64.
// Two numbers are equal when their numeric values are equal, whatever the
// representation.
type Number struct {
	f     float64
	i     int64
	exact bool
}

// NewInt returns an exact integer number.
func NewInt(i int64) Number {
	return Number{i: i, f: float64(i), exact: true}
}

// NewFloat returns a floating point number.
func NewFloat(f float64) Number {
	return Number{f: f}
}

// ParseNumber parses a JSON number literal. Integer literals that fit in an
// int64 stay exact.
func ParseNumber(lit string) (Number, error) {
	if i, err := strconv.ParseInt(lit, 10, 64); err == nil {
		return NewInt(i), nil
	}
	f, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		return Number{}, fmt.Errorf("%w: invalid number literal %q", ErrUnsupportedType, lit)
	}
	return NewFloat(f), nil
}

func (Number) Kind() Kind { return NumberKind }
func (Number) isValue()   {}

// Float64 returns the value as a float64.
func (n Number) Float64() float64 {
	return n.f
}

// Int64 returns the value as an int64 and whether it is an integer that
// fits.
func (n Number) Int64() (int64, bool) {
	if n.exact {
		return n.i, true
	}
	if n.f != math.Trunc(n.f) || n.f < math.MinInt64 || n.f >= math.MaxInt64 {
		return 0, false
	}
	return int64(n.f), true
}

// String formats the number the way JSON writes it.
func (n Number) String() string {
	if n.exact {
		return strconv.FormatInt(n.i, 10)
	}
	return strconv.FormatFloat(n.f, 'g', -1, 64)
}

// equalNumber compares by value. NaN equals NaN so that a value read from a
// document always tests equal to itself. An integer and a float are compared
// exactly, not through float64 rounding.
func equalNumber(a, b Number) bool {
	switch {
	case a.exact && b.exact:
		return a.i == b.i
	case a.exact:
		return intEqualsFloat(a.i, b.f)
	case b.exact:
		return intEqualsFloat(b.i, a.f)
	}
	if math.IsNaN(a.f) && math.IsNaN(b.f) {
		return true
	}
	return a.f == b.f
}

func intEqualsFloat(i int64, f float64) bool {
	if f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return false
	}
	return i == int64(f)
}
