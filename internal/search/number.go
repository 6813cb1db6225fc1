package search

import (
	"math"
	"strconv"
)

// maxExactInteger bounds the magnitude printed as a plain integer.
const maxExactInteger = 1e18

// IsIntegral reports whether v is a finite number equal to its own truncation.
func IsIntegral(v float64) bool {
	return !math.IsInf(v, 0) && !math.IsNaN(v) && v == math.Trunc(v)
}

// Normalize canonicalizes v. Integral values are truncated exactly (and
// negative zero becomes zero); everything else is returned untouched.
func Normalize(v float64) float64 {
	if IsIntegral(v) {
		t := math.Trunc(v)
		if t == 0 {
			return 0
		}
		return t
	}
	return v
}

// Format prints v the way it appears in step labels: integral values without
// a fractional part, real values in their shortest round-trip form.
func Format(v float64) string {
	if IsIntegral(v) && math.Abs(v) < maxExactInteger {
		return strconv.FormatFloat(v, 'f', 0, 64)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// floorMod returns l mod r with the sign of the divisor.
func floorMod(l, r float64) float64 {
	m := math.Mod(l, r)
	if m != 0 && (m < 0) != (r < 0) {
		m += r
	}
	return m
}

// reverseDigits reverses the decimal digits of |v|. v must be integral.
func reverseDigits(v float64) float64 {
	digits := []byte(strconv.FormatFloat(math.Abs(v), 'f', 0, 64))
	for i, j := 0, len(digits)-1; i < j; i, j = i+1, j-1 {
		digits[i], digits[j] = digits[j], digits[i]
	}
	r, err := strconv.ParseFloat(string(digits), 64)
	if err != nil {
		return 0
	}
	return r
}
