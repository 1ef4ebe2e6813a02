// Package numeric centralizes the coercion rules applied to raw text inputs
// (price, discount, advance, quantity) so every call site falls back the
// same way.
package numeric

import (
	"strconv"
	"strings"
)

// FloatOrZero parses text as a float, returning 0 for anything unparseable.
func FloatOrZero(text string) float64 {
	value, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return 0
	}
	return value
}

// Amount parses a monetary input, clamping negative and invalid values to 0.
func Amount(text string) float64 {
	value := FloatOrZero(text)
	if value < 0 {
		return 0
	}
	return value
}

// Quantity parses a count input; invalid values and anything below 1 become 1.
func Quantity(text string) int {
	value, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil || value < 1 {
		return 1
	}
	return value
}
