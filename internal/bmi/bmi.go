// Package bmi computes the Body Mass Index from a weight in kilograms and a
// height in meters.
package bmi

import (
	"errors"
	"math"
)

// ErrInvalidHeight is returned when the height is zero or negative.
var ErrInvalidHeight = errors.New("height must be greater than zero")

// Compute returns weight / height², rounded to 2 decimal places with
// round-half-to-even. Weight is not validated; NaN and ±Inf propagate.
func Compute(weight, height float64) (float64, error) {
	if height <= 0 {
		return 0, ErrInvalidHeight
	}
	return round2(weight / (height * height)), nil
}

func round2(x float64) float64 {
	return math.RoundToEven(x*100) / 100
}
