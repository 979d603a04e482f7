package formatting

import (
	"math"
	"strconv"
)

// Round rounds v half away from zero to the given number of decimal places.
func Round(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}

// Decimal renders v with exactly the given number of decimal places.
func Decimal(v float64, places int) string {
	return strconv.FormatFloat(Round(v, places), 'f', places, 64)
}
