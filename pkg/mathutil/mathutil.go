// Package mathutil provides common mathematical utility functions shared by
// the calculators.
package mathutil

import (
	"math"
	"sort"

	"github.com/iwvelando/calc-widgets/pkg/constants"
)

// Round rounds a value to two decimals, i.e. to represent real currency.
// Used for making logical comparisons.
func Round(val float64) float64 {
	return math.Round(val*constants.DecimalPrecision) / constants.DecimalPrecision
}

// IsZero checks if a value is effectively zero (within tolerance)
func IsZero(val float64) bool {
	return math.Abs(val) <= constants.CurrencyTolerance
}

// IsFinite reports whether val is neither NaN nor infinite.
func IsFinite(val float64) bool {
	return !math.IsNaN(val) && !math.IsInf(val, 0)
}

// CalculatePercentage calculates what percentage value is of total
func CalculatePercentage(value, total float64) float64 {
	if total == 0 {
		return 0
	}
	return (value / total) * constants.PercentageMultiplier
}

// ApplyPercentage applies a percentage to a value
func ApplyPercentage(value, percentage float64) float64 {
	return value * (percentage / constants.PercentageMultiplier)
}

// PercentChange returns the relative change from -> to in percent.
func PercentChange(from, to float64) float64 {
	if from == 0 {
		return 0
	}
	return (to - from) / math.Abs(from) * constants.PercentageMultiplier
}

// IsPerfectSquare reports whether n is a non-negative integer with an integer
// square root.
func IsPerfectSquare(n float64) bool {
	if n < 0 || n != math.Trunc(n) || n > 1<<52 {
		return false
	}
	root := math.Round(math.Sqrt(n))
	return root*root == n
}

// SimplifyRadical rewrites the square root of the non-negative integer n as
// coefficient*sqrt(radicand) with the largest possible coefficient.
func SimplifyRadical(n int64) (coefficient, radicand int64) {
	if n <= 0 {
		return 0, 0
	}
	coefficient, radicand = 1, n
	for f := int64(2); f*f <= radicand; {
		if radicand%(f*f) == 0 {
			coefficient *= f
			radicand /= f * f
			continue
		}
		f++
	}
	return coefficient, radicand
}

// Sum adds all values.
func Sum(values []float64) float64 {
	total := 0.0
	for _, v := range values {
		total += v
	}
	return total
}

// Mean returns the arithmetic mean, or 0 for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return Sum(values) / float64(len(values))
}

// Median returns the middle value of a sorted copy of values.
func Median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

// Modes returns every value that occurs most often, in ascending order. A
// sample in which every value is unique has no mode and yields nil.
func Modes(values []float64) []float64 {
	counts := make(map[float64]int, len(values))
	best := 0
	for _, v := range values {
		counts[v]++
		if counts[v] > best {
			best = counts[v]
		}
	}
	if best <= 1 {
		return nil
	}
	var modes []float64
	for v, c := range counts {
		if c == best {
			modes = append(modes, v)
		}
	}
	sort.Float64s(modes)
	return modes
}

// PopulationStdDev returns the population standard deviation.
func PopulationStdDev(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	mean := Mean(values)
	variance := 0.0
	for _, v := range values {
		variance += (v - mean) * (v - mean)
	}
	return math.Sqrt(variance / float64(len(values)))
}

// MinMax returns the smallest and largest value.
func MinMax(values []float64) (float64, float64) {
	if len(values) == 0 {
		return 0, 0
	}
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}
