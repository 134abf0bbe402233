// Package stats contains the summary-statistic primitives the collectors
// and heuristics are built on. All functions are pure.
package stats

import "math"

// Mean returns the arithmetic mean, or 0 for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// StdDev returns the population standard deviation, or 0 for fewer than
// two values.
func StdDev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	mean := Mean(values)
	var sum float64
	for _, v := range values {
		d := v - mean
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(values)))
}

// MinMax returns the smallest and largest value, or (0, 0) for an empty slice.
func MinMax(values []float64) (minVal, maxVal float64) {
	if len(values) == 0 {
		return 0, 0
	}
	minVal, maxVal = values[0], values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	return minVal, maxVal
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 1 || len(values) == 0 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, len(values))
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// Velocity returns the Euclidean velocity in units/second for a displacement
// (dx, dy) covered in dtMs milliseconds. Non-positive dt yields 0.
func Velocity(dx, dy float64, dtMs int64) float64 {
	if dtMs <= 0 {
		return 0
	}
	dist := math.Hypot(dx, dy)
	return dist / (float64(dtMs) / 1000.0)
}

// Heading returns the direction of the displacement (dx, dy) in radians.
func Heading(dx, dy float64) float64 {
	return math.Atan2(dy, dx)
}

// AngleBetween returns the absolute angle in radians between two headings,
// normalized to [0, π].
func AngleBetween(a, b float64) float64 {
	d := math.Abs(a - b)
	for d > math.Pi {
		d = math.Abs(d - 2*math.Pi)
	}
	return d
}

// GridRatio returns the share of values that are exact multiples of gridMs
// within epsilon. Timer-driven synthetic input tends to land on such a grid.
func GridRatio(values []float64, gridMs, epsilon float64) float64 {
	if len(values) == 0 || gridMs <= 0 {
		return 0
	}
	var hits int
	for _, v := range values {
		rem := math.Mod(v, gridMs)
		if rem > gridMs/2 {
			rem = gridMs - rem
		}
		if rem <= epsilon {
			hits++
		}
	}
	return float64(hits) / float64(len(values))
}

// CoefficientOfVariation returns StdDev/Mean, the dimensionless dispersion
// used by the rhythm heuristics. A zero mean yields 0.
func CoefficientOfVariation(values []float64) float64 {
	mean := Mean(values)
	if mean == 0 {
		return 0
	}
	return StdDev(values) / mean
}
