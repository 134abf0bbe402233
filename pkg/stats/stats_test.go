package stats

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestMean(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   float64
	}{
		{"empty", nil, 0},
		{"single", []float64{5}, 5},
		{"several", []float64{1, 2, 3, 4}, 2.5},
		{"negative", []float64{-2, 2}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Mean(tt.values); !almostEqual(got, tt.want) {
				t.Errorf("Mean(%v) = %v, want %v", tt.values, got, tt.want)
			}
		})
	}
}

func TestStdDev(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   float64
	}{
		{"empty", nil, 0},
		{"single", []float64{3}, 0},
		{"constant", []float64{4, 4, 4, 4}, 0},
		{"spread", []float64{2, 4, 4, 4, 5, 5, 7, 9}, 2}, // classic example
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StdDev(tt.values); !almostEqual(got, tt.want) {
				t.Errorf("StdDev(%v) = %v, want %v", tt.values, got, tt.want)
			}
		})
	}
}

func TestMinMax(t *testing.T) {
	minVal, maxVal := MinMax([]float64{3, -1, 7, 2})
	if minVal != -1 || maxVal != 7 {
		t.Errorf("MinMax = (%v, %v), want (-1, 7)", minVal, maxVal)
	}
	minVal, maxVal = MinMax(nil)
	if minVal != 0 || maxVal != 0 {
		t.Errorf("MinMax(nil) = (%v, %v), want (0, 0)", minVal, maxVal)
	}
}

func TestMovingAverage(t *testing.T) {
	got := MovingAverage([]float64{1, 2, 3, 4, 5}, 2)
	want := []float64{1, 1.5, 2.5, 3.5, 4.5}
	if len(got) != len(want) {
		t.Fatalf("length = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if !almostEqual(got[i], want[i]) {
			t.Errorf("MovingAverage[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestMovingAverageWindowOne(t *testing.T) {
	in := []float64{3, 1, 4}
	got := MovingAverage(in, 1)
	for i := range in {
		if got[i] != in[i] {
			t.Errorf("window 1 should copy input, got %v", got)
		}
	}
}

func TestVelocity(t *testing.T) {
	tests := []struct {
		name   string
		dx, dy float64
		dtMs   int64
		want   float64
	}{
		{"horizontal", 30, 0, 100, 300},
		{"pythagorean", 3, 4, 1000, 5},
		{"zero dt", 10, 10, 0, 0},
		{"negative dt", 10, 10, -5, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Velocity(tt.dx, tt.dy, tt.dtMs); !almostEqual(got, tt.want) {
				t.Errorf("Velocity = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAngleBetween(t *testing.T) {
	// Opposite headings differ by π regardless of sign convention.
	a := Heading(1, 0)
	b := Heading(-1, 0)
	if got := AngleBetween(a, b); !almostEqual(got, math.Pi) {
		t.Errorf("AngleBetween(opposite) = %v, want π", got)
	}
	// Heading wrap-around: 170° vs -170° is a 20° difference.
	got := AngleBetween(170*math.Pi/180, -170*math.Pi/180)
	if !almostEqual(got, 20*math.Pi/180) {
		t.Errorf("AngleBetween(wrap) = %v, want %v", got, 20*math.Pi/180)
	}
}

func TestGridRatio(t *testing.T) {
	// Three of four intervals sit on a 10ms grid.
	values := []float64{50, 60, 73, 90}
	if got := GridRatio(values, 10, 0.5); !almostEqual(got, 0.75) {
		t.Errorf("GridRatio = %v, want 0.75", got)
	}
	if got := GridRatio(nil, 10, 0.5); got != 0 {
		t.Errorf("GridRatio(nil) = %v, want 0", got)
	}
}

func TestCoefficientOfVariation(t *testing.T) {
	if got := CoefficientOfVariation([]float64{4, 4, 4}); got != 0 {
		t.Errorf("constant series CV = %v, want 0", got)
	}
	got := CoefficientOfVariation([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	if !almostEqual(got, 2.0/5.0) {
		t.Errorf("CV = %v, want 0.4", got)
	}
}
