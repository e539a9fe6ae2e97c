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
		name     string
		input    []float64
		expected float64
	}{
		{"Empty", nil, 0},
		{"Single", []float64{7}, 7},
		{"Several", []float64{2, 4, 6}, 4},
		{"Negative", []float64{-1, 1}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Mean(tt.input); !almostEqual(got, tt.expected) {
				t.Errorf("Mean(%v) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestMedian(t *testing.T) {
	tests := []struct {
		name     string
		input    []float64
		expected float64
	}{
		{"Empty", nil, 0},
		{"Odd", []float64{3, 1, 2}, 2},
		{"Even", []float64{1, 2, 3, 4}, 2.5},
		{"Single", []float64{9}, 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Median(tt.input); !almostEqual(got, tt.expected) {
				t.Errorf("Median(%v) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestMedianDoesNotMutateInput(t *testing.T) {
	input := []float64{3, 1, 2}
	Median(input)
	if input[0] != 3 || input[1] != 1 || input[2] != 2 {
		t.Errorf("Median mutated its input: %v", input)
	}
}

func TestStdDev(t *testing.T) {
	tests := []struct {
		name     string
		input    []float64
		expected float64
	}{
		{"Empty", nil, 0},
		{"Single", []float64{5}, 0},
		{"Uniform", []float64{4, 4, 4}, 0},
		// Population stddev of {2,4,4,4,5,5,7,9} is exactly 2.
		{"Known", []float64{2, 4, 4, 4, 5, 5, 7, 9}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StdDev(tt.input); !almostEqual(got, tt.expected) {
				t.Errorf("StdDev(%v) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestPearson(t *testing.T) {
	tests := []struct {
		name     string
		xs, ys   []float64
		expected float64
	}{
		{"MismatchedLengths", []float64{1, 2}, []float64{1}, 0},
		{"Empty", nil, nil, 0},
		{"ConstantX", []float64{5, 5, 5}, []float64{1, 2, 3}, 0},
		{"ConstantY", []float64{1, 2, 3}, []float64{5, 5, 5}, 0},
		{"PerfectPositive", []float64{1, 2, 3}, []float64{2, 4, 6}, 1},
		{"PerfectNegative", []float64{1, 2, 3}, []float64{6, 4, 2}, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Pearson(tt.xs, tt.ys); !almostEqual(got, tt.expected) {
				t.Errorf("Pearson(%v, %v) = %v, want %v", tt.xs, tt.ys, got, tt.expected)
			}
		})
	}
}
