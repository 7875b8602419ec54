// Copyright 2025 The Bindstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchcmp

import (
	"math"
	"testing"
)

const tolerance = 1e-9

func TestOverhead(t *testing.T) {
	test := func(baseline, measured, want float64) {
		t.Helper()
		got := Overhead(baseline, measured)
		if math.Abs(got-want) > tolerance {
			t.Errorf("Overhead(%v, %v) = %v, want %v", baseline, measured, got, want)
		}
	}
	test(100, 105, 5)
	test(100, 95, -5)
	test(100, 100, 0)
	test(50, 150, 200)
	test(0.5, 0.75, 50)
	// Zero baseline is a legitimate degenerate report, not an error.
	test(0, 123.4, 0)
	test(0, 0, 0)
}

func TestOverheadFormula(t *testing.T) {
	for _, b := range []float64{0.001, 1, 42.5, 1e6} {
		for _, m := range []float64{0, 0.5, 99.9, 1e7} {
			want := (m - b) / b * 100
			if got := Overhead(b, m); math.Abs(got-want) > tolerance {
				t.Errorf("Overhead(%v, %v) = %v, want %v", b, m, got, want)
			}
		}
	}
}

func TestRelativePerformance(t *testing.T) {
	test := func(baseline, measured, want float64) {
		t.Helper()
		got := RelativePerformance(baseline, measured)
		if math.Abs(got-want) > tolerance {
			t.Errorf("RelativePerformance(%v, %v) = %v, want %v", baseline, measured, got, want)
		}
	}
	test(100, 100, 100)
	test(100, 200, 50)
	test(100, 50, 200)
	test(95, 100, 95)
	// Zero measured degrades to 0 instead of dividing by zero.
	test(100, 0, 0)
	test(0, 0, 0)
}
