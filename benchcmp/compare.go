// Copyright 2025 The Bindstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchcmp computes the two percentages the comparison report
// is built from. Both functions are total: a zero denominator yields 0
// rather than an error, since a zero measurement is a legitimate
// degenerate report, not a bug.
package benchcmp

// Overhead returns how much larger measured is than baseline, as a
// percentage of baseline. Negative means measured beat the baseline.
// A zero baseline yields 0.
func Overhead(baseline, measured float64) float64 {
	if baseline == 0 {
		return 0
	}
	return (measured - baseline) / baseline * 100
}

// RelativePerformance returns the baseline as a percentage of
// measured. For "lower is better" metrics like latency, values above
// 100 mean measured beat the baseline. A zero measured yields 0.
func RelativePerformance(baseline, measured float64) float64 {
	if measured == 0 {
		return 0
	}
	return baseline / measured * 100
}
