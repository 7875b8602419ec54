// Copyright 2025 The Bindstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchreport assembles the comparison document and the data
// file from a set of extracted benchmark results.
//
// The markdown layout is a stable contract: heading order, table
// column order and units are all fixed, and every computed number is
// rounded only at rendering time. The JSON side (Data) carries the
// same records at full precision, in a shape the chart renderer and
// this package itself can both consume.
package benchreport

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/zmqbench/bindstat/benchcmp"
	"github.com/zmqbench/bindstat/benchparse"
)

// impls names the library each source measures. Used in the summary
// block and the fixed narrative.
var impls = map[benchparse.Source]string{
	benchparse.SourceCPP:    "cppzmq",
	benchparse.SourceDotNet: "Net.Zmq",
	benchparse.SourceNodeJS: "zeromq.js",
}

// A Report renders one ResultSet against a baseline source.
type Report struct {
	// Results holds whatever extraction produced. Sources that
	// failed to parse are simply absent and their rows are omitted.
	Results benchparse.ResultSet

	// Baseline designates the reference source. The zero value
	// means benchparse.Baseline. The baseline's own records define
	// the message-size axis; sizes measured only elsewhere are
	// excluded from the tables.
	Baseline benchparse.Source

	// Platform is the platform line of the summary block. Empty
	// means "Linux x86_64".
	Platform string

	// Now stamps the document. Nil means time.Now. Fix it for
	// reproducible output.
	Now func() time.Time
}

func (r *Report) baseline() benchparse.Source {
	if r.Baseline != "" {
		return r.Baseline
	}
	return benchparse.Baseline
}

func (r *Report) platform() string {
	if r.Platform != "" {
		return r.Platform
	}
	return "Linux x86_64"
}

func (r *Report) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

// latencySizes returns the baseline's latency sizes, ascending.
func (r *Report) latencySizes() []int {
	return sortedSizes(len(r.Results[r.baseline()].Latency), func(i int) int {
		return r.Results[r.baseline()].Latency[i].Size
	})
}

// throughputSizes returns the baseline's throughput sizes, ascending.
// The latency and throughput axes are independent; a size measured for
// one metric only appears in that metric's tables.
func (r *Report) throughputSizes() []int {
	return sortedSizes(len(r.Results[r.baseline()].Throughput), func(i int) int {
		return r.Results[r.baseline()].Throughput[i].Size
	})
}

func sortedSizes(n int, at func(int) int) []int {
	sizes := make([]int, n)
	for i := range sizes {
		sizes[i] = at(i)
	}
	sort.Ints(sizes)
	return sizes
}

// Markdown renders the full comparison document.
func (r *Report) Markdown() string {
	base := r.baseline()
	baseRes := r.Results[base]

	var b strings.Builder
	line := func(format string, args ...interface{}) {
		fmt.Fprintf(&b, format, args...)
		b.WriteByte('\n')
	}

	line("# ZeroMQ Binding Performance Comparison")
	line("")
	line("## Summary")
	line("")
	line("**Baseline:** %s (%s)", base, impls[base])
	line("**Test Date:** %s", r.now().Format("2006-01-02"))
	line("**Platform:** %s", r.platform())
	line("")
	line("## Latency Comparison (REQ-REP)")
	line("")
	line("Lower is better. Values show average round-trip latency in microseconds.")
	line("")

	for _, size := range r.latencySizes() {
		baseLat, ok := baseRes.LatencyFor(size)
		if !ok {
			continue
		}
		line("### Message Size: %d Bytes", size)
		line("")
		line("| Language | Latency (μs) | vs %s | Overhead |", base)
		line("|----------|-------------|--------|----------|")
		line("| %s (baseline) | %.3f | 100%% | - |", base, baseLat)
		for _, src := range benchparse.Sources {
			if src == base {
				continue
			}
			lat, ok := r.Results[src].LatencyFor(size)
			if !ok {
				continue
			}
			line("| %s | %.3f | %.1f%% | %+.1f%% |",
				src, lat,
				benchcmp.RelativePerformance(baseLat, lat),
				benchcmp.Overhead(baseLat, lat))
		}
		line("")
	}

	line("## Throughput Comparison (PUSH-PULL)")
	line("")
	line("Higher is better. Values show messages per second.")
	line("")

	for _, size := range r.throughputSizes() {
		baseThr, ok := baseRes.ThroughputFor(size)
		if !ok {
			continue
		}
		line("### Message Size: %d Bytes", size)
		line("")
		line("| Language | Throughput (msg/s) | Bandwidth (Mb/s) | vs %s |", base)
		line("|----------|-------------------|-----------------|--------|")
		line("| %s (baseline) | %s | %s | 100%% |",
			base, commas(baseThr.MsgPerSec, 0), commas(baseThr.Mbps, 3))
		for _, src := range benchparse.Sources {
			if src == base {
				continue
			}
			thr, ok := r.Results[src].ThroughputFor(size)
			if !ok {
				continue
			}
			line("| %s | %s | %s | %.1f%% |",
				src, commas(thr.MsgPerSec, 0), commas(thr.Mbps, 3),
				benchcmp.RelativePerformance(baseThr.MsgPerSec, thr.MsgPerSec))
		}
		line("")
	}

	r.writeFindings(line)

	line("---")
	line("")
	line("**Raw data:** `benchmark_data.json`")
	line("**Generated:** %s", r.now().Format("2006-01-02 15:04:05"))
	line("")

	return b.String()
}

// commas formats v with prec decimal places and thousands separators,
// matching the throughput table's display format.
func commas(v float64, prec int) string {
	s := strconv.FormatFloat(v, 'f', prec, 64)
	intPart := s
	rest := ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, rest = s[:i], s[i:]
	}
	neg := false
	if strings.HasPrefix(intPart, "-") {
		neg = true
		intPart = intPart[1:]
	}
	var out []byte
	for i, c := range []byte(intPart) {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, c)
	}
	if neg {
		return "-" + string(out) + rest
	}
	return string(out) + rest
}
