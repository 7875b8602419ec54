// Copyright 2025 The Bindstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchreport

import (
	"strings"
	"testing"
	"time"

	"github.com/zmqbench/bindstat/benchparse"
)

func fixedClock() func() time.Time {
	stamp := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return func() time.Time { return stamp }
}

// testResults builds a ResultSet with a .NET latency of dotnet64 at
// the 64-byte size, against a baseline of 100us.
func testResults(dotnet64 float64) benchparse.ResultSet {
	return benchparse.ResultSet{
		benchparse.SourceCPP: {
			Latency: []benchparse.LatencyRecord{
				{Size: 64, LatencyUS: 100},
				{Size: 1500, LatencyUS: 150},
			},
			Throughput: []benchparse.ThroughputRecord{
				{Size: 64, MsgPerSec: 861377, Mbps: 441.025},
			},
		},
		benchparse.SourceDotNet: {
			Latency: []benchparse.LatencyRecord{
				{Size: 64, LatencyUS: dotnet64},
				{Size: 1500, LatencyUS: 160},
			},
			Throughput: []benchparse.ThroughputRecord{
				{Size: 64, MsgPerSec: 800000, Mbps: 409.6},
			},
		},
		benchparse.SourceNodeJS: {
			Latency: []benchparse.LatencyRecord{
				{Size: 64, LatencyUS: 120},
				{Size: 1500, LatencyUS: 195},
			},
		},
	}
}

func contains(t *testing.T, doc, want string) {
	t.Helper()
	if !strings.Contains(doc, want) {
		t.Errorf("document does not contain %q", want)
	}
}

func notContains(t *testing.T, doc, want string) {
	t.Helper()
	if strings.Contains(doc, want) {
		t.Errorf("document unexpectedly contains %q", want)
	}
}

func TestMarkdownLatencyTables(t *testing.T) {
	r := &Report{Results: testResults(95), Now: fixedClock()}
	doc := r.Markdown()

	contains(t, doc, "# ZeroMQ Binding Performance Comparison")
	contains(t, doc, "**Baseline:** C++ (cppzmq)")
	contains(t, doc, "**Test Date:** 2025-06-01")
	contains(t, doc, "## Latency Comparison (REQ-REP)")
	contains(t, doc, "### Message Size: 64 Bytes")
	contains(t, doc, "| Language | Latency (μs) | vs C++ | Overhead |")
	contains(t, doc, "| C++ (baseline) | 100.000 | 100% | - |")
	contains(t, doc, "| .NET | 95.000 | 105.3% | -5.0% |")
	contains(t, doc, "| Node.js | 120.000 | 83.3% | +20.0% |")
	contains(t, doc, "### Message Size: 1500 Bytes")
}

func TestMarkdownThroughputTables(t *testing.T) {
	r := &Report{Results: testResults(95), Now: fixedClock()}
	doc := r.Markdown()

	contains(t, doc, "## Throughput Comparison (PUSH-PULL)")
	contains(t, doc, "| Language | Throughput (msg/s) | Bandwidth (Mb/s) | vs C++ |")
	contains(t, doc, "| C++ (baseline) | 861,377 | 441.025 | 100% |")
	contains(t, doc, "| .NET | 800,000 | 409.600 | 107.7% |")
	// Node.js has no throughput records at all; no row, no crash.
	lines := strings.Split(doc, "\n")
	throughputAt := false
	for _, l := range lines {
		if strings.HasPrefix(l, "## Throughput") {
			throughputAt = true
		}
		if throughputAt && strings.HasPrefix(l, "| Node.js |") {
			t.Errorf("unexpected Node.js throughput row: %q", l)
		}
	}
}

func TestNarrativeOutperforms(t *testing.T) {
	r := &Report{Results: testResults(95), Now: fixedClock()}
	doc := r.Markdown()
	contains(t, doc, "**.NET outperforms C++ for small message latency** by 5.0%.")
	notContains(t, doc, ".NET shows")
}

func TestNarrativeOverhead(t *testing.T) {
	r := &Report{Results: testResults(105), Now: fixedClock()}
	doc := r.Markdown()
	contains(t, doc, ".NET shows 5.0% overhead for small messages")
	notContains(t, doc, "outperforms C++ for small message latency")
}

func TestNarrativeOverheadRange(t *testing.T) {
	// Node.js: 20% at 64 bytes, 30% at 1500 bytes.
	r := &Report{Results: testResults(95), Now: fixedClock()}
	doc := r.Markdown()
	contains(t, doc, "- **20.0% to 30.0% higher latency** across message sizes")
}

func TestBaselineDefinesDomain(t *testing.T) {
	rs := testResults(95)
	res := rs[benchparse.SourceDotNet]
	res.Latency = append(res.Latency, benchparse.LatencyRecord{Size: 9999, LatencyUS: 1})
	rs[benchparse.SourceDotNet] = res

	r := &Report{Results: rs, Now: fixedClock()}
	doc := r.Markdown()
	notContains(t, doc, "Message Size: 9999")
}

func TestMissingSourceRowsOmitted(t *testing.T) {
	rs := testResults(95)
	delete(rs, benchparse.SourceNodeJS)

	r := &Report{Results: rs, Now: fixedClock()}
	doc := r.Markdown()
	notContains(t, doc, "| Node.js |")
	contains(t, doc, "| .NET | 95.000 |")
	// The fixed narrative skeleton still renders.
	contains(t, doc, "### 2. Node.js Overhead Pattern")
	notContains(t, doc, "higher latency** across message sizes")
}

func TestMissingBaselineStillRenders(t *testing.T) {
	rs := testResults(95)
	delete(rs, benchparse.SourceCPP)

	r := &Report{Results: rs, Now: fixedClock()}
	doc := r.Markdown()
	contains(t, doc, "## Latency Comparison (REQ-REP)")
	notContains(t, doc, "### Message Size:")
}

func TestThroughputDomainIndependent(t *testing.T) {
	rs := benchparse.ResultSet{
		benchparse.SourceCPP: {
			Latency:    []benchparse.LatencyRecord{{Size: 64, LatencyUS: 10}},
			Throughput: []benchparse.ThroughputRecord{{Size: 128, MsgPerSec: 1000, Mbps: 1}},
		},
	}
	r := &Report{Results: rs, Now: fixedClock()}
	doc := r.Markdown()

	latSection := doc[strings.Index(doc, "## Latency"):strings.Index(doc, "## Throughput")]
	thrSection := doc[strings.Index(doc, "## Throughput"):strings.Index(doc, "## Key Findings")]
	if !strings.Contains(latSection, "Message Size: 64 Bytes") || strings.Contains(latSection, "128") {
		t.Errorf("latency axis wrong:\n%s", latSection)
	}
	if !strings.Contains(thrSection, "Message Size: 128 Bytes") || strings.Contains(thrSection, "64 Bytes") {
		t.Errorf("throughput axis wrong:\n%s", thrSection)
	}
}

func TestMarkdownDeterministic(t *testing.T) {
	r := &Report{Results: testResults(95), Now: fixedClock()}
	if a, b := r.Markdown(), r.Markdown(); a != b {
		t.Error("identical inputs produced different documents")
	}
}

func TestOutperforms(t *testing.T) {
	test := func(overhead float64, want bool) {
		t.Helper()
		if got := Outperforms(overhead); got != want {
			t.Errorf("Outperforms(%v) = %v, want %v", overhead, got, want)
		}
	}
	test(-5, true)
	test(-0.001, true)
	test(0, false)
	test(5, false)
}

func TestOverheadRange(t *testing.T) {
	min, max, ok := OverheadRange([]float64{12.5, -3, 40})
	if !ok || min != -3 || max != 40 {
		t.Errorf("got (%v, %v, %v), want (-3, 40, true)", min, max, ok)
	}
	if _, _, ok := OverheadRange(nil); ok {
		t.Error("empty series reported a range")
	}
}

func TestCommas(t *testing.T) {
	test := func(v float64, prec int, want string) {
		t.Helper()
		if got := commas(v, prec); got != want {
			t.Errorf("commas(%v, %d) = %q, want %q", v, prec, got, want)
		}
	}
	test(861377, 0, "861,377")
	test(1234567.891, 3, "1,234,567.891")
	test(999, 0, "999")
	test(441.025, 3, "441.025")
	test(-1234, 0, "-1,234")
}
