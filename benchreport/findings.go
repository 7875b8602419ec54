// Copyright 2025 The Bindstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchreport

import (
	"github.com/aclements/go-moremath/stats"

	"github.com/zmqbench/bindstat/benchcmp"
	"github.com/zmqbench/bindstat/benchparse"
)

// Outperforms reports whether an overhead percentage means the
// measured source beat the baseline. The narrative switches between
// its "outperforms" and "overhead" phrasings on exactly this boundary.
func Outperforms(overhead float64) bool {
	return overhead < 0
}

// OverheadRange summarizes a series of overhead percentages. ok is
// false when the series is empty.
func OverheadRange(overheads []float64) (min, max float64, ok bool) {
	if len(overheads) == 0 {
		return 0, 0, false
	}
	min, max = stats.Sample{Xs: overheads}.Bounds()
	return min, max, true
}

// writeFindings emits the Key Findings, Performance Recommendations
// and Technical Details sections. The prose is a fixed template; only
// the numbers are computed.
func (r *Report) writeFindings(line func(string, ...interface{})) {
	base := r.baseline()
	baseRes := r.Results[base]
	latSizes := r.latencySizes()

	line("## Key Findings")
	line("")
	line("### 1. .NET Performance Characteristics")
	line("")

	// Small-message latency: the smallest size the baseline measured.
	if len(latSizes) > 0 {
		small := latSizes[0]
		baseLat, okB := baseRes.LatencyFor(small)
		dnLat, okD := r.Results[benchparse.SourceDotNet].LatencyFor(small)
		if okB && okD {
			overhead := benchcmp.Overhead(baseLat, dnLat)
			if Outperforms(overhead) {
				line("**.NET outperforms %s for small message latency** by %.1f%%. "+
					"This is remarkable for a managed runtime and demonstrates:", base, -overhead)
				line("")
				line("- Highly optimized P/Invoke marshaling in Net.Zmq")
				line("- Effective use of Span<T> for zero-copy scenarios")
				line("- JIT compiler producing excellent machine code")
				line("- Minimal GC pressure with careful buffer management")
				line("")
			} else {
				line(".NET shows %.1f%% overhead for small messages, "+
					"which is acceptable for a managed runtime.", overhead)
				line("")
			}
		}
	}

	line("### 2. Node.js Overhead Pattern")
	line("")
	line("Node.js demonstrates overhead characteristic of N-API bindings:")
	line("")

	var overheads []float64
	for _, size := range latSizes {
		baseLat, okB := baseRes.LatencyFor(size)
		njLat, okN := r.Results[benchparse.SourceNodeJS].LatencyFor(size)
		if okB && okN {
			overheads = append(overheads, benchcmp.Overhead(baseLat, njLat))
		}
	}
	if min, max, ok := OverheadRange(overheads); ok {
		line("- **%.1f%% to %.1f%% higher latency** across message sizes", min, max)
	}

	line("")
	line("**Key factors:**")
	line("- N-API bridge crossing for each operation")
	line("- Promise creation/resolution overhead from async/await")
	line("- V8 garbage collector and memory management")
	line("- Event loop integration adds microtask queue processing")
	line("")

	line("### 3. Message Size Impact")
	line("")
	line("**Small Messages (64B):**")
	line("- Fixed overhead (call cost, marshaling) dominates")
	line("- Per-call overhead is most visible")
	line("")
	line("**Medium Messages (1500B):**")
	line("- Balanced between overhead and data transfer")
	line("- Typical Ethernet MTU size")
	line("")
	line("**Large Messages (65KB):**")
	line("- Data transfer dominates, relative overhead decreases")
	line("- Memory copying becomes significant factor")
	line("")

	line("## Performance Recommendations")
	line("")
	line("### Choose C++ When:")
	line("- Absolute maximum performance is required")
	line("- Sub-microsecond latency matters")
	line("- Building low-level infrastructure")
	line("- Working in resource-constrained environments")
	line("")
	line("### Choose .NET When:")
	line("- Building enterprise applications")
	line("- Need excellent performance with high productivity")
	line("- Want type safety and modern language features")
	line("- Latency < 100μs is acceptable")
	line("")
	line("### Choose Node.js When:")
	line("- Building I/O-bound microservices")
	line("- Event-driven or real-time applications")
	line("- Need integration with Node.js ecosystem")
	line("- Latency < 1ms is acceptable")
	line("")

	line("## Technical Details")
	line("")
	line("### Measurement Methodology")
	line("")
	line("**Latency Test:**")
	line("- Pattern: REQ/REP (request-reply)")
	line("- Measurement: Round-trip time ÷ 2")
	line("- Rounds: 10,000")
	line("- Timing: High-resolution timers")
	line("")
	line("**Throughput Test:**")
	line("- Pattern: PUSH/PULL (unidirectional)")
	line("- Measurement: Messages per second")
	line("- Count: 1,000,000 messages")
	line("- Warm-up: First message excluded")
	line("")
	line("### Binding Architectures")
	line("")
	line("| Aspect | C++ (cppzmq) | .NET (Net.Zmq) | Node.js (zeromq.js) |")
	line("|--------|--------------|----------------|---------------------|")
	line("| **Binding Type** | Header-only | P/Invoke | N-API |")
	line("| **Memory Model** | Manual/RAII | GC with Span<T> | GC with Buffer |")
	line("| **Async Model** | Blocking | Blocking | Native async |")
	line("| **Zero-Copy** | Full | Partial (Span) | Partial (Buffer) |")
	line("")
}
