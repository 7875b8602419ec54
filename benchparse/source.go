// Copyright 2025 The Bindstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchparse

// A Source identifies one of the benchmark harnesses whose report this
// package can parse. The identifiers double as the keys of the
// published JSON data file, so their spelling is part of the output
// contract.
type Source string

const (
	// SourceCPP is the cppzmq harness. It is the baseline every
	// other binding is compared against.
	SourceCPP Source = "C++"

	// SourceDotNet is the Net.Zmq (P/Invoke) harness.
	SourceDotNet Source = ".NET"

	// SourceNodeJS is the zeromq.js (N-API) harness.
	SourceNodeJS Source = "Node.js"
)

// Sources lists the recognized sources in their canonical order. The
// order is used for report rows and JSON key order.
var Sources = []Source{SourceCPP, SourceDotNet, SourceNodeJS}

// Baseline is the source all overhead and relative-performance figures
// are computed against.
const Baseline = SourceCPP

// A Format is the grammar a source's report text is written in.
type Format int

const (
	// FormatSection is the section-delimited grammar shared by the
	// C++ and .NET reports: "### Message Size: N bytes" headings,
	// each followed by an "Average: X us" line and, optionally, a
	// "Messages/sec" and "Megabits/sec" line pair.
	FormatSection Format = iota

	// FormatFlat is the line-tagged grammar of the Node.js report:
	// ">> Message Size: N bytes" immediately followed by
	// "**Latency:**" and "**Throughput:**" lines.
	FormatFlat
)

func (f Format) String() string {
	switch f {
	case FormatSection:
		return "section"
	case FormatFlat:
		return "flat"
	}
	return "unknown"
}

// FormatOf returns the grammar used by src's report. Only SourceNodeJS
// uses the flat grammar; everything else is section-delimited.
func FormatOf(src Source) Format {
	if src == SourceNodeJS {
		return FormatFlat
	}
	return FormatSection
}
