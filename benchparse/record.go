// Copyright 2025 The Bindstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchparse

// A LatencyRecord is one round-trip latency measurement for a single
// message size.
type LatencyRecord struct {
	// Size is the message payload size in bytes.
	Size int `json:"size"`

	// LatencyUS is the average round-trip latency in microseconds.
	LatencyUS float64 `json:"latency_us"`
}

// A ThroughputRecord is one unidirectional throughput measurement for
// a single message size.
type ThroughputRecord struct {
	// Size is the message payload size in bytes.
	Size int `json:"size"`

	// MsgPerSec is the sustained message rate.
	MsgPerSec float64 `json:"msg_per_sec"`

	// Mbps is the corresponding bandwidth in megabits per second.
	Mbps float64 `json:"mbps"`
}

// Results holds everything extracted from one source's report text.
// Records appear in the order their sections appear in the text;
// consumers that need a size axis must sort themselves.
type Results struct {
	Latency    []LatencyRecord
	Throughput []ThroughputRecord
}

// addLatency records a latency measurement for size. A duplicate size
// replaces the earlier record in place, so the last occurrence in the
// text wins while insertion order is preserved.
func (r *Results) addLatency(size int, us float64) {
	for i := range r.Latency {
		if r.Latency[i].Size == size {
			r.Latency[i].LatencyUS = us
			return
		}
	}
	r.Latency = append(r.Latency, LatencyRecord{Size: size, LatencyUS: us})
}

// addThroughput records a throughput measurement for size, with the
// same last-wins duplicate policy as addLatency.
func (r *Results) addThroughput(size int, msgPerSec, mbps float64) {
	for i := range r.Throughput {
		if r.Throughput[i].Size == size {
			r.Throughput[i].MsgPerSec = msgPerSec
			r.Throughput[i].Mbps = mbps
			return
		}
	}
	r.Throughput = append(r.Throughput, ThroughputRecord{Size: size, MsgPerSec: msgPerSec, Mbps: mbps})
}

// LatencyFor returns the latency for size, if one was recorded.
func (r Results) LatencyFor(size int) (float64, bool) {
	for _, rec := range r.Latency {
		if rec.Size == size {
			return rec.LatencyUS, true
		}
	}
	return 0, false
}

// ThroughputFor returns the throughput record for size, if one was
// recorded.
func (r Results) ThroughputFor(size int) (ThroughputRecord, bool) {
	for _, rec := range r.Throughput {
		if rec.Size == size {
			return rec, true
		}
	}
	return ThroughputRecord{}, false
}

// A ResultSet maps each source to whatever its extractor produced.
// Sources whose extraction failed are simply absent; downstream
// consumers render what is present.
type ResultSet map[Source]Results
