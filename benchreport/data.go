// Copyright 2025 The Bindstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchreport

import (
	"bytes"
	"encoding/json"
	"sort"

	"github.com/zmqbench/bindstat/benchparse"
)

// Data is the machine-readable side of the report: the same records
// the markdown tables are built from, at full precision, keyed by
// source. It marshals with the sources in canonical order and the
// records in ascending size order, so the output is byte-stable for a
// given ResultSet.
type Data struct {
	Latency    map[benchparse.Source][]benchparse.LatencyRecord    `json:"latency"`
	Throughput map[benchparse.Source][]benchparse.ThroughputRecord `json:"throughput"`
}

// Data exports the report's records. Only sources present in the
// ResultSet appear; a present source with no records of a kind gets an
// empty list, not null.
func (r *Report) Data() Data {
	d := Data{
		Latency:    make(map[benchparse.Source][]benchparse.LatencyRecord),
		Throughput: make(map[benchparse.Source][]benchparse.ThroughputRecord),
	}
	for _, src := range benchparse.Sources {
		res, ok := r.Results[src]
		if !ok {
			continue
		}
		lat := make([]benchparse.LatencyRecord, len(res.Latency))
		copy(lat, res.Latency)
		sort.Slice(lat, func(i, j int) bool { return lat[i].Size < lat[j].Size })
		thr := make([]benchparse.ThroughputRecord, len(res.Throughput))
		copy(thr, res.Throughput)
		sort.Slice(thr, func(i, j int) bool { return thr[i].Size < thr[j].Size })
		d.Latency[src] = lat
		d.Throughput[src] = thr
	}
	return d
}

// ResultSet rebuilds a ResultSet from the data file. Rendering a
// Report from the result reproduces the same tables, given the same
// baseline designation.
func (d Data) ResultSet() benchparse.ResultSet {
	rs := make(benchparse.ResultSet)
	for _, src := range benchparse.Sources {
		lat, okL := d.Latency[src]
		thr, okT := d.Throughput[src]
		if !okL && !okT {
			continue
		}
		var res benchparse.Results
		res.Latency = append(res.Latency, lat...)
		res.Throughput = append(res.Throughput, thr...)
		rs[src] = res
	}
	return rs
}

// MarshalJSON emits the schema with deterministic key order.
func (d Data) MarshalJSON() ([]byte, error) {
	var b bytes.Buffer
	b.WriteString(`{"latency":`)
	if err := marshalBySource(&b, func(src benchparse.Source) (interface{}, bool) {
		v, ok := d.Latency[src]
		return v, ok
	}); err != nil {
		return nil, err
	}
	b.WriteString(`,"throughput":`)
	if err := marshalBySource(&b, func(src benchparse.Source) (interface{}, bool) {
		v, ok := d.Throughput[src]
		return v, ok
	}); err != nil {
		return nil, err
	}
	b.WriteByte('}')
	return b.Bytes(), nil
}

func marshalBySource(b *bytes.Buffer, get func(benchparse.Source) (interface{}, bool)) error {
	b.WriteByte('{')
	first := true
	for _, src := range benchparse.Sources {
		v, ok := get(src)
		if !ok {
			continue
		}
		if !first {
			b.WriteByte(',')
		}
		first = false
		key, err := json.Marshal(string(src))
		if err != nil {
			return err
		}
		b.Write(key)
		b.WriteByte(':')
		enc, err := json.Marshal(v)
		if err != nil {
			return err
		}
		b.Write(enc)
	}
	b.WriteByte('}')
	return nil
}
