// Copyright 2025 The Bindstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchreport

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"github.com/zmqbench/bindstat/benchparse"
)

func TestDataSortedBySize(t *testing.T) {
	rs := benchparse.ResultSet{
		benchparse.SourceCPP: {
			Latency: []benchparse.LatencyRecord{
				{Size: 65536, LatencyUS: 3},
				{Size: 64, LatencyUS: 1},
				{Size: 1500, LatencyUS: 2},
			},
		},
	}
	r := &Report{Results: rs, Now: fixedClock()}
	d := r.Data()

	want := []benchparse.LatencyRecord{
		{Size: 64, LatencyUS: 1},
		{Size: 1500, LatencyUS: 2},
		{Size: 65536, LatencyUS: 3},
	}
	if !reflect.DeepEqual(d.Latency[benchparse.SourceCPP], want) {
		t.Errorf("got %v, want %v", d.Latency[benchparse.SourceCPP], want)
	}
	// The export must not reorder the report's own records.
	if rs[benchparse.SourceCPP].Latency[0].Size != 65536 {
		t.Error("Data() mutated the underlying ResultSet")
	}
}

func TestDataJSONKeyOrder(t *testing.T) {
	r := &Report{Results: testResults(95), Now: fixedClock()}
	enc, err := json.Marshal(r.Data())
	if err != nil {
		t.Fatal(err)
	}
	s := string(enc)

	if !strings.HasPrefix(s, `{"latency":`) {
		t.Errorf("latency is not the first key: %s", s)
	}
	cpp := strings.Index(s, `"C++"`)
	dotnet := strings.Index(s, `".NET"`)
	nodejs := strings.Index(s, `"Node.js"`)
	if cpp < 0 || dotnet < 0 || nodejs < 0 || !(cpp < dotnet && dotnet < nodejs) {
		t.Errorf("source keys out of canonical order: %s", s)
	}
}

func TestDataJSONSchema(t *testing.T) {
	r := &Report{Results: testResults(95), Now: fixedClock()}
	enc, err := json.Marshal(r.Data())
	if err != nil {
		t.Fatal(err)
	}

	var decoded struct {
		Latency map[string][]struct {
			Size      int     `json:"size"`
			LatencyUS float64 `json:"latency_us"`
		} `json:"latency"`
		Throughput map[string][]struct {
			Size      int     `json:"size"`
			MsgPerSec float64 `json:"msg_per_sec"`
			Mbps      float64 `json:"mbps"`
		} `json:"throughput"`
	}
	if err := json.Unmarshal(enc, &decoded); err != nil {
		t.Fatal(err)
	}
	if got := decoded.Latency["C++"][0].LatencyUS; got != 100 {
		t.Errorf("latency_us = %v, want 100", got)
	}
	if got := decoded.Throughput["C++"][0].MsgPerSec; got != 861377 {
		t.Errorf("msg_per_sec = %v, want 861377", got)
	}
}

func TestDataRoundTrip(t *testing.T) {
	r := &Report{Results: testResults(95), Now: fixedClock()}
	d := r.Data()

	enc, err := json.Marshal(d)
	if err != nil {
		t.Fatal(err)
	}
	var back Data
	if err := json.Unmarshal(enc, &back); err != nil {
		t.Fatal(err)
	}

	// Full precision survives the file format.
	if !reflect.DeepEqual(back, d) {
		t.Errorf("round trip changed the data:\ngot  %+v\nwant %+v", back, d)
	}

	// Re-rendering from the data file reproduces the document.
	r2 := &Report{Results: back.ResultSet(), Now: fixedClock()}
	if got, want := r2.Markdown(), r.Markdown(); got != want {
		t.Errorf("re-rendered document differs:\ngot:\n%s\nwant:\n%s", got, want)
	}
}
