// Copyright 2025 The Bindstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchparse extracts latency and throughput records from the
// three ZeroMQ binding benchmark report formats.
//
// The extractors are deliberately tolerant: a recognized message-size
// heading whose block is missing a parseable number yields no record
// for that size rather than an error, and a block carrying only one of
// the two throughput figures yields no throughput record at all.
// Partial data is preferable to aborting the whole comparison. The
// only hard failure is an unreadable source file, reported as a
// *SourceUnavailable.
package benchparse

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
)

// number matches a decimal with an optional exponent in either case,
// e.g. 85.689, 1.23e+05, 1.23E+05.
const number = `[\d.]+(?:[eE][+-]?\d+)?`

var (
	sectionHeadRE = regexp.MustCompile(`(?i)### Message Size:\s*(\d+)\s*bytes`)
	sectionLatRE  = regexp.MustCompile(`Average:\s*(` + number + `)\s*us`)
	sectionMsgRE  = regexp.MustCompile(`(?i)Messages/sec:\s*(` + number + `)\s*msg/s`)
	sectionMbpsRE = regexp.MustCompile(`(?i)Megabits/sec:\s*(` + number + `)\s*Mb/s`)

	flatRE = regexp.MustCompile(
		`>> Message Size: (\d+) bytes\s+` +
			`\*\*Latency:\*\* (` + number + `) us\s+` +
			`\*\*Throughput:\*\* (` + number + `) msg/s \((` + number + `) Mb/s\)`)
)

// Extract parses text using the grammar for src and returns the
// records found, in text order.
func Extract(src Source, text string) Results {
	return FormatOf(src).Extract(text)
}

// Extract parses text using grammar f.
func (f Format) Extract(text string) Results {
	if f == FormatFlat {
		return extractFlat(text)
	}
	return extractSection(text)
}

// extractSection parses the section-delimited grammar. Each heading's
// block runs from the end of the heading to the next "###" (of any
// kind) or the end of the text.
func extractSection(text string) Results {
	var res Results
	for _, m := range sectionHeadRE.FindAllStringSubmatchIndex(text, -1) {
		size, err := strconv.Atoi(text[m[2]:m[3]])
		if err != nil {
			continue
		}
		block := text[m[1]:]
		if next := strings.Index(block, "###"); next >= 0 {
			block = block[:next]
		}

		if lm := sectionLatRE.FindStringSubmatch(block); lm != nil {
			if us, err := atof(lm[1]); err == nil {
				res.addLatency(size, us)
			}
		}

		// Throughput requires both figures; a block with only one
		// records nothing.
		mm := sectionMsgRE.FindStringSubmatch(block)
		bm := sectionMbpsRE.FindStringSubmatch(block)
		if mm != nil && bm != nil {
			msgPerSec, err1 := atof(mm[1])
			mbps, err2 := atof(bm[1])
			if err1 == nil && err2 == nil {
				res.addThroughput(size, msgPerSec, mbps)
			}
		}
	}
	return res
}

// extractFlat parses the line-tagged grammar. Latency and throughput
// always co-occur within one match, so there is no partial-block case.
func extractFlat(text string) Results {
	var res Results
	for _, m := range flatRE.FindAllStringSubmatch(text, -1) {
		size, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		us, err1 := atof(m[2])
		msgPerSec, err2 := atof(m[3])
		mbps, err3 := atof(m[4])
		if err1 != nil || err2 != nil || err3 != nil {
			continue
		}
		res.addLatency(size, us)
		res.addThroughput(size, msgPerSec, mbps)
	}
	return res
}

// atof normalizes the exponent marker and converts.
func atof(s string) (float64, error) {
	return strconv.ParseFloat(strings.ToLower(s), 64)
}

// A SourceUnavailable reports that a source's report text could not be
// obtained. It is fatal for that source only; the other sources parse
// independently.
type SourceUnavailable struct {
	Source Source
	Err    error
}

func (e *SourceUnavailable) Error() string {
	return fmt.Sprintf("%s results unavailable: %v", e.Source, e.Err)
}

func (e *SourceUnavailable) Unwrap() error { return e.Err }

// ParseFile reads path and extracts it with src's grammar. A read
// failure is returned as a *SourceUnavailable.
func ParseFile(src Source, path string) (Results, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Results{}, &SourceUnavailable{Source: src, Err: err}
	}
	return Extract(src, string(data)), nil
}
