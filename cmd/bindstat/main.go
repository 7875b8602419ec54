// Copyright 2025 The Bindstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Bindstat compares ZeroMQ binding benchmark reports against the C++
// baseline.
//
// Usage:
//
//	bindstat [-dir results] [-out analysis.md] [-json benchmark_data.json] [-charts dir] [-store dsn]
//
// The results directory must contain the three harness reports:
// cpp-baseline.md and dotnet.md in the section-delimited format, and
// nodejs.md in the line-tagged format. Each report is parsed
// independently; a missing or unreadable report drops that binding
// from the comparison instead of aborting the run.
//
// Bindstat writes two artifacts: a markdown analysis document with
// per-size latency and throughput comparison tables plus a findings
// narrative, and a JSON data file consumed by the chart renderer and
// other downstream tooling.
//
// The -charts option renders the latency, throughput and overhead PNG
// charts into the given directory. The -store option appends the
// run's records to a SQL run-history database; -store-driver selects
// sqlite3 (default) or mysql.
//
// The -date option pins the document's date stamps, which is useful
// for reproducible output:
//
//	bindstat -dir docs/results -date 2025-06-01
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/mattn/go-sqlite3"

	"github.com/zmqbench/bindstat/benchchart"
	"github.com/zmqbench/bindstat/benchparse"
	"github.com/zmqbench/bindstat/benchreport"
	"github.com/zmqbench/bindstat/benchstore"
)

func usage() {
	fmt.Fprintf(os.Stderr, "usage: bindstat [options]\n")
	fmt.Fprintf(os.Stderr, "options:\n")
	flag.PrintDefaults()
	os.Exit(2)
}

var (
	flagDir         = flag.String("dir", "docs/results", "read harness reports from `directory`")
	flagOut         = flag.String("out", "", "write the analysis document to `file` (default <dir>/analysis.md)")
	flagJSON        = flag.String("json", "", "write the data file to `file` (default <dir>/benchmark_data.json)")
	flagCharts      = flag.String("charts", "", "render PNG charts into `directory` (empty disables)")
	flagStore       = flag.String("store", "", "append the run to the history database at `dsn` (empty disables)")
	flagStoreDriver = flag.String("store-driver", "sqlite3", "history database `driver`: sqlite3 or mysql")
	flagDate        = flag.String("date", "", "stamp the document with `date` (YYYY-MM-DD) instead of the current time")
)

// reportFiles names each source's report within the results directory.
var reportFiles = map[benchparse.Source]string{
	benchparse.SourceCPP:    "cpp-baseline.md",
	benchparse.SourceDotNet: "dotnet.md",
	benchparse.SourceNodeJS: "nodejs.md",
}

func main() {
	log.SetPrefix("bindstat: ")
	log.SetFlags(0)
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() > 0 {
		flag.Usage()
	}

	var clock func() time.Time
	if *flagDate != "" {
		stamp, err := time.Parse("2006-01-02", *flagDate)
		if err != nil {
			log.Fatalf("invalid -date %q: %v", *flagDate, err)
		}
		clock = func() time.Time { return stamp }
	}

	results := make(benchparse.ResultSet)
	for _, src := range benchparse.Sources {
		path := filepath.Join(*flagDir, reportFiles[src])
		res, err := benchparse.ParseFile(src, path)
		if err != nil {
			log.Print(err)
			continue
		}
		log.Printf("parsed %s results (%d latency, %d throughput)",
			src, len(res.Latency), len(res.Throughput))
		results[src] = res
	}
	if len(results) == 0 {
		log.Fatal("no harness reports could be parsed")
	}
	if _, ok := results[benchparse.Baseline]; !ok {
		log.Printf("warning: baseline %s unavailable; comparison tables will be empty", benchparse.Baseline)
	}

	rep := &benchreport.Report{Results: results, Now: clock}

	outPath := *flagOut
	if outPath == "" {
		outPath = filepath.Join(*flagDir, "analysis.md")
	}
	if err := os.WriteFile(outPath, []byte(rep.Markdown()), 0666); err != nil {
		log.Fatal(err)
	}
	log.Printf("analysis written to %s", outPath)

	data := rep.Data()
	jsonPath := *flagJSON
	if jsonPath == "" {
		jsonPath = filepath.Join(*flagDir, "benchmark_data.json")
	}
	enc, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		log.Fatal(err)
	}
	if err := os.WriteFile(jsonPath, append(enc, '\n'), 0666); err != nil {
		log.Fatal(err)
	}
	log.Printf("data written to %s", jsonPath)

	if *flagCharts != "" {
		if err := benchchart.Render(data, *flagCharts); err != nil {
			log.Printf("chart rendering skipped: %v", err)
		} else {
			log.Printf("charts written to %s", *flagCharts)
		}
	}

	if *flagStore != "" {
		if err := storeRun(results, rep); err != nil {
			log.Printf("run not stored: %v", err)
		}
	}
}

func storeRun(results benchparse.ResultSet, rep *benchreport.Report) error {
	db, err := benchstore.OpenSQL(*flagStoreDriver, *flagStore)
	if err != nil {
		return err
	}
	defer db.Close()
	stamp := time.Now()
	if rep.Now != nil {
		stamp = rep.Now()
	}
	id, err := db.SaveRun(context.Background(), stamp, results)
	if err != nil {
		return err
	}
	log.Printf("run stored as #%d", id)
	return nil
}
