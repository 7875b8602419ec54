// Copyright 2025 The Bindstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchchart renders the comparison charts from the published
// data file. It consumes only benchreport.Data, never the raw report
// text, so it can be driven equally from a fresh run or from a saved
// benchmark_data.json.
package benchchart

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/zmqbench/bindstat/benchcmp"
	"github.com/zmqbench/bindstat/benchparse"
	"github.com/zmqbench/bindstat/benchreport"
)

var sourceColors = map[benchparse.Source]color.Color{
	benchparse.SourceCPP:    color.NRGBA{0x34, 0x98, 0xdb, 0xff},
	benchparse.SourceDotNet: color.NRGBA{0x2e, 0xcc, 0x71, 0xff},
	benchparse.SourceNodeJS: color.NRGBA{0xe7, 0x4c, 0x3c, 0xff},
}

var barWidth = vg.Points(18)

// Render writes all three charts into dir, creating it if needed:
// latency_comparison.png, throughput_comparison.png and
// overhead_comparison.png.
func Render(d benchreport.Data, dir string) error {
	if err := os.MkdirAll(dir, 0777); err != nil {
		return err
	}
	if err := Latency(d, filepath.Join(dir, "latency_comparison.png")); err != nil {
		return fmt.Errorf("latency chart: %w", err)
	}
	if err := Throughput(d, filepath.Join(dir, "throughput_comparison.png")); err != nil {
		return fmt.Errorf("throughput chart: %w", err)
	}
	if err := Overhead(d, filepath.Join(dir, "overhead_comparison.png")); err != nil {
		return fmt.Errorf("overhead chart: %w", err)
	}
	return nil
}

// Latency renders grouped per-size latency bars, one bar per source.
func Latency(d benchreport.Data, file string) error {
	sizes := latencySizes(d)
	p := plot.New()
	p.Title.Text = "ZeroMQ Binding Latency Comparison (Lower is Better)"
	p.Y.Label.Text = "Latency (μs)"
	p.X.Label.Text = "Message Size"

	if err := addGroupedBars(p, sizes, func(src benchparse.Source, size int) float64 {
		return latencyAt(d, src, size)
	}); err != nil {
		return err
	}
	p.NominalX(sizeLabels(sizes)...)
	return writePNG([]*plot.Plot{p}, file)
}

// Throughput renders two stacked panels: message rate and bandwidth.
func Throughput(d benchreport.Data, file string) error {
	sizes := throughputSizes(d)

	rate := plot.New()
	rate.Title.Text = "ZeroMQ Binding Throughput Comparison - Messages per Second (Higher is Better)"
	rate.Y.Label.Text = "Messages/sec"
	rate.X.Label.Text = "Message Size"
	if err := addGroupedBars(rate, sizes, func(src benchparse.Source, size int) float64 {
		thr, _ := throughputAt(d, src, size)
		return thr.MsgPerSec
	}); err != nil {
		return err
	}
	rate.NominalX(sizeLabels(sizes)...)

	bw := plot.New()
	bw.Title.Text = "ZeroMQ Binding Throughput Comparison - Bandwidth (Higher is Better)"
	bw.Y.Label.Text = "Bandwidth (Mb/s)"
	bw.X.Label.Text = "Message Size"
	if err := addGroupedBars(bw, sizes, func(src benchparse.Source, size int) float64 {
		thr, _ := throughputAt(d, src, size)
		return thr.Mbps
	}); err != nil {
		return err
	}
	bw.NominalX(sizeLabels(sizes)...)

	return writePNG([]*plot.Plot{rate, bw}, file)
}

// Overhead renders signed latency-overhead bars for the non-baseline
// sources, with a zero line marking the baseline.
func Overhead(d benchreport.Data, file string) error {
	sizes := latencySizes(d)
	p := plot.New()
	p.Title.Text = "Latency Overhead vs C++ Baseline (Negative = Faster than C++)"
	p.Y.Label.Text = "Overhead vs C++ Baseline (%)"
	p.X.Label.Text = "Message Size"

	nonBase := []benchparse.Source{benchparse.SourceDotNet, benchparse.SourceNodeJS}
	for i, src := range nonBase {
		values := make(plotter.Values, len(sizes))
		for j, size := range sizes {
			base := latencyAt(d, benchparse.Baseline, size)
			measured := latencyAt(d, src, size)
			if base != 0 && measured != 0 {
				values[j] = benchcmp.Overhead(base, measured)
			}
		}
		bars, err := plotter.NewBarChart(values, barWidth)
		if err != nil {
			return err
		}
		bars.Color = sourceColors[src]
		bars.LineStyle.Width = 0
		bars.Offset = vg.Length(i)*barWidth - barWidth/2
		p.Add(bars)
		p.Legend.Add(string(src), bars)
	}

	// Zero line across the nominal axis.
	zero := plotter.XYs{{X: -0.5, Y: 0}, {X: float64(len(sizes)) - 0.5, Y: 0}}
	ln, err := plotter.NewLine(zero)
	if err != nil {
		return err
	}
	ln.Color = color.Black
	p.Add(ln)

	p.Legend.Top = true
	p.NominalX(sizeLabels(sizes)...)
	return writePNG([]*plot.Plot{p}, file)
}

// addGroupedBars adds one bar series per source, offset so the bars
// for a size sit side by side. Missing measurements draw as zero
// height.
func addGroupedBars(p *plot.Plot, sizes []int, value func(benchparse.Source, int) float64) error {
	for i, src := range benchparse.Sources {
		values := make(plotter.Values, len(sizes))
		for j, size := range sizes {
			values[j] = value(src, size)
		}
		bars, err := plotter.NewBarChart(values, barWidth)
		if err != nil {
			return err
		}
		bars.Color = sourceColors[src]
		bars.LineStyle.Width = 0
		bars.Offset = vg.Length(i-1) * barWidth
		p.Add(bars)
		p.Legend.Add(string(src), bars)
	}
	p.Legend.Top = true
	grid := plotter.NewGrid()
	grid.Vertical.Color = nil
	p.Add(grid)
	return nil
}

func writePNG(plots []*plot.Plot, file string) error {
	const width = 9 * vg.Inch
	height := 4 * vg.Inch * vg.Length(len(plots))

	img := vgimg.NewWith(
		vgimg.UseWH(width, height),
		vgimg.UseDPI(300),
		vgimg.UseBackgroundColor(color.White),
	)
	dc := draw.New(img)

	tiled := make([][]*plot.Plot, len(plots))
	for i, p := range plots {
		tiled[i] = []*plot.Plot{p}
	}
	canvases := plot.Align(tiled, draw.Tiles{Rows: len(plots), Cols: 1}, dc)
	for i, p := range plots {
		p.Draw(canvases[i][0])
	}

	f, err := os.Create(file)
	if err != nil {
		return err
	}
	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func latencySizes(d benchreport.Data) []int {
	seen := make(map[int]bool)
	var sizes []int
	for _, rec := range d.Latency[benchparse.Baseline] {
		if !seen[rec.Size] {
			seen[rec.Size] = true
			sizes = append(sizes, rec.Size)
		}
	}
	sort.Ints(sizes)
	return sizes
}

func throughputSizes(d benchreport.Data) []int {
	seen := make(map[int]bool)
	var sizes []int
	for _, rec := range d.Throughput[benchparse.Baseline] {
		if !seen[rec.Size] {
			seen[rec.Size] = true
			sizes = append(sizes, rec.Size)
		}
	}
	sort.Ints(sizes)
	return sizes
}

func latencyAt(d benchreport.Data, src benchparse.Source, size int) float64 {
	for _, rec := range d.Latency[src] {
		if rec.Size == size {
			return rec.LatencyUS
		}
	}
	return 0
}

func throughputAt(d benchreport.Data, src benchparse.Source, size int) (benchparse.ThroughputRecord, bool) {
	for _, rec := range d.Throughput[src] {
		if rec.Size == size {
			return rec, true
		}
	}
	return benchparse.ThroughputRecord{}, false
}

// sizeLabels formats sizes the way the charts label them: bytes below
// 1 KiB, whole KiB above.
func sizeLabels(sizes []int) []string {
	labels := make([]string, len(sizes))
	for i, s := range sizes {
		if s < 1024 {
			labels[i] = fmt.Sprintf("%dB", s)
		} else {
			labels[i] = fmt.Sprintf("%dKB", s/1024)
		}
	}
	return labels
}
