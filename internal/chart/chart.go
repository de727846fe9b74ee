// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

// Package chart renders the aggregated matrices as PNG figures: one
// comparison chart per metric with one line per environment, and optional
// per-cell event-index charts.
package chart

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"semustat/internal/profile"
)

const (
	comparisonWidth  = 25 * vg.Centimeter
	comparisonHeight = 15 * vg.Centimeter
	chartDPI         = 150
)

// RenderComparisonCharts writes one PNG per metric into outDir: SMP on the
// x-axis, metric value on the y-axis, one series per environment. Returns
// the paths of the files written.
func RenderComparisonCharts(set *profile.MatrixSet, envLabels []string, outDir string) (files []string, err error) {
	if err = os.MkdirAll(outDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create chart output directory: %w", err)
	}
	for _, name := range set.Names() {
		matrix, matrixErr := set.Matrix(name)
		if matrixErr != nil {
			return nil, matrixErr
		}
		pl := plot.New()
		pl.Title.Text = profile.MetricDescription(name)
		pl.X.Label.Text = "SMP"
		pl.Y.Label.Text = name
		pl.Add(plotter.NewGrid())
		args := make([]any, 0, set.Environments*2)
		for env := 1; env <= set.Environments; env++ {
			row := matrix.Row(env)
			xys := make(plotter.XYs, set.SMPCount)
			for smp := 1; smp <= set.SMPCount; smp++ {
				xys[smp-1].X = float64(smp)
				xys[smp-1].Y = row[smp-1]
			}
			args = append(args, label(envLabels, env), xys)
		}
		if err = plotutil.AddLinePoints(pl, args...); err != nil {
			return nil, fmt.Errorf("failed to add series for metric %s: %w", name, err)
		}
		pl.Legend.Top = true
		file := filepath.Join(outDir, name+".png")
		if err = writePNG(pl, file); err != nil {
			return nil, err
		}
		files = append(files, file)
	}
	return
}

// RenderEventCharts writes per-cell event-index charts into
// outDir/events: for every (environment, SMP) cell with retained samples,
// one chart of real ns per call versus sample index and one of the
// clocksource percentage versus sample index.
func RenderEventCharts(set *profile.MatrixSet, envLabels []string, outDir string) (files []string, err error) {
	eventsDir := filepath.Join(outDir, "events")
	if err = os.MkdirAll(eventsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create event chart output directory: %w", err)
	}
	for env := 1; env <= set.Environments; env++ {
		for smp := 1; smp <= set.SMPCount; smp++ {
			series := set.Series(env, smp)
			kinds := []struct {
				values []float64
				metric string
				title  string
			}{
				{series.NsPerCall, "ns_per_call", "real ns per call"},
				{series.Percentage, "percentage", "clocksource percentage"},
			}
			for _, kind := range kinds {
				if len(kind.values) == 0 {
					continue
				}
				pl := plot.New()
				pl.Title.Text = fmt.Sprintf("%s, SMP %d: %s", label(envLabels, env), smp, kind.title)
				pl.X.Label.Text = "sample index"
				pl.Y.Label.Text = kind.metric
				pl.Add(plotter.NewGrid())
				xys := make(plotter.XYs, len(kind.values))
				for i, v := range kind.values {
					xys[i].X = float64(i)
					xys[i].Y = v
				}
				line, lineErr := plotter.NewLine(xys)
				if lineErr != nil {
					return nil, lineErr
				}
				pl.Add(line)
				file := filepath.Join(eventsDir, fmt.Sprintf("env_%d_SMP_%d_%s.png", env, smp, kind.metric))
				if err = writePNG(pl, file); err != nil {
					return nil, err
				}
				files = append(files, file)
			}
		}
	}
	return
}

func label(envLabels []string, env int) string {
	if env-1 < len(envLabels) && envLabels[env-1] != "" {
		return envLabels[env-1]
	}
	return fmt.Sprintf("Env %d", env)
}

func writePNG(pl *plot.Plot, file string) error {
	canvas := vgimg.PngCanvas{Canvas: vgimg.NewWith(
		vgimg.UseWH(comparisonWidth, comparisonHeight),
		vgimg.UseDPI(chartDPI),
		vgimg.UseBackgroundColor(color.White))}
	pl.Draw(draw.New(canvas))
	f, err := os.Create(file) // #nosec G304
	if err != nil {
		return fmt.Errorf("failed to create chart file: %w", err)
	}
	defer f.Close()
	if _, err = canvas.WriteTo(f); err != nil {
		return fmt.Errorf("failed to write chart file: %w", err)
	}
	return nil
}
