// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

// Package profile builds dense per-metric matrices from the files collected
// during one profiling campaign: one structured summary table per
// environment plus per-(environment, SMP) raw log files.
package profile

import (
	"fmt"
	"path/filepath"

	"semustat/internal/rawlog"
)

// Config identifies the inputs of one profiling campaign. It is passed
// explicitly into the pipeline entry point; there is no process-wide state.
type Config struct {
	BaseDir            string  // root directory for all input files
	Environments       int     // environment identifiers 1..Environments
	SMPCount           int     // SMP values 1..SMPCount
	OutlierThresholdNs float64 // 'total' samples above this are discarded
	Strict             bool    // emit diagnostics for duplicate summary keys
}

func (c Config) Validate() error {
	if c.Environments < 1 {
		return fmt.Errorf("environment count must be at least 1, got %d", c.Environments)
	}
	if c.SMPCount < 1 {
		return fmt.Errorf("SMP count must be at least 1, got %d", c.SMPCount)
	}
	if c.OutlierThresholdNs <= 0 {
		return fmt.Errorf("outlier threshold must be positive, got %g", c.OutlierThresholdNs)
	}
	return nil
}

// NewConfig returns a Config with the default outlier threshold applied.
func NewConfig(baseDir string, environments int, smpCount int) Config {
	return Config{
		BaseDir:            baseDir,
		Environments:       environments,
		SMPCount:           smpCount,
		OutlierThresholdNs: rawlog.DefaultOutlierThresholdNs,
	}
}

// SummaryPath returns the path of the per-environment summary table.
func (c Config) SummaryPath(env int) string {
	return filepath.Join(c.BaseDir, fmt.Sprintf("results_summary-%d.txt", env))
}

// TimeLogPath returns the path of the per-call time log for one cell.
func (c Config) TimeLogPath(env int, smp int) string {
	return filepath.Join(c.BaseDir, fmt.Sprintf("time_log-%d", env), fmt.Sprintf("time_log_%d.txt", smp))
}

// EmulatorLogPath returns the path of the emulator console log for one cell.
// This is the log that carries the boot-time and offset lines.
func (c Config) EmulatorLogPath(env int, smp int) string {
	return filepath.Join(c.BaseDir, fmt.Sprintf("logs-%d", env), fmt.Sprintf("emulator_SMP_%d.log", smp))
}
