// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

// Package rawlog extracts typed measurements from the free-form log files
// written by the emulator's timer subsystem. Parsing is tolerant by design:
// malformed content degrades to default values or skipped records, never to
// an error, so that one bad log cannot abort a batch.
package rawlog

import (
	"log/slog"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// DefaultOutlierThresholdNs is the cutoff above which a single 'total'
// timing sample is discarded as a measurement artifact, e.g., the guest was
// preempted by the host scheduler mid-probe.
const DefaultOutlierThresholdNs = 1e8

// BootMeasurement holds the boot duration and the number of clocksource
// polls reported at the end of a boot log.
type BootMeasurement struct {
	BootSeconds float64
	CallCount   int64
}

// OffsetMeasurement holds the timer offset reported by the emulator.
type OffsetMeasurement struct {
	OffsetNs int64
}

// EventRecord is one per-call timing sample from a time log, e.g.,
// "diff: 273002121, total: 42000329". Values are in nanoseconds.
type EventRecord struct {
	DiffNs  float64
	TotalNs float64
}

var (
	ansiRe   = regexp.MustCompile(`\x1b\[[0-9;]*m`)
	bootRe   = regexp.MustCompile(`(?i)Boot time:\s*([0-9.]+)\s+seconds,\s+called\s+([0-9]+)\s+times`)
	offsetRe = regexp.MustCompile(`(?i)offset:\s*(-?[0-9]+)`)
)

// StripTerminalCodes removes ANSI terminal color escape sequences from the
// given text. The emulator colorizes its console output and the escapes can
// land mid-line, which breaks naive field splitting. Idempotent.
func StripTerminalCodes(text string) string {
	return ansiRe.ReplaceAllString(text, "")
}

// ExtractBoot returns the boot measurement from the first line matching the
// boot-time pattern. When no line matches, the zero measurement is returned
// and a warning is logged.
func ExtractBoot(text string) BootMeasurement {
	match := bootRe.FindStringSubmatch(text)
	if match == nil {
		slog.Warn("no boot time line found in log")
		return BootMeasurement{}
	}
	bootSeconds, err := strconv.ParseFloat(match[1], 64)
	if err != nil {
		slog.Warn("failed to parse boot seconds", slog.String("value", match[1]), slog.String("error", err.Error()))
		return BootMeasurement{}
	}
	callCount, err := strconv.ParseInt(match[2], 10, 64)
	if err != nil {
		slog.Warn("failed to parse call count", slog.String("value", match[2]), slog.String("error", err.Error()))
		return BootMeasurement{}
	}
	return BootMeasurement{BootSeconds: bootSeconds, CallCount: callCount}
}

// ExtractOffset returns the timer offset from the first line containing an
// offset field. Zero with a warning when no line matches.
func ExtractOffset(text string) OffsetMeasurement {
	match := offsetRe.FindStringSubmatch(text)
	if match == nil {
		slog.Warn("no offset line found in log")
		return OffsetMeasurement{}
	}
	offsetNs, err := strconv.ParseInt(match[1], 10, 64)
	if err != nil {
		slog.Warn("failed to parse offset", slog.String("value", match[1]), slog.String("error", err.Error()))
		return OffsetMeasurement{}
	}
	return OffsetMeasurement{OffsetNs: offsetNs}
}

// ExtractEvents returns one EventRecord per parsable "diff: <d>, total: <t>"
// line, in line order. Lines that fail to parse are skipped. Records whose
// total exceeds thresholdNs are discarded entirely -- they contribute to no
// downstream statistic.
func ExtractEvents(text string, thresholdNs float64) []EventRecord {
	var records []EventRecord
	for line := range strings.SplitSeq(text, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "diff:") {
			continue
		}
		record, ok := parseEventLine(line)
		if !ok {
			continue
		}
		if record.TotalNs > thresholdNs {
			continue
		}
		records = append(records, record)
	}
	return records
}

func parseEventLine(line string) (record EventRecord, ok bool) {
	parts := strings.Split(line, ",")
	if len(parts) < 2 {
		return
	}
	diffFields := strings.Split(parts[0], ":")
	totalFields := strings.Split(parts[1], ":")
	if len(diffFields) < 2 || len(totalFields) < 2 {
		return
	}
	diffNs, err := strconv.ParseFloat(strings.TrimSpace(diffFields[1]), 64)
	if err != nil {
		return
	}
	totalNs, err := strconv.ParseFloat(strings.TrimSpace(totalFields[1]), 64)
	if err != nil {
		return
	}
	return EventRecord{DiffNs: diffNs, TotalNs: totalNs}, true
}

// ReadLog reads the log file at path and strips terminal color codes from
// its content. A missing or unreadable file is a recoverable condition for
// the caller, so it is reported with found=false rather than an error.
func ReadLog(path string) (content string, found bool) {
	raw, err := os.ReadFile(path) // #nosec G304
	if err != nil {
		if os.IsNotExist(err) {
			slog.Warn("log file not found, using default values", slog.String("path", path))
		} else {
			slog.Warn("failed to read log file, using default values", slog.String("path", path), slog.String("error", errors.Wrap(err, "read log").Error()))
		}
		return "", false
	}
	return StripTerminalCodes(string(raw)), true
}
