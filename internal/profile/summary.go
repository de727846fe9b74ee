// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

package profile

import (
	"log/slog"
	"os"
	"strconv"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
)

// SummaryRow is one parsed row of a results_summary table, keyed by SMP.
type SummaryRow struct {
	SMP                int
	RealBootTime       float64
	TimesCalled        float64
	PredictedNsPerCall float64
	PredictSec         float64
	ScaleFactor        float64
	TotalClocksourceNs float64
	Percentage         float64
}

// rows carry additional trailing columns that are not used here; require the
// full row width so that truncated rows are rejected as a unit
const minSummaryFields = 10

// ParseSummaryTable parses the whitespace-delimited summary table text and
// returns the rows keyed by SMP. Blank lines, '#' comments, the 'SMP' header
// row, rows with fewer than minSummaryFields fields, and rows with
// non-numeric leading fields are skipped. When the same SMP appears more
// than once the last occurrence wins; strict mode surfaces a warning for
// each duplicate without changing the result.
func ParseSummaryTable(text string, strict bool) map[int]SummaryRow {
	rows := make(map[int]SummaryRow)
	seen := mapset.NewSet[int]()
	for line := range strings.SplitSeq(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if fields[0] == "SMP" { // header
			continue
		}
		if len(fields) < minSummaryFields {
			continue
		}
		row, ok := parseSummaryRow(fields)
		if !ok {
			continue
		}
		if !seen.Add(row.SMP) && strict {
			slog.Warn("duplicate SMP in summary table, last occurrence wins", slog.Int("smp", row.SMP))
		}
		rows[row.SMP] = row
	}
	return rows
}

func parseSummaryRow(fields []string) (row SummaryRow, ok bool) {
	smp, err := strconv.Atoi(fields[0])
	if err != nil {
		return
	}
	vals := make([]float64, 7)
	for i := range vals {
		vals[i], err = strconv.ParseFloat(fields[i+1], 64)
		if err != nil {
			return
		}
	}
	return SummaryRow{
		SMP:                smp,
		RealBootTime:       vals[0],
		TimesCalled:        vals[1],
		PredictedNsPerCall: vals[2],
		PredictSec:         vals[3],
		ScaleFactor:        vals[4],
		TotalClocksourceNs: vals[5],
		Percentage:         vals[6],
	}, true
}

// LoadSummaryTable reads and parses one environment's summary table. A
// missing or unreadable file degrades to an empty table with a warning --
// the affected cells fall back to default values downstream.
func LoadSummaryTable(path string, strict bool) map[int]SummaryRow {
	raw, err := os.ReadFile(path) // #nosec G304
	if err != nil {
		slog.Warn("summary table not readable, using default values", slog.String("path", path), slog.String("error", err.Error()))
		return map[int]SummaryRow{}
	}
	return ParseSummaryTable(string(raw), strict)
}
