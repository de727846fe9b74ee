// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

package profile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const summaryFixture = `# emulator timing campaign, environment 1
SMP real_boot_time times_called ns_per_call predict_sec scale_factor total_ns percentage extra1 extra2
1 3.5 1000 50.0 3.6 1.5 50000 0.2 0 0
2 4.0 2000 55.0 4.1 1.4 110000 0.25 0 0
2 4.2 2100 56.0 4.3 1.4 117600 0.26 0 0

4 5.0 bogus 60.0 5.1 1.3 240000 0.3 0 0
8 6.0 8000
`

func TestParseSummaryTable(t *testing.T) {
	rows := ParseSummaryTable(summaryFixture, false)
	// comments, header, blank lines, the non-numeric row, and the short row
	// are all skipped
	require.Len(t, rows, 2)

	row, ok := rows[1]
	require.True(t, ok)
	assert.Equal(t, SummaryRow{
		SMP:                1,
		RealBootTime:       3.5,
		TimesCalled:        1000,
		PredictedNsPerCall: 50.0,
		PredictSec:         3.6,
		ScaleFactor:        1.5,
		TotalClocksourceNs: 50000,
		Percentage:         0.2,
	}, row)

	// duplicate SMP, last occurrence wins
	row, ok = rows[2]
	require.True(t, ok)
	assert.Equal(t, 4.2, row.RealBootTime)
	assert.Equal(t, 2100.0, row.TimesCalled)
}

func TestParseSummaryTableStrict(t *testing.T) {
	// strict mode only adds diagnostics, the parsed result is identical
	assert.Equal(t, ParseSummaryTable(summaryFixture, false), ParseSummaryTable(summaryFixture, true))
}

func TestParseSummaryTableEmpty(t *testing.T) {
	assert.Empty(t, ParseSummaryTable("", false))
	assert.Empty(t, ParseSummaryTable("# only a comment\n", false))
}

func TestLoadSummaryTable(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "results_summary-1.txt")
	require.NoError(t, os.WriteFile(path, []byte(summaryFixture), 0644))

	rows := LoadSummaryTable(path, false)
	assert.Len(t, rows, 2)

	// missing file degrades to an empty table
	rows = LoadSummaryTable(filepath.Join(dir, "results_summary-2.txt"), false)
	assert.Empty(t, rows)
}
