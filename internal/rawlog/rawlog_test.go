// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

package rawlog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripTerminalCodes(t *testing.T) {
	colored := "\x1b[0;33m[SEMU LOG]\x1b[0m: Boot time: \x1b[1;31m3.59699\x1b[0m seconds"
	stripped := StripTerminalCodes(colored)
	assert.Equal(t, "[SEMU LOG]: Boot time: 3.59699 seconds", stripped)
	// idempotent
	assert.Equal(t, stripped, StripTerminalCodes(stripped))
	// text without escapes passes through
	assert.Equal(t, "diff: 100, total: 60", StripTerminalCodes("diff: 100, total: 60"))
}

func TestExtractBoot(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected BootMeasurement
	}{
		{
			name:     "well formed",
			text:     "Boot time: 3.5 seconds, called 100 times",
			expected: BootMeasurement{BootSeconds: 3.5, CallCount: 100},
		},
		{
			name:     "full log line",
			text:     "[SEMU LOG]: Boot time: 3.59699 seconds, called 239937385 times semu_timer_clocksource",
			expected: BootMeasurement{BootSeconds: 3.59699, CallCount: 239937385},
		},
		{
			name:     "case insensitive",
			text:     "boot TIME: 1.25 seconds, CALLED 7 times",
			expected: BootMeasurement{BootSeconds: 1.25, CallCount: 7},
		},
		{
			name: "first match wins",
			text: "Boot time: 1.0 seconds, called 10 times\nBoot time: 2.0 seconds, called 20 times",
			expected: BootMeasurement{BootSeconds: 1.0, CallCount: 10},
		},
		{
			name:     "no match returns defaults",
			text:     "nothing to see here",
			expected: BootMeasurement{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtractBoot(tt.text))
		})
	}
}

func TestExtractOffset(t *testing.T) {
	text := "[SEMU LOG]: timer->begin: 29344993606427, real_ticks: 29345227607119, boot_ticks: 29345773402928, offset: -545795809"
	assert.Equal(t, OffsetMeasurement{OffsetNs: -545795809}, ExtractOffset(text))
	assert.Equal(t, OffsetMeasurement{OffsetNs: 42}, ExtractOffset("offset: 42"))
	assert.Equal(t, OffsetMeasurement{}, ExtractOffset("no offset here"))
}

func TestExtractEvents(t *testing.T) {
	text := `diff: 1000, total: 500
not an event line
diff: 273002121, total: 42000329
diff: garbage, total: 60
diff: 100
diff: 0, total: 25
diff: 100, total: 200000000
`
	records := ExtractEvents(text, DefaultOutlierThresholdNs)
	// malformed lines skipped, over-threshold record discarded, order preserved
	require.Len(t, records, 3)
	assert.Equal(t, EventRecord{DiffNs: 1000, TotalNs: 500}, records[0])
	assert.Equal(t, EventRecord{DiffNs: 273002121, TotalNs: 42000329}, records[1])
	// diff of zero is retained here; the percentage guard is applied by the aggregator
	assert.Equal(t, EventRecord{DiffNs: 0, TotalNs: 25}, records[2])
}

func TestExtractEventsThresholdBoundary(t *testing.T) {
	// the cutoff is strictly greater-than
	records := ExtractEvents("diff: 10, total: 100000000", DefaultOutlierThresholdNs)
	require.Len(t, records, 1)
	records = ExtractEvents("diff: 10, total: 100000001", DefaultOutlierThresholdNs)
	assert.Empty(t, records)
}

func TestExtractEventsDeterministic(t *testing.T) {
	text := "diff: 1, total: 2\ndiff: 3, total: 4\n"
	first := ExtractEvents(text, DefaultOutlierThresholdNs)
	second := ExtractEvents(text, DefaultOutlierThresholdNs)
	assert.Equal(t, first, second)
}

func TestReadLog(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "emulator_SMP_1.log")
	err := os.WriteFile(path, []byte("\x1b[0;33mdiff: 1, total: 2\x1b[0m\n"), 0644)
	require.NoError(t, err)

	content, found := ReadLog(path)
	assert.True(t, found)
	assert.Equal(t, "diff: 1, total: 2\n", content)

	content, found = ReadLog(filepath.Join(dir, "missing.log"))
	assert.False(t, found)
	assert.Empty(t, content)
}
