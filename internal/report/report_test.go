// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"semustat/internal/profile"
)

// newTestSet builds a small 2 environments x 3 SMP matrix set with data in
// the (1, 2) cell and defaults everywhere else.
func newTestSet(t *testing.T) *profile.MatrixSet {
	t.Helper()
	names := append(profile.MetricNames(), profile.MetricNsPerCallMin, profile.MetricNsPerCallMax, profile.MetricNsPerCallStddev)
	set := profile.NewMatrixSet(2, 3, names)
	setCell := func(name string, value float64, count int) {
		m, err := set.Matrix(name)
		require.NoError(t, err, name)
		m.Set(1, 2, value, count)
	}
	setCell("boot_time", 3.5, 1)
	setCell("times_called", 239937385, 1)
	setCell("offset", -545795809, 1)
	setCell("real_boot_time", 0.1, 1)
	setCell("predicted_boot_time", 0.15, 1)
	setCell("avg_real_ns_per_call", 3e-05, 4)
	setCell("avg_real_percentage", 0.6, 4)
	setCell(profile.MetricNsPerCallMin, 2e-05, 4)
	setCell(profile.MetricNsPerCallMax, 4e-05, 4)
	setCell(profile.MetricNsPerCallStddev, 1e-05, 4)
	return set
}

var testEnvLabels = []string{"1: baseline", ""}

func TestTablesByName(t *testing.T) {
	// report order is preserved regardless of request order
	tables, err := TablesByName([]string{SampleCountsTableName, BootTimeTableName})
	require.NoError(t, err)
	require.Len(t, tables, 2)
	assert.Equal(t, BootTimeTableName, tables[0].Name)
	assert.Equal(t, SampleCountsTableName, tables[1].Name)

	_, err = TablesByName([]string{"Bogus Table"})
	assert.Error(t, err)
}

func TestAllTableNames(t *testing.T) {
	names := AllTableNames()
	assert.Len(t, names, len(tableDefinitions))
	assert.Equal(t, BootTimeTableName, names[0])
	assert.Equal(t, SampleCountsTableName, names[len(names)-1])
}

func TestTrendTableFields(t *testing.T) {
	set := newTestSet(t)
	table, err := GetTableByName(BootTimeTableName)
	require.NoError(t, err)
	tableValues := GetValuesForTable(table, set, testEnvLabels)
	// SMP axis plus one column per environment
	require.Len(t, tableValues.Fields, 3)
	smpIdx, err := GetFieldIndex("SMP", tableValues)
	require.NoError(t, err)
	assert.Equal(t, 0, smpIdx)
	assert.Equal(t, "SMP", tableValues.Fields[0].Name)
	assert.Equal(t, []string{"1", "2", "3"}, tableValues.Fields[0].Values)
	assert.Equal(t, "1: baseline", tableValues.Fields[1].Name)
	assert.Equal(t, "Env 2", tableValues.Fields[2].Name)
	assert.Equal(t, "3.5", tableValues.Fields[1].Values[1])
	assert.Equal(t, "0", tableValues.Fields[2].Values[1])
}

func TestEventStatisticsFields(t *testing.T) {
	set := newTestSet(t)
	table, err := GetTableByName(EventStatisticsTableName)
	require.NoError(t, err)
	tableValues := GetValuesForTable(table, set, testEnvLabels)
	require.Len(t, tableValues.Fields, 8)
	// only the one cell with samples produces a row
	require.Len(t, tableValues.Fields[0].Values, 1)
	assert.Equal(t, "1: baseline", tableValues.Fields[0].Values[0])
	assert.Equal(t, "2", tableValues.Fields[1].Values[0])
	assert.Equal(t, "4", tableValues.Fields[2].Values[0])
	assert.Equal(t, "3e-05", tableValues.Fields[3].Values[0])
}

func TestSampleCountsFields(t *testing.T) {
	set := newTestSet(t)
	table, err := GetTableByName(SampleCountsTableName)
	require.NoError(t, err)
	tableValues := GetValuesForTable(table, set, testEnvLabels)
	require.Len(t, tableValues.Fields, 6)
	// one row per grid cell
	require.Len(t, tableValues.Fields[0].Values, 6)
	// row for (1, 2): 4 event samples, summary row and emulator log present
	assert.Equal(t, "4", tableValues.Fields[2].Values[1])
	assert.Equal(t, "yes", tableValues.Fields[4].Values[1])
	assert.Equal(t, "yes", tableValues.Fields[5].Values[1])
	// a cell without any input
	assert.Equal(t, "0", tableValues.Fields[2].Values[0])
	assert.Equal(t, "no", tableValues.Fields[4].Values[0])
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "239,937,385", formatValue(239937385, true))
	assert.Equal(t, "-545,795,809", formatValue(-545795809, true))
	assert.Equal(t, "3.5", formatValue(3.5, true))
	assert.Equal(t, "3e-05", formatValue(3e-05, false))
	assert.Equal(t, "0", formatValue(0, false))
}

func processAllTables(t *testing.T) []TableValues {
	t.Helper()
	set := newTestSet(t)
	tables, err := TablesByName(AllTableNames())
	require.NoError(t, err)
	allTableValues, err := ProcessTables(tables, set, testEnvLabels)
	require.NoError(t, err)
	return allTableValues
}

func TestCreateTextReport(t *testing.T) {
	allTableValues := processAllTables(t)
	out, err := Create(FormatTxt, allTableValues, "campaign")
	require.NoError(t, err)
	text := string(out)
	assert.Contains(t, text, BootTimeTableName+"\n=========")
	assert.Contains(t, text, "SMP")
	assert.Contains(t, text, "1: baseline")
	assert.Contains(t, text, "239,937,385")
}

func TestCreateJsonReport(t *testing.T) {
	allTableValues := processAllTables(t)
	out, err := Create(FormatJson, allTableValues, "campaign")
	require.NoError(t, err)
	var report map[string][]map[string]string
	require.NoError(t, json.Unmarshal(out, &report))
	bootTable, ok := report[BootTimeTableName]
	require.True(t, ok)
	require.Len(t, bootTable, 3)
	assert.Equal(t, "3.5", bootTable[1]["1: baseline"])
}

func TestCreateHtmlReport(t *testing.T) {
	allTableValues := processAllTables(t)
	out, err := Create(FormatHtml, allTableValues, "campaign")
	require.NoError(t, err)
	html := string(out)
	assert.True(t, strings.Contains(html, "<html"))
	assert.Contains(t, html, "campaign")
	assert.Contains(t, html, BootTimeTableName)
}

func TestCreateXlsxReport(t *testing.T) {
	allTableValues := processAllTables(t)
	out, err := Create(FormatXlsx, allTableValues, "campaign")
	require.NoError(t, err)
	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	sheets := f.GetSheetList()
	assert.Contains(t, sheets, XlsxPrimarySheetName)
	assert.Contains(t, sheets, XlsxChartsSheetName)
	// the first table name lands in A1
	value, err := f.GetCellValue(XlsxPrimarySheetName, "A1")
	require.NoError(t, err)
	assert.Equal(t, BootTimeTableName, value)
}

func TestCreateRejectsUnevenFields(t *testing.T) {
	uneven := []TableValues{{
		TableDefinition: TableDefinition{Name: "Uneven"},
		Fields: []Field{
			{Name: "A", Values: []string{"1", "2"}},
			{Name: "B", Values: []string{"1"}},
		},
	}}
	_, err := Create(FormatTxt, uneven, "campaign")
	assert.Error(t, err)
}

func TestGetValueForCell(t *testing.T) {
	assert.Equal(t, 239937385, getValueForCell("239,937,385"))
	assert.Equal(t, 3.5, getValueForCell("3.5"))
	assert.Equal(t, "1: baseline", getValueForCell("1: baseline"))
}
