// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

package report

import (
	"bufio"
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

const (
	XlsxPrimarySheetName = "Report"
	XlsxChartsSheetName  = "Charts"
)

func cellName(col int, row int) (name string) {
	columnName, err := excelize.ColumnNumberToName(col)
	if err != nil {
		return
	}
	name, err = excelize.JoinCellName(columnName, row)
	if err != nil {
		return
	}
	return
}

// tablePlacement records where a table's values landed on the report sheet
// so that chart series can reference them.
type tablePlacement struct {
	headerRow    int
	firstDataRow int
	lastDataRow  int
	numFields    int
}

func renderXlsxTable(tableValues TableValues, f *excelize.File, sheetName string, row *int) (placement tablePlacement) {
	col := 1
	// print the table name
	tableNameStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
		},
	})
	_ = f.SetCellValue(sheetName, cellName(col, *row), tableValues.Name)
	_ = f.SetCellStyle(sheetName, cellName(col, *row), cellName(col, *row), tableNameStyle)
	*row++
	if len(tableValues.Fields) == 0 || len(tableValues.Fields[0].Values) == 0 {
		msg := noDataFound
		if tableValues.NoDataFound != "" {
			msg = tableValues.NoDataFound
		}
		_ = f.SetCellValue(sheetName, cellName(col, *row), msg)
		*row += 2
		return
	}
	placement = DefaultXlsxTableRendererFunc(tableValues, f, sheetName, row)
	*row++
	return
}

func DefaultXlsxTableRendererFunc(tableValues TableValues, f *excelize.File, sheetName string, row *int) (placement tablePlacement) {
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
		},
	})
	alignLeft, _ := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{
			Horizontal: "left",
		},
	})
	placement.numFields = len(tableValues.Fields)
	if tableValues.HasRows {
		// print the field names as column headings across the top of the table
		placement.headerRow = *row
		col := 2
		for _, field := range tableValues.Fields {
			_ = f.SetCellValue(sheetName, cellName(col, *row), field.Name)
			_ = f.SetCellStyle(sheetName, cellName(col, *row), cellName(col, *row), headerStyle)
			col++
		}
		col = 2
		*row++
		placement.firstDataRow = *row
		// print the rows
		tableRows := len(tableValues.Fields[0].Values)
		for tableRow := range tableRows {
			for _, field := range tableValues.Fields {
				value := getValueForCell(field.Values[tableRow])
				_ = f.SetCellValue(sheetName, cellName(col, *row), value)
				_ = f.SetCellStyle(sheetName, cellName(col, *row), cellName(col, *row), alignLeft)
				col++
			}
			col = 2
			*row++
		}
		placement.lastDataRow = *row - 1
	} else {
		// print the field name followed by its value
		placement.headerRow = *row
		placement.firstDataRow = *row
		col := 1
		for _, field := range tableValues.Fields {
			var fieldValue string
			if len(tableValues.Fields[0].Values) > 0 {
				fieldValue = field.Values[0]
			}
			_ = f.SetCellValue(sheetName, cellName(col, *row), field.Name)
			col++
			value := getValueForCell(fieldValue)
			_ = f.SetCellValue(sheetName, cellName(col, *row), value)
			_ = f.SetCellStyle(sheetName, cellName(col, *row), cellName(col, *row), alignLeft)
			col = 1
			*row++
		}
		placement.lastDataRow = *row - 1
	}
	return
}

func createXlsxReport(allTableValues []TableValues) (out []byte, err error) {
	f := excelize.NewFile()
	sheetName := XlsxPrimarySheetName
	_ = f.SetSheetName("Sheet1", sheetName)
	_ = f.SetColWidth(sheetName, "A", "A", 25)
	_ = f.SetColWidth(sheetName, "B", "L", 25)
	row := 1
	chartCount := 0
	for _, tableValues := range allTableValues {
		placement := renderXlsxTable(tableValues, f, sheetName, &row)
		// trend tables additionally get a native line chart, one series per
		// environment, SMP on the x-axis
		if tableValues.MetricName != "" && placement.lastDataRow >= placement.firstDataRow {
			if err = addTrendChart(tableValues, f, placement, chartCount); err != nil {
				return
			}
			chartCount++
		}
	}
	var buf bytes.Buffer
	w := bufio.NewWriter(&buf)
	_, err = f.WriteTo(w)
	if err != nil {
		err = fmt.Errorf("failed to write xlsx report to buffer: %v", err)
		return
	}
	out = buf.Bytes()
	return
}

func addTrendChart(tableValues TableValues, f *excelize.File, placement tablePlacement, chartIdx int) error {
	if chartIdx == 0 {
		if _, err := f.NewSheet(XlsxChartsSheetName); err != nil {
			return fmt.Errorf("failed to create charts sheet: %v", err)
		}
	}
	// column B holds the SMP axis, environment series start in column C
	categories := fmt.Sprintf("%s!$B$%d:$B$%d", XlsxPrimarySheetName, placement.firstDataRow, placement.lastDataRow)
	var series []excelize.ChartSeries
	for fieldIdx := 1; fieldIdx < placement.numFields; fieldIdx++ {
		column, err := excelize.ColumnNumberToName(2 + fieldIdx)
		if err != nil {
			return err
		}
		series = append(series, excelize.ChartSeries{
			Name:       fmt.Sprintf("%s!%s", XlsxPrimarySheetName, cellName(2+fieldIdx, placement.headerRow)),
			Categories: categories,
			Values:     fmt.Sprintf("%s!$%s$%d:$%s$%d", XlsxPrimarySheetName, column, placement.firstDataRow, column, placement.lastDataRow),
		})
	}
	// 20 rows per chart on the charts sheet
	anchor := cellName(1, chartIdx*20+1)
	chart := excelize.Chart{
		Type:   excelize.Line,
		Series: series,
		Title:  []excelize.RichTextRun{{Text: tableValues.Name}},
		Legend: excelize.ChartLegend{Position: "bottom"},
	}
	if err := f.AddChart(XlsxChartsSheetName, anchor, &chart); err != nil {
		return fmt.Errorf("failed to add chart for table %s: %v", tableValues.Name, err)
	}
	return nil
}

func getValueForCell(value string) (val any) {
	// grouped digits, e.g., 239,937,385, still land as numbers
	ungrouped := strings.ReplaceAll(value, ",", "")
	intValue, err := strconv.Atoi(ungrouped)
	if err == nil {
		val = intValue
		return
	}
	floatValue, err := strconv.ParseFloat(ungrouped, 64)
	if err == nil {
		val = floatValue
		return
	}
	val = value
	return
}
