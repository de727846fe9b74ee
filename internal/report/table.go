// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

// Package report turns the matrices produced by the aggregation pass into
// presentation tables and renders them in txt, json, html, and xlsx formats.
package report

import (
	"fmt"
	"log/slog"

	"semustat/internal/profile"
)

// Field represents the values for a field in a table
type Field struct {
	Name   string
	Values []string
}

// TableValues combines the table definition with the resulting fields and their values
type TableValues struct {
	TableDefinition
	Fields []Field
}

type FieldsRetriever func(*profile.MatrixSet, []string) []Field

// TableDefinition defines the structure of a table in the report
type TableDefinition struct {
	Name        string
	MetricName  string // name of the backing matrix, empty for tables not built from a single matrix
	HasRows     bool   // table is meant to be displayed in row form, i.e., a field may have multiple values
	NoDataFound string // message to display when no data is found
	// Fields function is called to retrieve field values from the matrix set
	FieldsFunc FieldsRetriever
}

// ProcessTables processes the given tables against one matrix set to
// generate table values. envLabels carries one display label per
// environment, in environment order.
func ProcessTables(tables []TableDefinition, set *profile.MatrixSet, envLabels []string) (allTableValues []TableValues, err error) {
	for _, table := range tables {
		allTableValues = append(allTableValues, GetValuesForTable(table, set, envLabels))
	}
	return
}

// GetFieldIndex returns the index of a field with the given name in the TableValues structure.
func GetFieldIndex(fieldName string, tableValues TableValues) (int, error) {
	for i, field := range tableValues.Fields {
		if field.Name == fieldName {
			if len(field.Values) == 0 {
				return -1, fmt.Errorf("field [%s] does not have associated value(s)", field.Name)
			}
			return i, nil
		}
	}
	return -1, fmt.Errorf("field [%s] not found in table [%s]", fieldName, tableValues.Name)
}

// GetValuesForTable returns the fields and their values for the table with the given name
func GetValuesForTable(table TableDefinition, set *profile.MatrixSet, envLabels []string) TableValues {
	// FieldsFunc can't be nil
	if table.FieldsFunc == nil {
		panic(fmt.Sprintf("table %s, FieldsFunc cannot be nil", table.Name))
	}
	fields := table.FieldsFunc(set, envLabels)
	tableValues := TableValues{
		TableDefinition: table,
		Fields:          fields,
	}
	// sanity check
	if err := validateTableValues(tableValues); err != nil {
		slog.Error("table validation failed", "table", table.Name, "error", err)
		return TableValues{
			TableDefinition: table,
			Fields:          []Field{},
		}
	}
	return tableValues
}

func validateTableValues(tableValues TableValues) error {
	if tableValues.Name == "" {
		return fmt.Errorf("table name cannot be empty")
	}
	// no field values is a valid state
	if len(tableValues.Fields) == 0 {
		return nil
	}
	// field names cannot be empty
	for i, field := range tableValues.Fields {
		if field.Name == "" {
			return fmt.Errorf("table %s, field %d, name cannot be empty", tableValues.Name, i)
		}
	}
	// the number of entries in each field must be the same
	numEntries := len(tableValues.Fields[0].Values)
	for i, field := range tableValues.Fields {
		if len(field.Values) != numEntries {
			return fmt.Errorf("table %s, field %d, %s, number of entries must be the same for all fields, expected %d, got %d", tableValues.Name, i, field.Name, numEntries, len(field.Values))
		}
	}
	return nil
}
