// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

package report

import (
	"bytes"
	"fmt"
	"html/template"
)

const htmlReportTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Campaign}}</title>
<style>
body { font-family: sans-serif; margin: 2em; }
h2 { border-bottom: 1px solid #ccc; padding-bottom: 0.2em; }
table { border-collapse: collapse; margin-bottom: 2em; }
th, td { border: 1px solid #ccc; padding: 0.3em 0.8em; text-align: right; }
th { background-color: #f0f0f0; }
td:first-child, th:first-child { text-align: left; }
.nodata { color: #888; font-style: italic; }
</style>
</head>
<body>
<h1>{{.Campaign}}</h1>
{{range .Tables}}
<h2>{{.Name}}</h2>
{{if .Rows}}
<table>
<tr>{{range .Headers}}<th>{{.}}</th>{{end}}</tr>
{{range .Rows}}<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>
{{end}}
</table>
{{else}}
<p class="nodata">{{.NoData}}</p>
{{end}}
{{end}}
</body>
</html>
`

type htmlTable struct {
	Name    string
	Headers []string
	Rows    [][]string
	NoData  string
}

type htmlReport struct {
	Campaign string
	Tables   []htmlTable
}

func createHtmlReport(allTableValues []TableValues, campaignName string) (out []byte, err error) {
	data := htmlReport{Campaign: campaignName}
	for _, tableValues := range allTableValues {
		table := htmlTable{Name: tableValues.Name, NoData: noDataFound}
		if tableValues.NoDataFound != "" {
			table.NoData = tableValues.NoDataFound
		}
		if len(tableValues.Fields) > 0 && len(tableValues.Fields[0].Values) > 0 {
			if tableValues.HasRows {
				for _, field := range tableValues.Fields {
					table.Headers = append(table.Headers, field.Name)
				}
				numRows := len(tableValues.Fields[0].Values)
				for row := range numRows {
					var values []string
					for _, field := range tableValues.Fields {
						values = append(values, field.Values[row])
					}
					table.Rows = append(table.Rows, values)
				}
			} else {
				table.Headers = []string{"Field", "Value"}
				for _, field := range tableValues.Fields {
					table.Rows = append(table.Rows, []string{field.Name, field.Values[0]})
				}
			}
		}
		data.Tables = append(data.Tables, table)
	}
	tmpl, err := template.New("report").Parse(htmlReportTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse html report template: %w", err)
	}
	var buf bytes.Buffer
	if err = tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render html report: %w", err)
	}
	return buf.Bytes(), nil
}
