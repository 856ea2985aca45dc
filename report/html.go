// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"io"
	"strings"

	"github.com/google/safehtml/template"
)

var htmlTemplate = template.Must(template.New("").Funcs(htmlFuncs).Parse(`
<table class='gridperf'>
{{- range $i, $table := .}}
<tbody>
<tr><th>{{.Unit}}{{if .Compare}}<th>base {{.Label}}<th>{{end}}<th>{{.Label}}<th>{{if .Compare}}<th>vs base<th>{{end}}
{{range $row := .Rows -}}
{{if $table.Compare -}}
<tr class='{{if eq .Change -1}}lower{{else if eq .Change 1}}higher{{else}}unchanged{{end}}'>
{{- else -}}
<tr>
{{- end -}}
<td>{{.Name}}{{if $table.Compare}}{{with .Old}}<td>{{center $table .}}<td>± {{.Summary.PctRangeString}}{{else}}<td><td>{{end}}{{end}}<td>{{center $table .New}}<td>± {{.New.Summary.PctRangeString}}{{if $table.Compare}}<td>{{replace .Delta "-" "−" -1}}<td class='note'>{{.Note}}{{end}}
{{end -}}
{{with .Geomean -}}
<tr class='geomean'><td>{{.Name}}{{if $table.Compare}}<td>{{with .Old}}{{center $table .}}{{end}}<td>{{end}}<td>{{center $table .New}}<td>{{if $table.Compare}}<td>{{replace .Delta "-" "−" -1}}<td>{{end}}
{{end -}}
</tbody>
{{- end}}
</table>
`))

var htmlFuncs = template.FuncMap{
	"replace": strings.Replace,
	"center": func(t *Table, c *Cell) string {
		return t.scaler().Format(c.Summary.Center)
	},
}

// FormatHTML writes an HTML table of tables to w.
func FormatHTML(w io.Writer, tables []*Table) error {
	return htmlTemplate.Execute(w, tables)
}
