package nodelog

import (
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/rodaine/table"
)

var reportTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"stamp": func(t time.Time) string { return t.Format(time.RFC3339) },
}).Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>HA installation {{ .RunID }}</title></head>
<body>
<h1>HA installation {{ .RunID }}</h1>
<p>Started {{ stamp .Started }}, finished {{ stamp .Finished }}</p>
<h2>Tasks</h2>
<table>
<tr><th>Node</th><th>Component</th><th>Outcome</th><th>Message</th></tr>
{{- range .Tasks }}
<tr class="{{ .Outcome }}"><td>{{ .Node }}</td><td>{{ .Component }}</td><td>{{ .Outcome }}</td><td>{{ .Message }}</td></tr>
{{- end }}
</table>
<h2>Log</h2>
<table>
<tr><th>Time</th><th>Severity</th><th>Node</th><th>Message</th></tr>
{{- range .Entries }}
<tr class="{{ .Severity }}"><td>{{ stamp .Time }}</td><td>{{ .Severity }}</td><td>{{ .Node }}</td><td>{{ .Message }}</td></tr>
{{- end }}
</table>
</body>
</html>
`))

func (report Report) WriteText(w io.Writer) error {
	headerFmt := color.New(color.FgGreen, color.Underline).SprintfFunc()
	columnFmt := color.New(color.FgYellow).SprintfFunc()

	if _, err := fmt.Fprintf(w, "Run %s\n\n", report.RunID); err != nil {
		return err
	}

	tasks := table.New("Node", "Component", "Outcome", "Message").WithWriter(w)
	tasks.WithHeaderFormatter(headerFmt).WithFirstColumnFormatter(columnFmt)

	for _, task := range report.Tasks {
		tasks.AddRow(task.Node, task.Component, task.Outcome, task.Message)
	}

	tasks.Print()

	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}

	entries := table.New("Time", "Severity", "Node", "Message").WithWriter(w)
	entries.WithHeaderFormatter(headerFmt).WithFirstColumnFormatter(columnFmt)

	for _, entry := range report.Entries {
		entries.AddRow(entry.Time.Format(time.RFC3339), entry.Severity, entry.Node, entry.Message)
	}

	entries.Print()

	return nil
}

func (report Report) WriteHTML(w io.Writer) error {
	return reportTemplate.Execute(w, report)
}

// WriteFile renders html for .html and .htm paths and text otherwise.
func (report Report) WriteFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	file, err := os.Create(path)

	if err != nil {
		return err
	}

	defer file.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return report.WriteHTML(file)
	default:
		return report.WriteText(file)
	}
}
