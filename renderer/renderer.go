// Package renderer formats pipeline results and dataset summaries as markdown.
package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/etnz/wts/census"
	"github.com/etnz/wts/date"
	"github.com/etnz/wts/pipeline"
)

//go:embed templates/*.md
var templates embed.FS

// Run is the view of a pipeline run.
type Run struct {
	Output  string
	Period  date.Range
	Aligned int
	Records int
	Series  []Series
	Charts  string // Path of the charts workbook, empty if not drawn.
	Metrics string // Path of the metrics textfile, empty if not written.
}

// Series is the view of one loaded extract.
type Series struct {
	Name  string
	File  string
	Stats census.Stats
}

// NewRun returns the view of a successful pipeline run.
func NewRun(cfg pipeline.Config, r *pipeline.Result) *Run {
	run := &Run{
		Output:  r.Output,
		Aligned: r.Aligned,
		Records: len(r.Metrics),
		Series: []Series{
			{Name: cfg.Sales.Name, File: filepath.Base(cfg.Sales.Path), Stats: r.Sales},
			{Name: cfg.Inventories.Name, File: filepath.Base(cfg.Inventories.Path), Stats: r.Inventories},
		},
	}
	if n := len(r.Metrics); n > 0 {
		run.Period = date.Range{From: r.Metrics[0].On, To: r.Metrics[n-1].On}
	}
	return run
}

// RenderRun renders the report of a pipeline run to a markdown string.
func RenderRun(r *Run) string {
	partials := map[string]string{
		"run_series": "run_series.md",
		"run_next":   "run_next.md",
	}
	return renderTemplate("run", "run.md", partials, r)
}

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, "templates/"+mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		var content []byte
		// An empty file name is a valid case, resulting in an empty template.
		if file != "" {
			var readErr error
			content, readErr = fs.ReadFile(templates, "templates/"+file)
			if readErr != nil {
				return fmt.Sprintf("error reading partial template %q: %v", file, readErr)
			}
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}
