// Package report renders matches and extraction results for people and
// machines.
package report

import (
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"html-dsl/internal/models"
)

type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatHTML Format = "html"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatText, nil
	case FormatText, FormatJSON, FormatHTML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown format %q", s)
	}
}

const htmlTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <title>{{.Title}}</title>
    <style>
        body { font-family: Arial, sans-serif; }
        .match { margin: 20px 0; padding: 15px; border: 1px solid #ddd; border-radius: 5px; }
        .path { color: #718096; font-size: 14px; }
        .missing { color: #c53030; }
        pre { background: #f7fafc; padding: 10px; white-space: pre-wrap; }
    </style>
</head>
<body>
    <h1>{{.Title}}</h1>
    {{range .Matches}}
    <div class="match">
        <div class="path">#{{.Index}} {{.Path}}</div>
        <p>{{.Text}}</p>
        <pre>{{.OuterHTML}}</pre>
        <div class="preview">{{preview .OuterHTML}}</div>
    </div>
    {{end}}
    {{if .Values}}
    <ol class="match">
    {{range .Values}}<li>{{.}}</li>{{end}}
    </ol>
    {{end}}
    {{range .Results}}
    <div class="match">
        <h2>{{.Recipe}}{{if .Source}} ({{.Source}}){{end}}</h2>
        {{if .Error}}<p class="missing">{{.Error}}</p>{{end}}
        <table>
        {{range .Fields}}
            <tr>
                <th>{{.Name}}</th>
                <td class="path">{{.Selector}}</td>
                <td{{if not .Present}} class="missing"{{end}}>{{join .Values ", "}}</td>
            </tr>
        {{end}}
        </table>
    </div>
    {{end}}
</body>
</html>
`

// Renderer writes reports in one format.
type Renderer struct {
	format Format
	policy *bluemonday.Policy
	tmpl   *template.Template
}

func NewRenderer(format Format) (*Renderer, error) {
	r := &Renderer{
		format: format,
		policy: bluemonday.UGCPolicy(),
	}

	tmpl, err := template.New("report").Funcs(template.FuncMap{
		"preview": r.preview,
		"join":    strings.Join,
	}).Parse(htmlTemplate)
	if err != nil {
		return nil, fmt.Errorf("parsing template: %w", err)
	}
	r.tmpl = tmpl

	return r, nil
}

// preview sanitizes markup so it can be shown rendered in the report.
func (r *Renderer) preview(markup string) template.HTML {
	return template.HTML(r.policy.Sanitize(markup))
}

type page struct {
	Title   string
	Matches []models.Match
	Results []models.Result
	Values  []string
}

func (r *Renderer) Matches(w io.Writer, selector string, matches []models.Match) error {
	switch r.format {
	case FormatJSON:
		return writeJSON(w, matches)
	case FormatHTML:
		return r.writeHTML(w, page{Title: fmt.Sprintf("%d matches for %s", len(matches), selector), Matches: matches})
	}

	if len(matches) == 0 {
		_, err := fmt.Fprintf(w, "no matches for %s\n", selector)
		return err
	}
	for _, m := range matches {
		if _, err := fmt.Fprintf(w, "%d\t%s\t%s\n", m.Index, m.Path, m.Text); err != nil {
			return fmt.Errorf("writing match: %w", err)
		}
	}
	return nil
}

// Values writes one rendered value per line.
func (r *Renderer) Values(w io.Writer, selector string, values []string) error {
	switch r.format {
	case FormatJSON:
		return writeJSON(w, values)
	case FormatHTML:
		return r.writeHTML(w, page{Title: fmt.Sprintf("%d values for %s", len(values), selector), Values: values})
	}

	for _, v := range values {
		if _, err := fmt.Fprintln(w, v); err != nil {
			return fmt.Errorf("writing value: %w", err)
		}
	}
	return nil
}

func (r *Renderer) Results(w io.Writer, results []models.Result) error {
	switch r.format {
	case FormatJSON:
		return writeJSON(w, results)
	case FormatHTML:
		return r.writeHTML(w, page{Title: "Extraction report", Results: results})
	}

	for _, res := range results {
		header := res.Recipe
		if res.Source != "" {
			header += " " + res.Source
		}
		if _, err := fmt.Fprintf(w, "# %s\n", header); err != nil {
			return fmt.Errorf("writing result: %w", err)
		}
		if res.Error != "" {
			if _, err := fmt.Fprintf(w, "error: %s\n", res.Error); err != nil {
				return fmt.Errorf("writing result: %w", err)
			}
			continue
		}
		for _, f := range res.Fields {
			if _, err := fmt.Fprintf(w, "%s\t%s\n", f.Name, strings.Join(f.Values, " | ")); err != nil {
				return fmt.Errorf("writing field: %w", err)
			}
		}
	}
	return nil
}

func (r *Renderer) writeHTML(w io.Writer, p page) error {
	if err := r.tmpl.Execute(w, p); err != nil {
		return fmt.Errorf("executing template: %w", err)
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding json: %w", err)
	}
	return nil
}
