package report

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"html-dsl/internal/models"
)

var matches = []models.Match{
	{
		Index:     0,
		Tag:       "slot",
		Path:      "html > body > slot",
		Text:      "Title",
		OuterHTML: `<slot name="title" onclick="evil()">Title<script>alert(1)</script></slot>`,
	},
}

var results = []models.Result{
	{
		Source: "a.html",
		Recipe: "card",
		Fields: []models.Field{
			{Name: "title", Selector: "slot", Present: true, Count: 1, Values: []string{"Title"}},
			{Name: "names", Selector: "slot", Present: true, Count: 2, Values: []string{"a", "b"}},
		},
	},
	{Source: "b.html", Recipe: "card", Error: "opening document: no such file"},
}

func TestParseFormat(t *testing.T) {
	tests := map[string]Format{"": FormatText, "TEXT": FormatText, "json": FormatJSON, " html ": FormatHTML}
	for in, want := range tests {
		got, err := ParseFormat(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseFormat("xml")
	assert.Error(t, err)
}

func render(t *testing.T, format Format, fn func(*Renderer, *bytes.Buffer) error) string {
	t.Helper()
	r, err := NewRenderer(format)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, fn(r, &buf))
	return buf.String()
}

func TestMatchesText(t *testing.T) {
	out := render(t, FormatText, func(r *Renderer, b *bytes.Buffer) error {
		return r.Matches(b, "slot", matches)
	})
	assert.Equal(t, "0\thtml > body > slot\tTitle\n", out)

	out = render(t, FormatText, func(r *Renderer, b *bytes.Buffer) error {
		return r.Matches(b, "video", nil)
	})
	assert.Equal(t, "no matches for video\n", out)
}

func TestMatchesJSON(t *testing.T) {
	out := render(t, FormatJSON, func(r *Renderer, b *bytes.Buffer) error {
		return r.Matches(b, "slot", matches)
	})

	var decoded []models.Match
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, matches[0].OuterHTML, decoded[0].OuterHTML)
}

func TestMatchesHTMLSanitizesPreview(t *testing.T) {
	out := render(t, FormatHTML, func(r *Renderer, b *bytes.Buffer) error {
		return r.Matches(b, "slot", matches)
	})

	assert.Contains(t, out, "1 matches for slot")
	assert.Contains(t, out, "&lt;slot name=&#34;title&#34;")
	assert.NotContains(t, out, "<script>alert(1)</script>")
	assert.NotContains(t, out, `onclick="evil()"`)
}

func TestResultsText(t *testing.T) {
	out := render(t, FormatText, func(r *Renderer, b *bytes.Buffer) error {
		return r.Results(b, results)
	})

	expected := "# card a.html\n" +
		"title\tTitle\n" +
		"names\ta | b\n" +
		"# card b.html\n" +
		"error: opening document: no such file\n"
	assert.Equal(t, expected, out)
}

func TestResultsHTML(t *testing.T) {
	out := render(t, FormatHTML, func(r *Renderer, b *bytes.Buffer) error {
		return r.Results(b, results)
	})

	assert.Contains(t, out, "<h2>card (a.html)</h2>")
	assert.Contains(t, out, "a, b")
	assert.Contains(t, out, "opening document: no such file")
}

func TestValues(t *testing.T) {
	values := []string{"title", "<b>body</b>"}

	out := render(t, FormatText, func(r *Renderer, b *bytes.Buffer) error {
		return r.Values(b, "slot", values)
	})
	assert.Equal(t, "title\n<b>body</b>\n", out)

	out = render(t, FormatJSON, func(r *Renderer, b *bytes.Buffer) error {
		return r.Values(b, "slot", values)
	})
	var decoded []string
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, values, decoded)

	out = render(t, FormatHTML, func(r *Renderer, b *bytes.Buffer) error {
		return r.Values(b, "slot", values)
	})
	assert.Contains(t, out, "2 values for slot")
	assert.Contains(t, out, "<li>&lt;b&gt;body&lt;/b&gt;</li>")
}
