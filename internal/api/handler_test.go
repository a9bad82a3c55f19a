package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"html-dsl/internal/dom"
	"html-dsl/internal/extract"
	"html-dsl/internal/models"
)

const document = `<html><body>
<template id="card"><slot name="title" class="h">Title</slot><slot name="body">Body</slot></template>
</body></html>`

func newRouter(h *Handler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/select", h.Select)
	r.POST("/api/extract", h.Extract)
	return r
}

func TestSelect(t *testing.T) {
	r := newRouter(NewHandler(extract.NewExtractor()))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/select?tag=slot&attr=name=title&class=h", strings.NewReader(document))
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp selectResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "slot.h[name='title']", resp.Selector)
	assert.Equal(t, 1, resp.Count)
	require.Len(t, resp.Matches, 1)
	assert.Equal(t, "Title", resp.Matches[0].Text)
	assert.Equal(t, "html > body > template#card > slot.h", resp.Matches[0].Path)
}

func TestSelectRawSuffixAndAttrKey(t *testing.T) {
	r := newRouter(NewHandler(extract.NewExtractor()))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/select?tag=template&raw=%23card&attr=id", strings.NewReader(document))
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp selectResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "template#card[id]", resp.Selector)
	assert.Equal(t, 1, resp.Count)
}

func TestSelectNoMatches(t *testing.T) {
	r := newRouter(NewHandler(extract.NewExtractor()))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/select?tag=shadow", strings.NewReader(document))
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp selectResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 0, resp.Count)
	assert.Empty(t, resp.Matches)
}

func TestSelectBadRequests(t *testing.T) {
	r := newRouter(NewHandler(extract.NewExtractor()))

	tests := []struct {
		name string
		url  string
		body string
	}{
		{"no selector", "/api/select", document},
		{"no body", "/api/select?tag=slot", "   "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, tt.url, strings.NewReader(tt.body))
			r.ServeHTTP(w, req)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestOversizedBodies(t *testing.T) {
	r := newRouter(NewHandler(extract.NewExtractor()))
	filler := strings.Repeat("x", maxBodyBytes)

	tests := []struct {
		name string
		url  string
		body string
	}{
		{"select", "/api/select?tag=slot", "<p>" + filler + "</p><slot name=late></slot>"},
		{"extract", "/api/extract", `{"html":"<p>` + filler + `</p>","recipe":{"name":"x","fields":[{"name":"a","tag":"p"}]}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, tt.url, strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			r.ServeHTTP(w, req)

			assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
			assert.Contains(t, w.Body.String(), "exceeds")
		})
	}
}

func TestSelectBodyAtLimit(t *testing.T) {
	r := newRouter(NewHandler(extract.NewExtractor()))

	markup := "<slot name=last></slot>"
	body := strings.Repeat(" ", maxBodyBytes-len(markup)) + markup

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/select?tag=slot", strings.NewReader(body))
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp selectResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Count)
}

func TestExtract(t *testing.T) {
	r := newRouter(NewHandler(extract.NewExtractor()))

	body, err := json.Marshal(extractRequest{
		HTML: document,
		Recipe: extract.Recipe{
			Name:  "card",
			Scope: "template#card",
			Fields: []extract.Field{
				{Name: "title", Tag: "slot", Classes: []string{"h"}},
				{Name: "names", Tag: "slot", All: true, Value: "attr:name"},
			},
		},
	})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/extract", strings.NewReader(string(body)))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var result models.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, "Title", result.Value("title"))
	names, ok := result.Field("names")
	require.True(t, ok)
	assert.Equal(t, []string{"title", "body"}, names.Values)
}

func TestExtractBadRequests(t *testing.T) {
	r := newRouter(NewHandler(extract.NewExtractor()))

	tests := []struct {
		name string
		body string
	}{
		{"not json", "<html>"},
		{"no html", `{"recipe":{"name":"x","fields":[{"name":"a","tag":"p"}]}}`},
		{"invalid recipe", `{"html":"<p>x</p>","recipe":{"name":"x","fields":[]}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/extract", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			r.ServeHTTP(w, req)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestExtractFailure(t *testing.T) {
	r := newRouter(&Handler{extractor: &mockExtractor{err: errors.New("boom")}})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/extract",
		strings.NewReader(`{"html":"<p>x</p>","recipe":{"name":"x","fields":[{"name":"a","tag":"p"}]}}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "boom")
}

type mockExtractor struct {
	err error
}

func (m *mockExtractor) Extract(doc *dom.Doc, recipe extract.Recipe) (models.Result, error) {
	return models.Result{}, m.err
}
