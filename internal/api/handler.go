package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"html-dsl/internal/dom"
	"html-dsl/internal/extract"
	"html-dsl/internal/models"
	"html-dsl/internal/selector"
)

// maxBodyBytes bounds the size of posted documents.
const maxBodyBytes = 10 << 20

type Extractor interface {
	Extract(doc *dom.Doc, recipe extract.Recipe) (models.Result, error)
}

type Handler struct {
	extractor Extractor
}

func NewHandler(extractor *extract.Extractor) *Handler {
	return &Handler{extractor: extractor}
}

type selectResponse struct {
	Selector string         `json:"selector"`
	Count    int            `json:"count"`
	Matches  []models.Match `json:"matches"`
}

// Select parses the request body as HTML and returns the elements matching
// the selector built from the query parameters.
func (h *Handler) Select(c *gin.Context) {
	css := selector.Tag(c.Query("tag"),
		selector.Raw(c.Query("raw")),
		selector.WithClass(c.QueryArray("class")...),
		selector.WithID(c.Query("id")),
	)
	for _, attr := range c.QueryArray("attr") {
		key, val, hasVal := strings.Cut(attr, "=")
		if hasVal {
			selector.WithAttr(key, val)(&css)
		} else {
			selector.WithAttrKey(key)(&css)
		}
	}

	if css.String() == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "one of 'tag', 'raw', 'class', 'id' or 'attr' is required"})
		return
	}

	body, err := io.ReadAll(limitBody(c))
	if err != nil {
		bodyError(c, err)
		return
	}
	if len(strings.TrimSpace(string(body))) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "request body must contain HTML"})
		return
	}

	doc, err := dom.ParseString(string(body))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp := selector.In(doc, css, func(es *dom.Elements) selectResponse {
		return selectResponse{
			Selector: es.Selector(),
			Count:    es.Len(),
			Matches:  extract.Matches(es),
		}
	})
	c.JSON(http.StatusOK, resp)
}

type extractRequest struct {
	HTML   string         `json:"html"`
	Recipe extract.Recipe `json:"recipe"`
}

// Extract runs the posted recipe against the posted HTML.
func (h *Handler) Extract(c *gin.Context) {
	var req extractRequest
	limitBody(c)
	if err := c.ShouldBindJSON(&req); err != nil {
		bodyError(c, err)
		return
	}
	if strings.TrimSpace(req.HTML) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "field 'html' is required"})
		return
	}
	if err := req.Recipe.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	doc, err := dom.ParseString(req.HTML)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.extractor.Extract(doc, req.Recipe)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

// limitBody caps the request body at maxBodyBytes. Reads past the cap fail
// instead of truncating the document.
func limitBody(c *gin.Context) io.Reader {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes)
	return c.Request.Body
}

func bodyError(c *gin.Context, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit)})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}
