// Package selector builds CSS selector strings for tag families and runs
// them against a dom.Scope.
package selector

import (
	"strings"

	"github.com/andybalholm/cascadia"

	"html-dsl/internal/dom"
)

type Attr struct {
	Key string `json:"key" yaml:"key"`
	Val string `json:"value" yaml:"value"`
}

// CSS describes a selector. Every part is optional and the parts are
// concatenated in field order; nothing is validated.
type CSS struct {
	Tag      string
	Raw      string
	Classes  []string
	ID       string
	AttrKeys []string
	Attrs    []Attr
}

// Option configures a CSS value. A plain func(*CSS) literal works as well.
type Option func(*CSS)

// Raw appends a raw selector fragment right after the tag name.
func Raw(fragment string) Option {
	return func(c *CSS) {
		c.Raw += fragment
	}
}

func WithClass(names ...string) Option {
	return func(c *CSS) {
		c.Classes = append(c.Classes, names...)
	}
}

func WithID(id string) Option {
	return func(c *CSS) {
		c.ID = id
	}
}

// WithAttrKey requires the attributes to be present, whatever their value.
func WithAttrKey(keys ...string) Option {
	return func(c *CSS) {
		c.AttrKeys = append(c.AttrKeys, keys...)
	}
}

// WithAttr requires the attribute key to equal val.
func WithAttr(key, val string) Option {
	return func(c *CSS) {
		c.Attrs = append(c.Attrs, Attr{Key: key, Val: val})
	}
}

// Tag returns the selector for name with opts applied.
func Tag(name string, opts ...Option) CSS {
	c := CSS{Tag: name}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

func (c CSS) String() string {
	var b strings.Builder
	b.WriteString(c.Tag)
	b.WriteString(c.Raw)
	for _, class := range c.Classes {
		b.WriteString("." + class)
	}
	if c.ID != "" {
		b.WriteString("#" + c.ID)
	}
	for _, key := range c.AttrKeys {
		b.WriteString("[" + key + "]")
	}
	for _, a := range c.Attrs {
		b.WriteString("[" + a.Key + "='" + a.Val + "']")
	}
	return strings.TrimSpace(b.String())
}

// Compile parses the selector with cascadia so that syntax errors can be
// reported before the selector is used.
func (c CSS) Compile() (cascadia.Selector, error) {
	return cascadia.Compile(c.String())
}

// In evaluates css within scope and returns fn's result.
func In[T any](scope dom.Scope, css CSS, fn func(*dom.Elements) T) T {
	return dom.Select(scope, css.String(), fn)
}
