package dom

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Elements is the result of a selection. It is present when it holds at
// least one node.
type Elements struct {
	sel      *goquery.Selection
	selector string
}

func newElements(sel *goquery.Selection, selector string) *Elements {
	return &Elements{sel: sel, selector: selector}
}

// Selection exposes the underlying goquery selection.
func (es *Elements) Selection() *goquery.Selection {
	return es.sel
}

// Selector returns the selector that produced this collection, prefixed by
// the selector of its scope.
func (es *Elements) Selector() string {
	return es.selector
}

func (es *Elements) Len() int {
	return es.sel.Length()
}

func (es *Elements) IsPresent() bool {
	return es.sel.Length() > 0
}

func (es *Elements) IsNotPresent() bool {
	return !es.IsPresent()
}

// Index returns the i-th element; negative indexes count from the end.
// Out of range indexes give an absent element.
func (es *Elements) Index(i int) *Element {
	return newElement(es.sel.Eq(i), es.selector)
}

func (es *Elements) First() *Element {
	return newElement(es.sel.First(), es.selector)
}

func (es *Elements) Last() *Element {
	return newElement(es.sel.Last(), es.selector)
}

func (es *Elements) All() []*Element {
	list := make([]*Element, es.Len())
	es.sel.Each(func(i int, s *goquery.Selection) {
		list[i] = newElement(s, es.selector)
	})
	return list
}

// Text joins the text of every element with a single space.
func (es *Elements) Text() string {
	var parts []string
	for _, t := range es.EachText() {
		if t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " ")
}

// HTML joins the inner markup of every element with a newline.
func (es *Elements) HTML() string {
	parts := make([]string, 0, es.Len())
	for _, e := range es.All() {
		parts = append(parts, e.HTML())
	}
	return strings.Join(parts, "\n")
}

// OuterHTML joins the outer markup of every element with a newline.
func (es *Elements) OuterHTML() string {
	parts := make([]string, 0, es.Len())
	for _, e := range es.All() {
		parts = append(parts, e.OuterHTML())
	}
	return strings.Join(parts, "\n")
}

func (es *Elements) EachText() []string {
	texts := make([]string, 0, es.Len())
	for _, e := range es.All() {
		texts = append(texts, e.Text())
	}
	return texts
}

// EachAttribute returns the value of key for every element carrying it.
func (es *Elements) EachAttribute(key string) []string {
	var values []string
	for _, e := range es.All() {
		if e.HasAttribute(key) {
			values = append(values, e.Attribute(key))
		}
	}
	return values
}

func (es *Elements) EachHref() []string {
	return es.EachAttribute("href")
}

func (es *Elements) EachSrc() []string {
	return es.EachAttribute("src")
}

// FindAll returns the descendants of every element matching selector.
func (es *Elements) FindAll(selector string) *Elements {
	return newElements(es.sel.Find(selector), joinSelector(es.selector, selector))
}

// FindFirst returns the first descendant matching selector, absent if none.
func (es *Elements) FindFirst(selector string) *Element {
	return es.FindAll(selector).First()
}

func joinSelector(scope, selector string) string {
	return strings.TrimSpace(scope + " " + selector)
}
