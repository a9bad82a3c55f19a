package dom

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Element is a single matched node. An Element over zero nodes is absent:
// every accessor still works and returns the zero value.
type Element struct {
	sel      *goquery.Selection
	selector string
}

func newElement(sel *goquery.Selection, selector string) *Element {
	return &Element{sel: sel, selector: selector}
}

// Selection exposes the underlying goquery selection.
func (e *Element) Selection() *goquery.Selection {
	return e.sel
}

// Node returns the wrapped node or nil when the element is absent.
func (e *Element) Node() *html.Node {
	if len(e.sel.Nodes) == 0 {
		return nil
	}
	return e.sel.Nodes[0]
}

func (e *Element) IsPresent() bool {
	return len(e.sel.Nodes) > 0
}

// Selector is the selector of the collection this element was taken from.
func (e *Element) Selector() string {
	return e.selector
}

// TagName returns the lower-case tag name, or "" for absent and non-element
// nodes.
func (e *Element) TagName() string {
	n := e.Node()
	if n == nil || n.Type != html.ElementNode {
		return ""
	}
	return n.Data
}

// Text returns the text of the element and its descendants with whitespace
// collapsed.
func (e *Element) Text() string {
	return text(e.sel.Nodes)
}

// OwnText returns only the text of direct text children.
func (e *Element) OwnText() string {
	n := e.Node()
	if n == nil {
		return ""
	}
	return ownText(n)
}

// WholeText returns descendant text exactly as parsed.
func (e *Element) WholeText() string {
	return e.sel.Text()
}

func (e *Element) HTML() string {
	contents, _ := e.sel.Html()
	return contents
}

func (e *Element) OuterHTML() string {
	contents, _ := goquery.OuterHtml(e.sel)
	return contents
}

// Attribute returns the attribute value, or "" when it is missing.
// Namespaced attributes are looked up as they are listed by Attributes,
// e.g. "xlink:href".
func (e *Element) Attribute(key string) string {
	val, _ := e.attribute(key)
	return val
}

func (e *Element) HasAttribute(key string) bool {
	_, ok := e.attribute(key)
	return ok
}

func (e *Element) attribute(key string) (string, bool) {
	n := e.Node()
	if n == nil {
		return "", false
	}
	return attributesOf(n).Get(strings.ToLower(key))
}

// Attributes returns all attributes in source order.
func (e *Element) Attributes() Attributes {
	n := e.Node()
	if n == nil {
		return Attributes{}
	}
	return attributesOf(n)
}

// DataAttributes returns the data-* attributes in source order.
func (e *Element) DataAttributes() Attributes {
	var data Attributes
	for _, a := range e.Attributes() {
		if strings.HasPrefix(a.Key, "data-") {
			data = append(data, a)
		}
	}
	return data
}

func (e *Element) ID() string {
	return e.Attribute("id")
}

func (e *Element) ClassNames() []string {
	return strings.Fields(e.Attribute("class"))
}

func (e *Element) HasClass(name string) bool {
	return e.sel.HasClass(name)
}

func (e *Element) Children() *Elements {
	return newElements(e.sel.Children(), joinSelector(e.selector, "> *"))
}

// Parent returns the parent element; absent for the root element.
func (e *Element) Parent() *Element {
	return newElement(e.sel.Parent(), "")
}

// Parents returns the ancestors, closest first.
func (e *Element) Parents() *Elements {
	return newElements(e.sel.Parents(), "")
}

func (e *Element) Siblings() *Elements {
	return newElements(e.sel.Siblings(), "")
}

// FindAll returns the descendants matching selector.
func (e *Element) FindAll(selector string) *Elements {
	return newElements(e.sel.Find(selector), joinSelector(e.selector, selector))
}

// FindFirst returns the first descendant matching selector, absent if none.
func (e *Element) FindFirst(selector string) *Element {
	return e.FindAll(selector).First()
}

// Path returns a CSS path from the root element down to this one, e.g.
// "html > body > div#main.wide > p".
func (e *Element) Path() string {
	if !e.IsPresent() {
		return ""
	}

	ancestors := e.sel.Parents().Nodes
	steps := make([]string, 0, len(ancestors)+1)
	for i := len(ancestors) - 1; i >= 0; i-- {
		steps = append(steps, pathStep(ancestors[i]))
	}
	steps = append(steps, pathStep(e.Node()))

	return strings.Join(steps, " > ")
}

func pathStep(n *html.Node) string {
	var id, class string
	for _, a := range n.Attr {
		if a.Namespace != "" {
			continue
		}
		switch a.Key {
		case "id":
			id = a.Val
		case "class":
			class = a.Val
		}
	}

	step := n.Data
	if id != "" {
		step += "#" + id
	}
	for _, c := range strings.Fields(class) {
		step += "." + c
	}
	return step
}
