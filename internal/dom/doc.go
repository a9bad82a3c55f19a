// Package dom wraps parsed HTML nodes with read-only accessors.
//
// Parsing is done by golang.org/x/net/html and selection by goquery; this
// package never mutates the tree it is given.
package dom

import (
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Doc is a parsed HTML document or fragment.
type Doc struct {
	*Elements
	doc *goquery.Document
}

// Parse reads a complete HTML document. Parser errors are returned unchanged.
func Parse(r io.Reader) (*Doc, error) {
	d, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}
	return newDoc(d), nil
}

// ParseString is Parse over an in-memory string.
func ParseString(source string) (*Doc, error) {
	return Parse(strings.NewReader(source))
}

// ParseFragment parses source in a <body> context. The resulting nodes are
// placed under a synthetic document node so that top-level elements of the
// fragment can be selected.
func ParseFragment(source string) (*Doc, error) {
	return ParseFragmentIn(source, nil)
}

// ParseFragmentIn parses source as if it were the content of parent, which
// keeps elements such as <td> or <tr> that a <body> context would drop.
// An absent or nil parent falls back to <body>.
func ParseFragmentIn(source string, parent *Element) (*Doc, error) {
	nodes, err := html.ParseFragment(strings.NewReader(source), fragmentContext(parent))
	if err != nil {
		return nil, err
	}

	root := &html.Node{Type: html.DocumentNode}
	for _, n := range nodes {
		root.AppendChild(n)
	}

	return FromNode(root), nil
}

// fragmentContext copies the parent's identity so the parser never sees the
// caller's tree.
func fragmentContext(parent *Element) *html.Node {
	if parent != nil {
		if n := parent.Node(); n != nil && n.Type == html.ElementNode {
			return &html.Node{
				Type:      html.ElementNode,
				Data:      n.Data,
				DataAtom:  n.DataAtom,
				Namespace: n.Namespace,
			}
		}
	}
	return &html.Node{
		Type:     html.ElementNode,
		Data:     "body",
		DataAtom: atom.Body,
	}
}

// FromNode wraps a node parsed elsewhere. The node stays owned by the caller.
func FromNode(n *html.Node) *Doc {
	return newDoc(goquery.NewDocumentFromNode(n))
}

func newDoc(d *goquery.Document) *Doc {
	return &Doc{
		Elements: newElements(d.Selection, ""),
		doc:      d,
	}
}

// Root returns the first element child of the document, usually <html>.
func (d *Doc) Root() *Element {
	return newElement(d.doc.Selection.Children().First(), "")
}

// Title returns the normalised text of the first <title> element.
func (d *Doc) Title() string {
	return text(d.doc.Find("title").First().Nodes)
}

// Document exposes the underlying goquery document.
func (d *Doc) Document() *goquery.Document {
	return d.doc
}
