package dom

import "golang.org/x/net/html"

type Attribute struct {
	Key string `json:"key" yaml:"key"`
	Val string `json:"value" yaml:"value"`
}

// Attributes keeps attributes in the order they appear in the source.
type Attributes []Attribute

func attributesOf(n *html.Node) Attributes {
	attrs := make(Attributes, 0, len(n.Attr))
	for _, a := range n.Attr {
		key := a.Key
		if a.Namespace != "" {
			key = a.Namespace + ":" + a.Key
		}
		attrs = append(attrs, Attribute{Key: key, Val: a.Val})
	}
	return attrs
}

func (a Attributes) Get(key string) (string, bool) {
	for _, attr := range a {
		if attr.Key == key {
			return attr.Val, true
		}
	}
	return "", false
}

func (a Attributes) Keys() []string {
	keys := make([]string, len(a))
	for i, attr := range a {
		keys[i] = attr.Key
	}
	return keys
}

// Map loses ordering; later duplicates win.
func (a Attributes) Map() map[string]string {
	m := make(map[string]string, len(a))
	for _, attr := range a {
		m[attr.Key] = attr.Val
	}
	return m
}
