package models

type Attribute struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Match is the serialisable view of one matched element.
type Match struct {
	Index      int         `json:"index"`
	Tag        string      `json:"tag"`
	Path       string      `json:"path"`
	Text       string      `json:"text"`
	OwnText    string      `json:"own_text,omitempty"`
	HTML       string      `json:"html"`
	OuterHTML  string      `json:"outer_html"`
	Attributes []Attribute `json:"attributes"`
}

// Field is the extracted value of one recipe field.
type Field struct {
	Name     string   `json:"name"`
	Selector string   `json:"selector"`
	Present  bool     `json:"present"`
	Count    int      `json:"count"`
	Values   []string `json:"values"`
}

// Result is the outcome of running a recipe against one document.
type Result struct {
	Source string  `json:"source,omitempty"`
	Recipe string  `json:"recipe"`
	Fields []Field `json:"fields"`
	Error  string  `json:"error,omitempty"`
}

// Field returns the field called name.
func (r Result) Field(name string) (Field, bool) {
	for _, f := range r.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Value returns the first value of the field called name, or "".
func (r Result) Value(name string) string {
	f, ok := r.Field(name)
	if !ok || len(f.Values) == 0 {
		return ""
	}
	return f.Values[0]
}
