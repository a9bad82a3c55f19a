package extract

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/andybalholm/cascadia"
	"gopkg.in/yaml.v3"

	"html-dsl/internal/selector"
)

var (
	ErrEmptyRecipe  = errors.New("recipe has no fields")
	ErrUnknownValue = errors.New("unknown value kind")
)

// Value kinds a field can produce.
const (
	ValueText      = "text"
	ValueOwnText   = "own_text"
	ValueHTML      = "html"
	ValueOuterHTML = "outer_html"
	ValuePresent   = "present"
	ValueCount     = "count"

	attrPrefix = "attr:"
)

// Recipe maps field names to selectors. Scope, when set, restricts every
// field to the descendants of the elements it matches.
type Recipe struct {
	Name   string  `yaml:"name" json:"name"`
	Scope  string  `yaml:"scope,omitempty" json:"scope,omitempty"`
	Fields []Field `yaml:"fields" json:"fields"`
}

type Field struct {
	Name     string          `yaml:"name" json:"name"`
	Tag      string          `yaml:"tag,omitempty" json:"tag,omitempty"`
	Raw      string          `yaml:"raw,omitempty" json:"raw,omitempty"`
	Classes  []string        `yaml:"classes,omitempty" json:"classes,omitempty"`
	ID       string          `yaml:"id,omitempty" json:"id,omitempty"`
	AttrKeys []string        `yaml:"attr_keys,omitempty" json:"attr_keys,omitempty"`
	Attrs    []selector.Attr `yaml:"attrs,omitempty" json:"attrs,omitempty"`
	// Value is one of the Value* kinds or "attr:<name>"; empty means text.
	Value string `yaml:"value,omitempty" json:"value,omitempty"`
	// All collects a value per match instead of the first match only.
	All bool `yaml:"all,omitempty" json:"all,omitempty"`
}

func (f Field) CSS() selector.CSS {
	return selector.Tag(f.Tag,
		selector.Raw(f.Raw),
		selector.WithClass(f.Classes...),
		selector.WithID(f.ID),
		selector.WithAttrKey(f.AttrKeys...),
		func(c *selector.CSS) {
			c.Attrs = append(c.Attrs, f.Attrs...)
		},
	)
}

// kind splits Value into its kind and, for attr values, the attribute name.
func (f Field) kind() (string, string, error) {
	v := strings.TrimSpace(f.Value)
	switch {
	case v == "":
		return ValueText, "", nil
	case strings.HasPrefix(v, attrPrefix):
		name := strings.TrimSpace(strings.TrimPrefix(v, attrPrefix))
		if name == "" {
			return "", "", fmt.Errorf("%w: %q has no attribute name", ErrUnknownValue, v)
		}
		return attrPrefix, name, nil
	}

	switch v {
	case ValueText, ValueOwnText, ValueHTML, ValueOuterHTML, ValuePresent, ValueCount:
		return v, "", nil
	}
	return "", "", fmt.Errorf("%w: %q", ErrUnknownValue, v)
}

// Validate checks field names, value kinds and selector syntax.
func (r Recipe) Validate() error {
	if len(r.Fields) == 0 {
		return ErrEmptyRecipe
	}

	if r.Scope != "" {
		if _, err := cascadia.Compile(r.Scope); err != nil {
			return fmt.Errorf("scope %q: %w", r.Scope, err)
		}
	}

	seen := make(map[string]bool, len(r.Fields))
	for i, f := range r.Fields {
		if f.Name == "" {
			return fmt.Errorf("field %d: missing name", i)
		}
		if seen[f.Name] {
			return fmt.Errorf("field %q: duplicate name", f.Name)
		}
		seen[f.Name] = true

		if _, _, err := f.kind(); err != nil {
			return fmt.Errorf("field %q: %w", f.Name, err)
		}

		css := f.CSS()
		if css.String() == "" {
			return fmt.Errorf("field %q: empty selector", f.Name)
		}
		if _, err := css.Compile(); err != nil {
			return fmt.Errorf("field %q: selector %q: %w", f.Name, css.String(), err)
		}
	}
	return nil
}

// ParseRecipe decodes a YAML recipe and validates it.
func ParseRecipe(r io.Reader) (Recipe, error) {
	var recipe Recipe
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&recipe); err != nil {
		return Recipe{}, fmt.Errorf("decoding recipe: %w", err)
	}
	if err := recipe.Validate(); err != nil {
		return Recipe{}, err
	}
	return recipe, nil
}

func LoadRecipe(path string) (Recipe, error) {
	f, err := os.Open(path)
	if err != nil {
		return Recipe{}, fmt.Errorf("opening recipe: %w", err)
	}
	defer f.Close()

	return ParseRecipe(f)
}
