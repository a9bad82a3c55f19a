// Package extract runs declarative recipes against parsed documents.
package extract

import (
	"strconv"

	"github.com/rs/zerolog"

	"html-dsl/internal/dom"
	"html-dsl/internal/logger"
	"html-dsl/internal/models"
	"html-dsl/internal/selector"
)

type Extractor struct {
	log zerolog.Logger
}

func NewExtractor() *Extractor {
	return &Extractor{log: logger.Component("extractor")}
}

// Extract evaluates every field of recipe against doc. Fields that match
// nothing are reported as not present; they are not errors.
func (e *Extractor) Extract(doc *dom.Doc, recipe Recipe) (models.Result, error) {
	if err := recipe.Validate(); err != nil {
		return models.Result{}, err
	}

	var scope dom.Scope = doc
	if recipe.Scope != "" {
		scope = doc.FindAll(recipe.Scope)
	}

	result := models.Result{
		Recipe: recipe.Name,
		Fields: make([]models.Field, 0, len(recipe.Fields)),
	}
	for _, f := range recipe.Fields {
		field := selector.In(scope, f.CSS(), func(es *dom.Elements) models.Field {
			return fieldValue(f, es)
		})
		e.log.Debug().
			Str("recipe", recipe.Name).
			Str("field", field.Name).
			Str("selector", field.Selector).
			Int("count", field.Count).
			Msg("Extracted field")
		result.Fields = append(result.Fields, field)
	}

	return result, nil
}

func fieldValue(f Field, es *dom.Elements) models.Field {
	field := models.Field{
		Name:     f.Name,
		Selector: es.Selector(),
		Present:  es.IsPresent(),
		Count:    es.Len(),
		Values:   []string{},
	}

	// Validate has already rejected unknown kinds.
	kind, attr, _ := f.kind()
	switch kind {
	case ValuePresent:
		field.Values = append(field.Values, strconv.FormatBool(field.Present))
		return field
	case ValueCount:
		field.Values = append(field.Values, strconv.Itoa(field.Count))
		return field
	}

	elements := es.All()
	if !f.All && len(elements) > 1 {
		elements = elements[:1]
	}
	for _, el := range elements {
		if kind == attrPrefix && !el.HasAttribute(attr) {
			continue
		}
		field.Values = append(field.Values, elementValue(el, kind, attr))
	}
	return field
}

// Values renders value for every element of es, using the same kinds as
// recipe fields. present and count produce a single value for the whole
// collection.
func Values(es *dom.Elements, value string) ([]string, error) {
	f := Field{Value: value, All: true}
	if _, _, err := f.kind(); err != nil {
		return nil, err
	}
	return fieldValue(f, es).Values, nil
}

func elementValue(el *dom.Element, kind, attr string) string {
	switch kind {
	case ValueOwnText:
		return el.OwnText()
	case ValueHTML:
		return el.HTML()
	case ValueOuterHTML:
		return el.OuterHTML()
	case attrPrefix:
		return el.Attribute(attr)
	default:
		return el.Text()
	}
}

// Matches converts a selection into its serialisable form.
func Matches(es *dom.Elements) []models.Match {
	matches := make([]models.Match, 0, es.Len())
	for i, el := range es.All() {
		matches = append(matches, NewMatch(i, el))
	}
	return matches
}

func NewMatch(index int, el *dom.Element) models.Match {
	attrs := el.Attributes()
	m := models.Match{
		Index:      index,
		Tag:        el.TagName(),
		Path:       el.Path(),
		Text:       el.Text(),
		OwnText:    el.OwnText(),
		HTML:       el.HTML(),
		OuterHTML:  el.OuterHTML(),
		Attributes: make([]models.Attribute, 0, len(attrs)),
	}
	for _, a := range attrs {
		m.Attributes = append(m.Attributes, models.Attribute{Key: a.Key, Value: a.Val})
	}
	return m
}
