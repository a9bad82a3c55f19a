package selector

import "html-dsl/internal/dom"

// Web component tag names.
const (
	TagContent  = "content"
	TagShadow   = "shadow"
	TagSlot     = "slot"
	TagTemplate = "template"
)

// Content selects <content> elements in scope and returns fn's result.
func Content[T any](scope dom.Scope, fn func(*dom.Elements) T, opts ...Option) T {
	return In(scope, Tag(TagContent, opts...), fn)
}

// Shadow selects <shadow> elements in scope and returns fn's result.
func Shadow[T any](scope dom.Scope, fn func(*dom.Elements) T, opts ...Option) T {
	return In(scope, Tag(TagShadow, opts...), fn)
}

// Slot selects <slot> elements in scope and returns fn's result.
func Slot[T any](scope dom.Scope, fn func(*dom.Elements) T, opts ...Option) T {
	return In(scope, Tag(TagSlot, opts...), fn)
}

// Template selects <template> elements in scope and returns fn's result.
func Template[T any](scope dom.Scope, fn func(*dom.Elements) T, opts ...Option) T {
	return In(scope, Tag(TagTemplate, opts...), fn)
}

func ContentSelector(opts ...Option) string {
	return Tag(TagContent, opts...).String()
}

func ShadowSelector(opts ...Option) string {
	return Tag(TagShadow, opts...).String()
}

func SlotSelector(opts ...Option) string {
	return Tag(TagSlot, opts...).String()
}

func TemplateSelector(opts ...Option) string {
	return Tag(TagTemplate, opts...).String()
}
