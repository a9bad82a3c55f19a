package dom

// Scope is anything a selector can be evaluated against: a Doc, an Element
// or an Elements collection.
type Scope interface {
	FindAll(selector string) *Elements
}

// Select evaluates selector within scope and hands the matches to fn.
// Zero matches are not an error; fn receives an absent collection.
func Select[T any](scope Scope, selector string, fn func(*Elements) T) T {
	return fn(scope.FindAll(selector))
}

// SelectFirst is Select for the first match only.
func SelectFirst[T any](scope Scope, selector string, fn func(*Element) T) T {
	return fn(scope.FindAll(selector).First())
}
