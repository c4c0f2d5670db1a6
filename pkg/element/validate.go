package element

import (
	"strings"
	"unicode"

	"github.com/gofhir/codes/pkg/issue"
	"github.com/gofhir/codes/pool"
)

// Validate appends every structural problem of e to result, using path
// as the expression of e. It does not stop at the first problem.
//
// Checked: id is non-empty and whitespace free, a primitive value matches
// its kind's pattern, every extension is valid (url, ext-1, value type,
// recursively), and ele-1.
func Validate(e Element, path string, result *issue.Result) {
	if e == nil {
		result.AddWithID(issue.DiagElementNil, nil, path)
		return
	}

	if id, ok := e.ID(); ok {
		validateID(id, path, result)
	}

	if p, ok := e.(Primitive); ok {
		if v, has := p.Value(); has && !e.Kind().Match(v) {
			result.AddWithID(issue.DiagValueInvalidFormat, map[string]any{
				"value": v,
				"type":  e.Kind().Name,
			}, path)
		}
	}

	if ext, ok := e.(*Extension); ok {
		validateExtension(ext, path, result)
	}

	ValidateExtensions(e.Extensions(), path, result)

	if !Ele1(e) {
		result.AddWithID(issue.DiagElementEle1, nil, path)
	}
}

// ValidateExtensions validates each extension of a list rooted at path.
func ValidateExtensions(list []*Extension, path string, result *issue.Result) {
	for i, ext := range list {
		p := pool.Indexed(path, "extension", i)
		if ext == nil {
			result.AddWithID(issue.DiagElementNil, nil, p)
			continue
		}
		Validate(ext, p, result)
	}
}

// Ele1 reports whether e satisfies ele-1: it has a value, it has
// children beyond its id, or its kind is exempt.
func Ele1(e Element) bool {
	if e == nil {
		return true
	}
	return e.Kind().EmptyAllowed || e.HasValue() || e.HasChildren()
}

// ContainsWhitespace reports whether s contains any Unicode whitespace.
func ContainsWhitespace(s string) bool {
	return strings.IndexFunc(s, unicode.IsSpace) >= 0
}

func validateID(id, path string, result *issue.Result) {
	idPath := pool.Child(path, "id")
	if id == "" {
		result.AddWithID(issue.DiagElementEmptyID, nil, idPath)
		return
	}
	if ContainsWhitespace(id) {
		result.AddWithID(issue.DiagElementIDWhitespace, map[string]any{"id": id}, idPath)
	}
}

func validateExtension(ext *Extension, path string, result *issue.Result) {
	switch {
	case ext.url == "":
		result.AddWithID(issue.DiagExtensionNoURL, nil, pool.Child(path, "url"))
	case ContainsWhitespace(ext.url):
		result.AddWithID(issue.DiagExtensionURLWhitespace, map[string]any{"url": ext.url}, pool.Child(path, "url"))
	}

	hasNested := ext.ExtensionCount() > 0
	hasValue := ext.value != nil
	if hasNested == hasValue {
		result.AddWithID(issue.DiagExtensionExt1, map[string]any{"url": ext.url}, path)
	}

	if !hasValue {
		return
	}
	kind := ext.value.Kind()
	if !kind.Primitive {
		result.AddWithID(issue.DiagExtensionInvalidValueType, map[string]any{
			"url":  ext.url,
			"type": kind.Name,
		}, path)
		return
	}
	Validate(ext.value, pool.Child(path, ValueKey(kind)), result)
}

// ValueKey returns the JSON property name of value[x] for a kind, e.g. "valueCode".
func ValueKey(k Kind) string {
	if k.Name == "" {
		return "value"
	}
	return "value" + strings.ToUpper(k.Name[:1]) + k.Name[1:]
}
