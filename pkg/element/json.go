package element

// Property names used in FHIR JSON.
const (
	idKey        = "id"
	extensionKey = "extension"
	urlKey       = "url"
)

// extensionJSON renders an extension as a FHIR JSON object. Primitive
// values use the split form: "valueCode" for the value and "_valueCode"
// for its id and extensions.
func extensionJSON(e *Extension) map[string]any {
	obj := baseJSON(e.Base)
	if e.url != "" {
		obj[urlKey] = e.url
	}
	if e.value == nil {
		return obj
	}

	key := ValueKey(e.value.Kind())
	if p, ok := e.value.(Primitive); ok {
		if v, has := p.Value(); has {
			obj[key] = v
		}
		if shadow := shadowJSON(p); shadow != nil {
			obj["_"+key] = shadow
		}
		return obj
	}
	obj[key] = nil
	return obj
}

// PrimitiveJSON renders the id and extensions of a primitive, the object
// found under "_name" in FHIR JSON. It returns nil when there is nothing to render.
func PrimitiveJSON(p Element) map[string]any {
	return shadowJSON(p)
}

func shadowJSON(p Element) map[string]any {
	id, hasID := p.ID()
	exts := p.Extensions()
	if !hasID && len(exts) == 0 {
		return nil
	}
	obj := make(map[string]any, 2)
	if hasID {
		obj[idKey] = id
	}
	if len(exts) > 0 {
		obj[extensionKey] = extensionsJSON(exts)
	}
	return obj
}

func baseJSON(b Base) map[string]any {
	obj := make(map[string]any, 4)
	if id, ok := b.ID(); ok {
		obj[idKey] = id
	}
	if len(b.extension) > 0 {
		obj[extensionKey] = extensionsJSON(b.extension)
	}
	return obj
}

func extensionsJSON(list []*Extension) []any {
	out := make([]any, 0, len(list))
	for _, ext := range list {
		if ext == nil {
			out = append(out, nil)
			continue
		}
		out = append(out, extensionJSON(ext))
	}
	return out
}
