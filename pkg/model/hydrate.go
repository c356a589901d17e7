package model

// recognizer maps raw keys onto a typed entity. A recognizer matches either
// a fixed key set or a predicate and is applied once per matching key.
type recognizer[T any] struct {
	name  string
	keys  []string
	match func(key string) bool
	apply func(e *T, key string, value any, raw Node)
}

func (r recognizer[T]) matches(key string) bool {
	if r.match != nil {
		return r.match(key)
	}
	for _, k := range r.keys {
		if k == key {
			return true
		}
	}
	return false
}

// hydrate runs table in priority order against every key of raw, keys
// visited in sorted order. Keys in skip are never offered to any recognizer.
// Null values are ignored.
func hydrate[T any](e *T, raw Node, table []recognizer[T], skip map[string]bool) {
	keys := raw.sortedKeys()
	for _, r := range table {
		for _, key := range keys {
			if skip[key] || !r.matches(key) {
				continue
			}
			value := raw[key]
			if value == nil {
				continue
			}
			r.apply(e, key, value, raw)
		}
	}
}
