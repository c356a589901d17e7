package model

import (
	"bytes"
	"math"
	"sort"
	"strconv"

	"github.com/goccy/go-json"
)

// Node is one raw, untyped JSON object as returned by any API generation.
// Numbers are kept as json.Number so that 64-bit ids survive decoding.
type Node map[string]any

// DecodeNode parses a JSON object
func DecodeNode(data []byte) (Node, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var n Node
	if err := dec.Decode(&n); err != nil {
		return nil, err
	}
	return n, nil
}

// Lookup walks path through nested objects (string keys) and arrays (int
// indices). It returns nil when any step is missing or of the wrong shape.
func (n Node) Lookup(path ...any) any {
	var cur any = map[string]any(n)
	for _, step := range path {
		switch s := step.(type) {
		case string:
			m, ok := asMap(cur)
			if !ok {
				return nil
			}
			cur, ok = m[s]
			if !ok {
				return nil
			}
		case int:
			list, ok := cur.([]any)
			if !ok || s < 0 || s >= len(list) {
				return nil
			}
			cur = list[s]
		default:
			return nil
		}
	}
	return cur
}

// Node returns the object at path, or nil
func (n Node) Node(path ...any) Node {
	m, ok := asMap(n.Lookup(path...))
	if !ok {
		return nil
	}
	return Node(m)
}

// List returns the array at path, or nil
func (n Node) List(path ...any) []any {
	list, _ := n.Lookup(path...).([]any)
	return list
}

// String returns the value at path rendered as a string
func (n Node) String(path ...any) string {
	return AsString(n.Lookup(path...))
}

// Int returns the value at path as an integer
func (n Node) Int(path ...any) int64 {
	return AsInt(n.Lookup(path...))
}

// Bool returns the value at path as a boolean
func (n Node) Bool(path ...any) bool {
	return AsBool(n.Lookup(path...))
}

// Has reports whether path resolves to a non-null value
func (n Node) Has(path ...any) bool {
	return n.Lookup(path...) != nil
}

// Nodes returns every object in the array at path
func (n Node) Nodes(path ...any) []Node {
	list := n.List(path...)
	out := make([]Node, 0, len(list))
	for _, item := range list {
		if m, ok := asMap(item); ok {
			out = append(out, Node(m))
		}
	}
	return out
}

func (n Node) sortedKeys() []string {
	keys := make([]string, 0, len(n))
	for k := range n {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case Node:
		return m, true
	default:
		return nil, false
	}
}

// AsNode converts a raw value to a Node when it is an object
func AsNode(v any) Node {
	m, ok := asMap(v)
	if !ok {
		return nil
	}
	return Node(m)
}

// AsString renders scalars as strings. Objects, arrays and null yield "".
func AsString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	case float64:
		if t == math.Trunc(t) && math.Abs(t) < 1<<53 {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}

// AsInt converts numbers and numeric strings. Anything else yields 0.
func AsInt(v any) int64 {
	switch t := v.(type) {
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i
		}
		if f, err := t.Float64(); err == nil {
			return int64(f)
		}
	case string:
		if i, err := strconv.ParseInt(t, 10, 64); err == nil {
			return i
		}
		if f, err := strconv.ParseFloat(t, 64); err == nil {
			return int64(f)
		}
	case float64:
		return int64(t)
	case int:
		return int64(t)
	case int64:
		return t
	case bool:
		if t {
			return 1
		}
	}
	return 0
}

// AsFloat converts numbers and numeric strings
func AsFloat(v any) float64 {
	switch t := v.(type) {
	case json.Number:
		f, _ := t.Float64()
		return f
	case string:
		f, _ := strconv.ParseFloat(t, 64)
		return f
	case float64:
		return t
	case int:
		return float64(t)
	case int64:
		return float64(t)
	}
	return 0
}

// AsBool accepts booleans, non-zero numbers and "true"/"1"
func AsBool(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case json.Number:
		return t.String() != "0"
	case string:
		b, _ := strconv.ParseBool(t)
		return b
	case float64:
		return t != 0
	}
	return false
}
