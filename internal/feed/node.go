// Package feed reads loosely-typed upstream JSON and turns it into the
// service's typed domain values. All knowledge of the upstream shape lives here.
package feed

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// Node wraps a decoded JSON value. Every accessor tolerates missing or
// mistyped structure and returns the zero Node instead of failing.
type Node struct {
	v any
}

// Wrap adopts an already-decoded value.
func Wrap(v any) Node {
	return Node{v: v}
}

// Parse decodes JSON into a Node, preserving numbers as json.Number.
func Parse(data []byte) (Node, error) {
	return Decode(bytes.NewReader(data))
}

// Decode reads a single JSON document.
func Decode(r io.Reader) (Node, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return Node{}, fmt.Errorf("decode feed: %w", err)
	}
	return Node{v: v}, nil
}

// Raw returns the underlying value.
func (n Node) Raw() any {
	return n.v
}

// Missing reports whether the node holds nothing (absent or JSON null).
func (n Node) Missing() bool {
	return n.v == nil
}

// Get walks object keys in order.
func (n Node) Get(path ...string) Node {
	cur := n.v
	for _, key := range path {
		obj, ok := cur.(map[string]any)
		if !ok {
			return Node{}
		}
		cur = obj[key]
	}
	return Node{v: cur}
}

// Index returns the i-th array element.
func (n Node) Index(i int) Node {
	arr, ok := n.v.([]any)
	if !ok || i < 0 || i >= len(arr) {
		return Node{}
	}
	return Node{v: arr[i]}
}

// First is shorthand for Index(0).
func (n Node) First() Node {
	return n.Index(0)
}

// Items returns array elements, or nil for non-arrays.
func (n Node) Items() []Node {
	arr, ok := n.v.([]any)
	if !ok {
		return nil
	}
	out := make([]Node, len(arr))
	for i, v := range arr {
		out[i] = Node{v: v}
	}
	return out
}

// Object returns the node as a map when it is a JSON object.
func (n Node) Object() (map[string]any, bool) {
	obj, ok := n.v.(map[string]any)
	return obj, ok
}

// Find returns the first array element for which match is true.
func (n Node) Find(match func(Node) bool) Node {
	for _, item := range n.Items() {
		if match(item) {
			return item
		}
	}
	return Node{}
}

// AsString returns the value when it is a JSON string. Empty strings count.
func (n Node) AsString() (string, bool) {
	s, ok := n.v.(string)
	return s, ok
}

// Text renders strings and numbers; identifiers arrive as either.
func (n Node) Text() (string, bool) {
	switch v := n.v.(type) {
	case string:
		return v, true
	case json.Number:
		return v.String(), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	default:
		return "", false
	}
}

// Int coerces a number or a string with a leading integer. Strings parse
// like "82", " 7 ", "3-1" (prefix); anything without leading digits fails.
func (n Node) Int() (int, bool) {
	switch v := n.v.(type) {
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return int(i), true
		}
		f, err := v.Float64()
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return int(f), true
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, false
		}
		return int(v), true
	case string:
		return leadingInt(v)
	default:
		return 0, false
	}
}

func leadingInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digitsStart := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digitsStart {
		return 0, false
	}
	i, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return i, true
}

// FirstString returns the first candidate holding a JSON string.
func FirstString(candidates ...Node) (string, bool) {
	for _, c := range candidates {
		if s, ok := c.AsString(); ok {
			return s, true
		}
	}
	return "", false
}

// FirstNonEmpty returns the first candidate holding a non-blank string or number.
func FirstNonEmpty(candidates ...Node) (string, bool) {
	for _, c := range candidates {
		if s, ok := c.Text(); ok && strings.TrimSpace(s) != "" {
			return s, true
		}
	}
	return "", false
}

// StringOr returns the first JSON string among candidates, else fallback.
func StringOr(fallback string, candidates ...Node) string {
	if s, ok := FirstString(candidates...); ok {
		return s
	}
	return fallback
}
