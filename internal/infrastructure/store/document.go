package store

import (
	"encoding/json"
	"reflect"
	"strconv"
	"time"
)

// Document is a schemaless record. Backends return numbers as whatever their
// driver decodes (int64, float64, json.Number), so readers go through the
// typed accessors below instead of asserting directly.
type Document map[string]any

// ID returns the document id.
func (d Document) ID() string {
	return d.String("id")
}

func (d Document) String(key string) string {
	switch v := d[key].(type) {
	case string:
		return v
	case []byte:
		return string(v)
	default:
		return ""
	}
}

func (d Document) Float(key string) float64 {
	return toFloat(d[key])
}

func (d Document) Int(key string) int {
	switch v := d[key].(type) {
	case int:
		return v
	case int32:
		return int(v)
	case int64:
		return int(v)
	default:
		return int(toFloat(v))
	}
}

// Time accepts time.Time values as well as RFC 3339 strings, which is how
// JSON-backed stores hand timestamps back.
func (d Document) Time(key string) time.Time {
	switch v := d[key].(type) {
	case time.Time:
		return v
	case string:
		t, err := time.Parse(time.RFC3339Nano, v)
		if err != nil {
			return time.Time{}
		}
		return t
	default:
		return time.Time{}
	}
}

// Slice returns a list value, or nil when the key is absent or not a list.
func (d Document) Slice(key string) []any {
	if v, ok := d[key].([]any); ok {
		return v
	}
	return nil
}

// Clone returns a deep copy so callers can never mutate stored state.
func (d Document) Clone() Document {
	if d == nil {
		return nil
	}
	out := make(Document, len(d))
	for k, v := range d {
		out[k] = cloneValue(v)
	}
	return out
}

// Matches reports whether every filter field equals the document's value.
func (d Document) Matches(filter Filter) bool {
	for k, want := range filter {
		got, ok := d[k]
		if !ok || !reflect.DeepEqual(got, want) {
			return false
		}
	}
	return true
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return map[string]any(Document(t).Clone())
	case Document:
		return t.Clone()
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = cloneValue(item)
		}
		return out
	default:
		return v
	}
}

func toFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	case json.Number:
		f, _ := n.Float64()
		return f
	case string:
		f, _ := strconv.ParseFloat(n, 64)
		return f
	default:
		return 0
	}
}
