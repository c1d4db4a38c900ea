package reqschema

import (
	"bytes"
	"encoding/json"

	"github.com/dmitrymomot/reqschema/schema"
)

// Args holds the merged, validated request parameters as an ordered mapping.
// Values are reachable generically through Get/Lookup and through typed
// accessors aliasing the same backing store; reading an absent key yields the
// type's zero value (nil for Get), never an error.
//
// Args also tracks which fields were explicitly provided by the request as
// opposed to filled in from schema defaults. The merge pipeline relies on
// this: a later source's default never clobbers an earlier source's explicit
// value, while explicit values overwrite freely in merge order.
//
// An Args instance belongs to a single request and must not be shared across
// requests; Clone produces an independent copy when a handler needs to hold
// onto the data.
type Args struct {
	keys     []string
	values   map[string]any
	explicit map[string]bool
}

// NewArgs returns an empty Args.
func NewArgs() *Args {
	return &Args{
		values:   make(map[string]any),
		explicit: make(map[string]bool),
	}
}

// Get returns the value for name, or nil when absent.
func (a *Args) Get(name string) any {
	return a.values[name]
}

// Lookup returns the value for name and whether it is present, which
// distinguishes an absent key from a stored nil.
func (a *Args) Lookup(name string) (any, bool) {
	v, ok := a.values[name]
	return v, ok
}

// Set stores a value under name. New names append to the iteration order;
// existing names keep their position. Values set directly are recorded as
// explicitly provided.
func (a *Args) Set(name string, value any) {
	if _, ok := a.values[name]; !ok {
		a.keys = append(a.keys, name)
	}
	a.values[name] = value
	a.explicit[name] = true
}

// Delete removes a value and its position in the iteration order.
func (a *Args) Delete(name string) {
	if _, ok := a.values[name]; !ok {
		return
	}
	delete(a.values, name)
	delete(a.explicit, name)
	for i, k := range a.keys {
		if k == name {
			a.keys = append(a.keys[:i], a.keys[i+1:]...)
			break
		}
	}
}

// Has reports whether name is present.
func (a *Args) Has(name string) bool {
	_, ok := a.values[name]
	return ok
}

// Keys returns the parameter names in insertion order.
func (a *Args) Keys() []string {
	out := make([]string, len(a.keys))
	copy(out, a.keys)
	return out
}

// Len returns the number of stored parameters.
func (a *Args) Len() int {
	return len(a.values)
}

// GetString returns the string value for name, or "" when absent or not a string.
func (a *Args) GetString(name string) string {
	v, _ := a.values[name].(string)
	return v
}

// GetInt returns the int value for name, or 0 when absent or not an int.
func (a *Args) GetInt(name string) int {
	v, _ := a.values[name].(int)
	return v
}

// GetFloat returns the float64 value for name, or 0 when absent or not a float64.
func (a *Args) GetFloat(name string) float64 {
	v, _ := a.values[name].(float64)
	return v
}

// GetBool returns the bool value for name, or false when absent or not a bool.
func (a *Args) GetBool(name string) bool {
	v, _ := a.values[name].(bool)
	return v
}

// GetStrings returns the []string value for name, or nil when absent or not a []string.
func (a *Args) GetStrings(name string) []string {
	v, _ := a.values[name].([]string)
	return v
}

// Explicit reports whether the value for name came from explicit request
// input rather than a schema default.
func (a *Args) Explicit(name string) bool {
	return a.explicit[name]
}

// ExplicitFields returns the explicitly provided parameter names in insertion order.
func (a *Args) ExplicitFields() []string {
	var out []string
	for _, k := range a.keys {
		if a.explicit[k] {
			out = append(out, k)
		}
	}
	return out
}

// Clone returns a deep copy with the same ordering, values, and explicit set.
// The copy is independently mutable.
func (a *Args) Clone() *Args {
	c := &Args{
		keys:     make([]string, len(a.keys)),
		values:   make(map[string]any, len(a.values)),
		explicit: make(map[string]bool, len(a.explicit)),
	}
	copy(c.keys, a.keys)
	for k, v := range a.values {
		c.values[k] = deepCopyValue(v)
	}
	for k, v := range a.explicit {
		c.explicit[k] = v
	}
	return c
}

// MarshalJSON encodes the parameters as a JSON object in insertion order.
func (a *Args) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range a.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(a.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// merge folds one validated group into the mapping. Fields arrive in the
// group's declaration order. An already-present explicit value survives a
// later group's default; everything else is overwritten, later groups win.
func (a *Args) merge(res schema.Result) {
	for _, f := range res.Fields() {
		v, ok := res.Value(f)
		if !ok {
			continue
		}
		if _, present := a.values[f]; present && a.explicit[f] && !res.Explicit(f) {
			continue
		}
		if _, present := a.values[f]; !present {
			a.keys = append(a.keys, f)
		}
		a.values[f] = v
		if res.Explicit(f) {
			a.explicit[f] = true
		}
	}
}

// deepCopyValue copies the value shapes the pipeline produces: scalars,
// string slices, and JSON-decoded maps and slices.
func deepCopyValue(v any) any {
	switch t := v.(type) {
	case []string:
		out := make([]string, len(t))
		copy(out, t)
		return out
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = deepCopyValue(item)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, item := range t {
			out[k] = deepCopyValue(item)
		}
		return out
	default:
		return v
	}
}
