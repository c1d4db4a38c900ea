package schema

import (
	"fmt"
	"math"
	"strconv"
)

// Schema constructs a validated object from a mapping of raw request values.
// Raw values are strings or []string for header/path/query/form sources and
// arbitrary JSON-decoded values for body sources; implementations coerce and
// validate them, failing with ValidationErrors that enumerate every offending
// field.
type Schema interface {
	Parse(raw map[string]any) (Result, error)
}

// Result exports the validated fields of a single Parse call as an ordered
// mapping, together with the set of fields that were explicitly provided in
// the raw input (as opposed to filled in from declared defaults).
type Result struct {
	fields   []string
	values   map[string]any
	explicit map[string]bool
}

// Fields returns the validated field names in declaration order.
func (r Result) Fields() []string {
	return r.fields
}

// Value returns a validated value and whether the field is present.
func (r Result) Value(name string) (any, bool) {
	v, ok := r.values[name]
	return v, ok
}

// Explicit reports whether the field value came from the raw input rather
// than from a declared default.
func (r Result) Explicit(name string) bool {
	return r.explicit[name]
}

// Kind identifies the coercion target of a field.
type Kind int

const (
	KindString Kind = iota
	KindInt
	KindFloat
	KindBool
	KindStrings
	KindAny
)

// Field declares one named, typed slot of an Object schema together with its
// requiredness, default, and validation rules. Fields are value types; the
// chained modifiers return copies, so declarations can be shared.
type Field struct {
	name       string
	kind       Kind
	required   bool
	def        any
	hasDefault bool
	rules      []Rule
}

// String declares a string field.
func String(name string, rules ...Rule) Field {
	return Field{name: name, kind: KindString, rules: rules}
}

// Int declares an integer field.
func Int(name string, rules ...Rule) Field {
	return Field{name: name, kind: KindInt, rules: rules}
}

// Float declares a floating point field.
func Float(name string, rules ...Rule) Field {
	return Field{name: name, kind: KindFloat, rules: rules}
}

// Bool declares a boolean field.
func Bool(name string, rules ...Rule) Field {
	return Field{name: name, kind: KindBool, rules: rules}
}

// Strings declares a multi-valued string field. A single raw value is
// promoted to a one-element list.
func Strings(name string, rules ...Rule) Field {
	return Field{name: name, kind: KindStrings, rules: rules}
}

// Any declares a field that accepts the raw value untouched. Only rules run
// against it; no coercion is applied.
func Any(name string, rules ...Rule) Field {
	return Field{name: name, kind: KindAny, rules: rules}
}

// Required marks the field as mandatory; a missing value fails validation.
func (f Field) Required() Field {
	f.required = true
	return f
}

// Default supplies a value used when the field is absent from the raw input.
// Defaulted values are not marked as explicitly provided.
func (f Field) Default(v any) Field {
	f.def = v
	f.hasDefault = true
	return f
}

// Object is a Schema assembled from field declarations.
type Object struct {
	fields []Field
}

// New assembles an Object schema. Duplicate field names indicate a
// programming mistake at registration time, so New panics on them rather
// than deferring the failure to request handling.
func New(fields ...Field) *Object {
	seen := make(map[string]bool, len(fields))
	for _, f := range fields {
		if f.name == "" {
			panic("schema: field name cannot be empty")
		}
		if seen[f.name] {
			panic(fmt.Sprintf("schema: duplicate field %q", f.name))
		}
		seen[f.name] = true
	}
	return &Object{fields: fields}
}

// Parse coerces and validates the raw mapping against every declared field.
// All failures are collected; the returned error is ValidationErrors when at
// least one field fails.
func (o *Object) Parse(raw map[string]any) (Result, error) {
	res := Result{
		values:   make(map[string]any, len(o.fields)),
		explicit: make(map[string]bool, len(o.fields)),
	}

	var errs ValidationErrors
	for _, f := range o.fields {
		rv, ok := raw[f.name]
		if !ok {
			if f.required {
				errs.Add(ValidationError{Field: f.name, Message: "field required"})
				continue
			}
			if f.hasDefault {
				res.fields = append(res.fields, f.name)
				res.values[f.name] = f.def
			}
			continue
		}

		v, err := coerce(f.kind, rv)
		if err != nil {
			errs.Add(ValidationError{Field: f.name, Message: err.Error()})
			continue
		}

		failed := false
		for _, rule := range f.rules {
			if verr := rule(f.name, v); verr != nil {
				errs.Add(*verr)
				failed = true
			}
		}
		if failed {
			continue
		}

		res.fields = append(res.fields, f.name)
		res.values[f.name] = v
		res.explicit[f.name] = true
	}

	if !errs.IsEmpty() {
		return Result{}, errs
	}
	return res, nil
}

// coerce converts a raw value into the field's kind. Raw values from query,
// form, header, and path sources arrive as strings (or []string for repeated
// keys); body values arrive as whatever encoding/json decoded.
func coerce(kind Kind, raw any) (any, error) {
	if s, ok := raw.([]string); ok && kind != KindStrings && kind != KindAny {
		if len(s) != 1 {
			return nil, fmt.Errorf("expected a single value, got %d", len(s))
		}
		raw = s[0]
	}

	switch kind {
	case KindString:
		switch v := raw.(type) {
		case string:
			return v, nil
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64), nil
		case int:
			return strconv.Itoa(v), nil
		case bool:
			return strconv.FormatBool(v), nil
		}
		return nil, fmt.Errorf("must be a string")

	case KindInt:
		switch v := raw.(type) {
		case string:
			n, err := strconv.Atoi(v)
			if err != nil {
				return nil, fmt.Errorf("must be an integer")
			}
			return n, nil
		case float64:
			if v != math.Trunc(v) {
				return nil, fmt.Errorf("must be an integer")
			}
			return int(v), nil
		case int:
			return v, nil
		}
		return nil, fmt.Errorf("must be an integer")

	case KindFloat:
		switch v := raw.(type) {
		case string:
			n, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return nil, fmt.Errorf("must be a number")
			}
			return n, nil
		case float64:
			return v, nil
		case int:
			return float64(v), nil
		}
		return nil, fmt.Errorf("must be a number")

	case KindBool:
		switch v := raw.(type) {
		case string:
			b, err := strconv.ParseBool(v)
			if err != nil {
				return nil, fmt.Errorf("must be a boolean")
			}
			return b, nil
		case bool:
			return v, nil
		}
		return nil, fmt.Errorf("must be a boolean")

	case KindStrings:
		switch v := raw.(type) {
		case []string:
			return v, nil
		case string:
			return []string{v}, nil
		case []any:
			out := make([]string, 0, len(v))
			for _, item := range v {
				s, ok := item.(string)
				if !ok {
					return nil, fmt.Errorf("must be a list of strings")
				}
				out = append(out, s)
			}
			return out, nil
		}
		return nil, fmt.Errorf("must be a list of strings")

	case KindAny:
		return raw, nil
	}

	return nil, fmt.Errorf("unsupported field kind %d", kind)
}
