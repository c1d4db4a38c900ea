package schema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/reqschema/schema"
)

func TestObjectParse(t *testing.T) {
	t.Parallel()

	t.Run("coerces string sources", func(t *testing.T) {
		t.Parallel()

		s := schema.New(
			schema.String("name"),
			schema.Int("age"),
			schema.Float("score"),
			schema.Bool("active"),
		)

		res, err := s.Parse(map[string]any{
			"name":   "alice",
			"age":    "42",
			"score":  "9.5",
			"active": "true",
		})
		require.NoError(t, err)

		name, ok := res.Value("name")
		require.True(t, ok)
		assert.Equal(t, "alice", name)

		age, _ := res.Value("age")
		assert.Equal(t, 42, age)

		score, _ := res.Value("score")
		assert.Equal(t, 9.5, score)

		active, _ := res.Value("active")
		assert.Equal(t, true, active)
	})

	t.Run("coerces json body values", func(t *testing.T) {
		t.Parallel()

		s := schema.New(
			schema.Int("count"),
			schema.Float("ratio"),
			schema.Bool("enabled"),
			schema.Strings("tags"),
		)

		res, err := s.Parse(map[string]any{
			"count":   float64(7),
			"ratio":   0.25,
			"enabled": true,
			"tags":    []any{"go", "web"},
		})
		require.NoError(t, err)

		count, _ := res.Value("count")
		assert.Equal(t, 7, count)
		ratio, _ := res.Value("ratio")
		assert.Equal(t, 0.25, ratio)
		enabled, _ := res.Value("enabled")
		assert.Equal(t, true, enabled)
		tags, _ := res.Value("tags")
		assert.Equal(t, []string{"go", "web"}, tags)
	})

	t.Run("collapses single element slices for scalar kinds", func(t *testing.T) {
		t.Parallel()

		s := schema.New(schema.Int("page"))

		res, err := s.Parse(map[string]any{"page": []string{"3"}})
		require.NoError(t, err)

		page, _ := res.Value("page")
		assert.Equal(t, 3, page)
	})

	t.Run("rejects multiple values for scalar kinds", func(t *testing.T) {
		t.Parallel()

		s := schema.New(schema.Int("page"))

		_, err := s.Parse(map[string]any{"page": []string{"3", "4"}})
		require.Error(t, err)

		ve := schema.Extract(err)
		require.Len(t, ve, 1)
		assert.Equal(t, "page", ve[0].Field)
	})

	t.Run("promotes single string to list", func(t *testing.T) {
		t.Parallel()

		s := schema.New(schema.Strings("tags"))

		res, err := s.Parse(map[string]any{"tags": "go"})
		require.NoError(t, err)

		tags, _ := res.Value("tags")
		assert.Equal(t, []string{"go"}, tags)
	})

	t.Run("missing required field", func(t *testing.T) {
		t.Parallel()

		s := schema.New(schema.String("name").Required())

		_, err := s.Parse(map[string]any{})
		require.Error(t, err)

		ve := schema.Extract(err)
		require.Len(t, ve, 1)
		assert.Equal(t, "name", ve[0].Field)
		assert.Equal(t, "field required", ve[0].Message)
	})

	t.Run("defaults fill absent fields without marking them explicit", func(t *testing.T) {
		t.Parallel()

		s := schema.New(
			schema.Int("page").Default(1),
			schema.String("sort").Default("asc"),
		)

		res, err := s.Parse(map[string]any{"page": "5"})
		require.NoError(t, err)

		page, _ := res.Value("page")
		assert.Equal(t, 5, page)
		assert.True(t, res.Explicit("page"))

		sort, _ := res.Value("sort")
		assert.Equal(t, "asc", sort)
		assert.False(t, res.Explicit("sort"))
	})

	t.Run("absent optional field without default stays absent", func(t *testing.T) {
		t.Parallel()

		s := schema.New(schema.String("note"))

		res, err := s.Parse(map[string]any{})
		require.NoError(t, err)

		_, ok := res.Value("note")
		assert.False(t, ok)
		assert.Empty(t, res.Fields())
	})

	t.Run("collects all failures", func(t *testing.T) {
		t.Parallel()

		s := schema.New(
			schema.Int("age").Required(),
			schema.String("email", schema.Email()).Required(),
		)

		_, err := s.Parse(map[string]any{
			"age":   "not a number",
			"email": "nope",
		})
		require.Error(t, err)

		ve := schema.Extract(err)
		require.Len(t, ve, 2)
		assert.Equal(t, []string{"age", "email"}, ve.Fields())
	})

	t.Run("fields reported in declaration order", func(t *testing.T) {
		t.Parallel()

		s := schema.New(
			schema.String("a"),
			schema.String("b"),
			schema.String("c"),
		)

		res, err := s.Parse(map[string]any{"c": "3", "a": "1", "b": "2"})
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b", "c"}, res.Fields())
	})

	t.Run("panics on duplicate field name", func(t *testing.T) {
		t.Parallel()

		assert.Panics(t, func() {
			schema.New(schema.String("x"), schema.Int("x"))
		})
	})

	t.Run("panics on empty field name", func(t *testing.T) {
		t.Parallel()

		assert.Panics(t, func() {
			schema.New(schema.String(""))
		})
	})

	t.Run("any field keeps raw value untouched", func(t *testing.T) {
		t.Parallel()

		s := schema.New(schema.Any("meta"))
		raw := map[string]any{"meta": map[string]any{"k": "v"}}

		res, err := s.Parse(raw)
		require.NoError(t, err)

		meta, _ := res.Value("meta")
		assert.Equal(t, map[string]any{"k": "v"}, meta)
	})
}

func TestValidationErrors(t *testing.T) {
	t.Parallel()

	t.Run("error message joins failures", func(t *testing.T) {
		t.Parallel()

		var ve schema.ValidationErrors
		ve.Add(schema.ValidationError{Field: "a", Message: "field required"})
		ve.Add(schema.ValidationError{Field: "b", Message: "must be an integer"})

		assert.Equal(t, "validation failed: a: field required; b: must be an integer", ve.Error())
	})

	t.Run("accessors", func(t *testing.T) {
		t.Parallel()

		ve := schema.ValidationErrors{
			{Field: "a", Message: "one"},
			{Field: "a", Message: "two"},
			{Field: "b", Message: "three"},
		}

		assert.True(t, ve.Has("a"))
		assert.False(t, ve.Has("c"))
		assert.Equal(t, []string{"one", "two"}, ve.Get("a"))
		assert.Equal(t, []string{"a", "b"}, ve.Fields())
		assert.Equal(t, schema.ValidationError{Field: "a", Message: "one"}, ve.First())
		assert.False(t, ve.IsEmpty())
	})

	t.Run("extract from wrapped error", func(t *testing.T) {
		t.Parallel()

		s := schema.New(schema.String("name").Required())
		_, err := s.Parse(map[string]any{})
		require.Error(t, err)

		assert.True(t, schema.IsValidationError(err))
		assert.NotNil(t, schema.Extract(err))
		assert.False(t, schema.IsValidationError(nil))
		assert.Nil(t, schema.Extract(nil))
	})
}
