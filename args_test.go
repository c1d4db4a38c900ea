package reqschema_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/reqschema"
)

func TestArgs(t *testing.T) {
	t.Parallel()

	t.Run("get and lookup", func(t *testing.T) {
		t.Parallel()

		args := reqschema.NewArgs()
		args.Set("name", "alice")

		assert.Equal(t, "alice", args.Get("name"))
		assert.Nil(t, args.Get("missing"))

		v, ok := args.Lookup("name")
		assert.True(t, ok)
		assert.Equal(t, "alice", v)

		_, ok = args.Lookup("missing")
		assert.False(t, ok)
	})

	t.Run("typed accessors alias the same store", func(t *testing.T) {
		t.Parallel()

		args := reqschema.NewArgs()
		args.Set("name", "alice")
		args.Set("age", 42)
		args.Set("score", 9.5)
		args.Set("active", true)
		args.Set("tags", []string{"a", "b"})

		assert.Equal(t, "alice", args.GetString("name"))
		assert.Equal(t, 42, args.GetInt("age"))
		assert.Equal(t, 9.5, args.GetFloat("score"))
		assert.True(t, args.GetBool("active"))
		assert.Equal(t, []string{"a", "b"}, args.GetStrings("tags"))

		// Absent keys yield zero values, never errors.
		assert.Empty(t, args.GetString("missing"))
		assert.Zero(t, args.GetInt("missing"))
		assert.Zero(t, args.GetFloat("missing"))
		assert.False(t, args.GetBool("missing"))
		assert.Nil(t, args.GetStrings("missing"))

		// Type mismatches read as zero values too.
		assert.Empty(t, args.GetString("age"))
	})

	t.Run("insertion order preserved", func(t *testing.T) {
		t.Parallel()

		args := reqschema.NewArgs()
		args.Set("c", 3)
		args.Set("a", 1)
		args.Set("b", 2)
		args.Set("a", 10) // overwrite keeps position

		assert.Equal(t, []string{"c", "a", "b"}, args.Keys())
		assert.Equal(t, 3, args.Len())
		assert.Equal(t, 10, args.Get("a"))
	})

	t.Run("delete removes value and position", func(t *testing.T) {
		t.Parallel()

		args := reqschema.NewArgs()
		args.Set("a", 1)
		args.Set("b", 2)
		args.Set("c", 3)

		args.Delete("b")
		assert.Equal(t, []string{"a", "c"}, args.Keys())
		assert.False(t, args.Has("b"))

		args.Delete("not-there")
		assert.Equal(t, 2, args.Len())
	})

	t.Run("explicit tracking", func(t *testing.T) {
		t.Parallel()

		args := reqschema.NewArgs()
		args.Set("q", "gophers")

		assert.True(t, args.Explicit("q"))
		assert.False(t, args.Explicit("missing"))
		assert.Equal(t, []string{"q"}, args.ExplicitFields())
	})

	t.Run("clone is deep and independent", func(t *testing.T) {
		t.Parallel()

		args := reqschema.NewArgs()
		args.Set("tags", []string{"a", "b"})
		args.Set("meta", map[string]any{"k": []any{"x"}})
		args.Set("n", 1)

		clone := args.Clone()
		assert.Equal(t, args.Keys(), clone.Keys())
		assert.Equal(t, args.Get("n"), clone.Get("n"))
		assert.True(t, clone.Explicit("tags"))

		// Mutating the clone's nested values leaves the original untouched.
		clone.GetStrings("tags")[0] = "mutated"
		clone.Get("meta").(map[string]any)["k"] = "changed"
		clone.Set("n", 99)

		assert.Equal(t, []string{"a", "b"}, args.GetStrings("tags"))
		assert.Equal(t, []any{"x"}, args.Get("meta").(map[string]any)["k"])
		assert.Equal(t, 1, args.Get("n"))
	})

	t.Run("marshals as ordered json object", func(t *testing.T) {
		t.Parallel()

		args := reqschema.NewArgs()
		args.Set("z", 1)
		args.Set("a", "two")
		args.Set("m", []string{"x"})

		data, err := json.Marshal(args)
		require.NoError(t, err)
		assert.Equal(t, `{"z":1,"a":"two","m":["x"]}`, string(data))
	})
}
