package reqschema_test

import (
	"bytes"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/reqschema"
	"github.com/dmitrymomot/reqschema/pkg/logger"
	"github.com/dmitrymomot/reqschema/schema"
)

func TestNew(t *testing.T) {
	t.Parallel()

	querySchema := schema.New(schema.String("q"))
	bodySchema := schema.New(schema.String("name"))
	formSchema := schema.New(schema.String("name"))

	t.Run("valid configuration", func(t *testing.T) {
		t.Parallel()

		s, err := reqschema.New(
			reqschema.Query(querySchema),
			reqschema.Body(bodySchema),
			reqschema.Propagate(),
		)
		require.NoError(t, err)
		assert.NotNil(t, s)
	})

	t.Run("form and body are mutually exclusive", func(t *testing.T) {
		t.Parallel()

		_, err := reqschema.New(
			reqschema.Form(formSchema),
			reqschema.Body(bodySchema),
		)
		require.Error(t, err)
		assert.ErrorIs(t, err, reqschema.ErrFormBodyConflict)

		var httpErr reqschema.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusInternalServerError, httpErr.Code)
	})

	t.Run("nil schema rejected", func(t *testing.T) {
		t.Parallel()

		_, err := reqschema.New(reqschema.Query(nil))
		require.Error(t, err)
		assert.ErrorIs(t, err, reqschema.ErrNilSchema)
		assert.Contains(t, err.Error(), "query")
	})

	t.Run("conflicting error policies rejected", func(t *testing.T) {
		t.Parallel()

		_, err := reqschema.New(
			reqschema.Query(querySchema),
			reqschema.Propagate(),
			reqschema.FailWith(reqschema.ErrUnprocessableEntity),
		)
		require.Error(t, err)
		assert.ErrorIs(t, err, reqschema.ErrErrorPolicyConflict)
	})

	t.Run("nil error handler rejected", func(t *testing.T) {
		t.Parallel()

		_, err := reqschema.New(
			reqschema.Query(querySchema),
			reqschema.OnError(nil),
		)
		require.Error(t, err)
		assert.ErrorIs(t, err, reqschema.ErrNilErrorHandler)
	})

	t.Run("configuration errors are logged", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.New(logger.WithOutput(&buf))

		_, err := reqschema.New(
			reqschema.Logger(log),
			reqschema.Form(formSchema),
			reqschema.Body(bodySchema),
		)
		require.Error(t, err)
		assert.Contains(t, buf.String(), "invalid schema group configuration")
		assert.Contains(t, buf.String(), "ERROR")
	})
}

func TestMust(t *testing.T) {
	t.Parallel()

	t.Run("returns descriptor on success", func(t *testing.T) {
		t.Parallel()

		assert.NotNil(t, reqschema.Must(reqschema.Query(schema.New(schema.String("q")))))
	})

	t.Run("panics on configuration error", func(t *testing.T) {
		t.Parallel()

		assert.Panics(t, func() {
			reqschema.Must(
				reqschema.Form(schema.New(schema.String("a"))),
				reqschema.Body(schema.New(schema.String("b"))),
			)
		})
	})
}
