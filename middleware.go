package reqschema

import (
	"errors"
	"net/http"

	"github.com/dmitrymomot/reqschema/schema"
)

// Middleware validates every request against the descriptor before calling
// the next handler. On success the merged parameters are stored on the
// request context under the params key; on failure the translated error is
// written and the chain stops.
//
//	r := chi.NewRouter()
//	r.With(resolver.Middleware(searchSchemas)).Get("/search", searchHandler)
func (rs *Resolver) Middleware(s *Schemas) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			args, err := rs.Validate(r, s)
			if err != nil {
				WriteError(w, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithParams(r.Context(), args)))
		})
	}
}

// Handle wraps a parameter-aware handler function, validating the request
// and passing the merged parameters directly. The parameters are also stored
// on the request context for helpers further down the call stack.
func (rs *Resolver) Handle(s *Schemas, fn func(w http.ResponseWriter, r *http.Request, args *Args)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		args, err := rs.Validate(r, s)
		if err != nil {
			WriteError(w, err)
			return
		}
		fn(w, r.WithContext(WithParams(r.Context(), args)), args)
	}
}

// WriteError writes a pipeline error as a plain-text HTTP response: an
// HTTPError uses its own status code and message, raw validation errors
// become 400 with the joined field messages, anything else is a 500.
func WriteError(w http.ResponseWriter, err error) {
	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		http.Error(w, httpErr.Message, httpErr.Code)
		return
	}

	var verr schema.ValidationErrors
	if errors.As(err, &verr) {
		http.Error(w, verr.Error(), http.StatusBadRequest)
		return
	}

	http.Error(w, ErrInternalServerError.Message, http.StatusInternalServerError)
}
