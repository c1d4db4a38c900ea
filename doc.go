// Package reqschema validates request parameters against declarative schemas
// and merges them into a single per-request namespace.
//
// Up to six independent parameter groups are supported per route: header,
// path, query, form, body (mutually exclusive with form), and a catch-all
// "all" group that validates a combined view of every source. Each group is
// extracted from the request, validated through the schema package, and
// merged into an ordered Args object with a fixed precedence: header < path <
// query < form/body < all, later groups overwriting earlier ones. The merged
// object is stored on the request context under the params key and handed to
// the route handler.
//
// Basic usage with chi:
//
//	searchSchemas := reqschema.Must(
//		reqschema.Query(schema.New(
//			schema.String("q", schema.NotBlank()).Required(),
//			schema.Int("page", schema.Min(1)).Default(1),
//		)),
//	)
//
//	resolver := reqschema.NewResolver(reqschema.WithLogger(log))
//
//	r := chi.NewRouter()
//	r.With(resolver.Middleware(searchSchemas)).Get("/search", func(w http.ResponseWriter, r *http.Request) {
//		params := reqschema.ParamsFromContext(r.Context())
//		q := params.GetString("q")
//		page := params.GetInt("page")
//		// ...
//	})
//
// # Error policies
//
// A validation failure surfaces according to the descriptor's policy, chosen
// once at registration time:
//
//   - default: log "<field> <message>" for the first failure and respond with
//     400 and the same message
//   - Propagate: return the raw schema.ValidationErrors to the caller
//   - FailWith(e): respond with e's status code and the first-failure message
//   - OnError(fn): delegate; a nil return suppresses the failure
//
// Configuration mistakes — both form and body set, a nil schema, conflicting
// policies — fail loudly from New (or panic from Must) at registration time,
// wrapped in ErrInternalServerError.
//
// The package is router-agnostic: path parameters come from a pluggable
// extractor, with chi supported out of the box via ChiPathParams.
package reqschema
