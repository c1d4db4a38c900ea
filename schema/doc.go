// Package schema declares the validation contract consumed by the request
// pipeline and ships a small rule-driven engine implementing it.
//
// A Schema turns a mapping of raw request values (strings from query, form,
// header, and path sources; JSON-decoded values from bodies) into a validated
// Result, or fails with ValidationErrors listing every offending field.
//
// # Declaring schemas
//
// Object schemas are assembled from typed field declarations:
//
//	search := schema.New(
//		schema.String("q", schema.NotBlank()).Required(),
//		schema.Int("page", schema.Min(1)).Default(1),
//		schema.Strings("tags"),
//	)
//
// Each field coerces its raw value to the declared kind (a one-element string
// slice collapses to the scalar kinds, a lone string promotes to Strings),
// then runs its rules. Missing required fields fail with "field required";
// missing optional fields either take their declared default or stay absent.
//
// # Results and presence
//
// Result exports validated values in declaration order and tracks which
// fields were explicitly provided versus defaulted:
//
//	res, err := search.Parse(map[string]any{"q": "gophers"})
//	res.Explicit("q")    // true
//	res.Explicit("page") // false, filled from the default
//
// Presence feeds the merge precedence of the parent package: an explicit
// value from one source is never clobbered by another source's default.
//
// # Custom engines
//
// Anything implementing Schema plugs into the pipeline; Object is just the
// in-house engine. Adapters over other validation libraries only need to
// return ValidationErrors for rule failures so error translation keeps
// working.
package schema
