package reqschema

import "context"

// contextKey provides collision-free context keys.
type contextKey struct{ name string }

// String returns a representation of the key for debugging.
func (k *contextKey) String() string {
	return "reqschema context value " + k.name
}

// paramsKey is the fixed per-request storage slot for the merged parameters.
var paramsKey = &contextKey{"params"}

// WithParams stores the merged parameters on the context under the params key.
func WithParams(ctx context.Context, args *Args) context.Context {
	return context.WithValue(ctx, paramsKey, args)
}

// ParamsFromContext retrieves the merged parameters stored by the middleware,
// or nil when the request did not pass through validation.
func ParamsFromContext(ctx context.Context) *Args {
	if ctx == nil {
		return nil
	}
	args, _ := ctx.Value(paramsKey).(*Args)
	return args
}
