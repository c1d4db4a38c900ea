package reqschema

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/reqschema/pkg/logger"
	"github.com/dmitrymomot/reqschema/schema"
)

// Schemas bundles the per-source schemas of one route together with its
// error policy. It is built once at route registration, is immutable
// afterwards, and is safe to share across concurrently handled requests.
type Schemas struct {
	header schema.Schema
	path   schema.Schema
	query  schema.Schema
	form   schema.Schema
	body   schema.Schema
	all    schema.Schema

	policy errorPolicy
	log    *slog.Logger
}

// Option configures a Schemas bundle. Options that detect a configuration
// mistake return an error; New surfaces it wrapped in ErrInternalServerError.
type Option func(*Schemas) error

func slot(name string, s schema.Schema, assign func(*Schemas)) Option {
	return func(d *Schemas) error {
		if s == nil {
			return fmt.Errorf("%w: %s", ErrNilSchema, name)
		}
		assign(d)
		return nil
	}
}

// Header validates the request headers against s.
func Header(s schema.Schema) Option {
	return slot("header", s, func(d *Schemas) { d.header = s })
}

// Path validates the route path parameters against s.
func Path(s schema.Schema) Option {
	return slot("path", s, func(d *Schemas) { d.path = s })
}

// Query validates the query string against s. Repeated keys stay lists,
// single-valued keys collapse to scalars before validation.
func Query(s schema.Schema) Option {
	return slot("query", s, func(d *Schemas) { d.query = s })
}

// Form validates submitted form fields against s, with the same multi-value
// collapse as Query. Mutually exclusive with Body.
func Form(s schema.Schema) Option {
	return slot("form", s, func(d *Schemas) { d.form = s })
}

// Body validates the JSON request body against s. Mutually exclusive with Form.
func Body(s schema.Schema) Option {
	return slot("body", s, func(d *Schemas) { d.body = s })
}

// All validates a combined mapping of every source against s. The mapping is
// built fresh per request with later sources overwriting earlier ones:
// headers, then path parameters, then query values, then the JSON body when
// it parses to an object, otherwise the form fields. The result merges last
// and can overwrite every per-source field.
func All(s schema.Schema) Option {
	return slot("all", s, func(d *Schemas) { d.all = s })
}

// Propagate configures validation failures to surface as the raw
// schema.ValidationErrors, leaving translation to the caller.
func Propagate() Option {
	return policyOption(propagatePolicy{})
}

// FailWith configures validation failures to surface as tmpl's status code
// with a message built from the first failing field ("<field> <message>").
func FailWith(tmpl HTTPError) Option {
	return policyOption(failWithPolicy{tmpl: tmpl})
}

// OnError configures a handler invoked with the request and the raw
// validation error. A nil return suppresses the failure and the pipeline
// hands back the parameters merged so far; a non-nil return propagates
// as-is.
func OnError(h func(*http.Request, error) error) Option {
	return func(d *Schemas) error {
		if h == nil {
			return ErrNilErrorHandler
		}
		return policyOption(callbackPolicy{fn: h})(d)
	}
}

// Logger sets the logger used for configuration errors. Defaults to
// slog.Default, which the application configures once at startup.
func Logger(log *slog.Logger) Option {
	return func(d *Schemas) error {
		if log != nil {
			d.log = log
		}
		return nil
	}
}

func policyOption(p errorPolicy) Option {
	return func(d *Schemas) error {
		if d.policy != nil {
			return ErrErrorPolicyConflict
		}
		d.policy = p
		return nil
	}
}

// New builds an immutable Schemas bundle. Configuration mistakes (both form
// and body supplied, a nil schema, conflicting error policies) are logged at
// error level and returned wrapped in ErrInternalServerError: they indicate
// an integrator bug and must fail at setup time, never per request.
func New(opts ...Option) (*Schemas, error) {
	d := &Schemas{log: slog.Default()}

	var cfgErr error
	for _, opt := range opts {
		if err := opt(d); err != nil && cfgErr == nil {
			cfgErr = err
		}
	}
	if cfgErr == nil && d.form != nil && d.body != nil {
		cfgErr = ErrFormBodyConflict
	}
	if cfgErr != nil {
		d.log.LogAttrs(context.Background(), slog.LevelError, "invalid schema group configuration",
			logger.Error(cfgErr),
			logger.Component("reqschema"),
		)
		return nil, fmt.Errorf("%w: %w", ErrInternalServerError, cfgErr)
	}

	return d, nil
}

// Must is like New but panics on configuration errors. Intended for
// package-level route wiring where startup should not proceed on a bad
// descriptor.
func Must(opts ...Option) *Schemas {
	d, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return d
}

// errorPolicy is the closed set of translations for validation failures,
// selected once at configuration time.
type errorPolicy interface {
	handle(r *http.Request, log *slog.Logger, verr schema.ValidationErrors) error
}

// propagatePolicy re-raises the structured validation error unmodified.
type propagatePolicy struct{}

func (propagatePolicy) handle(_ *http.Request, _ *slog.Logger, verr schema.ValidationErrors) error {
	return verr
}

// failWithPolicy constructs the configured HTTP error from the first failure.
type failWithPolicy struct {
	tmpl HTTPError
}

func (p failWithPolicy) handle(_ *http.Request, _ *slog.Logger, verr schema.ValidationErrors) error {
	return p.tmpl.WithMessage(firstFailure(verr))
}

// callbackPolicy delegates to the configured handler.
type callbackPolicy struct {
	fn func(*http.Request, error) error
}

func (p callbackPolicy) handle(r *http.Request, _ *slog.Logger, verr schema.ValidationErrors) error {
	return p.fn(r, verr)
}

// defaultPolicy logs the first failure and raises a bad request error with
// the same message.
type defaultPolicy struct{}

func (defaultPolicy) handle(r *http.Request, log *slog.Logger, verr schema.ValidationErrors) error {
	msg := firstFailure(verr)
	log.LogAttrs(r.Context(), slog.LevelError, msg,
		logger.Component("reqschema"),
		logger.Error(verr),
	)
	return ErrBadRequest.WithMessage(msg)
}

func firstFailure(verr schema.ValidationErrors) string {
	f := verr.First()
	return fmt.Sprintf("%s %s", f.Field, f.Message)
}
