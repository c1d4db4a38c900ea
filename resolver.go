package reqschema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/reqschema/pkg/logger"
	"github.com/dmitrymomot/reqschema/schema"
)

// maxMultipartMemory bounds the in-memory portion of multipart form parsing.
const maxMultipartMemory = 32 << 20

// PathParamsFunc extracts the route path parameters from a request. The
// default implementation reads chi route context; supply your own to
// integrate another router.
type PathParamsFunc func(r *http.Request) map[string]string

// ChiPathParams extracts path parameters from the chi routing context.
// Returns nil when the request was not routed by chi.
func ChiPathParams(r *http.Request) map[string]string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return nil
	}
	params := make(map[string]string, len(rctx.URLParams.Keys))
	for i, k := range rctx.URLParams.Keys {
		if k == "*" {
			continue
		}
		params[k] = rctx.URLParams.Values[i]
	}
	return params
}

// Resolver runs the per-request validation pipeline: extract raw values per
// configured source, validate each group, merge the results in fixed
// precedence order, and translate failures per the descriptor's error
// policy. A single Resolver serves all routes; it holds no per-request state.
type Resolver struct {
	log        *slog.Logger
	pathParams PathParamsFunc
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithLogger supplies the logger used for validation and resolution
// failures. Defaults to slog.Default.
func WithLogger(log *slog.Logger) ResolverOption {
	return func(rs *Resolver) {
		if log != nil {
			rs.log = log
		}
	}
}

// WithPathParams replaces the route parameter extractor.
func WithPathParams(fn PathParamsFunc) ResolverOption {
	return func(rs *Resolver) {
		if fn != nil {
			rs.pathParams = fn
		}
	}
}

// NewResolver returns a Resolver with chi path extraction and the default logger.
func NewResolver(opts ...ResolverOption) *Resolver {
	rs := &Resolver{
		log:        slog.Default(),
		pathParams: ChiPathParams,
	}
	for _, opt := range opts {
		opt(rs)
	}
	return rs
}

// Validate runs the pipeline for one request. Groups are validated and
// merged in the order header, path, query, form-or-body, all; each later
// group overwrites same-named keys, so the effective precedence is
// header < path < query < form/body < all, with the explicit-field rule of
// Args.merge keeping defaults from clobbering explicit values.
//
// On a validation failure the descriptor's error policy decides what
// surfaces; any other failure wraps in ErrInternalServerError. On success
// the merged Args are returned; the middleware additionally stores them on
// the request context under the params key.
func (rs *Resolver) Validate(r *http.Request, s *Schemas) (*Args, error) {
	if s == nil {
		return nil, rs.internal(r, errors.New("nil schema group"))
	}

	// Buffer the body once so the JSON attempt and a later form parse can
	// both read it.
	var bodyBytes []byte
	if s.body != nil || s.all != nil {
		b, err := io.ReadAll(r.Body)
		if err != nil {
			return nil, rs.internal(r, fmt.Errorf("read body: %w", err))
		}
		r.Body.Close()
		r.Body = io.NopCloser(bytes.NewReader(b))
		bodyBytes = b
	}

	args := NewArgs()

	if s.header != nil {
		res, err := s.header.Parse(collapse(url.Values(r.Header)))
		if err != nil {
			return rs.fail(r, s, args, err)
		}
		args.merge(res)
	}

	if s.path != nil {
		res, err := s.path.Parse(stringMap(rs.pathParams(r)))
		if err != nil {
			return rs.fail(r, s, args, err)
		}
		args.merge(res)
	}

	if s.query != nil {
		res, err := s.query.Parse(collapse(r.URL.Query()))
		if err != nil {
			return rs.fail(r, s, args, err)
		}
		args.merge(res)
	}

	if s.form != nil {
		form, err := formValues(r)
		if err != nil {
			return nil, rs.internal(r, err)
		}
		res, err := s.form.Parse(form)
		if err != nil {
			return rs.fail(r, s, args, err)
		}
		args.merge(res)
	} else if s.body != nil {
		payload, err := decodeObject(bodyBytes)
		if err != nil {
			return nil, rs.internal(r, err)
		}
		res, err := s.body.Parse(payload)
		if err != nil {
			return rs.fail(r, s, args, err)
		}
		args.merge(res)
	}

	if s.all != nil {
		combined := make(map[string]any)
		maps.Copy(combined, collapse(url.Values(r.Header)))
		maps.Copy(combined, stringMap(rs.pathParams(r)))
		maps.Copy(combined, collapse(r.URL.Query()))

		// JSON body when it parses to an object, form fields otherwise.
		var payload any
		bodyUsed := false
		if len(bodyBytes) > 0 && json.Unmarshal(bodyBytes, &payload) == nil {
			if m, ok := payload.(map[string]any); ok {
				maps.Copy(combined, m)
				bodyUsed = true
			}
		}
		if !bodyUsed {
			form, err := formValues(r)
			if err != nil {
				return nil, rs.internal(r, err)
			}
			maps.Copy(combined, form)
		}

		res, err := s.all.Parse(combined)
		if err != nil {
			return rs.fail(r, s, args, err)
		}
		args.merge(res)
	}

	return args, nil
}

// fail routes a group failure through the error policy. Non-validation
// errors from a schema engine are treated as internal failures.
func (rs *Resolver) fail(r *http.Request, s *Schemas, args *Args, err error) (*Args, error) {
	verr := schema.Extract(err)
	if verr == nil {
		return nil, rs.internal(r, err)
	}

	policy := s.policy
	if policy == nil {
		policy = defaultPolicy{}
	}
	out := policy.handle(r, rs.log, verr)
	if out == nil {
		// A callback policy chose to swallow the failure; hand back what
		// merged before it.
		return args, nil
	}
	return nil, out
}

func (rs *Resolver) internal(r *http.Request, err error) error {
	rs.log.LogAttrs(r.Context(), slog.LevelError, "request parameter resolution failed",
		logger.Component("reqschema"),
		logger.Error(err),
	)
	return fmt.Errorf("%w: %w", ErrInternalServerError, err)
}

// collapse flattens a multi-value mapping: a key with exactly one value
// becomes that scalar string, a key with several keeps the list.
func collapse(values url.Values) map[string]any {
	out := make(map[string]any, len(values))
	for k, v := range values {
		if len(v) == 1 {
			out[k] = v[0]
		} else {
			out[k] = []string(v)
		}
	}
	return out
}

func stringMap(params map[string]string) map[string]any {
	out := make(map[string]any, len(params))
	for k, v := range params {
		out[k] = v
	}
	return out
}

// formValues parses and collapses the submitted form fields. Requests
// without a form payload yield an empty mapping rather than an error, so
// the all-mode body substitution stays cheap.
func formValues(r *http.Request) (map[string]any, error) {
	mediaType := r.Header.Get("Content-Type")
	if idx := strings.Index(mediaType, ";"); idx != -1 {
		mediaType = strings.TrimSpace(mediaType[:idx])
	}

	if mediaType == "multipart/form-data" {
		if err := r.ParseMultipartForm(maxMultipartMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
			return nil, fmt.Errorf("parse multipart form: %w", err)
		}
	} else {
		if err := r.ParseForm(); err != nil {
			return nil, fmt.Errorf("parse form: %w", err)
		}
	}
	return collapse(r.PostForm), nil
}

// decodeObject decodes a JSON body that must be an object. A malformed or
// non-object body here is an integrator-visible failure: the route declared
// a body schema, so the payload shape is part of the contract.
func decodeObject(body []byte) (map[string]any, error) {
	var payload any
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decode body: %w", err)
	}
	obj, ok := payload.(map[string]any)
	if !ok {
		return nil, errors.New("decode body: expected a JSON object")
	}
	return obj, nil
}
