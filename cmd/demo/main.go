// Command demo runs a small API that exercises the request validation
// pipeline: path, query, body, form, and catch-all schemas with different
// error policies, wired onto a chi router.
package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/reqschema"
	"github.com/dmitrymomot/reqschema/pkg/config"
	"github.com/dmitrymomot/reqschema/pkg/httpserver"
	"github.com/dmitrymomot/reqschema/pkg/logger"
	"github.com/dmitrymomot/reqschema/pkg/requestid"
	"github.com/dmitrymomot/reqschema/schema"
)

var (
	searchSchemas = reqschema.Must(
		reqschema.Query(schema.New(
			schema.String("q", schema.NotBlank()).Required(),
			schema.Int("page", schema.Min(1)).Default(1),
			schema.Int("page_size", schema.Min(1), schema.Max(100)).Default(20),
			schema.Strings("tags"),
		)),
	)

	userSchemas = reqschema.Must(
		reqschema.Path(schema.New(
			schema.Int("id", schema.Min(1)).Required(),
		)),
		reqschema.Query(schema.New(
			schema.String("expand", schema.InList("profile", "billing", "none")).Default("none"),
		)),
	)

	createUserSchemas = reqschema.Must(
		reqschema.Body(schema.New(
			schema.String("name", schema.MinLen(2), schema.MaxLen(64)).Required(),
			schema.String("email", schema.Email()).Required(),
			schema.Int("age", schema.Min(0), schema.Max(150)),
		)),
		reqschema.FailWith(reqschema.ErrUnprocessableEntity),
	)

	loginSchemas = reqschema.Must(
		reqschema.Form(schema.New(
			schema.String("username", schema.NotBlank()).Required(),
			schema.String("password", schema.MinLen(8)).Required(),
			schema.Bool("remember").Default(false),
		)),
	)

	echoSchemas = reqschema.Must(
		reqschema.All(schema.New(
			schema.String("X-Tenant").Required(),
			schema.String("q"),
			schema.Any("payload"),
		)),
		reqschema.Propagate(),
	)
)

func writeParams(w http.ResponseWriter, args *reqschema.Args) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(args)
}

func main() {
	var logCfg logger.Config
	config.MustLoad(&logCfg)

	log := logger.NewFromConfig(logCfg,
		logger.WithService("reqschema-demo"),
		logger.WithContextExtractors(requestid.LoggerExtractor()),
	)
	logger.SetAsDefault(log)

	var srvCfg httpserver.Config
	config.MustLoad(&srvCfg)

	resolver := reqschema.NewResolver(reqschema.WithLogger(log))

	r := chi.NewRouter()
	r.Use(requestid.Middleware)

	r.With(resolver.Middleware(searchSchemas)).Get("/search", func(w http.ResponseWriter, req *http.Request) {
		writeParams(w, reqschema.ParamsFromContext(req.Context()))
	})

	r.Get("/users/{id}", resolver.Handle(userSchemas, func(w http.ResponseWriter, _ *http.Request, args *reqschema.Args) {
		writeParams(w, args)
	}))

	r.Post("/users", resolver.Handle(createUserSchemas, func(w http.ResponseWriter, _ *http.Request, args *reqschema.Args) {
		w.WriteHeader(http.StatusCreated)
		writeParams(w, args)
	}))

	r.Post("/login", resolver.Handle(loginSchemas, func(w http.ResponseWriter, _ *http.Request, args *reqschema.Args) {
		writeParams(w, args)
	}))

	// Propagated validation errors reach the handler layer raw; translate
	// them at the edge.
	r.Post("/echo", func(w http.ResponseWriter, req *http.Request) {
		args, err := resolver.Validate(req, echoSchemas)
		if err != nil {
			reqschema.WriteError(w, err)
			return
		}
		writeParams(w, args)
	})

	srv := httpserver.New(srvCfg, httpserver.WithLogger(log))
	if err := srv.Run(context.Background(), r); err != nil {
		log.Error("server failed", logger.Error(err))
		os.Exit(1)
	}
}
