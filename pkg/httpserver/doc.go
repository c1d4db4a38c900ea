// Package httpserver runs an http.Server with graceful shutdown.
//
// The server stops on context cancellation or on SIGINT/SIGTERM, waiting up
// to the configured shutdown timeout for in-flight requests. Settings come
// from the environment via Config and the config package:
//
//	var cfg httpserver.Config
//	config.MustLoad(&cfg)
//
//	srv := httpserver.New(cfg, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, router); err != nil {
//		log.Error("server failed", "error", err)
//	}
package httpserver
