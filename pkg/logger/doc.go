// Package logger builds configured slog.Logger instances for the module and
// its consumers.
//
// The factory covers the ambient logging needs of a request-validation
// service: level and format selection (JSON for aggregation, text for
// development), static service attributes, and context extractors that pull
// request-scoped values such as request IDs into every record.
//
//	log := logger.New(
//		logger.WithLevel(slog.LevelDebug),
//		logger.WithFormat(logger.FormatText),
//		logger.WithService("api"),
//		logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//	logger.SetAsDefault(log)
//
// Environment-driven construction pairs with the config package:
//
//	var cfg logger.Config
//	config.MustLoad(&cfg)
//	log := logger.NewFromConfig(cfg)
package logger
