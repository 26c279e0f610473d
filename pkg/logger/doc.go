// Package logger builds the slog loggers used across costcache.
//
// New creates a *slog.Logger configured by Option functions:
//
//   - Output format (text or json) and destination
//   - Minimum level, either as slog.Level or a name from configuration
//   - Static attributes attached to every record
//   - ContextExtractor callbacks that pull attributes (for example a request
//     id) out of context.Context on every Handle call
//
// # Usage
//
//	log := logger.New(
//	    logger.WithEnvironment(cfg.AppEnv, "costcache"),
//	    logger.WithOutput(os.Stderr),
//	    logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//
//	log.InfoContext(ctx, "cache access",
//	    logger.FileID("scan-001.png"),
//	    logger.Cost(120),
//	    logger.Outcome("miss"),
//	)
//
// Attribute helpers in attr.go keep key names consistent between the CLI,
// the HTTP service and trace replay. Error and Errors return an empty Attr
// for nil errors, so they can be passed unconditionally.
package logger
