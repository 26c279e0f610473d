// Package httpserver runs an http.Handler with configurable timeouts and
// graceful shutdown.
//
// Run blocks until its context is canceled or Shutdown is called, then drains
// in-flight requests for at most the shutdown timeout. Signal handling is left
// to the caller, usually through signal.NotifyContext.
//
// Usage:
//
//	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
//	defer stop()
//
//	srv := httpserver.NewFromConfig(cfg, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, router); err != nil {
//		log.Error("server stopped", logger.Error(err))
//	}
//
// HealthCheckHandler builds plain-text liveness and readiness probes from
// dependency checks.
//
// Run wraps listen errors with ErrStart; Shutdown wraps drain errors with
// ErrShutdown.
package httpserver
