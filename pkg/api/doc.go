// Package api serves a simulator as a JSON HTTP service.
//
// Every response uses the envelope
//
//	{"data": ...}                                  on success
//	{"error": {"code": "...", "message": "..."}}   on failure
//
// Storage errors map to status codes: missing files are 404, duplicate
// creates 409, invalid ids or sizes 422 and an unreachable backend 503.
// Requests get an X-Request-ID and are logged through slog.
//
//	sim := simulator.New(store, files, log)
//	srv := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))
//	err := srv.Run(ctx, api.NewRouter(sim, log))
package api
