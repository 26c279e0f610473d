// Package requestid attaches a correlation id to every HTTP request.
//
// The middleware reuses a client supplied X-Request-ID when it is valid and
// otherwise generates a UUID. The id is stored in the request context, echoed
// in the response header and picked up by the logger through LoggerExtractor:
//
//	log := logger.New(logger.WithContextExtractors(requestid.LoggerExtractor()))
//	r := chi.NewRouter()
//	r.Use(requestid.Middleware)
//
// Invalid ids are replaced silently; the package never returns errors.
package requestid
