// Package middleware contains HTTP middleware for the Fiber application.
//
// # Components
//
//   - RayID: assigns a request id, stores it in the context for logger.WithRayID
//     and echoes it in the X-Ray-ID response header.
//   - Auth: resolves the bearer token to a session principal and rejects
//     anonymous requests outside the public paths.
//   - Metrics: records request counts and latencies in Prometheus.
//
// They are registered globally in cmd/start, RayID first so every log line of a
// request carries its id.
package middleware
