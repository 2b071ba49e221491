// Package logger builds the service's Zap logger.
//
// The debug level selects Zap's development config, which prints ISO8601
// timestamps; every other level uses the production config. Encoding is json by
// default and console on request.
//
// # Request Correlation
//
// WithRayID reads the ray id stored by the rayid middleware from the Fiber
// context and attaches it as the "ray_id" field, so every line logged while
// serving a request can be grouped.
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info", Format: "json"})
//	log.Info("Server started")
//
//	// In a request handler:
//	l := logger.WithRayID(log, c)
//	l.Error("Handler failed", zap.Error(err))
package logger
