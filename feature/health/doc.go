// Package health reports whether the service's dependencies are usable.
//
// # Checks Provided
//
//   - Database: the connection answers a ping and every model table exists.
//   - Sessions: the session store answers a ping.
//   - Storage: the export bucket is reachable. Skipped when object storage is not configured.
//
// # HTTP Endpoints
//
//   - GET /health : 200 when every check passes, 503 otherwise.
package health
