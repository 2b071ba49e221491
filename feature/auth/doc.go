// Package auth issues and revokes login sessions.
//
// # HTTP Endpoints
//
//   - POST /login  : exchange account, identity and password for a bearer token.
//   - POST /logout : revoke the token of the request.
//
// Requests to every other route carry `Authorization: Bearer <token>`, resolved
// by core/middleware/auth.
package auth
