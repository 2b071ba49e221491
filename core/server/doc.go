// Package server holds the HTTP server configuration.
//
// While cmd/start wires the Fiber application, this package defines the settings
// it reads: the listen port, the request body limit, whether tables are created
// on startup, and the default password handed out by administrative resets.
package server
