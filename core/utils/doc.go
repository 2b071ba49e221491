// Package utils provides conversion helpers for loosely typed request input:
// query strings and JSON bodies decoded into maps.
package utils
