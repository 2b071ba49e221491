// Package race implements competition management.
//
// # HTTP Endpoints
//
//   - GET    /race/list   : every race as a bare JSON array (500 with no body on failure).
//   - PUT    /race/update : partial update addressed by `_id`; 400 before any
//     database access when `_id` is missing.
//   - POST   /race/add    : create a race; a taken `rid` answers code 1.
//   - DELETE /race/delete : delete races by `_id`.
//
// Writes require the race:* permissions of core/policy.
package race
