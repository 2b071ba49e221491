// Package record manages race participation records and their export.
//
// # HTTP Endpoints
//
//   - GET    /record/list    : every record as a bare JSON array.
//   - POST   /record/add     : create a record.
//   - PUT    /record/update  : partial update addressed by `_id`.
//   - DELETE /record/delete  : delete records by `_id`.
//   - POST   /record/export  : write a JSON snapshot of races and records to
//     object storage and return its key.
//   - GET    /record/exports : list previously written snapshots.
package record
