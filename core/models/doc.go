// Package models is the entity registry of the service.
//
// Accounts come in three kinds (student, teacher, admin), each stored in its own
// table keyed by the account identifier (sid, tid, aid). The credential fields
// (password digest, role) live on the same row. Kind is a closed enum: every
// table, key and column a handler may touch is resolved through it at compile
// time instead of by looking up a string-keyed schema.
//
// Races and participation records are plain GORM models addressed by a surrogate
// `_id` on the wire.
package models
