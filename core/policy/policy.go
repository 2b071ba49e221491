// Package policy decides what an authenticated principal may do.
//
// Handlers receive a Checker instead of calling a middleware, so the rules can be
// swapped or stubbed in tests without touching routing.
package policy

import (
	"strings"

	"race-admin/core/models"
)

// Permissions checked by the handlers.
const (
	UserAdd      = "user:add"
	UserDelete   = "user:delete"
	UserUpdate   = "user:update"
	UserReset    = "user:reset"
	UserList     = "user:list"
	RaceAdd      = "race:add"
	RaceUpdate   = "race:update"
	RaceDelete   = "race:delete"
	RecordAdd    = "record:add"
	RecordUpdate = "record:update"
	RecordDelete = "record:delete"
	RecordExport = "record:export"
)

// Principal is the authenticated caller.
type Principal struct {
	Account  string      `json:"account"`
	Identity models.Kind `json:"identity"`
	RoleID   int         `json:"role_id"`
}

// Is reports whether the principal is the given account.
func (p Principal) Is(kind models.Kind, account string) bool {
	return p.Identity == kind && p.Account == account
}

// Checker decides whether a principal holds a permission.
type Checker interface {
	Allowed(p Principal, permission string) bool
}

// RolePolicy grants permissions by role id. A grant of "race:*" covers every
// race permission and "*" covers everything.
type RolePolicy struct {
	grants map[int][]string
}

// NewRolePolicy returns the default grants: admins hold everything, teachers
// manage races and records, students only read.
func NewRolePolicy() *RolePolicy {
	return &RolePolicy{grants: map[int][]string{
		models.RoleSuperAdmin: {"*"},
		models.RoleAdmin:      {"*"},
		models.RoleTeacher:    {"race:*", "record:*", UserList},
	}}
}

// Allowed implements Checker.
func (r *RolePolicy) Allowed(p Principal, permission string) bool {
	for _, grant := range r.grants[p.RoleID] {
		if grant == "*" || grant == permission {
			return true
		}
		if prefix, ok := strings.CutSuffix(grant, "*"); ok && strings.HasPrefix(permission, prefix) {
			return true
		}
	}
	return false
}

// CheckerFunc adapts a function to Checker.
type CheckerFunc func(p Principal, permission string) bool

// Allowed implements Checker.
func (f CheckerFunc) Allowed(p Principal, permission string) bool {
	return f(p, permission)
}
