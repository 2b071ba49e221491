package policy_test

import (
	"testing"

	"race-admin/core/models"
	"race-admin/core/policy"

	"github.com/stretchr/testify/assert"
)

func TestRolePolicy(t *testing.T) {
	p := policy.NewRolePolicy()

	tests := []struct {
		name       string
		role       int
		permission string
		want       bool
	}{
		{"Super admin anything", models.RoleSuperAdmin, policy.UserReset, true},
		{"Admin update user", models.RoleAdmin, policy.UserUpdate, true},
		{"Teacher race update", models.RoleTeacher, policy.RaceUpdate, true},
		{"Teacher record export", models.RoleTeacher, policy.RecordExport, true},
		{"Teacher list users", models.RoleTeacher, policy.UserList, true},
		{"Teacher user update", models.RoleTeacher, policy.UserUpdate, false},
		{"Student race update", models.RoleStudent, policy.RaceUpdate, false},
		{"Student user update", models.RoleStudent, policy.UserUpdate, false},
		{"Unknown role", 99, policy.RaceUpdate, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.Allowed(policy.Principal{RoleID: tt.role}, tt.permission))
		})
	}
}

func TestPrincipal_Is(t *testing.T) {
	p := policy.Principal{Account: "s01", Identity: models.KindStudent}
	assert.True(t, p.Is(models.KindStudent, "s01"))
	assert.False(t, p.Is(models.KindTeacher, "s01"))
	assert.False(t, p.Is(models.KindStudent, "s02"))
}

func TestCheckerFunc(t *testing.T) {
	var c policy.Checker = policy.CheckerFunc(func(p policy.Principal, permission string) bool {
		return permission == policy.UserReset
	})
	assert.True(t, c.Allowed(policy.Principal{}, policy.UserReset))
	assert.False(t, c.Allowed(policy.Principal{}, policy.UserDelete))
}
