package user

import (
	"context"
	"testing"
	"time"

	"race-admin/core/database"
	"race-admin/core/models"
	"race-admin/core/password"
	"race-admin/core/policy"
	"race-admin/core/session"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

const testDefaultPassword = "123456"

func setupService(t *testing.T) *Service {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db, models.All()...))
	return NewService(zap.NewNop(), db, password.NewBcrypt(bcrypt.MinCost), testDefaultPassword)
}

func setupMockService(t *testing.T) (*Service, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	db, err := gorm.Open(mysql.New(mysql.Config{Conn: sqlDB, SkipInitializeWithVersion: true}), &gorm.Config{})
	require.NoError(t, err)
	return NewService(zap.NewNop(), db, password.NewBcrypt(bcrypt.MinCost), testDefaultPassword), mock
}

func student(sid, name, class string) map[string]any {
	return map[string]any{"sid": sid, "sname": name, "classname": class}
}

func TestCheckUsers(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()
	require.NoError(t, svc.Add(ctx, models.KindStudent, student("s1", "Ann", "1A")))

	plan, err := svc.CheckUsers(ctx, models.KindStudent, []map[string]any{
		student("s1", "Ann", "1A"),
		student("s2", "Bob", "1A"),
		{"sid": 2021003.0, "sname": "Cid", "role_id": 1},
	})
	require.NoError(t, err)

	require.Len(t, plan.Existing, 1)
	assert.Equal(t, "s1", plan.Existing[0]["sid"])
	assert.NotContains(t, plan.Existing[0], "password")

	require.Len(t, plan.New, 2)
	assert.Equal(t, "s2", plan.New[0]["sid"])
	assert.Equal(t, models.RoleStudent, plan.New[0]["role_id"])
	assert.Equal(t, "2021003", plan.New[1]["sid"])
	assert.Equal(t, models.RoleStudent, plan.New[1]["role_id"])

	var count int64
	svc.db.Model(&models.Student{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestCheckUsersTeacherRole(t *testing.T) {
	svc := setupService(t)
	plan, err := svc.CheckUsers(context.Background(), models.KindTeacher, []map[string]any{{"tid": "t1", "tname": "Tom"}})
	require.NoError(t, err)
	require.Len(t, plan.New, 1)
	assert.Equal(t, models.RoleTeacher, plan.New[0]["role_id"])
}

func TestCheckUsersRejectsAdmin(t *testing.T) {
	svc := setupService(t)
	_, err := svc.CheckUsers(context.Background(), models.KindAdmin, []map[string]any{{"aid": "a1"}})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCheckUsersLookupFailure(t *testing.T) {
	svc, mock := setupMockService(t)
	mock.ExpectQuery("SELECT .* FROM `student`").WillReturnError(assert.AnError)

	_, err := svc.CheckUsers(context.Background(), models.KindStudent, []map[string]any{student("s1", "Ann", "1A")})
	assert.ErrorIs(t, err, assert.AnError)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdd(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	require.NoError(t, svc.Add(ctx, models.KindStudent, student("s1", "Ann", "1A")))
	assert.ErrorIs(t, svc.Add(ctx, models.KindStudent, student("s1", "Ann", "1A")), ErrUserExists)
	assert.ErrorIs(t, svc.Add(ctx, models.KindStudent, map[string]any{"sname": "NoKey"}), ErrInvalidInput)

	var stored models.Student
	require.NoError(t, svc.db.First(&stored, "sid = ?", "s1").Error)
	assert.Equal(t, models.RoleStudent, stored.RoleID)
	assert.NotEqual(t, testDefaultPassword, stored.Password)
	assert.True(t, svc.hasher.Verify(testDefaultPassword, stored.Password))
	assert.False(t, stored.CreateTime.IsZero())
}

func TestAddKeepsSubmittedPassword(t *testing.T) {
	svc := setupService(t)
	data := student("s1", "Ann", "1A")
	data["password"] = "secret"
	require.NoError(t, svc.Add(context.Background(), models.KindStudent, data))

	_, err := svc.Authenticate(context.Background(), models.KindStudent, "s1", "secret")
	assert.NoError(t, err)
}

func TestImport(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()
	require.NoError(t, svc.Add(ctx, models.KindStudent, student("s1", "Ann", "1A")))

	existing, inserted, err := svc.Import(ctx, models.KindStudent, []map[string]any{
		student("s1", "Ann", "1A"),
		student("s2", "Bob", "1B"),
		student("s3", "Cid", "1B"),
		student("s3", "Cid again", "1B"),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, inserted)
	require.Len(t, existing, 1)
	assert.Equal(t, "s1", existing[0]["sid"])

	var s3 models.Student
	require.NoError(t, svc.db.First(&s3, "sid = ?", "s3").Error)
	assert.Equal(t, "Cid", s3.SName)

	_, _, err = svc.Import(ctx, models.KindStudent, nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestImportIsAtomic(t *testing.T) {
	svc, mock := setupMockService(t)
	mock.ExpectQuery("SELECT .* FROM `teacher`").WillReturnRows(sqlmock.NewRows([]string{"tid"}))
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `teacher`").WillReturnError(assert.AnError)
	mock.ExpectRollback()

	_, _, err := svc.Import(context.Background(), models.KindTeacher, []map[string]any{
		{"tid": "t1", "tname": "Tom"},
		{"tid": "t2", "tname": "Tim"},
	})
	assert.ErrorIs(t, err, assert.AnError)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()
	_, _, err := svc.Import(ctx, models.KindStudent, []map[string]any{student("s1", "Ann", "1A"), student("s2", "Bob", "1A")})
	require.NoError(t, err)

	self := policy.Principal{Account: "s1", Identity: models.KindStudent, RoleID: models.RoleAdmin}
	_, err = svc.Delete(ctx, self, models.KindStudent, []string{"s1", "s2"})
	assert.ErrorIs(t, err, ErrSelfDelete)

	other := policy.Principal{Account: "s1", Identity: models.KindAdmin, RoleID: models.RoleAdmin}
	n, err := svc.Delete(ctx, other, models.KindStudent, []string{"s1", "s2"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestList(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()
	for _, s := range []map[string]any{
		student("s1", "Ann Lee", "Class 1A"),
		student("s2", "Bob Lee", "Class 1B"),
		student("s3", "Cid Wu", "Class 2A"),
	} {
		require.NoError(t, svc.Add(ctx, models.KindStudent, s))
	}

	t.Run("Name Match", func(t *testing.T) {
		rows, count, err := svc.List(ctx, models.KindStudent, ListQuery{Name: "Lee"})
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)
		assert.Len(t, *rows.(*[]models.Student), 2)
	})

	t.Run("Class Match", func(t *testing.T) {
		_, count, err := svc.List(ctx, models.KindStudent, ListQuery{Class: "2A"})
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("Pagination", func(t *testing.T) {
		rows, count, err := svc.List(ctx, models.KindStudent, ListQuery{Offset: 2, Limit: 2})
		require.NoError(t, err)
		assert.Equal(t, int64(3), count)
		assert.Len(t, *rows.(*[]models.Student), 1)
	})

	t.Run("Filters", func(t *testing.T) {
		_, count, err := svc.List(ctx, models.KindStudent, ListQuery{Filters: map[string]string{"sid": "s2", "password": "x"}})
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})
}

func TestGetUser(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()
	require.NoError(t, svc.Add(ctx, models.KindStudent, student("s1", "Ann", "1A")))

	p := policy.Principal{Account: "s1", Identity: models.KindStudent, RoleID: models.RoleStudent}
	profile, err := svc.GetUser(ctx, p)
	require.NoError(t, err)
	assert.Equal(t, "Ann", profile["sname"])
	assert.Equal(t, "s1", profile["account"])
	assert.Equal(t, "student", profile["identity"])
	assert.NotContains(t, profile, "password")
	assert.NotContains(t, profile, "create_time")

	ghost := policy.Principal{Account: "nobody", Identity: models.KindTeacher, RoleID: models.RoleTeacher}
	profile, err = svc.GetUser(ctx, ghost)
	require.NoError(t, err)
	assert.Equal(t, "nobody", profile["account"])
}

func TestChangePassword(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()
	require.NoError(t, svc.Add(ctx, models.KindStudent, student("s1", "Ann", "1A")))

	assert.ErrorIs(t, svc.ChangePassword(ctx, models.KindStudent, "s9", "x", "y"), ErrUserNotFound)
	assert.ErrorIs(t, svc.ChangePassword(ctx, models.KindStudent, "s1", "wrong", "new"), ErrBadPassword)
	require.NoError(t, svc.ChangePassword(ctx, models.KindStudent, "s1", testDefaultPassword, "new"))

	_, err := svc.Authenticate(ctx, models.KindStudent, "s1", "new")
	assert.NoError(t, err)

	require.NoError(t, svc.Reset(ctx, models.KindStudent, "s1"))
	_, err = svc.Authenticate(ctx, models.KindStudent, "s1", testDefaultPassword)
	assert.NoError(t, err)
}

func TestUpdate(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()
	require.NoError(t, svc.Add(ctx, models.KindStudent, student("s1", "Ann", "1A")))
	self := policy.Principal{Account: "s1", Identity: models.KindStudent, RoleID: models.RoleStudent}
	other := policy.Principal{Account: "s2", Identity: models.KindStudent, RoleID: models.RoleStudent}

	_, err := svc.Update(ctx, other, models.KindStudent, "s1", map[string]any{"sname": "X"}, false)
	assert.ErrorIs(t, err, ErrForbidden)

	n, err := svc.Update(ctx, self, models.KindStudent, "s1", map[string]any{
		"sid": "s1", "sname": "Annie", "password": "hack", "role_id": 1,
	}, false)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	var stored models.Student
	require.NoError(t, svc.db.First(&stored, "sid = ?", "s1").Error)
	assert.Equal(t, "Annie", stored.SName)
	assert.Equal(t, models.RoleStudent, stored.RoleID)
	assert.True(t, svc.hasher.Verify(testDefaultPassword, stored.Password))

	_, err = svc.Update(ctx, other, models.KindStudent, "s1", map[string]any{"role_id": 4.0}, true)
	require.NoError(t, err)
	require.NoError(t, svc.db.First(&stored, "sid = ?", "s1").Error)
	assert.Equal(t, models.RoleTeacher, stored.RoleID)
}

func TestUpdateRoleRevokesSessions(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()
	store := session.NewMemoryStore(time.Minute)
	svc.UseSessions(store)
	require.NoError(t, svc.Add(ctx, models.KindStudent, student("s1", "Ann", "1A")))
	self := policy.Principal{Account: "s1", Identity: models.KindStudent, RoleID: models.RoleStudent}
	admin := policy.Principal{Account: "a1", Identity: models.KindAdmin, RoleID: models.RoleAdmin}

	token, err := store.Create(ctx, self)
	require.NoError(t, err)

	_, err = svc.Update(ctx, self, models.KindStudent, "s1", map[string]any{"sname": "Annie", "role_id": 4}, false)
	require.NoError(t, err)
	_, err = store.Get(ctx, token)
	require.NoError(t, err, "profile edits keep the session")

	_, err = svc.Update(ctx, admin, models.KindStudent, "s1", map[string]any{"role_id": 4}, true)
	require.NoError(t, err)
	_, err = store.Get(ctx, token)
	assert.ErrorIs(t, err, session.ErrNotFound)
}

func TestAuthenticate(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()
	require.NoError(t, svc.CreateAdmin(ctx, "root", "Root", "pw", models.RoleSuperAdmin))
	assert.ErrorIs(t, svc.CreateAdmin(ctx, "root", "Root", "pw", models.RoleSuperAdmin), ErrUserExists)

	p, err := svc.Authenticate(ctx, models.KindAdmin, "root", "pw")
	require.NoError(t, err)
	assert.Equal(t, policy.Principal{Account: "root", Identity: models.KindAdmin, RoleID: models.RoleSuperAdmin}, p)

	_, err = svc.Authenticate(ctx, models.KindAdmin, "root", "nope")
	assert.ErrorIs(t, err, ErrBadPassword)
	_, err = svc.Authenticate(ctx, models.KindAdmin, "ghost", "pw")
	assert.ErrorIs(t, err, ErrBadPassword)
}
