package dao_test

import (
	"context"
	"errors"
	"testing"

	"race-admin/core/dao"
	"race-admin/core/database"
	"race-admin/core/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupDB(t *testing.T) *gorm.DB {
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db, &models.Race{}, &models.Record{}))
	return db
}

func seedRace(t *testing.T, db *gorm.DB, rid, title string) models.Race {
	race := models.Race{RID: rid, Title: title, Sponsor: "MoE", Year: "2024", Level: "city", Location: "Hall", Date: 1, Description: "d"}
	require.NoError(t, dao.Create(context.Background(), db, &race))
	return race
}

func TestFind(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	races, err := dao.Find[models.Race](ctx, db)
	require.NoError(t, err)
	assert.Empty(t, races)

	seedRace(t, db, "r1", "Math")
	seedRace(t, db, "r2", "Physics")

	races, err = dao.Find[models.Race](ctx, db)
	require.NoError(t, err)
	assert.Len(t, races, 2)
}

func TestCreate_DuplicateKey(t *testing.T) {
	db := setupDB(t)
	seedRace(t, db, "r1", "Math")

	dup := models.Race{RID: "r1", Title: "Again"}
	err := dao.Create(context.Background(), db, &dup)
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestUpdate(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	race := seedRace(t, db, "r1", "Math")

	n, err := dao.Update[models.Race](ctx, db, map[string]any{"id": race.ID}, map[string]any{
		"_id":     race.ID,
		"title":   "Algebra",
		"unknown": "ignored",
	})
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	races, err := dao.Find[models.Race](ctx, db)
	require.NoError(t, err)
	require.Len(t, races, 1)
	assert.Equal(t, "Algebra", races[0].Title)
	assert.Equal(t, "r1", races[0].RID)

	n, err = dao.Update[models.Race](ctx, db, map[string]any{"id": race.ID}, map[string]any{"unknown": 1})
	require.NoError(t, err)
	assert.Zero(t, n)

	_, err = dao.Update[models.Race](ctx, db, nil, map[string]any{"title": "x"})
	assert.ErrorContains(t, err, "empty filter")
}

func TestDelete(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	seedRace(t, db, "r1", "Math")
	seedRace(t, db, "r2", "Physics")
	seedRace(t, db, "r3", "Chemistry")

	n, err := dao.Delete[models.Race](ctx, db, "rid", []string{"r1", "r3", "missing"})
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	n, err = dao.Delete[models.Race](ctx, db, "rid", nil)
	require.NoError(t, err)
	assert.Zero(t, n)

	races, err := dao.Find[models.Race](ctx, db)
	require.NoError(t, err)
	require.Len(t, races, 1)
	assert.Equal(t, "r2", races[0].RID)
}

func TestFind_Error(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	db, err := database.Open(mysql.New(mysql.Config{Conn: sqlDB, SkipInitializeWithVersion: true}))
	require.NoError(t, err)

	mock.ExpectQuery("SELECT \\* FROM `record`").WillReturnError(errors.New("boom"))

	_, err = dao.Find[models.Record](context.Background(), db)
	assert.ErrorContains(t, err, "find record")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWhitelist(t *testing.T) {
	got := dao.Whitelist(map[string]any{"a": 1, "b": 2, "c": 3}, []string{"a", "c", "d"})
	assert.Equal(t, map[string]any{"a": 1, "c": 3}, got)
}
