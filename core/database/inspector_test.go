package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type widget struct {
	ID   uint `gorm:"primaryKey"`
	Name string
}

type gadget struct {
	ID uint `gorm:"primaryKey"`
}

func TestMigrateAndMissingTables(t *testing.T) {
	db, err := Connect(Config{Driver: DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"widgets", "gadgets"}, MissingTables(db, &widget{}, &gadget{}))

	require.NoError(t, Migrate(db, &widget{}))
	assert.Equal(t, []string{"gadgets"}, MissingTables(db, &widget{}, &gadget{}))

	require.NoError(t, Migrate(db, &gadget{}))
	assert.Empty(t, MissingTables(db, &widget{}, &gadget{}))
}

func TestPing(t *testing.T) {
	assert.Error(t, Ping(context.Background(), nil))

	db, err := Connect(Config{Driver: DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	assert.NoError(t, Ping(context.Background(), db))
}
