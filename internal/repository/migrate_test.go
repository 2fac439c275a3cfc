package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrate_LoadsInOrder(t *testing.T) {
	migrations, err := loadMigrations()
	require.NoError(t, err)
	require.NotEmpty(t, migrations)

	for i := 1; i < len(migrations); i++ {
		assert.Less(t, migrations[i-1].version, migrations[i].version)
	}
	assert.Equal(t, "0001_init", migrations[0].version)
}

func TestMigrate_IsIdempotent(t *testing.T) {
	db := requireDB(t)
	ctx := testContext(t)

	require.NoError(t, Migrate(ctx, db, testLogger))

	var applied int
	require.NoError(t, db.QueryRow(ctx, `SELECT COUNT(*) FROM schema_migrations`).Scan(&applied))

	migrations, err := loadMigrations()
	require.NoError(t, err)
	assert.Equal(t, len(migrations), applied)

	var types int
	require.NoError(t, db.QueryRow(ctx, `SELECT COUNT(*) FROM reaction_types`).Scan(&types))
	assert.Equal(t, 7, types)
}
