package service

import (
	"strings"
	"testing"

	"tgtodo/web-api/model"
	"tgtodo/web-api/security"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// newTestDB opens a per-test in-memory SQLite database with the schema
// migrated. Shared cache keeps it alive across the pooled connections.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")

	d, err := gorm.Open(sqlite.Open("file:" + name + "?mode=memory&cache=shared"))
	require.NoError(t, err)

	require.NoError(t, d.AutoMigrate(model.User{}, model.Todo{}))

	sqlDB, err := d.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	return d
}

func seedUser(t *testing.T, d *gorm.DB, argon *security.ArgonHash, id, username, password string) *model.User {
	t.Helper()

	hash, err := argon.GenerateFromPassword(password)
	require.NoError(t, err)

	u := &model.User{
		ID:           id,
		Username:     username,
		PasswordHash: hash,
	}
	require.NoError(t, d.Create(u).Error)

	return u
}
