// Package testdb opens throwaway in-memory databases for tests.
package testdb

import (
	"fmt"
	"testing"

	"github.com/andrewpaige1/kioku-api/config"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// New returns a migrated in-memory sqlite database with foreign keys enabled.
// Each call gets its own database, closed when the test ends.
func New(t testing.TB) *gorm.DB {
	t.Helper()

	name, err := gonanoid.Generate("abcdefghijklmnopqrstuvwxyz", 16)
	require.NoError(t, err)

	db, err := config.Connect(config.DatabaseConfig{
		Driver: config.DriverSQLite,
		URL:    fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=1", name),
		// one connection keeps the in-memory database alive and serialises writers
		MaxOpenConns: 1,
		MaxIdleConns: 1,
	}, zap.NewNop())
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, config.Migrate(db))
	return db
}
