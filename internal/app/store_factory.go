package app

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/shrimpsizemoose/schoolcli/internal/store"
	"github.com/shrimpsizemoose/schoolcli/internal/store/jsonfile"
	"github.com/shrimpsizemoose/schoolcli/internal/store/memory"
	"github.com/shrimpsizemoose/schoolcli/internal/store/postgres"
	"github.com/shrimpsizemoose/schoolcli/internal/store/redis"
	"github.com/shrimpsizemoose/schoolcli/internal/store/sqlite"
)

// DetectDBType picks the backend from the DSN. Anything that is not a known
// URL scheme or a sqlite file name is a directory of JSON documents.
func DetectDBType(dsn string) store.DatabaseType {
	switch {
	case strings.HasPrefix(dsn, "postgres"):
		return store.DBTypePostgres
	case strings.HasPrefix(dsn, "redis://"), strings.HasPrefix(dsn, "rediss://"):
		return store.DBTypeRedis
	case strings.HasPrefix(dsn, "memory://"):
		return store.DBTypeMemory
	case strings.HasPrefix(dsn, "sqlite://"):
		return store.DBTypeSQLite
	}

	switch filepath.Ext(dsn) {
	case ".db", ".sqlite", ".sqlite3":
		return store.DBTypeSQLite
	}
	return store.DBTypeJSON
}

func NewStore(config *Config) (store.Store, error) {
	dsn := config.Database.DSN

	switch DetectDBType(dsn) {
	case store.DBTypePostgres:
		return postgres.NewPostgresStore(dsn, config.Database.MigrationsDir)
	case store.DBTypeSQLite:
		return sqlite.NewSQLiteStore(strings.TrimPrefix(dsn, "sqlite://"), config.Database.MigrationsDir)
	case store.DBTypeRedis:
		return redis.NewRedisStore(dsn, config.Database.KeyPrefix, config.LockTimeout)
	case store.DBTypeMemory:
		return memory.New(), nil
	case store.DBTypeJSON:
		return jsonfile.New(dsn)
	default:
		return nil, fmt.Errorf("unable to determine database type from DSN: %s", dsn)
	}
}
