package app

import (
	"fmt"
	"strings"

	"github.com/shrimpsizemoose/skola/internal/store"
	"github.com/shrimpsizemoose/skola/internal/store/postgres"
	"github.com/shrimpsizemoose/skola/internal/store/sqlite"
)

func DetectDBType(dsn string) store.DatabaseType {
	if strings.HasPrefix(dsn, "postgres") {
		return store.DBTypePostgres
	}
	return store.DBTypeSQLite
}

func NewStore(config *store.DBConfig) (store.SchoolStore, error) {
	if config.Type == "" {
		config.Type = DetectDBType(config.DSN)
	}

	switch config.Type {
	case store.DBTypePostgres:
		return postgres.NewPostgresStore(config)
	case store.DBTypeSQLite:
		return sqlite.NewSQLiteStore(config)
	default:
		return nil, fmt.Errorf("unable to determine database type from DSN: %s", config.DSN)
	}
}
