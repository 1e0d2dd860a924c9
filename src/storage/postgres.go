package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"game-data-server/src/codec"
	"game-data-server/src/logger"
	"game-data-server/src/models"

	_ "github.com/lib/pq"
)

// -----------------------------------------------------------------------------

type PostgresDB struct {
	sqlStore
	Config *models.MConfig
	Schema string
}

// -----------------------------------------------------------------------------

// NewPostgresDB uses the configured schema, or the executable's name when
// none is set.
func NewPostgresDB(cfg *models.MConfig, registry *codec.Registry, log *logger.Logger) (*PostgresDB, error) {
	schema := cfg.Storage.Schema
	if schema == "" {
		exe, err := os.Executable()
		if err != nil {
			return nil, fmt.Errorf("failed to get executable name: %w", err)
		}
		schema = filepath.Base(exe)
		schema = strings.TrimSuffix(schema, filepath.Ext(schema))
	}

	d := &PostgresDB{
		Config: cfg,
		Schema: schema,
		sqlStore: sqlStore{
			Registry: registry,
			Logger:   log,
		},
	}
	d.dialect = dialect{
		table: func(name string) string { return fmt.Sprintf(`"%s"."%s"`, d.Schema, name) },
		bind:  func(n int) string { return fmt.Sprintf("$%d", n) },
	}
	return d, nil
}

// -----------------------------------------------------------------------------

func (d *PostgresDB) Initialize() error {
	dsn := d.Config.Storage.DBConnectionString
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return err
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return err
	}

	d.DB = db

	// Create Schema
	if _, err := d.DB.Exec(fmt.Sprintf(`CREATE SCHEMA IF NOT EXISTS "%s"`, d.Schema)); err != nil {
		return fmt.Errorf("failed to create schema %s: %w", d.Schema, err)
	}

	if err := d.createTables(); err != nil {
		return err
	}

	d.Logger.Info("PostgresDB initialized successfully (Schema: %s)", d.Schema)
	return nil
}
