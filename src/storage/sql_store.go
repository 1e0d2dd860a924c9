package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"game-data-server/src/codec"
	"game-data-server/src/helpers"
	"game-data-server/src/logger"
	"game-data-server/src/models"
)

// ErrNotSeeded is returned when the store has never been written.
var ErrNotSeeded = errors.New("live config has not been seeded")

// -----------------------------------------------------------------------------

// dialect carries what differs between the SQL backends.
type dialect struct {
	// table returns the qualified name of a table.
	table func(name string) string
	// bind returns the placeholder for the n-th (1-based) argument.
	bind func(n int) string
}

// sqlStore is the live config store shared by the SQL backends. The top-level
// settings live in a single row; every strategy is one row holding its codec
// payload, so reads go back through the registry.
type sqlStore struct {
	DB       *sql.DB
	Registry *codec.Registry
	Logger   *logger.Logger
	dialect  dialect
}

// -----------------------------------------------------------------------------

func (s *sqlStore) createTables() error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id INTEGER PRIMARY KEY,
			autotrader_on BOOLEAN NOT NULL,
			min_gp BIGINT NOT NULL,
			updated_at BIGINT NOT NULL
		);
	`, s.dialect.table("live_config"))
	if _, err := s.DB.Exec(query); err != nil {
		return fmt.Errorf("failed to create live_config: %w", err)
	}

	query = fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			position INTEGER PRIMARY KEY,
			payload TEXT NOT NULL
		);
	`, s.dialect.table("strat_configs"))
	if _, err := s.DB.Exec(query); err != nil {
		return fmt.Errorf("failed to create strat_configs: %w", err)
	}

	return nil
}

// -----------------------------------------------------------------------------

func (s *sqlStore) SeedIfEmpty(ctx context.Context, cfg models.MLiveConfig) (bool, error) {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	var count int
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s", s.dialect.table("live_config"))
	if err := tx.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to count live_config rows: %w", err)
	}
	if count > 0 {
		return false, nil
	}

	if err := s.write(ctx, tx, cfg); err != nil {
		return false, err
	}
	if err := tx.Commit(); err != nil {
		return false, err
	}
	return true, nil
}

// -----------------------------------------------------------------------------

func (s *sqlStore) SaveLiveConfig(ctx context.Context, cfg models.MLiveConfig) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := s.write(ctx, tx, cfg); err != nil {
		return err
	}
	return tx.Commit()
}

// -----------------------------------------------------------------------------

// write replaces the stored config inside tx. Strategies are encoded before
// anything is deleted so an unencodable config leaves the store untouched.
func (s *sqlStore) write(ctx context.Context, tx *sql.Tx, cfg models.MLiveConfig) error {
	payloads := make([]string, 0, len(cfg.StratConfigs))
	for i, strat := range cfg.StratConfigs {
		data, err := s.Registry.EncodeStratConfig(strat)
		if err != nil {
			return fmt.Errorf("strat config %d: %w", i, err)
		}
		payloads = append(payloads, string(data))
	}

	liveTable := s.dialect.table("live_config")
	stratTable := s.dialect.table("strat_configs")

	if _, err := tx.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s", liveTable)); err != nil {
		return fmt.Errorf("failed to clear live_config: %w", err)
	}
	if _, err := tx.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s", stratTable)); err != nil {
		return fmt.Errorf("failed to clear strat_configs: %w", err)
	}

	query := fmt.Sprintf("INSERT INTO %s (id, autotrader_on, min_gp, updated_at) VALUES (%s)",
		liveTable, s.placeholders(4))
	if _, err := tx.ExecContext(ctx, query, 1, cfg.AutotraderOn, cfg.TopLevelConfig.MinGp, time.Now().UTC().Unix()); err != nil {
		return fmt.Errorf("failed to insert live_config: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf("INSERT INTO %s (position, payload) VALUES (%s)",
		stratTable, s.placeholders(2)))
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, payload := range payloads {
		if _, err := stmt.ExecContext(ctx, i, payload); err != nil {
			return fmt.Errorf("failed to insert strat config %d: %w", i, err)
		}
	}

	return nil
}

// -----------------------------------------------------------------------------

// LoadLiveConfig reads the stored config. Database failures are reported as
// CONFIG_UNAVAILABLE; a stored strategy the registry cannot decode keeps the
// codec's error kind.
func (s *sqlStore) LoadLiveConfig(ctx context.Context) (models.MLiveConfig, error) {
	var cfg models.MLiveConfig

	query := fmt.Sprintf("SELECT autotrader_on, min_gp FROM %s WHERE id = %s",
		s.dialect.table("live_config"), s.dialect.bind(1))
	err := s.DB.QueryRowContext(ctx, query, 1).Scan(&cfg.AutotraderOn, &cfg.TopLevelConfig.MinGp)
	if errors.Is(err, sql.ErrNoRows) {
		return models.MLiveConfig{}, helpers.NewConfigUnavailable(ErrNotSeeded)
	}
	if err != nil {
		return models.MLiveConfig{}, helpers.NewConfigUnavailable(err)
	}

	rows, err := s.DB.QueryContext(ctx, fmt.Sprintf("SELECT position, payload FROM %s ORDER BY position",
		s.dialect.table("strat_configs")))
	if err != nil {
		return models.MLiveConfig{}, helpers.NewConfigUnavailable(err)
	}
	defer rows.Close()

	cfg.StratConfigs = []models.StratConfig{}
	for rows.Next() {
		var position int
		var payload string
		if err := rows.Scan(&position, &payload); err != nil {
			return models.MLiveConfig{}, helpers.NewConfigUnavailable(err)
		}

		strat, err := s.Registry.DecodeStratConfig([]byte(payload))
		if err != nil {
			return models.MLiveConfig{}, fmt.Errorf("stored strat config %d: %w", position, err)
		}
		cfg.StratConfigs = append(cfg.StratConfigs, strat)
	}
	if err := rows.Err(); err != nil {
		return models.MLiveConfig{}, helpers.NewConfigUnavailable(err)
	}

	return cfg, nil
}

// -----------------------------------------------------------------------------

func (s *sqlStore) placeholders(n int) string {
	binds := make([]string, n)
	for i := range binds {
		binds[i] = s.dialect.bind(i + 1)
	}
	return strings.Join(binds, ", ")
}

// -----------------------------------------------------------------------------

func (s *sqlStore) Close() error {
	if s.DB != nil {
		return s.DB.Close()
	}
	return nil
}
