package storage

import (
	"context"
	"fmt"
	"sync"

	"game-data-server/src/codec"
	"game-data-server/src/helpers"
	"game-data-server/src/models"
)

// MemoryStore keeps the live config in process. Strategies are held in their
// encoded form, like the SQL backends, so a load always decodes through the
// registry.
type MemoryStore struct {
	Registry *codec.Registry

	mu           sync.RWMutex
	seeded       bool
	autotraderOn bool
	topLevel     models.MTopLevelConfig
	payloads     [][]byte
}

func NewMemoryStore(registry *codec.Registry) *MemoryStore {
	return &MemoryStore{Registry: registry}
}

// -----------------------------------------------------------------------------

func (m *MemoryStore) Initialize() error { return nil }

func (m *MemoryStore) Close() error { return nil }

// -----------------------------------------------------------------------------

func (m *MemoryStore) SeedIfEmpty(ctx context.Context, cfg models.MLiveConfig) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.seeded {
		return false, nil
	}
	if err := m.write(cfg); err != nil {
		return false, err
	}
	return true, nil
}

func (m *MemoryStore) SaveLiveConfig(ctx context.Context, cfg models.MLiveConfig) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.write(cfg)
}

// -----------------------------------------------------------------------------

func (m *MemoryStore) write(cfg models.MLiveConfig) error {
	payloads := make([][]byte, 0, len(cfg.StratConfigs))
	for i, strat := range cfg.StratConfigs {
		data, err := m.Registry.EncodeStratConfig(strat)
		if err != nil {
			return fmt.Errorf("strat config %d: %w", i, err)
		}
		payloads = append(payloads, data)
	}

	m.seeded = true
	m.autotraderOn = cfg.AutotraderOn
	m.topLevel = cfg.TopLevelConfig
	m.payloads = payloads
	return nil
}

// -----------------------------------------------------------------------------

func (m *MemoryStore) LoadLiveConfig(ctx context.Context) (models.MLiveConfig, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if !m.seeded {
		return models.MLiveConfig{}, helpers.NewConfigUnavailable(ErrNotSeeded)
	}

	cfg := models.MLiveConfig{
		AutotraderOn:   m.autotraderOn,
		TopLevelConfig: m.topLevel,
		StratConfigs:   make([]models.StratConfig, 0, len(m.payloads)),
	}
	for i, payload := range m.payloads {
		strat, err := m.Registry.DecodeStratConfig(payload)
		if err != nil {
			return models.MLiveConfig{}, fmt.Errorf("stored strat config %d: %w", i, err)
		}
		cfg.StratConfigs = append(cfg.StratConfigs, strat)
	}
	return cfg, nil
}
