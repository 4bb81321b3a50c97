package storage

import (
	"fmt"

	"github.com/bobmcallan/council/internal/common"
	"github.com/bobmcallan/council/internal/interfaces"
)

// Manager implements interfaces.StorageManager over a single BadgerDB area.
type Manager struct {
	db       *BadgerDB
	verdicts *verdictStorage
	logger   *common.Logger
}

// NewManager opens the verdict history store.
func NewManager(logger *common.Logger, config *common.Config) (*Manager, error) {
	db, err := NewBadgerDB(logger, config.Storage.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to create verdict store: %w", err)
	}

	logger.Info().Str("path", config.Storage.Path).Msg("Storage manager initialized")

	return &Manager{
		db:       db,
		verdicts: newVerdictStorage(db, logger),
		logger:   logger,
	}, nil
}

func (m *Manager) VerdictStore() interfaces.VerdictStore {
	return m.verdicts
}

func (m *Manager) Close() error {
	return m.db.Close()
}
