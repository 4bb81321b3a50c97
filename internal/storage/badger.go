// Package storage provides BadgerDB-based persistence for completed cases
package storage

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/timshannon/badgerhold/v4"

	"github.com/bobmcallan/council/internal/common"
	"github.com/bobmcallan/council/internal/models"
)

// BadgerDB wraps badgerhold for typed storage
type BadgerDB struct {
	store  *badgerhold.Store
	logger *common.Logger
}

// NewBadgerDB creates a new BadgerDB instance
func NewBadgerDB(logger *common.Logger, path string) (*BadgerDB, error) {
	opts := badgerhold.DefaultOptions
	opts.Dir = path
	opts.ValueDir = path
	opts.Logger = nil // Disable badger's internal logging

	store, err := badgerhold.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger store: %w", err)
	}

	logger.Debug().Str("path", path).Msg("BadgerDB opened")

	return &BadgerDB{
		store:  store,
		logger: logger,
	}, nil
}

// Close closes the database
func (db *BadgerDB) Close() error {
	if db.store != nil {
		return db.store.Close()
	}
	return nil
}

// verdictStorage implements VerdictStore using BadgerDB
type verdictStorage struct {
	db     *BadgerDB
	logger *common.Logger
}

func newVerdictStorage(db *BadgerDB, logger *common.Logger) *verdictStorage {
	return &verdictStorage{db: db, logger: logger}
}

func (s *verdictStorage) SaveCase(ctx context.Context, c *models.Case) error {
	if c.ID == "" {
		return fmt.Errorf("case has no ID")
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}

	err := s.db.store.Upsert(c.ID, c)
	if err != nil {
		return fmt.Errorf("failed to save case: %w", err)
	}
	s.logger.Debug().Str("id", c.ID).Str("ticker", c.Ticker).Msg("Case saved")
	return nil
}

func (s *verdictStorage) GetCase(ctx context.Context, id string) (*models.Case, error) {
	var c models.Case
	err := s.db.store.Get(id, &c)
	if err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, fmt.Errorf("case '%s' not found", id)
		}
		return nil, fmt.Errorf("failed to get case: %w", err)
	}
	return &c, nil
}

func (s *verdictStorage) ListCases(ctx context.Context, ticker string, limit int) ([]*models.Case, error) {
	var query *badgerhold.Query
	if ticker != "" {
		query = badgerhold.Where("Ticker").Eq(ticker)
	}

	var cases []models.Case
	err := s.db.store.Find(&cases, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list cases: %w", err)
	}

	sort.Slice(cases, func(i, j int) bool {
		return cases[i].CreatedAt.After(cases[j].CreatedAt)
	})

	if limit > 0 && len(cases) > limit {
		cases = cases[:limit]
	}

	result := make([]*models.Case, len(cases))
	for i := range cases {
		result[i] = &cases[i]
	}
	return result, nil
}
