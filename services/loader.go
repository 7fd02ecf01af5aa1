package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"catalog-dashboard/storage"
	"catalog-dashboard/utils"
)

// LoadError is returned for any failure to produce the base dataset:
// unreadable source, malformed content or missing required columns.
type LoadError struct {
	Source  string
	Missing []string
	Err     error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Load reads and cleans the whole source.
func Load(ctx context.Context, src storage.TitleSource, cleaner *Cleaner) (*Dataset, error) {
	raw, err := src.ReadRaw(ctx)
	if err != nil {
		le := &LoadError{Source: src.Name(), Err: err}
		var mce *storage.MissingColumnsError
		if errors.As(err, &mce) {
			le.Missing = mce.Missing
		}
		return nil, le
	}
	return NewDataset(src.Name(), cleaner.Clean(raw)), nil
}

// Store owns the cached base dataset. The first Dataset call loads it;
// later calls return the same instance until Reload succeeds.
type Store struct {
	mu      sync.RWMutex
	source  storage.TitleSource
	cleaner *Cleaner
	logger  *utils.Logger
	ds      *Dataset
}

// NewStore creates an empty store over src.
func NewStore(src storage.TitleSource, cleaner *Cleaner, logger *utils.Logger) *Store {
	return &Store{source: src, cleaner: cleaner, logger: logger}
}

// Dataset returns the cached dataset, loading it on first use.
func (s *Store) Dataset(ctx context.Context) (*Dataset, error) {
	s.mu.RLock()
	ds := s.ds
	s.mu.RUnlock()
	if ds != nil {
		return ds, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ds != nil {
		return s.ds, nil
	}
	return s.loadLocked(ctx)
}

// Reload re-reads the source. On failure the previous dataset stays cached.
func (s *Store) Reload(ctx context.Context) (*Dataset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked(ctx)
}

// Loaded reports whether a dataset is cached.
func (s *Store) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ds != nil
}

func (s *Store) loadLocked(ctx context.Context) (*Dataset, error) {
	start := time.Now()
	s.logger.Info("[loader] Loading catalog from %s", s.source.Name())

	ds, err := Load(ctx, s.source, s.cleaner)
	if err != nil {
		observeLoad(false)
		s.logger.Error("[loader] %v", err)
		return nil, err
	}

	s.ds = ds
	observeLoad(true)
	datasetRecords.Set(float64(ds.Len()))
	s.logger.Info("[loader] Loaded %d titles in %v", ds.Len(), time.Since(start).Round(time.Millisecond))
	return ds, nil
}
