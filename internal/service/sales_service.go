package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/newagesw/sales-bi/backend-go/internal/analytics"
	"github.com/newagesw/sales-bi/backend-go/internal/cache"
	"github.com/newagesw/sales-bi/backend-go/internal/domain"
	"github.com/newagesw/sales-bi/backend-go/internal/ingest"
	"github.com/newagesw/sales-bi/backend-go/internal/storage"
)

// DatasetPersister stores the canonical record collection durably. It is
// optional; without it the dataset lives only in memory until the next
// upload.
type DatasetPersister interface {
	Replace(ctx context.Context, records []domain.ShipmentRecord) error
}

// SalesService orchestrates the analytical engine, the response cache, the
// upload archive and the durable store behind the sales endpoints.
type SalesService struct {
	engine  *analytics.Engine
	cache   cache.DashboardCache
	archive storage.ObjectStorage
	repo    DatasetPersister
	logger  zerolog.Logger
}

func NewSalesService(
	engine *analytics.Engine,
	dashCache cache.DashboardCache,
	archive storage.ObjectStorage,
	repo DatasetPersister,
	logger zerolog.Logger,
) *SalesService {
	return &SalesService{
		engine:  engine,
		cache:   dashCache,
		archive: archive,
		repo:    repo,
		logger:  logger.With().Str("component", "sales_service").Logger(),
	}
}

// Dashboard returns the derived dashboard payload for one filter selection,
// served from the response cache when possible. Cache failures degrade to a
// fresh computation.
func (s *SalesService) Dashboard(ctx context.Context, f domain.FilterState) (domain.DashboardData, error) {
	version := s.engine.Version()

	if cached, ok, err := s.cache.Get(ctx, version, f); err != nil {
		s.logger.Warn().Err(err).Msg("dashboard cache read failed")
	} else if ok {
		return *cached, nil
	}

	data := s.engine.BuildDashboard(f)

	if err := s.cache.Set(ctx, version, f, &data); err != nil {
		s.logger.Warn().Err(err).Msg("dashboard cache write failed")
	}
	return data, nil
}

// FilterOptions lists the distinct dimension values of the current dataset.
func (s *SalesService) FilterOptions() domain.FilterOptions {
	return s.engine.FilterOptions()
}

// IngestUpload validates and normalizes an uploaded dataset file, archives
// the raw bytes, then replaces the active dataset. Returns the number of
// records loaded.
func (s *SalesService) IngestUpload(ctx context.Context, filename string, data []byte, contentType string) (int, error) {
	records, err := ingest.ParseFile(filename, bytes.NewReader(data))
	if err != nil {
		return 0, err
	}

	// Archive before replacing so a bad load can be replayed from the
	// original file.
	key := fmt.Sprintf("%s/%s", time.Now().UTC().Format("2006-01-02"), filename)
	if err := s.archive.UploadObject(ctx, key, data, contentType); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("upload archive failed")
	}

	if err := s.ReplaceDataset(ctx, records); err != nil {
		return 0, err
	}
	return len(records), nil
}

// ReplaceDataset installs a new record collection: durable store first,
// then the in-memory engine, then the response cache sweep.
func (s *SalesService) ReplaceDataset(ctx context.Context, records []domain.ShipmentRecord) error {
	if s.repo != nil {
		if err := s.repo.Replace(ctx, records); err != nil {
			return fmt.Errorf("failed to persist dataset: %w", err)
		}
	}

	s.engine.Replace(records)

	if err := s.cache.InvalidateAll(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("dashboard cache invalidation failed")
	}
	return nil
}
