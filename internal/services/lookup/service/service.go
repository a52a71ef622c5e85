// Package service provides the lookup service implementation
package service

import (
	"context"

	"bighole/internal/modkit/repokit"
	perr "bighole/internal/platform/errors"
	"bighole/internal/platform/logger"
	"bighole/internal/services/lookup/domain"
	"bighole/internal/services/lookup/repo"
	"bighole/internal/services/lookup/scan"

	"bighole/internal/core/keynorm"
)

// Backend selects which implementation answers search calls
const (
	BackendFiles    = "files"
	BackendPostgres = "postgres"
)

// Config for the lookup service
type Config struct {
	Backend    string
	MaxResults int
}

// Service implements domain.SearcherPort over the configured backend
type Service struct {
	engine  *scan.Engine
	storage repo.Storage
	log     *logger.Logger
	cfg     Config
}

// New constructs the lookup service
// db may be nil when the backend is files, the engine is always required
func New(db repokit.TxRunner, binder repokit.Binder[repo.Storage], engine *scan.Engine, cfg Config) *Service {
	if cfg.Backend == "" {
		cfg.Backend = BackendFiles
	}
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = 100
	}
	s := &Service{
		engine: engine,
		log:    logger.Named("lookup"),
		cfg:    cfg,
	}
	if db != nil && binder != nil {
		s.storage = binder.Bind(db)
	}
	return s
}

// Search implements domain.SearcherPort
// A failure in the indexed backend degrades to an empty result with a log
// entry, matching the scanner's partial-results-over-failure policy
func (s *Service) Search(ctx context.Context, q domain.Query) ([]domain.WireRecord, error) {
	if !q.Kind.Valid() {
		return nil, perr.InvalidArgf("unknown search kind %q", q.Kind)
	}

	if s.cfg.Backend == BackendPostgres && s.storage != nil {
		vs := keynorm.Variants(q.Term, q.Kind)
		if vs.Empty() {
			return []domain.WireRecord{}, nil
		}
		recs, err := s.storage.FindByKey(ctx, vs, s.cfg.MaxResults)
		if err != nil {
			s.log.Error().Err(err).Str("kind", string(q.Kind)).Msg("indexed lookup failed")
			return []domain.WireRecord{}, nil
		}
		out := make([]domain.WireRecord, 0, len(recs))
		for _, r := range recs {
			out = append(out, domain.Wire(r))
		}
		return out, nil
	}

	return s.engine.Search(ctx, q)
}
