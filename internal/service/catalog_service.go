package service

import (
	"context"

	"eviden-bot/internal/entity"
	"eviden-bot/internal/pkg/apperror"
	"eviden-bot/internal/pkg/logger"
	"eviden-bot/internal/repository/memory"
	"eviden-bot/internal/repository/specification"
	"eviden-bot/internal/repository/unitofwork"
)

type ICatalogService interface {
	ListSegments(ctx context.Context) ([]*entity.Segment, error)
	ListDesignators(ctx context.Context) ([]*entity.Designator, error)
	GetSegment(ctx context.Context, id int64) (*entity.Segment, error)
	GetDesignator(ctx context.Context, code string) (*entity.Designator, error)
}

type catalogService struct {
	uowFactory unitofwork.RepositoryFactory
	cache      *memory.CatalogCache
	logger     logger.ILogger
}

// NewCatalogService serves the segment and designator catalogs. A nil cache disables caching.
func NewCatalogService(uowFactory unitofwork.RepositoryFactory, cache *memory.CatalogCache, logger logger.ILogger) ICatalogService {
	return &catalogService{
		uowFactory: uowFactory,
		cache:      cache,
		logger:     logger,
	}
}

func (s *catalogService) ListSegments(ctx context.Context) ([]*entity.Segment, error) {
	if s.cache != nil {
		if segments, found := s.cache.GetSegments(); found {
			return segments, nil
		}
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	segments, err := uow.SegmentRepository().FindAll(ctx)
	if err != nil {
		s.logger.Error("CATALOG", "Failed to load segments", map[string]interface{}{"error": err.Error()})
		return nil, apperror.NewDataUnavailable("segment", err)
	}
	// An empty catalog is not cached so a freshly seeded table shows up immediately.
	if len(segments) == 0 {
		s.logger.Warn("CATALOG", "Segment catalog is empty", nil)
		return nil, apperror.NewDataUnavailable("segment", nil)
	}

	if s.cache != nil {
		s.cache.SaveSegments(segments)
	}
	return segments, nil
}

func (s *catalogService) ListDesignators(ctx context.Context) ([]*entity.Designator, error) {
	if s.cache != nil {
		if designators, found := s.cache.GetDesignators(); found {
			return designators, nil
		}
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	designators, err := uow.DesignatorRepository().FindAll(ctx)
	if err != nil {
		s.logger.Error("CATALOG", "Failed to load designators", map[string]interface{}{"error": err.Error()})
		return nil, apperror.NewDataUnavailable("designator", err)
	}
	if len(designators) == 0 {
		s.logger.Warn("CATALOG", "Designator catalog is empty", nil)
		return nil, apperror.NewDataUnavailable("designator", nil)
	}

	if s.cache != nil {
		s.cache.SaveDesignators(designators)
	}
	return designators, nil
}

func (s *catalogService) GetSegment(ctx context.Context, id int64) (*entity.Segment, error) {
	if s.cache != nil {
		if segments, found := s.cache.GetSegments(); found {
			for _, seg := range segments {
				if seg.Id == id {
					return seg, nil
				}
			}
		}
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	segment, err := uow.SegmentRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		s.logger.Error("CATALOG", "Failed to look up segment", map[string]interface{}{"segment_id": id, "error": err.Error()})
		return nil, apperror.NewDataUnavailable("segment", err)
	}
	if segment == nil {
		return nil, apperror.NewNotFound("segment", id)
	}
	return segment, nil
}

func (s *catalogService) GetDesignator(ctx context.Context, code string) (*entity.Designator, error) {
	if s.cache != nil {
		if designators, found := s.cache.GetDesignators(); found {
			for _, d := range designators {
				if d.Code == code {
					return d, nil
				}
			}
		}
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	designator, err := uow.DesignatorRepository().FindOne(ctx, specification.ByID{ID: code})
	if err != nil {
		s.logger.Error("CATALOG", "Failed to look up designator", map[string]interface{}{"designator": code, "error": err.Error()})
		return nil, apperror.NewDataUnavailable("designator", err)
	}
	if designator == nil {
		return nil, apperror.NewNotFound("designator", code)
	}
	return designator, nil
}
