package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"eviden-bot/internal/dto"
	"eviden-bot/internal/entity"
	"eviden-bot/internal/pkg/apperror"
	"eviden-bot/internal/pkg/logger"
	"eviden-bot/internal/repository/contract"
	"eviden-bot/internal/repository/unitofwork"

	"github.com/go-playground/validator/v10"
)

type IReportService interface {
	// Finalize writes the report and resets the session in one transaction.
	// On success session is replaced by its persisted reset state.
	Finalize(ctx context.Context, session *entity.Session) (*entity.Report, error)
}

type reportService struct {
	uowFactory unitofwork.RepositoryFactory
	validate   *validator.Validate
	publisher  IPublisherService
	logger     logger.ILogger
	clock      func() time.Time
}

// NewReportService builds the finalizer. publisher may be nil.
func NewReportService(uowFactory unitofwork.RepositoryFactory, publisher IPublisherService, logger logger.ILogger) IReportService {
	return &reportService{
		uowFactory: uowFactory,
		validate:   validator.New(),
		publisher:  publisher,
		logger:     logger,
		clock:      time.Now,
	}
}

func (s *reportService) Finalize(ctx context.Context, session *entity.Session) (*entity.Report, error) {
	f := session.Fields
	draft := dto.ReportDraft{
		TelegramUserId: session.UserId,
		SegmentId:      f.SegmentId,
		DesignatorCode: f.DesignatorId,
		PhotoRef:       f.PhotoRef,
		Description:    f.Description,
		Latitude:       f.Latitude,
		Longitude:      f.Longitude,
	}
	if err := s.validate.Struct(draft); err != nil {
		s.logger.Warn("REPORT", "Report draft is incomplete", map[string]interface{}{"user_id": session.UserId, "error": err.Error()})
		return nil, apperror.NewIncompleteReport(err)
	}

	report := &entity.Report{
		TelegramUserId: session.UserId,
		SegmentId:      *f.SegmentId,
		DesignatorCode: *f.DesignatorId,
		Description:    *f.Description,
		Latitude:       *f.Latitude,
		Longitude:      *f.Longitude,
		PhotoRef:       *f.PhotoRef,
		CreatedAt:      s.clock(),
	}

	reset := session.Clone()
	reset.Reset()

	err := unitofwork.Transact(ctx, s.uowFactory, func(uow unitofwork.UnitOfWork) error {
		if err := uow.ReportRepository().Create(ctx, report); err != nil {
			return fmt.Errorf("insert report: %w", err)
		}
		if err := uow.SessionRepository().Save(ctx, reset); err != nil {
			return fmt.Errorf("reset session: %w", err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, contract.ErrVersionConflict) {
			s.logger.Warn("REPORT", "Session changed while finalizing", map[string]interface{}{"user_id": session.UserId, "version": session.Version})
			return nil, apperror.NewSessionConflict(session.UserId, session.Version)
		}
		s.logger.Error("REPORT", "Failed to finalize report", map[string]interface{}{"user_id": session.UserId, "error": err.Error()})
		return nil, apperror.NewFinalizeWrite(err)
	}

	*session = *reset

	s.logger.Info("REPORT", "Report saved", map[string]interface{}{
		"report_id":  report.Id.String(),
		"user_id":    report.TelegramUserId,
		"segment_id": report.SegmentId,
		"designator": report.DesignatorCode,
	})

	if s.publisher != nil {
		if err := s.publisher.PublishReportSubmitted(ctx, report); err != nil {
			s.logger.Warn("REPORT", "Failed to publish report event", map[string]interface{}{"report_id": report.Id.String(), "error": err.Error()})
		}
	}
	return report, nil
}
