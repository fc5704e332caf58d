package service

import (
	"context"
	"errors"

	"eviden-bot/internal/entity"
	"eviden-bot/internal/pkg/apperror"
	"eviden-bot/internal/pkg/logger"
	"eviden-bot/internal/repository/contract"
	"eviden-bot/internal/repository/unitofwork"
)

type ISessionService interface {
	// Load returns the stored session, or a fresh one at the start stage when the user has none.
	Load(ctx context.Context, userId int64) (*entity.Session, error)
	// Save persists the session with an optimistic version check and advances session.Version.
	Save(ctx context.Context, session *entity.Session) error
}

type sessionService struct {
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
}

func NewSessionService(uowFactory unitofwork.RepositoryFactory, logger logger.ILogger) ISessionService {
	return &sessionService{
		uowFactory: uowFactory,
		logger:     logger,
	}
}

func (s *sessionService) Load(ctx context.Context, userId int64) (*entity.Session, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.SessionRepository().FindByUserId(ctx, userId)
	if err != nil {
		s.logger.Error("SESSION", "Failed to read session", map[string]interface{}{"user_id": userId, "error": err.Error()})
		return nil, apperror.NewSessionRead(userId, err)
	}
	if session == nil {
		return entity.NewSession(userId), nil
	}

	// Rows written by hand or by an older deployment may not match the stage.
	if err := session.Validate(); err != nil {
		s.logger.Error("SESSION", "Stored session is inconsistent", map[string]interface{}{
			"user_id": userId,
			"stage":   session.Stage.String(),
			"version": session.Version,
			"error":   err.Error(),
		})
		return nil, apperror.NewSessionRead(userId, err)
	}
	return session, nil
}

func (s *sessionService) Save(ctx context.Context, session *entity.Session) error {
	if err := session.Validate(); err != nil {
		return apperror.NewSessionWrite(session.UserId, err)
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	version := session.Version
	if err := uow.SessionRepository().Save(ctx, session); err != nil {
		if errors.Is(err, contract.ErrVersionConflict) {
			s.logger.Warn("SESSION", "Session changed concurrently", map[string]interface{}{"user_id": session.UserId, "version": version})
			return apperror.NewSessionConflict(session.UserId, version)
		}
		s.logger.Error("SESSION", "Failed to write session", map[string]interface{}{"user_id": session.UserId, "error": err.Error()})
		return apperror.NewSessionWrite(session.UserId, err)
	}

	s.logger.Debug("SESSION", "Session saved", map[string]interface{}{
		"user_id": session.UserId,
		"stage":   session.Stage.String(),
		"version": session.Version,
	})
	return nil
}

