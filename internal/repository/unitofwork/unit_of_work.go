package unitofwork

import (
	"context"

	"eviden-bot/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	SessionRepository() contract.SessionRepository
	SegmentRepository() contract.SegmentRepository
	DesignatorRepository() contract.DesignatorRepository
	ReportRepository() contract.ReportRepository
}
