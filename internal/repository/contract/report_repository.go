package contract

import (
	"context"

	"eviden-bot/internal/entity"
	"eviden-bot/internal/repository/specification"
)

// ReportRepository is append-only: reports are never updated or deleted.
type ReportRepository interface {
	Create(ctx context.Context, report *entity.Report) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Report, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
