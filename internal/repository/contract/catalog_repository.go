package contract

import (
	"context"

	"eviden-bot/internal/entity"
	"eviden-bot/internal/repository/specification"
)

type SegmentRepository interface {
	Create(ctx context.Context, segment *entity.Segment) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Segment, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Segment, error)
}

type DesignatorRepository interface {
	Create(ctx context.Context, designator *entity.Designator) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Designator, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Designator, error)
}
