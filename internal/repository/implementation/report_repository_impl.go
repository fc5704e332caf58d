package implementation

import (
	"context"

	"eviden-bot/internal/entity"
	"eviden-bot/internal/mapper"
	"eviden-bot/internal/model"
	"eviden-bot/internal/repository/contract"
	"eviden-bot/internal/repository/scope"
	"eviden-bot/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReportRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ReportMapper
}

func NewReportRepository(db *gorm.DB) contract.ReportRepository {
	return &ReportRepositoryImpl{
		db:     db,
		mapper: mapper.NewReportMapper(),
	}
}

func (r *ReportRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ReportRepositoryImpl) Create(ctx context.Context, report *entity.Report) error {
	if report.Id == uuid.Nil {
		report.Id = uuid.New()
	}
	m := r.mapper.ToModel(report)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*report = *r.mapper.ToEntity(m)
	return nil
}

func (r *ReportRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Report, error) {
	var models []*model.RekapData
	query := r.applySpecifications(r.db.WithContext(ctx).Scopes(scope.OrderByCreatedDesc), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.Report, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}

func (r *ReportRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.RekapData{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
