package implementation

import (
	"context"
	"errors"

	"eviden-bot/internal/entity"
	"eviden-bot/internal/mapper"
	"eviden-bot/internal/model"
	"eviden-bot/internal/repository/contract"
	"eviden-bot/internal/repository/scope"
	"eviden-bot/internal/repository/specification"

	"gorm.io/gorm"
)

type DesignatorRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.CatalogMapper
}

func NewDesignatorRepository(db *gorm.DB) contract.DesignatorRepository {
	return &DesignatorRepositoryImpl{
		db:     db,
		mapper: mapper.NewCatalogMapper(),
	}
}

func (r *DesignatorRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *DesignatorRepositoryImpl) Create(ctx context.Context, designator *entity.Designator) error {
	m := r.mapper.DesignatorToModel(designator)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*designator = *r.mapper.DesignatorToEntity(m)
	return nil
}

func (r *DesignatorRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Designator, error) {
	var m model.Designator
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.DesignatorToEntity(&m), nil
}

func (r *DesignatorRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Designator, error) {
	var models []*model.Designator
	query := r.applySpecifications(r.db.WithContext(ctx).Scopes(scope.OrderByIdAsc), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.DesignatorsToEntities(models), nil
}
