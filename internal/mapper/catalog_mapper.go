package mapper

import (
	"eviden-bot/internal/entity"
	"eviden-bot/internal/model"
)

type CatalogMapper struct{}

func NewCatalogMapper() *CatalogMapper {
	return &CatalogMapper{}
}

func (m *CatalogMapper) SegmentToEntity(s *model.SegmentasiJalur) *entity.Segment {
	if s == nil {
		return nil
	}
	return &entity.Segment{
		Id:          s.Id,
		DisplayName: s.NamaSegmen,
	}
}

func (m *CatalogMapper) SegmentsToEntities(models []*model.SegmentasiJalur) []*entity.Segment {
	entities := make([]*entity.Segment, len(models))
	for i, s := range models {
		entities[i] = m.SegmentToEntity(s)
	}
	return entities
}

func (m *CatalogMapper) SegmentToModel(s *entity.Segment) *model.SegmentasiJalur {
	if s == nil {
		return nil
	}
	return &model.SegmentasiJalur{
		Id:         s.Id,
		NamaSegmen: s.DisplayName,
	}
}

func (m *CatalogMapper) DesignatorToEntity(d *model.Designator) *entity.Designator {
	if d == nil {
		return nil
	}
	return &entity.Designator{
		Code:        d.Id,
		DisplayName: d.KodeDesignator,
		Description: d.UraianPekerjaan,
	}
}

func (m *CatalogMapper) DesignatorsToEntities(models []*model.Designator) []*entity.Designator {
	entities := make([]*entity.Designator, len(models))
	for i, d := range models {
		entities[i] = m.DesignatorToEntity(d)
	}
	return entities
}

func (m *CatalogMapper) DesignatorToModel(d *entity.Designator) *model.Designator {
	if d == nil {
		return nil
	}
	return &model.Designator{
		Id:              d.Code,
		KodeDesignator:  d.DisplayName,
		UraianPekerjaan: d.Description,
	}
}
