package mapper

import (
	"eviden-bot/internal/entity"
	"eviden-bot/internal/model"
)

type ReportMapper struct{}

func NewReportMapper() *ReportMapper {
	return &ReportMapper{}
}

func (m *ReportMapper) ToEntity(r *model.RekapData) *entity.Report {
	if r == nil {
		return nil
	}
	return &entity.Report{
		Id:             r.Id,
		TelegramUserId: r.TelegramUserId,
		SegmentId:      r.SegmentasiId,
		DesignatorCode: r.DesignatorId,
		Description:    r.Keterangan,
		Latitude:       r.LokasiLatitude,
		Longitude:      r.LokasiLongitude,
		PhotoRef:       r.FotoUrl,
		CreatedAt:      r.CreatedAt,
	}
}

func (m *ReportMapper) ToModel(r *entity.Report) *model.RekapData {
	if r == nil {
		return nil
	}
	return &model.RekapData{
		Id:              r.Id,
		TelegramUserId:  r.TelegramUserId,
		SegmentasiId:    r.SegmentId,
		DesignatorId:    r.DesignatorCode,
		Keterangan:      r.Description,
		LokasiLatitude:  r.Latitude,
		LokasiLongitude: r.Longitude,
		FotoUrl:         r.PhotoRef,
		CreatedAt:       r.CreatedAt,
	}
}
