package mapper

import (
	"time"

	"eviden-bot/internal/entity"
	"eviden-bot/internal/model"

	"gorm.io/datatypes"
)

type SessionMapper struct{}

func NewSessionMapper() *SessionMapper {
	return &SessionMapper{}
}

func (m *SessionMapper) ToEntity(s *model.BotSession) *entity.Session {
	if s == nil {
		return nil
	}

	data := s.Data.Data()

	var updatedAt *time.Time
	if !s.UpdatedAt.IsZero() {
		t := s.UpdatedAt
		updatedAt = &t
	}

	return &entity.Session{
		UserId: s.UserId,
		Stage:  entity.Stage(s.State),
		Fields: entity.SessionFields{
			SegmentId:    data.SegmentId,
			SegmentName:  data.SegmentName,
			DesignatorId: data.DesignatorId,
			PhotoRef:     data.PhotoRef,
			Description:  data.Description,
			Latitude:     data.Latitude,
			Longitude:    data.Longitude,
		},
		Version:   s.Version,
		UpdatedAt: updatedAt,
	}
}

func (m *SessionMapper) ToModel(s *entity.Session) *model.BotSession {
	if s == nil {
		return nil
	}

	return &model.BotSession{
		UserId:  s.UserId,
		State:   string(s.Stage),
		Data:    datatypes.NewJSONType(m.ToData(s.Fields)),
		Version: s.Version,
	}
}

func (m *SessionMapper) ToData(f entity.SessionFields) model.BotSessionData {
	return model.BotSessionData{
		SegmentId:    f.SegmentId,
		SegmentName:  f.SegmentName,
		DesignatorId: f.DesignatorId,
		PhotoRef:     f.PhotoRef,
		Description:  f.Description,
		Latitude:     f.Latitude,
		Longitude:    f.Longitude,
	}
}
