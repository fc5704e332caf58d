package implementation

import (
	"context"
	"errors"
	"time"

	"eviden-bot/internal/entity"
	"eviden-bot/internal/mapper"
	"eviden-bot/internal/model"
	"eviden-bot/internal/repository/contract"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type SessionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.SessionMapper
}

func NewSessionRepository(db *gorm.DB) contract.SessionRepository {
	return &SessionRepositoryImpl{
		db:     db,
		mapper: mapper.NewSessionMapper(),
	}
}

func (r *SessionRepositoryImpl) FindByUserId(ctx context.Context, userId int64) (*entity.Session, error) {
	var m model.BotSession
	if err := r.db.WithContext(ctx).Where("user_id = ?", userId).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *SessionRepositoryImpl) Save(ctx context.Context, session *entity.Session) error {
	if session.IsNew() {
		return r.insert(ctx, session)
	}

	now := time.Now()
	res := r.db.WithContext(ctx).
		Model(&model.BotSession{}).
		Where("user_id = ? AND version = ?", session.UserId, session.Version).
		Updates(map[string]interface{}{
			"state":      string(session.Stage),
			"data":       datatypes.NewJSONType(r.mapper.ToData(session.Fields)),
			"version":    session.Version + 1,
			"updated_at": now,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return contract.ErrVersionConflict
	}

	session.Version++
	session.UpdatedAt = &now
	return nil
}

func (r *SessionRepositoryImpl) insert(ctx context.Context, session *entity.Session) error {
	m := r.mapper.ToModel(session)
	m.Version = 1
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		// Row created by a concurrent first contact.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return contract.ErrVersionConflict
		}
		return err
	}
	*session = *r.mapper.ToEntity(m)
	return nil
}
