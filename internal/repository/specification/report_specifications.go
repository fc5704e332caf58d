package specification

import "gorm.io/gorm"

// ByTelegramUser filters reports submitted by one Telegram user.
type ByTelegramUser struct {
	UserID int64
}

func (s ByTelegramUser) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("telegram_user_id = ?", s.UserID)
}

type BySegment struct {
	SegmentID int64
}

func (s BySegment) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("segmentasi_id = ?", s.SegmentID)
}
