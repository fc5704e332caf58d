package model

import (
	"time"

	"github.com/google/uuid"
)

type RekapData struct {
	Id              uuid.UUID `gorm:"type:uuid;primaryKey"`
	TelegramUserId  int64     `gorm:"not null;index"`
	SegmentasiId    int64     `gorm:"not null;index"`
	DesignatorId    string    `gorm:"type:varchar(64);not null"`
	Keterangan      string    `gorm:"type:text;not null"`
	LokasiLatitude  float64   `gorm:"not null"`
	LokasiLongitude float64   `gorm:"not null"`
	FotoUrl         string    `gorm:"type:text;not null"`
	CreatedAt       time.Time `gorm:"autoCreateTime"`
}

func (RekapData) TableName() string {
	return "rekap_data"
}
