package entity

import (
	"time"

	"github.com/google/uuid"
)

type Report struct {
	Id             uuid.UUID
	TelegramUserId int64
	SegmentId      int64
	DesignatorCode string
	Description    string
	Latitude       float64
	Longitude      float64
	PhotoRef       string
	CreatedAt      time.Time
}
