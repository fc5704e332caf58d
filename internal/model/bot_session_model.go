package model

import (
	"time"

	"gorm.io/datatypes"
)

// BotSessionData is the JSON blob stored in bot_sessions.data.
type BotSessionData struct {
	SegmentId    *int64   `json:"segment_id,omitempty"`
	SegmentName  *string  `json:"segment_name,omitempty"`
	DesignatorId *string  `json:"designator_id,omitempty"`
	PhotoRef     *string  `json:"photo_ref,omitempty"`
	Description  *string  `json:"description,omitempty"`
	Latitude     *float64 `json:"latitude,omitempty"`
	Longitude    *float64 `json:"longitude,omitempty"`
}

type BotSession struct {
	UserId    int64                              `gorm:"primaryKey;autoIncrement:false"`
	State     string                             `gorm:"type:varchar(32);not null;default:'start'"`
	Data      datatypes.JSONType[BotSessionData] `gorm:"not null"`
	Version   int64                              `gorm:"not null;default:0"`
	UpdatedAt time.Time                          `gorm:"autoUpdateTime"`
}

func (BotSession) TableName() string {
	return "bot_sessions"
}
