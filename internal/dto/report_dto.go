package dto

import "time"

// ReportDraft is validated before the report row is written.
type ReportDraft struct {
	TelegramUserId int64    `validate:"required"`
	SegmentId      *int64   `validate:"required"`
	DesignatorCode *string  `validate:"required,min=1"`
	PhotoRef       *string  `validate:"required,min=1"`
	Description    *string  `validate:"required"`
	Latitude       *float64 `validate:"required,latitude"`
	Longitude      *float64 `validate:"required,longitude"`
}

// ReportSubmittedMessage is the payload of the REPORT_SUBMITTED event.
type ReportSubmittedMessage struct {
	ReportId       string    `json:"report_id"`
	TelegramUserId int64     `json:"telegram_user_id"`
	SegmentId      int64     `json:"segment_id"`
	DesignatorCode string    `json:"designator_code"`
	PhotoRef       string    `json:"photo_ref"`
	Latitude       float64   `json:"latitude"`
	Longitude      float64   `json:"longitude"`
	CreatedAt      time.Time `json:"created_at"`
}
