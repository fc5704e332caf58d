package events

import "time"

const TypeReportSubmitted = "REPORT_SUBMITTED"

// Event is anything that can be put on the report bus.
type Event interface {
	// EventID is used for broker side de-duplication. Empty disables it.
	EventID() string

	// EventType returns the event code, e.g. "REPORT_SUBMITTED".
	EventType() string

	Payload() map[string]interface{}

	Timestamp() time.Time
}

type BaseEvent struct {
	Id         string
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventID() string {
	return e.Id
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// NewReportSubmitted wraps a decoded report payload. The report id doubles as the event id.
func NewReportSubmitted(reportId string, data map[string]interface{}, at time.Time) BaseEvent {
	return BaseEvent{
		Id:         reportId,
		Type:       TypeReportSubmitted,
		Data:       data,
		OccurredAt: at,
	}
}
