package entity

import (
	"fmt"
	"time"
)

type Stage string

const (
	StageStart               Stage = "start"
	StageAwaitingSegment     Stage = "awaiting_segment"
	StageAwaitingDesignator  Stage = "awaiting_designator"
	StageAwaitingPhoto       Stage = "awaiting_photo"
	StageAwaitingDescription Stage = "awaiting_description"
	StageAwaitingLocation    Stage = "awaiting_location"
)

// collectedSlots is how many field slots must be filled while waiting at a stage.
var collectedSlots = map[Stage]int{
	StageStart:               0,
	StageAwaitingSegment:     0,
	StageAwaitingDesignator:  1,
	StageAwaitingPhoto:       2,
	StageAwaitingDescription: 3,
	StageAwaitingLocation:    4,
}

func (s Stage) Valid() bool {
	_, ok := collectedSlots[s]
	return ok
}

func (s Stage) String() string {
	return string(s)
}

// SessionFields holds the answers collected so far. Nil means "not collected yet".
type SessionFields struct {
	SegmentId    *int64   `json:"segment_id,omitempty"`
	SegmentName  *string  `json:"segment_name,omitempty"`
	DesignatorId *string  `json:"designator_id,omitempty"`
	PhotoRef     *string  `json:"photo_ref,omitempty"`
	Description  *string  `json:"description,omitempty"`
	Latitude     *float64 `json:"latitude,omitempty"`
	Longitude    *float64 `json:"longitude,omitempty"`
}

// slots returns, in collection order, whether each slot is fully set, partially set or empty.
func (f SessionFields) slots() []slotState {
	return []slotState{
		pair(f.SegmentId != nil, f.SegmentName != nil),
		single(f.DesignatorId != nil),
		single(f.PhotoRef != nil),
		single(f.Description != nil),
		pair(f.Latitude != nil, f.Longitude != nil),
	}
}

var slotNames = []string{"segment", "designator", "photo", "description", "location"}

type slotState int

const (
	slotEmpty slotState = iota
	slotPartial
	slotFilled
)

func single(set bool) slotState {
	if set {
		return slotFilled
	}
	return slotEmpty
}

func pair(a, b bool) slotState {
	switch {
	case a && b:
		return slotFilled
	case a || b:
		return slotPartial
	default:
		return slotEmpty
	}
}

// IsEmpty reports whether no field has been collected.
func (f SessionFields) IsEmpty() bool {
	for _, s := range f.slots() {
		if s != slotEmpty {
			return false
		}
	}
	return true
}

type Session struct {
	UserId    int64
	Stage     Stage
	Fields    SessionFields
	Version   int64
	UpdatedAt *time.Time
}

func NewSession(userId int64) *Session {
	return &Session{
		UserId: userId,
		Stage:  StageStart,
	}
}

// IsNew reports whether the session has never been persisted.
func (s *Session) IsNew() bool {
	return s.Version == 0
}

// Clone returns a copy safe to mutate. Field pointers are shared; they are always replaced, never written through.
func (s *Session) Clone() *Session {
	c := *s
	return &c
}

func (s *Session) Reset() {
	s.Stage = StageStart
	s.Fields = SessionFields{}
}

// Validate checks that exactly the slots collected before Stage are present.
func (s *Session) Validate() error {
	want, ok := collectedSlots[s.Stage]
	if !ok {
		return fmt.Errorf("unknown stage %q", s.Stage)
	}
	for i, st := range s.Fields.slots() {
		switch {
		case st == slotPartial:
			return fmt.Errorf("stage %s: %s is partially set", s.Stage, slotNames[i])
		case i < want && st != slotFilled:
			return fmt.Errorf("stage %s: %s is missing", s.Stage, slotNames[i])
		case i >= want && st != slotEmpty:
			return fmt.Errorf("stage %s: %s is set too early", s.Stage, slotNames[i])
		}
	}
	return nil
}

func Ptr[T any](v T) *T {
	return &v
}
