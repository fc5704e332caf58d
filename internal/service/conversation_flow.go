package service

import (
	"context"
	"errors"

	"eviden-bot/internal/entity"

	"github.com/looplab/fsm"
)

// Events of the report form. Each one moves the session at most one stage.
const (
	flowLapor          = "lapor"
	flowBatal          = "batal"
	flowPickSegment    = "pilih_segmen"
	flowPickDesignator = "pilih_designator"
	flowSendPhoto      = "kirim_foto"
	flowDescribe       = "isi_keterangan"
	flowSendLocation   = "kirim_lokasi"
)

var allStages = []string{
	entity.StageStart.String(),
	entity.StageAwaitingSegment.String(),
	entity.StageAwaitingDesignator.String(),
	entity.StageAwaitingPhoto.String(),
	entity.StageAwaitingDescription.String(),
	entity.StageAwaitingLocation.String(),
}

var flowEvents = fsm.Events{
	{Name: flowLapor, Src: allStages, Dst: entity.StageAwaitingSegment.String()},
	{Name: flowBatal, Src: allStages, Dst: entity.StageStart.String()},
	{Name: flowPickSegment, Src: []string{entity.StageAwaitingSegment.String()}, Dst: entity.StageAwaitingDesignator.String()},
	{Name: flowPickDesignator, Src: []string{entity.StageAwaitingDesignator.String()}, Dst: entity.StageAwaitingPhoto.String()},
	{Name: flowSendPhoto, Src: []string{entity.StageAwaitingPhoto.String()}, Dst: entity.StageAwaitingDescription.String()},
	{Name: flowDescribe, Src: []string{entity.StageAwaitingDescription.String()}, Dst: entity.StageAwaitingLocation.String()},
	{Name: flowSendLocation, Src: []string{entity.StageAwaitingLocation.String()}, Dst: entity.StageStart.String()},
}

// newFlow builds a machine positioned at stage. Machines are cheap and never shared between events.
func newFlow(stage entity.Stage) *fsm.FSM {
	return fsm.NewFSM(stage.String(), flowEvents, fsm.Callbacks{})
}

func canFire(stage entity.Stage, event string) bool {
	return newFlow(stage).Can(event)
}

// fire returns the stage reached by event from stage.
func fire(ctx context.Context, stage entity.Stage, event string) (entity.Stage, error) {
	flow := newFlow(stage)
	if err := flow.Event(ctx, event); err != nil {
		// lapor at awaiting_segment or batal at start land on the same stage.
		var same fsm.NoTransitionError
		if !errors.As(err, &same) {
			return stage, err
		}
	}
	return entity.Stage(flow.Current()), nil
}
