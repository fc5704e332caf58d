package service

import (
	"context"
	"testing"

	"eviden-bot/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlowTransitions(t *testing.T) {
	tests := []struct {
		from  entity.Stage
		event string
		to    entity.Stage
	}{
		{entity.StageStart, flowLapor, entity.StageAwaitingSegment},
		{entity.StageAwaitingSegment, flowLapor, entity.StageAwaitingSegment},
		{entity.StageAwaitingLocation, flowLapor, entity.StageAwaitingSegment},
		{entity.StageAwaitingSegment, flowPickSegment, entity.StageAwaitingDesignator},
		{entity.StageAwaitingDesignator, flowPickDesignator, entity.StageAwaitingPhoto},
		{entity.StageAwaitingPhoto, flowSendPhoto, entity.StageAwaitingDescription},
		{entity.StageAwaitingDescription, flowDescribe, entity.StageAwaitingLocation},
		{entity.StageAwaitingLocation, flowSendLocation, entity.StageStart},
		{entity.StageAwaitingPhoto, flowBatal, entity.StageStart},
		{entity.StageStart, flowBatal, entity.StageStart},
	}

	for _, tt := range tests {
		t.Run(tt.from.String()+"/"+tt.event, func(t *testing.T) {
			require.True(t, canFire(tt.from, tt.event))
			got, err := fire(context.Background(), tt.from, tt.event)
			require.NoError(t, err)
			assert.Equal(t, tt.to, got)
		})
	}
}

func TestFlowRejectsOutOfOrderEvents(t *testing.T) {
	assert.False(t, canFire(entity.StageAwaitingPhoto, flowSendLocation))
	assert.False(t, canFire(entity.StageStart, flowPickSegment))
	assert.False(t, canFire(entity.StageAwaitingDesignator, flowPickSegment))

	got, err := fire(context.Background(), entity.StageAwaitingPhoto, flowSendLocation)
	assert.Error(t, err)
	assert.Equal(t, entity.StageAwaitingPhoto, got)
}
