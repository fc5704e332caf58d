package service

import (
	"context"
	"testing"

	"eviden-bot/internal/entity"
	"eviden-bot/internal/pkg/apperror"
	"eviden-bot/internal/pkg/logger"
	"eviden-bot/internal/pkg/testdb"
	"eviden-bot/internal/repository/unitofwork"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSessionService(t *testing.T) ISessionService {
	return NewSessionService(unitofwork.NewRepositoryFactory(testdb.New(t)), logger.NewNopLogger())
}

func TestSessionLoadFresh(t *testing.T) {
	svc := newSessionService(t)

	s, err := svc.Load(context.Background(), 7)

	require.NoError(t, err)
	assert.Equal(t, int64(7), s.UserId)
	assert.Equal(t, entity.StageStart, s.Stage)
	assert.True(t, s.Fields.IsEmpty())
	assert.True(t, s.IsNew())
}

func TestSessionSaveAndReload(t *testing.T) {
	ctx := context.Background()
	svc := newSessionService(t)

	s, err := svc.Load(ctx, 7)
	require.NoError(t, err)
	s.Stage = entity.StageAwaitingSegment
	require.NoError(t, svc.Save(ctx, s))
	assert.Equal(t, int64(1), s.Version)

	s.Stage = entity.StageAwaitingDesignator
	s.Fields.SegmentId = entity.Ptr(int64(1))
	s.Fields.SegmentName = entity.Ptr("JT.01 - JT.02")
	require.NoError(t, svc.Save(ctx, s))
	assert.Equal(t, int64(2), s.Version)

	got, err := svc.Load(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, entity.StageAwaitingDesignator, got.Stage)
	assert.Equal(t, "JT.01 - JT.02", *got.Fields.SegmentName)
	assert.Equal(t, int64(2), got.Version)

	got.Reset()
	require.NoError(t, svc.Save(ctx, got))
	again, err := svc.Load(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, entity.StageStart, again.Stage)
	assert.True(t, again.Fields.IsEmpty())
	assert.Equal(t, int64(3), again.Version)
}

func TestSessionSaveStaleVersionConflicts(t *testing.T) {
	ctx := context.Background()
	svc := newSessionService(t)

	s, _ := svc.Load(ctx, 7)
	s.Stage = entity.StageAwaitingSegment
	require.NoError(t, svc.Save(ctx, s))

	first, err := svc.Load(ctx, 7)
	require.NoError(t, err)
	second, err := svc.Load(ctx, 7)
	require.NoError(t, err)

	first.Reset()
	require.NoError(t, svc.Save(ctx, first))

	second.Stage = entity.StageAwaitingDesignator
	second.Fields.SegmentId = entity.Ptr(int64(2))
	second.Fields.SegmentName = entity.Ptr("JT.03 - JT.04")
	err = svc.Save(ctx, second)

	assert.ErrorIs(t, err, apperror.ErrSessionConflict)
	stored, _ := svc.Load(ctx, 7)
	assert.Equal(t, entity.StageStart, stored.Stage)
}

func TestSessionConcurrentFirstContactConflicts(t *testing.T) {
	ctx := context.Background()
	svc := newSessionService(t)

	a, _ := svc.Load(ctx, 7)
	b, _ := svc.Load(ctx, 7)
	a.Stage = entity.StageAwaitingSegment
	b.Stage = entity.StageAwaitingSegment

	require.NoError(t, svc.Save(ctx, a))
	assert.ErrorIs(t, svc.Save(ctx, b), apperror.ErrSessionConflict)
}

func TestSessionSaveRejectsInconsistentSession(t *testing.T) {
	svc := newSessionService(t)
	s := entity.NewSession(7)
	s.Stage = entity.StageAwaitingPhoto

	err := svc.Save(context.Background(), s)

	assert.ErrorIs(t, err, apperror.ErrSessionWrite)
	assert.True(t, s.IsNew())
}
