package implementation

import (
	"context"
	"testing"

	"eviden-bot/internal/entity"
	"eviden-bot/internal/pkg/testdb"
	"eviden-bot/internal/repository/contract"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionRepositoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewSessionRepository(testdb.New(t))

	missing, err := repo.FindByUserId(ctx, 42)
	require.NoError(t, err)
	assert.Nil(t, missing)

	s := entity.NewSession(42)
	s.Stage = entity.StageAwaitingDesignator
	s.Fields.SegmentId = entity.Ptr(int64(3))
	s.Fields.SegmentName = entity.Ptr("JT.01 - JT.02")
	require.NoError(t, repo.Save(ctx, s))
	assert.Equal(t, int64(1), s.Version)

	got, err := repo.FindByUserId(ctx, 42)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, entity.StageAwaitingDesignator, got.Stage)
	assert.Equal(t, int64(3), *got.Fields.SegmentId)
	assert.Equal(t, "JT.01 - JT.02", *got.Fields.SegmentName)
	assert.Nil(t, got.Fields.DesignatorId)
	assert.Equal(t, int64(1), got.Version)

	got.Stage = entity.StageAwaitingPhoto
	got.Fields.DesignatorId = entity.Ptr("DC-OF-SM-48D")
	require.NoError(t, repo.Save(ctx, got))
	assert.Equal(t, int64(2), got.Version)

	again, err := repo.FindByUserId(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, "DC-OF-SM-48D", *again.Fields.DesignatorId)
	assert.Equal(t, int64(2), again.Version)
}

func TestSessionRepositoryStaleVersion(t *testing.T) {
	ctx := context.Background()
	repo := NewSessionRepository(testdb.New(t))

	s := entity.NewSession(7)
	require.NoError(t, repo.Save(ctx, s))

	first, err := repo.FindByUserId(ctx, 7)
	require.NoError(t, err)
	second, err := repo.FindByUserId(ctx, 7)
	require.NoError(t, err)

	first.Stage = entity.StageAwaitingSegment
	require.NoError(t, repo.Save(ctx, first))

	second.Stage = entity.StageAwaitingSegment
	err = repo.Save(ctx, second)
	assert.ErrorIs(t, err, contract.ErrVersionConflict)
	assert.Equal(t, int64(1), second.Version)
}

func TestSessionRepositoryDuplicateFirstContact(t *testing.T) {
	ctx := context.Background()
	repo := NewSessionRepository(testdb.New(t))

	require.NoError(t, repo.Save(ctx, entity.NewSession(9)))

	err := repo.Save(ctx, entity.NewSession(9))
	assert.ErrorIs(t, err, contract.ErrVersionConflict)
}
