package main

import (
	"context"
	"testing"

	"eviden-bot/internal/entity"
	"eviden-bot/internal/pkg/testdb"
	"eviden-bot/internal/repository/specification"
	"eviden-bot/internal/repository/unitofwork"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedIsIdempotent(t *testing.T) {
	ctx := context.Background()
	factory := unitofwork.NewRepositoryFactory(testdb.New(t))

	created, err := seed(ctx, factory, segments, designators)
	require.NoError(t, err)
	assert.Equal(t, len(segments)+len(designators), created)

	created, err = seed(ctx, factory, segments, designators)
	require.NoError(t, err)
	assert.Zero(t, created)

	uow := factory.NewUnitOfWork(ctx)
	stored, err := uow.SegmentRepository().FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, stored, len(segments))
	assert.Equal(t, "JT.01 - JT.02", stored[0].DisplayName)

	codes, err := uow.DesignatorRepository().FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, codes, len(designators))
}

func TestSeedKeepsExistingRows(t *testing.T) {
	ctx := context.Background()
	factory := unitofwork.NewRepositoryFactory(testdb.New(t))

	// An operator renamed segment 1 by hand; seeding must not touch it.
	require.NoError(t, factory.NewUnitOfWork(ctx).SegmentRepository().Create(ctx, &entity.Segment{Id: 1, DisplayName: "JT.01 - JT.02 (revisi)"}))

	created, err := seed(ctx, factory, segments, nil)
	require.NoError(t, err)
	assert.Equal(t, len(segments)-1, created)

	got, err := factory.NewUnitOfWork(ctx).SegmentRepository().FindOne(ctx, specification.ByID{ID: int64(1)})
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "JT.01 - JT.02 (revisi)", got.DisplayName)
}
