package implementation

import (
	"context"
	"testing"

	"eviden-bot/internal/entity"
	"eviden-bot/internal/pkg/testdb"
	"eviden-bot/internal/repository/specification"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSegmentRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewSegmentRepository(testdb.New(t))

	for _, s := range []*entity.Segment{
		{Id: 2, DisplayName: "JT.02 - JT.03"},
		{Id: 1, DisplayName: "JT.01 - JT.02"},
	} {
		require.NoError(t, repo.Create(ctx, s))
	}

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, int64(1), all[0].Id)
	assert.Equal(t, "JT.02 - JT.03", all[1].DisplayName)

	one, err := repo.FindOne(ctx, specification.ByID{ID: int64(2)})
	require.NoError(t, err)
	require.NotNil(t, one)
	assert.Equal(t, "JT.02 - JT.03", one.DisplayName)

	none, err := repo.FindOne(ctx, specification.ByID{ID: int64(99)})
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestDesignatorRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewDesignatorRepository(testdb.New(t))

	require.NoError(t, repo.Create(ctx, &entity.Designator{
		Code:        "DC-OF-SM-48D",
		DisplayName: "DC-OF-SM-48D",
		Description: "Pengadaan dan pemasangan kabel duct 48 core",
	}))
	require.NoError(t, repo.Create(ctx, &entity.Designator{Code: "AC-OF-SM-24", DisplayName: "AC-OF-SM-24"}))

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "AC-OF-SM-24", all[0].Code)

	one, err := repo.FindOne(ctx, specification.ByID{ID: "DC-OF-SM-48D"})
	require.NoError(t, err)
	require.NotNil(t, one)
	assert.Equal(t, "Pengadaan dan pemasangan kabel duct 48 core", one.Description)
}
