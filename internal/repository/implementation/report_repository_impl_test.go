package implementation

import (
	"context"
	"testing"

	"eviden-bot/internal/entity"
	"eviden-bot/internal/pkg/testdb"
	"eviden-bot/internal/repository/specification"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportRepositoryCreate(t *testing.T) {
	ctx := context.Background()
	repo := NewReportRepository(testdb.New(t))

	report := &entity.Report{
		TelegramUserId: 42,
		SegmentId:      1,
		DesignatorCode: "DC-OF-SM-48D",
		Description:    "tiang miring",
		Latitude:       -6.2,
		Longitude:      106.8,
		PhotoRef:       "https://storage.googleapis.com/eviden-bot/a.jpg",
	}
	require.NoError(t, repo.Create(ctx, report))
	assert.NotEqual(t, uuid.Nil, report.Id)
	assert.False(t, report.CreatedAt.IsZero())

	count, err := repo.Count(ctx, specification.ByTelegramUser{UserID: 42})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	all, err := repo.FindAll(ctx, specification.BySegment{SegmentID: 1})
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "DC-OF-SM-48D", all[0].DesignatorCode)
	assert.InDelta(t, 106.8, all[0].Longitude, 1e-9)
}
