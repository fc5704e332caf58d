package unitofwork

import (
	"context"
	"errors"
	"testing"

	"eviden-bot/internal/entity"
	"eviden-bot/internal/pkg/testdb"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnitOfWorkRollback(t *testing.T) {
	ctx := context.Background()
	factory := NewRepositoryFactory(testdb.New(t))

	uow := factory.NewUnitOfWork(ctx)
	require.NoError(t, uow.Begin(ctx))
	require.NoError(t, uow.ReportRepository().Create(ctx, &entity.Report{TelegramUserId: 1, DesignatorCode: "X"}))
	require.NoError(t, uow.Rollback())

	count, err := factory.NewUnitOfWork(ctx).ReportRepository().Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestUnitOfWorkCommit(t *testing.T) {
	ctx := context.Background()
	factory := NewRepositoryFactory(testdb.New(t))

	uow := factory.NewUnitOfWork(ctx)
	require.NoError(t, uow.Begin(ctx))
	require.NoError(t, uow.SessionRepository().Save(ctx, entity.NewSession(5)))
	require.NoError(t, uow.ReportRepository().Create(ctx, &entity.Report{TelegramUserId: 5, DesignatorCode: "X"}))
	require.NoError(t, uow.Commit())

	count, err := factory.NewUnitOfWork(ctx).ReportRepository().Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	assert.Error(t, uow.Commit(), "second commit has no transaction")
}

func TestTransactRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	factory := NewRepositoryFactory(testdb.New(t))
	boom := errors.New("boom")

	err := Transact(ctx, factory, func(uow UnitOfWork) error {
		require.NoError(t, uow.ReportRepository().Create(ctx, &entity.Report{TelegramUserId: 7, DesignatorCode: "X"}))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	count, err := factory.NewUnitOfWork(ctx).ReportRepository().Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestTransactCommits(t *testing.T) {
	ctx := context.Background()
	factory := NewRepositoryFactory(testdb.New(t))

	err := Transact(ctx, factory, func(uow UnitOfWork) error {
		return uow.ReportRepository().Create(ctx, &entity.Report{TelegramUserId: 7, DesignatorCode: "X"})
	})
	require.NoError(t, err)

	count, err := factory.NewUnitOfWork(ctx).ReportRepository().Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestBeginTwice(t *testing.T) {
	ctx := context.Background()
	uow := NewRepositoryFactory(testdb.New(t)).NewUnitOfWork(ctx)

	require.NoError(t, uow.Begin(ctx))
	assert.ErrorIs(t, uow.Begin(ctx), ErrTxActive)
	require.NoError(t, uow.Rollback())
	assert.ErrorIs(t, uow.Rollback(), ErrNoTx)
}
