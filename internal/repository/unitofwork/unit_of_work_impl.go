package unitofwork

import (
	"context"
	"errors"
	"fmt"

	"eviden-bot/internal/repository/contract"
	"eviden-bot/internal/repository/implementation"

	"gorm.io/gorm"
)

var (
	ErrTxActive = errors.New("unit of work: transaction already started")
	ErrNoTx     = errors.New("unit of work: no transaction in progress")
)

type UnitOfWorkImpl struct {
	db *gorm.DB
	tx *gorm.DB // nil outside a transaction
}

func NewUnitOfWork(db *gorm.DB) UnitOfWork {
	return &UnitOfWorkImpl{db: db}
}

// conn is the handle repositories run on: the open transaction if any, else the pool.
func (u *UnitOfWorkImpl) conn() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

func (u *UnitOfWorkImpl) Begin(ctx context.Context) error {
	if u.tx != nil {
		return ErrTxActive
	}
	tx := u.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}
	u.tx = tx
	return nil
}

func (u *UnitOfWorkImpl) Commit() error {
	if u.tx == nil {
		return ErrNoTx
	}
	tx := u.tx
	u.tx = nil
	return tx.Commit().Error
}

func (u *UnitOfWorkImpl) Rollback() error {
	if u.tx == nil {
		return ErrNoTx
	}
	tx := u.tx
	u.tx = nil
	return tx.Rollback().Error
}

func (u *UnitOfWorkImpl) SessionRepository() contract.SessionRepository {
	return implementation.NewSessionRepository(u.conn())
}

func (u *UnitOfWorkImpl) SegmentRepository() contract.SegmentRepository {
	return implementation.NewSegmentRepository(u.conn())
}

func (u *UnitOfWorkImpl) DesignatorRepository() contract.DesignatorRepository {
	return implementation.NewDesignatorRepository(u.conn())
}

func (u *UnitOfWorkImpl) ReportRepository() contract.ReportRepository {
	return implementation.NewReportRepository(u.conn())
}

// Transact runs fn inside one transaction. Any error or panic from fn rolls back; the error fn
// returned is passed through unwrapped so callers can still match repository sentinels.
func Transact(ctx context.Context, factory RepositoryFactory, fn func(uow UnitOfWork) error) error {
	uow := factory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("begin: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = uow.Rollback()
			panic(p)
		}
	}()

	if err := fn(uow); err != nil {
		_ = uow.Rollback()
		return err
	}
	if err := uow.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
