package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	domainRepo "github.com/tillpoint/pos-api/internal/domain/repository"
	"github.com/tillpoint/pos-api/pkg/apperror"
	"gorm.io/gorm"
)

type txKey struct{}

// TxManager runs callbacks inside one GORM transaction. The transaction
// handle travels in the context, so any repository call made with the
// callback's context joins the same transaction and commits or rolls back
// with it.
type TxManager struct {
	db *gorm.DB
}

// NewTxManager creates a new transaction manager
func NewTxManager(db *gorm.DB) domainRepo.TxManager {
	return &TxManager{db: db}
}

// Do begins a transaction, runs fn with a transaction-bound context, and
// commits on nil error or rolls back otherwise. Serialization failures and
// deadlocks are translated to apperror.ErrConcurrencyConflict so callers can
// retry the whole unit of work.
func (m *TxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	err := m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
	return translateError(err)
}

// dbFrom returns the transaction bound to ctx, or the base handle outside a
// transaction.
func dbFrom(ctx context.Context, base *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return base.WithContext(ctx)
}

// translateError maps PostgreSQL error codes onto the storage sentinels the
// services branch on.
func translateError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "40001", "40P01": // serialization_failure, deadlock_detected
			return fmt.Errorf("%w: %s", apperror.ErrConcurrencyConflict, pgErr.Message)
		case "23505": // unique_violation
			return fmt.Errorf("%w: %s", apperror.ErrDuplicateKey, pgErr.ConstraintName)
		}
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: %v", apperror.ErrDuplicateKey, err)
	}
	return err
}
