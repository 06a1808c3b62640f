package repository

import "context"

// TxManager provides the atomic unit-of-work boundary. Do runs fn inside one
// storage transaction: every repository call made with the context passed to
// fn joins that transaction, and all writes commit or roll back together.
//
// On a serialization failure or deadlock the returned error wraps
// apperror.ErrConcurrencyConflict so the caller can retry the whole unit.
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
