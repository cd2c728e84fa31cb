package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// TxManager runs a unit of work atomically.
// Repos called with the context passed to fn take part in the same transaction.
type TxManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// beginner is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
// Beginning from a pgx.Tx opens a savepoint, which keeps rollback-isolated
// integration tests working.
type beginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

type pgTxManager struct {
	db beginner
}

// NewTxManager constructs a TxManager that opens transactions on db.
func NewTxManager(db beginner) TxManager {
	return &pgTxManager{db: db}
}

type txKey struct{}

// RunInTx commits when fn returns nil and rolls back otherwise.
// Nested calls join the outer transaction.
func (m *pgTxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return fn(ctx)
	}

	err := pgx.BeginFunc(ctx, m.db, func(tx pgx.Tx) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
	if err != nil {
		return fmt.Errorf("repo.TxManager.RunInTx: %w", err)
	}
	return nil
}

// conn returns the transaction carried by ctx, or fallback when there is none.
func conn(ctx context.Context, fallback db) db {
	if tx, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return tx
	}
	return fallback
}
