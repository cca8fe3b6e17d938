package testutil

import (
	"context"
	"database/sql"

	"github.com/alexanderramin/studyplanner/internal/db"
)

// FaultyUoW wraps a real SQLite unit of work and injects a single failure.
// It is used to exercise batch persistence and catalog rollback paths.
//
// With FailTx, the Nth WithinTx call returns Err without opening a
// transaction. With FailExec, the Nth ExecContext inside every transaction
// returns Err, so the real unit of work rolls that transaction back.
// Counts start at 1; reads are never counted.
type FaultyUoW struct {
	inner    db.UnitOfWork
	failTx   int
	failExec int
	err      error

	txCalls int
}

// FailTx fails the nth transaction. Earlier and later ones commit normally.
func FailTx(database *sql.DB, n int, err error) *FaultyUoW {
	return &FaultyUoW{inner: db.NewSQLiteUnitOfWork(database), failTx: n, err: err}
}

// FailExec fails the nth write of each transaction.
func FailExec(database *sql.DB, n int, err error) *FaultyUoW {
	return &FaultyUoW{inner: db.NewSQLiteUnitOfWork(database), failExec: n, err: err}
}

// Transactions reports how many WithinTx calls were made, including the
// failed one.
func (u *FaultyUoW) Transactions() int { return u.txCalls }

func (u *FaultyUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	u.txCalls++
	if u.failTx > 0 && u.txCalls == u.failTx {
		return u.err
	}
	if u.failExec == 0 {
		return u.inner.WithinTx(ctx, fn)
	}
	return u.inner.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return fn(ctx, &faultyTx{DBTX: tx, failOn: u.failExec, err: u.err})
	})
}

type faultyTx struct {
	db.DBTX
	execs  int
	failOn int
	err    error
}

func (f *faultyTx) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	f.execs++
	if f.execs == f.failOn {
		return nil, f.err
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}
