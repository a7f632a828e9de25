package testutil

import (
	"context"
	"database/sql"
	"sync/atomic"

	"github.com/alexanderramin/procmap/internal/db"
)

// FailOnNthExecDB wraps a DBTX and injects an error on the Nth ExecContext
// call. Calls are counted starting at 1; a negative FailOn fails every call.
// QueryContext and QueryRowContext pass through.
type FailOnNthExecDB struct {
	db.DBTX
	count  atomic.Int32
	failOn int32
	err    error
}

func NewFailOnNthExecDB(inner db.DBTX, failOn int32, err error) *FailOnNthExecDB {
	return &FailOnNthExecDB{DBTX: inner, failOn: failOn, err: err}
}

func (f *FailOnNthExecDB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	n := f.count.Add(1)
	if f.failOn < 0 || n == f.failOn {
		return nil, f.err
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}
