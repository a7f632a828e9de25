package repository

import (
	"context"
	"time"
)

// StateSlot is one durable key-value record.
type StateSlot struct {
	Key       string
	Value     []byte
	Revision  int
	UpdatedAt time.Time
}

// StateRepo stores opaque state blobs under fixed keys. Each Save replaces
// the whole value atomically.
type StateRepo interface {
	Load(ctx context.Context, key string) (*StateSlot, error)
	Save(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
