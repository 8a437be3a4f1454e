package session

import (
	"context"
	"database/sql"
)

// Tier names one of the two session persistence slots.
type Tier string

const (
	TierDurable   Tier = "durable"
	TierEphemeral Tier = "ephemeral"
)

// principalKey is the fixed metadata key the serialized principal
// lives under in each slot.
const principalKey = "principal"

// Slot stores at most one serialized principal.
type Slot interface {
	// Load returns (nil, nil) when the slot is empty.
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, blob []byte) error
	Clear(ctx context.Context) error
}

// DBSlot keeps the blob in a SQLite metadata table. Backed by a file
// database it survives restarts; backed by MemoryDSN it does not.
type DBSlot struct {
	kv kv
}

func NewDBSlot(db *sql.DB) *DBSlot {
	return &DBSlot{kv: kv{db: db}}
}

func (s *DBSlot) Load(ctx context.Context) ([]byte, error) {
	return s.kv.get(ctx, principalKey)
}

func (s *DBSlot) Save(ctx context.Context, blob []byte) error {
	return s.kv.set(ctx, principalKey, blob)
}

func (s *DBSlot) Clear(ctx context.Context) error {
	return s.kv.del(ctx, principalKey)
}
