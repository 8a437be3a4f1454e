package session

import (
	"context"

	"github.com/dmitrijs2005/marketpro/internal/auth"
	"github.com/dmitrijs2005/marketpro/internal/logging"
)

// Store holds the current operator principal and persists it to one of
// two slots chosen at login time.
type Store struct {
	durable   Slot
	ephemeral Slot
	codec     *TokenCodec
	log       logging.Logger
	current   *auth.Principal
}

func NewStore(durable, ephemeral Slot, codec *TokenCodec, log logging.Logger) *Store {
	return &Store{durable: durable, ephemeral: ephemeral, codec: codec, log: log}
}

// Restore loads a persisted principal, preferring the durable slot.
// Malformed or unverifiable blobs fail closed: the slot is treated as
// empty and the problem is logged, never returned.
func (s *Store) Restore(ctx context.Context) *auth.Principal {
	slots := []struct {
		tier Tier
		slot Slot
	}{
		{TierDurable, s.durable},
		{TierEphemeral, s.ephemeral},
	}

	for _, entry := range slots {
		blob, err := entry.slot.Load(ctx)
		if err != nil {
			s.log.Warn(ctx, "session slot read failed", "tier", entry.tier, "error", err)
			continue
		}
		if blob == nil {
			continue
		}

		p, err := s.codec.Decode(string(blob))
		if err != nil {
			s.log.Warn(ctx, "discarding malformed session", "tier", entry.tier, "error", err)
			continue
		}

		s.current = p
		s.log.Info(ctx, "session restored", "tier", entry.tier, "phone", p.Phone)
		return p
	}
	return nil
}

// Login persists p to the chosen tier and clears the other, so exactly
// one slot holds a serialized session afterwards.
func (s *Store) Login(ctx context.Context, p *auth.Principal, persistBeyondSession bool) error {
	blob, err := s.codec.Encode(p)
	if err != nil {
		return err
	}

	target, other := s.ephemeral, s.durable
	tier := TierEphemeral
	if persistBeyondSession {
		target, other = s.durable, s.ephemeral
		tier = TierDurable
	}

	if err := target.Save(ctx, []byte(blob)); err != nil {
		return err
	}
	if err := other.Clear(ctx); err != nil {
		return err
	}

	s.current = p
	s.log.Info(ctx, "session established", "tier", tier, "phone", p.Phone)
	return nil
}

// Logout clears both slots and the in-memory principal. Both slots are
// attempted even if the first clear fails.
func (s *Store) Logout(ctx context.Context) error {
	var firstErr error
	for _, slot := range []Slot{s.durable, s.ephemeral} {
		if err := slot.Clear(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	s.current = nil
	return firstErr
}

// Current returns the in-memory principal, nil when logged out.
func (s *Store) Current() *auth.Principal {
	return s.current
}
