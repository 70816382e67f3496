package clientstate

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
)

// Fixed per-client keys. These mirror the browser storage keys the web
// client already uses, so a device that migrates from local-only mode
// keeps the same names.
const (
	KeyTraits          = "duality_traits"
	KeySessionCount    = "duality_sessions_count"
	KeyPersonalityCard = "duality_personality_card"
	KeyMoods           = "soulset_moods"
)

// State is the typed view over a Store for one concern set: selected
// traits, the session counter, the cached personality card, and the
// serialized mood window.
type State struct {
	store Store
}

// NewState wraps a Store.
func NewState(store Store) *State {
	return &State{store: store}
}

// Traits returns the client's selected trait IDs. A missing key is an
// empty selection, not an error.
func (s *State) Traits(ctx context.Context, clientID string) ([]string, error) {
	raw, err := s.store.Get(ctx, clientID, KeyTraits)
	if err == ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var out []string
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, fmt.Errorf("decode traits: %w", err)
	}
	return out, nil
}

// SaveTraits stores the full trait selection.
func (s *State) SaveTraits(ctx context.Context, clientID string, traits []string) error {
	if traits == nil {
		traits = []string{}
	}
	raw, err := json.Marshal(traits)
	if err != nil {
		return fmt.Errorf("encode traits: %w", err)
	}
	return s.store.Set(ctx, clientID, KeyTraits, string(raw))
}

// SessionCount returns how many reflection sessions the client has
// completed. Missing key means zero.
func (s *State) SessionCount(ctx context.Context, clientID string) (int, error) {
	raw, err := s.store.Get(ctx, clientID, KeySessionCount)
	if err == ErrNotFound {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("decode session count: %w", err)
	}
	return n, nil
}

// IncrementSessions bumps the session counter and returns the new
// value.
func (s *State) IncrementSessions(ctx context.Context, clientID string) (int, error) {
	n, err := s.store.Increment(ctx, clientID, KeySessionCount)
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

// PersonalityCard returns the cached card text, or "" when none has
// been built yet.
func (s *State) PersonalityCard(ctx context.Context, clientID string) (string, error) {
	raw, err := s.store.Get(ctx, clientID, KeyPersonalityCard)
	if err == ErrNotFound {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return raw, nil
}

// SavePersonalityCard caches the most recent card text.
func (s *State) SavePersonalityCard(ctx context.Context, clientID, card string) error {
	return s.store.Set(ctx, clientID, KeyPersonalityCard, card)
}

// Moods returns the client's serialized mood window. Missing key is an
// empty window.
func (s *State) Moods(ctx context.Context, clientID string, out any) error {
	raw, err := s.store.Get(ctx, clientID, KeyMoods)
	if err == ErrNotFound {
		return nil
	}
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return fmt.Errorf("decode moods: %w", err)
	}
	return nil
}

// SaveMoods stores the mood window as JSON.
func (s *State) SaveMoods(ctx context.Context, clientID string, moods any) error {
	raw, err := json.Marshal(moods)
	if err != nil {
		return fmt.Errorf("encode moods: %w", err)
	}
	return s.store.Set(ctx, clientID, KeyMoods, string(raw))
}
