package services

import (
  "context"
  "errors"
  "fmt"

  "github.com/soulsetjourneys/soulset-backend/internal/clientstate"
  "github.com/soulsetjourneys/soulset-backend/internal/logger"
  "github.com/soulsetjourneys/soulset-backend/internal/reflection"
  "github.com/soulsetjourneys/soulset-backend/internal/sse"
)

// ErrUnknownTrait is returned when a toggle names a trait ID outside
// the catalog.
var ErrUnknownTrait = errors.New("unknown trait id")

type PersonalityService interface {
  Catalog() *reflection.TraitCatalog
  SelectedTraits(ctx context.Context, clientID string) ([]string, error)
  ToggleTrait(ctx context.Context, clientID, traitID string) ([]string, error)
  CompleteSession(ctx context.Context, clientID string, cat reflection.Category, loc reflection.Locale) (int, string, error)
  Card(ctx context.Context, clientID string) (string, error)
}

type personalityService struct {
  log     *logger.Logger
  state   *clientstate.State
  catalog *reflection.TraitCatalog
  hub     *sse.SSEHub
}

func NewPersonalityService(log *logger.Logger, state *clientstate.State, catalog *reflection.TraitCatalog, hub *sse.SSEHub) PersonalityService {
  return &personalityService{
    log:     log.With("service", "PersonalityService"),
    state:   state,
    catalog: catalog,
    hub:     hub,
  }
}

func (s *personalityService) Catalog() *reflection.TraitCatalog {
  return s.catalog
}

func (s *personalityService) SelectedTraits(ctx context.Context, clientID string) ([]string, error) {
  return s.state.Traits(ctx, clientID)
}

// ToggleTrait flips one trait in the client's selection and returns the
// new selection. A toggle that would push the selection past the cap is
// a no-op, mirroring how the picker behaves in the UI.
func (s *personalityService) ToggleTrait(ctx context.Context, clientID, traitID string) ([]string, error) {
  if !s.catalog.Known(traitID) {
    return nil, fmt.Errorf("%w: %s", ErrUnknownTrait, traitID)
  }
  selected, err := s.state.Traits(ctx, clientID)
  if err != nil {
    return nil, err
  }
  selected = reflection.Toggle(selected, traitID)
  if err := s.state.SaveTraits(ctx, clientID, selected); err != nil {
    return nil, err
  }
  return selected, nil
}

// CompleteSession bumps the client's session counter and, once the
// threshold is met, rebuilds and caches the personality card. It
// returns the new count and the card ("" below the threshold or for a
// neutral category with no traits).
func (s *personalityService) CompleteSession(ctx context.Context, clientID string, cat reflection.Category, loc reflection.Locale) (int, string, error) {
  count, err := s.state.IncrementSessions(ctx, clientID)
  if err != nil {
    return 0, "", err
  }
  if s.hub != nil {
    s.hub.Broadcast(sse.SSEMessage{
      Channel: sse.SessionChannel(clientID),
      Event:   sse.SSEEventSessionRecorded,
      Data:    map[string]any{"session_count": count, "category": cat},
    })
  }

  selected, err := s.state.Traits(ctx, clientID)
  if err != nil {
    return count, "", err
  }
  labels := s.catalog.Labels(selected, loc)

  card, ok := reflection.BuildPersonalityCard(cat, labels, loc, count)
  if !ok {
    return count, "", nil
  }
  if err := s.state.SavePersonalityCard(ctx, clientID, card); err != nil {
    return count, "", err
  }
  if s.hub != nil {
    s.hub.Broadcast(sse.SSEMessage{
      Channel: sse.SessionChannel(clientID),
      Event:   sse.SSEEventPersonalityCard,
      Data:    map[string]any{"session_count": count},
    })
  }
  return count, card, nil
}

func (s *personalityService) Card(ctx context.Context, clientID string) (string, error) {
  return s.state.PersonalityCard(ctx, clientID)
}
