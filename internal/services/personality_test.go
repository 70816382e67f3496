package services

import (
  "context"
  "errors"
  "strings"
  "testing"

  "github.com/soulsetjourneys/soulset-backend/internal/clientstate"
  "github.com/soulsetjourneys/soulset-backend/internal/logger"
  "github.com/soulsetjourneys/soulset-backend/internal/reflection"
  "github.com/soulsetjourneys/soulset-backend/internal/sse"
)

func newTestPersonalityService() PersonalityService {
  state := clientstate.NewState(clientstate.NewMemoryStore())
  return NewPersonalityService(logger.NewNop(), state, reflection.DefaultTraitCatalog(), nil)
}

func TestToggleTrait(t *testing.T) {
  ctx := context.Background()
  svc := newTestPersonalityService()

  sel, err := svc.ToggleTrait(ctx, "c1", "tired")
  if err != nil {
    t.Fatalf("ToggleTrait: %v", err)
  }
  if len(sel) != 1 || sel[0] != "tired" {
    t.Fatalf("selection = %v", sel)
  }

  sel, err = svc.ToggleTrait(ctx, "c1", "tired")
  if err != nil {
    t.Fatalf("ToggleTrait off: %v", err)
  }
  if len(sel) != 0 {
    t.Fatalf("toggle off left selection %v", sel)
  }
}

func TestToggleTraitUnknown(t *testing.T) {
  svc := newTestPersonalityService()
  if _, err := svc.ToggleTrait(context.Background(), "c1", "invincible"); !errors.Is(err, ErrUnknownTrait) {
    t.Fatalf("err = %v, want ErrUnknownTrait", err)
  }
}

func TestToggleTraitCap(t *testing.T) {
  ctx := context.Background()
  svc := newTestPersonalityService()

  for _, id := range []string{"sensitive", "ambitious", "tired"} {
    if _, err := svc.ToggleTrait(ctx, "c1", id); err != nil {
      t.Fatalf("ToggleTrait(%s): %v", id, err)
    }
  }
  sel, err := svc.ToggleTrait(ctx, "c1", "lost")
  if err != nil {
    t.Fatalf("ToggleTrait at cap: %v", err)
  }
  if len(sel) != reflection.MaxTraits {
    t.Fatalf("selection grew past cap: %v", sel)
  }
  for _, id := range sel {
    if id == "lost" {
      t.Fatalf("fourth trait slipped in: %v", sel)
    }
  }
}

func TestCompleteSessionBelowThreshold(t *testing.T) {
  ctx := context.Background()
  svc := newTestPersonalityService()

  count, card, err := svc.CompleteSession(ctx, "c1", reflection.CategoryTired, reflection.LocaleFR)
  if err != nil {
    t.Fatalf("CompleteSession: %v", err)
  }
  if count != 1 {
    t.Fatalf("count = %d, want 1", count)
  }
  if card != "" {
    t.Fatalf("card issued below threshold: %q", card)
  }
}

func TestCompleteSessionBroadcastsRecordedEvent(t *testing.T) {
  ctx := context.Background()
  hub := sse.NewSSEHub(logger.NewNop())
  state := clientstate.NewState(clientstate.NewMemoryStore())
  svc := NewPersonalityService(logger.NewNop(), state, reflection.DefaultTraitCatalog(), hub)

  listener := hub.NewSSEClient("c1")
  hub.AddChannel(listener, sse.SessionChannel("c1"))

  if _, _, err := svc.CompleteSession(ctx, "c1", reflection.CategoryNeutral, reflection.LocaleFR); err != nil {
    t.Fatalf("CompleteSession: %v", err)
  }

  select {
  case msg := <-listener.Outbound:
    if msg.Event != sse.SSEEventSessionRecorded {
      t.Fatalf("event = %q, want %q", msg.Event, sse.SSEEventSessionRecorded)
    }
  default:
    t.Fatal("no session event broadcast")
  }
}

func TestCompleteSessionIssuesCard(t *testing.T) {
  ctx := context.Background()
  svc := newTestPersonalityService()

  if _, err := svc.ToggleTrait(ctx, "c1", "tired"); err != nil {
    t.Fatalf("ToggleTrait: %v", err)
  }
  if _, _, err := svc.CompleteSession(ctx, "c1", reflection.CategoryTired, reflection.LocaleFR); err != nil {
    t.Fatalf("first session: %v", err)
  }
  count, card, err := svc.CompleteSession(ctx, "c1", reflection.CategoryTired, reflection.LocaleFR)
  if err != nil {
    t.Fatalf("second session: %v", err)
  }
  if count != 2 {
    t.Fatalf("count = %d, want 2", count)
  }
  if card == "" {
    t.Fatal("expected a personality card at the threshold")
  }
  if !strings.Contains(card, "Énergie") {
    t.Fatalf("card does not reflect the tired category: %q", card)
  }

  cached, err := svc.Card(ctx, "c1")
  if err != nil {
    t.Fatalf("Card: %v", err)
  }
  if cached != card {
    t.Fatalf("cached card differs:\n%q\n%q", cached, card)
  }
}
