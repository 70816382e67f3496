package handlers

import (
  "sync"
)

// InflightGuard allows one analysis submission per client at a time.
// The UI disables its submit button while a request runs; the guard
// enforces the same rule against double-fire and impatient retries.
type InflightGuard struct {
  mu      sync.Mutex
  running map[string]bool
}

func NewInflightGuard() *InflightGuard {
  return &InflightGuard{running: make(map[string]bool)}
}

// TryAcquire reports whether the client may start a submission. The
// caller must Release with the same key when done.
func (g *InflightGuard) TryAcquire(clientID string) bool {
  g.mu.Lock()
  defer g.mu.Unlock()
  if g.running[clientID] {
    return false
  }
  g.running[clientID] = true
  return true
}

func (g *InflightGuard) Release(clientID string) {
  g.mu.Lock()
  defer g.mu.Unlock()
  delete(g.running, clientID)
}
