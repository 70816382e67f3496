package handlers

import "testing"

func TestInflightGuard(t *testing.T) {
  g := NewInflightGuard()

  if !g.TryAcquire("c1") {
    t.Fatal("first acquire refused")
  }
  if g.TryAcquire("c1") {
    t.Fatal("second acquire for the same client must be refused")
  }
  if !g.TryAcquire("c2") {
    t.Fatal("other client must not be blocked")
  }

  g.Release("c1")
  if !g.TryAcquire("c1") {
    t.Fatal("acquire after release refused")
  }
}
