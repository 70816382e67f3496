package moodlog

import (
	"fmt"
	"testing"
	"time"
)

func entry(id string, level int) Entry {
	return Entry{ID: id, CreatedAt: time.Now(), Level: level}
}

func TestAppendPrependsAndEvicts(t *testing.T) {
	w := NewWindow(3)

	w.Append(entry("a", 3))
	got := w.List()
	if len(got) != 1 || got[0].ID != "a" {
		t.Fatalf("append+list wrong: %+v", got)
	}

	// Levels [3,4,5,2] into cap 3: oldest (3) evicted, newest first.
	w.Append(entry("b", 4))
	w.Append(entry("c", 5))
	w.Append(entry("d", 2))

	got = w.List()
	if len(got) != 3 {
		t.Fatalf("expected cap 3, got %d", len(got))
	}
	wantLevels := []int{2, 5, 4}
	for i, lvl := range wantLevels {
		if got[i].Level != lvl {
			t.Fatalf("position %d: got level %d, want %d (%+v)", i, got[i].Level, lvl, got)
		}
	}
}

func TestStatsEmptyWindow(t *testing.T) {
	w := NewWindow(5)
	s := w.ComputeStats()
	if s.Average != 0 || s.Last != 0 || s.Trend != TrendStable {
		t.Fatalf("empty stats wrong: %+v", s)
	}
}

func TestStatsAverageAndTrend(t *testing.T) {
	cases := []struct {
		name    string
		levels  []int // append order, oldest first
		wantAvg float64
		wantTr  Trend
	}{
		{name: "up", levels: []int{2, 3, 5}, wantAvg: 10.0 / 3.0, wantTr: TrendUp},
		{name: "down", levels: []int{5, 3, 1}, wantAvg: 3, wantTr: TrendDown},
		{name: "stable", levels: []int{3, 1, 3}, wantAvg: 7.0 / 3.0, wantTr: TrendStable},
		{name: "single", levels: []int{4}, wantAvg: 4, wantTr: TrendStable},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := NewWindow(10)
			for i, lvl := range tc.levels {
				w.Append(entry(fmt.Sprintf("e%d", i), lvl))
			}
			s := w.ComputeStats()
			if s.Trend != tc.wantTr {
				t.Fatalf("trend=%q, want %q", s.Trend, tc.wantTr)
			}
			if diff := s.Average - tc.wantAvg; diff > 1e-9 || diff < -1e-9 {
				t.Fatalf("average=%v, want %v", s.Average, tc.wantAvg)
			}
			if s.Last != tc.levels[len(tc.levels)-1] {
				t.Fatalf("last=%d, want %d", s.Last, tc.levels[len(tc.levels)-1])
			}
		})
	}
}

func TestMergeInsertDedupesByID(t *testing.T) {
	w := NewWindow(5)
	w.Append(entry("a", 3))
	w.Append(entry("b", 4))

	if ok := w.MergeInsert(entry("b", 4)); ok {
		t.Fatal("duplicate id should not merge")
	}
	if w.Len() != 2 {
		t.Fatalf("len=%d after duplicate merge, want 2", w.Len())
	}

	if ok := w.MergeInsert(entry("c", 5)); !ok {
		t.Fatal("new id should merge")
	}
	got := w.List()
	if got[0].ID != "c" {
		t.Fatalf("merged entry should be at front, got %+v", got)
	}
}

func TestReplaceTrimsToCap(t *testing.T) {
	w := NewWindow(2)
	w.Replace([]Entry{entry("a", 1), entry("b", 2), entry("c", 3)})
	got := w.List()
	if len(got) != 2 || got[0].ID != "a" || got[1].ID != "b" {
		t.Fatalf("replace wrong: %+v", got)
	}
}

func TestClampLevel(t *testing.T) {
	for in, want := range map[int]int{-1: 1, 0: 1, 1: 1, 3: 3, 5: 5, 9: 5} {
		if got := ClampLevel(in); got != want {
			t.Fatalf("ClampLevel(%d)=%d, want %d", in, got, want)
		}
	}
}
