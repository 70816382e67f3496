package services

import (
  "context"
  "errors"
  "net/url"
  "strings"
  "testing"
  "unicode/utf8"

  "github.com/soulsetjourneys/soulset-backend/internal/logger"
)

type fakeFal struct {
  url string
  err error
}

func (f *fakeFal) GenerateImage(ctx context.Context, prompt string) (string, error) {
  return f.url, f.err
}

func (f *fakeFal) Configured() bool {
  return !errors.Is(f.err, ErrFalNotConfigured)
}

func TestRequestAvatarGenerated(t *testing.T) {
  svc := NewAvatarService(logger.NewNop(), &fakeFal{url: "https://cdn.example.com/a.png"})
  res, err := svc.RequestAvatar(context.Background(), AvatarInput{Text: "feeling new", Lang: "en"})
  if err != nil {
    t.Fatalf("RequestAvatar: %v", err)
  }
  if res.Source != AvatarSourceGenerated || res.URL != "https://cdn.example.com/a.png" {
    t.Fatalf("unexpected result: %+v", res)
  }
}

func TestRequestAvatarSeededFallback(t *testing.T) {
  for _, ferr := range []error{ErrFalNotConfigured, errors.New("fal http 500: boom")} {
    svc := NewAvatarService(logger.NewNop(), &fakeFal{err: ferr})
    res, err := svc.RequestAvatar(context.Background(), AvatarInput{Text: "je suis fatigué", Traits: []string{"tired"}, Lang: "fr"})
    if err != nil {
      t.Fatalf("RequestAvatar with %v: %v", ferr, err)
    }
    if res.Source != AvatarSourceSeeded {
      t.Fatalf("Source = %q, want seeded", res.Source)
    }
    if !strings.HasPrefix(res.URL, dicebearBaseURL) {
      t.Fatalf("URL = %q, want dicebear prefix", res.URL)
    }
  }
}

func TestSeededAvatarURLDeterministic(t *testing.T) {
  a := SeededAvatarURL("same text", []string{"tired", "lost"})
  b := SeededAvatarURL("same text", []string{"tired", "lost"})
  if a != b {
    t.Fatalf("same input produced different URLs:\n%s\n%s", a, b)
  }
  c := SeededAvatarURL("same text", []string{"tired"})
  if a == c {
    t.Fatal("different traits must change the seed")
  }
}

func TestSeededAvatarURLTruncatesText(t *testing.T) {
  long := strings.Repeat("a", 200)
  got := SeededAvatarURL(long, nil)
  if !strings.Contains(got, strings.Repeat("a", 80)) {
    t.Fatalf("seed missing truncated text: %s", got)
  }
  if strings.Contains(got, strings.Repeat("a", 81)) {
    t.Fatalf("seed not truncated to 80 chars: %s", got)
  }
  if !strings.Contains(got, "no-traits") {
    t.Fatalf("empty selection must seed with no-traits: %s", got)
  }
}

func TestSeededAvatarURLTruncatesOnRuneBoundary(t *testing.T) {
  // 100 two-byte runes; a byte-indexed cut at 80 would split one.
  long := strings.Repeat("é", 100)
  got := SeededAvatarURL(long, nil)
  seed, err := url.QueryUnescape(strings.TrimPrefix(got, dicebearBaseURL))
  if err != nil {
    t.Fatalf("unescape seed: %v", err)
  }
  if !utf8.ValidString(seed) {
    t.Fatalf("seed is not valid UTF-8: %q", seed)
  }
  head := strings.SplitN(seed, "__", 2)[0]
  if n := utf8.RuneCountInString(head); n != 80 {
    t.Fatalf("seed head has %d runes, want 80", n)
  }
}
