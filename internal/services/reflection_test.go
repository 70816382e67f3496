package services

import (
  "context"
  "errors"
  "strings"
  "testing"

  "github.com/soulsetjourneys/soulset-backend/internal/logger"
  "github.com/soulsetjourneys/soulset-backend/internal/reflection"
)

type fakeGroq struct {
  out string
  err error
}

func (f *fakeGroq) ChatCompletion(ctx context.Context, req ChatRequest) (string, error) {
  return f.out, f.err
}

func (f *fakeGroq) Configured() bool {
  return f.err == nil || !errors.Is(f.err, ErrGroqNotConfigured)
}

func newTestReflectionService(groq GroqClient) ReflectionService {
  return NewReflectionService(logger.NewNop(), groq, reflection.NewGenerator(nil))
}

func TestRequestReflectionModelJSON(t *testing.T) {
  svc := newTestReflectionService(&fakeGroq{
    out: `{"future": "Tu avances.", "shadow": "Tu doutes encore."}`,
  })
  res, err := svc.RequestReflection(context.Background(), ReflectionInput{Text: "je suis fatigué", Lang: "fr"})
  if err != nil {
    t.Fatalf("RequestReflection: %v", err)
  }
  if res.Source != SourceModel {
    t.Fatalf("Source = %q, want %q", res.Source, SourceModel)
  }
  if res.Future != "Tu avances." || res.Shadow != "Tu doutes encore." {
    t.Fatalf("unexpected pair: %+v", res)
  }
  if res.Category != reflection.CategoryTired {
    t.Fatalf("Category = %q, want %q", res.Category, reflection.CategoryTired)
  }
}

func TestRequestReflectionFencedJSON(t *testing.T) {
  svc := newTestReflectionService(&fakeGroq{
    out: "```json\n{\"future\": \"Keep going.\", \"shadow\": \"Rest first.\"}\n```",
  })
  res, err := svc.RequestReflection(context.Background(), ReflectionInput{Text: "so tired", Lang: "en"})
  if err != nil {
    t.Fatalf("RequestReflection: %v", err)
  }
  if res.Source != SourceModel || res.Future != "Keep going." {
    t.Fatalf("fenced JSON not recovered: %+v", res)
  }
}

func TestRequestReflectionSeparatorFallback(t *testing.T) {
  svc := newTestReflectionService(&fakeGroq{
    out: "You will find a steadier pace.\n---\nYour shadow wants you to stop pretending.",
  })
  res, err := svc.RequestReflection(context.Background(), ReflectionInput{Text: "feeling lost", Lang: "en"})
  if err != nil {
    t.Fatalf("RequestReflection: %v", err)
  }
  if res.Source != SourceModel {
    t.Fatalf("Source = %q, want model via separator parse", res.Source)
  }
  if res.Future == "" || res.Shadow == "" {
    t.Fatalf("half-empty pair: %+v", res)
  }
}

func TestRequestReflectionUnparseableFallsToTemplate(t *testing.T) {
  svc := newTestReflectionService(&fakeGroq{out: "sorry, I cannot answer in JSON"})
  res, err := svc.RequestReflection(context.Background(), ReflectionInput{Text: "je suis perdu", Lang: "fr"})
  if err != nil {
    t.Fatalf("RequestReflection: %v", err)
  }
  if res.Source != SourceTemplate {
    t.Fatalf("Source = %q, want %q", res.Source, SourceTemplate)
  }
  if res.Future == "" || res.Shadow == "" {
    t.Fatalf("template fallback returned empty pair: %+v", res)
  }
}

func TestRequestReflectionHalfEmptyJSONFallsToTemplate(t *testing.T) {
  svc := newTestReflectionService(&fakeGroq{out: `{"future": "only half"}`})
  res, err := svc.RequestReflection(context.Background(), ReflectionInput{Text: "stuck", Lang: "en"})
  if err != nil {
    t.Fatalf("RequestReflection: %v", err)
  }
  if res.Source != SourceTemplate {
    t.Fatalf("half-empty JSON must not reach the client; Source = %q", res.Source)
  }
  if res.Future == "" || res.Shadow == "" {
    t.Fatalf("fallback pair incomplete: %+v", res)
  }
}

func TestRequestReflectionNotConfigured(t *testing.T) {
  svc := newTestReflectionService(&fakeGroq{err: ErrGroqNotConfigured})
  res, err := svc.RequestReflection(context.Background(), ReflectionInput{Text: "je suis fatigué", Lang: "fr"})
  if err != nil {
    t.Fatalf("missing key must degrade, not fail: %v", err)
  }
  if res.Source != SourceTemplate {
    t.Fatalf("Source = %q, want %q", res.Source, SourceTemplate)
  }
}

func TestRequestReflectionProviderError(t *testing.T) {
  svc := newTestReflectionService(&fakeGroq{err: errors.New("groq http 500: boom")})
  res, err := svc.RequestReflection(context.Background(), ReflectionInput{Text: "hello", Lang: "en"})
  if err != nil {
    t.Fatalf("provider error must degrade, not fail: %v", err)
  }
  if res.Source != SourceTemplate || res.Future == "" {
    t.Fatalf("unexpected result: %+v", res)
  }
}

func TestRequestReflectionEmptyText(t *testing.T) {
  svc := newTestReflectionService(&fakeGroq{out: "{}"})
  if _, err := svc.RequestReflection(context.Background(), ReflectionInput{Text: "   ", Lang: "fr"}); err == nil {
    t.Fatal("expected error for empty text")
  }
}

func TestRequestMirrorQuoteModel(t *testing.T) {
  svc := newTestReflectionService(&fakeGroq{out: `"Tu peux encore choisir ton prochain pas."`})
  res, err := svc.RequestMirrorQuote(context.Background(), MirrorInput{Text: "journée dure", Mood: 2, Lang: "fr"})
  if err != nil {
    t.Fatalf("RequestMirrorQuote: %v", err)
  }
  if res.Source != SourceModel {
    t.Fatalf("Source = %q", res.Source)
  }
  if strings.HasPrefix(res.Quote, `"`) || strings.HasSuffix(res.Quote, `"`) {
    t.Fatalf("surrounding quotes not stripped: %q", res.Quote)
  }
}

func TestRequestMirrorQuoteFallback(t *testing.T) {
  svc := newTestReflectionService(&fakeGroq{err: ErrGroqNotConfigured})
  res, err := svc.RequestMirrorQuote(context.Background(), MirrorInput{Text: "hard day", Mood: 3, Lang: "en"})
  if err != nil {
    t.Fatalf("RequestMirrorQuote: %v", err)
  }
  if res.Source != SourceTemplate || res.Quote == "" {
    t.Fatalf("unexpected result: %+v", res)
  }
}
