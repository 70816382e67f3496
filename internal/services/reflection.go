package services

import (
  "context"
  "encoding/json"
  "errors"
  "strconv"
  "strings"

  "github.com/soulsetjourneys/soulset-backend/internal/logger"
  "github.com/soulsetjourneys/soulset-backend/internal/reflection"
)

// Source records where the returned text came from.
const (
  SourceModel    = "model"
  SourceTemplate = "template"
)

type ReflectionInput struct {
  ClientID string
  Text     string
  Traits   []string
  Lang     string
}

type ReflectionResult struct {
  Future   string
  Shadow   string
  Category reflection.Category
  Locale   reflection.Locale
  Source   string
}

type MirrorInput struct {
  ClientID string
  Text     string
  Mood     int
  Lang     string
}

type MirrorResult struct {
  Quote    string
  Category reflection.Category
  Locale   reflection.Locale
  Source   string
}

type ReflectionService interface {
  RequestReflection(ctx context.Context, in ReflectionInput) (ReflectionResult, error)
  RequestMirrorQuote(ctx context.Context, in MirrorInput) (MirrorResult, error)
}

type reflectionService struct {
  log  *logger.Logger
  groq GroqClient
  gen  *reflection.Generator
}

func NewReflectionService(log *logger.Logger, groq GroqClient, gen *reflection.Generator) ReflectionService {
  return &reflectionService{
    log:  log.With("service", "ReflectionService"),
    groq: groq,
    gen:  gen,
  }
}

func langLabel(loc reflection.Locale) string {
  switch loc {
  case reflection.LocaleFR:
    return "en français"
  case reflection.LocaleAR:
    return "en arabe"
  default:
    return "in English"
  }
}

const mirrorSystemPrompt = `Tu es une voix de guidance très courte, comme une phrase de thérapeute + poète.
Tu réponds par UNE SEULE PHRASE (max 2), sous forme de "quote" inspirante mais ancrée.
Tu t'adresses à la deuxième personne ("tu").
Pas de smileys, pas de hashtags.`

func dualitySystemPrompt(loc reflection.Locale) string {
  label := langLabel(loc)
  return `Tu es "Duality", la conscience intérieure de l'utilisateur.
Tu analyses son texte et tu renvoies STRICTEMENT un JSON de la forme :

{
  "future": "2 à 4 phrases sur la trajectoire probable, en mode miroir, ` + label + `.",
  "shadow": "2 à 4 phrases sur ce que son ombre lui dit, ` + label + `."
}

- Ne mets aucun texte autour du JSON.
- Pas de markdown, pas de commentaire, pas de texte avant ou après.
- Tu parles ` + label + `.`
}

func dualityUserPrompt(text string, traits []string) string {
  traitsText := "aucun trait précisé"
  if len(traits) > 0 {
    traitsText = strings.Join(traits, ", ")
  }
  return "Texte de l'utilisateur :\n\"\"\"" + text + "\"\"\"\n\nTraits de personnalité actifs :\n" + traitsText
}

func mirrorUserPrompt(text string, mood int, loc reflection.Locale) string {
  moodStr := strconv.Itoa(mood)
  if loc == reflection.LocaleFR {
    return "Résumé de la personne : \"\"\"" + text + "\"\"\".\n" +
      "Niveau ressenti de la personne (1 très bas, 5 très bien) : " + moodStr + ".\n" +
      "Renvoie une seule phrase miroir qui pourrait l'aider à se recentrer."
  }
  return "User summary: \"\"\"" + text + "\"\"\".\n" +
    "User feeling level (1 very low, 5 very good): " + moodStr + ".\n" +
    "Return one short mirror sentence that might help them recentre."
}

// stripCodeFence removes a surrounding ```...``` block when the model
// wraps its JSON despite instructions.
func stripCodeFence(s string) string {
  s = strings.TrimSpace(s)
  if !strings.HasPrefix(s, "```") {
    return s
  }
  s = strings.TrimPrefix(s, "```json")
  s = strings.TrimPrefix(s, "```")
  s = strings.TrimSuffix(strings.TrimSpace(s), "```")
  return strings.TrimSpace(s)
}

// parseReflection walks the recovery ladder over raw model output:
// strict JSON first, then a "---" separated pair. Either both halves
// come out non-empty or the parse fails as a whole, so callers never
// render a half-filled mirror.
func parseReflection(raw string) (reflection.Reflection, bool) {
  raw = stripCodeFence(raw)

  var obj struct {
    Future string `json:"future"`
    Shadow string `json:"shadow"`
  }
  if err := json.Unmarshal([]byte(raw), &obj); err == nil {
    f := strings.TrimSpace(obj.Future)
    s := strings.TrimSpace(obj.Shadow)
    if f != "" && s != "" {
      return reflection.Reflection{Future: f, Shadow: s}, true
    }
    return reflection.Reflection{}, false
  }

  if parts := strings.SplitN(raw, "---", 2); len(parts) == 2 {
    f := strings.TrimSpace(parts[0])
    s := strings.TrimSpace(parts[1])
    if f != "" && s != "" {
      return reflection.Reflection{Future: f, Shadow: s}, true
    }
  }
  return reflection.Reflection{}, false
}

func (s *reflectionService) RequestReflection(ctx context.Context, in ReflectionInput) (ReflectionResult, error) {
  text := strings.TrimSpace(in.Text)
  if text == "" {
    return ReflectionResult{}, errors.New("text required")
  }

  loc := reflection.ResolveLocale(in.Lang)
  cat := reflection.Classify(text, loc)

  res := ReflectionResult{Category: cat, Locale: loc}

  raw, err := s.groq.ChatCompletion(ctx, ChatRequest{
    Model: GroqModelFast,
    Messages: []ChatMessage{
      {Role: "system", Content: dualitySystemPrompt(loc)},
      {Role: "user", Content: dualityUserPrompt(text, in.Traits)},
    },
    Temperature: 0.7,
    MaxTokens:   200,
  })
  if err == nil {
    if pair, ok := parseReflection(raw); ok {
      res.Future = pair.Future
      res.Shadow = pair.Shadow
      res.Source = SourceModel
      return res, nil
    }
    s.log.Warn("model reflection unparseable; using template", "clientID", in.ClientID, "category", cat)
  } else if !errors.Is(err, ErrGroqNotConfigured) {
    s.log.Warn("groq reflection failed; using template", "clientID", in.ClientID, "error", err)
  }

  pair := s.gen.GenerateReflection(cat, loc)
  res.Future = pair.Future
  res.Shadow = pair.Shadow
  res.Source = SourceTemplate
  return res, nil
}

func (s *reflectionService) RequestMirrorQuote(ctx context.Context, in MirrorInput) (MirrorResult, error) {
  text := strings.TrimSpace(in.Text)
  if text == "" {
    return MirrorResult{}, errors.New("text required")
  }

  loc := reflection.ResolveLocale(in.Lang)
  cat := reflection.Classify(text, loc)

  res := MirrorResult{Category: cat, Locale: loc}

  raw, err := s.groq.ChatCompletion(ctx, ChatRequest{
    Model: GroqModelVersatile,
    Messages: []ChatMessage{
      {Role: "system", Content: mirrorSystemPrompt},
      {Role: "user", Content: mirrorUserPrompt(text, in.Mood, loc)},
    },
    Temperature: 0.9,
    MaxTokens:   120,
  })
  if err == nil {
    quote := strings.Trim(strings.TrimSpace(raw), "\"")
    if quote != "" {
      res.Quote = quote
      res.Source = SourceModel
      return res, nil
    }
  } else if !errors.Is(err, ErrGroqNotConfigured) {
    s.log.Warn("groq mirror quote failed; using template", "clientID", in.ClientID, "error", err)
  }

  res.Quote = s.gen.GenerateMirrorQuote(cat, loc)
  res.Source = SourceTemplate
  return res, nil
}
