package services

import (
  "context"
  "errors"
  "net/url"
  "strings"

  "github.com/soulsetjourneys/soulset-backend/internal/logger"
  "github.com/soulsetjourneys/soulset-backend/internal/reflection"
)

const dicebearBaseURL = "https://api.dicebear.com/9.x/adventurer/svg?seed="

type AvatarInput struct {
  ClientID string
  Text     string
  Traits   []string
  Lang     string
}

type AvatarResult struct {
  URL    string
  Source string
}

const (
  AvatarSourceGenerated = "generated"
  AvatarSourceSeeded    = "seeded"
)

type AvatarService interface {
  RequestAvatar(ctx context.Context, in AvatarInput) (AvatarResult, error)
}

type avatarService struct {
  log *logger.Logger
  fal FalClient
}

func NewAvatarService(log *logger.Logger, fal FalClient) AvatarService {
  return &avatarService{
    log: log.With("service", "AvatarService"),
    fal: fal,
  }
}

func avatarPrompt(text string, loc reflection.Locale) string {
  if loc == reflection.LocaleFR || loc == reflection.LocaleAR {
    return `Portrait 3D stylisé qui symbolise l'état intérieur actuel de la personne.
Pas de visage réaliste précis, plutôt une silhouette ou un avatar symbolique.
Ambiance douce, légèrement mystique, fond sombre avec un halo de lumière.
Voici le texte qui décrit son état : """` + text + `""" .`
  }
  return `Stylized 3D portrait symbolizing the user's current inner state.
No realistic specific face, more like an iconic avatar.
Soft, slightly mystical vibe, dark background with subtle glow.
User text: """` + text + `""" .`
}

// SeededAvatarURL builds the deterministic fallback URL. The seed is
// derived from the first 80 characters of the text and the active
// trait IDs, so the same state always renders the same avatar.
func SeededAvatarURL(text string, traits []string) string {
  head := text
  if r := []rune(head); len(r) > 80 {
    head = string(r[:80])
  }
  traitPart := "no-traits"
  if len(traits) > 0 {
    traitPart = strings.Join(traits, "-")
  }
  seed := head + "__" + traitPart
  return dicebearBaseURL + url.QueryEscape(seed)
}

func (s *avatarService) RequestAvatar(ctx context.Context, in AvatarInput) (AvatarResult, error) {
  text := strings.TrimSpace(in.Text)
  if text == "" {
    return AvatarResult{}, errors.New("text required")
  }
  loc := reflection.ResolveLocale(in.Lang)

  imageURL, err := s.fal.GenerateImage(ctx, avatarPrompt(text, loc))
  if err == nil && imageURL != "" {
    return AvatarResult{URL: imageURL, Source: AvatarSourceGenerated}, nil
  }
  if err != nil && !errors.Is(err, ErrFalNotConfigured) {
    s.log.Warn("avatar generation failed; using seeded fallback", "clientID", in.ClientID, "error", err)
  }
  return AvatarResult{URL: SeededAvatarURL(text, in.Traits), Source: AvatarSourceSeeded}, nil
}
