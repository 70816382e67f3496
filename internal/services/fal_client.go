package services

import (
  "bytes"
  "context"
  "encoding/json"
  "errors"
  "fmt"
  "io"
  "net/http"
  "os"
  "strconv"
  "strings"
  "time"

  "github.com/soulsetjourneys/soulset-backend/internal/logger"
)

// ErrFalNotConfigured signals that no FAL_KEY is set; avatar requests
// then fall back to the deterministic DiceBear URL.
var ErrFalNotConfigured = errors.New("fal api key not configured")

type FalClient interface {
  GenerateImage(ctx context.Context, prompt string) (string, error)
  Configured() bool
}

type falClient struct {
  log        *logger.Logger
  baseURL    string
  model      string
  apiKey     string
  httpClient *http.Client
}

func NewFalClient(log *logger.Logger) FalClient {
  apiKey := strings.TrimSpace(os.Getenv("FAL_KEY"))

  baseURL := os.Getenv("FAL_BASE_URL")
  if baseURL == "" {
    baseURL = "https://fal.run"
  }

  model := os.Getenv("FAL_IMAGE_MODEL")
  if model == "" {
    model = "api/v1.2/fal-ai/flux-1.1-pro"
  }

  timeoutSec := 30
  if v := os.Getenv("FAL_TIMEOUT_SECONDS"); v != "" {
    if parsed, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && parsed > 0 {
      timeoutSec = parsed
    }
  }

  if apiKey == "" {
    log.Warn("FAL_KEY not set; avatars will use the seeded fallback URL")
  }

  return &falClient{
    log:        log.With("service", "FalClient"),
    baseURL:    baseURL,
    model:      model,
    apiKey:     apiKey,
    httpClient: &http.Client{Timeout: time.Duration(timeoutSec) * time.Second},
  }
}

func (c *falClient) Configured() bool {
  return c.apiKey != ""
}

type falImageInput struct {
  Prompt            string  `json:"prompt"`
  Width             int     `json:"width"`
  Height            int     `json:"height"`
  NumInferenceSteps int     `json:"num_inference_steps"`
  GuidanceScale     float64 `json:"guidance_scale"`
}

type falImageRequest struct {
  Input falImageInput `json:"input"`
}

// falImageResponse covers the shapes the API has been seen returning:
// a list of images, a single image object, or a bare url field.
type falImageResponse struct {
  Images []struct {
    URL string `json:"url"`
  } `json:"images"`
  Image struct {
    URL string `json:"url"`
  } `json:"image"`
  ImageURL string `json:"image_url"`
}

func (r *falImageResponse) firstURL() string {
  if len(r.Images) > 0 && r.Images[0].URL != "" {
    return r.Images[0].URL
  }
  if r.Image.URL != "" {
    return r.Image.URL
  }
  return r.ImageURL
}

func (c *falClient) GenerateImage(ctx context.Context, prompt string) (string, error) {
  if c.apiKey == "" {
    return "", ErrFalNotConfigured
  }

  req := falImageRequest{
    Input: falImageInput{
      Prompt:            prompt,
      Width:             768,
      Height:            768,
      NumInferenceSteps: 24,
      GuidanceScale:     3.5,
    },
  }

  var buf bytes.Buffer
  if err := json.NewEncoder(&buf).Encode(req); err != nil {
    return "", err
  }

  httpReq, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/"+c.model, &buf)
  if err != nil {
    return "", err
  }
  httpReq.Header.Set("Authorization", "Key "+c.apiKey)
  httpReq.Header.Set("Content-Type", "application/json")

  resp, err := c.httpClient.Do(httpReq)
  if err != nil {
    return "", err
  }
  raw, readErr := io.ReadAll(resp.Body)
  _ = resp.Body.Close()
  if readErr != nil {
    return "", readErr
  }
  if resp.StatusCode < 200 || resp.StatusCode >= 300 {
    return "", fmt.Errorf("fal http %d: %s", resp.StatusCode, string(raw))
  }

  var out falImageResponse
  if err := json.Unmarshal(raw, &out); err != nil {
    return "", fmt.Errorf("fal decode error: %w; raw=%s", err, string(raw))
  }
  url := out.firstURL()
  if url == "" {
    return "", fmt.Errorf("fal response has no image url")
  }
  return url, nil
}
