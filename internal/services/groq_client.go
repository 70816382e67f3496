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

// ErrGroqNotConfigured is returned when no API key is set. Callers
// treat it as a signal to use the local fallback text, not as a
// failure.
var ErrGroqNotConfigured = errors.New("groq api key not configured")

const (
  GroqModelFast      = "llama-3.1-8b-instant"
  GroqModelVersatile = "llama-3.3-70b-versatile"
)

type ChatMessage struct {
  Role    string `json:"role"`
  Content string `json:"content"`
}

type ChatRequest struct {
  Model       string        `json:"model"`
  Messages    []ChatMessage `json:"messages"`
  Temperature float64       `json:"temperature,omitempty"`
  MaxTokens   int           `json:"max_tokens,omitempty"`
}

type GroqClient interface {
  ChatCompletion(ctx context.Context, req ChatRequest) (string, error)
  Configured() bool
}

type groqClient struct {
  log        *logger.Logger
  baseURL    string
  apiKey     string
  httpClient *http.Client
}

// NewGroqClient reads GROQ_API_KEY, GROQ_BASE_URL and
// GROQ_TIMEOUT_SECONDS. A missing key is not a constructor error: the
// client is returned unconfigured and every call yields
// ErrGroqNotConfigured, so the reflection pipeline degrades to local
// templates instead of refusing to start.
func NewGroqClient(log *logger.Logger) GroqClient {
  apiKey := strings.TrimSpace(os.Getenv("GROQ_API_KEY"))

  baseURL := os.Getenv("GROQ_BASE_URL")
  if baseURL == "" {
    baseURL = "https://api.groq.com/openai"
  }

  timeoutSec := 30
  if v := os.Getenv("GROQ_TIMEOUT_SECONDS"); v != "" {
    if parsed, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && parsed > 0 {
      timeoutSec = parsed
    }
  }

  if apiKey == "" {
    log.Warn("GROQ_API_KEY not set; reflections will use local templates")
  }

  return &groqClient{
    log:        log.With("service", "GroqClient"),
    baseURL:    baseURL,
    apiKey:     apiKey,
    httpClient: &http.Client{Timeout: time.Duration(timeoutSec) * time.Second},
  }
}

func (c *groqClient) Configured() bool {
  return c.apiKey != ""
}

type groqHTTPError struct {
  StatusCode int
  Body       string
}

func (e *groqHTTPError) Error() string {
  return fmt.Sprintf("groq http %d: %s", e.StatusCode, e.Body)
}

type chatCompletionResponse struct {
  Choices []struct {
    Message struct {
      Content string `json:"content"`
    } `json:"message"`
  } `json:"choices"`
}

// ChatCompletion performs a single request with no automatic retry:
// reflection text is interactive and a fallback template beats a slow
// second attempt.
func (c *groqClient) ChatCompletion(ctx context.Context, req ChatRequest) (string, error) {
  if c.apiKey == "" {
    return "", ErrGroqNotConfigured
  }

  var buf bytes.Buffer
  if err := json.NewEncoder(&buf).Encode(req); err != nil {
    return "", err
  }

  httpReq, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/v1/chat/completions", &buf)
  if err != nil {
    return "", err
  }
  httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
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
    return "", &groqHTTPError{StatusCode: resp.StatusCode, Body: string(raw)}
  }

  var out chatCompletionResponse
  if err := json.Unmarshal(raw, &out); err != nil {
    return "", fmt.Errorf("groq decode error: %w; raw=%s", err, string(raw))
  }
  if len(out.Choices) == 0 {
    return "", fmt.Errorf("groq response has no choices")
  }
  content := strings.TrimSpace(out.Choices[0].Message.Content)
  if content == "" {
    return "", fmt.Errorf("groq response content empty")
  }
  return content, nil
}
