package handlers

import (
  "encoding/json"
  "net/http"
  "net/http/httptest"
  "strings"
  "testing"

  "github.com/gin-gonic/gin"

  "github.com/soulsetjourneys/soulset-backend/internal/clientstate"
  "github.com/soulsetjourneys/soulset-backend/internal/logger"
  "github.com/soulsetjourneys/soulset-backend/internal/services"
)

func newTestMoodHandler(t *testing.T) *MoodHandler {
  t.Helper()
  state := clientstate.NewState(clientstate.NewMemoryStore())
  moodSvc := services.NewMoodService(logger.NewNop(), state, nil, nil, nil)
  chartSvc, err := services.NewChartService(logger.NewNop())
  if err != nil {
    t.Fatalf("NewChartService: %v", err)
  }
  return NewMoodHandler(logger.NewNop(), moodSvc, chartSvc)
}

func postJSON(body string) (*httptest.ResponseRecorder, *gin.Context) {
  w := httptest.NewRecorder()
  c, _ := gin.CreateTestContext(w)
  req := httptest.NewRequest(http.MethodPost, "/api/mood", strings.NewReader(body))
  req.Header.Set("Content-Type", "application/json")
  c.Request = req
  return w, c
}

func TestSaveMissingClientID(t *testing.T) {
  gin.SetMode(gin.TestMode)
  h := newTestMoodHandler(t)

  w, c := postJSON(`{"level":3}`)
  h.Save(c)

  if w.Code != http.StatusBadRequest {
    t.Fatalf("status = %d, want 400", w.Code)
  }
  // Error bodies are a flat {"error": "<message>"} object.
  var body struct {
    Error string `json:"error"`
  }
  if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
    t.Fatalf("unmarshal error body: %v", err)
  }
  if body.Error == "" {
    t.Fatalf("error body missing message: %s", w.Body.String())
  }
}

func TestSaveMoodRoundTrip(t *testing.T) {
  gin.SetMode(gin.TestMode)
  h := newTestMoodHandler(t)

  w, c := postJSON(`{"level":4,"note":"ok","clientId":"c1"}`)
  h.Save(c)

  if w.Code != http.StatusOK {
    t.Fatalf("status = %d, want 200; body: %s", w.Code, w.Body.String())
  }
  var body struct {
    Entry struct {
      Level int    `json:"level"`
      Note  string `json:"note"`
    } `json:"entry"`
  }
  if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
    t.Fatalf("unmarshal: %v", err)
  }
  if body.Entry.Level != 4 || body.Entry.Note != "ok" {
    t.Fatalf("entry = %+v", body.Entry)
  }
}
