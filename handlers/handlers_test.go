package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/adamspd/StudyGuide/content"
	"github.com/adamspd/StudyGuide/db"
	"github.com/adamspd/StudyGuide/models"
)

var unit5Answers = map[string]string{
	"1": "B) User Interface, Inference Engine, Knowledge Base",
	"2": "B) Forward Chaining",
	"3": "C) Prolog",
	"4": "B) Returns the first element",
	"5": "B) DENDRAL",
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	database, err := db.InitDB(filepath.Join(t.TempDir(), "catalog.db"))
	if err != nil {
		t.Fatalf("init db: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	catalog, err := content.LoadCatalog()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	if _, err := database.SeedCatalog(catalog.Guides()); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return NewRouter(database)
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func submitBody(t *testing.T, answers map[string]string) string {
	t.Helper()
	data, err := json.Marshal(models.SubmitRequest{Answers: answers})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return string(data)
}

// TestHealth verifies the health endpoint and the request ID header.
func TestHealth(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodGet, "/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Fatalf("unexpected body %q", rec.Body.String())
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Fatalf("expected a generated X-Request-ID")
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("expected CORS header, got %q", got)
	}
}

// TestRequestIDPassthrough verifies a client request ID is echoed back.
func TestRequestIDPassthrough(t *testing.T) {
	h := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if got := rec.Header().Get("X-Request-ID"); got != "abc-123" {
		t.Fatalf("expected abc-123, got %q", got)
	}
}

// TestPreflight verifies OPTIONS requests short-circuit with 200.
func TestPreflight(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodOptions, "/guides/unit5/quiz", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

// TestListGuides verifies the guide list is returned in catalog order.
func TestListGuides(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodGet, "/guides", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body struct {
		Guides []models.GuideSummary `json:"guides"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Guides) != 3 || body.Guides[0].ID != "unit5" {
		t.Fatalf("unexpected guides %+v", body.Guides)
	}
	if !body.Guides[0].HasQuiz || body.Guides[1].HasQuiz {
		t.Fatalf("expected only unit5 to have a quiz, got %+v", body.Guides)
	}

	rec = do(t, h, http.MethodPost, "/guides", "{}")
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
}

// TestGuideAndTopic verifies guide detail and topic lookups, including 404s.
func TestGuideAndTopic(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodGet, "/guides/uncertainty", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var guide models.GuideDetail
	if err := json.Unmarshal(rec.Body.Bytes(), &guide); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(guide.Topics) != 13 {
		t.Fatalf("expected 13 topics, got %d", len(guide.Topics))
	}

	rec = do(t, h, http.MethodGet, "/guides/uncertainty/topics/bayesian-networks", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var topic struct {
		GuideID string       `json:"guide_id"`
		Topic   models.Topic `json:"topic"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &topic); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if topic.Topic.Slug != "bayesian-networks" || len(topic.Topic.Blocks) == 0 {
		t.Fatalf("unexpected topic %+v", topic.Topic)
	}

	for _, path := range []string{"/guides/nope", "/guides/uncertainty/topics/nope", "/guides/unit5/other", "/guides/"} {
		if rec := do(t, h, http.MethodGet, path, ""); rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404 for %s, got %d", path, rec.Code)
		}
	}
}

// TestGetQuizHidesAnswers verifies the quiz is served without correct indexes.
func TestGetQuizHidesAnswers(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodGet, "/guides/unit5/quiz", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), `"correct"`) {
		t.Fatalf("quiz leaked correct answers: %s", rec.Body.String())
	}
	var body struct {
		Quiz models.Quiz `json:"quiz"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Quiz.Questions) != 5 || len(body.Quiz.Questions[0].Options) != 4 {
		t.Fatalf("unexpected quiz %+v", body.Quiz)
	}

	if rec := do(t, h, http.MethodGet, "/guides/planning/quiz", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for a guide without a quiz, got %d", rec.Code)
	}
}

// TestSubmitPerfect verifies a fully correct submission scores 5/5 and celebrates.
func TestSubmitPerfect(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodPost, "/guides/unit5/quiz", submitBody(t, unit5Answers))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp models.SubmitResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Result.Correct != 5 || resp.Result.Percentage != 100 || resp.Result.Tier != models.TierPerfect {
		t.Fatalf("unexpected result %+v", resp.Result)
	}
	if !resp.Celebrate || resp.Summary != "Your Score: 5/5 (100%)" {
		t.Fatalf("unexpected response %+v", resp)
	}
}

// TestSubmitPartial verifies wrong answers lower the tier and are listed as missed.
func TestSubmitPartial(t *testing.T) {
	h := newTestRouter(t)

	answers := map[string]string{}
	for k, v := range unit5Answers {
		answers[k] = v
	}
	answers["2"] = "A) Backward Chaining"
	answers["5"] = "A) MYCIN"

	rec := do(t, h, http.MethodPost, "/guides/unit5/quiz", submitBody(t, answers))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp models.SubmitResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Result.Correct != 3 || resp.Result.Percentage != 60 || resp.Result.Tier != models.TierGood {
		t.Fatalf("unexpected result %+v", resp.Result)
	}
	if resp.Celebrate {
		t.Fatalf("expected no celebration for 3/5")
	}
	if len(resp.Result.Missed) != 2 || resp.Result.Missed[0] != 2 || resp.Result.Missed[1] != 5 {
		t.Fatalf("expected missed [2 5], got %v", resp.Result.Missed)
	}
}

// TestSubmitIncomplete verifies an incomplete submission is rejected with the missing ordinals.
func TestSubmitIncomplete(t *testing.T) {
	h := newTestRouter(t)

	answers := map[string]string{"1": unit5Answers["1"], "3": "", "4": unit5Answers["4"]}
	rec := do(t, h, http.MethodPost, "/guides/unit5/quiz", submitBody(t, answers))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var body struct {
		Error   string `json:"error"`
		Missing []int  `json:"missing"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Error != incompleteMessage {
		t.Fatalf("expected %q, got %q", incompleteMessage, body.Error)
	}
	if len(body.Missing) != 3 || body.Missing[0] != 2 || body.Missing[1] != 3 || body.Missing[2] != 5 {
		t.Fatalf("expected missing [2 3 5], got %v", body.Missing)
	}

	if rec := do(t, h, http.MethodPost, "/guides/unit5/quiz", "not json"); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid JSON, got %d", rec.Code)
	}
}

// TestSearch verifies search hits and the empty-term guard.
func TestSearch(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodGet, "/search?q=DENDRAL", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body struct {
		Hits []models.SearchHit `json:"hits"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Hits) == 0 || body.Hits[0].GuideID != "unit5" {
		t.Fatalf("unexpected hits %+v", body.Hits)
	}

	rec = do(t, h, http.MethodGet, "/search?q=zzzqqq", "")
	if !strings.Contains(rec.Body.String(), `"hits":[]`) {
		t.Fatalf("expected empty hit list, got %s", rec.Body.String())
	}

	if rec := do(t, h, http.MethodGet, "/search", ""); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without a term, got %d", rec.Code)
	}
}

// TestStats verifies catalog statistics come from the seeded store.
func TestStats(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodGet, "/stats", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var stats models.CatalogStats
	if err := json.Unmarshal(rec.Body.Bytes(), &stats); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if stats.Guides != 3 || stats.Topics != 31 || stats.QuizQuestions != 5 {
		t.Fatalf("unexpected stats %+v", stats)
	}
	if stats.BlocksByKind[models.BlockTable] == 0 {
		t.Fatalf("expected table blocks to be counted, got %v", stats.BlocksByKind)
	}
}
