package content

import (
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/adamspd/StudyGuide/models"
	"github.com/adamspd/StudyGuide/quiz"
)

// TestLoadCatalogEmbedded verifies the embedded guides load and validate.
func TestLoadCatalogEmbedded(t *testing.T) {
	catalog, err := LoadCatalog()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	guides := catalog.Guides()
	if len(guides) != 3 {
		t.Fatalf("expected 3 guides, got %d", len(guides))
	}
	expectedOrder := []string{"unit5", "uncertainty", "planning"}
	for i, id := range expectedOrder {
		if guides[i].ID != id {
			t.Fatalf("expected guide %d to be %q, got %q", i, id, guides[i].ID)
		}
	}

	expectedTopics := map[string]int{"unit5": 8, "uncertainty": 13, "planning": 10}
	for id, count := range expectedTopics {
		guide, ok := catalog.Guide(id)
		if !ok {
			t.Fatalf("expected guide %q", id)
		}
		if len(guide.Topics) != count {
			t.Fatalf("expected %d topics in %s, got %d", count, id, len(guide.Topics))
		}
	}
}

// TestUnit5Quiz verifies the expert systems quiz matches its known answers.
func TestUnit5Quiz(t *testing.T) {
	catalog, err := LoadCatalog()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	guide, _ := catalog.Guide("unit5")
	if guide.Quiz == nil {
		t.Fatalf("expected unit5 to have a quiz")
	}
	if err := quiz.Validate(guide.Quiz); err != nil {
		t.Fatalf("validate quiz: %v", err)
	}
	expected := []string{
		"B) User Interface, Inference Engine, Knowledge Base",
		"B) Forward Chaining",
		"C) Prolog",
		"B) Returns the first element",
		"B) DENDRAL",
	}
	sub := models.Submission{}
	for i, question := range guide.Quiz.Questions {
		if question.CorrectOption() != expected[i] {
			t.Fatalf("question %d: expected %q, got %q", question.Ordinal, expected[i], question.CorrectOption())
		}
		sub[question.Ordinal] = expected[i]
	}
	result, err := quiz.Evaluate(guide.Quiz, sub)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if result.Correct != 5 || result.Tier != models.TierPerfect {
		t.Fatalf("expected perfect score, got %+v", result)
	}

	for _, id := range []string{"uncertainty", "planning"} {
		other, _ := catalog.Guide(id)
		if other.Quiz != nil {
			t.Fatalf("expected %s to have no quiz", id)
		}
	}
}

// TestCatalogTopicLookup verifies topics resolve by slug and by sidebar label.
func TestCatalogTopicLookup(t *testing.T) {
	catalog, err := LoadCatalog()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	bySlug, ok := catalog.Topic("unit5", "prolog")
	if !ok {
		t.Fatalf("expected topic prolog")
	}
	byLabel, ok := catalog.Topic("unit5", "Prolog Programming")
	if !ok {
		t.Fatalf("expected topic by label")
	}
	if bySlug != byLabel {
		t.Fatalf("expected slug and label to resolve to the same topic")
	}
	if _, ok := catalog.Topic("unit5", "missing"); ok {
		t.Fatalf("expected unknown topic to miss")
	}
	if _, ok := catalog.Topic("missing", "prolog"); ok {
		t.Fatalf("expected unknown guide to miss")
	}
}

// TestAlarmTable verifies table cells survive decoding as literal strings.
func TestAlarmTable(t *testing.T) {
	catalog, err := LoadCatalog()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	topic, ok := catalog.Topic("uncertainty", "bayesian-networks")
	if !ok {
		t.Fatalf("expected bayesian-networks topic")
	}
	for _, block := range topic.Blocks {
		if block.Kind != models.BlockTable {
			continue
		}
		if len(block.Rows) != 4 {
			t.Fatalf("expected 4 CPT rows, got %d", len(block.Rows))
		}
		if block.Rows[0][0] != "True" || block.Rows[3][2] != "0.001" {
			t.Fatalf("unexpected CPT rows %v", block.Rows)
		}
		return
	}
	t.Fatalf("expected a table block")
}

// TestParseGuideRejectsUnknownFields verifies typos in guide files are reported.
func TestParseGuideRejectsUnknownFields(t *testing.T) {
	payload := `id: g
title: G
topics:
  - slug: a
    title: A
    blocks:
      - kind: text
        bodyy: typo
`
	if _, err := ParseGuide([]byte(payload)); err == nil || !strings.Contains(err.Error(), "bodyy") {
		t.Fatalf("expected unknown field error, got %v", err)
	}
}

// TestParseGuideRejectsMultipleDocuments verifies a file holds exactly one guide.
func TestParseGuideRejectsMultipleDocuments(t *testing.T) {
	payload := "id: a\ntitle: A\n---\nid: b\ntitle: B\n"
	_, err := ParseGuide([]byte(payload))
	if err == nil || !strings.Contains(err.Error(), "multiple documents") {
		t.Fatalf("expected multiple documents error, got %v", err)
	}
}

// TestNormalizeGuideCollectsIssues verifies every problem is reported at once.
func TestNormalizeGuideCollectsIssues(t *testing.T) {
	payload := `id: " broken "
title: Broken
topics:
  - slug: a
    title: A
    blocks:
      - kind: table
        columns: [x, y]
        rows:
          - ["1", "2"]
          - [only]
  - slug: a
    title: Again
    blocks:
      - kind: sparkle
        body: nope
      - kind: text
        style: info
        body: styled text
quiz:
  topic: nowhere
  questions: []
`
	_, err := ParseGuide([]byte(payload))
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	fields := map[string]bool{}
	for _, issue := range validationErr.Issues {
		fields[issue.Field] = true
	}
	for _, field := range []string{
		"topics[0].blocks[0].rows[1]",
		"topics[1].slug",
		"topics[1].blocks[0].kind",
		"topics[1].blocks[1].style",
		"quiz.topic",
		"quiz.questions",
	} {
		if !fields[field] {
			t.Fatalf("expected issue for %s, got %+v", field, validationErr.Issues)
		}
	}
	if fields["id"] {
		t.Fatalf("expected id to be trimmed, got issue")
	}
}

// TestNormalizeGuideDefaults verifies labels and callout styles get defaults.
func TestNormalizeGuideDefaults(t *testing.T) {
	payload := `id: g
title: G
topics:
  - slug: a
    title: Topic A
    blocks:
      - kind: callout
        body: note
      - kind: code
        body: x := 1
`
	guide, err := ParseGuide([]byte(payload))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	topic := guide.Topics[0]
	if topic.Label != "Topic A" {
		t.Fatalf("expected label to default to title, got %q", topic.Label)
	}
	if topic.Blocks[0].Style != models.CalloutInfo {
		t.Fatalf("expected info style, got %q", topic.Blocks[0].Style)
	}
	if topic.Blocks[1].Language != "text" {
		t.Fatalf("expected text language, got %q", topic.Blocks[1].Language)
	}
}

// TestLoadFSRejectsDuplicateIDs verifies guide ids are unique across files.
func TestLoadFSRejectsDuplicateIDs(t *testing.T) {
	guide := []byte("id: same\ntitle: T\ntopics:\n  - slug: a\n    title: A\n    blocks:\n      - kind: text\n        body: b\n")
	fsys := fstest.MapFS{
		"one.yaml": {Data: guide},
		"two.yaml": {Data: guide},
	}
	if _, err := LoadFS(fsys); err == nil || !strings.Contains(err.Error(), "duplicate guide id") {
		t.Fatalf("expected duplicate id error, got %v", err)
	}
	if _, err := LoadFS(fstest.MapFS{}); err == nil {
		t.Fatalf("expected error for empty catalog")
	}
}
