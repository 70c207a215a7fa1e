package models

import "fmt"

// Tier is the feedback band a quiz score falls into
type Tier string

const (
	TierPerfect    Tier = "perfect"
	TierGood       Tier = "good"
	TierNeedsStudy Tier = "needs study"
)

// Quiz is the fixed five-question multiple-choice check attached to a guide.
// Topic is the slug of the page the quiz is shown on.
type Quiz struct {
	Title     string     `json:"title" yaml:"title"`
	Topic     string     `json:"topic" yaml:"topic"`
	Questions []Question `json:"questions" yaml:"questions"`
}

// Question has four literal options; Correct indexes the right one and is never serialized to clients
type Question struct {
	Ordinal int      `json:"ordinal" yaml:"ordinal"`
	Prompt  string   `json:"prompt" yaml:"prompt"`
	Options []string `json:"options" yaml:"options"`
	Correct int      `json:"-" yaml:"correct"`
}

// CorrectOption returns the literal of the correct option, or "" when the index is out of range
func (q Question) CorrectOption() string {
	if q.Correct < 0 || q.Correct >= len(q.Options) {
		return ""
	}
	return q.Options[q.Correct]
}

// Submission maps question ordinal to the option literal the user picked
type Submission map[int]string

// ScoreResult is the outcome of evaluating a complete submission
type ScoreResult struct {
	Correct    int    `json:"correct"`
	Total      int    `json:"total"`
	Percentage int    `json:"percentage"`
	Tier       Tier   `json:"tier"`
	Message    string `json:"message"`
	Missed     []int  `json:"missed"`
}

// Summary renders the score line shown above the tier message
func (r ScoreResult) Summary() string {
	return fmt.Sprintf("Your Score: %d/%d (%d%%)", r.Correct, r.Total, r.Percentage)
}

// Perfect reports whether the caller should celebrate
func (r ScoreResult) Perfect() bool {
	return r.Tier == TierPerfect
}

// SubmitRequest is the body of POST /guides/{id}/quiz.
// Keys are ordinals as strings since JSON object keys are strings.
type SubmitRequest struct {
	Answers map[string]string `json:"answers"`
}

// SubmitResponse wraps a score for HTTP clients
type SubmitResponse struct {
	GuideID   string      `json:"guide_id"`
	Result    ScoreResult `json:"result"`
	Summary   string      `json:"summary"`
	Celebrate bool        `json:"celebrate"`
}
