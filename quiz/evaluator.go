// Package quiz scores the five-question multiple-choice quiz attached to a guide.
package quiz

import (
	"errors"
	"fmt"
	"strings"

	"github.com/adamspd/StudyGuide/models"
)

const (
	QuestionCount     = 5
	OptionCount       = 4
	PointsPerQuestion = 100 / QuestionCount
)

// ErrIncompleteSubmission is returned when a question has no selected option.
var ErrIncompleteSubmission = errors.New("incomplete submission")

var tierMessages = map[models.Tier]string{
	models.TierPerfect:    "🎉 Perfect Score! You've mastered the material!",
	models.TierGood:       "👍 Good job! Review the missed topics for better understanding.",
	models.TierNeedsStudy: "📚 Keep studying! Go through the sections again.",
}

// Validate checks the shape of a quiz: five questions numbered 1..5 in order,
// each with four distinct non-empty options and a correct index in range.
func Validate(q *models.Quiz) error {
	if q == nil {
		return errors.New("quiz is nil")
	}
	if len(q.Questions) != QuestionCount {
		return fmt.Errorf("quiz must have %d questions, got %d", QuestionCount, len(q.Questions))
	}
	for i, question := range q.Questions {
		if question.Ordinal != i+1 {
			return fmt.Errorf("question %d: ordinal %d out of order", i+1, question.Ordinal)
		}
		if strings.TrimSpace(question.Prompt) == "" {
			return fmt.Errorf("question %d: prompt is required", question.Ordinal)
		}
		if len(question.Options) != OptionCount {
			return fmt.Errorf("question %d: must have %d options, got %d", question.Ordinal, OptionCount, len(question.Options))
		}
		seen := make(map[string]bool, OptionCount)
		for _, option := range question.Options {
			if strings.TrimSpace(option) == "" {
				return fmt.Errorf("question %d: empty option", question.Ordinal)
			}
			if seen[option] {
				return fmt.Errorf("question %d: duplicate option %q", question.Ordinal, option)
			}
			seen[option] = true
		}
		if question.Correct < 0 || question.Correct >= len(question.Options) {
			return fmt.Errorf("question %d: correct index %d out of range", question.Ordinal, question.Correct)
		}
	}
	return nil
}

// Missing returns the ordinals that have no selection, in order.
// An empty string counts as no selection.
func Missing(q *models.Quiz, sub models.Submission) []int {
	var missing []int
	for _, question := range q.Questions {
		if sub[question.Ordinal] == "" {
			missing = append(missing, question.Ordinal)
		}
	}
	return missing
}

// Evaluate scores a complete submission. A selection counts only when it is
// exactly the literal of the correct option. Evaluate never partially scores:
// if any question is unanswered it returns ErrIncompleteSubmission.
func Evaluate(q *models.Quiz, sub models.Submission) (models.ScoreResult, error) {
	if missing := Missing(q, sub); len(missing) > 0 {
		return models.ScoreResult{}, fmt.Errorf("%w: unanswered questions %v", ErrIncompleteSubmission, missing)
	}

	correct := 0
	missed := make([]int, 0, len(q.Questions))
	for _, question := range q.Questions {
		if sub[question.Ordinal] == question.CorrectOption() {
			correct++
		} else {
			missed = append(missed, question.Ordinal)
		}
	}

	tier := TierFor(correct)
	return models.ScoreResult{
		Correct:    correct,
		Total:      len(q.Questions),
		Percentage: correct * PointsPerQuestion,
		Tier:       tier,
		Message:    MessageFor(tier),
		Missed:     missed,
	}, nil
}

// TierFor maps a correct count to its feedback band: 5 perfect, 3-4 good, otherwise needs study.
func TierFor(correct int) models.Tier {
	switch {
	case correct >= QuestionCount:
		return models.TierPerfect
	case correct >= 3:
		return models.TierGood
	default:
		return models.TierNeedsStudy
	}
}

// MessageFor returns the feedback line for a tier
func MessageFor(tier models.Tier) string {
	return tierMessages[tier]
}

// SubmissionFromStrings converts ordinal keys received as strings, e.g. from JSON.
// Keys that are not ordinals of the quiz are ignored.
func SubmissionFromStrings(q *models.Quiz, answers map[string]string) models.Submission {
	sub := make(models.Submission, len(answers))
	for _, question := range q.Questions {
		if answer, ok := answers[fmt.Sprint(question.Ordinal)]; ok {
			sub[question.Ordinal] = answer
		}
	}
	return sub
}
