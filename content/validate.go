package content

import (
	"fmt"
	"strings"

	"github.com/adamspd/StudyGuide/models"
	"github.com/adamspd/StudyGuide/quiz"
)

// Issue captures a validation problem in a guide file.
type Issue struct {
	Field   string
	Message string
}

// ValidationError reports one or more validation issues.
type ValidationError struct {
	Issues []Issue
}

// Error returns a readable message for validation failures.
func (err *ValidationError) Error() string {
	if err == nil || len(err.Issues) == 0 {
		return ""
	}
	parts := make([]string, 0, len(err.Issues))
	for _, issue := range err.Issues {
		parts = append(parts, fmt.Sprintf("%s: %s", issue.Field, issue.Message))
	}
	return fmt.Sprintf("guide validation failed: %s", strings.Join(parts, "; "))
}

type issueCollector struct {
	issues []Issue
}

func (collector *issueCollector) add(field, message string) {
	collector.issues = append(collector.issues, Issue{Field: field, Message: message})
}

func (collector *issueCollector) result() error {
	if len(collector.issues) == 0 {
		return nil
	}
	return &ValidationError{Issues: collector.issues}
}

var calloutStyles = map[models.CalloutStyle]bool{
	models.CalloutInfo:    true,
	models.CalloutSuccess: true,
	models.CalloutWarning: true,
	models.CalloutError:   true,
}

// NormalizeGuide trims whitespace, fills defaults and validates a guide.
func NormalizeGuide(guide models.Guide) (models.Guide, error) {
	collector := &issueCollector{}

	guide.ID = strings.TrimSpace(guide.ID)
	if guide.ID == "" {
		collector.add("id", "is required")
	}
	guide.Title = strings.TrimSpace(guide.Title)
	if guide.Title == "" {
		collector.add("title", "is required")
	}
	guide.Subtitle = strings.TrimSpace(guide.Subtitle)
	guide.Footer = strings.TrimSpace(guide.Footer)

	if len(guide.Topics) == 0 {
		collector.add("topics", "must include at least one entry")
	}

	seenSlugs := map[string]struct{}{}
	seenLabels := map[string]struct{}{}
	for i, topic := range guide.Topics {
		prefix := fmt.Sprintf("topics[%d]", i)
		topic.Slug = strings.TrimSpace(topic.Slug)
		topic.Title = strings.TrimSpace(topic.Title)
		topic.Label = strings.TrimSpace(topic.Label)
		if topic.Label == "" {
			topic.Label = topic.Title
		}

		if topic.Slug == "" {
			collector.add(prefix+".slug", "is required")
		} else if _, exists := seenSlugs[topic.Slug]; exists {
			collector.add(prefix+".slug", fmt.Sprintf("duplicate slug %q", topic.Slug))
		} else {
			seenSlugs[topic.Slug] = struct{}{}
		}
		if topic.Title == "" {
			collector.add(prefix+".title", "is required")
		}
		if topic.Label != "" {
			if _, exists := seenLabels[topic.Label]; exists {
				collector.add(prefix+".label", fmt.Sprintf("duplicate label %q", topic.Label))
			} else {
				seenLabels[topic.Label] = struct{}{}
			}
		}
		if len(topic.Blocks) == 0 {
			collector.add(prefix+".blocks", "must include at least one entry")
		}
		for j, block := range topic.Blocks {
			topic.Blocks[j] = normalizeBlock(block, fmt.Sprintf("%s.blocks[%d]", prefix, j), collector)
		}
		guide.Topics[i] = topic
	}

	if guide.Quiz != nil {
		guide.Quiz.Title = strings.TrimSpace(guide.Quiz.Title)
		guide.Quiz.Topic = strings.TrimSpace(guide.Quiz.Topic)
		if guide.Quiz.Topic == "" {
			collector.add("quiz.topic", "is required")
		} else if _, ok := seenSlugs[guide.Quiz.Topic]; !ok {
			collector.add("quiz.topic", fmt.Sprintf("unknown topic %q", guide.Quiz.Topic))
		}
		for i := range guide.Quiz.Questions {
			guide.Quiz.Questions[i].Prompt = strings.TrimSpace(guide.Quiz.Questions[i].Prompt)
		}
		if err := quiz.Validate(guide.Quiz); err != nil {
			collector.add("quiz.questions", err.Error())
		}
	}

	if err := collector.result(); err != nil {
		return models.Guide{}, err
	}
	return guide, nil
}

func normalizeBlock(block models.Block, field string, collector *issueCollector) models.Block {
	block.Title = strings.TrimSpace(block.Title)
	block.Body = strings.TrimRight(block.Body, "\n ")

	switch block.Kind {
	case models.BlockHeading, models.BlockText, models.BlockFormula:
		if strings.TrimSpace(block.Body) == "" {
			collector.add(field+".body", "is required")
		}
	case models.BlockCallout:
		if block.Style == "" {
			block.Style = models.CalloutInfo
		}
		if !calloutStyles[block.Style] {
			collector.add(field+".style", fmt.Sprintf("unknown style %q", block.Style))
		}
		if strings.TrimSpace(block.Body) == "" {
			collector.add(field+".body", "is required")
		}
	case models.BlockCode:
		if strings.TrimSpace(block.Body) == "" {
			collector.add(field+".body", "is required")
		}
		if block.Language == "" {
			block.Language = "text"
		}
	case models.BlockTable:
		if len(block.Columns) == 0 {
			collector.add(field+".columns", "must include at least one entry")
		}
		if len(block.Rows) == 0 {
			collector.add(field+".rows", "must include at least one entry")
		}
		for r, row := range block.Rows {
			if len(row) != len(block.Columns) {
				collector.add(fmt.Sprintf("%s.rows[%d]", field, r), fmt.Sprintf("has %d cells, expected %d", len(row), len(block.Columns)))
			}
		}
	case "":
		collector.add(field+".kind", "is required")
	default:
		collector.add(field+".kind", fmt.Sprintf("unknown kind %q", block.Kind))
	}

	if block.Kind != models.BlockCallout && block.Style != "" {
		collector.add(field+".style", "only callouts have a style")
	}
	return block
}
