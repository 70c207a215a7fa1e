package tui

import (
	"fmt"
	"strings"

	"github.com/adamspd/StudyGuide/models"
	"github.com/adamspd/StudyGuide/quiz"
	"github.com/adamspd/StudyGuide/render"
	"github.com/charmbracelet/lipgloss"
)

const incompleteHint = "Please answer all questions before submitting"

// quizForm holds the selections of one quiz attempt.
type quizForm struct {
	quiz      *models.Quiz
	current   int
	highlight []int
	selected  []int // option index per question, -1 when unanswered
	result    *models.ScoreResult
	hint      string
}

func newQuizForm(q *models.Quiz) *quizForm {
	f := &quizForm{quiz: q}
	f.reset()
	return f
}

func (f *quizForm) reset() {
	n := len(f.quiz.Questions)
	f.current = 0
	f.highlight = make([]int, n)
	f.selected = make([]int, n)
	for i := range f.selected {
		f.selected[i] = -1
	}
	f.result = nil
	f.hint = ""
}

// move shifts the highlighted option of the current question, clamped to the options.
func (f *quizForm) move(delta int) {
	options := len(f.quiz.Questions[f.current].Options)
	f.highlight[f.current] = min(max(f.highlight[f.current]+delta, 0), options-1)
}

func (f *quizForm) step(delta int) {
	f.current = min(max(f.current+delta, 0), len(f.quiz.Questions)-1)
}

// choose selects the highlighted option and advances to the next question.
func (f *quizForm) choose() {
	f.selected[f.current] = f.highlight[f.current]
	f.hint = ""
	f.step(1)
}

func (f *quizForm) submission() models.Submission {
	sub := make(models.Submission, len(f.quiz.Questions))
	for i, question := range f.quiz.Questions {
		if idx := f.selected[i]; idx >= 0 {
			sub[question.Ordinal] = question.Options[idx]
		}
	}
	return sub
}

// submit scores the form. It refuses and sets a hint while any question is unanswered.
func (f *quizForm) submit() bool {
	sub := f.submission()
	if missing := quiz.Missing(f.quiz, sub); len(missing) > 0 {
		f.hint = fmt.Sprintf("%s (missing: %s)", incompleteHint, joinInts(missing))
		return false
	}

	result, err := quiz.Evaluate(f.quiz, sub)
	if err != nil {
		f.hint = err.Error()
		return false
	}
	f.result = &result
	f.hint = ""
	return true
}

func (f *quizForm) view(opts render.Options) string {
	bold := lipgloss.NewStyle().Bold(true)
	lines := []string{bold.Render(f.quiz.Title), ""}

	for i, question := range f.quiz.Questions {
		marker := "  "
		if i == f.current {
			marker = "› "
		}
		lines = append(lines, marker+bold.Render(fmt.Sprintf("%d. %s", question.Ordinal, question.Prompt)))
		for j, option := range question.Options {
			radio := "( )"
			if f.selected[i] == j {
				radio = "(•)"
			}
			line := fmt.Sprintf("    %s %s", radio, option)
			if i == f.current && f.highlight[i] == j {
				line = highlight(line, opts.NoColor)
			}
			lines = append(lines, line)
		}
		lines = append(lines, "")
	}

	if f.hint != "" {
		lines = append(lines, warn(f.hint, opts.NoColor))
	}
	return strings.Join(lines, "\n")
}

func (f *quizForm) resultView(opts render.Options) string {
	parts := []string{}
	if f.result.Perfect() {
		parts = append(parts, render.Celebration(opts), "")
	}
	parts = append(parts, render.Score(*f.result, opts))
	return strings.Join(parts, "\n")
}

func highlight(line string, noColor bool) string {
	style := lipgloss.NewStyle().Bold(true)
	if !noColor {
		style = style.Foreground(lipgloss.Color("33"))
	}
	return style.Render(line)
}

func warn(line string, noColor bool) string {
	if noColor {
		return "! " + line
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Render(line)
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprint(v)
	}
	return strings.Join(parts, ", ")
}
