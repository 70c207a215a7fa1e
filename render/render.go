// Package render turns guide content and quiz results into styled terminal text.
package render

import (
	"fmt"
	"strings"

	"github.com/adamspd/StudyGuide/models"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// DefaultWidth is used when the terminal width is unknown.
const DefaultWidth = 80

// Options configures rendering.
type Options struct {
	Width   int
	NoColor bool
}

func (o Options) width() int {
	if o.Width <= 0 {
		return DefaultWidth
	}
	return o.Width
}

var calloutColors = map[models.CalloutStyle]lipgloss.Color{
	models.CalloutInfo:    lipgloss.Color("39"),
	models.CalloutSuccess: lipgloss.Color("42"),
	models.CalloutWarning: lipgloss.Color("214"),
	models.CalloutError:   lipgloss.Color("196"),
}

// Guide renders the guide title banner.
func Guide(g *models.Guide, opts Options) string {
	title := lipgloss.NewStyle().Bold(true)
	if !opts.NoColor {
		title = title.Foreground(lipgloss.Color("33"))
	}
	lines := []string{title.Render(g.Title)}
	if g.Subtitle != "" {
		lines = append(lines, stylize(g.Subtitle, opts.NoColor, lipgloss.Color("244")))
	}
	lines = append(lines, rule(opts))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// Footer renders the guide footer line, or "" when there is none.
func Footer(g *models.Guide, opts Options) string {
	if g.Footer == "" {
		return ""
	}
	return lipgloss.JoinVertical(lipgloss.Left, rule(opts), stylize(g.Footer, opts.NoColor, lipgloss.Color("242")))
}

// Topic renders a topic title followed by each of its blocks.
func Topic(t *models.Topic, opts Options) string {
	parts := []string{heading(t.Title, opts, true)}
	for _, block := range t.Blocks {
		parts = append(parts, Block(block, opts))
	}
	return strings.Join(parts, "\n\n")
}

// Block renders a single content block.
func Block(b models.Block, opts Options) string {
	switch b.Kind {
	case models.BlockHeading:
		return heading(b.Body, opts, false)
	case models.BlockText:
		return withTitle(b.Title, wrap(b.Body, opts.width()), opts)
	case models.BlockCallout:
		return callout(b, opts)
	case models.BlockTable:
		return withTitle(b.Title, Table(b.Columns, b.Rows, opts), opts)
	case models.BlockCode:
		return withTitle(b.Title, code(b, opts), opts)
	case models.BlockFormula:
		return withTitle(b.Title, formula(b.Body, opts), opts)
	default:
		return b.Body
	}
}

// Table renders rows under a header using rounded borders.
func Table(columns []string, rows [][]string, opts Options) string {
	headerStyle := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)
	borderStyle := lipgloss.NewStyle()
	if !opts.NoColor {
		headerStyle = headerStyle.Foreground(lipgloss.Color("33"))
		borderStyle = borderStyle.Foreground(lipgloss.Color("240"))
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		Headers(columns...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	if natural := lipgloss.Width(t.String()); natural > opts.width() {
		t = t.Width(opts.width())
	}
	return t.String()
}

// Score renders the score line, the tier message and the missed questions.
func Score(r models.ScoreResult, opts Options) string {
	color := calloutColors[models.CalloutWarning]
	switch r.Tier {
	case models.TierPerfect:
		color = calloutColors[models.CalloutSuccess]
	case models.TierGood:
		color = calloutColors[models.CalloutInfo]
	}

	lines := []string{
		stylize(r.Summary(), opts.NoColor, calloutColors[models.CalloutSuccess]),
		stylize(r.Message, opts.NoColor, color),
	}
	if len(r.Missed) > 0 {
		missed := make([]string, 0, len(r.Missed))
		for _, ordinal := range r.Missed {
			missed = append(missed, fmt.Sprint(ordinal))
		}
		lines = append(lines, stylize("Missed questions: "+strings.Join(missed, ", "), opts.NoColor, lipgloss.Color("244")))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// Celebration is shown above a perfect score.
func Celebration(opts Options) string {
	banner := "🎈  🎈  🎈   Perfect!   🎈  🎈  🎈"
	style := lipgloss.NewStyle().Bold(true).Width(opts.width()).Align(lipgloss.Center)
	if !opts.NoColor {
		style = style.Foreground(lipgloss.Color("205"))
	}
	return style.Render(banner)
}

func heading(text string, opts Options, top bool) string {
	style := lipgloss.NewStyle().Bold(true)
	if top {
		style = style.Underline(true)
	}
	if !opts.NoColor {
		style = style.Foreground(lipgloss.Color("33"))
	}
	return style.Render(text)
}

func withTitle(title, body string, opts Options) string {
	if title == "" {
		return body
	}
	style := lipgloss.NewStyle().Bold(true)
	if !opts.NoColor {
		style = style.Foreground(lipgloss.Color("252"))
	}
	return lipgloss.JoinVertical(lipgloss.Left, style.Render(title), body)
}

func callout(b models.Block, opts Options) string {
	style := lipgloss.NewStyle().
		Border(lipgloss.ThickBorder(), false, false, false, true).
		PaddingLeft(1).
		Width(opts.width() - 2)
	if !opts.NoColor {
		style = style.BorderForeground(calloutColors[b.Style])
	}
	body := b.Body
	if b.Title != "" {
		body = lipgloss.NewStyle().Bold(true).Render(b.Title) + "\n" + body
	}
	return style.Render(body)
}

func code(b models.Block, opts Options) string {
	style := lipgloss.NewStyle().PaddingLeft(2)
	if !opts.NoColor {
		style = style.Foreground(lipgloss.Color("250"))
	}
	label := stylize("["+b.Language+"]", opts.NoColor, lipgloss.Color("240"))
	return lipgloss.JoinVertical(lipgloss.Left, label, style.Render(b.Body))
}

func formula(body string, opts Options) string {
	return "  " + stylize("ƒ  "+body, opts.NoColor, lipgloss.Color("141"))
}

func wrap(text string, width int) string {
	return lipgloss.NewStyle().Width(width).Render(text)
}

func rule(opts Options) string {
	return stylize(strings.Repeat("─", opts.width()), opts.NoColor, lipgloss.Color("240"))
}

func stylize(text string, noColor bool, color lipgloss.Color) string {
	if noColor {
		return text
	}
	return lipgloss.NewStyle().Foreground(color).Render(text)
}
