// Package tui is the interactive terminal browser: a topic sidebar, a content
// pane and the quiz form.
package tui

import (
	"errors"
	"fmt"

	"github.com/adamspd/StudyGuide/content"
	"github.com/adamspd/StudyGuide/models"
	"github.com/adamspd/StudyGuide/render"
	"github.com/adamspd/StudyGuide/utils"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	sidebarWidth  = 30
	defaultWidth  = 100
	defaultHeight = 30
)

// Options configures the browser.
type Options struct {
	GuideID string
	Topic   string
	NoColor bool
}

type mode int

const (
	modeBrowse mode = iota
	modeQuiz
	modeResult
)

// topicItem is a sidebar entry.
type topicItem struct {
	topic   models.Topic
	visited bool
}

func (i topicItem) Title() string {
	if i.visited {
		return "✓ " + i.topic.Label
	}
	return "  " + i.topic.Label
}

func (i topicItem) Description() string { return "  " + i.topic.Title }
func (i topicItem) FilterValue() string { return i.topic.Label }

// Model is the Bubble Tea model of the browser.
type Model struct {
	guides   []models.Guide
	guide    int
	progress map[string]*models.Progress
	topics   list.Model
	content  viewport.Model
	bar      progress.Model
	keys     keyMap
	mode     mode
	form     *quizForm
	width    int
	height   int
	noColor  bool
}

// New builds a browser over the catalog, opened on opts.GuideID (default: the
// first guide) and opts.Topic (default: its first topic).
func New(catalog *content.Catalog, opts Options) (Model, error) {
	guides := catalog.Guides()
	if len(guides) == 0 {
		return Model{}, errors.New("catalog has no guides")
	}

	m := Model{
		guides:   guides,
		progress: make(map[string]*models.Progress, len(guides)),
		keys:     defaultKeys(),
		width:    defaultWidth,
		height:   defaultHeight,
		noColor:  opts.NoColor,
	}
	for _, g := range guides {
		m.progress[g.ID] = models.NewProgress(len(g.Topics))
	}

	start := 0
	if opts.GuideID != "" {
		start = -1
		for i, g := range guides {
			if g.ID == opts.GuideID {
				start = i
				break
			}
		}
		if start < 0 {
			return Model{}, fmt.Errorf("unknown guide %q", opts.GuideID)
		}
	}

	m.topics = list.New(nil, newDelegate(opts.NoColor), sidebarWidth, m.height-4)
	m.topics.SetShowHelp(false)
	m.topics.SetShowStatusBar(false)
	m.topics.SetFilteringEnabled(false)
	m.topics.KeyMap.Quit.SetEnabled(false)
	if opts.NoColor {
		m.topics.Styles.Title = lipgloss.NewStyle().Bold(true)
	}

	m.content = viewport.New(m.width-sidebarWidth-2, m.height-2)
	m.bar = newBar(opts.NoColor)

	m.loadGuide(start)
	if opts.Topic != "" && !m.selectTopic(opts.Topic) {
		return Model{}, fmt.Errorf("unknown topic %q in guide %s", opts.Topic, m.currentGuide().ID)
	}
	return m, nil
}

func newDelegate(noColor bool) list.DefaultDelegate {
	d := list.NewDefaultDelegate()
	if noColor {
		selected := lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).PaddingLeft(1)
		d.Styles.SelectedTitle = selected.Bold(true)
		d.Styles.SelectedDesc = selected
		d.Styles.NormalTitle = lipgloss.NewStyle().PaddingLeft(2)
		d.Styles.NormalDesc = lipgloss.NewStyle().PaddingLeft(2)
	}
	return d
}

func newBar(noColor bool) progress.Model {
	if noColor {
		return progress.New(progress.WithFillCharacters('#', '.'), progress.WithoutPercentage(), progress.WithWidth(sidebarWidth-4))
	}
	return progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage(), progress.WithWidth(sidebarWidth-4))
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles window resizes and key presses.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(typed.Width, typed.Height)
		return m, nil
	case tea.KeyMsg:
		if key.Matches(typed, m.keys.Quit) {
			return m, tea.Quit
		}
		switch m.mode {
		case modeQuiz:
			return m.updateQuiz(typed)
		case modeResult:
			return m.updateResult(typed)
		default:
			return m.updateBrowse(typed)
		}
	}
	return m, nil
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.NextGuide):
		m.loadGuide((m.guide + 1) % len(m.guides))
		return m, nil
	case key.Matches(msg, m.keys.PrevGuide):
		m.loadGuide((m.guide + len(m.guides) - 1) % len(m.guides))
		return m, nil
	case key.Matches(msg, m.keys.PageDown, m.keys.PageUp):
		var cmd tea.Cmd
		m.content, cmd = m.content.Update(msg)
		return m, cmd
	case key.Matches(msg, m.keys.Select):
		m.startQuiz()
		return m, nil
	}

	before := m.topics.Index()
	var cmd tea.Cmd
	m.topics, cmd = m.topics.Update(msg)
	if m.topics.Index() != before {
		m.openSelected()
	}
	return m, cmd
}

func (m Model) updateQuiz(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := m.form
	switch {
	case key.Matches(msg, m.keys.Back):
		m.leaveQuiz()
		return m, nil
	case key.Matches(msg, m.keys.Up):
		f.move(-1)
	case key.Matches(msg, m.keys.Down):
		f.move(1)
	case key.Matches(msg, m.keys.PrevQuestion):
		f.step(-1)
	case key.Matches(msg, m.keys.NextQuestion):
		f.step(1)
	case key.Matches(msg, m.keys.Select):
		f.choose()
	case key.Matches(msg, m.keys.Submit):
		if f.submit() {
			utils.LogInfo("Quiz %s scored: %s", m.currentGuide().ID, f.result.Summary())
			m.mode = modeResult
		}
	case key.Matches(msg, m.keys.PageDown, m.keys.PageUp):
		var cmd tea.Cmd
		m.content, cmd = m.content.Update(msg)
		return m, cmd
	}
	m.refresh()
	return m, nil
}

func (m Model) updateResult(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.leaveQuiz()
	case key.Matches(msg, m.keys.Retake):
		m.form.reset()
		m.mode = modeQuiz
		m.refresh()
		m.content.GotoTop()
	}
	return m, nil
}

func (m *Model) currentGuide() *models.Guide {
	return &m.guides[m.guide]
}

func (m *Model) selectedTopic() *models.Topic {
	g := m.currentGuide()
	idx := m.topics.Index()
	if idx < 0 || idx >= len(g.Topics) {
		return nil
	}
	return &g.Topics[idx]
}

func (m *Model) loadGuide(i int) {
	m.guide = i
	g := m.currentGuide()
	p := m.progress[g.ID]

	items := make([]list.Item, len(g.Topics))
	for j, t := range g.Topics {
		items[j] = topicItem{topic: t, visited: p.Visited(t.Slug)}
	}
	m.topics.SetItems(items)
	m.topics.Title = g.Title
	m.topics.Select(0)

	m.mode = modeBrowse
	m.form = nil
	m.openSelected()
}

// selectTopic moves the sidebar to the topic with the given slug or label.
func (m *Model) selectTopic(keyName string) bool {
	g := m.currentGuide()
	t, ok := g.Topic(keyName)
	if !ok {
		return false
	}
	for i := range g.Topics {
		if g.Topics[i].Slug == t.Slug {
			m.topics.Select(i)
			m.openSelected()
			return true
		}
	}
	return false
}

// openSelected shows the selected topic and records the visit.
func (m *Model) openSelected() {
	t := m.selectedTopic()
	if t == nil {
		return
	}
	if m.progress[m.currentGuide().ID].Visit(t.Slug) {
		m.topics.SetItem(m.topics.Index(), topicItem{topic: *t, visited: true})
	}
	m.refresh()
	m.content.GotoTop()
}

// startQuiz opens the quiz form when the selected topic hosts the guide's quiz.
func (m *Model) startQuiz() bool {
	g := m.currentGuide()
	t := m.selectedTopic()
	if g.Quiz == nil || t == nil || t.Slug != g.Quiz.Topic {
		return false
	}
	m.form = newQuizForm(g.Quiz)
	m.mode = modeQuiz
	m.refresh()
	m.content.GotoTop()
	return true
}

func (m *Model) leaveQuiz() {
	m.mode = modeBrowse
	m.form = nil
	m.refresh()
	m.content.GotoTop()
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	m.topics.SetSize(sidebarWidth, max(height-4, 4))
	m.content.Width = max(width-sidebarWidth-2, 20)
	m.content.Height = max(height-2, 4)
	m.refresh()
}

func (m *Model) renderOptions() render.Options {
	return render.Options{Width: max(m.content.Width-1, 20), NoColor: m.noColor}
}

// refresh re-renders the content pane for the current mode.
func (m *Model) refresh() {
	opts := m.renderOptions()
	switch m.mode {
	case modeQuiz:
		m.content.SetContent(m.form.view(opts))
	case modeResult:
		m.content.SetContent(m.form.resultView(opts))
	default:
		m.content.SetContent(m.topicView(opts))
	}
}

func (m *Model) topicView(opts render.Options) string {
	g := m.currentGuide()
	t := m.selectedTopic()
	if t == nil {
		return render.Guide(g, opts)
	}

	view := render.Guide(g, opts) + "\n\n" + render.Topic(t, opts)
	if g.Quiz != nil && t.Slug == g.Quiz.Topic {
		view += "\n\n" + highlight("Press enter to take the quiz.", opts.NoColor)
	}
	if footer := render.Footer(g, opts); footer != "" {
		view += "\n\n" + footer
	}
	return view
}

// View renders the sidebar, the content pane and the key help.
func (m Model) View() string {
	p := m.progress[m.guides[m.guide].ID]
	status := fmt.Sprintf("Visited %d/%d", p.Count(), p.Total)
	sidebar := lipgloss.JoinVertical(lipgloss.Left, m.topics.View(), "", status, m.bar.ViewAs(p.Fraction()))
	sidebar = lipgloss.NewStyle().Width(sidebarWidth).MarginRight(2).Render(sidebar)

	body := lipgloss.JoinHorizontal(lipgloss.Top, sidebar, m.content.View())

	var help string
	switch m.mode {
	case modeQuiz:
		help = helpLine(m.keys.Up, m.keys.Down, m.keys.Select, m.keys.NextQuestion, m.keys.Submit, m.keys.Back, m.keys.Quit)
	case modeResult:
		help = helpLine(m.keys.Retake, m.keys.Back, m.keys.Quit)
	default:
		help = helpLine(m.keys.Up, m.keys.Down, m.keys.NextGuide, m.keys.PageDown, m.keys.Quit)
		if g := m.currentGuide(); g.Quiz != nil {
			if t := m.selectedTopic(); t != nil && t.Slug == g.Quiz.Topic {
				help = "enter take quiz · " + help
			}
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, body, stylizeHelp(help, m.noColor))
}

func stylizeHelp(line string, noColor bool) string {
	if noColor {
		return line
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render(line)
}
