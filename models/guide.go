package models

// BlockKind identifies how a content block is rendered.
type BlockKind string

const (
	BlockHeading BlockKind = "heading"
	BlockText    BlockKind = "text"
	BlockCallout BlockKind = "callout"
	BlockTable   BlockKind = "table"
	BlockCode    BlockKind = "code"
	BlockFormula BlockKind = "formula"
)

// CalloutStyle mirrors the four coloured boxes used by the guides.
type CalloutStyle string

const (
	CalloutInfo    CalloutStyle = "info"
	CalloutSuccess CalloutStyle = "success"
	CalloutWarning CalloutStyle = "warning"
	CalloutError   CalloutStyle = "error"
)

// Guide is one study guide: a title, an ordered list of topics and an optional quiz
type Guide struct {
	ID       string  `json:"id" yaml:"id"`
	Title    string  `json:"title" yaml:"title"`
	Subtitle string  `json:"subtitle,omitempty" yaml:"subtitle"`
	Footer   string  `json:"footer,omitempty" yaml:"footer"`
	Topics   []Topic `json:"topics" yaml:"topics"`
	Quiz     *Quiz   `json:"quiz,omitempty" yaml:"quiz"`
}

// Topic is a single sidebar entry and the content shown when it is selected
type Topic struct {
	Slug   string  `json:"slug" yaml:"slug"`
	Label  string  `json:"label" yaml:"label"`
	Title  string  `json:"title" yaml:"title"`
	Blocks []Block `json:"blocks" yaml:"blocks"`
}

// Block is one piece of authored content inside a topic
type Block struct {
	Kind     BlockKind    `json:"kind" yaml:"kind"`
	Style    CalloutStyle `json:"style,omitempty" yaml:"style"`
	Title    string       `json:"title,omitempty" yaml:"title"`
	Body     string       `json:"body,omitempty" yaml:"body"`
	Language string       `json:"language,omitempty" yaml:"language"`
	Columns  []string     `json:"columns,omitempty" yaml:"columns"`
	Rows     [][]string   `json:"rows,omitempty" yaml:"rows"`
}

// Topic looks up a topic by slug or by its sidebar label
func (g *Guide) Topic(key string) (*Topic, bool) {
	for i := range g.Topics {
		if g.Topics[i].Slug == key || g.Topics[i].Label == key {
			return &g.Topics[i], true
		}
	}
	return nil, false
}

// GuideSummary is the list view of a guide
type GuideSummary struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Subtitle   string `json:"subtitle,omitempty"`
	TopicCount int    `json:"topic_count"`
	HasQuiz    bool   `json:"has_quiz"`
}

// TopicSummary is a topic without its blocks
type TopicSummary struct {
	Slug     string `json:"slug"`
	Label    string `json:"label"`
	Title    string `json:"title"`
	Position int    `json:"position"`
}

// GuideDetail is a guide with topic summaries, as served over HTTP
type GuideDetail struct {
	ID        string         `json:"id"`
	Title     string         `json:"title"`
	Subtitle  string         `json:"subtitle,omitempty"`
	Footer    string         `json:"footer,omitempty"`
	Topics    []TopicSummary `json:"topics"`
	QuizTopic string         `json:"quiz_topic,omitempty"`
}

// SearchHit is a topic matching a search term
type SearchHit struct {
	GuideID    string `json:"guide_id"`
	GuideTitle string `json:"guide_title"`
	Slug       string `json:"slug"`
	Title      string `json:"title"`
}
