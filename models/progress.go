package models

// Progress tracks which topics of a guide were opened during the current run.
// It lives in memory only and is discarded on exit.
type Progress struct {
	Total   int
	visited map[string]bool
}

// NewProgress creates a tracker for a guide with total topics
func NewProgress(total int) *Progress {
	return &Progress{
		Total:   total,
		visited: make(map[string]bool),
	}
}

// Visit marks a topic as seen and reports whether it was new
func (p *Progress) Visit(slug string) bool {
	if p.visited[slug] {
		return false
	}
	p.visited[slug] = true
	return true
}

// Visited reports whether slug was opened
func (p *Progress) Visited(slug string) bool {
	return p.visited[slug]
}

// Count returns the number of distinct topics opened
func (p *Progress) Count() int {
	return len(p.visited)
}

// Fraction is the share of topics visited, in [0,1]
func (p *Progress) Fraction() float64 {
	if p.Total <= 0 {
		return 0
	}
	f := float64(len(p.visited)) / float64(p.Total)
	if f > 1 {
		return 1
	}
	return f
}

// CatalogStats represents counts over the seeded catalog
type CatalogStats struct {
	Guides        int                  `json:"guides"`
	Topics        int                  `json:"topics"`
	Blocks        int                  `json:"blocks"`
	QuizQuestions int                  `json:"quiz_questions"`
	BlocksByKind  map[BlockKind]int    `json:"blocks_by_kind"`
	PerGuide      map[string]GuideStat `json:"per_guide"`
}

// GuideStat represents counts for a specific guide
type GuideStat struct {
	Topics int `json:"topics"`
	Blocks int `json:"blocks"`
}
