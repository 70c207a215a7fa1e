package models

// SeedResult reports what was written when the catalog was loaded into the database
type SeedResult struct {
	Guides        int    `json:"guides"`
	Topics        int    `json:"topics"`
	Blocks        int    `json:"blocks"`
	QuizQuestions int    `json:"quiz_questions"`
	TimeTaken     string `json:"time_taken"`
}
