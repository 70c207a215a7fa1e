package db

import (
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"github.com/adamspd/StudyGuide/models"
	"github.com/adamspd/StudyGuide/utils"
)

func (db *DB) ListGuides() ([]models.GuideSummary, error) {
	utils.LogDB("Executing query: ListGuides")
	start := time.Now()

	rows, err := db.Query(`
		SELECT g.id, g.title, g.subtitle,
		       (SELECT COUNT(*) FROM topics t WHERE t.guide_id = g.id) AS topic_count,
		       EXISTS (SELECT 1 FROM quiz_questions q WHERE q.guide_id = g.id) AS has_quiz
		FROM guides g
		ORDER BY g.position
	`)
	if err != nil {
		utils.LogError("ListGuides query failed: %v", err)
		return nil, err
	}
	defer rows.Close()

	guides := make([]models.GuideSummary, 0)
	for rows.Next() {
		var g models.GuideSummary
		if err := rows.Scan(&g.ID, &g.Title, &g.Subtitle, &g.TopicCount, &g.HasQuiz); err != nil {
			utils.LogError("Failed to scan guide row: %v", err)
			return nil, err
		}
		guides = append(guides, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	utils.LogDB("ListGuides completed: %d guides in %v", len(guides), time.Since(start))
	return guides, nil
}

func (db *DB) GetGuide(id string) (*models.GuideDetail, error) {
	utils.LogDB("Executing query: GetGuide(%s)", id)
	start := time.Now()

	var g models.GuideDetail
	var quizTopic sql.NullString

	err := db.QueryRow(`
		SELECT id, title, subtitle, footer, quiz_topic FROM guides WHERE id = ?
	`, id).Scan(&g.ID, &g.Title, &g.Subtitle, &g.Footer, &quizTopic)
	if err != nil {
		duration := time.Since(start)
		if err == sql.ErrNoRows {
			utils.LogDB("Guide %s not found (%v)", id, duration)
		} else {
			utils.LogError("GetGuide(%s) failed: %v (%v)", id, err, duration)
		}
		return nil, err
	}
	g.QuizTopic = quizTopic.String

	rows, err := db.Query(`
		SELECT slug, label, title, position FROM topics WHERE guide_id = ? ORDER BY position
	`, id)
	if err != nil {
		utils.LogError("GetGuide(%s) topics query failed: %v", id, err)
		return nil, err
	}
	defer rows.Close()

	g.Topics = make([]models.TopicSummary, 0)
	for rows.Next() {
		var t models.TopicSummary
		if err := rows.Scan(&t.Slug, &t.Label, &t.Title, &t.Position); err != nil {
			utils.LogError("Failed to scan topic row: %v", err)
			return nil, err
		}
		g.Topics = append(g.Topics, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	utils.LogDB("GetGuide(%s) completed: %d topics in %v", id, len(g.Topics), time.Since(start))
	return &g, nil
}

func (db *DB) GetTopic(guideID, slug string) (*models.Topic, error) {
	utils.LogDB("Executing query: GetTopic(%s, %s)", guideID, slug)
	start := time.Now()

	var topicID int64
	var t models.Topic

	err := db.QueryRow(`
		SELECT id, slug, label, title FROM topics WHERE guide_id = ? AND slug = ?
	`, guideID, slug).Scan(&topicID, &t.Slug, &t.Label, &t.Title)
	if err != nil {
		duration := time.Since(start)
		if err == sql.ErrNoRows {
			utils.LogDB("Topic %s/%s not found (%v)", guideID, slug, duration)
		} else {
			utils.LogError("GetTopic(%s, %s) failed: %v (%v)", guideID, slug, err, duration)
		}
		return nil, err
	}

	rows, err := db.Query(`
		SELECT kind, style, title, body, language, table_columns, table_rows
		FROM blocks WHERE topic_id = ? ORDER BY position
	`, topicID)
	if err != nil {
		utils.LogError("GetTopic(%s, %s) blocks query failed: %v", guideID, slug, err)
		return nil, err
	}
	defer rows.Close()

	t.Blocks = make([]models.Block, 0)
	for rows.Next() {
		var b models.Block
		var kind, style string
		var columnsJSON, rowsJSON sql.NullString

		if err := rows.Scan(&kind, &style, &b.Title, &b.Body, &b.Language, &columnsJSON, &rowsJSON); err != nil {
			utils.LogError("Failed to scan block row: %v", err)
			return nil, err
		}
		b.Kind = models.BlockKind(kind)
		b.Style = models.CalloutStyle(style)

		if columnsJSON.Valid && columnsJSON.String != "" {
			if err := json.Unmarshal([]byte(columnsJSON.String), &b.Columns); err != nil {
				utils.LogError("Failed to parse table columns: %v", err)
				return nil, err
			}
		}
		if rowsJSON.Valid && rowsJSON.String != "" {
			if err := json.Unmarshal([]byte(rowsJSON.String), &b.Rows); err != nil {
				utils.LogError("Failed to parse table rows: %v", err)
				return nil, err
			}
		}

		t.Blocks = append(t.Blocks, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	utils.LogDB("GetTopic(%s, %s) completed: %d blocks in %v", guideID, slug, len(t.Blocks), time.Since(start))
	return &t, nil
}

// SearchTopics finds topics whose title, label or block text contains term, case-insensitively.
func (db *DB) SearchTopics(term string) ([]models.SearchHit, error) {
	term = utils.NormalizeText(term)
	utils.LogDB("Searching topics for '%s'", term)
	start := time.Now()

	hits := make([]models.SearchHit, 0)
	if term == "" {
		return hits, nil
	}

	pattern := "%" + escapeLike(term) + "%"
	rows, err := db.Query(`
		SELECT g.id, g.title, t.slug, t.title
		FROM topics t
		JOIN guides g ON g.id = t.guide_id
		WHERE t.title LIKE ? ESCAPE '\' OR t.label LIKE ? ESCAPE '\'
		   OR EXISTS (
		       SELECT 1 FROM blocks b
		       WHERE b.topic_id = t.id
		         AND (b.title LIKE ? ESCAPE '\' OR b.body LIKE ? ESCAPE '\' OR b.table_rows LIKE ? ESCAPE '\')
		   )
		ORDER BY g.position, t.position
	`, pattern, pattern, pattern, pattern, pattern)
	if err != nil {
		utils.LogError("SearchTopics query failed: %v", err)
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var h models.SearchHit
		if err := rows.Scan(&h.GuideID, &h.GuideTitle, &h.Slug, &h.Title); err != nil {
			utils.LogError("Failed to scan search row: %v", err)
			return nil, err
		}
		hits = append(hits, h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	utils.LogDB("SearchTopics('%s') completed: %d hits in %v", term, len(hits), time.Since(start))
	return hits, nil
}

func escapeLike(term string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(term)
}
