package db

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/adamspd/StudyGuide/models"
	"github.com/adamspd/StudyGuide/utils"
)

// GetQuiz loads a guide's quiz with questions in ordinal order.
// Options keep their authored order; the A)-D) prefixes are part of the literals.
func (db *DB) GetQuiz(guideID string) (*models.Quiz, error) {
	utils.LogDB("Executing query: GetQuiz(%s)", guideID)
	start := time.Now()

	var title, topic sql.NullString
	err := db.QueryRow(`
		SELECT quiz_title, quiz_topic FROM guides WHERE id = ?
	`, guideID).Scan(&title, &topic)
	if err != nil {
		duration := time.Since(start)
		if err == sql.ErrNoRows {
			utils.LogDB("Guide %s not found (%v)", guideID, duration)
		} else {
			utils.LogError("GetQuiz(%s) failed: %v (%v)", guideID, err, duration)
		}
		return nil, err
	}
	if !topic.Valid {
		utils.LogDB("Guide %s has no quiz (%v)", guideID, time.Since(start))
		return nil, sql.ErrNoRows
	}

	rows, err := db.Query(`
		SELECT ordinal, prompt, options, correct_index
		FROM quiz_questions WHERE guide_id = ? ORDER BY ordinal
	`, guideID)
	if err != nil {
		utils.LogError("GetQuiz(%s) questions query failed: %v", guideID, err)
		return nil, err
	}
	defer rows.Close()

	q := &models.Quiz{Title: title.String, Topic: topic.String}
	for rows.Next() {
		var question models.Question
		var optionsJSON sql.NullString

		if err := rows.Scan(&question.Ordinal, &question.Prompt, &optionsJSON, &question.Correct); err != nil {
			utils.LogError("Failed to scan question row: %v", err)
			return nil, err
		}

		if optionsJSON.Valid && optionsJSON.String != "" {
			if err := json.Unmarshal([]byte(optionsJSON.String), &question.Options); err != nil {
				utils.LogError("Failed to parse options for question %d: %v", question.Ordinal, err)
				return nil, err
			}
		}

		q.Questions = append(q.Questions, question)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(q.Questions) == 0 {
		utils.LogDB("Guide %s quiz has no questions (%v)", guideID, time.Since(start))
		return nil, sql.ErrNoRows
	}

	utils.LogDB("GetQuiz(%s) completed: %d questions in %v", guideID, len(q.Questions), time.Since(start))
	return q, nil
}
