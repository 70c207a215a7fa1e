package db

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/adamspd/StudyGuide/models"
	"github.com/adamspd/StudyGuide/utils"
)

// SeedCatalog replaces the stored catalog with guides in a single transaction.
// Guides keep the order they are passed in.
func (db *DB) SeedCatalog(guides []models.Guide) (*models.SeedResult, error) {
	utils.LogDB("Starting seed of %d guides", len(guides))
	start := time.Now()

	result := &models.SeedResult{}

	tx, err := db.Begin()
	if err != nil {
		utils.LogError("Failed to start transaction: %v", err)
		return nil, err
	}
	defer tx.Rollback()

	for _, table := range []string{"blocks", "quiz_questions", "topics", "guides"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			utils.LogError("Failed to clear %s: %v", table, err)
			return nil, err
		}
	}

	guideStmt, err := tx.Prepare(`
		INSERT INTO guides (id, title, subtitle, footer, position, quiz_title, quiz_topic)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		utils.LogError("Failed to prepare statement: %v", err)
		return nil, err
	}
	defer guideStmt.Close()

	topicStmt, err := tx.Prepare(`
		INSERT INTO topics (guide_id, slug, label, title, position)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		utils.LogError("Failed to prepare statement: %v", err)
		return nil, err
	}
	defer topicStmt.Close()

	blockStmt, err := tx.Prepare(`
		INSERT INTO blocks (topic_id, position, kind, style, title, body, language, table_columns, table_rows)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		utils.LogError("Failed to prepare statement: %v", err)
		return nil, err
	}
	defer blockStmt.Close()

	questionStmt, err := tx.Prepare(`
		INSERT INTO quiz_questions (guide_id, ordinal, prompt, options, correct_index)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		utils.LogError("Failed to prepare statement: %v", err)
		return nil, err
	}
	defer questionStmt.Close()

	for gi, guide := range guides {
		utils.LogDB("Seeding guide %d/%d: id='%s'", gi+1, len(guides), guide.ID)

		var quizTitle, quizTopic interface{}
		if guide.Quiz != nil {
			quizTitle, quizTopic = guide.Quiz.Title, guide.Quiz.Topic
		}
		if _, err := guideStmt.Exec(guide.ID, guide.Title, guide.Subtitle, guide.Footer, gi, quizTitle, quizTopic); err != nil {
			return nil, fmt.Errorf("guide %s: insert failed: %w", guide.ID, err)
		}
		result.Guides++

		for ti, topic := range guide.Topics {
			res, err := topicStmt.Exec(guide.ID, topic.Slug, topic.Label, topic.Title, ti)
			if err != nil {
				return nil, fmt.Errorf("guide %s topic %s: insert failed: %w", guide.ID, topic.Slug, err)
			}
			topicID, err := res.LastInsertId()
			if err != nil {
				utils.LogError("Failed to get LastInsertId: %v", err)
				return nil, err
			}
			result.Topics++

			for bi, block := range topic.Blocks {
				var columnsJSON, rowsJSON interface{}
				if block.Kind == models.BlockTable {
					columns, err := json.Marshal(block.Columns)
					if err != nil {
						return nil, fmt.Errorf("guide %s topic %s block %d: marshal columns: %w", guide.ID, topic.Slug, bi, err)
					}
					rows, err := json.Marshal(block.Rows)
					if err != nil {
						return nil, fmt.Errorf("guide %s topic %s block %d: marshal rows: %w", guide.ID, topic.Slug, bi, err)
					}
					columnsJSON, rowsJSON = string(columns), string(rows)
				}
				if _, err := blockStmt.Exec(topicID, bi, string(block.Kind), string(block.Style), block.Title,
					block.Body, block.Language, columnsJSON, rowsJSON); err != nil {
					return nil, fmt.Errorf("guide %s topic %s block %d: insert failed: %w", guide.ID, topic.Slug, bi, err)
				}
				result.Blocks++
			}
		}

		if guide.Quiz == nil {
			continue
		}
		for _, question := range guide.Quiz.Questions {
			options, err := json.Marshal(question.Options)
			if err != nil {
				return nil, fmt.Errorf("guide %s question %d: marshal options: %w", guide.ID, question.Ordinal, err)
			}
			if _, err := questionStmt.Exec(guide.ID, question.Ordinal, question.Prompt, string(options), question.Correct); err != nil {
				return nil, fmt.Errorf("guide %s question %d: insert failed: %w", guide.ID, question.Ordinal, err)
			}
			result.QuizQuestions++
		}
	}

	if err := tx.Commit(); err != nil {
		utils.LogError("Failed to commit transaction: %v", err)
		return nil, err
	}

	duration := time.Since(start)
	result.TimeTaken = duration.String()

	utils.LogDB("Seed completed: %d guides, %d topics, %d blocks, %d quiz questions in %v",
		result.Guides, result.Topics, result.Blocks, result.QuizQuestions, duration)

	return result, nil
}
