package db

import (
	"time"

	"github.com/adamspd/StudyGuide/models"
	"github.com/adamspd/StudyGuide/utils"
)

func (db *DB) GetCatalogStats() (*models.CatalogStats, error) {
	utils.LogDB("Calculating catalog stats")
	start := time.Now()

	stats := &models.CatalogStats{
		BlocksByKind: make(map[models.BlockKind]int),
		PerGuide:     make(map[string]models.GuideStat),
	}

	err := db.QueryRow(`
		SELECT (SELECT COUNT(*) FROM guides),
		       (SELECT COUNT(*) FROM topics),
		       (SELECT COUNT(*) FROM blocks),
		       (SELECT COUNT(*) FROM quiz_questions)
	`).Scan(&stats.Guides, &stats.Topics, &stats.Blocks, &stats.QuizQuestions)
	if err != nil {
		utils.LogError("Failed to count catalog rows: %v", err)
		return nil, err
	}

	rows, err := db.Query(`SELECT kind, COUNT(*) FROM blocks GROUP BY kind`)
	if err != nil {
		utils.LogError("Failed to get block kind stats: %v", err)
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var kind string
		var count int
		if err := rows.Scan(&kind, &count); err != nil {
			utils.LogError("Failed to scan block kind stats: %v", err)
			return nil, err
		}
		stats.BlocksByKind[models.BlockKind(kind)] = count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// COALESCE keeps guides without blocks at zero
	guideRows, err := db.Query(`
		SELECT g.id,
		       COUNT(DISTINCT t.id) AS topics,
		       COALESCE(COUNT(b.id), 0) AS blocks
		FROM guides g
		LEFT JOIN topics t ON t.guide_id = g.id
		LEFT JOIN blocks b ON b.topic_id = t.id
		GROUP BY g.id
	`)
	if err != nil {
		utils.LogError("Failed to get per-guide stats: %v", err)
		return nil, err
	}
	defer guideRows.Close()

	for guideRows.Next() {
		var id string
		var gs models.GuideStat
		if err := guideRows.Scan(&id, &gs.Topics, &gs.Blocks); err != nil {
			utils.LogError("Failed to scan per-guide stats: %v", err)
			return nil, err
		}
		stats.PerGuide[id] = gs
	}
	if err := guideRows.Err(); err != nil {
		return nil, err
	}

	utils.LogDB("Stats calculated: %d guides, %d topics, %d blocks, %d quiz questions (%v)",
		stats.Guides, stats.Topics, stats.Blocks, stats.QuizQuestions, time.Since(start))

	return stats, nil
}
