package db

import (
	"database/sql"
	"fmt"

	"github.com/adamspd/StudyGuide/utils"
	_ "github.com/mattn/go-sqlite3"
)

// ErrNotFound is returned by lookups for unknown guides, topics or quizzes.
var ErrNotFound = sql.ErrNoRows

type DB struct {
	*sql.DB
}

func InitDB(dbPath string) (*DB, error) {
	utils.LogStartup("Initializing database at: %s", dbPath)

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		utils.LogError("Failed to open database: %v", err)
		return nil, err
	}

	if err := db.Ping(); err != nil {
		utils.LogError("Failed to ping database: %v", err)
		db.Close()
		return nil, err
	}

	utils.LogStartup("Database connection established")

	if err := createCatalogTables(db); err != nil {
		utils.LogError("Failed to create tables: %v", err)
		db.Close()
		return nil, err
	}

	utils.LogStartup("Database tables initialized successfully")
	return &DB{db}, nil
}

func createCatalogTables(db *sql.DB) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS guides (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			subtitle TEXT NOT NULL DEFAULT '',
			footer TEXT NOT NULL DEFAULT '',
			position INTEGER NOT NULL,
			quiz_title TEXT,
			quiz_topic TEXT
		)`,

		`CREATE TABLE IF NOT EXISTS topics (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			guide_id TEXT NOT NULL,
			slug TEXT NOT NULL,
			label TEXT NOT NULL,
			title TEXT NOT NULL,
			position INTEGER NOT NULL,
			UNIQUE (guide_id, slug),
			FOREIGN KEY (guide_id) REFERENCES guides(id) ON DELETE CASCADE
		)`,

		// columns and rows of table blocks are JSON arrays
		`CREATE TABLE IF NOT EXISTS blocks (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			topic_id INTEGER NOT NULL,
			position INTEGER NOT NULL,
			kind TEXT NOT NULL CHECK (kind IN ('heading', 'text', 'callout', 'table', 'code', 'formula')),
			style TEXT NOT NULL DEFAULT '',
			title TEXT NOT NULL DEFAULT '',
			body TEXT NOT NULL DEFAULT '',
			language TEXT NOT NULL DEFAULT '',
			table_columns TEXT,
			table_rows TEXT,
			FOREIGN KEY (topic_id) REFERENCES topics(id) ON DELETE CASCADE
		)`,

		`CREATE TABLE IF NOT EXISTS quiz_questions (
			guide_id TEXT NOT NULL,
			ordinal INTEGER NOT NULL,
			prompt TEXT NOT NULL,
			options TEXT NOT NULL,
			correct_index INTEGER NOT NULL,
			PRIMARY KEY (guide_id, ordinal),
			FOREIGN KEY (guide_id) REFERENCES guides(id) ON DELETE CASCADE
		)`,
	}

	for i, query := range queries {
		utils.LogDB("Creating table %d/%d", i+1, len(queries))
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}

	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_topics_guide_id ON topics(guide_id)",
		"CREATE INDEX IF NOT EXISTS idx_blocks_topic_id ON blocks(topic_id)",
		"CREATE INDEX IF NOT EXISTS idx_blocks_kind ON blocks(kind)",
	}

	for _, index := range indexes {
		if _, err := db.Exec(index); err != nil {
			utils.LogDB("Failed to create index (non-fatal): %v", err)
		}
	}

	return nil
}
