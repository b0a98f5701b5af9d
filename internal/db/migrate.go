package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Statements are idempotent and the
// full list re-runs on every startup; "duplicate column name" errors
// from ALTER TABLE additions are tolerated.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS studies (
		id            TEXT PRIMARY KEY,
		protocol_code TEXT NOT NULL DEFAULT '',
		name          TEXT NOT NULL,
		created_at    TEXT NOT NULL,
		updated_at    TEXT NOT NULL
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_studies_protocol ON studies(protocol_code) WHERE protocol_code != ''`,

	`CREATE TABLE IF NOT EXISTS visits (
		id         TEXT PRIMARY KEY,
		study_id   TEXT NOT NULL REFERENCES studies(id) ON DELETE CASCADE,
		title      TEXT NOT NULL,
		ord        INTEGER NOT NULL DEFAULT 0,
		is_hidden  INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_visits_study ON visits(study_id, ord)`,

	`CREATE TABLE IF NOT EXISTS sections (
		id       TEXT PRIMARY KEY,
		visit_id TEXT NOT NULL REFERENCES visits(id) ON DELETE CASCADE,
		title    TEXT NOT NULL,
		ord      INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE INDEX IF NOT EXISTS idx_sections_visit ON sections(visit_id, ord)`,

	// ord is REAL: the integer part is the row number, the fraction the
	// column position (row + column/100).
	`CREATE TABLE IF NOT EXISTS fields (
		id          TEXT PRIMARY KEY,
		section_id  TEXT NOT NULL REFERENCES sections(id) ON DELETE CASCADE,
		name        TEXT NOT NULL,
		label       TEXT NOT NULL DEFAULT '',
		field_type  TEXT NOT NULL
		            CHECK(field_type IN ('text','number','textarea','select','radio','checkbox','date','time')),
		ord         REAL NOT NULL DEFAULT 0,
		is_required INTEGER NOT NULL DEFAULT 0,
		description TEXT NOT NULL DEFAULT '',
		help_text   TEXT NOT NULL DEFAULT '',
		help_image  TEXT NOT NULL DEFAULT '',
		settings    TEXT NOT NULL DEFAULT '{}'
	)`,
	`CREATE INDEX IF NOT EXISTS idx_fields_section ON fields(section_id, ord)`,
}
