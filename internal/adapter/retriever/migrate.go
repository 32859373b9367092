package retriever

import "database/sql"

// migrate creates the schema if it doesn't exist.
func migrate(db *sql.DB) error {
	const schema = `
		CREATE TABLE IF NOT EXISTS documents (
			id         TEXT PRIMARY KEY,
			content    TEXT NOT NULL,
			source     TEXT NOT NULL DEFAULT '',
			embedding  BLOB,
			created_at TEXT NOT NULL
		);
	`
	_, err := db.Exec(schema)
	return err
}
