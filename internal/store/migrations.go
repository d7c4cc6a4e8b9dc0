package store

// migration represents a single schema migration.
type migration struct {
	Version int
	Name    string
	SQL     string
}

// migrations is the ordered list of all schema migrations.
var migrations = []migration{
	{
		Version: 1,
		Name:    "create calls and turns",
		SQL: `
			CREATE TABLE calls (
				id          TEXT PRIMARY KEY,
				started_at  TEXT NOT NULL,
				ended_at    TEXT NOT NULL,
				outcome     TEXT NOT NULL
			);

			CREATE INDEX idx_calls_started ON calls (started_at);
			CREATE INDEX idx_calls_outcome ON calls (outcome);

			CREATE TABLE turns (
				id       INTEGER PRIMARY KEY AUTOINCREMENT,
				call_id  TEXT NOT NULL REFERENCES calls(id) ON DELETE CASCADE,
				role     TEXT NOT NULL,
				text     TEXT NOT NULL,
				at       TEXT NOT NULL
			);

			CREATE INDEX idx_turns_call ON turns (call_id, id);
		`,
	},
	{
		Version: 2,
		Name:    "transcript full-text search with FTS5",
		SQL: `
			CREATE VIRTUAL TABLE turns_fts USING fts5(
				text,
				role,
				content='turns',
				content_rowid='id'
			);

			CREATE TRIGGER turns_ai AFTER INSERT ON turns BEGIN
				INSERT INTO turns_fts(rowid, text, role)
				VALUES (new.id, new.text, new.role);
			END;

			CREATE TRIGGER turns_ad AFTER DELETE ON turns BEGIN
				INSERT INTO turns_fts(turns_fts, rowid, text, role)
				VALUES ('delete', old.id, old.text, old.role);
			END;
		`,
	},
}
