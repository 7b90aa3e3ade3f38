package sqlite

const schemaSQL = `
CREATE TABLE IF NOT EXISTS nodes (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	type TEXT NOT NULL,
	properties TEXT NOT NULL DEFAULT '{}',
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	UNIQUE (name, type)
);

CREATE TABLE IF NOT EXISTS edges (
	id TEXT PRIMARY KEY,
	source_id TEXT NOT NULL REFERENCES nodes(id) ON DELETE CASCADE,
	target_id TEXT NOT NULL REFERENCES nodes(id) ON DELETE CASCADE,
	type TEXT NOT NULL,
	citation_context TEXT,
	properties TEXT NOT NULL DEFAULT '{}',
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	UNIQUE (source_id, target_id, type)
);

CREATE INDEX IF NOT EXISTS idx_edges_target ON edges(target_id);
`
