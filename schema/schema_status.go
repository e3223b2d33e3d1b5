package schema

import "time"

// SourceEntry describes one ingested source held by a database backend.
type SourceEntry struct {
	Index    IndexKind `json:"index"`
	Origin   string    `json:"origin"`
	Fields   []string  `json:"fields"`
	Rows     int       `json:"rows"`
	LoadedAt time.Time `json:"loaded_at"`
}

// SourceStatus represents the status of a database source backend.
type SourceStatus struct {
	Backend   DatabaseBackend `json:"backend"`
	Connected bool            `json:"connected"`
	Entries   []SourceEntry   `json:"entries"`
	CellCount int             `json:"cell_count"`
}
