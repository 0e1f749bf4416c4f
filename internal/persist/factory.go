package persist

import "fmt"

// NewStore opens the Store named by kind. "" and "json" select the
// JSON/JSONL/CSV file layout rooted at dir; "sqlite" selects the
// SQLite-backed Store at the file path dir, which is only available
// when built with the "sqlite" tag.
func NewStore(kind, dir string) (Store, error) {
	switch kind {
	case "", "json":
		return NewJSONStore(dir)
	case "sqlite":
		return newSQLiteStore(dir)
	default:
		return nil, fmt.Errorf("persist: unsupported store backend %q", kind)
	}
}
