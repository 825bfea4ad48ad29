package search

import "github.com/pders01/sietch/internal/storage"

// Searcher defines the minimal search API over the mutation journal.
type Searcher interface {
	Search(query string, limit int) ([]*Result, error)
}

// UpdateListener can be implemented by search engines that maintain
// an external index and want to be notified about new journal entries.
type UpdateListener interface {
	OnEntryAppended(entry *storage.Entry)
}

// DebugStatser provides lightweight stats for visibility/debugging.
type DebugStatser interface {
	DocCount() (int, error)
}

// Closer is implemented by engines that hold an index open.
type Closer interface {
	Close() error
}
