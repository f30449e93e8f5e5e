// Package history records executed command lines.
//
// Store implementations live in the subpackages memory, sqlite, postgres, consul and s3.
// ParseAddress turns an address string into the pieces each of them needs.
package history

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Entry is one executed line.
type Entry struct {
	ID    string    `json:"id"`
	Time  time.Time `json:"time"`
	Line  string    `json:"line"`
	Path  []string  `json:"path,omitempty"`
	Error string    `json:"error,omitempty"`
}

// Key orders entries chronologically; ties are broken by id.
func (e Entry) Key() string {
	return fmt.Sprintf("%020d-%s", e.Time.UTC().UnixNano(), e.ID)
}

// Command returns the resolved command path as typed.
func (e Entry) Command() string {
	return strings.Join(e.Path, " ")
}

func (e Entry) Marshal() ([]byte, error) {
	return json.Marshal(e)
}

func Unmarshal(data []byte) (Entry, error) {
	var e Entry
	err := json.Unmarshal(data, &e)
	return e, err
}

// Store persists entries. List returns at most limit of the newest entries, oldest
// first; a limit of zero or less returns all of them.
type Store interface {
	Name() string

	Append(ctx context.Context, entry Entry) error
	List(ctx context.Context, limit int) ([]Entry, error)

	Close() error
}

// Tail keeps the newest limit entries of a chronologically sorted slice.
func Tail(entries []Entry, limit int) []Entry {
	if limit <= 0 || len(entries) <= limit {
		return entries
	}
	return entries[len(entries)-limit:]
}
