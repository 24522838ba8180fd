// Package history stores previously rendered plot specs on disk.
//
// The store is owned by the CLI layer; the render core never reads or
// writes it. Every saved plot lives in its own JSON file named by its ID,
// and an append-only JSON-lines index carries the listing metadata so
// `termplot history` can enumerate entries without parsing every spec
// file. Deleting an entry removes the spec file only; the index is never
// rewritten, and listing skips records whose file is gone.
package history

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/termplot/pkg/errors"
	"github.com/matzehuels/termplot/pkg/plot"
)

// indexFile is the JSON-lines listing inside the history directory.
const indexFile = "index.jsonl"

// Entry is one stored plot.
type Entry struct {
	ID        string             `json:"id"`
	CreatedAt time.Time          `json:"created_at"`
	Title     string             `json:"title,omitempty"`
	Spec      plot.Spec          `json:"spec"`
	Render    plot.RenderOptions `json:"render"`
}

// IndexRecord is one line of the append-only index.
type IndexRecord struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Title     string    `json:"title,omitempty"`
	RowCount  int       `json:"row_count"`
}

// Store is a file-based plot history.
type Store struct {
	mu      sync.Mutex
	baseDir string
}

// NewStore creates a history store rooted at baseDir.
// If baseDir is empty, defaults to ~/.config/termplot/history/.
func NewStore(baseDir string) (*Store, error) {
	if baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeHistory, err, "resolve home directory")
		}
		baseDir = filepath.Join(home, ".config", "termplot", "history")
	}
	if err := os.MkdirAll(baseDir, 0o700); err != nil {
		return nil, errors.Wrap(errors.ErrCodeHistory, err, "create history directory")
	}
	return &Store{baseDir: baseDir}, nil
}

// Path returns the history directory.
func (s *Store) Path() string {
	return s.baseDir
}

func (s *Store) entryPath(id string) string {
	return filepath.Join(s.baseDir, id+".json")
}

// Save writes the entry's spec file and appends it to the index.
// A missing ID is assigned; a zero CreatedAt is stamped with now.
func (s *Store) Save(ctx context.Context, entry *Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	if entry.Title == "" {
		entry.Title = entry.Spec.Labels.Title
	}

	data, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrCodeHistory, err, "marshal plot %s", entry.ID)
	}
	if err := os.WriteFile(s.entryPath(entry.ID), data, 0o600); err != nil {
		return errors.Wrap(errors.ErrCodeHistory, err, "write plot %s", entry.ID)
	}

	record, err := json.Marshal(IndexRecord{
		ID:        entry.ID,
		CreatedAt: entry.CreatedAt,
		Title:     entry.Title,
		RowCount:  len(entry.Spec.Rows),
	})
	if err != nil {
		return errors.Wrap(errors.ErrCodeHistory, err, "marshal index record for %s", entry.ID)
	}

	f, err := os.OpenFile(filepath.Join(s.baseDir, indexFile), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return errors.Wrap(errors.ErrCodeHistory, err, "open index for %s", entry.ID)
	}
	defer f.Close()
	if _, err := f.Write(append(record, '\n')); err != nil {
		return errors.Wrap(errors.ErrCodeHistory, err, "append index for %s", entry.ID)
	}
	return nil
}

// Get loads one stored plot by ID.
func (s *Store) Get(ctx context.Context, id string) (*Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.entryPath(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.ErrCodePlotNotFound, "plot not found: %s", id)
		}
		return nil, errors.Wrap(errors.ErrCodeHistory, err, "read plot %s", id)
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, errors.Wrap(errors.ErrCodeHistory, err, "parse plot %s", id)
	}
	return &entry, nil
}

// List returns the index records of entries whose spec file still exists,
// newest first. A missing index means an empty history.
func (s *Store) List(ctx context.Context) ([]IndexRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Open(filepath.Join(s.baseDir, indexFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrap(errors.ErrCodeHistory, err, "open index")
	}
	defer f.Close()

	var records []IndexRecord
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var rec IndexRecord
		if err := json.Unmarshal(line, &rec); err != nil {
			// A torn append must not poison the whole listing.
			continue
		}
		if _, err := os.Stat(s.entryPath(rec.ID)); err != nil {
			continue
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeHistory, err, "scan index")
	}

	// Newest first; the index appends oldest first.
	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}
	return records, nil
}

// Delete removes a stored plot's spec file. The index keeps its record;
// List filters it out once the file is gone.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.entryPath(id)); err != nil {
		if os.IsNotExist(err) {
			return errors.New(errors.ErrCodePlotNotFound, "plot not found: %s", id)
		}
		return errors.Wrap(errors.ErrCodeHistory, err, "remove plot %s", id)
	}
	return nil
}
