// Package todo reads todo files from a status directory and parses their
// front matter into items.
package todo

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// Status identifies which lane a todo currently belongs to. It is derived
// from directory membership, never stored inside the file.
type Status string

const (
	StatusPending Status = "pending"
	StatusDone    Status = "done"
)

// Valid reports whether s is one of the two recognized statuses.
func (s Status) Valid() bool {
	return s == StatusPending || s == StatusDone
}

// Other returns the opposite status. Moving a todo "to done" implies it
// currently lives in pending, and vice versa.
func (s Status) Other() Status {
	if s == StatusPending {
		return StatusDone
	}
	return StatusPending
}

// Extension is the recognized todo file extension.
const Extension = ".md"

// DefaultArea is assigned to todos whose front matter carries no area field.
const DefaultArea = "general"

// idPattern restricts ids to a single safe path segment. This is the sole
// defense against path traversal when a client-supplied id reaches the
// filesystem.
var idPattern = regexp.MustCompile(`^[a-zA-Z0-9._-]+\.md$`)

// ValidID reports whether id is a bare filename with the todo extension.
// Anything containing a path separator fails the Base comparison.
func ValidID(id string) bool {
	return id != "" && filepath.Base(id) == id && idPattern.MatchString(id)
}

// Item is one task file.
type Item struct {
	ID      string   `json:"id"`
	Status  Status   `json:"status"`
	Title   string   `json:"title"`
	Area    string   `json:"area"`
	Created string   `json:"created"`
	Files   []string `json:"files"`
	Path    string   `json:"path"`
}

// Scan lists the todo files in dir and parses each into an Item, sorted
// lexicographically by filename. A missing directory yields an empty slice:
// directories are created lazily at startup and the read path must tolerate
// their absence. A file that disappears between listing and reading is still
// returned, with fallback metadata, so one bad file never hides the rest.
func Scan(dir string, status Status) ([]Item, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []Item{}, nil
		}
		return nil, fmt.Errorf("read todo dir %s: %w", dir, err)
	}

	items := make([]Item, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, Extension) {
			continue
		}

		path := filepath.Join(dir, name)
		content, err := os.ReadFile(path) // #nosec G304 - path is dir + listed entry name
		if err != nil {
			content = nil
		}
		items = append(items, fromFile(name, status, path, content))
	}

	return items, nil
}

// fromFile builds an Item from a file's name and content, applying fallback
// defaults for anything the front matter does not provide.
func fromFile(id string, status Status, path string, content []byte) Item {
	meta := ParseFrontMatter(content)

	item := Item{
		ID:      id,
		Status:  status,
		Title:   metaString(meta, "title"),
		Area:    metaString(meta, "area"),
		Created: metaString(meta, "created"),
		Files:   metaStrings(meta, "files"),
		Path:    path,
	}

	if item.Title == "" {
		item.Title = strings.TrimSuffix(id, Extension)
	}
	if item.Area == "" {
		item.Area = DefaultArea
	}
	if item.Files == nil {
		item.Files = []string{}
	}

	return item
}
