package domain

import (
	"time"

	"github.com/google/uuid"
)

// Document is a parsed narrative source file. Tokens holds every token in
// document order, the same order the parser encountered their headers.
type Document struct {
	ID        uuid.UUID
	Path      string
	Version   int
	Content   string
	Tokens    []*Token
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewDocument creates a document for the given source path and raw content.
func NewDocument(path, content string) *Document {
	now := time.Now().UTC()
	return &Document{
		ID:        uuid.New(),
		Path:      path,
		Version:   1,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Token returns the token with the given path, or nil.
func (d *Document) Token(path InternedString) *Token {
	for _, t := range d.Tokens {
		if t.Path() == path {
			return t
		}
	}
	return nil
}

// DiffResult partitions the tokens of a new parse against a previous one.
type DiffResult struct {
	Added     []*Token
	Changed   []*Token
	Removed   []*Token
	Unchanged []*Token
}

// DiffTokens compares two token lists by path. Tokens present in both lists
// keep the identity of the previous parse, so artifacts and stored state stay
// attached across recompiles. A token counts as changed when its content hash
// or its reference list differs.
func DiffTokens(previous, current []*Token) DiffResult {
	prev := make(map[InternedString]*Token, len(previous))
	for _, t := range previous {
		prev[t.Path()] = t
	}

	var res DiffResult
	seen := make(map[InternedString]struct{}, len(current))
	for _, t := range current {
		path := t.Path()
		seen[path] = struct{}{}
		old, ok := prev[path]
		if !ok {
			res.Added = append(res.Added, t)
			continue
		}
		t.ID = old.ID
		if t.Hash != old.Hash || !equalRefs(t.Refs, old.Refs) {
			res.Changed = append(res.Changed, t)
		} else {
			res.Unchanged = append(res.Unchanged, t)
		}
	}
	for _, t := range previous {
		if _, ok := seen[t.Path()]; !ok {
			res.Removed = append(res.Removed, t)
		}
	}
	return res
}

func equalRefs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
