package store

import (
	"time"

	"github.com/google/uuid"
	"go.trai.ch/zerr"

	"github.com/WestonVoglesonger/Multifact-V3/internal/core/domain"
)

// documentRecord is the stored form of a document. Tokens are flattened into
// document order and reference their parent by index, so the in-memory
// parent pointers survive a round trip.
type documentRecord struct {
	ID        uuid.UUID     `json:"id"`
	Path      string        `json:"path"`
	Version   int           `json:"version"`
	Content   string        `json:"content"`
	Tokens    []tokenRecord `json:"tokens"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

type tokenRecord struct {
	ID      uuid.UUID        `json:"id"`
	Kind    domain.TokenKind `json:"kind"`
	Name    string           `json:"name"`
	Parent  int              `json:"parent"` // index into tokens, -1 for root
	Order   int              `json:"order"`
	Content string           `json:"content"`
	Refs    []string         `json:"refs,omitempty"`
	Hash    string           `json:"hash"`
}

func encodeDocument(doc *domain.Document) (documentRecord, error) {
	index := make(map[*domain.Token]int, len(doc.Tokens))
	for i, t := range doc.Tokens {
		index[t] = i
	}

	tokens := make([]tokenRecord, len(doc.Tokens))
	for i, t := range doc.Tokens {
		parent := -1
		if t.Parent != nil {
			p, ok := index[t.Parent]
			if !ok {
				// Parent chain points at a token outside the document.
				return documentRecord{}, zerr.With(domain.ErrStoreMarshalFailed, "token", t.PathString())
			}
			parent = p
		}
		tokens[i] = tokenRecord{
			ID:      t.ID,
			Kind:    t.Kind,
			Name:    t.Name,
			Parent:  parent,
			Order:   t.Order,
			Content: t.Content,
			Refs:    t.Refs,
			Hash:    t.Hash,
		}
	}

	return documentRecord{
		ID:        doc.ID,
		Path:      doc.Path,
		Version:   doc.Version,
		Content:   doc.Content,
		Tokens:    tokens,
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}, nil
}

func decodeDocument(rec documentRecord) (*domain.Document, error) {
	tokens := make([]*domain.Token, len(rec.Tokens))
	for i, tr := range rec.Tokens {
		tokens[i] = &domain.Token{
			ID:      tr.ID,
			Kind:    tr.Kind,
			Name:    tr.Name,
			Order:   tr.Order,
			Content: tr.Content,
			Refs:    tr.Refs,
			Hash:    tr.Hash,
		}
	}
	for i, tr := range rec.Tokens {
		if tr.Parent < 0 {
			continue
		}
		if tr.Parent >= len(tokens) || tr.Parent == i {
			return nil, zerr.With(domain.ErrStoreUnmarshalFailed, "token", tokens[i].Name)
		}
		tokens[i].Parent = tokens[tr.Parent]
	}

	return &domain.Document{
		ID:        rec.ID,
		Path:      rec.Path,
		Version:   rec.Version,
		Content:   rec.Content,
		Tokens:    tokens,
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
	}, nil
}
