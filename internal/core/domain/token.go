// Package domain contains the core domain models for the narrative
// compilation engine: documents, tokens, the reference graph, and the
// artifacts produced for them.
package domain

import (
	"strings"

	"github.com/google/uuid"
)

// TokenKind classifies a narrative token.
type TokenKind string

const (
	// KindScene is a top-level narrative unit.
	KindScene TokenKind = "scene"
	// KindComponent is a narrative unit nested under a scene.
	KindComponent TokenKind = "component"
	// KindFunction is a narrative unit nested under a component.
	KindFunction TokenKind = "function"
)

// ParseTokenKind maps a header keyword to a TokenKind. Keywords are
// case-insensitive. The second return value reports whether the keyword
// is recognized.
func ParseTokenKind(keyword string) (TokenKind, bool) {
	switch strings.ToLower(keyword) {
	case string(KindScene):
		return KindScene, true
	case string(KindComponent):
		return KindComponent, true
	case string(KindFunction):
		return KindFunction, true
	default:
		return "", false
	}
}

// GeneratedNamePrefix is prepended to the deterministic names assigned to
// unnamed function tokens.
const GeneratedNamePrefix = "func_"

// Token is a single compilable unit extracted from a narrative document.
//
// Identity is structural: two tokens are the same unit when kind, name and
// the full parent chain match. ID is the storage identity and is carried
// over between document versions for tokens whose structural identity is
// preserved.
type Token struct {
	ID      uuid.UUID
	Kind    TokenKind
	Name    string
	Parent  *Token
	Order   int
	Content string
	Refs    []string
	Hash    string
}

// NewToken creates a token with a fresh ID and the content hash computed.
func NewToken(kind TokenKind, name string, parent *Token, order int, content string) *Token {
	return &Token{
		ID:      uuid.New(),
		Kind:    kind,
		Name:    name,
		Parent:  parent,
		Order:   order,
		Content: content,
		Hash:    HashContent(content),
	}
}

// Path returns the structural identity of the token as an interned string.
// Segments are kind-qualified and joined root-first, for example
// "scene:Checkout/component:PaymentForm/function:submit".
func (t *Token) Path() InternedString {
	return NewInternedString(t.PathString())
}

// PathString returns the structural identity of the token as a plain string.
func (t *Token) PathString() string {
	var segments []string
	for cur := t; cur != nil; cur = cur.Parent {
		segments = append(segments, string(cur.Kind)+":"+cur.Name)
	}
	var b strings.Builder
	for i := len(segments) - 1; i >= 0; i-- {
		b.WriteString(segments[i])
		if i > 0 {
			b.WriteByte('/')
		}
	}
	return b.String()
}

// ParentName returns the name of the parent token, or the empty string for
// root-level tokens.
func (t *Token) ParentName() string {
	if t.Parent == nil {
		return ""
	}
	return t.Parent.Name
}

// AddRef records a referenced name. Duplicates are ignored so the slice
// keeps first-seen order.
func (t *Token) AddRef(name string) {
	for _, existing := range t.Refs {
		if existing == name {
			return
		}
	}
	t.Refs = append(t.Refs, name)
}
