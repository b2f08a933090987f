// Package parser turns raw narrative text into the ordered token list the
// rest of the engine works on.
package parser

import (
	"strings"

	"go.trai.ch/zerr"

	"github.com/WestonVoglesonger/Multifact-V3/internal/core/domain"
)

// refPrefix marks a content line that declares a dependency on another token.
const refPrefix = "REF:"

// Parser converts narrative documents into token lists.
//
// The grammar is line-oriented. A header line is a single bracket pair
// holding a keyword, a colon and a name ("[Scene:Checkout]", "[Component:
// Cart]"); "[Function]" opens an unnamed function whose name is derived
// later. Everything that is not a recognized header belongs verbatim to the
// most recently opened token. Lines that resemble headers but do not match
// the grammar (unknown keyword, space before the colon, missing name) are
// content, not errors; a recognized header followed by trailing text on the
// same line is a syntax error.
type Parser struct{}

// New creates a new Parser.
func New() *Parser {
	return &Parser{}
}

// rawToken accumulates one token during the scan. Names of unnamed functions
// depend on the finished content, so domain tokens are only built at the end.
// Each entry of lines carries its own terminator, so the joined content is
// the literal document text between this token's header and the next.
type rawToken struct {
	kind       domain.TokenKind
	name       string
	unnamed    bool
	parent     *rawToken
	order      int
	headerLine int
	lines      []string
	refs       []string
}

func (r *rawToken) addRef(name string) {
	for _, existing := range r.refs {
		if existing == name {
			return
		}
	}
	r.refs = append(r.refs, name)
}

// Parse scans the document and returns its tokens in document order.
// Content before the first header belongs to no token and is discarded.
func (p *Parser) Parse(content string) ([]*domain.Token, error) {
	var (
		raws      []*rawToken
		scene     *rawToken
		component *rawToken
		current   *rawToken
	)

	open := func(kind domain.TokenKind, name string, unnamed bool, line int) {
		t := &rawToken{
			kind:       kind,
			name:       name,
			unnamed:    unnamed,
			order:      len(raws),
			headerLine: line,
		}
		switch kind {
		case domain.KindScene:
			// A new scene closes any open component.
			scene, component = t, nil
		case domain.KindComponent:
			t.parent = scene
			component = t
		case domain.KindFunction:
			t.parent = component
		}
		raws = append(raws, t)
		current = t
	}

	parts := strings.Split(content, "\n")
	for i, rawLine := range parts {
		last := i == len(parts)-1
		if last && rawLine == "" {
			// The document ended with a newline; no final line follows it.
			break
		}
		line := strings.TrimSuffix(rawLine, "\r")
		lineNo := i + 1

		header, ok, err := matchHeader(line, lineNo)
		if err != nil {
			return nil, err
		}
		if ok {
			open(header.kind, header.name, header.unnamed, lineNo)
			continue
		}

		if current == nil {
			continue
		}
		if last {
			current.lines = append(current.lines, line)
		} else {
			current.lines = append(current.lines, line+"\n")
		}
		if target, isRef := refTarget(line); isRef {
			current.addRef(target)
		}
	}

	return p.finalize(raws)
}

// finalize builds the domain tokens: join content, derive names for unnamed
// functions, reject sibling name clashes and attach references.
func (p *Parser) finalize(raws []*rawToken) ([]*domain.Token, error) {
	built := make(map[*rawToken]*domain.Token, len(raws))
	tokens := make([]*domain.Token, 0, len(raws))

	type scopeKey struct {
		parent *rawToken
		name   string
	}
	seen := make(map[scopeKey]struct{}, len(raws))

	for _, r := range raws {
		content := strings.Join(r.lines, "")

		name := r.name
		if r.unnamed {
			parentName := ""
			if r.parent != nil {
				parentName = r.parent.name
			}
			name = domain.GeneratedFunctionName(parentName, r.order, content)
		}

		key := scopeKey{parent: r.parent, name: name}
		if _, dup := seen[key]; dup {
			err := zerr.With(domain.ErrDuplicateToken, "name", name)
			return nil, zerr.With(err, "line", r.headerLine)
		}
		seen[key] = struct{}{}

		var parent *domain.Token
		if r.parent != nil {
			parent = built[r.parent]
		}
		token := domain.NewToken(r.kind, name, parent, r.order, content)
		for _, ref := range r.refs {
			token.AddRef(ref)
		}
		built[r] = token
		tokens = append(tokens, token)
	}

	return tokens, nil
}

// header is one recognized header line.
type header struct {
	kind    domain.TokenKind
	name    string
	unnamed bool
}

// matchHeader decides whether a line is a header. The bool result reports a
// recognized header; the error reports a recognized header with trailing
// text after the closing bracket, which the grammar forbids.
func matchHeader(line string, lineNo int) (header, bool, error) {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, "[") {
		return header{}, false, nil
	}
	end := strings.Index(trimmed, "]")
	if end < 0 {
		return header{}, false, nil
	}

	inner := trimmed[1:end]
	if strings.Contains(inner, "[") {
		return header{}, false, nil
	}

	h, ok := parseHeaderBody(inner)
	if !ok {
		return header{}, false, nil
	}

	if rest := strings.TrimSpace(trimmed[end+1:]); rest != "" {
		err := zerr.With(domain.ErrSyntax, "line", lineNo)
		return header{}, false, zerr.With(err, "text", line)
	}
	return h, true, nil
}

// parseHeaderBody interprets the text between the brackets.
func parseHeaderBody(inner string) (header, bool) {
	keyword, name, hasColon := strings.Cut(inner, ":")

	kind, known := domain.ParseTokenKind(keyword)
	if !known {
		return header{}, false
	}

	if !hasColon {
		// Only functions may omit the name.
		if kind != domain.KindFunction {
			return header{}, false
		}
		return header{kind: kind, unnamed: true}, true
	}

	// One optional space after the colon; anything beyond that is not a
	// header the grammar knows.
	name = strings.TrimPrefix(name, " ")
	name = strings.TrimRight(name, " \t")
	if name == "" || name != strings.TrimLeft(name, " \t") {
		return header{}, false
	}
	return header{kind: kind, name: name}, true
}

// refTarget extracts the dependency target from a REF line. The line stays
// part of the content either way.
func refTarget(line string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	rest, ok := strings.CutPrefix(trimmed, refPrefix)
	if !ok {
		return "", false
	}
	target := strings.TrimSpace(rest)
	if target == "" {
		return "", false
	}
	return target, true
}
