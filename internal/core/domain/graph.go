package domain

import (
	"iter"
	"sort"

	"go.trai.ch/zerr"
)

// Graph is the dependency graph over the tokens of one document. Edges point
// from a token to the tokens its REF lines resolved to.
type Graph struct {
	tokens         map[InternedString]*Token
	edges          map[InternedString][]InternedString
	dependents     map[InternedString][]InternedString
	order          []InternedString
	executionOrder []InternedString
}

// BuildGraph resolves every token's declared references against a
// document-wide name index and returns the resulting graph. Names resolve by
// exact match; when several tokens share a name the first one in document
// order wins. A reference that matches no token is an error naming both the
// referencing token and the missing name.
func BuildGraph(tokens []*Token) (*Graph, error) {
	g := &Graph{
		tokens:     make(map[InternedString]*Token, len(tokens)),
		edges:      make(map[InternedString][]InternedString, len(tokens)),
		dependents: make(map[InternedString][]InternedString),
		order:      make([]InternedString, 0, len(tokens)),
	}

	byName := make(map[string]*Token, len(tokens))
	for _, t := range tokens {
		path := t.Path()
		if _, exists := g.tokens[path]; exists {
			return nil, zerr.With(ErrDuplicateToken, "token", path.String())
		}
		g.tokens[path] = t
		g.order = append(g.order, path)
		if _, taken := byName[t.Name]; !taken {
			byName[t.Name] = t
		}
	}

	for _, t := range tokens {
		path := t.Path()
		for _, ref := range t.Refs {
			target, ok := byName[ref]
			if !ok {
				err := zerr.With(ErrUnresolvedReference, "token", path.String())
				return nil, zerr.With(err, "reference", ref)
			}
			targetPath := target.Path()
			g.edges[path] = append(g.edges[path], targetPath)
			g.dependents[targetPath] = append(g.dependents[targetPath], path)
		}
	}

	return g, nil
}

// Validate checks the graph for cycles and fixes the execution order.
// The order is a deterministic topological sort: dependencies come first, and
// among tokens whose dependencies are all placed, document order decides.
func (g *Graph) Validate() error {
	if err := g.detectCycles(); err != nil {
		return err
	}
	g.executionOrder = g.topologicalOrder()
	return nil
}

// detectCycles runs a depth-first search with coloring so the error can name
// the concrete cycle. Tokens are visited in document order, which keeps the
// reported cycle stable across runs.
func (g *Graph) detectCycles() error {
	visited := make(map[InternedString]int, len(g.order)) // 0: unvisited, 1: visiting, 2: visited
	var path []InternedString

	var visit func(u InternedString) error
	visit = func(u InternedString) error {
		visited[u] = 1
		path = append(path, u)

		for _, dep := range g.edges[u] {
			if visited[dep] == 1 {
				return g.buildCycleError(path, dep)
			}
			if visited[dep] == 0 {
				if err := visit(dep); err != nil {
					return err
				}
			}
		}

		visited[u] = 2
		path = path[:len(path)-1]
		return nil
	}

	for _, u := range g.order {
		if visited[u] == 0 {
			if err := visit(u); err != nil {
				return err
			}
		}
	}
	return nil
}

// buildCycleError constructs an error with cycle path metadata.
func (g *Graph) buildCycleError(path []InternedString, dep InternedString) error {
	cyclePath := ""
	startIdx := -1
	for i, node := range path {
		if node == dep {
			startIdx = i
			break
		}
	}
	for i := startIdx; i < len(path); i++ {
		cyclePath += path[i].String() + " -> "
	}
	cyclePath += dep.String()
	return zerr.With(ErrCyclicDependency, "cycle", cyclePath)
}

// topologicalOrder emits tokens via Kahn's algorithm, always picking the
// ready token that appears earliest in the document. Assumes detectCycles
// already passed, so the loop always makes progress.
func (g *Graph) topologicalOrder() []InternedString {
	inDegree := make(map[InternedString]int, len(g.order))
	for _, u := range g.order {
		inDegree[u] = len(g.edges[u])
	}

	emitted := make(map[InternedString]bool, len(g.order))
	order := make([]InternedString, 0, len(g.order))
	for len(order) < len(g.order) {
		for _, u := range g.order {
			if emitted[u] || inDegree[u] != 0 {
				continue
			}
			emitted[u] = true
			order = append(order, u)
			for _, dependent := range g.dependents[u] {
				inDegree[dependent]--
			}
			break
		}
	}
	return order
}

// Token returns the token at the given path, or nil.
func (g *Graph) Token(path InternedString) *Token {
	return g.tokens[path]
}

// Len returns the number of tokens in the graph.
func (g *Graph) Len() int {
	return len(g.tokens)
}

// Dependencies returns the tokens the given token depends on, sorted by
// document order. The slice is a copy.
func (g *Graph) Dependencies(path InternedString) []InternedString {
	deps := append([]InternedString(nil), g.edges[path]...)
	sort.Slice(deps, func(i, j int) bool {
		return g.tokens[deps[i]].Order < g.tokens[deps[j]].Order
	})
	return deps
}

// Dependents returns the tokens that directly depend on the given token,
// sorted by document order. The slice is a copy.
func (g *Graph) Dependents(path InternedString) []InternedString {
	deps := append([]InternedString(nil), g.dependents[path]...)
	sort.Slice(deps, func(i, j int) bool {
		return g.tokens[deps[i]].Order < g.tokens[deps[j]].Order
	})
	return deps
}

// TransitiveDependents returns the seeds plus every token that transitively
// depends on one of them. This is the invalidation set for a recompile.
func (g *Graph) TransitiveDependents(seeds ...InternedString) map[InternedString]struct{} {
	closure := make(map[InternedString]struct{}, len(seeds))
	queue := append([]InternedString(nil), seeds...)
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		if _, done := closure[u]; done {
			continue
		}
		closure[u] = struct{}{}
		queue = append(queue, g.dependents[u]...)
	}
	return closure
}

// Walk returns an iterator that yields tokens in execution order.
// It assumes Validate() has been called and returned nil.
func (g *Graph) Walk() iter.Seq[*Token] {
	return func(yield func(*Token) bool) {
		for _, path := range g.executionOrder {
			if !yield(g.tokens[path]) {
				return
			}
		}
	}
}
