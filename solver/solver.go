// Package solver finds every dictionary word that can be traced through
// adjacent tiles of a board without reusing a tile.
package solver

import (
	"context"
	"fmt"
	"sort"

	"row-major.net/boggle/board"
	"row-major.net/boggle/trie"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// MaxDepth is the longest path, in tiles, the search will follow.
const MaxDepth = 15

// WordSet is a set of found words.
type WordSet map[string]struct{}

func (s WordSet) Add(w string) {
	s[w] = struct{}{}
}

func (s WordSet) Contains(w string) bool {
	_, ok := s[w]
	return ok
}

// Union adds every word of o to s.
func (s WordSet) Union(o WordSet) {
	for w := range o {
		s[w] = struct{}{}
	}
}

func (s WordSet) Len() int {
	return len(s)
}

// Sorted returns the words in lexical order.
func (s WordSet) Sorted() []string {
	words := make([]string, 0, len(s))
	for w := range s {
		words = append(words, w)
	}
	sort.Strings(words)
	return words
}

// Stats describes the work done by one Solve call.
type Stats struct {
	StatesConsidered int64
	Pruned           int64
	WordsFound       int
	MaxDepth         int
}

type traceFunction func(msg string)

// Solver searches boards against a fixed index.  The index must not be
// modified while any Solve call is running; concurrent Solve calls are
// safe.
type Solver struct {
	index    *trie.Node
	maxDepth int

	traceFn traceFunction
}

type Option func(s *Solver)

// WithMaxDepth overrides MaxDepth.
func WithMaxDepth(depth int) Option {
	return func(s *Solver) {
		s.maxDepth = depth
	}
}

func WithTraceFn(traceFn traceFunction) Option {
	return func(s *Solver) {
		s.traceFn = traceFn
	}
}

func New(index *trie.Node, opts ...Option) *Solver {
	s := &Solver{
		index:    index,
		maxDepth: MaxDepth,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Traverse returns every word in index that can be spelled on g.
func Traverse(g board.Grid, index *trie.Node) WordSet {
	words, _ := New(index).solve(g)
	return words
}

// Solve returns every word in the solver's index that can be spelled on g.
func (s *Solver) Solve(ctx context.Context, g board.Grid) (WordSet, Stats) {
	tracer := otel.Tracer("row-major.net/boggle/solver")
	var span trace.Span
	_, span = tracer.Start(ctx, "Solver.Solve")
	defer span.End()

	words, stats := s.solve(g)

	span.SetAttributes(
		attribute.Int("board_size", g.Size),
		attribute.Int64("states_considered", stats.StatesConsidered),
		attribute.Int64("pruned", stats.Pruned),
		attribute.Int("words_found", stats.WordsFound),
	)

	return words, stats
}

// search holds the path currently being explored.  Every push onto visited
// and partial is undone before the push's caller moves on.
type search struct {
	g       board.Grid
	words   WordSet
	visited []int
	partial []rune
	stats   Stats
}

func (st *search) push(i int) {
	st.visited = append(st.visited, i)
	st.partial = append(st.partial, st.g.At(i))
}

func (st *search) pop() {
	st.visited = st.visited[:len(st.visited)-1]
	st.partial = st.partial[:len(st.partial)-1]
}

func (st *search) isVisited(i int) bool {
	for _, v := range st.visited {
		if v == i {
			return true
		}
	}
	return false
}

func (s *Solver) solve(g board.Grid) (WordSet, Stats) {
	st := &search{
		g:     g,
		words: WordSet{},
	}

	for i := range g.Tiles {
		st.push(i)
		s.find(st, i, s.index, 1)
		st.pop()
	}

	st.stats.WordsFound = len(st.words)
	return st.words, st.stats
}

// step advances node along the edge for tile, spelling 'q' tiles as "qu".
func step(node *trie.Node, tile rune) *trie.Node {
	node = node.Child(tile)
	if tile == board.QuTile && node != nil {
		node = node.Child('u')
	}
	return node
}

// find explores every path that extends the current one through pos.  The
// tile at pos has already been pushed; parent is the index node for the
// path without it.
func (s *Solver) find(st *search, pos int, parent *trie.Node, depth int) {
	if depth > s.maxDepth {
		return
	}

	st.stats.StatesConsidered++
	if depth > st.stats.MaxDepth {
		st.stats.MaxDepth = depth
	}

	node := step(parent, st.g.At(pos))
	switch node.Class() {
	case trie.Absent:
		st.stats.Pruned++
		return
	case trie.Complete:
		w := board.ExpandQu(string(st.partial))
		if s.traceFn != nil && !st.words.Contains(w) {
			s.traceFn(fmt.Sprintf("found %q via %v", w, st.visited))
		}
		st.words.Add(w)
	case trie.Partial:
	}

	st.g.Neighbors(pos, func(next int) {
		if st.isVisited(next) {
			return
		}
		st.push(next)
		s.find(st, next, node, depth+1)
		st.pop()
	})
}
