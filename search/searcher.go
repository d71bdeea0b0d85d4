package search

import (
	"log/slog"

	"github.com/poiesic/tagraph/canon"
	"github.com/poiesic/tagraph/core"
	"github.com/poiesic/tagraph/graph"
	"github.com/poiesic/tagraph/lemma"
)

// Result is the outcome of resolving one query.
type Result struct {
	Query string
	// Lemmas are the distinct query lemmas in first-occurrence order.
	Lemmas []string
	// Narrowed is the final candidate set, or the too-small set on early stop.
	Narrowed []core.ItemID
	// Previous is the last candidate set that still met the threshold.
	Previous []core.ItemID
	// Applied lists the tags that narrowed the candidates, in order.
	Applied []*core.CanonicalTag
	// StoppedAt is the tag whose intersection fell below the threshold.
	StoppedAt *core.CanonicalTag
}

// EarlyStopped reports whether resolution stopped before the vocabulary was exhausted.
func (r *Result) EarlyStopped() bool {
	return r.StoppedAt != nil
}

// Matched reports whether any tag was matched by the query.
func (r *Result) Matched() bool {
	return len(r.Applied) > 0 || r.StoppedAt != nil
}

// Resolver narrows the items of a graph by the tags a query mentions.
type Resolver struct {
	lemmatizer *lemma.Lemmatizer
	logger     *slog.Logger
}

// Option configures a Resolver.
type Option func(*Resolver) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// NewResolver creates a new resolver.
func NewResolver(lemmatizer *lemma.Lemmatizer, opts ...Option) (*Resolver, error) {
	if lemmatizer == nil {
		return nil, ErrLemmatizerRequired
	}

	r := &Resolver{
		lemmatizer: lemmatizer,
		logger:     slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// Resolve returns the narrowed candidate set and the previous one.
// See ResolveWithMonitor.
func (r *Resolver) Resolve(query string, g *graph.Graph, vocab *canon.Vocabulary, minNumber int) ([]core.ItemID, []core.ItemID) {
	res := r.ResolveWithMonitor(query, g, vocab, minNumber, nil)
	return res.Narrowed, res.Previous
}

// ResolveWithMonitor resolves a query with monitoring.
//
// Tags are visited in vocabulary order. A tag applies when every one of its
// lemmas occurs in the query. Each applied tag intersects the current
// candidates with its neighbors; if the intersection has fewer than
// minNumber items the walk stops at once and returns (intersection, current).
// Otherwise the intersection becomes the current set. When no tag applies,
// Narrowed is empty and Previous holds every item.
func (r *Resolver) ResolveWithMonitor(query string, g *graph.Graph, vocab *canon.Vocabulary, minNumber int, monitor ResolveMonitor) *Result {
	// Use noop monitor if none provided
	if monitor == nil {
		monitor = &noopMonitor{}
	}
	minNumber = max(minNumber, 0)

	lemmas, set := r.querySet(query)
	result := &Result{Query: query, Lemmas: lemmas}

	current := g.Universe()
	var narrowed graph.NodeSet
	monitor.Start(query, lemmas, current.Len())

	for _, tag := range vocab.Tags() {
		if !covers(set, tag.Lemmas()) {
			continue
		}
		hits, ok := g.Neighbors(tag.Key)
		if !ok {
			r.logger.Debug("vocabulary tag missing from graph", "tag", tag.Key.String())
			continue
		}

		candidate := current.Intersect(hits)
		if candidate.Len() < minNumber {
			result.StoppedAt = tag
			result.Narrowed = g.ItemIDs(candidate)
			result.Previous = g.ItemIDs(current)
			monitor.EarlyStop(tag, candidate.Len(), current.Len())
			monitor.Finish(result)
			return result
		}

		current = candidate
		narrowed = candidate
		result.Applied = append(result.Applied, tag)
		monitor.TagApplied(tag, candidate.Len())
	}

	result.Narrowed = g.ItemIDs(narrowed)
	result.Previous = g.ItemIDs(current)
	monitor.Finish(result)
	return result
}

// querySet lemmatizes a query into its distinct lemmas.
func (r *Resolver) querySet(query string) ([]string, map[string]struct{}) {
	all := r.lemmatizer.Lemmatize(query)
	set := make(map[string]struct{}, len(all))
	lemmas := make([]string, 0, len(all))
	for _, l := range all {
		if _, seen := set[l]; seen {
			continue
		}
		set[l] = struct{}{}
		lemmas = append(lemmas, l)
	}
	return lemmas, set
}

// covers reports whether every lemma is in the query set.
func covers(set map[string]struct{}, lemmas []string) bool {
	if len(lemmas) == 0 {
		return false
	}
	for _, l := range lemmas {
		if _, ok := set[l]; !ok {
			return false
		}
	}
	return true
}
