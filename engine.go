// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package tagraph

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/poiesic/tagraph/canon"
	"github.com/poiesic/tagraph/core"
	"github.com/poiesic/tagraph/fuzzy"
	"github.com/poiesic/tagraph/graph"
	"github.com/poiesic/tagraph/ingestion"
	"github.com/poiesic/tagraph/lemma"
	"github.com/poiesic/tagraph/search"
	"github.com/poiesic/tagraph/storage"
)

// Index is one immutable vocabulary and graph pair.
type Index struct {
	Vocabulary *canon.Vocabulary
	Graph      *graph.Graph
	Language   string
	BuiltAt    time.Time
}

// QueryResult is the outcome of Engine.Query.
type QueryResult struct {
	*search.Result

	// Expanded lists the single-word tags fuzzy expansion added to the query.
	Expanded []string
	// Enriched is the query text handed to the resolver.
	Enriched string

	graph *graph.Graph
}

// NarrowedItems returns the item nodes of the narrowed set.
func (r *QueryResult) NarrowedItems() []graph.ItemNode {
	return r.nodes(r.Narrowed)
}

// PreviousItems returns the item nodes of the previous set.
func (r *QueryResult) PreviousItems() []graph.ItemNode {
	return r.nodes(r.Previous)
}

func (r *QueryResult) nodes(ids []core.ItemID) []graph.ItemNode {
	nodes := make([]graph.ItemNode, 0, len(ids))
	for _, id := range ids {
		if i, ok := r.graph.Lookup(id); ok {
			nodes = append(nodes, r.graph.Item(i))
		}
	}
	return nodes
}

// Engine builds, publishes and queries tag graph indexes.
// Queries never block: they read whichever index was published last.
type Engine struct {
	config     *Config
	lemmatizer *lemma.Lemmatizer
	resolver   *search.Resolver
	expander   *fuzzy.Expander
	metrics    *Metrics
	progress   io.Writer
	logger     *slog.Logger

	index   atomic.Pointer[Index]
	buildMu sync.Mutex
}

// EngineOption configures an Engine.
type EngineOption func(*engineOptions)

type engineOptions struct {
	config     *Config
	lemmatizer *lemma.Lemmatizer
	metrics    *Metrics
	progress   io.Writer
	logger     *slog.Logger
}

// WithConfig sets the engine configuration. Default is DefaultConfig().
func WithConfig(cfg *Config) EngineOption {
	return func(o *engineOptions) {
		o.config = cfg
	}
}

// WithLemmatizer overrides the lemmatizer selected by Config.Language.
func WithLemmatizer(l *lemma.Lemmatizer) EngineOption {
	return func(o *engineOptions) {
		o.lemmatizer = l
	}
}

// WithMetrics records engine activity in m.
func WithMetrics(m *Metrics) EngineOption {
	return func(o *engineOptions) {
		o.metrics = m
	}
}

// WithProgress reports construction progress to w.
func WithProgress(w io.Writer) EngineOption {
	return func(o *engineOptions) {
		o.progress = w
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) EngineOption {
	return func(o *engineOptions) {
		o.logger = logger
	}
}

// NewEngine creates an engine with no index.
func NewEngine(opts ...EngineOption) (*Engine, error) {
	options := &engineOptions{}
	for _, opt := range opts {
		opt(options)
	}
	if options.config == nil {
		options.config = DefaultConfig()
	}
	if options.logger == nil {
		options.logger = slog.Default()
	}

	cfg := *options.config
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	l := options.lemmatizer
	if l == nil {
		var err error
		if l, err = lemma.ForLanguage(cfg.Language); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	}

	resolver, err := search.NewResolver(l, search.WithLogger(options.logger))
	if err != nil {
		return nil, err
	}
	expander, err := fuzzy.NewExpander(l,
		fuzzy.WithMinSimilarity(cfg.MinSimilarity),
		fuzzy.WithLogger(options.logger))
	if err != nil {
		return nil, err
	}

	return &Engine{
		config:     &cfg,
		lemmatizer: l,
		resolver:   resolver,
		expander:   expander,
		metrics:    options.metrics,
		progress:   options.progress,
		logger:     options.logger,
	}, nil
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() Config {
	return *e.config
}

// Lemmatizer returns the lemmatizer shared by construction and queries.
func (e *Engine) Lemmatizer() *lemma.Lemmatizer {
	return e.lemmatizer
}

// Index returns the published index, or nil if none has been built.
func (e *Engine) Index() *Index {
	return e.index.Load()
}

// Build constructs an index from items and publishes it.
// On failure the previously published index stays in place.
func (e *Engine) Build(ctx context.Context, items []*core.Item) (*Index, error) {
	e.buildMu.Lock()
	defer e.buildMu.Unlock()

	start := time.Now()
	idx, err := e.build(ctx, items)
	e.metrics.observeBuild(time.Since(start), err)
	if err != nil {
		e.logger.Error("index build failed", "err", err)
		return nil, err
	}

	e.publish(idx)
	e.logger.Info("published index",
		"items", idx.Graph.NumItems(),
		"tags", idx.Graph.NumTags(),
		"edges", idx.Graph.NumEdges(),
		"elapsed", time.Since(start))
	return idx, nil
}

func (e *Engine) build(ctx context.Context, items []*core.Item) (*Index, error) {
	opts := []ingestion.Option{
		ingestion.WithPoolSize(e.config.PoolSize),
		ingestion.WithLogger(e.logger),
	}
	if e.progress != nil {
		opts = append(opts, ingestion.WithProgress(e.progress))
	}

	pipeline, err := ingestion.NewPipeline(e.lemmatizer, e.config.MinCount, opts...)
	if err != nil {
		return nil, err
	}
	defer pipeline.Release()

	vocab, g, err := pipeline.Build(ctx, items)
	if err != nil {
		return nil, err
	}
	return &Index{
		Vocabulary: vocab,
		Graph:      g,
		Language:   e.config.Language,
		BuiltAt:    time.Now().UTC(),
	}, nil
}

func (e *Engine) publish(idx *Index) {
	e.index.Store(idx)
	e.metrics.observeIndex(idx)
}

// Expand returns the single-word tags fuzzy expansion finds for query.
func (e *Engine) Expand(query string) ([]string, error) {
	idx := e.index.Load()
	if idx == nil {
		return nil, ErrNoIndex
	}
	return e.expander.Expand(query, idx.Vocabulary.SingleWordTags()), nil
}

// Query expands query with fuzzy single-word tags and resolves it with the
// configured thresholds.
func (e *Engine) Query(query string) (*QueryResult, error) {
	return e.QueryWith(query, e.config.MinNumber, !e.config.NoExpand)
}

// QueryWith resolves query with an explicit minimum candidate count.
// Fuzzy expansion runs only when expand is true.
func (e *Engine) QueryWith(query string, minNumber int, expand bool) (*QueryResult, error) {
	idx := e.index.Load()
	if idx == nil {
		return nil, ErrNoIndex
	}

	result := &QueryResult{Enriched: query, graph: idx.Graph}
	if expand {
		result.Expanded = e.expander.Expand(query, idx.Vocabulary.SingleWordTags())
		result.Enriched = fuzzy.Enrich(query, result.Expanded)
	}

	var monitor search.ResolveMonitor
	if e.config.Verbose {
		monitor = search.NewLogMonitor(e.logger)
	}
	result.Result = e.resolver.ResolveWithMonitor(result.Enriched, idx.Graph, idx.Vocabulary, minNumber, monitor)

	switch {
	case result.EarlyStopped():
		e.metrics.observeQuery(OutcomeEarlyStop, len(result.Narrowed))
	case result.Matched():
		e.metrics.observeQuery(OutcomeNarrowed, len(result.Narrowed))
	default:
		e.metrics.observeQuery(OutcomeNoMatch, 0)
	}
	return result, nil
}

// SaveSnapshot persists the published index to repo.
func (e *Engine) SaveSnapshot(ctx context.Context, repo storage.SnapshotRepository) (*storage.Meta, error) {
	idx := e.index.Load()
	if idx == nil {
		return nil, ErrNoIndex
	}

	snapshot := storage.NewSnapshot(idx.Vocabulary, idx.Graph, idx.Language, idx.BuiltAt)
	if err := repo.SaveSnapshot(ctx, snapshot); err != nil {
		return nil, fmt.Errorf("save snapshot: %w", err)
	}
	return &snapshot.Meta, nil
}

// LoadSnapshot restores the index stored in repo and publishes it.
func (e *Engine) LoadSnapshot(ctx context.Context, repo storage.SnapshotRepository) (*Index, error) {
	snapshot, err := repo.LoadSnapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}

	vocab, g, err := snapshot.Restore(e.logger)
	if err != nil {
		return nil, err
	}
	if snapshot.Meta.Language != e.config.Language {
		e.logger.Warn("snapshot language differs from engine language",
			"snapshot", snapshot.Meta.Language,
			"engine", e.config.Language)
	}

	idx := &Index{
		Vocabulary: vocab,
		Graph:      g,
		Language:   snapshot.Meta.Language,
		BuiltAt:    snapshot.Meta.BuiltAt,
	}
	e.publish(idx)
	e.logger.Info("loaded index snapshot",
		"generation", snapshot.Meta.Generation,
		"items", g.NumItems(),
		"tags", g.NumTags())
	return idx, nil
}
