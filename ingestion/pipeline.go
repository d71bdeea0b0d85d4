package ingestion

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/tagraph/canon"
	"github.com/poiesic/tagraph/core"
	"github.com/poiesic/tagraph/graph"
	"github.com/poiesic/tagraph/lemma"
)

// DefaultBatchSize is the number of items handed to a worker at once.
const DefaultBatchSize = 256

// Pipeline orchestrates construction of a vocabulary and graph.
// It runs the counting and linking passes concurrently on a worker pool.
type Pipeline struct {
	lemmatizer *lemma.Lemmatizer
	minCount   int
	pool       *ants.Pool
	batchSize  int
	progress   io.Writer
	logger     *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for concurrent processing.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}

		// Release old pool
		if p.pool != nil {
			p.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		p.pool = pool
		return nil
	}
}

// WithBatchSize sets how many items each worker task handles.
// Default is DefaultBatchSize.
func WithBatchSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			return fmt.Errorf("%w: %d", ErrInvalidBatchSize, size)
		}
		p.batchSize = size
		return nil
	}
}

// WithProgress reports per-pass progress to w. Default is no progress output.
func WithProgress(w io.Writer) Option {
	return func(p *Pipeline) error {
		p.progress = w
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates a new construction pipeline.
func NewPipeline(lemmatizer *lemma.Lemmatizer, minCount int, opts ...Option) (*Pipeline, error) {
	if lemmatizer == nil {
		return nil, ErrLemmatizerRequired
	}
	if minCount < 0 {
		return nil, canon.ErrInvalidMinCount
	}

	// Default pool size
	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	// Create pipeline with defaults
	p := &Pipeline{
		lemmatizer: lemmatizer,
		minCount:   minCount,
		pool:       pool,
		batchSize:  DefaultBatchSize,
		logger:     slog.Default(),
	}

	// Apply options (may override defaults)
	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	return p, nil
}

// Build constructs the vocabulary and graph of a corpus.
// Invalid and duplicate items are skipped with a warning. An empty corpus
// yields an empty vocabulary and graph.
func (p *Pipeline) Build(ctx context.Context, items []*core.Item) (*canon.Vocabulary, *graph.Graph, error) {
	items = p.accept(items)

	counter := canon.NewCounter()
	if err := p.run(ctx, &countProcessor{counter: counter}, items); err != nil {
		return nil, nil, err
	}

	vocab, err := canon.Canonicalize(counter, p.lemmatizer, p.minCount, p.logger)
	if err != nil {
		return nil, nil, err
	}

	builder := graph.NewBuilder(graph.WithLogger(p.logger))
	for _, item := range items {
		builder.AddItem(item.ID, item.Name)
	}
	for _, tag := range vocab.Tags() {
		builder.AddTag(tag.Key)
	}

	linker := &linkProcessor{builder: builder, vocab: vocab}
	if err := p.run(ctx, linker, items); err != nil {
		return nil, nil, err
	}

	g := builder.Graph()
	p.logger.Info("built tag graph",
		"items", g.NumItems(),
		"tags", g.NumTags(),
		"edges", g.NumEdges(),
		"linked", linker.linked.Load(),
		"unresolved", linker.unresolved.Load())
	return vocab, g, nil
}

// accept drops items that fail validation or repeat an earlier ID.
func (p *Pipeline) accept(items []*core.Item) []*core.Item {
	seen := make(map[core.ItemID]struct{}, len(items))
	accepted := make([]*core.Item, 0, len(items))
	for i, item := range items {
		if err := core.ValidateItem(item); err != nil {
			p.logger.Warn("skipping invalid item", "index", i, "err", err)
			continue
		}
		if _, dup := seen[item.ID]; dup {
			p.logger.Warn("skipping duplicate item", "index", i, "item", item.ID)
			continue
		}
		seen[item.ID] = struct{}{}
		accepted = append(accepted, item)
	}
	return accepted
}

// run applies a processor to every batch of items on the pool and waits.
// The first error cancels the batches that have not started yet.
func (p *Pipeline) run(ctx context.Context, proc processor, items []*core.Item) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var tracker *ProgressTracker
	if p.progress != nil {
		tracker = NewProgressTracker(p.progress, proc.name(), len(items), p.batchSize)
		tracker.Start()
	}

	var (
		wg       sync.WaitGroup
		errOnce  sync.Once
		firstErr error
	)
	fail := func(err error) {
		errOnce.Do(func() {
			firstErr = err
			cancel()
		})
	}

	for start := 0; start < len(items); start += p.batchSize {
		if ctx.Err() != nil {
			break
		}
		batch := items[start:min(start+p.batchSize, len(items))]

		wg.Add(1)
		err := p.pool.Submit(func() {
			defer wg.Done()
			if err := ctx.Err(); err != nil {
				fail(err)
				return
			}
			if err := proc.process(ctx, batch); err != nil {
				p.logger.Error("error processing batch", "pass", proc.name(), "size", len(batch), "err", err)
				fail(err)
				return
			}
			if tracker != nil {
				tracker.Increment(len(batch))
			}
		})
		if err != nil {
			wg.Done()
			fail(fmt.Errorf("submit %s batch: %w", proc.name(), err))
			break
		}
	}
	wg.Wait()

	if firstErr == nil {
		// Cancellation before any batch ran is still a failure.
		if err := ctx.Err(); err != nil && len(items) > 0 {
			firstErr = err
		}
	}
	if firstErr != nil {
		return firstErr
	}

	if tracker != nil {
		tracker.Finish()
	}
	return nil
}

// Release releases resources including worker pools.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	if p.pool != nil {
		p.pool.Release()
	}
}
