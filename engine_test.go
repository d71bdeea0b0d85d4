package tagraph

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/poiesic/tagraph/core"
	"github.com/poiesic/tagraph/lemma"
	"github.com/poiesic/tagraph/storage"
	"github.com/poiesic/tagraph/storage/badger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// breakfastCorpus holds five breakfast items whose two surface forms of
// "завтрак" occur four times each, and one lunch item. breakfast_3 holds
// only "завтрак" and breakfast_4 only "завтраки".
func breakfastCorpus() []*core.Item {
	variants := [][]string{
		{"завтрак", "завтраки"},
		{"завтрак", "завтраки"},
		{"завтрак", "завтраки"},
		{"завтрак"},
		{"завтраки"},
	}
	items := make([]*core.Item, 0, 6)
	for i, meal := range variants {
		items = append(items, &core.Item{
			ID:   core.ItemID(fmt.Sprintf("breakfast_%d", i)),
			Name: fmt.Sprintf("Завтрак %d", i),
			Tags: map[core.Category][]string{core.CategoryMeal: meal},
		})
	}
	items = append(items, &core.Item{
		ID:   "lunch_0",
		Name: "Обед 0",
		Tags: map[core.Category][]string{core.CategoryMeal: {"обед"}},
	})
	return items
}

// dinnerCorpus has overlapping diet and meal tags for narrowing tests.
func dinnerCorpus() []*core.Item {
	var items []*core.Item
	add := func(id string, tags map[core.Category][]string) {
		items = append(items, &core.Item{ID: core.ItemID(id), Name: id, Tags: tags})
	}
	for i := range 6 {
		add(fmt.Sprintf("dinner_%d", i), map[core.Category][]string{
			core.CategoryMeal: {"ужин"},
			core.CategoryDiet: {"постное"},
		})
	}
	for i := range 3 {
		add(fmt.Sprintf("lean_%d", i), map[core.Category][]string{
			core.CategoryDiet: {"постное"},
		})
	}
	add("dinner_gluten_free", map[core.Category][]string{
		core.CategoryMeal: {"ужины"},
		core.CategoryDiet: {"безглютеновое"},
	})
	return items
}

func testEngine(t *testing.T, opts ...EngineOption) *Engine {
	t.Helper()
	l, err := lemma.New(lemma.DictionaryMorphology{"ужины": "ужин"})
	require.NoError(t, err)
	opts = append([]EngineOption{WithLemmatizer(l)}, opts...)
	e, err := NewEngine(opts...)
	require.NoError(t, err)
	return e
}

func TestNewEngine(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		e, err := NewEngine()
		require.NoError(t, err)
		assert.Equal(t, *DefaultConfig(), e.Config())
		assert.NotNil(t, e.Lemmatizer())
		assert.Nil(t, e.Index())
	})

	t.Run("invalid config", func(t *testing.T) {
		_, err := NewEngine(WithConfig(NewConfig(WithMinCount(-1))))
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("unsupported language", func(t *testing.T) {
		_, err := NewEngine(WithConfig(NewConfig(WithLanguage("klingon"))))
		assert.ErrorIs(t, err, ErrInvalidConfig)
		assert.ErrorIs(t, err, lemma.ErrUnsupportedLanguage)
	})

	t.Run("config is copied", func(t *testing.T) {
		cfg := NewConfig(WithMinNumber(3))
		e, err := NewEngine(WithConfig(cfg))
		require.NoError(t, err)
		cfg.MinNumber = 99
		assert.Equal(t, 3, e.Config().MinNumber)
	})
}

func TestEngine_NoIndex(t *testing.T) {
	e := testEngine(t)

	_, err := e.Query("ужин")
	assert.ErrorIs(t, err, ErrNoIndex)

	_, err = e.Expand("ужин")
	assert.ErrorIs(t, err, ErrNoIndex)

	_, err = e.SaveSnapshot(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNoIndex)
}

func TestEngine_BuildAndQuery(t *testing.T) {
	e := testEngine(t, WithConfig(NewConfig(WithMinCount(2), WithMinNumber(2), WithPoolSize(2))))
	ctx := context.Background()

	idx, err := e.Build(ctx, dinnerCorpus())
	require.NoError(t, err)
	assert.Same(t, idx, e.Index())
	assert.Equal(t, 10, idx.Graph.NumItems())
	assert.Equal(t, "russian", idx.Language)

	// "безглютеновое" occurs once and falls below the floor.
	_, ok := idx.Vocabulary.Lookup("безглютеновое")
	assert.False(t, ok)

	tests := []struct {
		name         string
		query        string
		minNumber    int
		wantNarrowed int
		wantPrevious int
		earlyStop    bool
	}{
		{"single tag", "постное", 2, 9, 9, false},
		{"two tags narrow", "постное ужин", 2, 6, 6, false},
		{"variant lemmatizes to same tag", "ужины", 2, 7, 7, false},
		{"early stop keeps previous", "постное ужин", 8, 6, 9, true},
		{"no match", "десерт", 2, 0, 10, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := e.QueryWith(tt.query, tt.minNumber, false)
			require.NoError(t, err)
			assert.Len(t, res.Narrowed, tt.wantNarrowed)
			assert.Len(t, res.Previous, tt.wantPrevious)
			assert.Equal(t, tt.earlyStop, res.EarlyStopped())
			assert.Len(t, res.NarrowedItems(), tt.wantNarrowed)
			assert.Len(t, res.PreviousItems(), tt.wantPrevious)
		})
	}
}

func TestEngine_QueryExpansion(t *testing.T) {
	e := testEngine(t, WithConfig(NewConfig(WithMinCount(2), WithMinNumber(2))))
	_, err := e.Build(context.Background(), dinnerCorpus())
	require.NoError(t, err)

	expanded, err := e.Expand("постнае блюдо")
	require.NoError(t, err)
	assert.Contains(t, expanded, "постное")

	res, err := e.Query("постнае")
	require.NoError(t, err)
	assert.Equal(t, []string{"постное"}, res.Expanded)
	assert.Equal(t, "постнае постное", res.Enriched)
	assert.Len(t, res.Narrowed, 9)

	res, err = e.QueryWith("постнае", 2, false)
	require.NoError(t, err)
	assert.Empty(t, res.Expanded)
	assert.Equal(t, "постнае", res.Enriched)
	assert.Empty(t, res.Narrowed)
}

func TestEngine_NoExpandConfig(t *testing.T) {
	e := testEngine(t, WithConfig(NewConfig(WithMinCount(2), WithoutExpansion())))
	_, err := e.Build(context.Background(), dinnerCorpus())
	require.NoError(t, err)

	res, err := e.Query("постнае")
	require.NoError(t, err)
	assert.Empty(t, res.Expanded)
}

func TestEngine_BuildFailureKeepsIndex(t *testing.T) {
	e := testEngine(t, WithConfig(NewConfig(WithMinCount(1))))
	first, err := e.Build(context.Background(), dinnerCorpus())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = e.Build(ctx, breakfastCorpus())
	require.ErrorIs(t, err, context.Canceled)
	assert.Same(t, first, e.Index())
}

func TestEngine_ConcurrentQueriesDuringRebuild(t *testing.T) {
	e := testEngine(t, WithConfig(NewConfig(WithMinCount(1), WithMinNumber(1))))
	ctx := context.Background()
	_, err := e.Build(ctx, dinnerCorpus())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 50 {
				res, err := e.Query("ужин")
				if assert.NoError(t, err) {
					// Either index answers consistently: 7 dinners or none.
					assert.Contains(t, []int{0, 7}, len(res.Narrowed))
				}
			}
		}()
	}
	for range 5 {
		_, err := e.Build(ctx, breakfastCorpus())
		require.NoError(t, err)
		_, err = e.Build(ctx, dinnerCorpus())
		require.NoError(t, err)
	}
	wg.Wait()
}

func TestEngine_SnapshotRoundTrip(t *testing.T) {
	repo, backend, err := badger.NewMemorySnapshotRepository()
	require.NoError(t, err)
	defer func() {
		repo.Close()
		backend.Close()
	}()

	ctx := context.Background()
	cfg := NewConfig(WithMinCount(2), WithMinNumber(2))
	built := testEngine(t, WithConfig(cfg))
	_, err = built.Build(ctx, dinnerCorpus())
	require.NoError(t, err)

	meta, err := built.SaveSnapshot(ctx, repo)
	require.NoError(t, err)
	assert.NotZero(t, meta.Generation)
	assert.Equal(t, 2, meta.MinCount)

	loaded := testEngine(t, WithConfig(cfg))
	idx, err := loaded.LoadSnapshot(ctx, repo)
	require.NoError(t, err)
	assert.Same(t, idx, loaded.Index())

	for _, query := range []string{"постное", "постное ужин", "ужины", "десерт"} {
		want, err := built.Query(query)
		require.NoError(t, err)
		got, err := loaded.Query(query)
		require.NoError(t, err)
		assert.Equal(t, want.Narrowed, got.Narrowed, query)
		assert.Equal(t, want.Previous, got.Previous, query)
	}
}

func TestEngine_LoadSnapshotMissing(t *testing.T) {
	repo, backend, err := badger.NewMemorySnapshotRepository()
	require.NoError(t, err)
	defer func() {
		repo.Close()
		backend.Close()
	}()

	e := testEngine(t)
	_, err = e.LoadSnapshot(context.Background(), repo)
	assert.ErrorIs(t, err, storage.ErrNotFound)
	assert.Nil(t, e.Index())
}

func TestEngine_Metrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	e := testEngine(t, WithMetrics(m), WithConfig(NewConfig(WithMinCount(2), WithMinNumber(8))))

	_, err := e.Build(context.Background(), dinnerCorpus())
	require.NoError(t, err)
	assert.Equal(t, float64(1), testutil.ToFloat64(m.builds.WithLabelValues("ok")))
	assert.Equal(t, float64(10), testutil.ToFloat64(m.items))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.tags))

	_, err = e.QueryWith("постное", 2, false)
	require.NoError(t, err)
	_, err = e.QueryWith("постное ужин", 8, false)
	require.NoError(t, err)
	_, err = e.QueryWith("десерт", 2, false)
	require.NoError(t, err)

	assert.Equal(t, float64(1), testutil.ToFloat64(m.queries.WithLabelValues(OutcomeNarrowed)))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.queries.WithLabelValues(OutcomeEarlyStop)))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.queries.WithLabelValues(OutcomeNoMatch)))
}

// TestEndToEnd_Russian runs the snowball backend over a corpus where two
// surface forms of one meal tag only pass the floor together.
func TestEndToEnd_Russian(t *testing.T) {
	e, err := NewEngine(WithConfig(NewConfig(WithMinCount(5), WithMinNumber(2))))
	require.NoError(t, err)

	idx, err := e.Build(context.Background(), breakfastCorpus())
	require.NoError(t, err)
	assert.Equal(t, 6, idx.Graph.NumItems())
	assert.Equal(t, 1, idx.Graph.NumTags(), "завтрак and завтраки collapse into one tag; обед is below the floor")

	tag, ok := idx.Vocabulary.Lookup("завтраки")
	require.True(t, ok)
	assert.Equal(t, 8, tag.Count)
	assert.Equal(t, map[string]int{"завтрак": 4, "завтраки": 4}, tag.Variants)

	// one edge per breakfast item, whichever variants it holds
	assert.Equal(t, 5, idx.Graph.NumEdges())

	want := []core.ItemID{"breakfast_0", "breakfast_1", "breakfast_2", "breakfast_3", "breakfast_4"}
	for _, query := range []string{"завтрак", "завтраки"} {
		res, err := e.Query(query)
		require.NoError(t, err)
		assert.ElementsMatch(t, want, res.Narrowed, query)
		assert.False(t, res.EarlyStopped(), query)
	}
}
