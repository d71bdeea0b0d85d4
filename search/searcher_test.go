package search

import (
	"bytes"
	"fmt"
	"log/slog"
	"testing"

	"github.com/poiesic/tagraph/canon"
	"github.com/poiesic/tagraph/core"
	"github.com/poiesic/tagraph/graph"
	"github.com/poiesic/tagraph/lemma"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLemmatizer(t *testing.T) *lemma.Lemmatizer {
	t.Helper()
	l, err := lemma.New(lemma.DictionaryMorphology{
		"завтраки": "завтрак",
		"завтрака": "завтрак",
		"быстрые":  "быстрый",
		"быстрый":  "быстрый",
		"руку":     "рука",
		"скорую":   "скорый",
	}, lemma.WithStopwords([]string{"на", "для", "и"}))
	require.NoError(t, err)
	return l
}

type fixture struct {
	vocab *canon.Vocabulary
	graph *graph.Graph
}

func buildFixture(t *testing.T, items []*core.Item, minCount int) fixture {
	t.Helper()
	vocab, err := canon.BuildVocabulary(items, testLemmatizer(t), minCount, nil)
	require.NoError(t, err)
	return fixture{vocab: vocab, graph: graph.Build(items, vocab, nil)}
}

// breakfastCorpus has ten breakfasts, three of them quick, and two dinners.
func breakfastCorpus() []*core.Item {
	var items []*core.Item
	for i := range 10 {
		item := &core.Item{
			ID:   core.ItemID(fmt.Sprintf("b%02d", i)),
			Name: fmt.Sprintf("Завтрак %d", i),
			Tags: map[core.Category][]string{core.CategoryMeal: {"завтрак"}},
		}
		if i < 3 {
			item.Tags[core.CategoryOccasion] = []string{"быстрый"}
		}
		if i < 6 {
			item.Tags[core.CategoryDiet] = []string{"вегетарианская"}
		}
		items = append(items, item)
	}
	for i := range 2 {
		items = append(items, &core.Item{
			ID:   core.ItemID(fmt.Sprintf("d%02d", i)),
			Tags: map[core.Category][]string{core.CategoryMeal: {"ужин"}, core.CategoryOccasion: {"быстрые"}},
		})
	}
	return items
}

func ids(prefix string, from, to int) []core.ItemID {
	var out []core.ItemID
	for i := from; i < to; i++ {
		out = append(out, core.ItemID(fmt.Sprintf("%s%02d", prefix, i)))
	}
	return out
}

func TestNewResolver(t *testing.T) {
	t.Run("valid configuration", func(t *testing.T) {
		r, err := NewResolver(testLemmatizer(t))
		require.NoError(t, err)
		assert.NotNil(t, r)
	})

	t.Run("with nil logger falls back to default", func(t *testing.T) {
		r, err := NewResolver(testLemmatizer(t), WithLogger(nil))
		require.NoError(t, err)
		assert.NotNil(t, r.logger)
	})

	t.Run("nil lemmatizer", func(t *testing.T) {
		_, err := NewResolver(nil)
		assert.Equal(t, ErrLemmatizerRequired, err)
	})
}

func TestResolve(t *testing.T) {
	fx := buildFixture(t, breakfastCorpus(), 1)
	r, err := NewResolver(testLemmatizer(t))
	require.NoError(t, err)

	all := append(ids("b", 0, 10), ids("d", 0, 2)...)

	tests := []struct {
		name         string
		query        string
		minNumber    int
		wantNarrowed []core.ItemID
		wantPrevious []core.ItemID
	}{
		{
			name:         "single tag",
			query:        "завтраки",
			minNumber:    5,
			wantNarrowed: ids("b", 0, 10),
			wantPrevious: ids("b", 0, 10),
		},
		{
			name:         "two tags narrow",
			query:        "вегетарианская завтрак",
			minNumber:    5,
			wantNarrowed: ids("b", 0, 6),
			wantPrevious: ids("b", 0, 6),
		},
		{
			name:         "early stop returns too small set and previous",
			query:        "быстрый завтрак",
			minNumber:    5,
			wantNarrowed: ids("b", 0, 3),
			wantPrevious: ids("b", 0, 10),
		},
		{
			name:         "threshold met exactly continues",
			query:        "быстрый завтрак",
			minNumber:    3,
			wantNarrowed: ids("b", 0, 3),
			wantPrevious: ids("b", 0, 3),
		},
		{
			name:         "zero threshold never stops",
			query:        "ужин завтрак",
			minNumber:    0,
			wantNarrowed: nil,
			wantPrevious: nil,
		},
		{
			name:         "no matching tag",
			query:        "пицца",
			minNumber:    5,
			wantNarrowed: nil,
			wantPrevious: all,
		},
		{
			name:         "empty query",
			query:        "",
			minNumber:    5,
			wantNarrowed: nil,
			wantPrevious: all,
		},
		{
			name:         "stopwords only",
			query:        "на и для",
			minNumber:    1,
			wantNarrowed: nil,
			wantPrevious: all,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			narrowed, previous := r.Resolve(tt.query, fx.graph, fx.vocab, tt.minNumber)
			assert.Equal(t, tt.wantNarrowed, narrowed)
			assert.Equal(t, tt.wantPrevious, previous)
		})
	}
}

func TestResolve_FirstApplicableTagBelowThreshold(t *testing.T) {
	fx := buildFixture(t, breakfastCorpus(), 1)
	r, err := NewResolver(testLemmatizer(t))
	require.NoError(t, err)

	res := r.ResolveWithMonitor("ужин", fx.graph, fx.vocab, 5, nil)
	assert.True(t, res.EarlyStopped())
	assert.True(t, res.Matched())
	assert.Empty(t, res.Applied)
	assert.Equal(t, ids("d", 0, 2), res.Narrowed)
	assert.Len(t, res.Previous, 12)
}

func TestResolve_MultiLemmaTagNeedsAllLemmas(t *testing.T) {
	var items []*core.Item
	for i := range 4 {
		items = append(items, &core.Item{
			ID:   core.ItemID(fmt.Sprintf("q%02d", i)),
			Tags: map[core.Category][]string{core.CategoryOccasion: {"на скорую руку"}},
		})
	}
	items = append(items, &core.Item{ID: "x00"})
	fx := buildFixture(t, items, 1)
	r, err := NewResolver(testLemmatizer(t))
	require.NoError(t, err)

	narrowed, previous := r.Resolve("руку", fx.graph, fx.vocab, 1)
	assert.Nil(t, narrowed)
	assert.Len(t, previous, 5)

	narrowed, _ = r.Resolve("скорую руку", fx.graph, fx.vocab, 1)
	assert.Equal(t, ids("q", 0, 4), narrowed)

	// order and repetition of query words does not matter
	narrowed, _ = r.Resolve("руку руку скорую", fx.graph, fx.vocab, 1)
	assert.Equal(t, ids("q", 0, 4), narrowed)
}

func TestResolve_EmptyCorpus(t *testing.T) {
	fx := buildFixture(t, nil, 1)
	r, err := NewResolver(testLemmatizer(t))
	require.NoError(t, err)

	narrowed, previous := r.Resolve("завтрак", fx.graph, fx.vocab, 5)
	assert.Empty(t, narrowed)
	assert.Empty(t, previous)
}

func TestResolve_MonotonicNarrowing(t *testing.T) {
	fx := buildFixture(t, breakfastCorpus(), 1)
	r, err := NewResolver(testLemmatizer(t))
	require.NoError(t, err)

	rec := &recordingMonitor{}
	res := r.ResolveWithMonitor("вегетарианская быстрые завтраки", fx.graph, fx.vocab, 1, rec)

	require.NotEmpty(t, rec.candidates)
	assert.Equal(t, 12, rec.universe)
	prev := rec.universe
	for _, c := range rec.candidates {
		assert.LessOrEqual(t, c, prev)
		prev = c
	}

	applied := make([]string, len(res.Applied))
	for i, tag := range res.Applied {
		applied[i] = tag.Key.String()
	}
	// diet ranks before meal, meal before occasion
	assert.Equal(t, []string{"(вегетарианская)", "(завтрак)", "(быстрый)"}, applied)
	assert.Equal(t, ids("b", 0, 3), res.Narrowed)
	assert.Equal(t, []string{"вегетарианская", "быстрый", "завтрак"}, res.Lemmas)
	assert.True(t, rec.finished)
	assert.False(t, res.EarlyStopped())
}

func TestResolve_LogMonitor(t *testing.T) {
	fx := buildFixture(t, breakfastCorpus(), 1)
	r, err := NewResolver(testLemmatizer(t))
	require.NoError(t, err)

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	r.ResolveWithMonitor("быстрый завтрак", fx.graph, fx.vocab, 5, NewLogMonitor(logger))

	out := buf.String()
	assert.Contains(t, out, "resolving query")
	assert.Contains(t, out, "tag narrowed candidates")
	assert.Contains(t, out, "early stop")
	assert.Contains(t, out, "earlyStop=true")
}

type recordingMonitor struct {
	universe   int
	candidates []int
	finished   bool
}

func (m *recordingMonitor) Start(_ string, _ []string, universe int) { m.universe = universe }
func (m *recordingMonitor) TagApplied(_ *core.CanonicalTag, n int)   { m.candidates = append(m.candidates, n) }
func (m *recordingMonitor) EarlyStop(_ *core.CanonicalTag, n int, _ int) {
	m.candidates = append(m.candidates, n)
}
func (m *recordingMonitor) Finish(_ *Result) { m.finished = true }
