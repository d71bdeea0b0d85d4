package graph

import (
	"fmt"
	"sync"
	"testing"

	"github.com/poiesic/tagraph/canon"
	"github.com/poiesic/tagraph/core"
	"github.com/poiesic/tagraph/lemma"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	keyBreakfast = core.NewLemmaKey([]string{"завтрак"})
	keyDinner    = core.NewLemmaKey([]string{"ужин"})
	keyRice      = core.NewLemmaKey([]string{"рис"})
)

func testVocabulary(t *testing.T, items []*core.Item, minCount int) *canon.Vocabulary {
	t.Helper()
	l, err := lemma.New(lemma.DictionaryMorphology{"завтраки": "завтрак"})
	require.NoError(t, err)
	v, err := canon.BuildVocabulary(items, l, minCount, nil)
	require.NoError(t, err)
	return v
}

func TestNodeSet(t *testing.T) {
	tests := []struct {
		name string
		a, b NodeSet
		want NodeSet
	}{
		{name: "both empty", a: NodeSet{}, b: NodeSet{}, want: NodeSet{}},
		{name: "one empty", a: NodeSet{1, 2}, b: nil, want: NodeSet{}},
		{name: "disjoint", a: NodeSet{1, 3}, b: NodeSet{2, 4}, want: NodeSet{}},
		{name: "overlap", a: NodeSet{0, 1, 2, 5}, b: NodeSet{1, 2, 3, 5}, want: NodeSet{1, 2, 5}},
		{name: "subset", a: NodeSet{2}, b: NodeSet{0, 1, 2, 3}, want: NodeSet{2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Intersect(tt.b))
			assert.Equal(t, tt.want, tt.b.Intersect(tt.a))
		})
	}

	assert.True(t, NodeSet{1, 4, 9}.Contains(4))
	assert.False(t, NodeSet{1, 4, 9}.Contains(5))
}

func TestBuilder_IdempotentEdges(t *testing.T) {
	b := NewBuilder()
	b.AddItem("r1", "Сырники")
	b.AddTag(keyBreakfast)

	assert.True(t, b.Link("r1", keyBreakfast))
	assert.True(t, b.Link("r1", keyBreakfast))

	g := b.Graph()
	assert.Equal(t, 1, g.NumEdges())
	set, ok := g.Neighbors(keyBreakfast)
	require.True(t, ok)
	assert.Equal(t, NodeSet{0}, set)
}

func TestBuilder_LinkUnknownIsNoop(t *testing.T) {
	b := NewBuilder()
	b.AddItem("r1", "Сырники")
	b.AddTag(keyBreakfast)

	assert.False(t, b.Link("r1", keyDinner))
	assert.False(t, b.Link("missing", keyBreakfast))

	g := b.Graph()
	assert.Zero(t, g.NumEdges())
	assert.False(t, g.HasTag(keyDinner))
	assert.Equal(t, 1, g.NumTags())
}

func TestBuilder_AddIsIdempotent(t *testing.T) {
	b := NewBuilder()
	assert.Equal(t, 0, b.AddItem("r1", "first"))
	assert.Equal(t, 1, b.AddItem("r2", "second"))
	assert.Equal(t, 0, b.AddItem("r1", "renamed"))
	b.AddTag(keyRice)
	b.AddTag(keyRice)

	g := b.Graph()
	assert.Equal(t, 2, g.NumItems())
	assert.Equal(t, 1, g.NumTags())
	assert.Equal(t, "first", g.Item(0).Name)
}

func TestBuilder_FrozenGraphIsIsolated(t *testing.T) {
	b := NewBuilder()
	b.AddItem("r1", "")
	b.AddTag(keyRice)
	b.Link("r1", keyRice)
	g := b.Graph()

	b.AddItem("r2", "")
	b.Link("r2", keyRice)

	assert.Equal(t, 1, g.NumItems())
	assert.Equal(t, 1, g.NumEdges())
	assert.Equal(t, 2, b.Graph().NumEdges())
}

func TestBuilder_ConcurrentLink(t *testing.T) {
	b := NewBuilder()
	for i := range 100 {
		b.AddItem(core.ItemID(fmt.Sprint(i)), "")
	}
	b.AddTag(keyRice)
	b.AddTag(keyDinner)

	var wg sync.WaitGroup
	for i := range 100 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id := core.ItemID(fmt.Sprint(i))
			b.Link(id, keyRice)
			b.Link(id, keyRice)
			if i%2 == 0 {
				b.Link(id, keyDinner)
			}
		}()
	}
	wg.Wait()

	g := b.Graph()
	assert.Equal(t, 150, g.NumEdges())
	rice, _ := g.Neighbors(keyRice)
	assert.Equal(t, g.Universe(), rice)
}

func TestBuild(t *testing.T) {
	items := []*core.Item{
		{
			ID:          "r1",
			Name:        "Рисовая каша",
			Tags:        map[core.Category][]string{core.CategoryMeal: {"завтрак"}},
			Ingredients: []core.Ingredient{{Name: "рис", Amount: "100 г"}},
		},
		{
			ID:   "r2",
			Name: "Омлет",
			Tags: map[core.Category][]string{core.CategoryMeal: {"завтраки", "редкий"}},
		},
		{
			ID:          "r3",
			Name:        "Плов",
			Tags:        map[core.Category][]string{core.CategoryMeal: {"ужин"}, core.CategoryMainIngredient: {"рис"}},
			Ingredients: []core.Ingredient{{Name: "рис", Amount: "300 г"}},
		},
		{ID: "r4", Name: "Без тегов"},
	}

	vocab := testVocabulary(t, items, 2)
	g := Build(items, vocab, nil)

	assert.Equal(t, 4, g.NumItems())
	assert.Equal(t, vocab.Len(), g.NumTags())
	// ужин and редкий are below the floor of 2
	assert.False(t, g.HasTag(keyDinner))

	assert.Equal(t, []core.LemmaKey{keyRice, keyBreakfast}, g.ItemTags("r1"))
	assert.Equal(t, []core.LemmaKey{keyBreakfast}, g.ItemTags("r2"))
	assert.Equal(t, []core.LemmaKey{keyRice}, g.ItemTags("r3"))
	assert.Empty(t, g.ItemTags("r4"))
	assert.Nil(t, g.ItemTags("missing"))

	// r3 lists рис twice (main ingredient and ingredient) but gets one edge
	assert.Equal(t, 4, g.NumEdges())
	assert.True(t, g.HasEdge("r2", keyBreakfast))
	assert.False(t, g.HasEdge("r4", keyBreakfast))

	breakfast, ok := g.Neighbors(keyBreakfast)
	require.True(t, ok)
	assert.Equal(t, []core.ItemID{"r1", "r2"}, g.ItemIDs(breakfast))
	assert.Nil(t, g.ItemIDs(nil))

	node, ok := g.Lookup("r3")
	require.True(t, ok)
	assert.Equal(t, "Плов", g.Item(node).Name)
	assert.Equal(t, NodeSet{0, 1, 2, 3}, g.Universe())
}

func TestBuild_Empty(t *testing.T) {
	g := Build(nil, testVocabulary(t, nil, 1), nil)
	assert.Zero(t, g.NumItems())
	assert.Zero(t, g.NumTags())
	assert.Empty(t, g.Universe())
}

func TestBuild_SkipsNilItems(t *testing.T) {
	items := []*core.Item{
		nil,
		{ID: "r1", Name: "Омлет", Tags: map[core.Category][]string{core.CategoryMeal: {"завтрак"}}},
		nil,
	}

	g := Build(items, testVocabulary(t, items, 1), nil)
	assert.Equal(t, 1, g.NumItems())
	assert.Equal(t, 1, g.NumEdges())
	assert.True(t, g.HasEdge("r1", keyBreakfast))

	linked, unresolved := NewBuilder().LinkItem(nil, testVocabulary(t, items, 1))
	assert.Zero(t, linked)
	assert.Zero(t, unresolved)
}
