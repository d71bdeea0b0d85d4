package lemma

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("valid configuration", func(t *testing.T) {
		l, err := New(DictionaryMorphology{})
		require.NoError(t, err)
		assert.NotNil(t, l)
	})

	t.Run("nil morphology", func(t *testing.T) {
		_, err := New(nil)
		assert.Equal(t, ErrMorphologyRequired, err)
	})

	t.Run("unsupported language", func(t *testing.T) {
		_, err := ForLanguage("klingon")
		assert.ErrorIs(t, err, ErrUnsupportedLanguage)
	})

	t.Run("russian pipeline", func(t *testing.T) {
		l := NewRussian()
		require.NotNil(t, l)
		assert.True(t, l.IsStopword("без"))
		assert.False(t, l.IsStopword("завтрак"))
	})
}

func TestTokenize(t *testing.T) {
	l, err := New(DictionaryMorphology{}, WithStopwords([]string{"из", "с"}))
	require.NoError(t, err)

	tests := []struct {
		name string
		text string
		want []string
	}{
		{name: "empty", text: "", want: []string{}},
		{name: "whitespace only", text: "  \t\n ", want: []string{}},
		{name: "lowercases", text: "Завтрак", want: []string{"завтрак"}},
		{name: "punctuation splits words", text: "суп-пюре", want: []string{"суп", "пюре"}},
		{name: "latin and digits removed", text: "Борщ 2024 recipe", want: []string{"борщ"}},
		{name: "stopwords removed", text: "суп из тыквы с сыром", want: []string{"суп", "тыквы", "сыром"}},
		{name: "parentheses and quotes", text: "«пирог» (\"яблочный\")", want: []string{"«пирог»", "яблочный"}},
		{name: "em dash", text: "обед—ужин", want: []string{"обед", "ужин"}},
		{name: "only noise", text: "!!! 123 abc", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, l.Tokenize(tt.text))
		})
	}
}

func TestTokenize_NFC(t *testing.T) {
	l, err := New(DictionaryMorphology{})
	require.NoError(t, err)

	decomposed := "зави\u0306"
	composed := "зав\u0439"
	require.NotEqual(t, decomposed, composed)

	assert.Equal(t, []string{composed}, l.Tokenize(decomposed))
}

func TestLemmatize(t *testing.T) {
	morph := DictionaryMorphology{
		"завтраки": "завтрак",
		"быстрые":  "быстрый",
		"руку":     "рука",
	}
	l, err := New(morph, WithStopwords([]string{"на"}))
	require.NoError(t, err)

	tests := []struct {
		name string
		text string
		want []string
	}{
		{name: "empty", text: "", want: []string{}},
		{name: "mapped tokens", text: "Быстрые завтраки", want: []string{"быстрый", "завтрак"}},
		{name: "unknown tokens pass through", text: "борщ", want: []string{"борщ"}},
		{name: "order preserved", text: "на скорую руку", want: []string{"скорую", "рука"}},
		{name: "duplicates preserved", text: "завтраки завтрак", want: []string{"завтрак", "завтрак"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, l.Lemmatize(tt.text))
		})
	}
}

func TestLemmatize_Deterministic(t *testing.T) {
	l := NewRussian()

	first := l.Lemmatize("Быстрые завтраки на скорую руку")
	for range 10 {
		assert.Equal(t, first, l.Lemmatize("Быстрые завтраки на скорую руку"))
	}
}

func TestSnowballMorphology(t *testing.T) {
	morph, err := NewSnowballMorphology("russian")
	require.NoError(t, err)
	assert.Equal(t, "russian", morph.Language())

	// Inflected forms collapse to one normal form.
	assert.Equal(t, morph.NormalForm("завтрак"), morph.NormalForm("завтраки"))
	assert.NotEmpty(t, morph.NormalForm("суп"))
}

func TestMorphologyFunc(t *testing.T) {
	var calls int
	l, err := New(MorphologyFunc(func(token string) string {
		calls++
		return "x" + token
	}))
	require.NoError(t, err)

	assert.Equal(t, []string{"xа", "xб"}, l.Lemmatize("а б"))
	assert.Equal(t, 2, calls)
}

func TestStopwords(t *testing.T) {
	ru := RussianStopwords()
	assert.Contains(t, ru, "и")
	assert.Contains(t, ru, "между")

	// returned slice is a copy
	ru[0] = "мутация"
	assert.Equal(t, "и", RussianStopwords()[0])

	assert.Nil(t, Stopwords("english"))
}
