package textproc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplit(t *testing.T) {
	assert.Equal(t, []string{"Hello", ",", "world", "!"}, Split("Hello, world!"))
	assert.Equal(t, []string{"naïve", "café"}, Split("  naïve\tcafé "))
	assert.Empty(t, Split("   "))
}

func TestSplitContractions(t *testing.T) {
	assert.Equal(t, []string{"I", "do", "n't", "know"}, Split("I don't know"))
	assert.Equal(t, []string{"ca", "n\u2019t"}, Split("can\u2019t"))
	assert.Equal(t, []string{"they", "'re", "here"}, Split("they're here"))
	assert.Equal(t, []string{"o", "'", "clock"}, Split("o'clock"))
	assert.Equal(t, []string{"'", "tis"}, Split("'tis"))

	keep := NewTokenizer(Options{LowerCase: true})
	assert.Equal(t, []string{"we", "'ll", "see"}, keep.Tokens("We'll see"))
	assert.Equal(t, []string{"wo"}, NewTokenizer(Options{RemovePunct: true}).Tokens("won't"))
}

func TestTokensWithoutFiltering(t *testing.T) {
	tk := NewTokenizer(Options{})
	c := tk.Tokenize([]string{"a b", "a b c"})
	assert.Equal(t, []float64{2, 3}, c.TokenCounts())
	assert.Equal(t, 3, c.VocabSize())
}

func TestTokensDefaultOptions(t *testing.T) {
	tk := NewTokenizer(DefaultOptions())
	got := tk.Tokens("The Cat sat on THE mat, again!")
	assert.Equal(t, []string{"cat", "sat", "mat"}, got)

	keepCase := NewTokenizer(Options{RemoveStop: true, RemovePunct: true})
	assert.Equal(t, []string{"Cat", "sat", "mat"}, keepCase.Tokens("The Cat sat on THE mat, again!"))
}

func TestCharCountsAreRunes(t *testing.T) {
	c := NewTokenizer(Options{}).Tokenize([]string{"héllo", "ab"})
	assert.Equal(t, []float64{5, 2}, c.CharCounts())
}

func TestNgrams(t *testing.T) {
	docs := [][]string{{"a", "b", "c"}, {"a", "b"}}
	uni := Ngrams(docs, 1)
	assert.Equal(t, 2, uni["a"])
	assert.Equal(t, 1, uni["c"])

	bi := Ngrams(docs, 2)
	assert.Equal(t, map[string]int{"a b": 2, "b c": 1}, bi)

	tri := Ngrams(docs, 3)
	assert.Equal(t, map[string]int{"a b c": 1}, tri)

	top := Top(uni, 2)
	require.Len(t, top, 2)
	assert.Equal(t, Gram{Text: "a", Count: 2}, top[0])
	assert.Equal(t, Gram{Text: "b", Count: 2}, top[1])
}

func TestDocFrequencies(t *testing.T) {
	assert.Equal(t, []float64{2, 1}, DocFrequencies([]string{"x", "y", "x"}))
}

func TestIsAlnum(t *testing.T) {
	assert.True(t, IsAlnum("abc123"))
	assert.False(t, IsAlnum("don't"))
	assert.False(t, IsAlnum(""))
}
