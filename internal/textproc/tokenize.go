// Package textproc turns free-text documents into tokens and n-gram counts.
package textproc

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Options control token normalization.
type Options struct {
	LowerCase   bool
	RemoveStop  bool
	RemovePunct bool
}

// DefaultOptions lowercases and drops stop words and punctuation.
func DefaultOptions() Options {
	return Options{LowerCase: true, RemoveStop: true, RemovePunct: true}
}

// Tokenizer splits documents into word and punctuation tokens.
type Tokenizer struct {
	opt   Options
	lower cases.Caser
	stop  map[string]struct{}
}

// NewTokenizer builds a tokenizer for opt.
func NewTokenizer(opt Options) *Tokenizer {
	t := &Tokenizer{opt: opt, lower: cases.Lower(language.English)}
	if opt.RemoveStop {
		t.stop = StopWords()
	}
	return t
}

// clitics are the suffixes split off after an apostrophe, as in "they're".
var clitics = map[string]bool{"s": true, "m": true, "d": true, "ll": true, "re": true, "ve": true}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r)
}

func isApostrophe(r rune) bool { return r == '\'' || r == '’' }

// Split breaks s into runs of letters and digits. Every other non-space
// rune becomes a token of its own, except that English contractions split
// Treebank style: "don't" gives "do" and "n't", "we'll" gives "we" and "'ll".
func Split(s string) []string {
	rs := []rune(s)
	var out []string
	var cur []rune
	flush := func() {
		if len(cur) > 0 {
			out = append(out, string(cur))
			cur = cur[:0]
		}
	}
	for i := 0; i < len(rs); i++ {
		r := rs[i]
		switch {
		case isWordRune(r):
			cur = append(cur, r)
		case unicode.IsSpace(r):
			flush()
		case isApostrophe(r) && len(cur) > 0:
			j := i + 1
			for j < len(rs) && isWordRune(rs[j]) {
				j++
			}
			suffix := strings.ToLower(string(rs[i+1 : j]))
			switch {
			case suffix == "t" && len(cur) > 1 && unicode.ToLower(cur[len(cur)-1]) == 'n':
				n := cur[len(cur)-1]
				cur = cur[:len(cur)-1]
				flush()
				out = append(out, string(n)+string(rs[i:j]))
				i = j - 1
			case clitics[suffix]:
				flush()
				out = append(out, string(rs[i:j]))
				i = j - 1
			default:
				flush()
				out = append(out, string(r))
			}
		default:
			flush()
			out = append(out, string(r))
		}
	}
	flush()
	return out
}

// IsAlnum reports whether tok consists only of letters and digits.
func IsAlnum(tok string) bool {
	if tok == "" {
		return false
	}
	for _, r := range tok {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// Tokens splits doc and applies case folding, stop-word and punctuation
// removal in that order. Stop words match case-insensitively.
func (t *Tokenizer) Tokens(doc string) []string {
	raw := Split(doc)
	out := raw[:0]
	for _, tok := range raw {
		low := t.lower.String(tok)
		if t.opt.LowerCase {
			tok = low
		}
		if t.stop != nil {
			if _, ok := t.stop[low]; ok {
				continue
			}
		}
		if t.opt.RemovePunct && !IsAlnum(tok) {
			continue
		}
		out = append(out, tok)
	}
	return out
}

// Corpus is a tokenized set of documents.
type Corpus struct {
	Docs   []string
	Tokens [][]string
}

// Tokenize tokenizes every document.
func (t *Tokenizer) Tokenize(docs []string) *Corpus {
	c := &Corpus{Docs: docs, Tokens: make([][]string, len(docs))}
	for i, d := range docs {
		c.Tokens[i] = t.Tokens(d)
	}
	return c
}

// TokenCounts returns the number of tokens per document.
func (c *Corpus) TokenCounts() []float64 {
	out := make([]float64, len(c.Tokens))
	for i, toks := range c.Tokens {
		out[i] = float64(len(toks))
	}
	return out
}

// CharCounts returns the number of characters (runes) per document.
func (c *Corpus) CharCounts() []float64 {
	out := make([]float64, len(c.Docs))
	for i, d := range c.Docs {
		out[i] = float64(len([]rune(d)))
	}
	return out
}

// VocabSize is the number of distinct tokens across the corpus.
func (c *Corpus) VocabSize() int {
	seen := map[string]struct{}{}
	for _, toks := range c.Tokens {
		for _, tok := range toks {
			seen[tok] = struct{}{}
		}
	}
	return len(seen)
}

// DocFrequencies returns how many times each distinct document occurs.
func DocFrequencies(docs []string) []float64 {
	counts := map[string]int{}
	var order []string
	for _, d := range docs {
		if _, ok := counts[d]; !ok {
			order = append(order, d)
		}
		counts[d]++
	}
	out := make([]float64, len(order))
	for i, d := range order {
		out[i] = float64(counts[d])
	}
	return out
}
