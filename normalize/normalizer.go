// Package normalize turns extracted text into corpus sentences.
package normalize

import (
	"bufio"
	_ "embed"
	"strings"
	"unicode"

	"github.com/forPelevin/gomoji"
	"github.com/fwojciec/papermill"
)

// Ensure Normalizer implements papermill.Normalizer at compile time.
var _ papermill.Normalizer = (*Normalizer)(nil)

//go:embed stopwords.txt
var stopwordList string

// Stopwords returns the fixed English stopword set.
func Stopwords() map[string]bool {
	set := make(map[string]bool)
	sc := bufio.NewScanner(strings.NewReader(stopwordList))
	for sc.Scan() {
		if w := strings.TrimSpace(sc.Text()); w != "" {
			set[w] = true
		}
	}
	return set
}

// emojiRanges covers the pictographic blocks excluded from the corpus.
var emojiRanges = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x2700, Hi: 0x27BF, Stride: 1},
	},
	R32: []unicode.Range32{
		{Lo: 0x1F300, Hi: 0x1F5FF, Stride: 1},
		{Lo: 0x1F600, Hi: 0x1F64F, Stride: 1},
		{Lo: 0x1F680, Hi: 0x1F6FF, Stride: 1},
		{Lo: 0x1F700, Hi: 0x1F77F, Stride: 1},
		{Lo: 0x1F900, Hi: 0x1F9FF, Stride: 1},
	},
}

// IsEmoji reports whether token contains an emoji.
func IsEmoji(token string) bool {
	for _, r := range token {
		if unicode.Is(emojiRanges, r) {
			return true
		}
	}
	return gomoji.ContainsEmoji(token)
}

// Normalizer converts text to sentences of lowercase alphabetic lemmas.
type Normalizer struct {
	stopwords  map[string]bool
	lemmatizer papermill.Lemmatizer
}

// NewNormalizer returns a Normalizer using the English stopword list. A nil
// lemmatizer keeps tokens unchanged.
func NewNormalizer(lemmatizer papermill.Lemmatizer) *Normalizer {
	return &Normalizer{
		stopwords:  Stopwords(),
		lemmatizer: lemmatizer,
	}
}

// Normalize implements papermill.Normalizer.
func (n *Normalizer) Normalize(text string) []papermill.Sentence {
	var out []papermill.Sentence
	for _, line := range strings.Split(text, "\n") {
		if s := n.sentence(line); len(s) > 0 {
			out = append(out, s)
		}
	}
	return out
}

// NormalizePages normalizes each page in order.
func (n *Normalizer) NormalizePages(pages []string) []papermill.Sentence {
	var out []papermill.Sentence
	for _, p := range pages {
		out = append(out, n.Normalize(p)...)
	}
	return out
}

func (n *Normalizer) sentence(line string) papermill.Sentence {
	var s papermill.Sentence
	for _, field := range strings.Fields(line) {
		token, ok := n.token(field)
		if !ok {
			continue
		}
		if n.lemmatizer != nil {
			token = n.lemmatizer.Lemma(token)
		}
		if token == "" || n.stopwords[token] {
			continue
		}
		s = append(s, token)
	}
	return s
}

// token applies the filters to a single whitespace-delimited field.
func (n *Normalizer) token(field string) (string, bool) {
	field = strings.TrimFunc(field, func(r rune) bool {
		return unicode.IsPunct(r) || unicode.IsSymbol(r)
	})
	// Contractions keep their stem: "don't" is "don", "world's" is "world".
	if i := strings.IndexAny(field, "'’"); i >= 0 {
		field = field[:i]
	}
	if field == "" || !isAlpha(field) {
		return "", false
	}
	token := strings.ToLower(field)
	if n.stopwords[token] || IsEmoji(token) || isDigits(token) {
		return "", false
	}
	return token, true
}

func isAlpha(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

func isDigits(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return s != ""
}
