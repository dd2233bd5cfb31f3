package pure_utils

import (
	"strings"
	"unicode"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var diacriticsRemover = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// cleanseString lowercases the input, strips diacritics and replaces
// anything that is not a letter, a digit or a hyphen by a space.
// Control characters are dropped outright so adversarial input cannot
// smuggle anything past comparison.
func cleanseString(s string) string {
	out, _, err := transform.String(diacriticsRemover, s)
	if err != nil {
		out = s
	}

	var b strings.Builder
	b.Grow(len(out))
	for _, r := range strings.ToLower(out) {
		switch {
		case unicode.IsControl(r):
			// drop
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-':
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}
	return b.String()
}

// NormalizeName produces the canonical comparable form of a person or
// organization name: lowercase, diacritics stripped, punctuation removed
// (internal hyphens kept), whitespace collapsed. Token order is preserved;
// token-set comparison is the matcher's job. Pure and total: any input,
// including the empty string, yields a defined output.
func NormalizeName(s string) string {
	return strings.Join(strings.Fields(cleanseString(s)), " ")
}

// NormalizeDocument uppercases a document number and strips every
// non-alphanumeric character.
func NormalizeDocument(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToUpper(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func levenshteinMetric() *metrics.Levenshtein {
	lev := metrics.NewLevenshtein()
	lev.InsertCost = 1
	lev.ReplaceCost = 2
	lev.DeleteCost = 1
	return lev
}

// similarityRatio is a Levenshtein-based similarity between two raw strings,
// in [0, 100].
func similarityRatio(s1, s2 string) float64 {
	return strutil.Similarity(s1, s2, levenshteinMetric()) * 100
}

// BagOfWordsSimilarity compares two names as bags of tokens: every token of
// the shorter side is matched with its best counterpart on the other side and
// the per-token ratios are averaged, weighted by token length. Word order and
// extra tokens on the longer side do not degrade the score, which makes it
// robust to honorifics and swapped name parts. Both inputs are cleansed
// before comparison. Result in [0, 100].
func BagOfWordsSimilarity(s1, s2 string) float64 {
	t1 := strings.Fields(cleanseString(s1))
	t2 := strings.Fields(cleanseString(s2))

	if len(t1) == 0 && len(t2) == 0 {
		return 100
	}
	if len(t1) == 0 || len(t2) == 0 {
		return 0
	}
	if len(t1) > len(t2) {
		t1, t2 = t2, t1
	}

	lev := levenshteinMetric()

	var weightedSum, weightTotal float64
	for _, tok := range t1 {
		best := 0.0
		for _, other := range t2 {
			if s := strutil.Similarity(tok, other, lev); s > best {
				best = s
			}
		}
		w := float64(len(tok))
		weightedSum += best * w
		weightTotal += w
	}
	return weightedSum / weightTotal * 100
}

// DirectSimilarity is the whole-string Levenshtein ratio over cleansed,
// whitespace-collapsed inputs, in [0, 100].
func DirectSimilarity(s1, s2 string) float64 {
	return similarityRatio(NormalizeName(s1), NormalizeName(s2))
}
