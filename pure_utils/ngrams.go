package pure_utils

import "strings"

// NameTrigrams returns the set of character trigrams over each token of a
// normalized name, with tokens shorter than three runes emitted whole.
// Trigrams are what the fuzzy candidate index is keyed on: retrieval by
// shared trigrams bounds candidate scoring to entities that overlap the
// query at all, instead of scanning the whole entity set.
func NameTrigrams(normalized string) []string {
	seen := make(map[string]struct{})
	var grams []string

	add := func(g string) {
		if _, ok := seen[g]; !ok {
			seen[g] = struct{}{}
			grams = append(grams, g)
		}
	}

	for _, token := range strings.Fields(normalized) {
		runes := []rune(token)
		if len(runes) < 3 {
			add(token)
			continue
		}
		for i := 0; i+3 <= len(runes); i++ {
			add(string(runes[i : i+3]))
		}
	}
	return grams
}
