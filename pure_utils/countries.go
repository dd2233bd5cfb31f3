package pure_utils

import (
	"strings"
	"sync"
	"time"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
	"github.com/biter777/countries"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

const (
	countryFuzzyThreshold = 0.85
	countryCacheSize      = 1000
	countryCacheTTL       = time.Hour
)

var (
	countryCache     *expirable.LRU[string, string]
	countryCacheOnce sync.Once

	countryNames     []countryNameEntry
	countryNamesOnce sync.Once
)

type countryNameEntry struct {
	lowerName string
	country   countries.CountryCode
}

func getCountryCache() *expirable.LRU[string, string] {
	countryCacheOnce.Do(func() {
		countryCache = expirable.NewLRU[string, string](countryCacheSize, nil, countryCacheTTL)
	})
	return countryCache
}

func getCountryNames() []countryNameEntry {
	countryNamesOnce.Do(func() {
		all := countries.All()
		countryNames = make([]countryNameEntry, 0, len(all))
		for _, c := range all {
			if c == countries.Unknown {
				continue
			}
			countryNames = append(countryNames, countryNameEntry{
				lowerName: strings.ToLower(c.Info().Name),
				country:   c,
			})
		}
	})
	return countryNames
}

// NormalizeCountry converts a country or nationality identifier (full name,
// Alpha-2 or Alpha-3 code, demonym-ish spellings, typos) to its ISO 3166-1
// Alpha-2 code. Watchlist feeds spell countries every way imaginable
// ("IRAN", "Iran, Islamic Republic of", "IRN"), so exact resolution is
// backed by a fuzzy fallback with results cached.
//
// Returns the uppercased input unchanged when nothing resolves, so that two
// occurrences of the same unknown spelling still compare equal.
func NormalizeCountry(input string) string {
	input = strings.TrimSpace(input)
	if input == "" {
		return ""
	}

	if c := countries.ByName(input); c != countries.Unknown {
		return c.Alpha2()
	}

	cache := getCountryCache()
	if cached, ok := cache.Get(input); ok {
		return cached
	}

	result := fuzzyMatchCountry(input)
	if result == "" {
		result = strings.ToUpper(input)
	}

	cache.Add(input, result)

	return result
}

// fuzzyMatchCountry scans all country names with Jaro-Winkler, which behaves
// well on short strings. Returns "" below the acceptance threshold.
func fuzzyMatchCountry(input string) string {
	inputLower := strings.ToLower(input)
	names := getCountryNames()

	metric := metrics.NewJaroWinkler()

	bestMatch := countries.Unknown
	highestScore := 0.0

	for _, entry := range names {
		score := strutil.Similarity(inputLower, entry.lowerName, metric)
		if score > highestScore {
			highestScore = score
			bestMatch = entry.country
		}
	}

	if highestScore >= countryFuzzyThreshold && bestMatch != countries.Unknown {
		return bestMatch.Alpha2()
	}

	return ""
}
