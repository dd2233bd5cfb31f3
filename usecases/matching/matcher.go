package matching

import (
	"sort"

	"github.com/hashicorp/go-set/v2"

	"github.com/clearlist/screener-backend/models"
	"github.com/clearlist/screener-backend/pure_utils"
	"github.com/clearlist/screener-backend/usecases/indexes"
)

// Matcher runs the layered screening pipeline against one snapshot. It is
// stateless apart from its configuration and performs no mutation, so a
// single instance serves any number of concurrent queries.
type Matcher struct {
	config            models.MatchingConfig
	commonNames       *set.Set[string]
	secondaryPrograms *set.Set[string]
}

func NewMatcher(config models.MatchingConfig) *Matcher {
	commonNames := set.New[string](len(config.CommonNames))
	for _, name := range config.CommonNames {
		commonNames.Insert(pure_utils.NormalizeName(name))
	}
	return &Matcher{
		config:            config,
		commonNames:       commonNames,
		secondaryPrograms: set.From(config.SecondarySanctionsPrograms),
	}
}

// candidate accumulates the best layer and name score per entity while the
// retrieval layers run.
type candidate struct {
	layer       int
	nameScore   float64
	matchedName string
	docMatched  bool
}

// Match retrieves, scores and classifies every candidate for a validated
// query. The caller provides the snapshot so one request (or one whole
// batch) sees a single consistent view.
func (m *Matcher) Match(query models.ScreeningQuery, snapshot *indexes.Snapshot) ([]models.ScreeningMatch, int) {
	normName := pure_utils.NormalizeName(query.Name)
	normDoc := pure_utils.NormalizeDocument(query.DocumentNumber)

	candidates := make(map[models.EntityId]*candidate)

	// Layer 1: exact document match.
	if normDoc != "" {
		for _, id := range snapshot.EntitiesByDocument(normDoc) {
			candidates[id] = &candidate{
				layer:      models.MatchLayerDocumentExact,
				docMatched: true,
			}
		}
	}

	// Layer 2: exact normalized name or alias match.
	for _, id := range snapshot.EntitiesByName(normName) {
		if existing, ok := candidates[id]; ok {
			existing.nameScore = 100
		} else {
			candidates[id] = &candidate{
				layer:     models.MatchLayerNameExact,
				nameScore: 100,
			}
		}
	}

	// Layers 3 and 4: fuzzy retrieval over the trigram index, scored and
	// thresholded. Entities already matched exactly keep their layer.
	for _, id := range snapshot.FuzzyCandidates(normName).Slice() {
		entity, ok := snapshot.Entity(id)
		if !ok {
			continue
		}

		score, matchedName := bestNameScore(query.Name, entity)

		if existing, ok := candidates[id]; ok {
			if score > existing.nameScore {
				existing.nameScore = score
				existing.matchedName = matchedName
			}
			continue
		}

		switch {
		case score >= m.config.FuzzyThreshold:
			candidates[id] = &candidate{
				layer:       models.MatchLayerFuzzy,
				nameScore:   score,
				matchedName: matchedName,
			}
		case score >= m.config.WeakFloor:
			candidates[id] = &candidate{
				layer:       models.MatchLayerFuzzyWeak,
				nameScore:   score,
				matchedName: matchedName,
			}
		}
	}

	// Document-only candidates still need a name sub-score; the name
	// dimension always participates.
	for id, cand := range candidates {
		if cand.matchedName == "" {
			entity, ok := snapshot.Entity(id)
			if !ok {
				continue
			}
			if cand.nameScore >= 100 {
				cand.matchedName = bestExactAliasName(normName, entity)
			} else {
				cand.nameScore, cand.matchedName = bestNameScore(query.Name, entity)
			}
		}
	}

	isCommon := m.commonNames.Contains(normName)

	matches := make([]models.ScreeningMatch, 0, len(candidates))
	autoCleared := 0
	for id, cand := range candidates {
		entity, ok := snapshot.Entity(id)
		if !ok {
			continue
		}

		match := m.classify(query, entity, cand, isCommon, normDoc != "")
		if match.Recommendation == models.RecommendationAutoClear {
			autoCleared++
			continue
		}
		matches = append(matches, match)
	}

	// Deterministic output: confidence descending, then strongest layer,
	// then stable id order.
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Confidence.Overall != matches[j].Confidence.Overall {
			return matches[i].Confidence.Overall > matches[j].Confidence.Overall
		}
		if matches[i].MatchLayer != matches[j].MatchLayer {
			return matches[i].MatchLayer < matches[j].MatchLayer
		}
		return matches[i].EntityId.ExternalId < matches[j].EntityId.ExternalId
	})

	if m.config.MaxMatches > 0 && len(matches) > m.config.MaxMatches {
		matches = matches[:m.config.MaxMatches]
	}

	return matches, autoCleared
}

// bestNameScore scores the query name against the primary name and every
// alias, keeping the best. Similarity is the better of a bag-of-words
// comparison (robust to token order and honorifics) and a whole-string
// ratio (robust to token splits).
func bestNameScore(queryName string, entity models.Entity) (float64, string) {
	best := 0.0
	bestName := entity.PrimaryName
	for _, alias := range entity.AllNames() {
		score := pure_utils.BagOfWordsSimilarity(queryName, alias.Name)
		if direct := pure_utils.DirectSimilarity(queryName, alias.Name); direct > score {
			score = direct
		}
		if score > best {
			best = score
			bestName = alias.Name
		}
	}
	return best, bestName
}

func bestExactAliasName(normName string, entity models.Entity) string {
	for _, alias := range entity.AllNames() {
		if alias.NormalizedName == normName {
			return alias.Name
		}
	}
	return entity.PrimaryName
}

func (m *Matcher) classify(
	query models.ScreeningQuery,
	entity models.Entity,
	cand *candidate,
	isCommonName bool,
	queryHasDocument bool,
) models.ScreeningMatch {
	confidence := m.score(query, entity, cand, queryHasDocument)

	var flags []string
	forceEscalation := false

	for _, program := range entity.Programs {
		if m.secondaryPrograms.Contains(program) {
			flags = append(flags, models.FlagSecondarySanctionsRisk)
			forceEscalation = true
			break
		}
	}
	if cand.docMatched {
		flags = append(flags, models.FlagDocumentExactMatch)
	}
	if queryHasDocument && !cand.docMatched {
		flags = append(flags, models.FlagNoDocumentMatch)
	}
	if entity.Kind == models.EntityKindOrganization {
		flags = append(flags, models.FlagEntityMatch)
	}
	if isCommonName {
		flags = append(flags, models.FlagCommonName)
	}

	recommendation := m.recommend(confidence.Overall, cand.layer, forceEscalation)

	// Overly common names do not auto-escalate on name evidence alone.
	if isCommonName && !cand.docMatched && !forceEscalation &&
		recommendation == models.RecommendationAutoEscalate {
		recommendation = models.RecommendationManualReview
		flags = append(flags, models.FlagCommonNameNeedsBackup)
	}

	return models.ScreeningMatch{
		EntityId:       entity.Id,
		Entity:         entity,
		MatchedName:    cand.matchedName,
		MatchLayer:     cand.layer,
		Confidence:     confidence,
		Flags:          flags,
		Recommendation: recommendation,
	}
}

func (m *Matcher) recommend(overall float64, layer int, forceEscalation bool) models.Recommendation {
	switch {
	case forceEscalation:
		return models.RecommendationAutoEscalate
	case layer <= models.MatchLayerNameExact && overall >= m.config.AutoEscalateThreshold:
		return models.RecommendationAutoEscalate
	case overall >= m.config.ManualReviewThreshold:
		return models.RecommendationManualReview
	case overall >= m.config.ClearThreshold:
		return models.RecommendationLowConfidenceReview
	default:
		return models.RecommendationAutoClear
	}
}
