package matching

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clearlist/screener-backend/models"
	"github.com/clearlist/screener-backend/usecases/indexes"
)

func buildSnapshot(t *testing.T, records ...models.RawRecord) *indexes.Snapshot {
	t.Helper()

	builder := indexes.NewBuilder(nil, models.ListSourceOfac, nil)
	for _, record := range records {
		require.NoError(t, builder.Add(record))
	}
	snapshot, _, err := builder.Finalize([]byte("fixture"), time.Now())
	require.NoError(t, err)
	return snapshot
}

func fixtureRecords() []models.RawRecord {
	return []models.RawRecord{
		{
			ExternalId:  "1001",
			Kind:        "individual",
			PrimaryName: "Juan Pérez García",
			DateOfBirth: "1975-03-12",
			Nationality: "Panama",
			Programs:    []string{"SDNT"},
			Addresses: []models.RawAddress{
				{City: "Panama City", Country: "Panama"},
			},
		},
		{
			ExternalId:  "2002",
			Kind:        "individual",
			PrimaryName: "Carlos Alberto Lopez",
			Programs:    []string{"SDNTK"},
			Documents: []models.RawDocument{
				{Type: "Passport", Number: "8-888-8888", IssuingCountry: "Panama"},
			},
		},
		{
			ExternalId:  "3003",
			Kind:        "individual",
			PrimaryName: "Maria Garcia",
			Documents: []models.RawDocument{
				{Type: "Cedula", Number: "PA-123-456"},
			},
		},
		{
			ExternalId:  "4004",
			Kind:        "individual",
			PrimaryName: "Rostam Ghasemi",
			DateOfBirth: "1964-01-01",
			Programs:    []string{"IFSR"},
		},
	}
}

func TestMatchFuzzyNameDiacriticInsensitive(t *testing.T) {
	snapshot := buildSnapshot(t, fixtureRecords()...)
	matcher := NewMatcher(models.DefaultMatchingConfig())

	matches, _ := matcher.Match(models.ScreeningQuery{Name: "Juan Perez"}, snapshot)

	require.Len(t, matches, 1)
	match := matches[0]
	assert.Equal(t, "1001", match.EntityId.ExternalId)
	assert.Equal(t, models.MatchLayerFuzzy, match.MatchLayer)
	assert.GreaterOrEqual(t, match.Confidence.Name, 70.0)
	assert.Equal(t, []string{models.DimensionName}, match.Confidence.Included)
	// Fuzzy-layer matches never auto-escalate, whatever the score.
	assert.Equal(t, models.RecommendationManualReview, match.Recommendation)
}

func TestMatchDocumentExact(t *testing.T) {
	snapshot := buildSnapshot(t, fixtureRecords()...)
	matcher := NewMatcher(models.DefaultMatchingConfig())

	matches, _ := matcher.Match(models.ScreeningQuery{
		Name:           "Carlos Lopez",
		DocumentNumber: "8-888-8888",
	}, snapshot)

	require.Len(t, matches, 1)
	match := matches[0]
	assert.Equal(t, "2002", match.EntityId.ExternalId)
	assert.Equal(t, models.MatchLayerDocumentExact, match.MatchLayer)
	assert.Equal(t, 100.0, match.Confidence.Document)
	assert.Contains(t, match.Confidence.Included, models.DimensionDocument)
	assert.True(t, match.HasFlag(models.FlagDocumentExactMatch))
	assert.Equal(t, models.RecommendationAutoEscalate, match.Recommendation)
}

func TestMatchNoCandidates(t *testing.T) {
	snapshot := buildSnapshot(t, fixtureRecords()...)
	matcher := NewMatcher(models.DefaultMatchingConfig())

	matches, autoCleared := matcher.Match(models.ScreeningQuery{Name: "Zzqx Unmatched"}, snapshot)

	assert.Empty(t, matches)
	assert.Zero(t, autoCleared)
}

func TestMissingFieldsNeverScoreLowerThanMismatches(t *testing.T) {
	snapshot := buildSnapshot(t, fixtureRecords()...)
	matcher := NewMatcher(models.DefaultMatchingConfig())

	bare, _ := matcher.Match(models.ScreeningQuery{Name: "Juan Perez Garcia"}, snapshot)
	require.Len(t, bare, 1)

	loaded, _ := matcher.Match(models.ScreeningQuery{
		Name:           "Juan Perez Garcia",
		DocumentNumber: "000-000",
		DateOfBirth:    "1999-01-01",
		Nationality:    "France",
		Country:        "France",
	}, snapshot)
	require.Len(t, loaded, 1)

	assert.GreaterOrEqual(t, bare[0].Confidence.Overall, loaded[0].Confidence.Overall)
	assert.True(t, loaded[0].HasFlag(models.FlagNoDocumentMatch))
}

func TestRecommendationBoundaries(t *testing.T) {
	matcher := NewMatcher(models.DefaultMatchingConfig())

	tests := []struct {
		name            string
		overall         float64
		layer           int
		forceEscalation bool
		expected        models.Recommendation
	}{
		{"just below escalation cut-off", 89.999, models.MatchLayerDocumentExact, false, models.RecommendationManualReview},
		{"at escalation cut-off", 90, models.MatchLayerDocumentExact, false, models.RecommendationAutoEscalate},
		{"exact name at cut-off", 90, models.MatchLayerNameExact, false, models.RecommendationAutoEscalate},
		{"fuzzy layer never auto-escalates", 100, models.MatchLayerFuzzy, false, models.RecommendationManualReview},
		{"review band", 70, models.MatchLayerFuzzy, false, models.RecommendationManualReview},
		{"low confidence band", 40, models.MatchLayerFuzzyWeak, false, models.RecommendationLowConfidenceReview},
		{"below clear threshold", 39.999, models.MatchLayerFuzzyWeak, false, models.RecommendationAutoClear},
		{"flag forces escalation at any score", 10, models.MatchLayerFuzzyWeak, true, models.RecommendationAutoEscalate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := matcher.recommend(tt.overall, tt.layer, tt.forceEscalation)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestCommonNameNeedsDocumentBackup(t *testing.T) {
	config := models.DefaultMatchingConfig()
	config.CommonNames = []string{"Maria Garcia"}
	snapshot := buildSnapshot(t, fixtureRecords()...)
	matcher := NewMatcher(config)

	t.Run("name alone is demoted to manual review", func(t *testing.T) {
		matches, _ := matcher.Match(models.ScreeningQuery{Name: "Maria Garcia"}, snapshot)

		require.Len(t, matches, 1)
		match := matches[0]
		assert.Equal(t, models.MatchLayerNameExact, match.MatchLayer)
		assert.Equal(t, models.RecommendationManualReview, match.Recommendation)
		assert.True(t, match.HasFlag(models.FlagCommonName))
		assert.True(t, match.HasFlag(models.FlagCommonNameNeedsBackup))
	})

	t.Run("document backup restores escalation", func(t *testing.T) {
		matches, _ := matcher.Match(models.ScreeningQuery{
			Name:           "Maria Garcia",
			DocumentNumber: "PA123456",
		}, snapshot)

		require.Len(t, matches, 1)
		assert.Equal(t, models.RecommendationAutoEscalate, matches[0].Recommendation)
		assert.False(t, matches[0].HasFlag(models.FlagCommonNameNeedsBackup))
	})
}

func TestSecondarySanctionsProgramForcesEscalation(t *testing.T) {
	snapshot := buildSnapshot(t, fixtureRecords()...)
	matcher := NewMatcher(models.DefaultMatchingConfig())

	// The mismatching birth date pulls the overall below the escalation
	// cut-off; the program flag escalates anyway.
	matches, _ := matcher.Match(models.ScreeningQuery{
		Name:        "Rostam Ghasemi",
		DateOfBirth: "1990-01-01",
	}, snapshot)

	require.Len(t, matches, 1)
	match := matches[0]
	assert.Less(t, match.Confidence.Overall, 90.0)
	assert.True(t, match.HasFlag(models.FlagSecondarySanctionsRisk))
	assert.Equal(t, models.RecommendationAutoEscalate, match.Recommendation)
}

func TestMatchIsDeterministic(t *testing.T) {
	records := append(fixtureRecords(),
		models.RawRecord{ExternalId: "5005", Kind: "individual", PrimaryName: "Ali Hassan"},
		models.RawRecord{ExternalId: "5006", Kind: "individual", PrimaryName: "Ali Hassan"},
	)
	snapshot := buildSnapshot(t, records...)
	matcher := NewMatcher(models.DefaultMatchingConfig())
	query := models.ScreeningQuery{Name: "Ali Hassan"}

	first, _ := matcher.Match(query, snapshot)
	second, _ := matcher.Match(query, snapshot)

	require.Len(t, first, 2)
	assert.Equal(t, first, second)
	// Ties break on external id so the order is stable.
	assert.Equal(t, "5005", first[0].EntityId.ExternalId)
	assert.Equal(t, "5006", first[1].EntityId.ExternalId)
}

func TestWeakCandidateBelowClearThresholdIsDropped(t *testing.T) {
	snapshot := buildSnapshot(t, models.RawRecord{
		ExternalId:  "6006",
		Kind:        "individual",
		PrimaryName: "Hassan Qwerty",
		DateOfBirth: "1950-01-01",
	})
	matcher := NewMatcher(models.DefaultMatchingConfig())

	// One shared token keeps the candidate above the retention floor, but
	// the mismatching document and birth date sink the overall score below
	// the clear threshold.
	matches, autoCleared := matcher.Match(models.ScreeningQuery{
		Name:           "Hassan Xyzabc",
		DocumentNumber: "NOPE-1",
		DateOfBirth:    "1990-01-01",
	}, snapshot)

	assert.Empty(t, matches)
	assert.Equal(t, 1, autoCleared)
}

func TestMaxMatchesCap(t *testing.T) {
	config := models.DefaultMatchingConfig()
	config.MaxMatches = 2

	records := make([]models.RawRecord, 0, 5)
	for _, id := range []string{"7001", "7002", "7003", "7004", "7005"} {
		records = append(records, models.RawRecord{
			ExternalId:  id,
			Kind:        "individual",
			PrimaryName: "Omar Said",
		})
	}
	snapshot := buildSnapshot(t, records...)
	matcher := NewMatcher(config)

	matches, _ := matcher.Match(models.ScreeningQuery{Name: "Omar Said"}, snapshot)

	assert.Len(t, matches, 2)
}
