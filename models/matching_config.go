package models

// MatchingConfig carries every calibration knob of the matcher: layer
// thresholds, dimension weights, classification cut-offs and the damping
// lists. Values are percentages in [0, 100] unless noted. Defaults mirror
// the production calibration; deployments override them from a YAML file.
type MatchingConfig struct {
	// FuzzyThreshold is the minimum name similarity for a layer-3 match.
	FuzzyThreshold float64 `yaml:"fuzzy_threshold"`
	// WeakFloor is the minimum name similarity for a candidate to be
	// retained at all (layer 4).
	WeakFloor float64 `yaml:"weak_floor"`

	Weights DimensionWeights `yaml:"weights"`

	// Classification cut-offs over the overall score.
	AutoEscalateThreshold float64 `yaml:"auto_escalate_threshold"`
	ManualReviewThreshold float64 `yaml:"manual_review_threshold"`
	ClearThreshold        float64 `yaml:"clear_threshold"`

	// MaxMatches caps how many matches a single query returns.
	MaxMatches int `yaml:"max_matches"`

	// CommonNames are names frequent enough that a bare name match must not
	// auto-escalate without document corroboration.
	CommonNames []string `yaml:"common_names"`

	// SecondarySanctionsPrograms are program codes carrying extraterritorial
	// exposure; any match listed under one is flagged regardless of score.
	SecondarySanctionsPrograms []string `yaml:"secondary_sanctions_programs"`
}

type DimensionWeights struct {
	Name        float64 `yaml:"name"`
	Document    float64 `yaml:"document"`
	Dob         float64 `yaml:"dob"`
	Nationality float64 `yaml:"nationality"`
	Address     float64 `yaml:"address"`
}

func DefaultMatchingConfig() MatchingConfig {
	return MatchingConfig{
		FuzzyThreshold: 70,
		WeakFloor:      40,
		Weights: DimensionWeights{
			Name:        0.50,
			Document:    0.25,
			Dob:         0.10,
			Nationality: 0.10,
			Address:     0.05,
		},
		AutoEscalateThreshold: 90,
		ManualReviewThreshold: 70,
		ClearThreshold:        40,
		MaxMatches:            10,
		SecondarySanctionsPrograms: []string{
			"SDGT", "IFSR", "NPWMD", "UN-1718",
		},
	}
}
