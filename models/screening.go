package models

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	QueryNameMinLength = 2
	QueryNameMaxLength = 200
)

// Watchlist feeds and queries carry partial birth dates: a bare year, a
// year-month, or a full date.
var dobPattern = regexp.MustCompile(`^\d{4}(-\d{2}(-\d{2})?)?$`)

// ScreeningQuery is one request to screen a subject. Name is the only
// required attribute; everything else corroborates. Immutable once
// validated.
type ScreeningQuery struct {
	Name           string
	DocumentNumber string
	DocumentType   string
	DateOfBirth    string
	Nationality    string
	Country        string
}

// Validate enforces the domain constraints. Transport-level shape checking
// belongs to the API layer; this only guards what the matcher relies on.
func (q ScreeningQuery) Validate(now time.Time) error {
	nameLength := len([]rune(strings.TrimSpace(q.Name)))
	if nameLength < QueryNameMinLength {
		return ErrNameTooShort
	}
	if nameLength > QueryNameMaxLength {
		return ErrNameTooLong
	}

	if q.DateOfBirth != "" {
		if !dobPattern.MatchString(q.DateOfBirth) {
			return ErrInvalidDobFormat
		}
		if dobEarliest(q.DateOfBirth).After(now) {
			return ErrFutureDob
		}
	}

	return nil
}

// dobEarliest resolves a partial birth date to the earliest instant it can
// denote, so a bare future year or year-month is caught like a full date.
func dobEarliest(date string) time.Time {
	for _, layout := range []string{"2006-01-02", "2006-01", "2006"} {
		if t, err := time.Parse(layout, date); err == nil {
			return t
		}
	}
	return time.Time{}
}

// YearOf extracts the year from a partial or full birth date. Feeds are
// messy, so any leading 4-digit run counts.
func YearOf(date string) (int, bool) {
	date = strings.TrimSpace(date)
	if len(date) < 4 {
		return 0, false
	}
	year, err := strconv.Atoi(date[:4])
	if err != nil || year < 1000 {
		return 0, false
	}
	return year, true
}

// Match layers, strongest first. A candidate's layer is the lowest-numbered
// rule that produced it.
const (
	MatchLayerDocumentExact = 1
	MatchLayerNameExact     = 2
	MatchLayerFuzzy         = 3
	MatchLayerFuzzyWeak     = 4
)

type Recommendation int

const (
	RecommendationAutoEscalate Recommendation = iota
	RecommendationManualReview
	RecommendationLowConfidenceReview
	RecommendationAutoClear
	RecommendationUnknown
)

func RecommendationFrom(s string) Recommendation {
	switch s {
	case "AUTO_ESCALATE":
		return RecommendationAutoEscalate
	case "MANUAL_REVIEW":
		return RecommendationManualReview
	case "LOW_CONFIDENCE_REVIEW":
		return RecommendationLowConfidenceReview
	case "AUTO_CLEAR":
		return RecommendationAutoClear
	}

	return RecommendationUnknown
}

func (r Recommendation) String() string {
	switch r {
	case RecommendationAutoEscalate:
		return "AUTO_ESCALATE"
	case RecommendationManualReview:
		return "MANUAL_REVIEW"
	case RecommendationLowConfidenceReview:
		return "LOW_CONFIDENCE_REVIEW"
	case RecommendationAutoClear:
		return "AUTO_CLEAR"
	}

	return "UNKNOWN"
}

// Match flags surfaced to reviewers.
const (
	FlagSecondarySanctionsRisk = "SECONDARY_SANCTIONS_RISK"
	FlagDocumentExactMatch     = "DOCUMENT_EXACT_MATCH"
	FlagCommonName             = "COMMON_NAME"
	FlagCommonNameNeedsBackup  = "COMMON_NAME_REQUIRES_SECONDARY_VALIDATION"
	FlagNoDocumentMatch        = "NO_DOCUMENT_MATCH"
	FlagEntityMatch            = "ENTITY_MATCH"
)

// Scoring dimensions, as reported in ConfidenceBreakdown.Included.
const (
	DimensionName        = "name"
	DimensionDocument    = "document"
	DimensionDob         = "dob"
	DimensionNationality = "nationality"
	DimensionAddress     = "address"
)

// ConfidenceBreakdown holds the overall score and its per-dimension
// sub-scores, all in [0, 100]. A zero sub-score with its dimension absent
// from the weighted sum is not the same thing as a scored zero; Included
// records which dimensions participated.
type ConfidenceBreakdown struct {
	Overall     float64
	Name        float64
	Document    float64
	Dob         float64
	Nationality float64
	Address     float64

	Included []string
}

type ScreeningMatch struct {
	EntityId    EntityId
	Entity      Entity
	MatchedName string
	MatchLayer  int
	Confidence  ConfidenceBreakdown
	Flags       []string

	Recommendation Recommendation
}

func (m ScreeningMatch) HasFlag(flag string) bool {
	for _, f := range m.Flags {
		if f == flag {
			return true
		}
	}
	return false
}

type ScreeningResult struct {
	Id              uuid.UUID
	Query           ScreeningQuery
	IsHit           bool
	Matches         []ScreeningMatch
	HitCount        int
	AutoCleared     int // candidates scored below the clear threshold, diagnostics only
	SnapshotVersion uint64
	ProcessingTime  time.Duration
	ScreenedAt      time.Time
}

// BatchRow is exactly one output per input row: a result or a row-scoped
// error, never both.
type BatchRow struct {
	Index  int
	Result ScreeningResult
	Err    error
}

type BatchResult struct {
	Rows            []BatchRow
	TotalProcessed  int
	Hits            int
	HitRate         float64
	SnapshotVersion uint64
	ProcessingTime  time.Duration
}
