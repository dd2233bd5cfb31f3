package models

import "time"

// RawRecord is one watchlist record as parsed from a feed, before
// normalization. The parser fills what the feed provides; the index builder
// decides what is usable.
type RawRecord struct {
	ExternalId   string
	Kind         string
	PrimaryName  string
	FirstName    string
	MiddleName   string
	LastName     string
	Aliases      []RawAlias
	Documents    []RawDocument
	Addresses    []RawAddress
	Programs     []string
	DateOfBirth  string
	PlaceOfBirth string
	Nationality  string
	Citizenship  string
	Imo          string
	Mmsi         string
	Flag         string
	Tonnage      string
}

type RawAlias struct {
	Name    string
	Quality string
}

type RawDocument struct {
	Type           string
	Number         string
	IssuingCountry string
}

type RawAddress struct {
	Line    string
	City    string
	Country string
}

// FeedValidation summarizes what a parse pass skipped or complained about.
// A malformed record inside an otherwise valid document is a warning, not an
// abort.
type FeedValidation struct {
	Errors       []string
	Warnings     []string
	SkippedCount int
}

func (v *FeedValidation) AddWarning(w string) {
	v.Warnings = append(v.Warnings, w)
}

// Merge folds another validation summary into this one. The parser and the
// index builder each keep their own; ingestion reports them together.
func (v *FeedValidation) Merge(other FeedValidation) {
	v.Errors = append(v.Errors, other.Errors...)
	v.Warnings = append(v.Warnings, other.Warnings...)
	v.SkippedCount += other.SkippedCount
}

func (v *FeedValidation) AddError(e string) {
	v.Errors = append(v.Errors, e)
}

func (v *FeedValidation) Skip(w string) {
	v.SkippedCount++
	v.Warnings = append(v.Warnings, w)
}

type IngestReport struct {
	Source             ListSource
	EntitiesAdded      int
	EntitiesUpdated    int
	EntitiesRemoved    int
	TotalEntities      int
	ValidationErrors   []string
	ValidationWarnings []string
	SkippedRecords     int
	SnapshotVersion    uint64
	IngestedAt         time.Time
}

// IndexFreshness is what health reporting sees of the published index.
type IndexFreshness struct {
	Version     uint64
	BuiltAt     time.Time
	SourceHash  string
	EntityCount int
}
