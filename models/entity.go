package models

import "fmt"

type ListSource int

const (
	ListSourceOfac ListSource = iota
	ListSourceUn
	ListSourceEu
	ListSourceUk
	ListSourceOther
	ListSourceUnknown
)

func ListSourceFrom(s string) ListSource {
	switch s {
	case "OFAC", "ofac":
		return ListSourceOfac
	case "UN", "un":
		return ListSourceUn
	case "EU", "eu":
		return ListSourceEu
	case "UK", "uk":
		return ListSourceUk
	case "OTHER", "other":
		return ListSourceOther
	}

	return ListSourceUnknown
}

func (s ListSource) String() string {
	switch s {
	case ListSourceOfac:
		return "OFAC"
	case ListSourceUn:
		return "UN"
	case ListSourceEu:
		return "EU"
	case ListSourceUk:
		return "UK"
	case ListSourceOther:
		return "OTHER"
	}

	return "UNKNOWN"
}

type EntityKind int

const (
	EntityKindIndividual EntityKind = iota
	EntityKindOrganization
	EntityKindVessel
	EntityKindAircraft
	EntityKindUnknown
)

func EntityKindFrom(s string) EntityKind {
	switch s {
	case "individual", "Individual":
		return EntityKindIndividual
	case "entity", "Entity", "organization":
		return EntityKindOrganization
	case "vessel", "Vessel":
		return EntityKindVessel
	case "aircraft", "Aircraft":
		return EntityKindAircraft
	}

	return EntityKindUnknown
}

func (k EntityKind) String() string {
	switch k {
	case EntityKindIndividual:
		return "individual"
	case EntityKindOrganization:
		return "entity"
	case EntityKindVessel:
		return "vessel"
	case EntityKindAircraft:
		return "aircraft"
	}

	return "unknown"
}

// EntityId is the stable identity of a watchlist record within a snapshot:
// the id assigned by the publishing body, scoped by the list it came from.
type EntityId struct {
	ExternalId string
	Source     ListSource
}

func (id EntityId) String() string {
	return fmt.Sprintf("%s:%s", id.Source, id.ExternalId)
}

type Alias struct {
	Name           string
	NormalizedName string
	Quality        string
	IsPrimary      bool
}

type IdentityDocument struct {
	Type             string
	Number           string
	NormalizedNumber string
	IssuingCountry   string
}

type Address struct {
	Line              string
	City              string
	Country           string
	NormalizedCountry string
}

// Entity is one listed individual, organization, vessel or aircraft.
// NormalizedName is always derived from PrimaryName by the index builder and
// never edited independently. Entities are replaced wholesale on each
// ingestion cycle; nothing mutates them after the snapshot is built.
type Entity struct {
	Id   EntityId
	Kind EntityKind

	PrimaryName    string
	NormalizedName string

	FirstName  string
	MiddleName string
	LastName   string

	DateOfBirth  string // as listed; may be a bare year
	Nationality  string // ISO alpha-2 where resolvable
	Citizenship  string
	PlaceOfBirth string

	// vessel specific
	Imo     string
	Mmsi    string
	Flag    string
	Tonnage string

	Aliases   []Alias
	Documents []IdentityDocument
	Addresses []Address
	Programs  []string
}

// AllNames yields the primary name plus every alias, the set a name query is
// scored against.
func (e Entity) AllNames() []Alias {
	names := make([]Alias, 0, len(e.Aliases)+1)
	names = append(names, Alias{
		Name:           e.PrimaryName,
		NormalizedName: e.NormalizedName,
		IsPrimary:      true,
	})
	names = append(names, e.Aliases...)
	return names
}
