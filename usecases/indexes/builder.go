package indexes

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/hashicorp/go-set/v2"

	"github.com/clearlist/screener-backend/models"
	"github.com/clearlist/screener-backend/pure_utils"
)

// Builder turns raw feed records into canonical entities and assembles the
// next snapshot. One builder handles one ingestion cycle for one source:
// records stream in through Add, Finalize seals the snapshot. Entities from
// other sources carry over from the previous snapshot untouched.
type Builder struct {
	source   models.ListSource
	previous *Snapshot

	entities map[models.EntityId]models.Entity
	added    *set.Set[models.EntityId]

	validation *models.FeedValidation
}

func NewBuilder(previous *Snapshot, source models.ListSource, validation *models.FeedValidation) *Builder {
	if validation == nil {
		validation = &models.FeedValidation{}
	}
	return &Builder{
		source:     source,
		previous:   previous,
		entities:   previous.entitiesExcludingSource(source),
		added:      set.New[models.EntityId](0),
		validation: validation,
	}
}

// Add normalizes one raw record into a canonical entity. Records without a
// usable name or id are recorded as errors and dropped; they must not abort
// the cycle.
func (b *Builder) Add(record models.RawRecord) error {
	entity, ok := b.canonicalize(record)
	if !ok {
		return nil
	}

	if b.added.Contains(entity.Id) {
		b.validation.AddWarning(fmt.Sprintf("duplicate record id %s, keeping the last occurrence", entity.Id))
	}
	b.added.Insert(entity.Id)
	b.entities[entity.Id] = entity
	return nil
}

func (b *Builder) canonicalize(record models.RawRecord) (models.Entity, bool) {
	normalizedName := pure_utils.NormalizeName(record.PrimaryName)
	if record.ExternalId == "" || normalizedName == "" {
		b.validation.AddError(fmt.Sprintf(
			"record rejected: missing usable name or id (id %q)", record.ExternalId))
		return models.Entity{}, false
	}

	entity := models.Entity{
		Id: models.EntityId{
			ExternalId: record.ExternalId,
			Source:     b.source,
		},
		Kind:           models.EntityKindFrom(record.Kind),
		PrimaryName:    record.PrimaryName,
		NormalizedName: normalizedName,
		FirstName:      record.FirstName,
		MiddleName:     record.MiddleName,
		LastName:       record.LastName,
		DateOfBirth:    record.DateOfBirth,
		PlaceOfBirth:   record.PlaceOfBirth,
		Nationality:    pure_utils.NormalizeCountry(record.Nationality),
		Citizenship:    pure_utils.NormalizeCountry(record.Citizenship),
		Imo:            record.Imo,
		Mmsi:           record.Mmsi,
		Flag:           record.Flag,
		Tonnage:        record.Tonnage,
		Programs:       record.Programs,
	}

	// Aliases deduplicate case-insensitively against each other and the
	// primary name; order of first appearance is kept.
	seen := set.From([]string{normalizedName})
	for _, alias := range record.Aliases {
		norm := pure_utils.NormalizeName(alias.Name)
		if norm == "" || seen.Contains(norm) {
			continue
		}
		seen.Insert(norm)
		entity.Aliases = append(entity.Aliases, models.Alias{
			Name:           alias.Name,
			NormalizedName: norm,
			Quality:        alias.Quality,
		})
	}

	for _, doc := range record.Documents {
		normalizedNumber := pure_utils.NormalizeDocument(doc.Number)
		if normalizedNumber == "" {
			continue
		}
		entity.Documents = append(entity.Documents, models.IdentityDocument{
			Type:             doc.Type,
			Number:           doc.Number,
			NormalizedNumber: normalizedNumber,
			IssuingCountry:   pure_utils.NormalizeCountry(doc.IssuingCountry),
		})
	}

	for _, addr := range record.Addresses {
		entity.Addresses = append(entity.Addresses, models.Address{
			Line:              addr.Line,
			City:              addr.City,
			Country:           addr.Country,
			NormalizedCountry: pure_utils.NormalizeCountry(addr.Country),
		})
	}

	return entity, true
}

// Finalize builds the lookup structures and seals the snapshot. It refuses
// to produce a snapshot when the cycle contributed no entities at all, so a
// total upstream failure can never evict a good index.
func (b *Builder) Finalize(feedBytes []byte, now time.Time) (*Snapshot, models.IngestReport, error) {
	report := models.IngestReport{
		Source:             b.source,
		ValidationErrors:   b.validation.Errors,
		ValidationWarnings: b.validation.Warnings,
		SkippedRecords:     b.validation.SkippedCount,
		IngestedAt:         now,
	}

	if b.added.Size() == 0 {
		return nil, report, models.EmptyIndexError
	}

	previousIds := b.previous.idsForSource(b.source)
	for _, id := range b.added.Slice() {
		if previousIds.Contains(id) {
			report.EntitiesUpdated++
		} else {
			report.EntitiesAdded++
		}
	}
	for _, id := range previousIds.Slice() {
		if !b.added.Contains(id) {
			report.EntitiesRemoved++
		}
	}
	report.TotalEntities = len(b.entities)

	snapshot := &Snapshot{
		version:    b.nextVersion(),
		builtAt:    now,
		sourceHash: sourceHash(feedBytes),
		entities:   b.entities,
		byName:     make(map[string][]models.EntityId),
		byDocument: make(map[string][]models.EntityId),
		byTrigram:  make(map[string][]models.EntityId),
	}

	for id, entity := range snapshot.entities {
		for _, alias := range entity.AllNames() {
			snapshot.byName[alias.NormalizedName] = append(snapshot.byName[alias.NormalizedName], id)
			for _, gram := range pure_utils.NameTrigrams(alias.NormalizedName) {
				snapshot.byTrigram[gram] = append(snapshot.byTrigram[gram], id)
			}
		}
		for _, doc := range entity.Documents {
			snapshot.byDocument[doc.NormalizedNumber] = append(snapshot.byDocument[doc.NormalizedNumber], id)
		}
		// Vessel identifiers are searchable as documents too.
		for _, vesselId := range []string{entity.Imo, entity.Mmsi} {
			if norm := pure_utils.NormalizeDocument(vesselId); norm != "" {
				snapshot.byDocument[norm] = append(snapshot.byDocument[norm], id)
			}
		}
	}

	report.SnapshotVersion = snapshot.version

	return snapshot, report, nil
}

func (b *Builder) nextVersion() uint64 {
	if b.previous == nil {
		return 1
	}
	return b.previous.version + 1
}

func sourceHash(feedBytes []byte) string {
	sum := sha256.Sum256(feedBytes)
	return hex.EncodeToString(sum[:])
}
