package indexes

import (
	"time"

	"github.com/hashicorp/go-set/v2"

	"github.com/clearlist/screener-backend/models"
	"github.com/clearlist/screener-backend/pure_utils"
)

// Snapshot is one immutable, versioned view of every listed entity plus the
// lookup structures queries run against. Nothing mutates a snapshot after
// Finalize returns it; concurrent readers share it freely without locks.
type Snapshot struct {
	version    uint64
	builtAt    time.Time
	sourceHash string

	entities map[models.EntityId]models.Entity

	// normalized primary name or alias -> entity ids
	byName map[string][]models.EntityId
	// normalized document number (incl. vessel IMO/MMSI) -> entity ids
	byDocument map[string][]models.EntityId
	// name trigram -> entity ids, bounding fuzzy retrieval to entities
	// sharing at least one trigram with the query
	byTrigram map[string][]models.EntityId
}

func (s *Snapshot) Version() uint64 { return s.version }

func (s *Snapshot) EntityCount() int { return len(s.entities) }

func (s *Snapshot) Freshness() models.IndexFreshness {
	return models.IndexFreshness{
		Version:     s.version,
		BuiltAt:     s.builtAt,
		SourceHash:  s.sourceHash,
		EntityCount: len(s.entities),
	}
}

func (s *Snapshot) Entity(id models.EntityId) (models.Entity, bool) {
	entity, ok := s.entities[id]
	return entity, ok
}

// EntitiesByName returns the ids listed under an exact normalized name or
// alias.
func (s *Snapshot) EntitiesByName(normalizedName string) []models.EntityId {
	return s.byName[normalizedName]
}

// EntitiesByDocument returns the ids holding an exact normalized document
// number.
func (s *Snapshot) EntitiesByDocument(normalizedNumber string) []models.EntityId {
	return s.byDocument[normalizedNumber]
}

// FuzzyCandidates returns every entity sharing at least one name trigram
// with the normalized query name. The result is a candidate pool for
// scoring, not a match set.
func (s *Snapshot) FuzzyCandidates(normalizedName string) *set.Set[models.EntityId] {
	candidates := set.New[models.EntityId](0)
	for _, gram := range pure_utils.NameTrigrams(normalizedName) {
		candidates.InsertSlice(s.byTrigram[gram])
	}
	return candidates
}

// entitiesExcludingSource copies every entity not belonging to the given
// source, seeding a rebuild that replaces one source wholesale.
func (s *Snapshot) entitiesExcludingSource(source models.ListSource) map[models.EntityId]models.Entity {
	if s == nil {
		return make(map[models.EntityId]models.Entity)
	}
	out := make(map[models.EntityId]models.Entity, len(s.entities))
	for id, entity := range s.entities {
		if id.Source != source {
			out[id] = entity
		}
	}
	return out
}

// idsForSource lists the ids currently belonging to one source, for
// added/updated/removed accounting.
func (s *Snapshot) idsForSource(source models.ListSource) *set.Set[models.EntityId] {
	ids := set.New[models.EntityId](0)
	if s == nil {
		return ids
	}
	for id := range s.entities {
		if id.Source == source {
			ids.Insert(id)
		}
	}
	return ids
}
