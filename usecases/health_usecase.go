package usecases

import (
	"github.com/clearlist/screener-backend/models"
	"github.com/clearlist/screener-backend/usecases/indexes"
)

type HealthUsecase struct {
	publisher *indexes.Publisher
}

// IndexFreshness reports the published index state. It fails with
// models.ErrNoSnapshot until the first successful ingestion, which readiness
// probes treat as not-ready.
func (uc HealthUsecase) IndexFreshness() (models.IndexFreshness, error) {
	snapshot, err := uc.publisher.Current()
	if err != nil {
		return models.IndexFreshness{}, err
	}
	return snapshot.Freshness(), nil
}
