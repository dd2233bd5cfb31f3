package usecases

import (
	"context"

	"github.com/clearlist/screener-backend/models"
	"github.com/clearlist/screener-backend/repositories"
	"github.com/clearlist/screener-backend/usecases/indexes"
	"github.com/clearlist/screener-backend/usecases/matching"
)

// Usecases is the composition root of the engine: it owns the publisher and
// matcher singletons and hands out usecase values wired to them.
type Usecases struct {
	publisher  *indexes.Publisher
	matcher    *matching.Matcher
	downloader FeedDownloader

	// nil when the engine runs without a database
	screeningLog *repositories.ScreeningLogRepository
}

func NewUsecases(
	config models.MatchingConfig,
	downloader FeedDownloader,
	screeningLog *repositories.ScreeningLogRepository,
) Usecases {
	return Usecases{
		publisher:    indexes.NewPublisher(),
		matcher:      matching.NewMatcher(config),
		downloader:   downloader,
		screeningLog: screeningLog,
	}
}

func (u Usecases) NewScreeningUsecase() ScreeningUsecase {
	uc := ScreeningUsecase{
		publisher: u.publisher,
		matcher:   u.matcher,
	}
	if u.screeningLog != nil {
		uc.eventWriter = u.screeningLog
	}
	return uc
}

func (u Usecases) NewIngestionUsecase() IngestionUsecase {
	return IngestionUsecase{
		publisher:  u.publisher,
		downloader: u.downloader,
	}
}

func (u Usecases) NewHealthUsecase() HealthUsecase {
	return HealthUsecase{publisher: u.publisher}
}

func (u Usecases) NewAuditUsecase() AuditUsecase {
	return AuditUsecase{screeningLog: u.screeningLog}
}

// AuditUsecase reads back the persisted screening trail.
type AuditUsecase struct {
	screeningLog *repositories.ScreeningLogRepository
}

func (uc AuditUsecase) ListScreeningEvents(ctx context.Context, limit int) ([]models.ScreeningEvent, error) {
	if uc.screeningLog == nil {
		return nil, models.NotFoundError
	}
	if limit <= 0 || limit > 1000 {
		limit = 100
	}
	return uc.screeningLog.ListScreeningEvents(ctx, limit)
}
