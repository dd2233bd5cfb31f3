package usecases

import (
	"context"
	"slices"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clearlist/screener-backend/models"
)

type fakeDownloader struct {
	feeds map[models.ListSource][]byte
	err   error
}

func (d fakeDownloader) Download(ctx context.Context, source models.ListSource) ([]byte, error) {
	if d.err != nil {
		return nil, d.err
	}
	return d.feeds[source], nil
}

func (d fakeDownloader) Sources() []models.ListSource {
	sources := make([]models.ListSource, 0, len(d.feeds))
	for source := range d.feeds {
		sources = append(sources, source)
	}
	slices.Sort(sources)
	return sources
}

const unFixture = `<CONSOLIDATED_LIST>
<INDIVIDUALS>
<INDIVIDUAL>
	<DATAID>6908555</DATAID>
	<FIRST_NAME>AHMED</FIRST_NAME>
	<SECOND_NAME>MOHAMMED</SECOND_NAME>
	<THIRD_NAME>HAMED</THIRD_NAME>
</INDIVIDUAL>
<INDIVIDUAL>
	<DATAID>6908556</DATAID>
	<FIRST_NAME>RASHID</FIRST_NAME>
	<SECOND_NAME>KARIM</SECOND_NAME>
</INDIVIDUAL>
</INDIVIDUALS>
</CONSOLIDATED_LIST>`

func TestIngestFeed(t *testing.T) {
	uc := newTestUsecases(t)

	report, err := uc.NewIngestionUsecase().IngestFeed(
		context.Background(), models.ListSourceOfac, []byte(ofacFixture))
	require.NoError(t, err)

	assert.Equal(t, 2, report.EntitiesAdded)
	assert.Equal(t, 2, report.TotalEntities)
	assert.Equal(t, uint64(1), report.SnapshotVersion)
}

func TestIngestUnknownSource(t *testing.T) {
	uc := newTestUsecases(t)

	_, err := uc.NewIngestionUsecase().IngestFeed(
		context.Background(), models.ListSourceUnknown, []byte(ofacFixture))
	assert.ErrorIs(t, err, models.ErrUnknownSource)
}

func TestIngestMalformedFeedKeepsPreviousSnapshot(t *testing.T) {
	uc := newTestUsecases(t)
	ingestFixture(t, uc)
	screening := uc.NewScreeningUsecase()

	_, err := uc.NewIngestionUsecase().IngestFeed(
		context.Background(), models.ListSourceOfac, []byte(`<sanctionsData><entities>`))
	require.ErrorIs(t, err, models.FeedParseError)

	// Queries still run against the last good snapshot.
	result, err := screening.Screen(context.Background(), models.ScreeningQuery{Name: "Juan Perez Garcia"})
	require.NoError(t, err)
	assert.True(t, result.IsHit)
	assert.Equal(t, uint64(1), result.SnapshotVersion)
}

func TestIngestEmptyFeedKeepsPreviousSnapshot(t *testing.T) {
	uc := newTestUsecases(t)
	ingestFixture(t, uc)

	_, err := uc.NewIngestionUsecase().IngestFeed(
		context.Background(), models.ListSourceOfac, []byte(`<sanctionsData><entities></entities></sanctionsData>`))
	require.ErrorIs(t, err, models.EmptyIndexError)

	freshness, err := uc.NewHealthUsecase().IndexFreshness()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), freshness.Version)
	assert.Equal(t, 2, freshness.EntityCount)
}

func TestConcurrentIngestionKeepsEverySource(t *testing.T) {
	feeds := map[models.ListSource][]byte{
		models.ListSourceOfac: []byte(ofacFixture),
		models.ListSourceUn:   []byte(unFixture),
	}

	// Repeated so an unserialized read-build-publish cycle, which only
	// loses a source when both cycles read the same previous snapshot,
	// cannot pass by luck.
	for range 25 {
		uc := newTestUsecases(t)
		ingestion := uc.NewIngestionUsecase()

		start := make(chan struct{})
		var wg sync.WaitGroup
		for source, feed := range feeds {
			wg.Add(1)
			go func() {
				defer wg.Done()
				<-start
				_, err := ingestion.IngestFeed(context.Background(), source, feed)
				assert.NoError(t, err)
			}()
		}
		close(start)
		wg.Wait()

		freshness, err := uc.NewHealthUsecase().IndexFreshness()
		require.NoError(t, err)
		assert.Equal(t, 4, freshness.EntityCount,
			"the later publish must build on the earlier one, not evict it")
		assert.Equal(t, uint64(2), freshness.Version)
	}
}

func TestRefreshSource(t *testing.T) {
	uc := newTestUsecases(t)
	ingestion := IngestionUsecase{
		publisher: uc.publisher,
		downloader: fakeDownloader{feeds: map[models.ListSource][]byte{
			models.ListSourceOfac: []byte(ofacFixture),
		}},
	}

	report, err := ingestion.RefreshSource(context.Background(), models.ListSourceOfac)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), report.SnapshotVersion)
}

func TestHealthBeforeFirstIngestion(t *testing.T) {
	uc := newTestUsecases(t)

	_, err := uc.NewHealthUsecase().IndexFreshness()
	assert.ErrorIs(t, err, models.ErrNoSnapshot)
}
