package jobs

import (
	"context"
	"slices"
	"sync"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clearlist/screener-backend/models"
	"github.com/clearlist/screener-backend/usecases"
)

const unFixture = `<CONSOLIDATED_LIST>
<INDIVIDUALS>
<INDIVIDUAL>
	<DATAID>6908555</DATAID>
	<FIRST_NAME>AHMED</FIRST_NAME>
	<SECOND_NAME>HAMED</SECOND_NAME>
</INDIVIDUAL>
</INDIVIDUALS>
</CONSOLIDATED_LIST>`

type stubDownloader struct {
	feeds map[models.ListSource][]byte

	mu         sync.Mutex
	downloaded []models.ListSource
}

func (d *stubDownloader) Download(ctx context.Context, source models.ListSource) ([]byte, error) {
	d.mu.Lock()
	d.downloaded = append(d.downloaded, source)
	d.mu.Unlock()

	feed, ok := d.feeds[source]
	if !ok {
		return nil, errors.Newf("no feed for %s", source)
	}
	return feed, nil
}

func (d *stubDownloader) Sources() []models.ListSource {
	sources := make([]models.ListSource, 0, len(d.feeds))
	for source := range d.feeds {
		sources = append(sources, source)
	}
	slices.Sort(sources)
	return sources
}

// A deployment restricted to a subset of sources must refresh exactly that
// subset, not the default url set.
func TestRefreshWatchlistFeedsCoversConfiguredSources(t *testing.T) {
	downloader := &stubDownloader{feeds: map[models.ListSource][]byte{
		models.ListSourceUn: []byte(unFixture),
	}}
	uc := usecases.NewUsecases(models.DefaultMatchingConfig(), downloader, nil)

	err := RefreshWatchlistFeeds(context.Background(), uc)
	require.NoError(t, err)
	assert.Equal(t, []models.ListSource{models.ListSourceUn}, downloader.downloaded)

	freshness, err := uc.NewHealthUsecase().IndexFreshness()
	require.NoError(t, err)
	assert.Equal(t, 1, freshness.EntityCount)
}
