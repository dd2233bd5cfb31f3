package repositories

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"slices"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/cockroachdb/errors"

	"github.com/clearlist/screener-backend/models"
)

// Published feed locations. Deployments can override them per source.
var DefaultFeedUrls = map[models.ListSource]string{
	models.ListSourceOfac: "https://sanctionslistservice.ofac.treas.gov/api/PublicationPreview/exports/SDN_ENHANCED.XML",
	models.ListSourceUn:   "https://scsanctions.un.org/resources/xml/en/consolidated.xml",
}

const (
	downloadTimeout  = 5 * time.Minute
	downloadAttempts = 3
)

// FeedDownloader fetches raw feed bytes over HTTP(S) with bounded retries.
// It only downloads; parsing and ingestion happen downstream so a truncated
// transfer can never reach the index.
type FeedDownloader struct {
	client *http.Client
	urls   map[models.ListSource]string
}

func NewFeedDownloader(urls map[models.ListSource]string) *FeedDownloader {
	if urls == nil {
		urls = DefaultFeedUrls
	}
	return &FeedDownloader{
		client: &http.Client{Timeout: downloadTimeout},
		urls:   urls,
	}
}

// Sources lists the sources this downloader is configured for, in stable
// order.
func (d *FeedDownloader) Sources() []models.ListSource {
	sources := make([]models.ListSource, 0, len(d.urls))
	for source := range d.urls {
		sources = append(sources, source)
	}
	slices.Sort(sources)
	return sources
}

func (d *FeedDownloader) Download(ctx context.Context, source models.ListSource) ([]byte, error) {
	url, ok := d.urls[source]
	if !ok {
		return nil, errors.Wrapf(models.ErrUnknownSource, "no feed url configured for %s", source)
	}

	return retry.DoWithData(
		func() ([]byte, error) {
			return d.fetch(ctx, url)
		},
		retry.Context(ctx),
		retry.Attempts(downloadAttempts),
		retry.Delay(2*time.Second),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
	)
}

func (d *FeedDownloader) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(err, "building feed request")
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "downloading feed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Newf("feed endpoint returned %s", resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxFeedBytes+1))
	if err != nil {
		return nil, errors.Wrap(err, "reading feed body")
	}
	if int64(len(body)) > MaxFeedBytes {
		return nil, errors.Wrap(models.ErrFeedOversized, fmt.Sprintf("%s feed", url))
	}

	return body, nil
}
