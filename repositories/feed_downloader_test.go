package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/clearlist/screener-backend/models"
)

func TestFeedDownloaderSources(t *testing.T) {
	custom := NewFeedDownloader(map[models.ListSource]string{
		models.ListSourceUn: "https://example.org/un.xml",
	})
	assert.Equal(t, []models.ListSource{models.ListSourceUn}, custom.Sources())

	assert.ElementsMatch(t,
		[]models.ListSource{models.ListSourceOfac, models.ListSourceUn},
		NewFeedDownloader(nil).Sources())
}
