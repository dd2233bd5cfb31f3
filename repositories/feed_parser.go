package repositories

import (
	"context"
	"io"

	"github.com/clearlist/screener-backend/models"
)

// RecordSink receives raw records as they stream out of a feed document.
// Returning an error aborts the parse.
type RecordSink func(models.RawRecord) error

// FeedParser turns one watchlist feed document into a finite stream of raw
// records. The stream is not restartable; a second pass needs a new reader.
//
// Error contract: a malformed top-level document returns an error wrapping
// models.FeedParseError and nothing must be considered ingested. A
// malformed record inside a valid document is skipped and recorded on the
// returned validation summary.
type FeedParser interface {
	Parse(ctx context.Context, r io.Reader, sink RecordSink) (models.FeedValidation, error)
}

// ParserFor selects the parser matching a feed source tag.
func ParserFor(source models.ListSource) (FeedParser, error) {
	switch source {
	case models.ListSourceOfac:
		return OfacFeedParser{}, nil
	case models.ListSourceUn:
		return UnFeedParser{}, nil
	default:
		return nil, models.ErrUnknownSource
	}
}
