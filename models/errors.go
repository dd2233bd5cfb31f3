package models

import "github.com/cockroachdb/errors"

// Base errors, related to default API status codes
var (
	// BadParameterError is rendered with the http status code 400
	BadParameterError = errors.New("bad parameter")

	// NotFoundError is rendered with the http status code 404
	NotFoundError = errors.New("not found")

	// ConflictError is rendered with the http status code 409
	ConflictError = errors.New("duplicate value")

	// UnprocessableEntityError is rendered with the http status code 422
	UnprocessableEntityError = errors.New("unprocessable entity")
)

// Ingestion errors. Both are fatal to one ingestion cycle only: the
// previously published snapshot keeps serving queries.
var (
	// FeedParseError means the top-level feed document is malformed and
	// nothing was ingested.
	FeedParseError = errors.Wrap(UnprocessableEntityError, "feed cannot be parsed")

	// EmptyIndexError means parsing produced zero usable entities; the
	// builder refuses to publish an empty snapshot over a good one.
	EmptyIndexError = errors.Wrap(UnprocessableEntityError, "refusing to build an empty index")

	// ErrNoSnapshot is returned while no feed has ever been ingested.
	ErrNoSnapshot = errors.Wrap(NotFoundError, "no watchlist snapshot has been published yet")
)

// Screening input errors, all wrapping BadParameterError so the API layer
// renders them as 400s.
var (
	ErrNameTooShort     = errors.Wrap(BadParameterError, "name must be at least 2 characters")
	ErrNameTooLong      = errors.Wrap(BadParameterError, "name must be at most 200 characters")
	ErrFutureDob        = errors.Wrap(BadParameterError, "date of birth cannot be in the future")
	ErrInvalidDobFormat = errors.Wrap(BadParameterError, "date of birth must be YYYY, YYYY-MM or YYYY-MM-DD")
	ErrUnknownSource    = errors.Wrap(BadParameterError, "unknown watchlist source")
	ErrEmptyBatch       = errors.Wrap(BadParameterError, "batch contains no queries")
	ErrBatchTooLarge    = errors.Wrap(BadParameterError, "batch exceeds the maximum row count")
	ErrEmptyFeedBody    = errors.Wrap(BadParameterError, "feed body is empty")
	ErrFeedOversized    = errors.Wrap(UnprocessableEntityError, "feed exceeds the maximum allowed size")
)
