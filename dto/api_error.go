package dto

type APIErrorResponse struct {
	Message   string    `json:"message"`
	ErrorCode ErrorCode `json:"error_code,omitempty"`
}

type ErrorCode string

const (
	NameTooShort     ErrorCode = "name_too_short"
	NameTooLong      ErrorCode = "name_too_long"
	InvalidBirthDate ErrorCode = "invalid_birth_date"
	IndexNotReady    ErrorCode = "index_not_ready"
	EmptyBatch       ErrorCode = "empty_batch"
	BatchTooLarge    ErrorCode = "batch_too_large"
	UnknownSource    ErrorCode = "unknown_source"
)
