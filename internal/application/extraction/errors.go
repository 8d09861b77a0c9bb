package extraction

import (
	"fmt"

	"github.com/itcguard/itc-api/internal/domain"
)

// ExtractionError reports a model response that could not be turned into a
// tax record. Raw keeps the untouched payload for diagnostics.
type ExtractionError struct {
	Reason    string
	Field     string // offending JSON key, empty for structural failures
	Raw       string
	MediaType string
}

// Error implements the error interface.
func (e *ExtractionError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("extraction: %s: %s", e.Field, e.Reason)
	}
	return "extraction: " + e.Reason
}

// Unwrap lets callers match with errors.Is(err, domain.ErrExtractionFormat).
func (e *ExtractionError) Unwrap() error { return domain.ErrExtractionFormat }

func newExtractionError(raw, mediaType, field, reason string) *ExtractionError {
	return &ExtractionError{Reason: reason, Field: field, Raw: raw, MediaType: mediaType}
}
