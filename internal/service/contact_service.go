package service

import (
	"context"
	"errors"

	"github.com/nanostack/backend/internal/model"
	"github.com/nanostack/backend/internal/spam"
)

// ErrMissingFields is reported when a non-spam submission lacks a required field.
var ErrMissingFields = errors.New("missing required fields")

// IngestOutcome is the result category of a contact submission.
type IngestOutcome int

const (
	// OutcomeAccepted means exactly one ContactMessage was stored.
	OutcomeAccepted IngestOutcome = iota
	// OutcomeRejectedSilently means the submission was spam; callers must
	// report it exactly like OutcomeAccepted.
	OutcomeRejectedSilently
	// OutcomeMissingFields means a legitimate submission lacked a required field.
	OutcomeMissingFields
	// OutcomeFieldTooLong means a field exceeds its stored column length.
	OutcomeFieldTooLong
)

// ContactInput is everything the pipeline needs from the transport layer.
type ContactInput struct {
	Submission model.ContactSubmission
	// ForwardedFor is the raw X-Forwarded-For header value, possibly empty.
	ForwardedFor string
	// RemoteAddr is the direct connection address, host:port or bare host.
	RemoteAddr string
}

// IngestResult describes what happened to a submission.
type IngestResult struct {
	Outcome IngestOutcome
	// ID is set for OutcomeAccepted.
	ID string
	// Missing lists the absent required fields for OutcomeMissingFields.
	Missing []string
	// TooLong lists the over-long fields for OutcomeFieldTooLong.
	TooLong []string
	// SpamReason is set for OutcomeRejectedSilently. It is for logging only.
	SpamReason spam.Reason
}

// Succeeded reports whether the caller should see a success response.
// Spam deliberately looks the same as an accepted message.
func (r IngestResult) Succeeded() bool {
	return r.Outcome == OutcomeAccepted || r.Outcome == OutcomeRejectedSilently
}

// SpamClassifier decides whether a submission is spam.
type SpamClassifier interface {
	Classify(sub model.ContactSubmission) spam.Reason
}

// ContactService defines the business logic for contact form submissions.
type ContactService interface {
	// Ingest classifies, validates and stores a submission. The only error it
	// returns is a store failure; spam and validation outcomes are in the result.
	Ingest(ctx context.Context, in ContactInput) (IngestResult, error)

	List(ctx context.Context, opts model.ContactListOptions) ([]*model.ContactMessage, error)
	Get(ctx context.Context, id string) (*model.ContactMessage, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}
