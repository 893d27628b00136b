package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/nanostack/backend/internal/logging"
	"github.com/nanostack/backend/internal/model"
	"github.com/nanostack/backend/internal/repository"
	"github.com/nanostack/backend/internal/spam"
)

// contactServiceImpl is the production implementation of ContactService.
type contactServiceImpl struct {
	repo       repository.ContactRepository
	classifier SpamClassifier
}

// NewContactService creates a ContactService backed by the given repository and classifier.
func NewContactService(repo repository.ContactRepository, classifier SpamClassifier) ContactService {
	return &contactServiceImpl{repo: repo, classifier: classifier}
}

// Ingest runs a submission through the spam rules, required-field check and store.
func (s *contactServiceImpl) Ingest(ctx context.Context, in ContactInput) (IngestResult, error) {
	sub := in.Submission

	if reason := s.classifier.Classify(sub); reason != spam.ReasonNone {
		logging.FromContext(ctx).Info("contact submission dropped as spam",
			"reason", string(reason),
			"email", sub.Email,
		)
		return IngestResult{Outcome: OutcomeRejectedSilently, SpamReason: reason}, nil
	}

	if missing := missingFields(sub); len(missing) > 0 {
		return IngestResult{Outcome: OutcomeMissingFields, Missing: missing}, nil
	}
	if tooLong := tooLongFields(sub); len(tooLong) > 0 {
		return IngestResult{Outcome: OutcomeFieldTooLong, TooLong: tooLong}, nil
	}

	msg := &model.ContactMessage{
		Name:      sub.Name,
		Email:     sub.Email,
		Phone:     sub.Phone,
		Subject:   sub.Subject,
		Message:   sub.Message,
		IPAddress: ClientIP(in.ForwardedFor, in.RemoteAddr),
	}
	if err := s.repo.Save(ctx, msg); err != nil {
		return IngestResult{}, fmt.Errorf("save contact message: %w", err)
	}

	logging.FromContext(ctx).Info("contact message stored", "id", msg.ID)
	return IngestResult{Outcome: OutcomeAccepted, ID: msg.ID}, nil
}

// missingFields returns the names of required fields that are blank.
func missingFields(sub model.ContactSubmission) []string {
	var missing []string
	for _, f := range []struct {
		name  string
		value string
	}{
		{"name", sub.Name},
		{"email", sub.Email},
		{"subject", sub.Subject},
		{"message", sub.Message},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	return missing
}

// tooLongFields returns the names of fields longer than their column allows.
// Lengths are counted in characters, as VARCHAR does.
func tooLongFields(sub model.ContactSubmission) []string {
	var tooLong []string
	for _, f := range []struct {
		name  string
		value string
		max   int
	}{
		{"name", sub.Name, model.MaxContactNameLen},
		{"phone", sub.Phone, model.MaxContactPhoneLen},
		{"subject", sub.Subject, model.MaxContactSubjectLen},
	} {
		if utf8.RuneCountInString(f.value) > f.max {
			tooLong = append(tooLong, f.name)
		}
	}
	return tooLong
}

// List returns contact messages according to the given pagination options.
func (s *contactServiceImpl) List(ctx context.Context, opts model.ContactListOptions) ([]*model.ContactMessage, error) {
	return s.repo.List(ctx, opts)
}

// Get returns one message or repository.ErrNotFound.
func (s *contactServiceImpl) Get(ctx context.Context, id string) (*model.ContactMessage, error) {
	return s.repo.GetByID(ctx, id)
}

// Delete removes a message.
func (s *contactServiceImpl) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// Count returns the number of stored messages.
func (s *contactServiceImpl) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}
