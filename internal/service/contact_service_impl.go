package service

import (
	"context"
	"fmt"
	"time"

	"github.com/portfolio/contact-api/internal/model"
	"github.com/portfolio/contact-api/internal/repository"
)

// contactServiceImpl is the production implementation of ContactService.
type contactServiceImpl struct {
	repo     repository.ContactRepository
	notifier Notifier
	now      func() time.Time
	loc      *time.Location
}

// Option customises a ContactService.
type Option func(*contactServiceImpl)

// WithClock replaces time.Now as the source of submission timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *contactServiceImpl) { s.now = now }
}

// NewContactService creates a ContactService. Timestamps are rendered in loc;
// a nil loc means UTC.
func NewContactService(repo repository.ContactRepository, notifier Notifier, loc *time.Location, opts ...Option) ContactService {
	if loc == nil {
		loc = time.UTC
	}
	s := &contactServiceImpl{repo: repo, notifier: notifier, now: time.Now, loc: loc}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *contactServiceImpl) Submit(ctx context.Context, in model.SubmissionInput) SubmitResult {
	if err := ValidateSubmission(in); err != nil {
		return SubmitResult{Outcome: OutcomeInvalid, Reason: validationMessages[err], Err: err}
	}

	sub := &model.ContactSubmission{
		Name:      in.Name,
		Email:     in.Email,
		Subject:   in.Subject,
		Message:   in.Message,
		Timestamp: s.now().In(s.loc).Format(model.TimestampLayout),
	}

	// The caller going away must not abort a validated write.
	if err := s.repo.Save(context.WithoutCancel(ctx), sub); err != nil {
		return SubmitResult{Outcome: OutcomeFailed, Err: fmt.Errorf("store submission: %w", err)}
	}

	if err := s.notifier.Notify(ctx, sub); err != nil {
		return SubmitResult{Outcome: OutcomeFailed, ID: sub.ID, Err: fmt.Errorf("notify owner of contact %d: %w", sub.ID, err)}
	}

	return SubmitResult{Outcome: OutcomeSuccess, ID: sub.ID}
}
