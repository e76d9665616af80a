package service

import (
	"context"

	"github.com/portfolio/contact-api/internal/model"
)

// Outcome classifies the result of processing a submission.
type Outcome int

const (
	// OutcomeSuccess means the submission was stored and the owner notified.
	OutcomeSuccess Outcome = iota
	// OutcomeInvalid means validation rejected the input; nothing was stored.
	OutcomeInvalid
	// OutcomeFailed means the store or the mail relay failed.
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeInvalid:
		return "invalid"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// SubmitResult is returned by ContactService.Submit.
type SubmitResult struct {
	Outcome Outcome
	// ID is the stored row id. Set on OutcomeSuccess, and on OutcomeFailed
	// when the row was persisted before notification failed.
	ID int64
	// Reason is the client-facing validation message for OutcomeInvalid.
	Reason string
	// Err is the validation sentinel for OutcomeInvalid, or the infrastructure
	// detail for OutcomeFailed. Not for clients.
	Err error
}

// Notifier delivers a stored submission to the site owner.
type Notifier interface {
	Notify(ctx context.Context, sub *model.ContactSubmission) error
}

// ContactService processes contact-form submissions.
type ContactService interface {
	// Submit validates in, stores it, then notifies the owner. Storage and
	// notification are not transactional: a stored row survives a failed
	// notification.
	Submit(ctx context.Context, in model.SubmissionInput) SubmitResult
}
