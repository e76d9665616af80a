package repository

import (
	"context"

	"github.com/portfolio/contact-api/internal/model"
)

// ContactRepository is the append-only store of contact submissions.
// Implementations never update or delete rows.
type ContactRepository interface {
	// EnsureSchema creates the contacts table if it does not exist.
	EnsureSchema(ctx context.Context) error
	// Save inserts sub and populates sub.ID from the store.
	Save(ctx context.Context, sub *model.ContactSubmission) error
	// List returns submissions newest first.
	List(ctx context.Context, opts model.ListOptions) ([]*model.ContactSubmission, error)
}
