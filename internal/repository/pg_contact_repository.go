package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"

	"github.com/portfolio/contact-api/internal/model"
)

const pgContactsSchema = `CREATE TABLE IF NOT EXISTS contacts (
	id BIGSERIAL PRIMARY KEY,
	name TEXT,
	email TEXT,
	subject TEXT,
	message TEXT,
	timestamp TEXT
)`

// PgContactRepository is the PostgreSQL implementation of ContactRepository.
type PgContactRepository struct {
	pool *pgxpool.Pool
}

// NewPgContactRepository creates a PgContactRepository backed by the given pool.
func NewPgContactRepository(pool *pgxpool.Pool) *PgContactRepository {
	return &PgContactRepository{pool: pool}
}

// Ensure PgContactRepository implements ContactRepository at compile time.
var _ ContactRepository = (*PgContactRepository)(nil)

func (r *PgContactRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, pgContactsSchema); err != nil {
		return errors.Wrap(err, "failed to create contacts table")
	}
	return nil
}

// Save inserts a contacts row and populates sub.ID from the RETURNING clause.
func (r *PgContactRepository) Save(ctx context.Context, sub *model.ContactSubmission) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO contacts (name, email, subject, message, timestamp)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		sub.Name, sub.Email, sub.Subject, sub.Message, sub.Timestamp,
	).Scan(&sub.ID)
	return errors.Wrap(err, "failed to insert contact")
}

func (r *PgContactRepository) List(ctx context.Context, opts model.ListOptions) ([]*model.ContactSubmission, error) {
	limit, offset := listBounds(opts.Limit, opts.Offset)
	rows, err := r.pool.Query(ctx,
		`SELECT id, COALESCE(name, ''), COALESCE(email, ''), COALESCE(subject, ''),
		        COALESCE(message, ''), COALESCE(timestamp, '')
		 FROM contacts
		 ORDER BY id DESC
		 LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to select contacts")
	}
	defer rows.Close()

	var subs []*model.ContactSubmission
	for rows.Next() {
		var s model.ContactSubmission
		if err := rows.Scan(&s.ID, &s.Name, &s.Email, &s.Subject, &s.Message, &s.Timestamp); err != nil {
			return nil, errors.Wrap(err, "failed to scan contact")
		}
		subs = append(subs, &s)
	}
	return subs, errors.Wrap(rows.Err(), "failed to iterate contacts")
}
