package repository

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"

	"github.com/portfolio/contact-api/internal/model"
)

const sqliteContactsSchema = `CREATE TABLE IF NOT EXISTS contacts (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT,
	email TEXT,
	subject TEXT,
	message TEXT,
	timestamp TEXT
)`

// SqliteContactRepository stores submissions in a local SQLite file.
type SqliteContactRepository struct {
	db *sql.DB
}

// NewSqliteContactRepository wraps an open SQLite handle (see OpenSQLite).
func NewSqliteContactRepository(db *sql.DB) *SqliteContactRepository {
	return &SqliteContactRepository{db: db}
}

var _ ContactRepository = (*SqliteContactRepository)(nil)

func (r *SqliteContactRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, sqliteContactsSchema); err != nil {
		return errors.Wrap(err, "failed to create contacts table")
	}
	return nil
}

// Save inserts a contacts row and sets sub.ID to the AUTOINCREMENT value.
func (r *SqliteContactRepository) Save(ctx context.Context, sub *model.ContactSubmission) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO contacts (name, email, subject, message, timestamp) VALUES (?, ?, ?, ?, ?)`,
		sub.Name, sub.Email, sub.Subject, sub.Message, sub.Timestamp,
	)
	if err != nil {
		return errors.Wrap(err, "failed to insert contact")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return errors.Wrap(err, "failed to read inserted contact id")
	}
	sub.ID = id
	return nil
}

func (r *SqliteContactRepository) List(ctx context.Context, opts model.ListOptions) ([]*model.ContactSubmission, error) {
	limit, offset := listBounds(opts.Limit, opts.Offset)
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, COALESCE(name, ''), COALESCE(email, ''), COALESCE(subject, ''),
		        COALESCE(message, ''), COALESCE(timestamp, '')
		 FROM contacts
		 ORDER BY id DESC
		 LIMIT ? OFFSET ?`,
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

// Close releases the underlying database handle.
func (r *SqliteContactRepository) Close() error {
	return r.db.Close()
}
