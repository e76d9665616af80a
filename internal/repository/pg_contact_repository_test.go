package repository

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/portfolio/contact-api/internal/model"
)

// Runs only when TEST_DATABASE_URL points at a disposable PostgreSQL database.
func TestPgContactRepository_SaveAndList(t *testing.T) {
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	ctx := context.Background()

	pool, err := NewPool(ctx, dbURL)
	require.NoError(t, err)
	defer pool.Close()

	repo := NewPgContactRepository(pool)
	require.NoError(t, repo.EnsureSchema(ctx))
	require.NoError(t, repo.EnsureSchema(ctx))

	first, second := sampleSubmission(), sampleSubmission()
	require.NoError(t, repo.Save(ctx, first))
	require.NoError(t, repo.Save(ctx, second))
	assert.Greater(t, second.ID, first.ID)

	got, err := repo.List(ctx, model.ListOptions{Limit: 1})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, second.ID, got[0].ID)
	assert.Equal(t, "jane@example.com", got[0].Email)
}
