package repository

import (
	"context"
	"testing"

	"github.com/ariebrainware/hms-portal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryLifecycle(t *testing.T) {
	repo, _ := setupRepository(t)
	ctx := context.Background()

	q, err := repo.SubmitQuery(ctx, QueryRequest{PatientID: "p001", Subject: "Billing", Message: "Why was I charged twice?"})
	require.NoError(t, err)
	assert.Equal(t, "q1", q.ID)
	assert.Equal(t, "John Doe", q.PatientName)
	assert.Equal(t, model.QuerySubmitted, q.Status)

	q, err = repo.SetQueryInReview(ctx, q.ID)
	require.NoError(t, err)
	assert.Equal(t, model.QueryInReview, q.Status)

	q, err = repo.RespondToQuery(ctx, q.ID, "The duplicate charge was reversed.")
	require.NoError(t, err)
	assert.Equal(t, model.QueryResolved, q.Status)
	assert.Equal(t, "The duplicate charge was reversed.", q.Response)

	again, err := repo.RespondToQuery(ctx, q.ID, "The duplicate charge was reversed.")
	require.NoError(t, err)
	assert.Equal(t, q, again)

	_, err = repo.SetQueryInReview(ctx, q.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	mine, err := repo.PatientQueries(ctx, "p001")
	require.NoError(t, err)
	assert.Len(t, mine, 1)
	others, err := repo.PatientQueries(ctx, "p002")
	require.NoError(t, err)
	assert.Empty(t, others)
}

func TestQueryErrors(t *testing.T) {
	repo, _ := setupRepository(t)
	ctx := context.Background()

	_, err := repo.SubmitQuery(ctx, QueryRequest{PatientID: "p001", Subject: " "})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = repo.RespondToQuery(ctx, "q404", "Answer")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = repo.RespondToQuery(ctx, "q404", "")
	assert.ErrorIs(t, err, ErrValidation)
}
