package repository

import (
	"context"
	"testing"

	"github.com/ariebrainware/hms-portal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderTestsCreatesOneRequestPerName(t *testing.T) {
	repo, _ := setupRepository(t)
	ctx := context.Background()

	ordered, err := repo.OrderTests(ctx, "d001", "p001", "John Doe", "CBC, Lipid Panel", model.TestLab)
	require.NoError(t, err)
	require.Len(t, ordered, 2)
	assert.Equal(t, "test4", ordered[0].ID)
	assert.Equal(t, "test5", ordered[1].ID)
	for _, tr := range ordered {
		assert.Equal(t, model.TestPending, tr.Status)
		assert.Equal(t, model.TestLab, tr.Type)
		assert.Equal(t, "2024-09-02", tr.RequestDate)
	}
	assert.Equal(t, "CBC", ordered[0].TestName)
	assert.Equal(t, "Lipid Panel", ordered[1].TestName)

	pending, err := repo.PendingTests(ctx, model.TestLab)
	require.NoError(t, err)
	assert.Len(t, pending, 3)
}

func TestOrderTestsValidation(t *testing.T) {
	repo, _ := setupRepository(t)
	ctx := context.Background()

	_, err := repo.OrderTests(ctx, "d001", "p001", "John Doe", " , ,", model.TestLab)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = repo.OrderTests(ctx, "d001", "p001", "John Doe", "CBC", model.TestType("BLOOD"))
	assert.ErrorIs(t, err, ErrValidation)

	_, err = repo.OrderTests(ctx, "d001", "p999", "Nobody", "CBC", model.TestLab)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = repo.OrderTests(ctx, "d001", "d002", "Dr. Ben Hanson", "CBC", model.TestLab)
	assert.ErrorIs(t, err, ErrNotFound)

	ordered, err := repo.OrderTests(ctx, "d001", "p002", "", "CBC", model.TestLab)
	require.NoError(t, err)
	assert.Equal(t, "Jane Smith", ordered[0].PatientName)
}

func TestUpdateTestResultOnce(t *testing.T) {
	repo, _ := setupRepository(t)
	ctx := context.Background()

	tr, err := repo.UpdateTestResult(ctx, "test02", "Hairline fracture", "data:image/png;base64,AAAA")
	require.NoError(t, err)
	assert.Equal(t, model.TestCompleted, tr.Status)
	assert.Equal(t, "2024-09-02", tr.ResultDate)
	assert.Equal(t, "data:image/png;base64,AAAA", tr.ImageURL)

	_, err = repo.UpdateTestResult(ctx, "test02", "Changed", "")
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = repo.UpdateTestResult(ctx, "test99", "x", "")
	assert.ErrorIs(t, err, ErrNotFound)

	pending, err := repo.PendingTests(ctx, model.TestRadiology)
	require.NoError(t, err)
	assert.Empty(t, pending)
}
