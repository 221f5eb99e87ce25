package repository

import (
	"context"
	"testing"
	"time"

	"github.com/ariebrainware/hms-portal/model"
	"github.com/ariebrainware/hms-portal/store"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 9, 2, 14, 30, 5, 0, time.UTC)

func setupRepository(t *testing.T) (*Repository, *store.Memory) {
	t.Helper()
	mem := store.NewMemory()
	repo := New(mem, zerolog.Nop(), WithClock(func() time.Time { return fixedNow }))
	require.NoError(t, repo.Initialize(context.Background()))
	return repo, mem
}

func TestInitializeIsIdempotent(t *testing.T) {
	repo, _ := setupRepository(t)
	ctx := context.Background()

	_, err := repo.AddBill(ctx, BillRequest{PatientID: "p001", Details: "Consultation", Amount: 80})
	require.NoError(t, err)
	require.NoError(t, repo.Initialize(ctx))

	bills, err := repo.PatientBills(ctx, "p001")
	require.NoError(t, err)
	assert.Len(t, bills, 2)
}

func TestCorruptCollectionFallsBackToSeed(t *testing.T) {
	repo, mem := setupRepository(t)
	mem.Raw(model.KeyDepartments, []byte("{not json"))

	deps, err := repo.Departments(context.Background())
	require.NoError(t, err)
	assert.Len(t, deps, 3)
	assert.Equal(t, "dep01", deps[0].ID)
}

func TestNextIDSkipsTakenIDs(t *testing.T) {
	bills := []model.Bill{{ID: "bill1"}, {ID: "bill3"}}
	id := nextID(bills, func(b model.Bill) string { return b.ID }, "bill%d", len(bills)+1)
	assert.Equal(t, "bill4", id)

	id = nextID(bills, func(b model.Bill) string { return b.ID }, "bill%d", 2)
	assert.Equal(t, "bill2", id)
}

func TestErrorKinds(t *testing.T) {
	err := notFound("Bill")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "Bill not found", err.Error())
	assert.ErrorIs(t, Duplicate("x"), ErrDuplicate)
	assert.ErrorIs(t, InvalidCredentials(), ErrInvalidCredentials)
	assert.ErrorIs(t, Validation("x"), ErrValidation)
	assert.ErrorIs(t, badTransition("x"), ErrInvalidTransition)
}
