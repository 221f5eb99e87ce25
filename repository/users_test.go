package repository

import (
	"context"
	"testing"

	"github.com/ariebrainware/hms-portal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaffAndPatientPartition(t *testing.T) {
	repo, _ := setupRepository(t)
	ctx := context.Background()

	staff, err := repo.AllStaff(ctx)
	require.NoError(t, err)
	patients, err := repo.AllPatients(ctx)
	require.NoError(t, err)

	assert.Len(t, staff, 10)
	assert.Len(t, patients, 2)
	for _, u := range staff {
		assert.NotEqual(t, model.RolePatient, u.Role)
	}
}

func TestUserByNationalHealthID(t *testing.T) {
	repo, _ := setupRepository(t)
	ctx := context.Background()

	u, err := repo.UserByNationalHealthID(ctx, "1234-5678-9012")
	require.NoError(t, err)
	assert.Equal(t, "p001", u.ID)

	_, err = repo.UserByNationalHealthID(ctx, "0000-0000-0000")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStaffByIDRejectsPatients(t *testing.T) {
	repo, _ := setupRepository(t)
	ctx := context.Background()

	u, err := repo.StaffByID(ctx, "d001")
	require.NoError(t, err)
	assert.Equal(t, "Dr. Emily Carter", u.Name)

	_, err = repo.StaffByID(ctx, "p001")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreatePatient(t *testing.T) {
	repo, _ := setupRepository(t)
	ctx := context.Background()

	u, err := repo.CreatePatient(ctx, PatientRequest{Name: "Alice", AbhaID: "1111-2222-3333", Aadhaar: "999988887777"}, "encoded")
	require.NoError(t, err)
	assert.Equal(t, "p003", u.ID)
	assert.Equal(t, model.RolePatient, u.Role)

	secret, ok, err := repo.CredentialFor(ctx, "1111-2222-3333")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "encoded", secret)
}

func TestCreatePatientRejectsDuplicates(t *testing.T) {
	repo, _ := setupRepository(t)
	ctx := context.Background()

	_, err := repo.CreatePatient(ctx, PatientRequest{Name: "Copy", AbhaID: "1234-5678-9012", Aadhaar: "000011112222"}, "x")
	assert.ErrorIs(t, err, ErrDuplicate)

	_, err = repo.CreatePatient(ctx, PatientRequest{Name: "Copy", AbhaID: "5555-5555-5555", Aadhaar: "111122223333"}, "x")
	assert.ErrorIs(t, err, ErrDuplicate)

	patients, err := repo.AllPatients(ctx)
	require.NoError(t, err)
	assert.Len(t, patients, 2)
}

func TestCreatePatientRequiresFields(t *testing.T) {
	repo, _ := setupRepository(t)

	_, err := repo.CreatePatient(context.Background(), PatientRequest{Name: "No Ids"}, "x")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestAddStaffUsesRolePrefix(t *testing.T) {
	repo, _ := setupRepository(t)
	ctx := context.Background()

	doc, err := repo.AddStaff(ctx, StaffRequest{Name: "Dr. New", Role: model.RoleDoctor, Department: "Cardiology"}, "secret")
	require.NoError(t, err)
	assert.Equal(t, "d011", doc.ID)

	ph, err := repo.AddStaff(ctx, StaffRequest{Name: "Pharma Pam", Role: model.RolePharmacist}, "secret")
	require.NoError(t, err)
	assert.Equal(t, "ph012", ph.ID)

	_, ok, err := repo.CredentialFor(ctx, "d011")
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = repo.AddStaff(ctx, StaffRequest{Name: "Not Staff", Role: model.RolePatient}, "secret")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestSetCredential(t *testing.T) {
	repo, _ := setupRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.SetCredential(ctx, "d001", "rehashed"))
	secret, _, err := repo.CredentialFor(ctx, "d001")
	require.NoError(t, err)
	assert.Equal(t, "rehashed", secret)

	assert.ErrorIs(t, repo.SetCredential(ctx, "nobody", "x"), ErrNotFound)
}
