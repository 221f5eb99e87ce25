package repository

import (
	"context"
	"testing"

	"github.com/ariebrainware/hms-portal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddAndPayBill(t *testing.T) {
	repo, _ := setupRepository(t)
	ctx := context.Background()

	bill, err := repo.AddBill(ctx, BillRequest{PatientID: "p002", Details: "X-Ray", Amount: 120.456})
	require.NoError(t, err)
	assert.Equal(t, "bill3", bill.ID)
	assert.Equal(t, "Jane Smith", bill.PatientName)
	assert.InDelta(t, 120.46, bill.Amount, 0.0001)

	paid, err := repo.PayBill(ctx, bill.ID)
	require.NoError(t, err)
	assert.Equal(t, model.BillPaid, paid.Status)

	again, err := repo.PayBill(ctx, bill.ID)
	require.NoError(t, err)
	assert.Equal(t, paid, again)

	_, err = repo.PayBill(ctx, "bill99")
	assert.ErrorIs(t, err, ErrNotFound)

	stats, err := repo.DashboardStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.DashboardStats{TotalAppointments: 3, TotalTests: 3, CompletedBills: 2}, stats)
}

func TestAddBillValidation(t *testing.T) {
	repo, _ := setupRepository(t)
	ctx := context.Background()

	_, err := repo.AddBill(ctx, BillRequest{PatientID: "p001", Details: "", Amount: 10})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = repo.AddBill(ctx, BillRequest{PatientID: "d001", Details: "Fee", Amount: 10})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSubmitInsuranceUpserts(t *testing.T) {
	repo, _ := setupRepository(t)
	ctx := context.Background()

	none, err := repo.PatientInsurance(ctx, "p001")
	require.NoError(t, err)
	assert.Nil(t, none)

	first, err := repo.SubmitInsurance(ctx, "p001", InsuranceRequest{ProviderName: "CareShield", PolicyNumber: "CS-1"})
	require.NoError(t, err)
	assert.Equal(t, "ins1", first.ID)

	second, err := repo.SubmitInsurance(ctx, "p001", InsuranceRequest{ProviderName: "MediPlus", PolicyNumber: "MP-9"})
	require.NoError(t, err)
	assert.Equal(t, "ins1", second.ID)

	got, err := repo.PatientInsurance(ctx, "p001")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "MediPlus", got.ProviderName)

	_, err = repo.SubmitInsurance(ctx, "p001", InsuranceRequest{ProviderName: "NoPolicy"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestFinancialData(t *testing.T) {
	repo, _ := setupRepository(t)

	data, err := repo.FinancialData(context.Background())
	require.NoError(t, err)
	assert.Len(t, data.PatientPayments, 2)
	require.Len(t, data.MedicationProfit, 2)

	aspirin := data.MedicationProfit[0]
	assert.Equal(t, "presc01", aspirin.ID)
	assert.Equal(t, "John Doe", aspirin.PatientName)
	assert.InDelta(t, 0.40, aspirin.Profit, 0.0001)
	assert.InDelta(t, 0.60, data.MedicationProfit[1].Profit, 0.0001)
}

func TestFinancialDataUnknownMedicationHasZeroProfit(t *testing.T) {
	repo, _ := setupRepository(t)
	ctx := context.Background()

	_, err := repo.AddPrescription(ctx, PrescriptionRequest{PatientID: "p001", Medication: "Unlisted", Quantity: 1})
	require.NoError(t, err)

	data, err := repo.FinancialData(ctx)
	require.NoError(t, err)
	require.Len(t, data.MedicationProfit, 3)
	assert.Zero(t, data.MedicationProfit[2].CostPrice)
	assert.Zero(t, data.MedicationProfit[2].Profit)
}
