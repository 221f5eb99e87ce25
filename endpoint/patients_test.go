package endpoint_test

import (
	"net/http"
	"testing"

	"github.com/ariebrainware/hms-portal/model"
	"github.com/ariebrainware/hms-portal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPatientSeesOnlyOwnRecords(t *testing.T) {
	s := setupServer(t)
	token := s.login("patient", "1234-5678-9012", "password123")

	w, env := s.do(http.MethodGet, "/api/patients/p001/bills", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	bills := decode[[]model.Bill](t, env)
	require.Len(t, bills, 1)
	assert.Equal(t, "bill01", bills[0].ID)

	w, _ = s.do(http.MethodGet, "/api/patients/p002/bills", token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = s.do(http.MethodGet, "/api/patients", token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestPatientReadsRequireSession(t *testing.T) {
	s := setupServer(t)
	w, _ := s.do(http.MethodGet, "/api/patients/p001/appointments", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestStaffReadsPatientRecords(t *testing.T) {
	s := setupServer(t)
	token := s.login("hospital", "d001", "password")

	w, env := s.do(http.MethodGet, "/api/patients/p001/appointments", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]model.Appointment](t, env), 2)

	w, env = s.do(http.MethodGet, "/api/patients/p001/history", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	history := decode[model.MedicalHistory](t, env)
	assert.NotEmpty(t, history.Tests)

	w, env = s.do(http.MethodGet, "/api/patients/p999/history", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Patient not found", env.Msg)
}

func TestInsuranceRoundTrip(t *testing.T) {
	s := setupServer(t)
	token := s.login("patient", "1234-5678-9012", "password123")

	w, env := s.do(http.MethodGet, "/api/patients/p001/insurance", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "null", string(env.Data))

	req := repository.InsuranceRequest{ProviderName: "Star Health", PolicyNumber: "SH-1", PolicyHolderName: "John Doe", ValidUntil: "2026-01-01", CoverageAmount: 500000}
	w, _ = s.do(http.MethodPut, "/api/patients/p001/insurance", token, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w, env = s.do(http.MethodGet, "/api/patients/p001/insurance", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	ins := decode[model.InsuranceDetails](t, env)
	assert.Equal(t, "SH-1", ins.PolicyNumber)
}

func TestPayBill(t *testing.T) {
	s := setupServer(t)
	jane := s.login("patient", "9876-5432-1098", "password123")
	john := s.login("patient", "1234-5678-9012", "password123")

	w, _ := s.do(http.MethodPost, "/api/bills/bill02/pay", john, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, env := s.do(http.MethodPost, "/api/bills/bill02/pay", jane, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, model.BillPaid, decode[model.Bill](t, env).Status)

	w, _ = s.do(http.MethodPost, "/api/bills/bill02/pay", jane, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUnrelatedStaffCannotReadPatientRecords(t *testing.T) {
	s := setupServer(t)
	pharmacist := s.login("hospital", "ph001", "password")
	labTech := s.login("hospital", "l001", "password")

	for _, sub := range []string{"bills", "insurance", "queries", "appointments", "discharge-summaries"} {
		w, _ := s.do(http.MethodGet, "/api/patients/p001/"+sub, pharmacist, nil)
		assert.Equal(t, http.StatusForbidden, w.Code, sub)
	}
	for _, sub := range []string{"bills", "insurance", "queries", "prescriptions"} {
		w, _ := s.do(http.MethodGet, "/api/patients/p001/"+sub, labTech, nil)
		assert.Equal(t, http.StatusForbidden, w.Code, sub)
	}

	w, _ := s.do(http.MethodGet, "/api/patients/p001/prescriptions", pharmacist, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	finance := s.login("hospital", "f001", "password")
	w, _ = s.do(http.MethodGet, "/api/patients/p001/bills", finance, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
