package endpoint_test

import (
	"net/http"
	"testing"

	"github.com/ariebrainware/hms-portal/endpoint"
	"github.com/ariebrainware/hms-portal/model"
	"github.com/ariebrainware/hms-portal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublicCatalogue(t *testing.T) {
	s := setupServer(t)

	w, env := s.do(http.MethodGet, "/api/departments", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]model.Department](t, env), 3)

	w, env = s.do(http.MethodGet, "/api/departments/dep01/doctors", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	doctors := decode[[]model.Doctor](t, env)
	require.Len(t, doctors, 1)
	assert.Equal(t, "d001", doctors[0].ID)

	w, env = s.do(http.MethodGet, "/api/rooms", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]model.RoomFacility](t, env), 3)

	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestDischargeSummaryFlow(t *testing.T) {
	s := setupServer(t)
	admin := s.login("hospital", "a001", "password")
	patient := s.login("patient", "1234-5678-9012", "password123")

	w, env := s.do(http.MethodPost, "/api/discharge-summaries", admin, endpoint.DischargeRequest{PatientID: "p001"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	sum := decode[model.DischargeSummary](t, env)

	w, env = s.do(http.MethodGet, "/api/patients/p001/discharge-summaries", patient, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[[]model.DischargeSummary](t, env))

	w, _ = s.do(http.MethodPost, "/api/discharge-summaries/"+sum.ID+"/approve", patient, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = s.do(http.MethodPost, "/api/discharge-summaries/"+sum.ID+"/approve", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, env = s.do(http.MethodGet, "/api/patients/p001/discharge-summaries", patient, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]model.DischargeSummary](t, env), 1)

	w, _ = s.do(http.MethodPost, "/api/discharge-summaries/sum404/approve", admin, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPatientQueryFlow(t *testing.T) {
	s := setupServer(t)
	admin := s.login("hospital", "a001", "password")
	patient := s.login("patient", "9876-5432-1098", "password123")

	w, env := s.do(http.MethodPost, "/api/queries", patient, repository.QueryRequest{PatientID: "p001", Subject: "Report", Message: "When is my report ready?"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	q := decode[model.PatientQuery](t, env)
	assert.Equal(t, "p002", q.PatientID)

	w, _ = s.do(http.MethodPost, "/api/queries/"+q.ID+"/review", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = s.do(http.MethodPost, "/api/queries/"+q.ID+"/respond", admin, endpoint.QueryResponseRequest{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, env = s.do(http.MethodPost, "/api/queries/"+q.ID+"/respond", admin, endpoint.QueryResponseRequest{Response: "Tomorrow"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Tomorrow", decode[model.PatientQuery](t, env).Response)

	w, _ = s.do(http.MethodPost, "/api/queries/"+q.ID+"/review", admin, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, env = s.do(http.MethodGet, "/api/patients/p002/queries", patient, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]model.PatientQuery](t, env), 1)
}

func TestICUBeds(t *testing.T) {
	s := setupServer(t)
	manager := s.login("hospital", "m001", "password")

	w, _ := s.do(http.MethodPost, "/api/icu-beds/icu01/assign", manager, endpoint.AssignBedRequest{PatientID: "p001"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, env := s.do(http.MethodPost, "/api/icu-beds/icu02/assign", manager, endpoint.AssignBedRequest{PatientID: "p001"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.True(t, decode[model.ICUBed](t, env).IsOccupied)

	w, env = s.do(http.MethodPost, "/api/icu-beds/icu02/release", manager, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, decode[model.ICUBed](t, env).IsOccupied)

	w, _ = s.do(http.MethodGet, "/api/icu-beds", s.login("hospital", "f001", "password"), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAttendanceClock(t *testing.T) {
	s := setupServer(t)
	lab := s.login("hospital", "l001", "password")

	w, env := s.do(http.MethodGet, "/api/attendance/today", lab, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "null", string(env.Data))

	w, _ = s.do(http.MethodPost, "/api/attendance/clock-out", lab, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, env = s.do(http.MethodPost, "/api/attendance/clock-in", lab, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "l001", decode[model.AttendanceRecord](t, env).StaffID)

	w, env = s.do(http.MethodPost, "/api/attendance/clock-out", lab, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, decode[model.AttendanceRecord](t, env).OutTime)

	w, _ = s.do(http.MethodPost, "/api/attendance/clock-in", s.login("patient", "1234-5678-9012", "password123"), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, env = s.do(http.MethodGet, "/api/attendance", s.login("hospital", "h001", "password"), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]model.AttendanceRecord](t, env), 3)
}

func TestManagementReports(t *testing.T) {
	s := setupServer(t)
	finance := s.login("hospital", "f001", "password")
	manager := s.login("hospital", "m001", "password")

	w, env := s.do(http.MethodGet, "/api/financials", finance, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), "Aspirin")

	w, env = s.do(http.MethodGet, "/api/dashboard", manager, nil)
	require.Equal(t, http.StatusOK, w.Code)
	stats := decode[model.DashboardStats](t, env)
	assert.Equal(t, 3, stats.TotalAppointments)
	assert.Equal(t, 1, stats.CompletedBills)

	w, env = s.do(http.MethodGet, "/api/workload", manager, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]model.DoctorWorkload](t, env), 1)

	w, env = s.do(http.MethodPost, "/api/bills", finance, repository.BillRequest{PatientID: "p002", Details: "Physiotherapy", Amount: 99.999})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, 100.0, decode[model.Bill](t, env).Amount)

	w, _ = s.do(http.MethodGet, "/api/workload", finance, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestPharmacyStock(t *testing.T) {
	s := setupServer(t)
	pharmacist := s.login("hospital", "ph001", "password")

	w, env := s.do(http.MethodPost, "/api/stock", pharmacist, repository.StockRequest{Name: "Paracetamol", CostPrice: 0.05, SellingPrice: 0.2, Quantity: 500})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	item := decode[model.MedicationStock](t, env)
	assert.Equal(t, "med03", item.ID)

	w, _ = s.do(http.MethodPost, "/api/stock", pharmacist, repository.StockRequest{Name: "paracetamol", Quantity: 1})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, env = s.do(http.MethodPatch, "/api/stock/med03", pharmacist, endpoint.AdjustStockRequest{Delta: -100})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 400, decode[model.MedicationStock](t, env).Quantity)

	w, _ = s.do(http.MethodPatch, "/api/stock/med03", pharmacist, endpoint.AdjustStockRequest{Delta: -1000})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, env = s.do(http.MethodGet, "/api/prescriptions/pending", pharmacist, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]model.Prescription](t, env), 1)
}

func TestPortalEndpoints(t *testing.T) {
	s := setupServer(t)
	nurse := s.login("hospital", "n001", "password")

	w, env := s.do(http.MethodGet, "/api/portal/navigation", nurse, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), "Triage Queue")

	w, env = s.do(http.MethodGet, "/api/portal/resolve?path=/hospital/triage", nurse, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), `"view":"triage-queue"`)

	w, env = s.do(http.MethodGet, "/api/portal/resolve?path=/hospital/triage", "", nil)
	assert.Equal(t, http.StatusTemporaryRedirect, w.Code)
	assert.Contains(t, string(env.Data), `"redirect":"/login/hospital"`)

	w, _ = s.do(http.MethodGet, "/api/portal/navigation", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
