package endpoint

import (
	"context"

	"github.com/ariebrainware/hms-portal/model"
	"github.com/ariebrainware/hms-portal/repository"
	"github.com/gin-gonic/gin"
)

// ListPatients godoc
// @Summary      List patients
// @Tags         Patients
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} util.APIResponse{data=[]model.User}
// @Router       /api/patients [get]
func ListPatients(c *gin.Context) {
	fetchAndRespond(c, "Patients retrieved", func(ctx context.Context, repo *repository.Repository) ([]model.User, error) {
		return repo.AllPatients(ctx)
	})
}

// ListStaff returns every staff account.
func ListStaff(c *gin.Context) {
	fetchAndRespond(c, "Staff retrieved", func(ctx context.Context, repo *repository.Repository) ([]model.User, error) {
		return repo.AllStaff(ctx)
	})
}

// GetPatientAppointments lists a patient's appointments.
func GetPatientAppointments(c *gin.Context) {
	id := c.Param("id")
	fetchAndRespond(c, "Appointments retrieved", func(ctx context.Context, repo *repository.Repository) ([]model.Appointment, error) {
		return repo.PatientAppointments(ctx, id)
	})
}

// GetPatientTests lists a patient's test requests.
func GetPatientTests(c *gin.Context) {
	id := c.Param("id")
	fetchAndRespond(c, "Test requests retrieved", func(ctx context.Context, repo *repository.Repository) ([]model.TestRequest, error) {
		return repo.PatientTests(ctx, id)
	})
}

// GetPatientPrescriptions lists a patient's prescriptions.
func GetPatientPrescriptions(c *gin.Context) {
	id := c.Param("id")
	fetchAndRespond(c, "Prescriptions retrieved", func(ctx context.Context, repo *repository.Repository) ([]model.Prescription, error) {
		return repo.PatientPrescriptions(ctx, id)
	})
}

// GetPatientBills lists a patient's bills.
func GetPatientBills(c *gin.Context) {
	id := c.Param("id")
	fetchAndRespond(c, "Bills retrieved", func(ctx context.Context, repo *repository.Repository) ([]model.Bill, error) {
		return repo.PatientBills(ctx, id)
	})
}

// GetPatientInsurance returns the patient's policy; data is null when none
// was submitted.
func GetPatientInsurance(c *gin.Context) {
	id := c.Param("id")
	fetchAndRespond(c, "Insurance retrieved", func(ctx context.Context, repo *repository.Repository) (*model.InsuranceDetails, error) {
		return repo.PatientInsurance(ctx, id)
	})
}

// GetPatientDischargeSummaries lists a patient's approved discharge summaries.
func GetPatientDischargeSummaries(c *gin.Context) {
	id := c.Param("id")
	fetchAndRespond(c, "Discharge summaries retrieved", func(ctx context.Context, repo *repository.Repository) ([]model.DischargeSummary, error) {
		return repo.PatientDischargeSummaries(ctx, id)
	})
}

// GetPatientQueries lists the queries a patient has raised.
func GetPatientQueries(c *gin.Context) {
	id := c.Param("id")
	fetchAndRespond(c, "Queries retrieved", func(ctx context.Context, repo *repository.Repository) ([]model.PatientQuery, error) {
		return repo.PatientQueries(ctx, id)
	})
}

// GetMedicalHistory godoc
// @Summary      Patient medical history
// @Description  Appointments, tests and prescriptions of one patient
// @Tags         Patients
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Patient ID"
// @Success      200 {object} util.APIResponse{data=model.MedicalHistory}
// @Failure      404 {object} util.APIResponse "Patient not found"
// @Router       /api/patients/{id}/history [get]
func GetMedicalHistory(c *gin.Context) {
	id := c.Param("id")
	fetchAndRespond(c, "Medical history retrieved", func(ctx context.Context, repo *repository.Repository) (model.MedicalHistory, error) {
		return repo.MedicalHistory(ctx, id)
	})
}

// SubmitInsurance creates or replaces the patient's policy.
func SubmitInsurance(c *gin.Context) {
	var req repository.InsuranceRequest
	if !bindJSONOrRespond(c, &req, "Invalid request payload") {
		return
	}
	repo, ok := getRepoOrRespond(c)
	if !ok {
		return
	}

	ins, err := repo.SubmitInsurance(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "Insurance details saved", ins)
}
