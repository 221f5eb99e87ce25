package endpoint

import (
	"context"

	"github.com/ariebrainware/hms-portal/model"
	"github.com/ariebrainware/hms-portal/repository"
	"github.com/gin-gonic/gin"
)

// BookAppointmentRequest is an appointment with an optional room stay.
type BookAppointmentRequest struct {
	repository.AppointmentRequest
	Room *repository.RoomRequest `json:"room,omitempty"`
}

// TriageRequest carries the nurse's vitals and the doctor the appointment goes to.
type TriageRequest struct {
	model.TriageInfo
	DoctorID   string `json:"doctorId"`
	DoctorName string `json:"doctorName"`
}

// BookAppointment godoc
// @Summary      Book an appointment
// @Description  Books an appointment, optionally with a room; a room booking also raises a bill
// @Tags         Appointments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body BookAppointmentRequest true "Appointment"
// @Success      201 {object} util.APIResponse{data=repository.BookingResult}
// @Failure      400 {object} util.APIResponse "Missing or invalid fields"
// @Failure      404 {object} util.APIResponse "Patient not found"
// @Router       /api/appointments [post]
func BookAppointment(c *gin.Context) {
	var req BookAppointmentRequest
	if !bindJSONOrRespond(c, &req, "Invalid request payload") {
		return
	}
	user, ok := currentUserOrRespond(c)
	if !ok {
		return
	}
	repo, ok := getRepoOrRespond(c)
	if !ok {
		return
	}

	// Patients always book for themselves.
	if user.IsPatient() {
		req.PatientID = user.ID
		req.PatientName = user.Name
	}

	res, err := repo.BookAppointment(c.Request.Context(), req.AppointmentRequest, req.Room)
	if err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, "Appointment booked", res)
}

// GetDoctorAppointments lists a doctor's appointments. Doctors only see
// their own.
func GetDoctorAppointments(c *gin.Context) {
	user, ok := currentUserOrRespond(c)
	if !ok {
		return
	}
	id := c.Param("id")
	if user.Role == model.RoleDoctor && user.ID != id {
		respondError(c, forbidden("Doctors may only view their own appointments"))
		return
	}
	fetchAndRespond(c, "Appointments retrieved", func(ctx context.Context, repo *repository.Repository) ([]model.Appointment, error) {
		return repo.DoctorAppointments(ctx, id)
	})
}

// UpdateAppointment completes or cancels an appointment and appends notes.
// Doctors may only touch appointments assigned to them; others answer 404.
func UpdateAppointment(c *gin.Context) {
	var req repository.AppointmentUpdate
	if !bindJSONOrRespond(c, &req, "Invalid request payload") {
		return
	}
	user, ok := currentUserOrRespond(c)
	if !ok {
		return
	}
	repo, ok := getRepoOrRespond(c)
	if !ok {
		return
	}
	req.DoctorID = user.ID

	app, err := repo.UpdateAppointment(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "Appointment updated", app)
}

// GetTriageQueue lists appointments waiting for a nurse.
func GetTriageQueue(c *gin.Context) {
	fetchAndRespond(c, "Triage queue retrieved", func(ctx context.Context, repo *repository.Repository) ([]model.Appointment, error) {
		return repo.TriageQueue(ctx)
	})
}

// SubmitTriage records vitals for an appointment and assigns its doctor.
func SubmitTriage(c *gin.Context) {
	var req TriageRequest
	if !bindJSONOrRespond(c, &req, "Invalid request payload") {
		return
	}
	repo, ok := getRepoOrRespond(c)
	if !ok {
		return
	}

	app, err := repo.SubmitTriage(c.Request.Context(), c.Param("appointmentId"), req.DoctorID, req.DoctorName, req.TriageInfo)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "Triage submitted", app)
}

// GetDoctorWorkload counts scheduled appointments per doctor.
func GetDoctorWorkload(c *gin.Context) {
	fetchAndRespond(c, "Doctor workload retrieved", func(ctx context.Context, repo *repository.Repository) ([]model.DoctorWorkload, error) {
		return repo.DoctorWorkload(ctx)
	})
}
