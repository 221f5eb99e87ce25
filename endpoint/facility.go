package endpoint

import (
	"context"

	"github.com/ariebrainware/hms-portal/model"
	"github.com/ariebrainware/hms-portal/repository"
	"github.com/gin-gonic/gin"
)

// AssignBedRequest names the patient moving into an ICU bed.
type AssignBedRequest struct {
	PatientID string `json:"patientId"`
}

// ListDepartments returns the hospital departments.
func ListDepartments(c *gin.Context) {
	fetchAndRespond(c, "Departments retrieved", func(ctx context.Context, repo *repository.Repository) ([]model.Department, error) {
		return repo.Departments(ctx)
	})
}

// ListDepartmentDoctors returns the doctors of one department.
func ListDepartmentDoctors(c *gin.Context) {
	id := c.Param("id")
	fetchAndRespond(c, "Doctors retrieved", func(ctx context.Context, repo *repository.Repository) ([]model.Doctor, error) {
		return repo.DoctorsByDepartment(ctx, id)
	})
}

// ListRooms returns the bookable room types and nightly prices.
func ListRooms(c *gin.Context) {
	fetchAndRespond(c, "Rooms retrieved", func(ctx context.Context, repo *repository.Repository) ([]model.RoomFacility, error) {
		return repo.RoomFacilities(ctx)
	})
}

// ListICUBeds returns every ICU bed and its occupant.
func ListICUBeds(c *gin.Context) {
	fetchAndRespond(c, "ICU beds retrieved", func(ctx context.Context, repo *repository.Repository) ([]model.ICUBed, error) {
		return repo.ICUBeds(ctx)
	})
}

// AssignICUBed puts a patient into a free ICU bed.
func AssignICUBed(c *gin.Context) {
	var req AssignBedRequest
	if !bindJSONOrRespond(c, &req, "Invalid request payload") {
		return
	}
	repo, ok := getRepoOrRespond(c)
	if !ok {
		return
	}

	bed, err := repo.AssignICUBed(c.Request.Context(), c.Param("id"), req.PatientID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "ICU bed assigned", bed)
}

// ReleaseICUBed frees an ICU bed.
func ReleaseICUBed(c *gin.Context) {
	repo, ok := getRepoOrRespond(c)
	if !ok {
		return
	}
	bed, err := repo.ReleaseICUBed(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "ICU bed released", bed)
}
