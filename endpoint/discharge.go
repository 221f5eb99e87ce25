package endpoint

import (
	"context"

	"github.com/ariebrainware/hms-portal/model"
	"github.com/ariebrainware/hms-portal/repository"
	"github.com/gin-gonic/gin"
)

// DischargeRequest names the patient to summarize.
type DischargeRequest struct {
	PatientID string `json:"patientId"`
}

// ListDischargeSummaries returns every summary, pending ones included.
func ListDischargeSummaries(c *gin.Context) {
	fetchAndRespond(c, "Discharge summaries retrieved", func(ctx context.Context, repo *repository.Repository) ([]model.DischargeSummary, error) {
		return repo.AllDischargeSummaries(ctx)
	})
}

// GenerateDischargeSummary snapshots a patient's history into a pending
// summary.
func GenerateDischargeSummary(c *gin.Context) {
	var req DischargeRequest
	if !bindJSONOrRespond(c, &req, "Invalid request payload") {
		return
	}
	repo, ok := getRepoOrRespond(c)
	if !ok {
		return
	}

	sum, err := repo.GenerateDischargeSummary(c.Request.Context(), req.PatientID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, "Discharge summary generated", sum)
}

// ApproveDischargeSummary releases a summary to its patient.
func ApproveDischargeSummary(c *gin.Context) {
	repo, ok := getRepoOrRespond(c)
	if !ok {
		return
	}
	sum, err := repo.ApproveDischargeSummary(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "Discharge summary approved", sum)
}
