package endpoint

import (
	"context"

	"github.com/ariebrainware/hms-portal/model"
	"github.com/ariebrainware/hms-portal/repository"
	"github.com/gin-gonic/gin"
)

// AddBill raises a manual bill against a patient.
func AddBill(c *gin.Context) {
	var req repository.BillRequest
	if !bindJSONOrRespond(c, &req, "Invalid request payload") {
		return
	}
	repo, ok := getRepoOrRespond(c)
	if !ok {
		return
	}

	bill, err := repo.AddBill(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, "Bill added", bill)
}

// PayBill godoc
// @Summary      Pay a bill
// @Description  Marks the bill paid; paying twice is harmless
// @Tags         Billing
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Bill ID"
// @Success      200 {object} util.APIResponse{data=model.Bill}
// @Failure      404 {object} util.APIResponse "Bill not found or not yours"
// @Router       /api/bills/{id}/pay [post]
func PayBill(c *gin.Context) {
	user, ok := currentUserOrRespond(c)
	if !ok {
		return
	}
	repo, ok := getRepoOrRespond(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	bill, err := repo.BillByID(ctx, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if !ownsPatientRecord(user, bill.PatientID) {
		// Answer as if the bill did not exist.
		respondError(c, &repository.Error{Kind: repository.ErrNotFound, Msg: "Bill not found"})
		return
	}

	bill, err = repo.PayBill(ctx, bill.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "Bill paid", bill)
}

// GetFinancials returns all bills and per-prescription profit.
func GetFinancials(c *gin.Context) {
	fetchAndRespond(c, "Financial data retrieved", func(ctx context.Context, repo *repository.Repository) (model.FinancialData, error) {
		return repo.FinancialData(ctx)
	})
}

// GetDashboardStats returns appointment, test and paid bill counts.
func GetDashboardStats(c *gin.Context) {
	fetchAndRespond(c, "Dashboard statistics retrieved", func(ctx context.Context, repo *repository.Repository) (model.DashboardStats, error) {
		return repo.DashboardStats(ctx)
	})
}
