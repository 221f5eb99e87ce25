package endpoint

import (
	"context"

	"github.com/ariebrainware/hms-portal/model"
	"github.com/ariebrainware/hms-portal/repository"
	"github.com/gin-gonic/gin"
)

// DispenseRequest sets the selling price of a dispensed prescription.
type DispenseRequest struct {
	Price float64 `json:"price"`
}

// DispenseResponse pairs the dispensed prescription with the bill it raised.
type DispenseResponse struct {
	Prescription model.Prescription `json:"prescription"`
	Bill         model.Bill         `json:"bill"`
}

// AdjustStockRequest changes a stock quantity by Delta.
type AdjustStockRequest struct {
	Delta int `json:"delta"`
}

// AddPrescription records a prescription written by the calling doctor.
func AddPrescription(c *gin.Context) {
	var req repository.PrescriptionRequest
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
	req.DoctorName = user.Name
	presc, err := repo.AddPrescription(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, "Prescription added", presc)
}

// GetPendingPrescriptions lists prescriptions waiting for the pharmacy.
func GetPendingPrescriptions(c *gin.Context) {
	fetchAndRespond(c, "Pending prescriptions retrieved", func(ctx context.Context, repo *repository.Repository) ([]model.Prescription, error) {
		return repo.PendingPrescriptions(ctx)
	})
}

// DispensePrescription godoc
// @Summary      Dispense a prescription
// @Description  Marks the prescription dispensed and bills the patient
// @Tags         Pharmacy
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Prescription ID"
// @Param        request body DispenseRequest true "Price charged"
// @Success      200 {object} util.APIResponse{data=DispenseResponse}
// @Failure      400 {object} util.APIResponse "Already dispensed or invalid price"
// @Failure      404 {object} util.APIResponse "Prescription not found"
// @Router       /api/prescriptions/{id}/dispense [post]
func DispensePrescription(c *gin.Context) {
	var req DispenseRequest
	if !bindJSONOrRespond(c, &req, "Invalid request payload") {
		return
	}
	repo, ok := getRepoOrRespond(c)
	if !ok {
		return
	}

	presc, bill, err := repo.DispensePrescription(c.Request.Context(), c.Param("id"), req.Price)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "Prescription dispensed", DispenseResponse{Prescription: presc, Bill: bill})
}

// GetMedicationStock returns the pharmacy stock.
func GetMedicationStock(c *gin.Context) {
	fetchAndRespond(c, "Stock retrieved", func(ctx context.Context, repo *repository.Repository) ([]model.MedicationStock, error) {
		return repo.MedicationStock(ctx)
	})
}

// AddMedicationStock adds a medication to the stock.
func AddMedicationStock(c *gin.Context) {
	var req repository.StockRequest
	if !bindJSONOrRespond(c, &req, "Invalid request payload") {
		return
	}
	repo, ok := getRepoOrRespond(c)
	if !ok {
		return
	}

	item, err := repo.AddMedicationStock(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, "Medication added to stock", item)
}

// AdjustStock adds delta (negative to remove) to an item's quantity.
func AdjustStock(c *gin.Context) {
	var req AdjustStockRequest
	if !bindJSONOrRespond(c, &req, "Invalid request payload") {
		return
	}
	repo, ok := getRepoOrRespond(c)
	if !ok {
		return
	}

	item, err := repo.AdjustStock(c.Request.Context(), c.Param("id"), req.Delta)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "Stock updated", item)
}
