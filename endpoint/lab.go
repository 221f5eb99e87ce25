package endpoint

import (
	"context"
	"strings"

	"github.com/ariebrainware/hms-portal/model"
	"github.com/ariebrainware/hms-portal/repository"
	"github.com/gin-gonic/gin"
)

// OrderTestsRequest orders comma-separated tests of one type for a patient.
type OrderTestsRequest struct {
	PatientID   string         `json:"patientId"`
	PatientName string         `json:"patientName"`
	Tests       string         `json:"tests" example:"CBC, Lipid Profile"`
	Type        model.TestType `json:"type" example:"LAB"`
}

// TestResultRequest records a result and an optional image data URI.
type TestResultRequest struct {
	Result   string `json:"result"`
	ImageURL string `json:"imageUrl"`
}

// OrderTests creates one pending test per comma-separated name, ordered by
// the calling doctor.
func OrderTests(c *gin.Context) {
	var req OrderTestsRequest
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

	tests, err := repo.OrderTests(c.Request.Context(), user.ID, req.PatientID, req.PatientName, req.Tests, req.Type)
	if err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, "Tests ordered", tests)
}

// pendingTestType picks the queue for the caller: an explicit ?type= wins,
// otherwise lab technicians get LAB and radiologists RADIOLOGY.
func pendingTestType(c *gin.Context, role model.Role) (model.TestType, error) {
	if q := strings.ToUpper(strings.TrimSpace(c.Query("type"))); q != "" {
		typ := model.TestType(q)
		if !typ.Valid() {
			return "", repository.Validation("Test type must be LAB or RADIOLOGY")
		}
		return typ, nil
	}
	switch role {
	case model.RoleLabTechnician:
		return model.TestLab, nil
	case model.RoleRadiologist:
		return model.TestRadiology, nil
	}
	return "", repository.Validation("Test type is required")
}

// GetPendingTests lists pending lab or radiology tests.
func GetPendingTests(c *gin.Context) {
	user, ok := currentUserOrRespond(c)
	if !ok {
		return
	}
	typ, err := pendingTestType(c, user.Role)
	if err != nil {
		respondError(c, err)
		return
	}
	fetchAndRespond(c, "Pending tests retrieved", func(ctx context.Context, repo *repository.Repository) ([]model.TestRequest, error) {
		return repo.PendingTests(ctx, typ)
	})
}

// UpdateTestResult completes a pending test with its result.
func UpdateTestResult(c *gin.Context) {
	var req TestResultRequest
	if !bindJSONOrRespond(c, &req, "Invalid request payload") {
		return
	}
	repo, ok := getRepoOrRespond(c)
	if !ok {
		return
	}

	test, err := repo.UpdateTestResult(c.Request.Context(), c.Param("id"), req.Result, req.ImageURL)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "Test result saved", test)
}
