package endpoint

import (
	"context"

	"github.com/ariebrainware/hms-portal/model"
	"github.com/ariebrainware/hms-portal/repository"
	"github.com/gin-gonic/gin"
)

// QueryResponseRequest holds the staff answer to a patient query.
type QueryResponseRequest struct {
	Response string `json:"response"`
}

// SubmitQuery opens a query on behalf of the calling patient.
func SubmitQuery(c *gin.Context) {
	var req repository.QueryRequest
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

	req.PatientID = user.ID
	req.PatientName = user.Name
	q, err := repo.SubmitQuery(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, "Query submitted", q)
}

// ListQueries returns every patient query.
func ListQueries(c *gin.Context) {
	fetchAndRespond(c, "Queries retrieved", func(ctx context.Context, repo *repository.Repository) ([]model.PatientQuery, error) {
		return repo.AllQueries(ctx)
	})
}

// ReviewQuery marks a submitted query as in review.
func ReviewQuery(c *gin.Context) {
	repo, ok := getRepoOrRespond(c)
	if !ok {
		return
	}
	q, err := repo.SetQueryInReview(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "Query marked in review", q)
}

// RespondToQuery answers a patient query and resolves it.
func RespondToQuery(c *gin.Context) {
	var req QueryResponseRequest
	if !bindJSONOrRespond(c, &req, "Invalid request payload") {
		return
	}
	repo, ok := getRepoOrRespond(c)
	if !ok {
		return
	}

	q, err := repo.RespondToQuery(c.Request.Context(), c.Param("id"), req.Response)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "Response sent", q)
}
