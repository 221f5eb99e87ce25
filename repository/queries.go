package repository

import (
	"context"
	"strings"

	"github.com/ariebrainware/hms-portal/model"
	"github.com/ariebrainware/hms-portal/store"
)

// QueryRequest is a question raised by a patient.
type QueryRequest struct {
	PatientID   string `json:"patientId"`
	PatientName string `json:"patientName"`
	Subject     string `json:"subject"`
	Message     string `json:"message"`
}

// PatientQueries returns the queries raised by patientID.
func (r *Repository) PatientQueries(ctx context.Context, patientID string) ([]model.PatientQuery, error) {
	all, err := r.AllQueries(ctx)
	if err != nil {
		return nil, err
	}
	return filter(all, func(q model.PatientQuery) bool { return q.PatientID == patientID }), nil
}

// AllQueries returns every patient query.
func (r *Repository) AllQueries(ctx context.Context) ([]model.PatientQuery, error) {
	return load[model.PatientQuery](ctx, r, model.KeyPatientQueries)
}

// SubmitQuery records a new query in the submitted state.
func (r *Repository) SubmitQuery(ctx context.Context, req QueryRequest) (model.PatientQuery, error) {
	req.Subject = strings.TrimSpace(req.Subject)
	req.Message = strings.TrimSpace(req.Message)
	if req.Subject == "" || req.Message == "" {
		return model.PatientQuery{}, invalid("Subject and message are required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	p, err := r.patient(ctx, req.PatientID)
	if err != nil {
		return model.PatientQuery{}, err
	}
	if req.PatientName == "" {
		req.PatientName = p.Name
	}
	all, err := r.AllQueries(ctx)
	if err != nil {
		return model.PatientQuery{}, err
	}

	q := model.PatientQuery{
		ID:             nextID(all, queryID, "q%d", len(all)+1),
		PatientID:      req.PatientID,
		PatientName:    req.PatientName,
		Subject:        req.Subject,
		Message:        req.Message,
		SubmissionDate: r.today(),
		Status:         model.QuerySubmitted,
	}
	if err := r.commit(ctx, store.NewBatch().Stage(model.KeyPatientQueries, append(all, q))); err != nil {
		return model.PatientQuery{}, err
	}
	return q, nil
}

// SetQueryInReview moves a submitted query into review.
func (r *Repository) SetQueryInReview(ctx context.Context, id string) (model.PatientQuery, error) {
	return r.mutateQuery(ctx, id, func(q *model.PatientQuery) (bool, error) {
		switch q.Status {
		case model.QueryInReview:
			return false, nil
		case model.QueryResolved:
			return false, badTransition("Query is already resolved")
		}
		q.Status = model.QueryInReview
		return true, nil
	})
}

// RespondToQuery stores the response and resolves the query.
func (r *Repository) RespondToQuery(ctx context.Context, id, response string) (model.PatientQuery, error) {
	response = strings.TrimSpace(response)
	if response == "" {
		return model.PatientQuery{}, invalid("A response is required")
	}
	return r.mutateQuery(ctx, id, func(q *model.PatientQuery) (bool, error) {
		if q.Status == model.QueryResolved && q.Response == response {
			return false, nil
		}
		q.Response = response
		q.Status = model.QueryResolved
		return true, nil
	})
}

func (r *Repository) mutateQuery(ctx context.Context, id string, fn func(*model.PatientQuery) (bool, error)) (model.PatientQuery, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	all, err := r.AllQueries(ctx)
	if err != nil {
		return model.PatientQuery{}, err
	}
	i := indexOf(all, func(q model.PatientQuery) bool { return q.ID == id })
	if i < 0 {
		return model.PatientQuery{}, notFound("Query")
	}
	changed, err := fn(&all[i])
	if err != nil {
		return model.PatientQuery{}, err
	}
	if !changed {
		return all[i], nil
	}
	if err := r.commit(ctx, store.NewBatch().Stage(model.KeyPatientQueries, all)); err != nil {
		return model.PatientQuery{}, err
	}
	return all[i], nil
}

func queryID(q model.PatientQuery) string { return q.ID }
