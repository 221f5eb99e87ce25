package repository

import (
	"context"
	"time"

	"github.com/ariebrainware/hms-portal/model"
	"github.com/ariebrainware/hms-portal/store"
)

// MedicalHistory gathers the records of one patient.
func (r *Repository) MedicalHistory(ctx context.Context, patientID string) (model.MedicalHistory, error) {
	p, err := r.patient(ctx, patientID)
	if err != nil {
		return model.MedicalHistory{}, err
	}
	apps, err := r.PatientAppointments(ctx, patientID)
	if err != nil {
		return model.MedicalHistory{}, err
	}
	tests, err := r.PatientTests(ctx, patientID)
	if err != nil {
		return model.MedicalHistory{}, err
	}
	ps, err := r.PatientPrescriptions(ctx, patientID)
	if err != nil {
		return model.MedicalHistory{}, err
	}
	return model.MedicalHistory{PatientInfo: &p, Appointments: apps, Tests: tests, Prescriptions: ps}, nil
}

// AllDischargeSummaries returns every summary regardless of status.
func (r *Repository) AllDischargeSummaries(ctx context.Context) ([]model.DischargeSummary, error) {
	return load[model.DischargeSummary](ctx, r, model.KeyDischargeSummaries)
}

// PatientDischargeSummaries returns the approved summaries of patientID.
func (r *Repository) PatientDischargeSummaries(ctx context.Context, patientID string) ([]model.DischargeSummary, error) {
	all, err := r.AllDischargeSummaries(ctx)
	if err != nil {
		return nil, err
	}
	return filter(all, func(s model.DischargeSummary) bool {
		return s.PatientID == patientID && s.Status == model.SummaryApproved
	}), nil
}

// GenerateDischargeSummary snapshots the medical history of a patient into a
// summary awaiting approval.
func (r *Repository) GenerateDischargeSummary(ctx context.Context, patientID string) (model.DischargeSummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	h, err := r.MedicalHistory(ctx, patientID)
	if err != nil {
		return model.DischargeSummary{}, err
	}
	all, err := r.AllDischargeSummaries(ctx)
	if err != nil {
		return model.DischargeSummary{}, err
	}

	s := model.DischargeSummary{
		ID:             nextID(all, func(x model.DischargeSummary) string { return x.ID }, "sum%d", len(all)+1),
		PatientID:      patientID,
		PatientName:    h.PatientInfo.Name,
		GenerationDate: r.now().UTC().Format(time.RFC3339),
		Status:         model.SummaryPendingApproval,
		PatientInfo:    &model.PatientInfo{ID: h.PatientInfo.ID, Name: h.PatientInfo.Name, AbhaID: h.PatientInfo.AbhaID},
		Appointments:   h.Appointments,
		Tests:          h.Tests,
		Prescriptions:  h.Prescriptions,
	}
	if err := r.commit(ctx, store.NewBatch().Stage(model.KeyDischargeSummaries, append(all, s))); err != nil {
		return model.DischargeSummary{}, err
	}
	return s, nil
}

// ApproveDischargeSummary approves a summary. Approving twice is a no-op.
func (r *Repository) ApproveDischargeSummary(ctx context.Context, id string) (model.DischargeSummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	all, err := r.AllDischargeSummaries(ctx)
	if err != nil {
		return model.DischargeSummary{}, err
	}
	i := indexOf(all, func(s model.DischargeSummary) bool { return s.ID == id })
	if i < 0 {
		return model.DischargeSummary{}, notFound("Summary")
	}
	if all[i].Status == model.SummaryApproved {
		return all[i], nil
	}
	all[i].Status = model.SummaryApproved
	if err := r.commit(ctx, store.NewBatch().Stage(model.KeyDischargeSummaries, all)); err != nil {
		return model.DischargeSummary{}, err
	}
	return all[i], nil
}
