package repository

import (
	"context"
	"strings"

	"github.com/ariebrainware/hms-portal/model"
	"github.com/ariebrainware/hms-portal/store"
)

// PatientTests returns the test requests of patientID.
func (r *Repository) PatientTests(ctx context.Context, patientID string) ([]model.TestRequest, error) {
	tests, err := load[model.TestRequest](ctx, r, model.KeyTests)
	if err != nil {
		return nil, err
	}
	return filter(tests, func(t model.TestRequest) bool { return t.PatientID == patientID }), nil
}

// PendingTests returns the pending tests of the given type.
func (r *Repository) PendingTests(ctx context.Context, typ model.TestType) ([]model.TestRequest, error) {
	tests, err := load[model.TestRequest](ctx, r, model.KeyTests)
	if err != nil {
		return nil, err
	}
	return filter(tests, func(t model.TestRequest) bool {
		return t.Type == typ && t.Status == model.TestPending
	}), nil
}

// OrderTests creates one pending request per comma-separated test name for an
// existing patient.
func (r *Repository) OrderTests(ctx context.Context, doctorID, patientID, patientName, names string, typ model.TestType) ([]model.TestRequest, error) {
	if !typ.Valid() {
		return nil, invalid("Test type must be LAB or RADIOLOGY")
	}
	var testNames []string
	for _, n := range strings.Split(names, ",") {
		if n = strings.TrimSpace(n); n != "" {
			testNames = append(testNames, n)
		}
	}
	if len(testNames) == 0 {
		return nil, invalid("At least one test name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	p, err := r.patient(ctx, patientID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(patientName) == "" {
		patientName = p.Name
	}
	tests, err := load[model.TestRequest](ctx, r, model.KeyTests)
	if err != nil {
		return nil, err
	}
	ordered := make([]model.TestRequest, 0, len(testNames))
	for _, name := range testNames {
		t := model.TestRequest{
			ID:          nextID(tests, testID, "test%d", len(tests)+1),
			PatientID:   patientID,
			PatientName: patientName,
			DoctorID:    doctorID,
			TestName:    name,
			Type:        typ,
			Status:      model.TestPending,
			RequestDate: r.today(),
		}
		tests = append(tests, t)
		ordered = append(ordered, t)
	}
	if err := r.commit(ctx, store.NewBatch().Stage(model.KeyTests, tests)); err != nil {
		return nil, err
	}
	return ordered, nil
}

// UpdateTestResult records the result of a pending test.
func (r *Repository) UpdateTestResult(ctx context.Context, id, result, imageURL string) (model.TestRequest, error) {
	if strings.TrimSpace(result) == "" {
		return model.TestRequest{}, invalid("A result is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	tests, err := load[model.TestRequest](ctx, r, model.KeyTests)
	if err != nil {
		return model.TestRequest{}, err
	}
	i := indexOf(tests, func(t model.TestRequest) bool { return t.ID == id })
	if i < 0 {
		return model.TestRequest{}, notFound("Test")
	}
	if tests[i].Status == model.TestCompleted {
		return model.TestRequest{}, badTransition("Test result was already recorded")
	}

	tests[i].Status = model.TestCompleted
	tests[i].Result = result
	tests[i].ResultDate = r.today()
	if imageURL != "" {
		tests[i].ImageURL = imageURL
	}
	if err := r.commit(ctx, store.NewBatch().Stage(model.KeyTests, tests)); err != nil {
		return model.TestRequest{}, err
	}
	return tests[i], nil
}

func testID(t model.TestRequest) string { return t.ID }
