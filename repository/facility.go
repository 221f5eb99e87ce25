package repository

import (
	"context"

	"github.com/ariebrainware/hms-portal/model"
	"github.com/ariebrainware/hms-portal/store"
)

// Departments returns every department.
func (r *Repository) Departments(ctx context.Context) ([]model.Department, error) {
	return load[model.Department](ctx, r, model.KeyDepartments)
}

// Doctors returns every doctor.
func (r *Repository) Doctors(ctx context.Context) ([]model.Doctor, error) {
	return load[model.Doctor](ctx, r, model.KeyDoctors)
}

// DoctorsByDepartment returns the doctors attached to depID.
func (r *Repository) DoctorsByDepartment(ctx context.Context, depID string) ([]model.Doctor, error) {
	doctors, err := r.Doctors(ctx)
	if err != nil {
		return nil, err
	}
	return filter(doctors, func(d model.Doctor) bool { return d.DepartmentID == depID }), nil
}

// RoomFacilities returns the bookable room types.
func (r *Repository) RoomFacilities(ctx context.Context) ([]model.RoomFacility, error) {
	return load[model.RoomFacility](ctx, r, model.KeyRoomFacilities)
}

// ICUBeds returns every ICU bed with its occupancy.
func (r *Repository) ICUBeds(ctx context.Context) ([]model.ICUBed, error) {
	return load[model.ICUBed](ctx, r, model.KeyICUBeds)
}

// AssignICUBed marks a free bed as occupied by patientID.
func (r *Repository) AssignICUBed(ctx context.Context, bedID, patientID string) (model.ICUBed, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, err := r.patient(ctx, patientID)
	if err != nil {
		return model.ICUBed{}, err
	}
	beds, err := r.ICUBeds(ctx)
	if err != nil {
		return model.ICUBed{}, err
	}
	i := indexOf(beds, func(b model.ICUBed) bool { return b.ID == bedID })
	if i < 0 {
		return model.ICUBed{}, notFound("ICU bed")
	}
	if beds[i].IsOccupied {
		return model.ICUBed{}, badTransition("ICU bed is already occupied")
	}

	beds[i].IsOccupied = true
	beds[i].PatientID = p.ID
	beds[i].PatientName = p.Name
	if err := r.commit(ctx, store.NewBatch().Stage(model.KeyICUBeds, beds)); err != nil {
		return model.ICUBed{}, err
	}
	return beds[i], nil
}

// ReleaseICUBed frees a bed. Releasing a free bed is a no-op.
func (r *Repository) ReleaseICUBed(ctx context.Context, bedID string) (model.ICUBed, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	beds, err := r.ICUBeds(ctx)
	if err != nil {
		return model.ICUBed{}, err
	}
	i := indexOf(beds, func(b model.ICUBed) bool { return b.ID == bedID })
	if i < 0 {
		return model.ICUBed{}, notFound("ICU bed")
	}
	if !beds[i].IsOccupied {
		return beds[i], nil
	}

	beds[i].IsOccupied = false
	beds[i].PatientID = ""
	beds[i].PatientName = ""
	if err := r.commit(ctx, store.NewBatch().Stage(model.KeyICUBeds, beds)); err != nil {
		return model.ICUBed{}, err
	}
	return beds[i], nil
}
