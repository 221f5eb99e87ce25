package repository

import (
	"context"

	"github.com/ariebrainware/hms-portal/model"
	"github.com/ariebrainware/hms-portal/store"
)

// Attendance returns every attendance record.
func (r *Repository) Attendance(ctx context.Context) ([]model.AttendanceRecord, error) {
	return load[model.AttendanceRecord](ctx, r, model.KeyAttendance)
}

// TodaysAttendance returns the record of staffID for today, if any.
func (r *Repository) TodaysAttendance(ctx context.Context, staffID string) (*model.AttendanceRecord, error) {
	all, err := r.Attendance(ctx)
	if err != nil {
		return nil, err
	}
	today := r.today()
	i := indexOf(all, func(a model.AttendanceRecord) bool { return a.StaffID == staffID && a.Date == today })
	if i < 0 {
		return nil, nil
	}
	return &all[i], nil
}

// ClockIn opens today's record for a staff member. A second clock-in on the
// same day returns the existing record.
func (r *Repository) ClockIn(ctx context.Context, staffID string) (model.AttendanceRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	all, err := r.Attendance(ctx)
	if err != nil {
		return model.AttendanceRecord{}, err
	}
	today := r.today()
	if i := indexOf(all, func(a model.AttendanceRecord) bool { return a.StaffID == staffID && a.Date == today }); i >= 0 {
		return all[i], nil
	}

	users, err := load[model.User](ctx, r, model.KeyUsers)
	if err != nil {
		return model.AttendanceRecord{}, err
	}
	u, ok := r.findUser(users, staffID)
	if !ok || u.IsPatient() {
		return model.AttendanceRecord{}, notFound("Staff member")
	}

	rec := model.AttendanceRecord{
		ID:        nextID(all, func(a model.AttendanceRecord) string { return a.ID }, "att%d", len(all)+1),
		StaffID:   staffID,
		StaffName: u.Name,
		Date:      today,
		InTime:    r.clockTime(),
	}
	if err := r.commit(ctx, store.NewBatch().Stage(model.KeyAttendance, append(all, rec))); err != nil {
		return model.AttendanceRecord{}, err
	}
	return rec, nil
}

// ClockOut closes today's record. A record that is already closed is
// returned unchanged.
func (r *Repository) ClockOut(ctx context.Context, staffID string) (model.AttendanceRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	all, err := r.Attendance(ctx)
	if err != nil {
		return model.AttendanceRecord{}, err
	}
	today := r.today()
	i := indexOf(all, func(a model.AttendanceRecord) bool { return a.StaffID == staffID && a.Date == today })
	if i < 0 {
		return model.AttendanceRecord{}, &Error{Kind: ErrNotFound, Msg: "Cannot clock out. No clock-in record found for today."}
	}
	if all[i].OutTime != "" {
		return all[i], nil
	}

	all[i].OutTime = r.clockTime()
	if err := r.commit(ctx, store.NewBatch().Stage(model.KeyAttendance, all)); err != nil {
		return model.AttendanceRecord{}, err
	}
	return all[i], nil
}
