package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ariebrainware/hms-portal/model"
	"github.com/ariebrainware/hms-portal/store"
)

// AppointmentRequest is a patient's booking form.
type AppointmentRequest struct {
	PatientID      string `json:"patientId"`
	PatientName    string `json:"patientName"`
	DepartmentName string `json:"departmentName"`
	Date           string `json:"date"`
	Time           string `json:"time"`
	Notes          string `json:"notes"`
}

// RoomRequest optionally accompanies a booking.
type RoomRequest struct {
	RoomType model.RoomType `json:"roomType"`
	CheckIn  string         `json:"checkIn"`
	CheckOut string         `json:"checkOut"`
}

// BookingResult reports every record a booking produced.
type BookingResult struct {
	Appointment model.Appointment  `json:"appointment"`
	RoomBooking *model.RoomBooking `json:"roomBooking,omitempty"`
	Bill        *model.Bill        `json:"bill,omitempty"`
}

// AppointmentUpdate is a doctor's change to an appointment. Empty fields are
// left untouched.
type AppointmentUpdate struct {
	Status model.AppointmentStatus `json:"status"`
	Notes  string                  `json:"notes"`
	// DoctorID, when set, limits the update to that doctor's appointments.
	DoctorID string `json:"-"`
}

// PatientAppointments returns the appointments of patientID.
func (r *Repository) PatientAppointments(ctx context.Context, patientID string) ([]model.Appointment, error) {
	apps, err := load[model.Appointment](ctx, r, model.KeyAppointments)
	if err != nil {
		return nil, err
	}
	return filter(apps, func(a model.Appointment) bool { return a.PatientID == patientID }), nil
}

// DoctorAppointments returns the appointments assigned to doctorID.
func (r *Repository) DoctorAppointments(ctx context.Context, doctorID string) ([]model.Appointment, error) {
	apps, err := load[model.Appointment](ctx, r, model.KeyAppointments)
	if err != nil {
		return nil, err
	}
	return filter(apps, func(a model.Appointment) bool { return a.DoctorID == doctorID }), nil
}

// TriageQueue returns the appointments awaiting triage.
func (r *Repository) TriageQueue(ctx context.Context) ([]model.Appointment, error) {
	apps, err := load[model.Appointment](ctx, r, model.KeyAppointments)
	if err != nil {
		return nil, err
	}
	return filter(apps, func(a model.Appointment) bool { return a.Status == model.AppointmentPendingTriage }), nil
}

// BookAppointment creates a pending-triage appointment. With a room request
// for a known room type and a positive stay, a room booking and its unpaid
// bill are created as well. Every record is committed in one batch.
func (r *Repository) BookAppointment(ctx context.Context, req AppointmentRequest, room *RoomRequest) (BookingResult, error) {
	if req.PatientID == "" || req.DepartmentName == "" || req.Date == "" {
		return BookingResult{}, invalid("Patient, department and date are required")
	}
	var nights int
	if room != nil {
		in, errIn := time.Parse(model.DateLayout, room.CheckIn)
		out, errOut := time.Parse(model.DateLayout, room.CheckOut)
		if errIn != nil || errOut != nil {
			return BookingResult{}, invalid("Check-in and check-out must be dates in YYYY-MM-DD form")
		}
		nights = int(out.Sub(in).Hours() / 24)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	p, err := r.patient(ctx, req.PatientID)
	if err != nil {
		return BookingResult{}, err
	}
	if req.PatientName == "" {
		req.PatientName = p.Name
	}
	apps, err := load[model.Appointment](ctx, r, model.KeyAppointments)
	if err != nil {
		return BookingResult{}, err
	}

	app := model.Appointment{
		ID:             nextID(apps, appointmentID, "app%d", len(apps)+1),
		PatientID:      req.PatientID,
		PatientName:    req.PatientName,
		DepartmentName: req.DepartmentName,
		Date:           req.Date,
		Time:           req.Time,
		Status:         model.AppointmentPendingTriage,
		Notes:          req.Notes,
	}
	res := BookingResult{Appointment: app}
	b := store.NewBatch().Stage(model.KeyAppointments, append(apps, app))

	if room != nil {
		booking, bill, err := r.stageRoomBooking(ctx, b, p.ID, p.Name, *room, nights)
		if err != nil {
			return BookingResult{}, err
		}
		res.RoomBooking, res.Bill = booking, bill
	}

	if err := r.commit(ctx, b); err != nil {
		return BookingResult{}, err
	}
	return res, nil
}

// stageRoomBooking adds the booking and bill collections to b when the stay
// has a positive cost. It stages nothing otherwise.
func (r *Repository) stageRoomBooking(ctx context.Context, b *store.Batch, patientID, patientName string, room RoomRequest, nights int) (*model.RoomBooking, *model.Bill, error) {
	rooms, err := r.RoomFacilities(ctx)
	if err != nil {
		return nil, nil, err
	}
	i := indexOf(rooms, func(f model.RoomFacility) bool { return f.Type == room.RoomType })
	if i < 0 {
		r.log.Warn().Str("room_type", string(room.RoomType)).Msg("unknown room type, skipping room booking")
		return nil, nil, nil
	}
	cost := roundCents(float64(nights) * rooms[i].PricePerNight)
	if cost <= 0 {
		r.log.Warn().Int("nights", nights).Str("patient_id", patientID).Msg("room stay has no positive cost, skipping room booking")
		return nil, nil, nil
	}

	bookings, err := load[model.RoomBooking](ctx, r, model.KeyRoomBookings)
	if err != nil {
		return nil, nil, err
	}
	bills, err := load[model.Bill](ctx, r, model.KeyBills)
	if err != nil {
		return nil, nil, err
	}

	booking := model.RoomBooking{
		ID:        nextID(bookings, func(x model.RoomBooking) string { return x.ID }, "book%d", len(bookings)+1),
		PatientID: patientID,
		RoomType:  room.RoomType,
		CheckIn:   room.CheckIn,
		CheckOut:  room.CheckOut,
		TotalCost: cost,
	}
	bill := r.newBill(bills, patientID, patientName, cost,
		fmt.Sprintf("Room Booking: %s (%s to %s)", room.RoomType, room.CheckIn, room.CheckOut))

	b.Stage(model.KeyRoomBookings, append(bookings, booking)).
		Stage(model.KeyBills, append(bills, bill))
	return &booking, &bill, nil
}

// UpdateAppointment completes or cancels a scheduled appointment and appends
// dated notes.
func (r *Repository) UpdateAppointment(ctx context.Context, id string, upd AppointmentUpdate) (model.Appointment, error) {
	if upd.Status != "" && upd.Status != model.AppointmentCompleted && upd.Status != model.AppointmentCancelled {
		return model.Appointment{}, invalid("Status must be Completed or Cancelled")
	}
	notes := strings.TrimSpace(upd.Notes)

	r.mu.Lock()
	defer r.mu.Unlock()

	apps, err := load[model.Appointment](ctx, r, model.KeyAppointments)
	if err != nil {
		return model.Appointment{}, err
	}
	i := indexOf(apps, func(a model.Appointment) bool { return a.ID == id })
	if i < 0 {
		return model.Appointment{}, notFound("Appointment")
	}
	app := apps[i]
	if upd.DoctorID != "" && app.DoctorID != upd.DoctorID {
		return model.Appointment{}, notFound("Appointment")
	}
	if upd.Status != "" && !app.Status.CanTransition(upd.Status) {
		return model.Appointment{}, badTransition(fmt.Sprintf("Cannot change appointment from %s to %s", app.Status, upd.Status))
	}
	if upd.Status == "" && notes == "" {
		return app, nil
	}

	if upd.Status != "" {
		app.Status = upd.Status
	}
	if notes != "" {
		entry := r.today() + ": " + notes
		if app.Notes == "" {
			app.Notes = entry
		} else {
			app.Notes += "\n" + entry
		}
	}
	apps[i] = app
	if err := r.commit(ctx, store.NewBatch().Stage(model.KeyAppointments, apps)); err != nil {
		return model.Appointment{}, err
	}
	return app, nil
}

// SubmitTriage attaches triage data, assigns a doctor and schedules the
// appointment.
func (r *Repository) SubmitTriage(ctx context.Context, appID, doctorID, doctorName string, info model.TriageInfo) (model.Appointment, error) {
	if doctorID == "" {
		return model.Appointment{}, invalid("A doctor must be assigned")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	apps, err := load[model.Appointment](ctx, r, model.KeyAppointments)
	if err != nil {
		return model.Appointment{}, err
	}
	i := indexOf(apps, func(a model.Appointment) bool { return a.ID == appID })
	if i < 0 {
		return model.Appointment{}, notFound("Appointment")
	}
	if !apps[i].Status.CanTransition(model.AppointmentScheduled) {
		return model.Appointment{}, badTransition("Appointment is not awaiting triage")
	}
	name, err := r.doctorName(ctx, doctorID)
	if err != nil {
		return model.Appointment{}, err
	}
	if strings.TrimSpace(doctorName) == "" {
		doctorName = name
	}

	apps[i].Status = model.AppointmentScheduled
	apps[i].DoctorID = doctorID
	apps[i].DoctorName = doctorName
	apps[i].TriageData = &info
	if err := r.commit(ctx, store.NewBatch().Stage(model.KeyAppointments, apps)); err != nil {
		return model.Appointment{}, err
	}
	return apps[i], nil
}

// doctorName resolves a doctor from the doctors collection, falling back to
// doctor accounts created as staff.
func (r *Repository) doctorName(ctx context.Context, id string) (string, error) {
	doctors, err := r.Doctors(ctx)
	if err != nil {
		return "", err
	}
	for _, d := range doctors {
		if d.ID == id {
			return d.Name, nil
		}
	}
	users, err := load[model.User](ctx, r, model.KeyUsers)
	if err != nil {
		return "", err
	}
	if u, ok := r.findUser(users, id); ok && u.Role == model.RoleDoctor {
		return u.Name, nil
	}
	return "", notFound("Doctor")
}

// DoctorWorkload counts scheduled appointments per doctor in first-seen order.
func (r *Repository) DoctorWorkload(ctx context.Context) ([]model.DoctorWorkload, error) {
	apps, err := load[model.Appointment](ctx, r, model.KeyAppointments)
	if err != nil {
		return nil, err
	}
	doctors, err := r.Doctors(ctx)
	if err != nil {
		return nil, err
	}

	out := []model.DoctorWorkload{}
	pos := map[string]int{}
	for _, a := range apps {
		if a.Status != model.AppointmentScheduled || a.DoctorID == "" {
			continue
		}
		if i, ok := pos[a.DoctorID]; ok {
			out[i].PatientCount++
			continue
		}
		name := "Unknown Doctor"
		if j := indexOf(doctors, func(d model.Doctor) bool { return d.ID == a.DoctorID }); j >= 0 {
			name = doctors[j].Name
		}
		pos[a.DoctorID] = len(out)
		out = append(out, model.DoctorWorkload{DoctorID: a.DoctorID, DoctorName: name, PatientCount: 1})
	}
	return out, nil
}

func appointmentID(a model.Appointment) string { return a.ID }
