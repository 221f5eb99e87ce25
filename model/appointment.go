package model

// AppointmentStatus is the lifecycle state of an appointment.
type AppointmentStatus string

const (
	AppointmentPendingTriage AppointmentStatus = "Pending Triage"
	AppointmentScheduled     AppointmentStatus = "Scheduled"
	AppointmentCompleted     AppointmentStatus = "Completed"
	AppointmentCancelled     AppointmentStatus = "Cancelled"
)

// CanTransition reports whether an appointment may move from s to next.
// Pending triage only moves to scheduled; scheduled moves to a terminal state.
func (s AppointmentStatus) CanTransition(next AppointmentStatus) bool {
	switch s {
	case AppointmentPendingTriage:
		return next == AppointmentScheduled
	case AppointmentScheduled:
		return next == AppointmentCompleted || next == AppointmentCancelled
	}
	return false
}

// Terminal reports whether no further transition is possible.
func (s AppointmentStatus) Terminal() bool {
	return s == AppointmentCompleted || s == AppointmentCancelled
}

// Vitals recorded by a nurse during triage.
type Vitals struct {
	BloodPressure   string `json:"bloodPressure"`
	Temperature     string `json:"temperature"`
	HeartRate       string `json:"heartRate"`
	RespiratoryRate string `json:"respiratoryRate"`
}

// Allergies recorded during triage.
type Allergies struct {
	Food       string `json:"food"`
	Medication string `json:"medication"`
}

// TriageInfo is the nurse snapshot attached to an appointment before a doctor is assigned.
type TriageInfo struct {
	Vitals             Vitals    `json:"vitals"`
	Allergies          Allergies `json:"allergies"`
	CurrentMedications string    `json:"currentMedications"`
	TriageNotes        string    `json:"triageNotes"`
}

// Appointment is a scheduled encounter. DepartmentName is denormalized.
type Appointment struct {
	ID             string            `json:"id"`
	PatientID      string            `json:"patientId"`
	PatientName    string            `json:"patientName"`
	DoctorID       string            `json:"doctorId,omitempty"`
	DoctorName     string            `json:"doctorName,omitempty"`
	DepartmentName string            `json:"departmentName"`
	Date           string            `json:"date"`
	Time           string            `json:"time"`
	Status         AppointmentStatus `json:"status"`
	Notes          string            `json:"notes,omitempty"`
	TriageData     *TriageInfo       `json:"triageData,omitempty"`
}
