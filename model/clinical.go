package model

// TestType distinguishes lab orders from radiology orders.
type TestType string

const (
	TestLab       TestType = "LAB"
	TestRadiology TestType = "RADIOLOGY"
)

// Valid reports whether t is a known test type.
func (t TestType) Valid() bool {
	return t == TestLab || t == TestRadiology
}

// TestStatus is the lifecycle state of a test request.
type TestStatus string

const (
	TestPending   TestStatus = "Pending"
	TestCompleted TestStatus = "Completed"
)

// TestRequest is a lab or radiology order.
type TestRequest struct {
	ID          string     `json:"id"`
	PatientID   string     `json:"patientId"`
	PatientName string     `json:"patientName"`
	DoctorID    string     `json:"doctorId"`
	TestName    string     `json:"testName"`
	Type        TestType   `json:"type"`
	Status      TestStatus `json:"status"`
	Result      string     `json:"result,omitempty"`
	ResultDate  string     `json:"resultDate,omitempty"`
	RequestDate string     `json:"requestDate"`
	ImageURL    string     `json:"imageUrl,omitempty"`
}

// PrescriptionStatus is the lifecycle state of a prescription.
type PrescriptionStatus string

const (
	PrescriptionPending   PrescriptionStatus = "Pending"
	PrescriptionDispensed PrescriptionStatus = "Dispensed"
)

// Prescription is a medication order. Price is set when dispensed.
type Prescription struct {
	ID            string             `json:"id"`
	PatientID     string             `json:"patientId"`
	PatientName   string             `json:"patientName"`
	PatientAbhaID string             `json:"patientAbhaId"`
	DoctorID      string             `json:"doctorId"`
	DoctorName    string             `json:"doctorName"`
	Date          string             `json:"date"`
	Medication    string             `json:"medication"`
	Dosage        string             `json:"dosage"`
	Instructions  string             `json:"instructions"`
	Quantity      int                `json:"quantity"`
	Price         *float64           `json:"price,omitempty"`
	Status        PrescriptionStatus `json:"status"`
}

// SummaryStatus is the approval state of a discharge summary.
type SummaryStatus string

const (
	SummaryPendingApproval SummaryStatus = "Pending Approval"
	SummaryApproved        SummaryStatus = "Approved"
)

// PatientInfo is the identity block embedded in a discharge summary.
type PatientInfo struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	AbhaID string `json:"abhaId,omitempty"`
}

// DischargeSummary is a point-in-time copy of a patient's history.
type DischargeSummary struct {
	ID             string         `json:"id"`
	PatientID      string         `json:"patientId"`
	PatientName    string         `json:"patientName"`
	GenerationDate string         `json:"generationDate"`
	Status         SummaryStatus  `json:"status"`
	PatientInfo    *PatientInfo   `json:"patientInfo"`
	Appointments   []Appointment  `json:"appointments"`
	Tests          []TestRequest  `json:"tests"`
	Prescriptions  []Prescription `json:"prescriptions"`
}

// MedicalHistory aggregates a patient's records for a doctor.
type MedicalHistory struct {
	PatientInfo   *User          `json:"patientInfo"`
	Appointments  []Appointment  `json:"appointments"`
	Tests         []TestRequest  `json:"tests"`
	Prescriptions []Prescription `json:"prescriptions"`
}
