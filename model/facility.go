package model

// Department is reference data.
type Department struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Doctor is reference data linked to a department.
type Doctor struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	DepartmentID string `json:"departmentId"`
	Specialty    string `json:"specialty"`
}

// RoomType names a bookable room facility.
type RoomType string

const (
	RoomPrivate  RoomType = "Private"
	RoomCombined RoomType = "Combined"
	RoomSuite    RoomType = "Suite"
)

// RoomFacility describes a bookable room type and its nightly rate.
type RoomFacility struct {
	ID            string   `json:"id"`
	Type          RoomType `json:"type"`
	Description   string   `json:"description"`
	Amenities     []string `json:"amenities"`
	ImageURL      string   `json:"imageUrl"`
	PricePerNight float64  `json:"pricePerNight"`
}

// RoomBooking is a stay booked alongside an appointment.
type RoomBooking struct {
	ID        string   `json:"id"`
	PatientID string   `json:"patientId"`
	RoomType  RoomType `json:"roomType"`
	CheckIn   string   `json:"checkIn"`
	CheckOut  string   `json:"checkOut"`
	TotalCost float64  `json:"totalCost"`
}

// ICUBed is an intensive care bed.
type ICUBed struct {
	ID          string `json:"id"`
	RoomNumber  string `json:"roomNumber"`
	RoomType    string `json:"roomType"`
	IsOccupied  bool   `json:"isOccupied"`
	PatientID   string `json:"patientId,omitempty"`
	PatientName string `json:"patientName,omitempty"`
}

// AttendanceRecord is one staff member's day. OutTime is empty until clock-out.
type AttendanceRecord struct {
	ID        string `json:"id"`
	StaffID   string `json:"staffId"`
	StaffName string `json:"staffName"`
	Date      string `json:"date"`
	InTime    string `json:"inTime,omitempty"`
	OutTime   string `json:"outTime,omitempty"`
}

// QueryStatus is the lifecycle state of a patient query.
type QueryStatus string

const (
	QuerySubmitted QueryStatus = "Submitted"
	QueryInReview  QueryStatus = "In Review"
	QueryResolved  QueryStatus = "Resolved"
)

// PatientQuery is a complaint or question raised by a patient.
type PatientQuery struct {
	ID             string      `json:"id"`
	PatientID      string      `json:"patientId"`
	PatientName    string      `json:"patientName"`
	Subject        string      `json:"subject"`
	Message        string      `json:"message"`
	SubmissionDate string      `json:"submissionDate"`
	Status         QueryStatus `json:"status"`
	Response       string      `json:"response,omitempty"`
}

// DashboardStats is the admin dashboard summary.
type DashboardStats struct {
	TotalAppointments int `json:"totalAppointments"`
	TotalTests        int `json:"totalTests"`
	CompletedBills    int `json:"completedBills"`
}

// DoctorWorkload counts scheduled appointments for a doctor.
type DoctorWorkload struct {
	DoctorID     string `json:"doctorId"`
	DoctorName   string `json:"doctorName"`
	PatientCount int    `json:"patientCount"`
}
