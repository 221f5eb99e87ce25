package model

// Address is a postal address of a patient.
type Address struct {
	Line1   string `json:"line1"`
	City    string `json:"city"`
	State   string `json:"state"`
	Pincode string `json:"pincode"`
}

// EmergencyContact is the person to call for a patient.
type EmergencyContact struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// User is an identity record. Patients carry AbhaID (national health id) and
// Aadhaar (national id number); staff carry neither.
type User struct {
	ID               string            `json:"id"`
	Name             string            `json:"name"`
	Role             Role              `json:"role"`
	AbhaID           string            `json:"abhaId,omitempty"`
	Aadhaar          string            `json:"aadhaar,omitempty"`
	Department       string            `json:"department,omitempty"`
	Gender           string            `json:"gender,omitempty"`
	DOB              string            `json:"dob,omitempty"`
	BloodGroup       string            `json:"bloodGroup,omitempty"`
	MaritalStatus    string            `json:"maritalStatus,omitempty"`
	ContactNumber    string            `json:"contactNumber,omitempty"`
	Email            string            `json:"email,omitempty"`
	Address          *Address          `json:"address,omitempty"`
	EmergencyContact *EmergencyContact `json:"emergencyContact,omitempty"`
}

// IsPatient reports whether the user holds the patient role.
func (u User) IsPatient() bool {
	return u.Role == RolePatient
}

// Credentials maps a login identifier to its stored secret. Patients log in
// with their AbhaID, staff with their user id.
type Credentials map[string]string
