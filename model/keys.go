package model

// Collection keys of the persisted state. Every key holds a JSON array,
// except KeyPasswords (JSON object) and KeyInitialized (boolean sentinel).
const (
	KeyUsers              = "hms_users"
	KeyPasswords          = "hms_passwords"
	KeyDepartments        = "hms_departments"
	KeyDoctors            = "hms_doctors"
	KeyAppointments       = "hms_appointments"
	KeyTests              = "hms_tests"
	KeyPrescriptions      = "hms_prescriptions"
	KeyBills              = "hms_bills"
	KeyInsuranceDetails   = "hms_insurance_details"
	KeyDischargeSummaries = "hms_discharge_summaries"
	KeyICUBeds            = "hms_icu_beds"
	KeyAttendance         = "hms_attendance"
	KeyMedicationStock    = "hms_med_stock"
	KeyRoomFacilities     = "hms_room_facilities"
	KeyPatientQueries     = "hms_patient_queries"
	KeyRoomBookings       = "hms_room_bookings"
	KeyInitialized        = "hms_initialized"
)

// CollectionKeys lists every collection key, sentinel excluded.
var CollectionKeys = []string{
	KeyUsers,
	KeyPasswords,
	KeyDepartments,
	KeyDoctors,
	KeyAppointments,
	KeyTests,
	KeyPrescriptions,
	KeyBills,
	KeyInsuranceDetails,
	KeyDischargeSummaries,
	KeyICUBeds,
	KeyAttendance,
	KeyMedicationStock,
	KeyRoomFacilities,
	KeyPatientQueries,
	KeyRoomBookings,
}

// SessionKeyPrefix prefixes persisted login sessions.
const SessionKeyPrefix = "session:"
