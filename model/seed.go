package model

import "time"

// DateLayout is the calendar date format used across records.
const DateLayout = "2006-01-02"

// SeedData returns the default records written on first initialization.
// Records dated "today" use the supplied time. Seeded secrets are legacy
// plaintext values and are re-hashed on first successful login.
func SeedData(now time.Time) map[string]any {
	today := now.Format(DateLayout)
	price := 15.00

	return map[string]any{
		KeyUsers: []User{
			{
				ID: "p001", Name: "John Doe", Role: RolePatient,
				AbhaID: "1234-5678-9012", Aadhaar: "111122223333",
				Gender: "Male", DOB: "1985-05-20", BloodGroup: "O+", MaritalStatus: "Married",
				ContactNumber: "9876543210", Email: "john.doe@email.com",
				Address:          &Address{Line1: "123 Health St", City: "Wellville", State: "Careland", Pincode: "12345"},
				EmergencyContact: &EmergencyContact{Name: "Jane Doe", Phone: "9876543211"},
			},
			{
				ID: "p002", Name: "Jane Smith", Role: RolePatient,
				AbhaID: "9876-5432-1098", Aadhaar: "444455556666",
				Gender: "Female", DOB: "1990-09-15", BloodGroup: "A-", MaritalStatus: "Single",
				ContactNumber: "8765432109", Email: "jane.smith@email.com",
				Address:          &Address{Line1: "456 Cure Ave", City: "Healburg", State: "Careland", Pincode: "54321"},
				EmergencyContact: &EmergencyContact{Name: "John Smith", Phone: "8765432100"},
			},
			{ID: "a001", Name: "Admin User", Role: RoleAdmin},
			{ID: "m001", Name: "Manager Mike", Role: RoleManager},
			{ID: "h001", Name: "HR Helen", Role: RoleHR},
			{ID: "f001", Name: "Finance Frank", Role: RoleFinance},
			{ID: "d001", Name: "Dr. Emily Carter", Role: RoleDoctor, Department: "Cardiology"},
			{ID: "d002", Name: "Dr. Ben Hanson", Role: RoleDoctor, Department: "Orthopedics"},
			{ID: "n001", Name: "Nurse Nancy", Role: RoleNurse, Department: "Cardiology"},
			{ID: "l001", Name: "Lab Larry", Role: RoleLabTechnician},
			{ID: "r001", Name: "Radiology Ray", Role: RoleRadiologist},
			{ID: "ph001", Name: "Pharmacist Phil", Role: RolePharmacist},
		},
		KeyPasswords: Credentials{
			"1234-5678-9012": "password123",
			"9876-5432-1098": "password123",
			"a001":           "password",
			"m001":           "password",
			"h001":           "password",
			"f001":           "password",
			"d001":           "password",
			"d002":           "password",
			"n001":           "password",
			"l001":           "password",
			"r001":           "password",
			"ph001":          "password",
		},
		KeyDepartments: []Department{
			{ID: "dep01", Name: "Cardiology"},
			{ID: "dep02", Name: "Orthopedics"},
			{ID: "dep03", Name: "General Medicine"},
		},
		KeyDoctors: []Doctor{
			{ID: "d001", Name: "Dr. Emily Carter", DepartmentID: "dep01", Specialty: "Cardiology"},
			{ID: "d002", Name: "Dr. Ben Hanson", DepartmentID: "dep02", Specialty: "Orthopedics"},
		},
		KeyAppointments: []Appointment{
			{ID: "app01", PatientID: "p001", PatientName: "John Doe", DoctorID: "d001", DoctorName: "Dr. Emily Carter", DepartmentName: "Cardiology", Date: "2024-08-15", Time: "10:00", Status: AppointmentCompleted, Notes: "Patient recovering well. Follow up in 6 months."},
			{ID: "app02", PatientID: "p002", PatientName: "Jane Smith", DoctorID: "d002", DoctorName: "Dr. Ben Hanson", DepartmentName: "Orthopedics", Date: today, Time: "11:00", Status: AppointmentScheduled},
			{ID: "app03", PatientID: "p001", PatientName: "John Doe", DepartmentName: "General Medicine", Date: "2024-08-10", Time: "09:00", Status: AppointmentPendingTriage},
		},
		KeyTests: []TestRequest{
			{ID: "test01", PatientID: "p001", PatientName: "John Doe", DoctorID: "d001", TestName: "ECG", Type: TestRadiology, Status: TestCompleted, Result: "Normal sinus rhythm.", RequestDate: "2024-08-15"},
			{ID: "test02", PatientID: "p002", PatientName: "Jane Smith", DoctorID: "d002", TestName: "X-Ray Left Knee", Type: TestRadiology, Status: TestPending, RequestDate: "2024-08-20"},
			{ID: "test03", PatientID: "p001", PatientName: "John Doe", DoctorID: "d001", TestName: "Lipid Panel", Type: TestLab, Status: TestPending, RequestDate: "2024-08-21"},
		},
		KeyPrescriptions: []Prescription{
			{ID: "presc01", PatientID: "p001", PatientName: "John Doe", PatientAbhaID: "1234-5678-9012", DoctorID: "d001", DoctorName: "Dr. Emily Carter", Date: "2024-08-15", Medication: "Aspirin", Dosage: "81mg daily", Instructions: "Take one tablet daily with food.", Quantity: 30, Status: PrescriptionDispensed, Price: &price},
			{ID: "presc02", PatientID: "p002", PatientName: "Jane Smith", PatientAbhaID: "9876-5432-1098", DoctorID: "d002", DoctorName: "Dr. Ben Hanson", Date: today, Medication: "Ibuprofen", Dosage: "200mg as needed for pain", Instructions: "Max 4 per day.", Quantity: 20, Status: PrescriptionPending},
		},
		KeyBills: []Bill{
			{ID: "bill01", PatientID: "p001", PatientName: "John Doe", Date: "2024-08-15", Amount: 150.00, Details: "Cardiology Consultation", Status: BillPaid},
			{ID: "bill02", PatientID: "p002", PatientName: "Jane Smith", Date: "2024-08-20", Amount: 250.00, Details: "Orthopedics Visit & X-Ray", Status: BillUnpaid},
		},
		KeyInsuranceDetails:   []InsuranceDetails{},
		KeyDischargeSummaries: []DischargeSummary{},
		KeyICUBeds: []ICUBed{
			{ID: "icu01", RoomNumber: "101-A", RoomType: "Private", IsOccupied: true, PatientID: "p002", PatientName: "Jane Smith"},
			{ID: "icu02", RoomNumber: "101-B", RoomType: "Private"},
			{ID: "icu03", RoomNumber: "102", RoomType: "Semi-Private"},
		},
		KeyAttendance: []AttendanceRecord{
			{ID: "att01", StaffID: "d001", StaffName: "Dr. Emily Carter", Date: today, InTime: "08:55", OutTime: "17:05"},
			{ID: "att02", StaffID: "n001", StaffName: "Nurse Nancy", Date: today, InTime: "08:00"},
		},
		KeyMedicationStock: []MedicationStock{
			{ID: "med01", Name: "Aspirin", CostPrice: 0.10, SellingPrice: 0.50, Quantity: 1000},
			{ID: "med02", Name: "Ibuprofen", CostPrice: 0.15, SellingPrice: 0.75, Quantity: 800},
		},
		KeyRoomFacilities: []RoomFacility{
			{
				ID: "room01", Type: RoomPrivate,
				Description:   "A personal room for maximum comfort and privacy.",
				Amenities:     []string{"Private Bathroom", "Television", "Wi-Fi", "Sofa for guests"},
				ImageURL:      "https://images.unsplash.com/photo-1596522354195-e84ae3c4b5b2",
				PricePerNight: 500,
			},
			{
				ID: "room02", Type: RoomCombined,
				Description:   "A shared room with modern amenities, suitable for two patients.",
				Amenities:     []string{"Shared Bathroom", "Television per bed", "Wi-Fi"},
				ImageURL:      "https://images.unsplash.com/photo-1522771739844-6a9f6d5f14aa",
				PricePerNight: 250,
			},
			{
				ID: "room03", Type: RoomSuite,
				Description:   "A luxurious suite with a separate area for family and guests.",
				Amenities:     []string{"Private Bathroom with Bathtub", "Large Screen TV", "High-speed Wi-Fi", "Kitchenette", "Living Area"},
				ImageURL:      "https://images.unsplash.com/photo-1578683010236-d716f9a3f461",
				PricePerNight: 1200,
			},
		},
		KeyPatientQueries: []PatientQuery{},
		KeyRoomBookings:   []RoomBooking{},
	}
}
