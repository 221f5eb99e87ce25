package model

import "strings"

// Role is the closed set of user roles known to the portals.
type Role string

const (
	RolePatient       Role = "PATIENT"
	RoleDoctor        Role = "DOCTOR"
	RoleNurse         Role = "NURSE"
	RoleAdmin         Role = "ADMIN"
	RoleLabTechnician Role = "LAB_TECHNICIAN"
	RoleRadiologist   Role = "RADIOLOGIST"
	RoleManager       Role = "MANAGER"
	RoleHR            Role = "HR"
	RoleFinance       Role = "FINANCE"
	RolePharmacist    Role = "PHARMACIST"
)

// Roles lists every role in display order.
var Roles = []Role{
	RolePatient,
	RoleDoctor,
	RoleNurse,
	RoleAdmin,
	RoleLabTechnician,
	RoleRadiologist,
	RoleManager,
	RoleHR,
	RoleFinance,
	RolePharmacist,
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	for _, known := range Roles {
		if r == known {
			return true
		}
	}
	return false
}

// IsStaff reports whether r is a hospital staff role.
func (r Role) IsStaff() bool {
	return r.Valid() && r != RolePatient
}

// IDPrefix returns the prefix used for generated staff ids, e.g. "d" for doctors.
// Pharmacists use "ph" to stay apart from patients.
func (r Role) IDPrefix() string {
	switch r {
	case RolePharmacist:
		return "ph"
	case RolePatient:
		return "p"
	case "":
		return "s"
	}
	return strings.ToLower(string(r[:1]))
}
