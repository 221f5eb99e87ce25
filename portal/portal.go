// Package portal maps an authenticated role to its portal: base path,
// navigation and the views reachable under it.
package portal

import (
	"strings"

	"github.com/ariebrainware/hms-portal/model"
)

const (
	PatientBase  = "/patient"
	HospitalBase = "/hospital"
)

// NavItem is one sidebar entry.
type NavItem struct {
	Label string `json:"label"`
	Path  string `json:"path"`
	View  string `json:"view"`
}

// Portal describes what one role sees after login.
type Portal struct {
	Role        model.Role `json:"role"`
	Kind        string     `json:"kind"`
	BasePath    string     `json:"basePath"`
	DefaultView string     `json:"defaultView"`
	Nav         []NavItem  `json:"nav"`
}

// Decision is the outcome of resolving a path for a user. Exactly one of
// View and Redirect is set.
type Decision struct {
	View     string  `json:"view,omitempty"`
	Redirect string  `json:"redirect,omitempty"`
	Portal   *Portal `json:"portal,omitempty"`
}

type route struct {
	sub, label, view string
}

var attendance = route{"attendance", "Attendance", "attendance"}

var table = map[model.Role][]route{
	model.RolePatient: {
		{"", "Dashboard", "patient-dashboard"},
		{"appointments", "Appointments", "patient-appointments"},
		{"records", "My Records", "patient-records"},
		{"billing", "Billing", "patient-billing"},
		{"insurance", "Insurance", "patient-insurance"},
		{"rooms", "Rooms", "patient-rooms"},
		{"queries", "Queries", "patient-queries"},
	},
	model.RoleAdmin: {
		{"", "Dashboard", "admin-dashboard"},
		{"staff", "Manage Staff", "manage-staff"},
		{"discharge-summaries", "Discharge Summaries", "discharge-summaries"},
		{"billing", "Billing", "admin-billing"},
		{"queries", "Patient Queries", "patient-queries-admin"},
	},
	model.RoleDoctor: {
		{"", "Dashboard", "doctor-dashboard"},
		{"appointments", "Appointments", "doctor-appointments"},
	},
	model.RoleNurse: {
		{"", "Dashboard", "nurse-dashboard"},
		{"triage", "Triage Queue", "triage-queue"},
	},
	model.RoleLabTechnician: {
		{"", "Lab Requests", "lab-requests"},
	},
	model.RoleRadiologist: {
		{"", "Radiology Queue", "radiology-queue"},
	},
	model.RolePharmacist: {
		{"", "Pharmacy", "pharmacy-queue"},
		{"stock", "Stock", "medication-stock"},
	},
	model.RoleHR: {
		{"", "Staff", "hr-staff"},
		attendance,
	},
	model.RoleFinance: {
		{"", "Financials", "financials"},
		{"billing", "Billing", "finance-billing"},
	},
	model.RoleManager: {
		{"", "Dashboard", "manager-dashboard"},
		{"workload", "Doctor Workload", "doctor-workload"},
		{"icu-beds", "ICU Beds", "icu-beds"},
	},
}

var public = map[string]string{
	"/":                 "landing",
	"/login/patient":    "login-patient",
	"/login/hospital":   "login-hospital",
	"/register/patient": "register-patient",
}

func routesFor(role model.Role) ([]route, bool) {
	routes, ok := table[role]
	if !ok {
		return nil, false
	}
	if role.IsStaff() && !hasSub(routes, attendance.sub) {
		routes = append(routes[:len(routes):len(routes)], attendance)
	}
	return routes, true
}

func hasSub(routes []route, sub string) bool {
	for _, r := range routes {
		if r.sub == sub {
			return true
		}
	}
	return false
}

// For returns the portal of role.
func For(role model.Role) (Portal, bool) {
	routes, ok := routesFor(role)
	if !ok {
		return Portal{}, false
	}
	p := Portal{Role: role, Kind: "hospital", BasePath: HospitalBase}
	if role == model.RolePatient {
		p.Kind, p.BasePath = "patient", PatientBase
	}
	for _, r := range routes {
		path := p.BasePath
		if r.sub != "" {
			path += "/" + r.sub
		}
		p.Nav = append(p.Nav, NavItem{Label: r.label, Path: path, View: r.view})
	}
	p.DefaultView = p.Nav[0].View
	return p, true
}

// Resolve decides what a user gets for path. A nil user is anonymous.
func Resolve(user *model.User, path string) Decision {
	path = clean(path)
	if view, ok := public[path]; ok {
		return Decision{View: view}
	}

	switch {
	case under(path, PatientBase):
		if user == nil || !user.IsPatient() {
			return Decision{Redirect: "/login/patient"}
		}
	case under(path, HospitalBase):
		if user == nil || !user.Role.IsStaff() {
			return Decision{Redirect: "/login/hospital"}
		}
	default:
		return Decision{Redirect: "/"}
	}

	p, ok := For(user.Role)
	if !ok {
		return Decision{Redirect: "/"}
	}
	for _, item := range p.Nav {
		if item.Path == path {
			return Decision{View: item.View, Portal: &p}
		}
	}
	return Decision{Redirect: p.BasePath, Portal: &p}
}

func clean(path string) string {
	path = strings.TrimSpace(path)
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
	}
	if path == "" {
		path = "/"
	}
	return path
}

func under(path, base string) bool {
	return path == base || strings.HasPrefix(path, base+"/")
}
