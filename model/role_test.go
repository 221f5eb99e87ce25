package model

import "testing"

func TestRoleValidAndStaff(t *testing.T) {
	for _, r := range Roles {
		if !r.Valid() {
			t.Fatalf("expected %s to be valid", r)
		}
		if r.IsStaff() == (r == RolePatient) {
			t.Fatalf("unexpected IsStaff for %s", r)
		}
	}
	if Role("JANITOR").Valid() || Role("JANITOR").IsStaff() {
		t.Fatal("unknown role must be neither valid nor staff")
	}
}

func TestRoleIDPrefix(t *testing.T) {
	tests := map[Role]string{
		RoleDoctor:        "d",
		RoleNurse:         "n",
		RoleAdmin:         "a",
		RoleLabTechnician: "l",
		RoleRadiologist:   "r",
		RoleManager:       "m",
		RoleHR:            "h",
		RoleFinance:       "f",
		RolePharmacist:    "ph",
		RolePatient:       "p",
	}
	for role, want := range tests {
		if got := role.IDPrefix(); got != want {
			t.Errorf("%s.IDPrefix() = %q, want %q", role, got, want)
		}
	}
}
