package repository

import (
	"context"
	"strings"

	"github.com/ariebrainware/hms-portal/model"
	"github.com/ariebrainware/hms-portal/store"
)

// PatientRequest carries the registration form of a new patient.
type PatientRequest struct {
	Name             string                  `json:"name"`
	AbhaID           string                  `json:"abhaId"`
	Aadhaar          string                  `json:"aadhaar"`
	Gender           string                  `json:"gender"`
	DOB              string                  `json:"dob"`
	BloodGroup       string                  `json:"bloodGroup"`
	MaritalStatus    string                  `json:"maritalStatus"`
	ContactNumber    string                  `json:"contactNumber"`
	Email            string                  `json:"email"`
	Address          *model.Address          `json:"address,omitempty"`
	EmergencyContact *model.EmergencyContact `json:"emergencyContact,omitempty"`
}

// StaffRequest carries the fields of a new staff member.
type StaffRequest struct {
	Name       string     `json:"name"`
	Role       model.Role `json:"role"`
	Department string     `json:"department"`
}

// AllStaff returns every non-patient user.
func (r *Repository) AllStaff(ctx context.Context) ([]model.User, error) {
	users, err := load[model.User](ctx, r, model.KeyUsers)
	if err != nil {
		return nil, err
	}
	return filter(users, func(u model.User) bool { return !u.IsPatient() }), nil
}

// AllPatients returns every patient user.
func (r *Repository) AllPatients(ctx context.Context) ([]model.User, error) {
	users, err := load[model.User](ctx, r, model.KeyUsers)
	if err != nil {
		return nil, err
	}
	return filter(users, func(u model.User) bool { return u.IsPatient() }), nil
}

// UserByID returns any user by id.
func (r *Repository) UserByID(ctx context.Context, id string) (model.User, error) {
	users, err := load[model.User](ctx, r, model.KeyUsers)
	if err != nil {
		return model.User{}, err
	}
	u, ok := r.findUser(users, id)
	if !ok {
		return model.User{}, notFound("User")
	}
	return u, nil
}

// UserByNationalHealthID returns the patient registered with abhaID.
func (r *Repository) UserByNationalHealthID(ctx context.Context, abhaID string) (model.User, error) {
	users, err := load[model.User](ctx, r, model.KeyUsers)
	if err != nil {
		return model.User{}, err
	}
	i := indexOf(users, func(u model.User) bool { return u.IsPatient() && u.AbhaID == abhaID })
	if i < 0 {
		return model.User{}, notFound("Patient")
	}
	return users[i], nil
}

// StaffByID returns the staff member with the given id.
func (r *Repository) StaffByID(ctx context.Context, id string) (model.User, error) {
	users, err := load[model.User](ctx, r, model.KeyUsers)
	if err != nil {
		return model.User{}, err
	}
	u, ok := r.findUser(users, id)
	if !ok || u.IsPatient() {
		return model.User{}, notFound("Staff member")
	}
	return u, nil
}

// CredentialFor returns the stored secret of a login id.
func (r *Repository) CredentialFor(ctx context.Context, loginID string) (string, bool, error) {
	creds, err := r.loadCredentials(ctx)
	if err != nil {
		return "", false, err
	}
	secret, ok := creds[loginID]
	return secret, ok, nil
}

// SetCredential replaces the stored secret of an existing login id.
func (r *Repository) SetCredential(ctx context.Context, loginID, secret string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	creds, err := r.loadCredentials(ctx)
	if err != nil {
		return err
	}
	if _, ok := creds[loginID]; !ok {
		return notFound("Credential")
	}
	creds[loginID] = secret
	return r.commit(ctx, store.NewBatch().Stage(model.KeyPasswords, creds))
}

// CreatePatient registers a patient and its credential in one batch. The
// credential is keyed by the national health id.
func (r *Repository) CreatePatient(ctx context.Context, req PatientRequest, secret string) (model.User, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.AbhaID = strings.TrimSpace(req.AbhaID)
	req.Aadhaar = strings.TrimSpace(req.Aadhaar)
	if req.Name == "" || req.AbhaID == "" || req.Aadhaar == "" || secret == "" {
		return model.User{}, invalid("Name, ABHA ID, Aadhaar and password are required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	users, err := load[model.User](ctx, r, model.KeyUsers)
	if err != nil {
		return model.User{}, err
	}
	creds, err := r.loadCredentials(ctx)
	if err != nil {
		return model.User{}, err
	}
	dup := indexOf(users, func(u model.User) bool {
		return u.IsPatient() && (u.AbhaID == req.AbhaID || u.Aadhaar == req.Aadhaar)
	})
	if _, taken := creds[req.AbhaID]; dup >= 0 || taken {
		return model.User{}, Duplicate("A user with this ABHA ID or Aadhaar already exists")
	}

	patients := filter(users, func(u model.User) bool { return u.IsPatient() })
	u := model.User{
		ID:               nextID(users, userID, "p%03d", len(patients)+1),
		Name:             req.Name,
		Role:             model.RolePatient,
		AbhaID:           req.AbhaID,
		Aadhaar:          req.Aadhaar,
		Gender:           req.Gender,
		DOB:              req.DOB,
		BloodGroup:       req.BloodGroup,
		MaritalStatus:    req.MaritalStatus,
		ContactNumber:    req.ContactNumber,
		Email:            req.Email,
		Address:          req.Address,
		EmergencyContact: req.EmergencyContact,
	}
	creds[req.AbhaID] = secret

	b := store.NewBatch().
		Stage(model.KeyUsers, append(users, u)).
		Stage(model.KeyPasswords, creds)
	if err := r.commit(ctx, b); err != nil {
		return model.User{}, err
	}
	r.log.Info().Str("user_id", u.ID).Msg("patient registered")
	return u, nil
}

// AddStaff creates a staff member with a role-prefixed id and its credential.
func (r *Repository) AddStaff(ctx context.Context, req StaffRequest, secret string) (model.User, error) {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" || secret == "" {
		return model.User{}, invalid("Name and password are required")
	}
	if !req.Role.IsStaff() {
		return model.User{}, invalid("Unknown staff role: " + string(req.Role))
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	users, err := load[model.User](ctx, r, model.KeyUsers)
	if err != nil {
		return model.User{}, err
	}
	creds, err := r.loadCredentials(ctx)
	if err != nil {
		return model.User{}, err
	}

	staff := filter(users, func(u model.User) bool { return !u.IsPatient() })
	u := model.User{
		ID:         nextID(users, userID, req.Role.IDPrefix()+"%03d", len(staff)+1),
		Name:       req.Name,
		Role:       req.Role,
		Department: strings.TrimSpace(req.Department),
	}
	creds[u.ID] = secret

	b := store.NewBatch().
		Stage(model.KeyUsers, append(users, u)).
		Stage(model.KeyPasswords, creds)
	if err := r.commit(ctx, b); err != nil {
		return model.User{}, err
	}
	r.log.Info().Str("user_id", u.ID).Str("role", string(u.Role)).Msg("staff member added")
	return u, nil
}

func userID(u model.User) string { return u.ID }
