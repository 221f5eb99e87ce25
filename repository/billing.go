package repository

import (
	"context"
	"strings"

	"github.com/ariebrainware/hms-portal/model"
	"github.com/ariebrainware/hms-portal/store"
)

// BillRequest is a manually raised charge.
type BillRequest struct {
	PatientID string  `json:"patientId"`
	Details   string  `json:"details"`
	Amount    float64 `json:"amount"`
}

// InsuranceRequest carries the insurance form of a patient.
type InsuranceRequest struct {
	ProviderName     string  `json:"providerName"`
	PolicyNumber     string  `json:"policyNumber"`
	PolicyHolderName string  `json:"policyHolderName"`
	ValidUntil       string  `json:"validUntil"`
	CoverageAmount   float64 `json:"coverageAmount"`
	QRCodeDataURI    string  `json:"qrCodeDataUri"`
}

func (r *Repository) newBill(bills []model.Bill, patientID, patientName string, amount float64, details string) model.Bill {
	return model.Bill{
		ID:          nextID(bills, func(b model.Bill) string { return b.ID }, "bill%d", len(bills)+1),
		PatientID:   patientID,
		PatientName: patientName,
		Date:        r.today(),
		Amount:      amount,
		Details:     details,
		Status:      model.BillUnpaid,
	}
}

// PatientBills returns the bills of patientID.
func (r *Repository) PatientBills(ctx context.Context, patientID string) ([]model.Bill, error) {
	bills, err := load[model.Bill](ctx, r, model.KeyBills)
	if err != nil {
		return nil, err
	}
	return filter(bills, func(b model.Bill) bool { return b.PatientID == patientID }), nil
}

// BillByID returns a single bill.
func (r *Repository) BillByID(ctx context.Context, id string) (model.Bill, error) {
	bills, err := load[model.Bill](ctx, r, model.KeyBills)
	if err != nil {
		return model.Bill{}, err
	}
	i := indexOf(bills, func(b model.Bill) bool { return b.ID == id })
	if i < 0 {
		return model.Bill{}, notFound("Bill")
	}
	return bills[i], nil
}

// AddBill raises an unpaid bill against an existing patient.
func (r *Repository) AddBill(ctx context.Context, req BillRequest) (model.Bill, error) {
	if strings.TrimSpace(req.Details) == "" || req.Amount <= 0 {
		return model.Bill{}, invalid("Details and a positive amount are required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	p, err := r.patient(ctx, req.PatientID)
	if err != nil {
		return model.Bill{}, err
	}
	bills, err := load[model.Bill](ctx, r, model.KeyBills)
	if err != nil {
		return model.Bill{}, err
	}
	bill := r.newBill(bills, p.ID, p.Name, roundCents(req.Amount), strings.TrimSpace(req.Details))
	if err := r.commit(ctx, store.NewBatch().Stage(model.KeyBills, append(bills, bill))); err != nil {
		return model.Bill{}, err
	}
	return bill, nil
}

// PayBill marks a bill paid. Paying a paid bill returns it unchanged.
func (r *Repository) PayBill(ctx context.Context, id string) (model.Bill, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	bills, err := load[model.Bill](ctx, r, model.KeyBills)
	if err != nil {
		return model.Bill{}, err
	}
	i := indexOf(bills, func(b model.Bill) bool { return b.ID == id })
	if i < 0 {
		return model.Bill{}, notFound("Bill")
	}
	if bills[i].Status == model.BillPaid {
		return bills[i], nil
	}
	bills[i].Status = model.BillPaid
	if err := r.commit(ctx, store.NewBatch().Stage(model.KeyBills, bills)); err != nil {
		return model.Bill{}, err
	}
	return bills[i], nil
}

// PatientInsurance returns the insurance details of patientID, if any.
func (r *Repository) PatientInsurance(ctx context.Context, patientID string) (*model.InsuranceDetails, error) {
	all, err := load[model.InsuranceDetails](ctx, r, model.KeyInsuranceDetails)
	if err != nil {
		return nil, err
	}
	i := indexOf(all, func(d model.InsuranceDetails) bool { return d.PatientID == patientID })
	if i < 0 {
		return nil, nil
	}
	return &all[i], nil
}

// SubmitInsurance creates or replaces the insurance details of patientID.
func (r *Repository) SubmitInsurance(ctx context.Context, patientID string, req InsuranceRequest) (model.InsuranceDetails, error) {
	if strings.TrimSpace(req.ProviderName) == "" || strings.TrimSpace(req.PolicyNumber) == "" {
		return model.InsuranceDetails{}, invalid("Provider name and policy number are required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := r.patient(ctx, patientID); err != nil {
		return model.InsuranceDetails{}, err
	}
	all, err := load[model.InsuranceDetails](ctx, r, model.KeyInsuranceDetails)
	if err != nil {
		return model.InsuranceDetails{}, err
	}

	d := model.InsuranceDetails{
		PatientID:        patientID,
		ProviderName:     req.ProviderName,
		PolicyNumber:     req.PolicyNumber,
		PolicyHolderName: req.PolicyHolderName,
		ValidUntil:       req.ValidUntil,
		CoverageAmount:   req.CoverageAmount,
		QRCodeDataURI:    req.QRCodeDataURI,
	}
	if i := indexOf(all, func(x model.InsuranceDetails) bool { return x.PatientID == patientID }); i >= 0 {
		d.ID = all[i].ID
		all[i] = d
	} else {
		d.ID = nextID(all, func(x model.InsuranceDetails) string { return x.ID }, "ins%d", len(all)+1)
		all = append(all, d)
	}
	if err := r.commit(ctx, store.NewBatch().Stage(model.KeyInsuranceDetails, all)); err != nil {
		return model.InsuranceDetails{}, err
	}
	return d, nil
}

// FinancialData returns every bill and a profit row per prescription, priced
// from the stock entry with the same medication name.
func (r *Repository) FinancialData(ctx context.Context) (model.FinancialData, error) {
	bills, err := load[model.Bill](ctx, r, model.KeyBills)
	if err != nil {
		return model.FinancialData{}, err
	}
	ps, err := load[model.Prescription](ctx, r, model.KeyPrescriptions)
	if err != nil {
		return model.FinancialData{}, err
	}
	stock, err := r.MedicationStock(ctx)
	if err != nil {
		return model.FinancialData{}, err
	}
	users, err := load[model.User](ctx, r, model.KeyUsers)
	if err != nil {
		return model.FinancialData{}, err
	}

	profits := make([]model.MedicationProfit, 0, len(ps))
	for _, p := range ps {
		row := model.MedicationProfit{Prescription: p}
		if i := indexOf(stock, func(s model.MedicationStock) bool { return strings.EqualFold(s.Name, p.Medication) }); i >= 0 {
			row.CostPrice = stock[i].CostPrice
			row.SellingPrice = stock[i].SellingPrice
		}
		row.Profit = roundCents(row.SellingPrice - row.CostPrice)
		if u, ok := r.findUser(users, p.PatientID); ok {
			row.PatientName = u.Name
		}
		profits = append(profits, row)
	}
	return model.FinancialData{PatientPayments: bills, MedicationProfit: profits}, nil
}

// DashboardStats returns hospital-wide counters.
func (r *Repository) DashboardStats(ctx context.Context) (model.DashboardStats, error) {
	apps, err := load[model.Appointment](ctx, r, model.KeyAppointments)
	if err != nil {
		return model.DashboardStats{}, err
	}
	tests, err := load[model.TestRequest](ctx, r, model.KeyTests)
	if err != nil {
		return model.DashboardStats{}, err
	}
	bills, err := load[model.Bill](ctx, r, model.KeyBills)
	if err != nil {
		return model.DashboardStats{}, err
	}
	paid := filter(bills, func(b model.Bill) bool { return b.Status == model.BillPaid })
	return model.DashboardStats{
		TotalAppointments: len(apps),
		TotalTests:        len(tests),
		CompletedBills:    len(paid),
	}, nil
}
