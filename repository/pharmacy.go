package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/ariebrainware/hms-portal/model"
	"github.com/ariebrainware/hms-portal/store"
)

// PrescriptionRequest is a doctor's new prescription.
type PrescriptionRequest struct {
	PatientID    string `json:"patientId"`
	DoctorID     string `json:"doctorId"`
	DoctorName   string `json:"doctorName"`
	Date         string `json:"date"`
	Medication   string `json:"medication"`
	Dosage       string `json:"dosage"`
	Instructions string `json:"instructions"`
	Quantity     int    `json:"quantity"`
}

// StockRequest adds a medication to the pharmacy stock.
type StockRequest struct {
	Name         string  `json:"name"`
	CostPrice    float64 `json:"costPrice"`
	SellingPrice float64 `json:"sellingPrice"`
	Quantity     int     `json:"quantity"`
}

// PatientPrescriptions returns the prescriptions of patientID.
func (r *Repository) PatientPrescriptions(ctx context.Context, patientID string) ([]model.Prescription, error) {
	ps, err := load[model.Prescription](ctx, r, model.KeyPrescriptions)
	if err != nil {
		return nil, err
	}
	return filter(ps, func(p model.Prescription) bool { return p.PatientID == patientID }), nil
}

// PendingPrescriptions returns the prescriptions awaiting dispensing.
func (r *Repository) PendingPrescriptions(ctx context.Context) ([]model.Prescription, error) {
	ps, err := load[model.Prescription](ctx, r, model.KeyPrescriptions)
	if err != nil {
		return nil, err
	}
	return filter(ps, func(p model.Prescription) bool { return p.Status == model.PrescriptionPending }), nil
}

// AddPrescription creates a pending prescription for an existing patient.
func (r *Repository) AddPrescription(ctx context.Context, req PrescriptionRequest) (model.Prescription, error) {
	if strings.TrimSpace(req.Medication) == "" || req.Quantity <= 0 {
		return model.Prescription{}, invalid("Medication and a positive quantity are required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	p, err := r.patient(ctx, req.PatientID)
	if err != nil {
		return model.Prescription{}, err
	}
	ps, err := load[model.Prescription](ctx, r, model.KeyPrescriptions)
	if err != nil {
		return model.Prescription{}, err
	}
	if req.Date == "" {
		req.Date = r.today()
	}

	presc := model.Prescription{
		ID:            nextID(ps, prescriptionID, "presc%d", len(ps)+1),
		PatientID:     p.ID,
		PatientName:   p.Name,
		PatientAbhaID: p.AbhaID,
		DoctorID:      req.DoctorID,
		DoctorName:    req.DoctorName,
		Date:          req.Date,
		Medication:    strings.TrimSpace(req.Medication),
		Dosage:        req.Dosage,
		Instructions:  req.Instructions,
		Quantity:      req.Quantity,
		Status:        model.PrescriptionPending,
	}
	if err := r.commit(ctx, store.NewBatch().Stage(model.KeyPrescriptions, append(ps, presc))); err != nil {
		return model.Prescription{}, err
	}
	return presc, nil
}

// DispensePrescription marks a pending prescription dispensed at price and
// raises the matching unpaid bill. Both collections are committed together.
func (r *Repository) DispensePrescription(ctx context.Context, id string, price float64) (model.Prescription, model.Bill, error) {
	if price < 0 {
		return model.Prescription{}, model.Bill{}, invalid("Price cannot be negative")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	ps, err := load[model.Prescription](ctx, r, model.KeyPrescriptions)
	if err != nil {
		return model.Prescription{}, model.Bill{}, err
	}
	i := indexOf(ps, func(p model.Prescription) bool { return p.ID == id })
	if i < 0 {
		return model.Prescription{}, model.Bill{}, notFound("Prescription")
	}
	if ps[i].Status != model.PrescriptionPending {
		return model.Prescription{}, model.Bill{}, badTransition("Prescription was already dispensed")
	}
	bills, err := load[model.Bill](ctx, r, model.KeyBills)
	if err != nil {
		return model.Prescription{}, model.Bill{}, err
	}

	price = roundCents(price)
	ps[i].Status = model.PrescriptionDispensed
	ps[i].Price = &price
	bill := r.newBill(bills, ps[i].PatientID, ps[i].PatientName, price,
		fmt.Sprintf("Pharmacy: %s (x%d)", ps[i].Medication, ps[i].Quantity))

	b := store.NewBatch().
		Stage(model.KeyPrescriptions, ps).
		Stage(model.KeyBills, append(bills, bill))
	if err := r.commit(ctx, b); err != nil {
		return model.Prescription{}, model.Bill{}, err
	}
	r.log.Info().Str("prescription_id", id).Str("bill_id", bill.ID).Float64("amount", price).Msg("prescription dispensed")
	return ps[i], bill, nil
}

// MedicationStock returns the pharmacy stock.
func (r *Repository) MedicationStock(ctx context.Context) ([]model.MedicationStock, error) {
	return load[model.MedicationStock](ctx, r, model.KeyMedicationStock)
}

// AddMedicationStock adds a new medication to the stock.
func (r *Repository) AddMedicationStock(ctx context.Context, req StockRequest) (model.MedicationStock, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" || req.CostPrice < 0 || req.SellingPrice < 0 || req.Quantity < 0 {
		return model.MedicationStock{}, invalid("Name is required and prices and quantity cannot be negative")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stock, err := r.MedicationStock(ctx)
	if err != nil {
		return model.MedicationStock{}, err
	}
	if indexOf(stock, func(s model.MedicationStock) bool { return strings.EqualFold(s.Name, name) }) >= 0 {
		return model.MedicationStock{}, Duplicate("Medication " + name + " is already stocked")
	}

	item := model.MedicationStock{
		ID:           nextID(stock, func(s model.MedicationStock) string { return s.ID }, "med%02d", len(stock)+1),
		Name:         name,
		CostPrice:    roundCents(req.CostPrice),
		SellingPrice: roundCents(req.SellingPrice),
		Quantity:     req.Quantity,
	}
	if err := r.commit(ctx, store.NewBatch().Stage(model.KeyMedicationStock, append(stock, item))); err != nil {
		return model.MedicationStock{}, err
	}
	return item, nil
}

// AdjustStock changes the quantity of a medication by delta.
func (r *Repository) AdjustStock(ctx context.Context, id string, delta int) (model.MedicationStock, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stock, err := r.MedicationStock(ctx)
	if err != nil {
		return model.MedicationStock{}, err
	}
	i := indexOf(stock, func(s model.MedicationStock) bool { return s.ID == id })
	if i < 0 {
		return model.MedicationStock{}, notFound("Medication")
	}
	if stock[i].Quantity+delta < 0 {
		return model.MedicationStock{}, invalid("Stock quantity cannot go below zero")
	}

	stock[i].Quantity += delta
	if err := r.commit(ctx, store.NewBatch().Stage(model.KeyMedicationStock, stock)); err != nil {
		return model.MedicationStock{}, err
	}
	return stock[i], nil
}

func prescriptionID(p model.Prescription) string { return p.ID }
