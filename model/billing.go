package model

// BillStatus is the payment state of a bill.
type BillStatus string

const (
	BillUnpaid BillStatus = "Unpaid"
	BillPaid   BillStatus = "Paid"
)

// Bill is a financial record for a patient.
type Bill struct {
	ID          string     `json:"id"`
	PatientID   string     `json:"patientId"`
	PatientName string     `json:"patientName"`
	Date        string     `json:"date"`
	Amount      float64    `json:"amount"`
	Details     string     `json:"details"`
	Status      BillStatus `json:"status"`
}

// InsuranceDetails holds a patient's policy. One record per patient.
type InsuranceDetails struct {
	ID               string  `json:"id"`
	PatientID        string  `json:"patientId"`
	ProviderName     string  `json:"providerName"`
	PolicyNumber     string  `json:"policyNumber"`
	PolicyHolderName string  `json:"policyHolderName"`
	ValidUntil       string  `json:"validUntil"`
	CoverageAmount   float64 `json:"coverageAmount,omitempty"`
	QRCodeDataURI    string  `json:"qrCodeDataUri,omitempty"`
}

// MedicationStock is a pharmacy inventory line.
type MedicationStock struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	CostPrice    float64 `json:"costPrice"`
	SellingPrice float64 `json:"sellingPrice"`
	Quantity     int     `json:"quantity"`
}

// MedicationProfit is one row of the finance report.
type MedicationProfit struct {
	Prescription
	CostPrice    float64 `json:"costPrice"`
	SellingPrice float64 `json:"sellingPrice"`
	Profit       float64 `json:"profit"`
}

// FinancialData is the finance portal report.
type FinancialData struct {
	PatientPayments  []Bill             `json:"patientPayments"`
	MedicationProfit []MedicationProfit `json:"medicationProfit"`
}
