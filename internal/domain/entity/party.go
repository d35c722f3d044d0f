package entity

import "strings"

// Party datos de identificación de vendedor o comprador. Tipo valor.
type Party struct {
	Name      string `json:"name" validate:"required"`
	Address   string `json:"address,omitempty"`
	City      string `json:"city,omitempty"`
	State     string `json:"state,omitempty"`
	StateCode string `json:"state_code,omitempty"` // código GST del estado (ej. "27" Maharashtra)
	Pincode   string `json:"pincode,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Email     string `json:"email,omitempty"`
	GSTIN     string `json:"gstin,omitempty"`
	PAN       string `json:"pan,omitempty"`
}

// AddressLine une dirección, ciudad, estado y PIN omitiendo los vacíos.
func (p Party) AddressLine() string {
	parts := make([]string, 0, 4)
	for _, s := range []string{p.Address, p.City, p.State, p.Pincode} {
		if s = strings.TrimSpace(s); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, ", ")
}

// BankInfo cuenta de liquidación del vendedor. Se adjunta a cada Invoice desde la
// configuración, independiente del Draft.
type BankInfo struct {
	AccountName   string `json:"account_name,omitempty"`
	BankName      string `json:"bank_name,omitempty"`
	Branch        string `json:"branch,omitempty"`
	AccountNumber string `json:"account_number,omitempty"`
	IFSC          string `json:"ifsc,omitempty"`
	UPI           string `json:"upi,omitempty"`
}

// IsZero indica que no hay datos bancarios que mostrar.
func (b BankInfo) IsZero() bool {
	return b.AccountNumber == "" && b.UPI == ""
}

// Regulatory números de registro del vendedor impresos en el documento.
type Regulatory struct {
	GSTIN      string `json:"gstin,omitempty"`
	PAN        string `json:"pan,omitempty"`
	BISLicence string `json:"bis_licence,omitempty"` // licencia de hallmarking BIS
	StateCode  string `json:"state_code,omitempty"`
}

// HeaderOverrides campos de cabecera editables sin tocar los ítems.
type HeaderOverrides struct {
	MemoNumber    string `json:"memo_number,omitempty"`
	City          string `json:"city,omitempty"`
	DeliveryPlace string `json:"delivery_place,omitempty"`
}
