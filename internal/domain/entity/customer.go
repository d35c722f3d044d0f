package entity

import "time"

// Customer cliente de la joyería (snapshot de solo lectura).
type Customer struct {
	ID        string
	Name      string
	Address   string
	City      string
	State     string
	StateCode string
	Pincode   string
	Phone     string
	Email     string
	GSTIN     string
	PAN       string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Party proyecta el cliente como comprador de la factura.
func (c *Customer) Party() Party {
	return Party{
		Name:      c.Name,
		Address:   c.Address,
		City:      c.City,
		State:     c.State,
		StateCode: c.StateCode,
		Pincode:   c.Pincode,
		Phone:     c.Phone,
		Email:     c.Email,
		GSTIN:     c.GSTIN,
		PAN:       c.PAN,
	}
}
