package adeudos

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	EstadoPendiente = "Pendiente"
	EstadoResuelto  = "Resuelto"
)

// Adeudo is a payroll deduction owed by an employee, typically raised for
// unjustified absences. Amounts are exact decimals, never floats.
type Adeudo struct {
	ID          string          `json:"id"`
	EmpleadoID  string          `json:"empleadoId"`
	Concepto    string          `json:"concepto"`
	Monto       decimal.Decimal `json:"monto"`
	Fecha       time.Time       `json:"fecha"`
	Estado      string          `json:"estado"`
	ResueltoPor string          `json:"resueltoPor,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}
