package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Cliente mantiene el saldo de cuenta corriente contra un límite de crédito.
// El límite se valida únicamente al momento del cargo: bajar el límite no
// invalida saldos históricos.
type Cliente struct {
	ID                    uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre                string    `gorm:"index;not null"`
	DniCuit               *string   `gorm:"type:varchar(13);index"`
	Telefono              *string   `gorm:"type:varchar(20)"`
	Email                 *string   `gorm:"type:varchar(120)"`
	Direccion             *string
	LimiteCredito         decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	SaldoCuentaCorriente  decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Notas                 *string
	Activo                bool `gorm:"not null;default:true"`
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// TieneDeuda indica si el cliente debe dinero en cuenta corriente.
func (c *Cliente) TieneDeuda() bool {
	return c.SaldoCuentaCorriente.IsPositive()
}

// CreditoDisponible es el margen restante antes de alcanzar el límite.
func (c *Cliente) CreditoDisponible() decimal.Decimal {
	return c.LimiteCredito.Sub(c.SaldoCuentaCorriente)
}

// PuedeComprarACredito verifica si un cargo por monto cabría dentro del límite.
func (c *Cliente) PuedeComprarACredito(monto decimal.Decimal) bool {
	if !c.LimiteCredito.IsPositive() {
		return false
	}
	return c.SaldoCuentaCorriente.Add(monto).LessThanOrEqual(c.LimiteCredito)
}
