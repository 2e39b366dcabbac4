package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TipoMovimientoCC distingue cargos (aumentan deuda) de pagos (la reducen).
type TipoMovimientoCC string

const (
	MovCCCargo TipoMovimientoCC = "cargo"
	MovCCPago  TipoMovimientoCC = "pago"
)

// MovimientoCuentaCorriente es un hecho inmutable del ledger de crédito de
// clientes, con foto de saldo anterior/posterior. Sobrevive a la anulación
// del documento que lo originó.
type MovimientoCuentaCorriente struct {
	ID             uuid.UUID        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ClienteID      uuid.UUID        `gorm:"type:uuid;not null;index"`
	Tipo           TipoMovimientoCC `gorm:"type:varchar(10);not null"`
	Monto          decimal.Decimal  `gorm:"type:decimal(12,2);not null"`
	SaldoAnterior  decimal.Decimal  `gorm:"type:decimal(12,2);not null"`
	SaldoPosterior decimal.Decimal  `gorm:"type:decimal(12,2);not null"`
	ReferenciaTipo *string          `gorm:"type:varchar(20)"` // venta | pago | anulacion_venta
	ReferenciaID   *uuid.UUID       `gorm:"type:uuid"`
	Descripcion    *string          `gorm:"type:varchar(200)"`
	UsuarioID      uuid.UUID        `gorm:"type:uuid;not null"`
	CreatedAt      time.Time        `gorm:"index"`

	Cliente *Cliente `gorm:"foreignKey:ClienteID"`
}

// TableName fija el nombre histórico de la tabla.
func (MovimientoCuentaCorriente) TableName() string { return "movimientos_cuenta_corriente" }
