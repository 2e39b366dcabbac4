package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EstadoVenta: una venta nace completada y solo puede pasar a anulada.
type EstadoVenta string

const (
	VentaCompletada EstadoVenta = "completada"
	VentaAnulada    EstadoVenta = "anulada"
)

// Venta es el documento central del punto de venta. Numero es secuencial por
// año calendario (Anio desambigua la unicidad entre años).
type Venta struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Numero              int       `gorm:"not null;uniqueIndex:idx_ventas_numero_anio"`
	Anio                int       `gorm:"not null;uniqueIndex:idx_ventas_numero_anio"`
	Fecha               time.Time `gorm:"not null;index"`
	ClienteID           *uuid.UUID `gorm:"type:uuid;index"`
	UsuarioID           uuid.UUID  `gorm:"type:uuid;not null"`
	CajaID              uuid.UUID  `gorm:"type:uuid;not null;index"`
	PresupuestoID       *uuid.UUID `gorm:"type:uuid;index"`
	FormaPago           FormaPago  `gorm:"type:varchar(20);not null"`
	Estado              EstadoVenta `gorm:"type:varchar(15);not null;default:'completada'"`
	Subtotal            decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	DescuentoPorcentaje decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	DescuentoMonto      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Total               decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	MotivoAnulacion     *string
	Observaciones       *string
	CreatedAt           time.Time

	Detalles []VentaDetalle `gorm:"foreignKey:VentaID;constraint:OnDelete:CASCADE"`
	Cliente  *Cliente       `gorm:"foreignKey:ClienteID"`
}

// NumeroCompleto devuelve el número con formato AÑO-NNNNNN.
func (v *Venta) NumeroCompleto() string {
	return fmt.Sprintf("%d-%06d", v.Anio, v.Numero)
}

// EsAnulable indica si la venta admite anulación.
func (v *Venta) EsAnulable() bool { return v.Estado == VentaCompletada }

// CalcularTotales recalcula subtotal, descuento y total desde los detalles.
// Es determinista: aplicarlo dos veces sobre las mismas líneas produce el
// mismo resultado.
func (v *Venta) CalcularTotales() {
	subtotal := decimal.Zero
	for _, d := range v.Detalles {
		subtotal = subtotal.Add(d.Subtotal)
	}
	v.Subtotal = subtotal
	if v.DescuentoPorcentaje.IsPositive() {
		v.DescuentoMonto = subtotal.Mul(v.DescuentoPorcentaje).
			Div(decimal.NewFromInt(100)).Round(2)
	} else {
		v.DescuentoMonto = decimal.Zero
	}
	v.Total = subtotal.Sub(v.DescuentoMonto)
}

// VentaDetalle es una línea de venta. Pertenece en exclusiva a su Venta
// (borrado en cascada).
type VentaDetalle struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	VentaID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductoID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Cantidad       decimal.Decimal `gorm:"type:decimal(12,3);not null"`
	PrecioUnitario decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Subtotal       decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	Producto *Producto `gorm:"foreignKey:ProductoID"`
}
