package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Producto representa un artículo del catálogo de la ferretería.
// StockActual admite 3 decimales (metros, kilos, litros) y nunca se
// persiste negativo: todo cambio pasa por InventarioService.
type Producto struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Codigo       string    `gorm:"uniqueIndex;not null"`
	CodigoBarras *string   `gorm:"index"`
	Nombre       string    `gorm:"index;not null"`
	Descripcion  *string
	Categoria    *string         `gorm:"index"`
	UnidadMedida string          `gorm:"not null;default:'unidad'"` // unidad | metro | kilo | litro | par
	PrecioCosto  decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	PrecioVenta  decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	StockActual  decimal.Decimal `gorm:"type:decimal(12,3);not null;default:0"`
	StockMinimo  decimal.Decimal `gorm:"type:decimal(12,3);not null;default:0"`
	ProveedorID  *uuid.UUID      `gorm:"type:uuid;index"`
	Ubicacion    *string
	Activo       bool `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Proveedor *Proveedor `gorm:"foreignKey:ProveedorID"`
}

// StockBajo indica si el stock actual cayó por debajo del mínimo configurado.
func (p *Producto) StockBajo() bool {
	return p.StockActual.LessThan(p.StockMinimo)
}

// MargenGanancia calcula el margen porcentual sobre el costo.
func (p *Producto) MargenGanancia() decimal.Decimal {
	if p.PrecioCosto.IsZero() {
		return decimal.Zero
	}
	return p.PrecioVenta.Sub(p.PrecioCosto).
		Div(p.PrecioCosto).
		Mul(decimal.NewFromInt(100)).
		Round(2)
}
