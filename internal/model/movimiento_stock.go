package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TipoMovimientoStock es el conjunto cerrado de causas de cambio de stock.
type TipoMovimientoStock string

const (
	MovStockVenta          TipoMovimientoStock = "venta"
	MovStockCompra         TipoMovimientoStock = "compra"
	MovStockAjustePositivo TipoMovimientoStock = "ajuste_positivo"
	MovStockAjusteNegativo TipoMovimientoStock = "ajuste_negativo"
	MovStockDevolucion     TipoMovimientoStock = "devolucion"
)

// EsSalida indica si el tipo representa mercadería que sale del depósito.
// Los movimientos de salida llevan cantidad negativa y están sujetos al
// control de stock insuficiente.
func (t TipoMovimientoStock) EsSalida() bool {
	return t == MovStockVenta || t == MovStockAjusteNegativo
}

// Valido reporta si el valor pertenece al conjunto permitido.
func (t TipoMovimientoStock) Valido() bool {
	switch t {
	case MovStockVenta, MovStockCompra, MovStockAjustePositivo,
		MovStockAjusteNegativo, MovStockDevolucion:
		return true
	}
	return false
}

// MovimientoStock es un hecho inmutable del ledger de inventario: registra
// cada cambio con foto de stock anterior/posterior. Nunca se modifica ni se
// borra — las anulaciones generan movimientos inversos.
type MovimientoStock struct {
	ID             uuid.UUID           `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductoID     uuid.UUID           `gorm:"type:uuid;not null;index"`
	Tipo           TipoMovimientoStock `gorm:"type:varchar(20);not null"`
	Cantidad       decimal.Decimal     `gorm:"type:decimal(12,3);not null"` // con signo
	StockAnterior  decimal.Decimal     `gorm:"type:decimal(12,3);not null"`
	StockPosterior decimal.Decimal     `gorm:"type:decimal(12,3);not null"`
	ReferenciaTipo *string             `gorm:"type:varchar(20)"` // venta | orden_compra | ajuste | anulacion_venta
	ReferenciaID   *uuid.UUID          `gorm:"type:uuid"`
	Motivo         *string
	UsuarioID      uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt      time.Time `gorm:"index"`

	Producto *Producto `gorm:"foreignKey:ProductoID"`
}

// TableName evita la pluralización de GORM (movimiento_stocks → movimientos_stock).
func (MovimientoStock) TableName() string { return "movimientos_stock" }
