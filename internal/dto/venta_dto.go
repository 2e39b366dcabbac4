package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type ItemVentaRequest struct {
	ProductoID string          `json:"producto_id" validate:"required,uuid"`
	Cantidad   decimal.Decimal `json:"cantidad"    validate:"required"`
}

type RegistrarVentaRequest struct {
	// ClienteID es obligatorio cuando forma_pago = cuenta_corriente.
	ClienteID    *string            `json:"cliente_id"    validate:"omitempty,uuid"`
	FormaPago    string             `json:"forma_pago"    validate:"required,oneof=efectivo tarjeta_debito tarjeta_credito transferencia cuenta_corriente"`
	DescuentoPct decimal.Decimal    `json:"descuento_pct"`
	Items        []ItemVentaRequest `json:"items"         validate:"required,min=1,dive"`
	Observacion  string             `json:"observacion"   validate:"max=500"`
}

type AnularVentaRequest struct {
	Motivo string `json:"motivo" validate:"required,min=3,max=500"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ItemVentaResponse struct {
	ProductoID     string          `json:"producto_id"`
	Producto       string          `json:"producto"`
	Cantidad       decimal.Decimal `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	Subtotal       decimal.Decimal `json:"subtotal"`
}

type VentaResponse struct {
	ID             string              `json:"id"`
	Numero         int                 `json:"numero"`
	NumeroCompleto string              `json:"numero_completo"`
	ClienteID      *string             `json:"cliente_id,omitempty"`
	Cliente        string              `json:"cliente,omitempty"`
	FormaPago      string              `json:"forma_pago"`
	Subtotal       decimal.Decimal     `json:"subtotal"`
	DescuentoPct   decimal.Decimal     `json:"descuento_pct"`
	DescuentoMonto decimal.Decimal     `json:"descuento_monto"`
	Total          decimal.Decimal     `json:"total"`
	Estado         string              `json:"estado"`
	Items          []ItemVentaResponse `json:"items"`
	Observacion    string              `json:"observacion,omitempty"`
	CreatedAt      string              `json:"created_at"`
}

type VentaListResponse struct {
	Data  []VentaResponse `json:"data"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}
