package dto

import "github.com/shopspring/decimal"

type ItemPresupuestoRequest struct {
	ProductoID string          `json:"producto_id" validate:"required,uuid"`
	Cantidad   decimal.Decimal `json:"cantidad"    validate:"required"`
}

type CrearPresupuestoRequest struct {
	// Cliente registrado o datos sueltos, al menos uno de los dos.
	ClienteID       *string                  `json:"cliente_id"       validate:"omitempty,uuid"`
	ClienteNombre   string                   `json:"cliente_nombre"   validate:"max=200"`
	ClienteTelefono string                   `json:"cliente_telefono" validate:"max=50"`
	DescuentoPct    decimal.Decimal          `json:"descuento_pct"`
	DiasValidez     int                      `json:"dias_validez"     validate:"omitempty,min=1,max=365"`
	Items           []ItemPresupuestoRequest `json:"items"            validate:"required,min=1,dive"`
	Observacion     string                   `json:"observacion"      validate:"max=500"`
}

type ActualizarPresupuestoRequest struct {
	ClienteNombre   string                   `json:"cliente_nombre"   validate:"max=200"`
	ClienteTelefono string                   `json:"cliente_telefono" validate:"max=50"`
	DescuentoPct    decimal.Decimal          `json:"descuento_pct"`
	DiasValidez     int                      `json:"dias_validez"     validate:"omitempty,min=1,max=365"`
	Items           []ItemPresupuestoRequest `json:"items"            validate:"required,min=1,dive"`
	Observacion     string                   `json:"observacion"      validate:"max=500"`
}

type CambiarEstadoPresupuestoRequest struct {
	Estado string `json:"estado" validate:"required,oneof=aceptado rechazado"`
}

type ConvertirPresupuestoRequest struct {
	FormaPago string `json:"forma_pago" validate:"required,oneof=efectivo tarjeta_debito tarjeta_credito transferencia cuenta_corriente"`
	// ClienteID puede completar un presupuesto hecho con datos sueltos
	// cuando se convierte a cuenta corriente.
	ClienteID *string `json:"cliente_id" validate:"omitempty,uuid"`
}

type EnviarPresupuestoRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ItemPresupuestoResponse struct {
	ProductoID     string          `json:"producto_id"`
	Producto       string          `json:"producto"`
	Cantidad       decimal.Decimal `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	Subtotal       decimal.Decimal `json:"subtotal"`
}

type PresupuestoResponse struct {
	ID               string                    `json:"id"`
	Numero           int                       `json:"numero"`
	NumeroCompleto   string                    `json:"numero_completo"`
	Estado           string                    `json:"estado"`
	Cliente          string                    `json:"cliente"`
	ClienteTelefono  string                    `json:"cliente_telefono,omitempty"`
	Subtotal         decimal.Decimal           `json:"subtotal"`
	DescuentoPct     decimal.Decimal           `json:"descuento_pct"`
	DescuentoMonto   decimal.Decimal           `json:"descuento_monto"`
	Total            decimal.Decimal           `json:"total"`
	FechaVencimiento string                    `json:"fecha_vencimiento"`
	Token            string                    `json:"token,omitempty"`
	Items            []ItemPresupuestoResponse `json:"items"`
	Observacion      string                    `json:"observacion,omitempty"`
	CreatedAt        string                    `json:"created_at"`
}

type PresupuestoListResponse struct {
	Data  []PresupuestoResponse `json:"data"`
	Total int64                 `json:"total"`
	Page  int                   `json:"page"`
	Limit int                   `json:"limit"`
}
