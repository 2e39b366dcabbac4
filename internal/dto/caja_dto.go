package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type AbrirCajaRequest struct {
	MontoInicial decimal.Decimal `json:"monto_inicial" validate:"required"`
	Observacion  string          `json:"observacion"   validate:"max=500"`
}

type CerrarCajaRequest struct {
	MontoReal   decimal.Decimal `json:"monto_real"  validate:"required"`
	Observacion string          `json:"observacion" validate:"max=500"`
}

type MovimientoCajaRequest struct {
	Tipo        string          `json:"tipo"        validate:"required,oneof=ingreso egreso"`
	Concepto    string          `json:"concepto"    validate:"required,oneof=cobro_cuenta_corriente pago_proveedor gasto retiro otro"`
	Monto       decimal.Decimal `json:"monto"       validate:"required"`
	Descripcion string          `json:"descripcion" validate:"required,min=3,max=500"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type MovimientoCajaResponse struct {
	ID          string          `json:"id"`
	Tipo        string          `json:"tipo"`
	Concepto    string          `json:"concepto"`
	FormaPago   string          `json:"forma_pago,omitempty"`
	Monto       decimal.Decimal `json:"monto"`
	Descripcion string          `json:"descripcion"`
	CreatedAt   string          `json:"created_at"`
}

type CajaResponse struct {
	ID            string                   `json:"id"`
	Estado        string                   `json:"estado"`
	MontoInicial  decimal.Decimal          `json:"monto_inicial"`
	MontoEsperado *decimal.Decimal         `json:"monto_esperado,omitempty"`
	MontoReal     *decimal.Decimal         `json:"monto_real,omitempty"`
	Diferencia    *decimal.Decimal         `json:"diferencia,omitempty"`
	FechaApertura string                   `json:"fecha_apertura"`
	FechaCierre   *string                  `json:"fecha_cierre,omitempty"`
	Observacion   string                   `json:"observacion,omitempty"`
	Movimientos   []MovimientoCajaResponse `json:"movimientos,omitempty"`
}

type CajaListResponse struct {
	Data  []CajaResponse `json:"data"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}
