package dto

import "github.com/shopspring/decimal"

type CrearClienteRequest struct {
	Nombre        string          `json:"nombre"         validate:"required,min=2,max=200"`
	DniCuit       string          `json:"dni_cuit"       validate:"max=13"`
	Telefono      string          `json:"telefono"       validate:"max=50"`
	Email         string          `json:"email"          validate:"omitempty,email"`
	Direccion     string          `json:"direccion"      validate:"max=300"`
	LimiteCredito decimal.Decimal `json:"limite_credito"`
}

type ActualizarClienteRequest struct {
	Nombre        string          `json:"nombre"         validate:"required,min=2,max=200"`
	DniCuit       string          `json:"dni_cuit"       validate:"max=13"`
	Telefono      string          `json:"telefono"       validate:"max=50"`
	Email         string          `json:"email"          validate:"omitempty,email"`
	Direccion     string          `json:"direccion"      validate:"max=300"`
	LimiteCredito decimal.Decimal `json:"limite_credito"`
}

type PagoCuentaCorrienteRequest struct {
	Monto       decimal.Decimal `json:"monto"       validate:"required"`
	Descripcion string          `json:"descripcion" validate:"max=500"`
}

type ClienteResponse struct {
	ID                string          `json:"id"`
	Nombre            string          `json:"nombre"`
	DniCuit           string          `json:"dni_cuit,omitempty"`
	Telefono          string          `json:"telefono,omitempty"`
	Email             string          `json:"email,omitempty"`
	Direccion         string          `json:"direccion,omitempty"`
	LimiteCredito     decimal.Decimal `json:"limite_credito"`
	Saldo             decimal.Decimal `json:"saldo"`
	CreditoDisponible decimal.Decimal `json:"credito_disponible"`
	Activo            bool            `json:"activo"`
}

type ClienteListResponse struct {
	Data  []ClienteResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}

type MovimientoCuentaCorrienteResponse struct {
	ID             string          `json:"id"`
	Tipo           string          `json:"tipo"`
	Monto          decimal.Decimal `json:"monto"`
	SaldoAnterior  decimal.Decimal `json:"saldo_anterior"`
	SaldoPosterior decimal.Decimal `json:"saldo_posterior"`
	Descripcion    string          `json:"descripcion,omitempty"`
	CreatedAt      string          `json:"created_at"`
}
