package dto

import "github.com/shopspring/decimal"

type AjusteStockRequest struct {
	ProductoID string          `json:"producto_id" validate:"required,uuid"`
	Tipo       string          `json:"tipo"        validate:"required,oneof=ajuste_positivo ajuste_negativo"`
	Cantidad   decimal.Decimal `json:"cantidad"    validate:"required"`
	Motivo     string          `json:"motivo"      validate:"required,min=3,max=500"`
}

type MovimientoStockResponse struct {
	ID             string          `json:"id"`
	ProductoID     string          `json:"producto_id"`
	Producto       string          `json:"producto"`
	Tipo           string          `json:"tipo"`
	Cantidad       decimal.Decimal `json:"cantidad"`
	StockAnterior  decimal.Decimal `json:"stock_anterior"`
	StockPosterior decimal.Decimal `json:"stock_posterior"`
	Motivo         string          `json:"motivo,omitempty"`
	CreatedAt      string          `json:"created_at"`
}

type MovimientoStockListResponse struct {
	Data  []MovimientoStockResponse `json:"data"`
	Total int64                     `json:"total"`
	Page  int                       `json:"page"`
	Limit int                       `json:"limit"`
}
