package dto

import "github.com/shopspring/decimal"

type TotalFormaPagoResponse struct {
	FormaPago string          `json:"forma_pago"`
	Cantidad  int64           `json:"cantidad"`
	Total     decimal.Decimal `json:"total"`
}

type ResumenVentasResponse struct {
	Desde          string                   `json:"desde"`
	Hasta          string                   `json:"hasta"`
	CantidadVentas int64                    `json:"cantidad_ventas"`
	TotalVendido   decimal.Decimal          `json:"total_vendido"`
	PorFormaPago   []TotalFormaPagoResponse `json:"por_forma_pago"`
}

type ValuacionStockResponse struct {
	Productos       int64           `json:"productos"`
	UnidadesTotales decimal.Decimal `json:"unidades_totales"`
	ValorCosto      decimal.Decimal `json:"valor_costo"`
	ValorVenta      decimal.Decimal `json:"valor_venta"`
	BajoMinimo      int64           `json:"bajo_minimo"`
}
