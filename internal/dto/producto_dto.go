package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearProductoRequest struct {
	Codigo       string          `json:"codigo"        validate:"required,min=1,max=50"`
	CodigoBarras *string         `json:"codigo_barras" validate:"omitempty,max=18"`
	Nombre       string          `json:"nombre"        validate:"required,min=2,max=200"`
	Descripcion  *string         `json:"descripcion"`
	Categoria    *string         `json:"categoria"`
	UnidadMedida string          `json:"unidad_medida" validate:"omitempty,oneof=unidad metro kilo litro par"`
	PrecioCosto  decimal.Decimal `json:"precio_costo"  validate:"required"`
	PrecioVenta  decimal.Decimal `json:"precio_venta"  validate:"required"`
	StockActual  decimal.Decimal `json:"stock_actual"`
	StockMinimo  decimal.Decimal `json:"stock_minimo"`
	ProveedorID  *string         `json:"proveedor_id"  validate:"omitempty,uuid"`
	Ubicacion    *string         `json:"ubicacion"`
}

type ActualizarProductoRequest struct {
	Nombre       *string          `json:"nombre"        validate:"omitempty,min=2,max=200"`
	CodigoBarras *string          `json:"codigo_barras" validate:"omitempty,max=18"`
	Descripcion  *string          `json:"descripcion"`
	Categoria    *string          `json:"categoria"`
	UnidadMedida *string          `json:"unidad_medida" validate:"omitempty,oneof=unidad metro kilo litro par"`
	PrecioCosto  *decimal.Decimal `json:"precio_costo"`
	PrecioVenta  *decimal.Decimal `json:"precio_venta"`
	StockMinimo  *decimal.Decimal `json:"stock_minimo"`
	ProveedorID  *string          `json:"proveedor_id"  validate:"omitempty,uuid"`
	Ubicacion    *string          `json:"ubicacion"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ProductoResponse struct {
	ID           string          `json:"id"`
	Codigo       string          `json:"codigo"`
	CodigoBarras *string         `json:"codigo_barras,omitempty"`
	Nombre       string          `json:"nombre"`
	Descripcion  *string         `json:"descripcion,omitempty"`
	Categoria    *string         `json:"categoria,omitempty"`
	UnidadMedida string          `json:"unidad_medida"`
	PrecioCosto  decimal.Decimal `json:"precio_costo"`
	PrecioVenta  decimal.Decimal `json:"precio_venta"`
	MargenPct    decimal.Decimal `json:"margen_pct"`
	StockActual  decimal.Decimal `json:"stock_actual"`
	StockMinimo  decimal.Decimal `json:"stock_minimo"`
	StockBajo    bool            `json:"stock_bajo"`
	ProveedorID  *string         `json:"proveedor_id,omitempty"`
	Ubicacion    *string         `json:"ubicacion,omitempty"`
	Activo       bool            `json:"activo"`
}

type ProductoListResponse struct {
	Data  []ProductoResponse `json:"data"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}
