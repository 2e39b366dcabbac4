package dto

import "github.com/shopspring/decimal"

type ItemOrdenCompraRequest struct {
	ProductoID   string          `json:"producto_id"   validate:"required,uuid"`
	Cantidad     decimal.Decimal `json:"cantidad"      validate:"required"`
	CostoUnitario decimal.Decimal `json:"costo_unitario" validate:"required"`
}

type CrearOrdenCompraRequest struct {
	ProveedorID string                   `json:"proveedor_id" validate:"required,uuid"`
	Items       []ItemOrdenCompraRequest `json:"items"        validate:"required,min=1,dive"`
	Observacion string                   `json:"observacion"  validate:"max=500"`
}

type RecepcionItemRequest struct {
	DetalleID string          `json:"detalle_id" validate:"required,uuid"`
	Cantidad  decimal.Decimal `json:"cantidad"   validate:"required"`
}

type RecibirOrdenCompraRequest struct {
	Items []RecepcionItemRequest `json:"items" validate:"required,min=1,dive"`
	// ActualizarCostos aplica el costo unitario de la orden como nuevo
	// precio de costo del producto al recibir.
	ActualizarCostos bool `json:"actualizar_costos"`
}

type ItemOrdenCompraResponse struct {
	DetalleID        string          `json:"detalle_id"`
	ProductoID       string          `json:"producto_id"`
	Producto         string          `json:"producto"`
	CantidadPedida   decimal.Decimal `json:"cantidad_pedida"`
	CantidadRecibida decimal.Decimal `json:"cantidad_recibida"`
	CostoUnitario    decimal.Decimal `json:"costo_unitario"`
	Subtotal         decimal.Decimal `json:"subtotal"`
}

type OrdenCompraResponse struct {
	ID          string                    `json:"id"`
	Numero      int                       `json:"numero"`
	Estado      string                    `json:"estado"`
	ProveedorID string                    `json:"proveedor_id"`
	Proveedor   string                    `json:"proveedor"`
	Total       decimal.Decimal           `json:"total"`
	Items       []ItemOrdenCompraResponse `json:"items"`
	Observacion string                    `json:"observacion,omitempty"`
	CreatedAt   string                    `json:"created_at"`
}

type OrdenCompraListResponse struct {
	Data  []OrdenCompraResponse `json:"data"`
	Total int64                 `json:"total"`
	Page  int                   `json:"page"`
	Limit int                   `json:"limit"`
}
