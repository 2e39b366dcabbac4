package dto

// Filtros de listado, bindados desde el query string por el handler.

type ProductoFilter struct {
	Page      int    `form:"page,default=1"   validate:"min=1"`
	Limit     int    `form:"limit,default=50" validate:"min=1,max=200"`
	Activo    string `form:"activo"` // "true" (default), "false", "all"
	Codigo    string `form:"codigo"`
	Nombre    string `form:"nombre"`
	StockBajo bool   `form:"stock_bajo"`
}

type VentaFilter struct {
	Page      int    `form:"page,default=1"   validate:"min=1"`
	Limit     int    `form:"limit,default=50" validate:"min=1,max=200"`
	Estado    string `form:"estado"` // completada | anulada | all
	Anio      int    `form:"anio"`
	ClienteID string `form:"cliente_id" validate:"omitempty,uuid"`
	Desde     string `form:"desde"` // YYYY-MM-DD
	Hasta     string `form:"hasta"`
}

type PresupuestoFilter struct {
	Page   int    `form:"page,default=1"   validate:"min=1"`
	Limit  int    `form:"limit,default=50" validate:"min=1,max=200"`
	Estado string `form:"estado"`
	Anio   int    `form:"anio"`
}

type OrdenCompraFilter struct {
	Page        int    `form:"page,default=1"   validate:"min=1"`
	Limit       int    `form:"limit,default=50" validate:"min=1,max=200"`
	Estado      string `form:"estado"`
	ProveedorID string `form:"proveedor_id" validate:"omitempty,uuid"`
}

type MovimientoStockFilter struct {
	Page       int    `form:"page,default=1"    validate:"min=1"`
	Limit      int    `form:"limit,default=100" validate:"min=1,max=500"`
	ProductoID string `form:"producto_id" validate:"omitempty,uuid"`
	Tipo       string `form:"tipo"`
	Desde      string `form:"desde"`
	Hasta      string `form:"hasta"`
}

type ClienteFilter struct {
	Page     int    `form:"page,default=1"   validate:"min=1"`
	Limit    int    `form:"limit,default=50" validate:"min=1,max=200"`
	Activo   string `form:"activo"`
	Nombre   string `form:"nombre"`
	ConDeuda bool   `form:"con_deuda"`
}
