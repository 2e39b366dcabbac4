package repository

import (
	"context"
	"time"

	"github.com/mateoadann/ferrerp/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TotalFormaPago es una fila del agregado de ventas por forma de pago.
type TotalFormaPago struct {
	FormaPago string
	Cantidad  int64
	Total     decimal.Decimal
}

// ValuacionStock resume el inventario activo valuado a costo y a venta.
type ValuacionStock struct {
	Productos  int64
	Unidades   decimal.Decimal
	ValorCosto decimal.Decimal
	ValorVenta decimal.Decimal
	BajoMinimo int64
}

// ReporteRepository concentra los agregados de sólo lectura. Las sumas se
// hacen en SQL sobre los documentos mismos, nunca sobre acumuladores.
type ReporteRepository interface {
	TotalesVentas(ctx context.Context, desde, hasta time.Time) ([]TotalFormaPago, error)
	ValuacionStock(ctx context.Context) (*ValuacionStock, error)
}

type reporteRepo struct{ db *gorm.DB }

func NewReporteRepository(db *gorm.DB) ReporteRepository { return &reporteRepo{db: db} }

// TotalesVentas agrupa las ventas completadas del período por forma de pago.
// Las anuladas quedan afuera: el reporte refleja lo efectivamente vendido.
func (r *reporteRepo) TotalesVentas(ctx context.Context, desde, hasta time.Time) ([]TotalFormaPago, error) {
	var out []TotalFormaPago
	err := r.db.WithContext(ctx).Model(&model.Venta{}).
		Select("forma_pago, COUNT(*) AS cantidad, COALESCE(SUM(total), 0) AS total").
		Where("estado = ? AND fecha >= ? AND fecha < ?", model.VentaCompletada, desde, hasta).
		Group("forma_pago").
		Order("forma_pago").
		Scan(&out).Error
	return out, err
}

func (r *reporteRepo) ValuacionStock(ctx context.Context) (*ValuacionStock, error) {
	var v ValuacionStock
	err := r.db.WithContext(ctx).Model(&model.Producto{}).
		Select(`COUNT(*) AS productos,
			COALESCE(SUM(stock_actual), 0) AS unidades,
			COALESCE(SUM(stock_actual * precio_costo), 0) AS valor_costo,
			COALESCE(SUM(stock_actual * precio_venta), 0) AS valor_venta,
			COUNT(*) FILTER (WHERE stock_actual < stock_minimo) AS bajo_minimo`).
		Where("activo = true").
		Scan(&v).Error
	return &v, err
}
