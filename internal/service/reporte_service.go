package service

import (
	"context"
	"time"

	"github.com/mateoadann/ferrerp/internal/dto"
	"github.com/mateoadann/ferrerp/internal/repository"

	"github.com/shopspring/decimal"
)

// ReporteService expone los agregados de lectura del negocio: ventas por
// período y valuación del inventario. No muta nada.
type ReporteService interface {
	ResumenVentas(ctx context.Context, desde, hasta time.Time) (*dto.ResumenVentasResponse, error)
	ValuacionStock(ctx context.Context) (*dto.ValuacionStockResponse, error)
}

type reporteService struct {
	repo repository.ReporteRepository
}

func NewReporteService(repo repository.ReporteRepository) ReporteService {
	return &reporteService{repo: repo}
}

// ResumenVentas cubre [desde, hasta): el límite superior es exclusivo para
// que dos períodos contiguos no cuenten una venta dos veces.
func (s *reporteService) ResumenVentas(ctx context.Context, desde, hasta time.Time) (*dto.ResumenVentasResponse, error) {
	if !hasta.After(desde) {
		return nil, ErrValidacion("el período debe terminar después de su inicio")
	}

	filas, err := s.repo.TotalesVentas(ctx, desde, hasta)
	if err != nil {
		return nil, ErrAlmacenamiento(err)
	}

	resp := &dto.ResumenVentasResponse{
		Desde:        desde.UTC().Format(time.RFC3339),
		Hasta:        hasta.UTC().Format(time.RFC3339),
		TotalVendido: decimal.Zero,
		PorFormaPago: make([]dto.TotalFormaPagoResponse, 0, len(filas)),
	}
	for _, f := range filas {
		resp.CantidadVentas += f.Cantidad
		resp.TotalVendido = resp.TotalVendido.Add(f.Total)
		resp.PorFormaPago = append(resp.PorFormaPago, dto.TotalFormaPagoResponse{
			FormaPago: f.FormaPago,
			Cantidad:  f.Cantidad,
			Total:     f.Total,
		})
	}
	return resp, nil
}

func (s *reporteService) ValuacionStock(ctx context.Context) (*dto.ValuacionStockResponse, error) {
	v, err := s.repo.ValuacionStock(ctx)
	if err != nil {
		return nil, ErrAlmacenamiento(err)
	}
	return &dto.ValuacionStockResponse{
		Productos:       v.Productos,
		UnidadesTotales: v.Unidades,
		ValorCosto:      v.ValorCosto,
		ValorVenta:      v.ValorVenta,
		BajoMinimo:      v.BajoMinimo,
	}, nil
}
