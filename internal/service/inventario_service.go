package service

import (
	"context"
	"errors"
	"time"

	"github.com/mateoadann/ferrerp/internal/dto"
	"github.com/mateoadann/ferrerp/internal/model"
	"github.com/mateoadann/ferrerp/internal/repository"
	"github.com/mateoadann/ferrerp/internal/worker"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// InventarioService concentra todo movimiento de stock. Ninguna otra capa
// toca stock_actual directamente: ventas, compras y ajustes pasan por acá
// para que cada cambio deje su MovimientoStock.
type InventarioService interface {
	// AjustarTx mueve stock dentro de una transacción existente y registra
	// el movimiento con los valores anterior y posterior.
	AjustarTx(tx *gorm.DB, productoID uuid.UUID, tipo model.TipoMovimientoStock, cantidad decimal.Decimal, motivo string, refTipo string, refID *uuid.UUID, usuarioID uuid.UUID) (*model.MovimientoStock, error)

	// Ajustar registra un ajuste manual en su propia transacción.
	Ajustar(ctx context.Context, usuarioID uuid.UUID, req dto.AjusteStockRequest) (*dto.MovimientoStockResponse, error)

	ListarMovimientos(ctx context.Context, filter dto.MovimientoStockFilter) (*dto.MovimientoStockListResponse, error)
	StockBajoMinimo(ctx context.Context) ([]dto.ProductoResponse, error)
}

type inventarioService struct {
	productoRepo   repository.ProductoRepository
	movimientoRepo repository.MovimientoStockRepository
	dispatcher     *worker.Dispatcher
	parametros     Parametros
}

func NewInventarioService(
	productoRepo repository.ProductoRepository,
	movimientoRepo repository.MovimientoStockRepository,
	dispatcher *worker.Dispatcher,
	parametros Parametros,
) InventarioService {
	return &inventarioService{
		productoRepo:   productoRepo,
		movimientoRepo: movimientoRepo,
		dispatcher:     dispatcher,
		parametros:     parametros,
	}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

func (s *inventarioService) AjustarTx(tx *gorm.DB, productoID uuid.UUID, tipo model.TipoMovimientoStock, cantidad decimal.Decimal, motivo string, refTipo string, refID *uuid.UUID, usuarioID uuid.UUID) (*model.MovimientoStock, error) {
	if !tipo.Valido() {
		return nil, ErrValidacion("tipo de movimiento de stock desconocido: " + string(tipo))
	}
	if !cantidad.IsPositive() {
		return nil, ErrMontoInvalido("la cantidad debe ser mayor a cero")
	}

	delta := cantidad
	if tipo.EsSalida() {
		delta = cantidad.Neg()
	}

	posterior, err := s.productoRepo.AjustarStockTx(tx, productoID, delta)
	if err != nil {
		if errors.Is(err, repository.ErrCondicionNoCumplida) {
			p, ferr := s.productoRepo.FindByID(context.Background(), productoID)
			if ferr != nil {
				return nil, ErrNoEncontrado("producto")
			}
			return nil, ErrStockInsuficiente(p.Nombre, cantidad, p.StockActual)
		}
		return nil, ErrAlmacenamiento(err)
	}

	mov := &model.MovimientoStock{
		ProductoID:     productoID,
		Tipo:           tipo,
		Cantidad:       delta,
		StockAnterior:  posterior.Sub(delta),
		StockPosterior: posterior,
		Motivo:         strPtr(motivo),
		ReferenciaTipo: strPtr(refTipo),
		ReferenciaID:   refID,
		UsuarioID:      usuarioID,
	}
	if err := s.movimientoRepo.CreateTx(tx, mov); err != nil {
		return nil, ErrAlmacenamiento(err)
	}

	s.notificarStockBajo(productoID, posterior)
	return mov, nil
}

// notificarStockBajo encola el aviso por email cuando el stock quedó en o
// bajo el mínimo. Best effort, nunca voltea la operación que lo dispara.
func (s *inventarioService) notificarStockBajo(productoID uuid.UUID, stockPosterior decimal.Decimal) {
	if s.dispatcher == nil || s.parametros == nil || s.parametros.EmailAlertasStock() == "" {
		return
	}
	p, err := s.productoRepo.FindByID(context.Background(), productoID)
	if err != nil || !p.StockBajo() {
		return
	}
	payload := map[string]interface{}{
		"producto_id":  productoID.String(),
		"producto":     p.Nombre,
		"stock_actual": stockPosterior.String(),
		"stock_minimo": p.StockMinimo.String(),
		"destinatario": s.parametros.EmailAlertasStock(),
	}
	if err := s.dispatcher.EnqueueAlertaStock(context.Background(), payload); err != nil {
		log.Warn().Err(err).Str("producto_id", productoID.String()).
			Msg("no se pudo encolar la alerta de stock bajo")
	}
}

func (s *inventarioService) Ajustar(ctx context.Context, usuarioID uuid.UUID, req dto.AjusteStockRequest) (*dto.MovimientoStockResponse, error) {
	pid, err := uuid.Parse(req.ProductoID)
	if err != nil {
		return nil, ErrValidacion("producto_id inválido")
	}
	p, err := s.productoRepo.FindByID(ctx, pid)
	if err != nil {
		return nil, ErrNoEncontrado("producto")
	}
	if !p.Activo {
		return nil, ErrProductoInactivo(p.Nombre)
	}

	var mov *model.MovimientoStock
	txErr := runTx(ctx, s.productoRepo.DB(), func(tx *gorm.DB) error {
		var err error
		mov, err = s.AjustarTx(tx, pid, model.TipoMovimientoStock(req.Tipo), req.Cantidad, req.Motivo, "", nil, usuarioID)
		return err
	})
	if txErr != nil {
		return nil, txErr
	}

	log.Info().
		Str("producto_id", pid.String()).
		Str("tipo", req.Tipo).
		Str("cantidad", req.Cantidad.String()).
		Msg("ajuste manual de stock registrado")

	resp := movimientoStockToResponse(mov)
	resp.Producto = p.Nombre
	return resp, nil
}

func (s *inventarioService) ListarMovimientos(ctx context.Context, filter dto.MovimientoStockFilter) (*dto.MovimientoStockListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 100
	}
	movimientos, total, err := s.movimientoRepo.List(ctx, filter)
	if err != nil {
		return nil, ErrAlmacenamiento(err)
	}
	data := make([]dto.MovimientoStockResponse, 0, len(movimientos))
	for i := range movimientos {
		r := movimientoStockToResponse(&movimientos[i])
		if movimientos[i].Producto != nil {
			r.Producto = movimientos[i].Producto.Nombre
		}
		data = append(data, *r)
	}
	return &dto.MovimientoStockListResponse{
		Data:  data,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (s *inventarioService) StockBajoMinimo(ctx context.Context) ([]dto.ProductoResponse, error) {
	productos, err := s.productoRepo.ListStockBajo(ctx)
	if err != nil {
		return nil, ErrAlmacenamiento(err)
	}
	data := make([]dto.ProductoResponse, 0, len(productos))
	for i := range productos {
		data = append(data, *productoToResponse(&productos[i]))
	}
	return data, nil
}

func movimientoStockToResponse(m *model.MovimientoStock) *dto.MovimientoStockResponse {
	motivo := ""
	if m.Motivo != nil {
		motivo = *m.Motivo
	}
	return &dto.MovimientoStockResponse{
		ID:             m.ID.String(),
		ProductoID:     m.ProductoID.String(),
		Tipo:           string(m.Tipo),
		Cantidad:       m.Cantidad,
		StockAnterior:  m.StockAnterior,
		StockPosterior: m.StockPosterior,
		Motivo:         motivo,
		CreatedAt:      m.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// strPtr devuelve nil para la cadena vacía, así las columnas opcionales
// quedan NULL en vez de "".
func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
