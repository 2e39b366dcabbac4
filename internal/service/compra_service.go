package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mateoadann/ferrerp/internal/dto"
	"github.com/mateoadann/ferrerp/internal/model"
	"github.com/mateoadann/ferrerp/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CompraService gestiona órdenes de compra y sus recepciones parciales.
// Cada recepción suma stock por InventarioService y recalcula el estado de
// la orden desde las cantidades acumuladas.
type CompraService interface {
	CrearOrden(ctx context.Context, usuarioID uuid.UUID, req dto.CrearOrdenCompraRequest) (*dto.OrdenCompraResponse, error)
	Recibir(ctx context.Context, usuarioID uuid.UUID, id uuid.UUID, req dto.RecibirOrdenCompraRequest) (*dto.OrdenCompraResponse, error)
	Cancelar(ctx context.Context, id uuid.UUID) error
	Obtener(ctx context.Context, id uuid.UUID) (*dto.OrdenCompraResponse, error)
	Listar(ctx context.Context, filter dto.OrdenCompraFilter) (*dto.OrdenCompraListResponse, error)
}

type compraService struct {
	repo          repository.OrdenCompraRepository
	productoRepo  repository.ProductoRepository
	proveedorRepo repository.ProveedorRepository
	secuenciaRepo repository.SecuenciaRepository
	inventario    InventarioService
}

func NewCompraService(
	repo repository.OrdenCompraRepository,
	productoRepo repository.ProductoRepository,
	proveedorRepo repository.ProveedorRepository,
	secuenciaRepo repository.SecuenciaRepository,
	inventario InventarioService,
) CompraService {
	return &compraService{
		repo:          repo,
		productoRepo:  productoRepo,
		proveedorRepo: proveedorRepo,
		secuenciaRepo: secuenciaRepo,
		inventario:    inventario,
	}
}

// ── CrearOrden ────────────────────────────────────────────────────────────────
// Crear una orden no mueve stock: la mercadería entra recién al recibirse.

func (s *compraService) CrearOrden(ctx context.Context, usuarioID uuid.UUID, req dto.CrearOrdenCompraRequest) (*dto.OrdenCompraResponse, error) {
	provID, err := uuid.Parse(req.ProveedorID)
	if err != nil {
		return nil, ErrValidacion("proveedor_id inválido")
	}
	proveedor, err := s.proveedorRepo.FindByID(ctx, provID)
	if err != nil {
		return nil, ErrNoEncontrado("proveedor")
	}

	orden := &model.OrdenCompra{
		Fecha:       time.Now(),
		ProveedorID: provID,
		UsuarioID:   usuarioID,
		Estado:      model.OrdenPendiente,
		Notas:       strPtr(req.Observacion),
	}
	nombres := make(map[uuid.UUID]string, len(req.Items))
	for _, item := range req.Items {
		if !item.Cantidad.IsPositive() {
			return nil, ErrMontoInvalido("la cantidad pedida debe ser mayor a cero")
		}
		if item.CostoUnitario.IsNegative() {
			return nil, ErrMontoInvalido("el costo unitario no puede ser negativo")
		}
		pid, err := uuid.Parse(item.ProductoID)
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
		nombres[pid] = p.Nombre
		orden.Detalles = append(orden.Detalles, model.OrdenCompraDetalle{
			ProductoID:     pid,
			CantidadPedida: item.Cantidad,
			PrecioUnitario: item.CostoUnitario,
			Subtotal:       item.CostoUnitario.Mul(item.Cantidad).Round(2),
		})
	}
	orden.CalcularTotal()

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		numero, err := s.secuenciaRepo.Siguiente(tx, model.SecuenciaOrdenCompra, 0)
		if err != nil {
			return ErrAlmacenamiento(err)
		}
		orden.Numero = numero
		if err := s.repo.Create(ctx, tx, orden); err != nil {
			return ErrAlmacenamiento(err)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	log.Info().
		Str("orden_id", orden.ID.String()).
		Int("numero", orden.Numero).
		Str("proveedor", proveedor.Nombre).
		Msg("orden de compra creada")

	resp := ordenToResponse(orden)
	resp.Proveedor = proveedor.Nombre
	for i := range resp.Items {
		resp.Items[i].Producto = nombres[orden.Detalles[i].ProductoID]
	}
	return resp, nil
}

// ── Recibir ───────────────────────────────────────────────────────────────────
// Recepción parcial o total. El exceso sobre lo pedido se acepta y queda
// registrado con una advertencia; el proveedor a veces entrega de más y el
// stock físico manda.

func (s *compraService) Recibir(ctx context.Context, usuarioID uuid.UUID, id uuid.UUID, req dto.RecibirOrdenCompraRequest) (*dto.OrdenCompraResponse, error) {
	orden, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNoEncontrado("orden de compra")
	}
	if !orden.PuedeRecibir() {
		return nil, ErrTransicionInvalida(string(orden.Estado), "recepción")
	}

	recepciones := make(map[uuid.UUID]decimal.Decimal, len(req.Items))
	for _, item := range req.Items {
		if !item.Cantidad.IsPositive() {
			return nil, ErrMontoInvalido("la cantidad recibida debe ser mayor a cero")
		}
		did, err := uuid.Parse(item.DetalleID)
		if err != nil {
			return nil, ErrValidacion("detalle_id inválido")
		}
		recepciones[did] = item.Cantidad
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		// Relee con lock: dos recepciones concurrentes de la misma orden
		// serializan acá.
		bloqueada, err := s.repo.FindByIDTx(tx, id)
		if err != nil {
			return ErrAlmacenamiento(err)
		}
		if !bloqueada.PuedeRecibir() {
			return ErrTransicionInvalida(string(bloqueada.Estado), "recepción")
		}

		motivo := fmt.Sprintf("Recepción orden de compra #%d", bloqueada.Numero)
		for i := range bloqueada.Detalles {
			d := &bloqueada.Detalles[i]
			cantidad, ok := recepciones[d.ID]
			if !ok {
				continue
			}
			delete(recepciones, d.ID)

			nuevoRecibido := d.CantidadRecibida.Add(cantidad)
			if nuevoRecibido.GreaterThan(d.CantidadPedida) {
				log.Warn().
					Str("orden_id", id.String()).
					Str("detalle_id", d.ID.String()).
					Str("pedido", d.CantidadPedida.String()).
					Str("recibido_acumulado", nuevoRecibido.String()).
					Msg("recepción por encima de lo pedido")
			}

			if err := s.repo.UpdateDetalleRecibidoTx(tx, d.ID, nuevoRecibido); err != nil {
				return ErrAlmacenamiento(err)
			}
			d.CantidadRecibida = nuevoRecibido

			if _, err := s.inventario.AjustarTx(tx, d.ProductoID, model.MovStockCompra,
				cantidad, motivo, "orden_compra", &id, usuarioID); err != nil {
				return err
			}

			if req.ActualizarCostos {
				p, err := s.productoRepo.FindByID(ctx, d.ProductoID)
				if err == nil && !p.PrecioCosto.Equal(d.PrecioUnitario) {
					p.PrecioCosto = d.PrecioUnitario
					if err := s.productoRepo.Update(ctx, p); err != nil {
						return ErrAlmacenamiento(err)
					}
				}
			}
		}
		if len(recepciones) > 0 {
			return ErrValidacion("la recepción referencia líneas que no pertenecen a la orden")
		}

		desde := bloqueada.Estado
		bloqueada.ActualizarEstado()
		if err := s.repo.UpdateEstadoTx(tx, id, desde, bloqueada.Estado); err != nil {
			return ErrAlmacenamiento(err)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	actualizada, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrAlmacenamiento(err)
	}

	log.Info().
		Str("orden_id", id.String()).
		Str("estado", string(actualizada.Estado)).
		Msg("recepción de mercadería registrada")

	return ordenToResponse(actualizada), nil
}

// ── Cancelar ──────────────────────────────────────────────────────────────────

func (s *compraService) Cancelar(ctx context.Context, id uuid.UUID) error {
	orden, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return ErrNoEncontrado("orden de compra")
	}
	if !orden.PuedeCancelar() {
		return ErrNoCancelable(fmt.Sprintf(
			"una orden en estado %s no puede cancelarse", orden.Estado))
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		// Sólo una orden todavía pendiente se cancela; si una recepción
		// concurrente ya ingresó mercadería, el guard condicional lo detecta.
		return s.repo.UpdateEstadoTx(tx, id, model.OrdenPendiente, model.OrdenCancelada)
	})
	if txErr != nil {
		if errors.Is(txErr, repository.ErrCondicionNoCumplida) {
			return ErrNoCancelable("la orden recibió mercadería o fue cancelada por otra operación")
		}
		return ErrAlmacenamiento(txErr)
	}

	log.Info().Str("orden_id", id.String()).Msg("orden de compra cancelada")
	return nil
}

func (s *compraService) Obtener(ctx context.Context, id uuid.UUID) (*dto.OrdenCompraResponse, error) {
	orden, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNoEncontrado("orden de compra")
	}
	return ordenToResponse(orden), nil
}

func (s *compraService) Listar(ctx context.Context, filter dto.OrdenCompraFilter) (*dto.OrdenCompraListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	ordenes, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, ErrAlmacenamiento(err)
	}
	data := make([]dto.OrdenCompraResponse, 0, len(ordenes))
	for i := range ordenes {
		data = append(data, *ordenToResponse(&ordenes[i]))
	}
	return &dto.OrdenCompraListResponse{
		Data:  data,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func ordenToResponse(o *model.OrdenCompra) *dto.OrdenCompraResponse {
	items := make([]dto.ItemOrdenCompraResponse, 0, len(o.Detalles))
	for _, d := range o.Detalles {
		nombre := ""
		if d.Producto != nil {
			nombre = d.Producto.Nombre
		}
		items = append(items, dto.ItemOrdenCompraResponse{
			DetalleID:        d.ID.String(),
			ProductoID:       d.ProductoID.String(),
			Producto:         nombre,
			CantidadPedida:   d.CantidadPedida,
			CantidadRecibida: d.CantidadRecibida,
			CostoUnitario:    d.PrecioUnitario,
			Subtotal:         d.Subtotal,
		})
	}
	resp := &dto.OrdenCompraResponse{
		ID:          o.ID.String(),
		Numero:      o.Numero,
		Estado:      string(o.Estado),
		ProveedorID: o.ProveedorID.String(),
		Total:       o.Total,
		Items:       items,
		CreatedAt:   o.CreatedAt.UTC().Format(time.RFC3339),
	}
	if o.Proveedor != nil {
		resp.Proveedor = o.Proveedor.Nombre
	}
	if o.Notas != nil {
		resp.Observacion = *o.Notas
	}
	return resp
}
