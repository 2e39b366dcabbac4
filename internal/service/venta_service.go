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

type VentaService interface {
	Registrar(ctx context.Context, usuarioID uuid.UUID, req dto.RegistrarVentaRequest) (*dto.VentaResponse, error)
	Anular(ctx context.Context, usuarioID uuid.UUID, id uuid.UUID, motivo string) error
	Obtener(ctx context.Context, id uuid.UUID) (*dto.VentaResponse, error)
	Listar(ctx context.Context, filter dto.VentaFilter) (*dto.VentaListResponse, error)
}

type ventaService struct {
	repo          repository.VentaRepository
	productoRepo  repository.ProductoRepository
	clienteRepo   repository.ClienteRepository
	secuenciaRepo repository.SecuenciaRepository
	inventario    InventarioService
	caja          CajaService
	cuentaCte     CuentaCorrienteService
}

func NewVentaService(
	repo repository.VentaRepository,
	productoRepo repository.ProductoRepository,
	clienteRepo repository.ClienteRepository,
	secuenciaRepo repository.SecuenciaRepository,
	inventario InventarioService,
	caja CajaService,
	cuentaCte CuentaCorrienteService,
) VentaService {
	return &ventaService{
		repo:          repo,
		productoRepo:  productoRepo,
		clienteRepo:   clienteRepo,
		secuenciaRepo: secuenciaRepo,
		inventario:    inventario,
		caja:          caja,
		cuentaCte:     cuentaCte,
	}
}

// lineaVenta es una línea ya resuelta contra el catálogo, lista para
// persistir. El precio queda congelado al momento de la resolución.
type lineaVenta struct {
	productoID uuid.UUID
	nombre     string
	precio     decimal.Decimal
	cantidad   decimal.Decimal
	subtotal   decimal.Decimal
}

// ── Registrar ─────────────────────────────────────────────────────────────────
// Toda la mutación ocurre en una única transacción: número de documento,
// venta + detalles, descuento de stock con su movimiento por línea, cargo a
// cuenta corriente o ingreso de caja según la forma de pago. Cualquier
// falla revierte todo, número incluido.

func (s *ventaService) Registrar(ctx context.Context, usuarioID uuid.UUID, req dto.RegistrarVentaRequest) (*dto.VentaResponse, error) {
	formaPago := model.FormaPago(req.FormaPago)

	if req.DescuentoPct.IsNegative() || req.DescuentoPct.GreaterThan(decimal.NewFromInt(100)) {
		return nil, ErrMontoInvalido("el descuento debe estar entre 0 y 100")
	}

	caja, err := s.caja.CajaAbierta(ctx)
	if err != nil {
		return nil, err
	}

	var clienteID *uuid.UUID
	var cliente *model.Cliente
	if req.ClienteID != nil && *req.ClienteID != "" {
		cid, err := uuid.Parse(*req.ClienteID)
		if err != nil {
			return nil, ErrValidacion("cliente_id inválido")
		}
		cliente, err = s.clienteRepo.FindByID(ctx, cid)
		if err != nil {
			return nil, ErrNoEncontrado("cliente")
		}
		clienteID = &cid
	}
	if formaPago == model.PagoCuentaCorriente && clienteID == nil {
		return nil, ErrClienteRequerido()
	}

	lineas, err := s.resolverLineas(ctx, req.Items)
	if err != nil {
		return nil, err
	}

	var venta *model.Venta
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		var err error
		venta, err = crearVentaEnTx(s.deps(), tx, crearVentaParams{
			usuarioID:    usuarioID,
			cajaID:       caja.ID,
			clienteID:    clienteID,
			formaPago:    formaPago,
			descuentoPct: req.DescuentoPct,
			lineas:       lineas,
			observacion:  req.Observacion,
		})
		return err
	})
	if txErr != nil {
		return nil, txErr
	}

	log.Info().
		Str("venta_id", venta.ID.String()).
		Str("numero", venta.NumeroCompleto()).
		Str("forma_pago", string(formaPago)).
		Str("total", venta.Total.String()).
		Msg("venta registrada")

	resp := ventaToResponse(venta)
	if cliente != nil {
		resp.Cliente = cliente.Nombre
	}
	for i, l := range lineas {
		resp.Items[i].Producto = l.nombre
	}
	return resp, nil
}

// resolverLineas valida cada renglón contra el catálogo y congela precios.
// Corre fuera de la transacción; el control definitivo de stock es el
// UPDATE condicional dentro de ella.
func (s *ventaService) resolverLineas(ctx context.Context, items []dto.ItemVentaRequest) ([]lineaVenta, error) {
	lineas := make([]lineaVenta, 0, len(items))
	for _, item := range items {
		if !item.Cantidad.IsPositive() {
			return nil, ErrMontoInvalido("la cantidad de cada línea debe ser mayor a cero")
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
		if p.StockActual.LessThan(item.Cantidad) {
			return nil, ErrStockInsuficiente(p.Nombre, item.Cantidad, p.StockActual)
		}
		lineas = append(lineas, lineaVenta{
			productoID: pid,
			nombre:     p.Nombre,
			precio:     p.PrecioVenta,
			cantidad:   item.Cantidad,
			subtotal:   p.PrecioVenta.Mul(item.Cantidad).Round(2),
		})
	}
	return lineas, nil
}

type crearVentaParams struct {
	usuarioID     uuid.UUID
	cajaID        uuid.UUID
	clienteID     *uuid.UUID
	presupuestoID *uuid.UUID
	formaPago     model.FormaPago
	descuentoPct  decimal.Decimal
	lineas        []lineaVenta
	observacion   string
}

// ventaDeps agrupa los colaboradores que necesita la creación de una venta.
// La comparten el alta directa y la conversión de presupuestos.
type ventaDeps struct {
	ventaRepo     repository.VentaRepository
	secuenciaRepo repository.SecuenciaRepository
	inventario    InventarioService
	caja          CajaService
	cuentaCte     CuentaCorrienteService
}

func (s *ventaService) deps() ventaDeps {
	return ventaDeps{
		ventaRepo:     s.repo,
		secuenciaRepo: s.secuenciaRepo,
		inventario:    s.inventario,
		caja:          s.caja,
		cuentaCte:     s.cuentaCte,
	}
}

// crearVentaEnTx es el único camino de creación de ventas.
func crearVentaEnTx(s ventaDeps, tx *gorm.DB, p crearVentaParams) (*model.Venta, error) {
	ahora := time.Now()
	numero, err := s.secuenciaRepo.Siguiente(tx, model.SecuenciaVenta, ahora.Year())
	if err != nil {
		return nil, ErrAlmacenamiento(err)
	}

	venta := &model.Venta{
		Numero:              numero,
		Anio:                ahora.Year(),
		Fecha:               ahora,
		ClienteID:           p.clienteID,
		UsuarioID:           p.usuarioID,
		CajaID:              p.cajaID,
		PresupuestoID:       p.presupuestoID,
		FormaPago:           p.formaPago,
		Estado:              model.VentaCompletada,
		DescuentoPorcentaje: p.descuentoPct,
		Observaciones:       strPtr(p.observacion),
	}
	for _, l := range p.lineas {
		venta.Detalles = append(venta.Detalles, model.VentaDetalle{
			ProductoID:     l.productoID,
			Cantidad:       l.cantidad,
			PrecioUnitario: l.precio,
			Subtotal:       l.subtotal,
		})
	}
	venta.CalcularTotales()

	if err := s.ventaRepo.Create(context.Background(), tx, venta); err != nil {
		return nil, ErrAlmacenamiento(err)
	}

	motivo := fmt.Sprintf("Venta %s", venta.NumeroCompleto())
	for _, l := range p.lineas {
		if _, err := s.inventario.AjustarTx(tx, l.productoID, model.MovStockVenta,
			l.cantidad, motivo, "venta", &venta.ID, p.usuarioID); err != nil {
			return nil, err
		}
	}

	if p.formaPago == model.PagoCuentaCorriente {
		if err := s.cuentaCte.CargarTx(tx, *p.clienteID, venta.Total,
			"venta", &venta.ID, motivo, p.usuarioID); err != nil {
			return nil, err
		}
	} else {
		descripcion := motivo
		mov := &model.MovimientoCaja{
			CajaID:         p.cajaID,
			Tipo:           model.MovCajaIngreso,
			Concepto:       model.ConceptoVenta,
			Descripcion:    &descripcion,
			Monto:          venta.Total,
			FormaPago:      p.formaPago,
			ReferenciaTipo: strPtr("venta"),
			ReferenciaID:   &venta.ID,
			UsuarioID:      p.usuarioID,
		}
		if err := s.caja.RegistrarMovimientoTx(tx, mov); err != nil {
			return nil, ErrAlmacenamiento(err)
		}
	}

	return venta, nil
}

// ── Anular ────────────────────────────────────────────────────────────────────
// La anulación nunca borra: repone stock con movimientos de devolución y
// compensa el cobro según la forma de pago original. Para ventas cobradas
// por caja la devolución del dinero exige una caja abierta donde asentar
// el egreso.

func (s *ventaService) Anular(ctx context.Context, usuarioID uuid.UUID, id uuid.UUID, motivo string) error {
	venta, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return ErrNoEncontrado("venta")
	}
	if !venta.EsAnulable() {
		return ErrNoAnulable("la venta ya está anulada")
	}

	var cajaID uuid.UUID
	if venta.FormaPago.EsMetodoCaja() {
		caja, err := s.caja.CajaAbierta(ctx)
		if err != nil {
			return err
		}
		cajaID = caja.ID
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.UpdateEstadoTx(tx, id, model.VentaCompletada, model.VentaAnulada, motivo); err != nil {
			if errors.Is(err, repository.ErrCondicionNoCumplida) {
				return ErrNoAnulable("la venta ya está anulada")
			}
			return ErrAlmacenamiento(err)
		}

		detalle := fmt.Sprintf("Anulación venta %s: %s", venta.NumeroCompleto(), motivo)
		for _, d := range venta.Detalles {
			if _, err := s.inventario.AjustarTx(tx, d.ProductoID, model.MovStockDevolucion,
				d.Cantidad, detalle, "anulacion_venta", &venta.ID, usuarioID); err != nil {
				return err
			}
		}

		switch {
		case venta.FormaPago == model.PagoCuentaCorriente:
			if err := s.cuentaCte.RevertirCargoTx(tx, *venta.ClienteID, venta.Total,
				&venta.ID, detalle, usuarioID); err != nil {
				return err
			}
		case venta.FormaPago.EsMetodoCaja():
			mov := &model.MovimientoCaja{
				CajaID:         cajaID,
				Tipo:           model.MovCajaEgreso,
				Concepto:       model.ConceptoDevolucion,
				Descripcion:    &detalle,
				Monto:          venta.Total,
				FormaPago:      venta.FormaPago,
				ReferenciaTipo: strPtr("anulacion_venta"),
				ReferenciaID:   &venta.ID,
				UsuarioID:      usuarioID,
			}
			if err := s.caja.RegistrarMovimientoTx(tx, mov); err != nil {
				return ErrAlmacenamiento(err)
			}
		}
		return nil
	})
	if txErr != nil {
		return txErr
	}

	log.Info().
		Str("venta_id", id.String()).
		Str("numero", venta.NumeroCompleto()).
		Str("motivo", motivo).
		Msg("venta anulada")
	return nil
}

func (s *ventaService) Obtener(ctx context.Context, id uuid.UUID) (*dto.VentaResponse, error) {
	venta, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNoEncontrado("venta")
	}
	return ventaToResponse(venta), nil
}

func (s *ventaService) Listar(ctx context.Context, filter dto.VentaFilter) (*dto.VentaListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	ventas, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, ErrAlmacenamiento(err)
	}
	data := make([]dto.VentaResponse, 0, len(ventas))
	for i := range ventas {
		data = append(data, *ventaToResponse(&ventas[i]))
	}
	return &dto.VentaListResponse{
		Data:  data,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func ventaToResponse(v *model.Venta) *dto.VentaResponse {
	items := make([]dto.ItemVentaResponse, 0, len(v.Detalles))
	for _, d := range v.Detalles {
		nombre := ""
		if d.Producto != nil {
			nombre = d.Producto.Nombre
		}
		items = append(items, dto.ItemVentaResponse{
			ProductoID:     d.ProductoID.String(),
			Producto:       nombre,
			Cantidad:       d.Cantidad,
			PrecioUnitario: d.PrecioUnitario,
			Subtotal:       d.Subtotal,
		})
	}
	resp := &dto.VentaResponse{
		ID:             v.ID.String(),
		Numero:         v.Numero,
		NumeroCompleto: v.NumeroCompleto(),
		FormaPago:      string(v.FormaPago),
		Subtotal:       v.Subtotal,
		DescuentoPct:   v.DescuentoPorcentaje,
		DescuentoMonto: v.DescuentoMonto,
		Total:          v.Total,
		Estado:         string(v.Estado),
		Items:          items,
		CreatedAt:      v.CreatedAt.UTC().Format(time.RFC3339),
	}
	if v.ClienteID != nil {
		cid := v.ClienteID.String()
		resp.ClienteID = &cid
	}
	if v.Cliente != nil {
		resp.Cliente = v.Cliente.Nombre
	}
	if v.Observaciones != nil {
		resp.Observacion = *v.Observaciones
	}
	return resp
}
