package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mateoadann/ferrerp/internal/dto"
	"github.com/mateoadann/ferrerp/internal/infra"
	"github.com/mateoadann/ferrerp/internal/model"
	"github.com/mateoadann/ferrerp/internal/repository"
	"github.com/mateoadann/ferrerp/internal/worker"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PresupuestoService maneja el ciclo de vida completo del presupuesto:
// borrador con precios congelados, máquina de estados y conversión a venta.
// Un presupuesto no toca stock ni caja hasta convertirse.
type PresupuestoService interface {
	Crear(ctx context.Context, usuarioID uuid.UUID, req dto.CrearPresupuestoRequest) (*dto.PresupuestoResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarPresupuestoRequest) (*dto.PresupuestoResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.PresupuestoResponse, error)
	ObtenerPorToken(ctx context.Context, token string) (*dto.PresupuestoResponse, error)
	Listar(ctx context.Context, filter dto.PresupuestoFilter) (*dto.PresupuestoListResponse, error)
	CambiarEstado(ctx context.Context, id uuid.UUID, req dto.CambiarEstadoPresupuestoRequest) (*dto.PresupuestoResponse, error)
	ConvertirAVenta(ctx context.Context, usuarioID uuid.UUID, id uuid.UUID, req dto.ConvertirPresupuestoRequest) (*dto.VentaResponse, error)

	// EnviarPorEmail renderiza el PDF del presupuesto y encola el envío;
	// el worker de emails lo despacha por SMTP.
	EnviarPorEmail(ctx context.Context, id uuid.UUID, destinatario string) error

	// ModeloPorToken devuelve el presupuesto completo, con detalles y
	// productos precargados, para renderizar el PDF del enlace público.
	ModeloPorToken(ctx context.Context, token string) (*model.Presupuesto, error)

	// MarcarVencidos lo invoca el barrido periódico; devuelve cuántos
	// presupuestos pasaron a vencido.
	MarcarVencidos(ctx context.Context) (int64, error)
}

type presupuestoService struct {
	repo          repository.PresupuestoRepository
	productoRepo  repository.ProductoRepository
	clienteRepo   repository.ClienteRepository
	secuenciaRepo repository.SecuenciaRepository
	caja          CajaService
	ventas        ventaDeps
	parametros    Parametros
	dispatcher    colaEmails
}

// colaEmails es la porción del dispatcher que este servicio usa; lo satisface
// worker.Dispatcher.
type colaEmails interface {
	EnqueueEmail(ctx context.Context, payload interface{}) error
}

func NewPresupuestoService(
	repo repository.PresupuestoRepository,
	productoRepo repository.ProductoRepository,
	clienteRepo repository.ClienteRepository,
	secuenciaRepo repository.SecuenciaRepository,
	ventaRepo repository.VentaRepository,
	inventario InventarioService,
	caja CajaService,
	cuentaCte CuentaCorrienteService,
	parametros Parametros,
	dispatcher colaEmails,
) PresupuestoService {
	return &presupuestoService{
		repo:          repo,
		productoRepo:  productoRepo,
		clienteRepo:   clienteRepo,
		secuenciaRepo: secuenciaRepo,
		caja:          caja,
		ventas: ventaDeps{
			ventaRepo:     ventaRepo,
			secuenciaRepo: secuenciaRepo,
			inventario:    inventario,
			caja:          caja,
			cuentaCte:     cuentaCte,
		},
		parametros: parametros,
		dispatcher: dispatcher,
	}
}

// nuevoToken genera el identificador no adivinable del enlace público.
func nuevoToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// ── Crear ─────────────────────────────────────────────────────────────────────

func (s *presupuestoService) Crear(ctx context.Context, usuarioID uuid.UUID, req dto.CrearPresupuestoRequest) (*dto.PresupuestoResponse, error) {
	if req.DescuentoPct.IsNegative() || req.DescuentoPct.GreaterThan(decimal.NewFromInt(100)) {
		return nil, ErrMontoInvalido("el descuento debe estar entre 0 y 100")
	}

	var clienteID *uuid.UUID
	if req.ClienteID != nil && *req.ClienteID != "" {
		cid, err := uuid.Parse(*req.ClienteID)
		if err != nil {
			return nil, ErrValidacion("cliente_id inválido")
		}
		if _, err := s.clienteRepo.FindByID(ctx, cid); err != nil {
			return nil, ErrNoEncontrado("cliente")
		}
		clienteID = &cid
	}
	if clienteID == nil && req.ClienteNombre == "" {
		return nil, ErrValidacion("se requiere un cliente registrado o un nombre de cliente")
	}

	detalles, err := s.resolverDetalles(ctx, req.Items)
	if err != nil {
		return nil, err
	}

	dias := req.DiasValidez
	if dias <= 0 {
		dias = s.parametros.DiasValidezPresupuesto()
	}

	token, err := nuevoToken()
	if err != nil {
		return nil, ErrAlmacenamiento(err)
	}

	ahora := time.Now()
	presupuesto := &model.Presupuesto{
		Fecha:               ahora,
		FechaVencimiento:    ahora.AddDate(0, 0, dias),
		ClienteID:           clienteID,
		ClienteNombre:       strPtr(req.ClienteNombre),
		ClienteTelefono:     strPtr(req.ClienteTelefono),
		UsuarioID:           usuarioID,
		DescuentoPorcentaje: req.DescuentoPct,
		Estado:              model.PresupuestoPendiente,
		Notas:               strPtr(req.Observacion),
		Token:               token,
		Detalles:            detalles,
	}
	presupuesto.CalcularTotales()

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		numero, err := s.secuenciaRepo.Siguiente(tx, model.SecuenciaPresupuesto, ahora.Year())
		if err != nil {
			return ErrAlmacenamiento(err)
		}
		presupuesto.Numero = numero
		presupuesto.Anio = ahora.Year()
		if err := s.repo.Create(ctx, tx, presupuesto); err != nil {
			return ErrAlmacenamiento(err)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	log.Info().
		Str("presupuesto_id", presupuesto.ID.String()).
		Str("numero", presupuesto.NumeroCompleto()).
		Msg("presupuesto creado")

	return presupuestoToResponse(presupuesto, true), nil
}

// resolverDetalles congela los precios de lista vigentes. No controla stock:
// el presupuesto es una promesa de precio, no una reserva de mercadería.
func (s *presupuestoService) resolverDetalles(ctx context.Context, items []dto.ItemPresupuestoRequest) ([]model.PresupuestoDetalle, error) {
	detalles := make([]model.PresupuestoDetalle, 0, len(items))
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
		detalles = append(detalles, model.PresupuestoDetalle{
			ProductoID:     pid,
			Cantidad:       item.Cantidad,
			PrecioUnitario: p.PrecioVenta,
			Subtotal:       p.PrecioVenta.Mul(item.Cantidad).Round(2),
		})
	}
	return detalles, nil
}

// ── Actualizar ────────────────────────────────────────────────────────────────
// Solo los pendientes se editan. La edición re-congela precios de lista.

func (s *presupuestoService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarPresupuestoRequest) (*dto.PresupuestoResponse, error) {
	presupuesto, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNoEncontrado("presupuesto")
	}
	if !presupuesto.PuedeEditar() {
		return nil, ErrNoEditable(fmt.Sprintf(
			"un presupuesto en estado %s no admite edición", presupuesto.Estado))
	}
	// Un pendiente con la validez cumplida ya es un vencido aunque el barrido
	// todavía no lo haya marcado; editarlo extendería la validez por la puerta
	// de atrás.
	if presupuesto.EstaVencido(time.Now()) {
		return nil, ErrNoEditable("el presupuesto está vencido y no admite edición")
	}
	if req.DescuentoPct.IsNegative() || req.DescuentoPct.GreaterThan(decimal.NewFromInt(100)) {
		return nil, ErrMontoInvalido("el descuento debe estar entre 0 y 100")
	}

	detalles, err := s.resolverDetalles(ctx, req.Items)
	if err != nil {
		return nil, err
	}

	if req.ClienteNombre != "" {
		presupuesto.ClienteNombre = strPtr(req.ClienteNombre)
	}
	if req.ClienteTelefono != "" {
		presupuesto.ClienteTelefono = strPtr(req.ClienteTelefono)
	}
	if req.DiasValidez > 0 {
		presupuesto.FechaVencimiento = presupuesto.Fecha.AddDate(0, 0, req.DiasValidez)
	}
	presupuesto.DescuentoPorcentaje = req.DescuentoPct
	presupuesto.Notas = strPtr(req.Observacion)
	presupuesto.Detalles = detalles
	presupuesto.CalcularTotales()

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.ReplaceDetalles(ctx, tx, id, detalles); err != nil {
			return ErrAlmacenamiento(err)
		}
		if err := s.repo.Update(ctx, presupuesto); err != nil {
			return ErrAlmacenamiento(err)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	return presupuestoToResponse(presupuesto, true), nil
}

func (s *presupuestoService) Obtener(ctx context.Context, id uuid.UUID) (*dto.PresupuestoResponse, error) {
	presupuesto, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNoEncontrado("presupuesto")
	}
	return presupuestoToResponse(presupuesto, true), nil
}

// ObtenerPorToken sirve el enlace público. No expone el token en la
// respuesta: quien lo consulta ya lo tiene.
func (s *presupuestoService) ObtenerPorToken(ctx context.Context, token string) (*dto.PresupuestoResponse, error) {
	presupuesto, err := s.repo.FindByToken(ctx, token)
	if err != nil {
		return nil, ErrNoEncontrado("presupuesto")
	}
	resp := presupuestoToResponse(presupuesto, false)
	return resp, nil
}

func (s *presupuestoService) ModeloPorToken(ctx context.Context, token string) (*model.Presupuesto, error) {
	presupuesto, err := s.repo.FindByToken(ctx, token)
	if err != nil {
		return nil, ErrNoEncontrado("presupuesto")
	}
	return presupuesto, nil
}

// ── EnviarPorEmail ────────────────────────────────────────────────────────────
// El PDF se escribe a un archivo temporal y el job viaja con la ruta; el
// worker de emails lo adjunta al despacharlo por SMTP.

func (s *presupuestoService) EnviarPorEmail(ctx context.Context, id uuid.UUID, destinatario string) error {
	if s.dispatcher == nil {
		return ErrValidacion("el envío de presupuestos por email no está habilitado")
	}

	presupuesto, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return ErrNoEncontrado("presupuesto")
	}

	data, err := infra.GenerarPresupuestoPDF(presupuesto, s.parametros.NombreComercio())
	if err != nil {
		return ErrAlmacenamiento(err)
	}
	ruta := filepath.Join(os.TempDir(), fmt.Sprintf("presupuesto-%s.pdf", presupuesto.NumeroCompleto()))
	if err := os.WriteFile(ruta, data, 0o600); err != nil {
		return ErrAlmacenamiento(err)
	}

	payload := worker.EmailJobPayload{
		ToEmail: destinatario,
		Subject: fmt.Sprintf("Presupuesto %s - %s", presupuesto.NumeroCompleto(), s.parametros.NombreComercio()),
		Body: fmt.Sprintf(
			"Le acercamos el presupuesto %s por un total de $%s, válido hasta el %s. Encontrará el detalle en el PDF adjunto.",
			presupuesto.NumeroCompleto(),
			presupuesto.Total.StringFixed(2),
			presupuesto.FechaVencimiento.Format("02/01/2006")),
		PDFPath: ruta,
	}
	if err := s.dispatcher.EnqueueEmail(ctx, payload); err != nil {
		return ErrAlmacenamiento(err)
	}

	log.Info().
		Str("presupuesto_id", id.String()).
		Str("destinatario", destinatario).
		Msg("presupuesto encolado para envío por email")
	return nil
}

func (s *presupuestoService) Listar(ctx context.Context, filter dto.PresupuestoFilter) (*dto.PresupuestoListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	presupuestos, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, ErrAlmacenamiento(err)
	}
	data := make([]dto.PresupuestoResponse, 0, len(presupuestos))
	for i := range presupuestos {
		data = append(data, *presupuestoToResponse(&presupuestos[i], true))
	}
	return &dto.PresupuestoListResponse{
		Data:  data,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

// ── CambiarEstado ─────────────────────────────────────────────────────────────
// Acepta o rechaza un pendiente. Un pendiente cuya fecha ya pasó se
// considera vencido aunque el barrido todavía no lo haya marcado.

func (s *presupuestoService) CambiarEstado(ctx context.Context, id uuid.UUID, req dto.CambiarEstadoPresupuestoRequest) (*dto.PresupuestoResponse, error) {
	presupuesto, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNoEncontrado("presupuesto")
	}

	hacia := model.EstadoPresupuesto(req.Estado)
	desde := presupuesto.Estado
	if presupuesto.EstaVencido(time.Now()) {
		desde = model.PresupuestoVencido
	}
	if !model.TransicionPresupuestoValida(desde, hacia) {
		return nil, ErrTransicionInvalida(string(desde), string(hacia))
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.UpdateEstadoTx(tx, id, presupuesto.Estado, hacia); err != nil {
			if errors.Is(err, repository.ErrCondicionNoCumplida) {
				return ErrTransicionInvalida(string(presupuesto.Estado), string(hacia))
			}
			return ErrAlmacenamiento(err)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	presupuesto.Estado = hacia
	log.Info().
		Str("presupuesto_id", id.String()).
		Str("desde", string(desde)).
		Str("hacia", string(hacia)).
		Msg("presupuesto cambió de estado")

	return presupuestoToResponse(presupuesto, true), nil
}

// ── ConvertirAVenta ───────────────────────────────────────────────────────────
// Toma los precios congelados del presupuesto, no los de lista. La venta y
// la marca de convertido comparten transacción: o salen las dos o ninguna.

func (s *presupuestoService) ConvertirAVenta(ctx context.Context, usuarioID uuid.UUID, id uuid.UUID, req dto.ConvertirPresupuestoRequest) (*dto.VentaResponse, error) {
	presupuesto, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNoEncontrado("presupuesto")
	}
	if !presupuesto.PuedeConvertir() {
		return nil, ErrNoConvertible(fmt.Sprintf(
			"solo un presupuesto aceptado puede convertirse, el actual está %s", presupuesto.Estado))
	}

	formaPago := model.FormaPago(req.FormaPago)

	clienteID := presupuesto.ClienteID
	if req.ClienteID != nil && *req.ClienteID != "" {
		cid, err := uuid.Parse(*req.ClienteID)
		if err != nil {
			return nil, ErrValidacion("cliente_id inválido")
		}
		if _, err := s.clienteRepo.FindByID(ctx, cid); err != nil {
			return nil, ErrNoEncontrado("cliente")
		}
		clienteID = &cid
	}
	if formaPago == model.PagoCuentaCorriente && clienteID == nil {
		return nil, ErrClienteRequerido()
	}

	caja, err := s.caja.CajaAbierta(ctx)
	if err != nil {
		return nil, err
	}

	lineas := make([]lineaVenta, 0, len(presupuesto.Detalles))
	for _, d := range presupuesto.Detalles {
		nombre := ""
		var disponible decimal.Decimal
		if d.Producto != nil {
			nombre = d.Producto.Nombre
			disponible = d.Producto.StockActual
			if !d.Producto.Activo {
				return nil, ErrProductoInactivo(nombre)
			}
			if disponible.LessThan(d.Cantidad) {
				return nil, ErrStockInsuficiente(nombre, d.Cantidad, disponible)
			}
		}
		lineas = append(lineas, lineaVenta{
			productoID: d.ProductoID,
			nombre:     nombre,
			precio:     d.PrecioUnitario,
			cantidad:   d.Cantidad,
			subtotal:   d.Subtotal,
		})
	}

	observacion := fmt.Sprintf("Conversión del presupuesto %s", presupuesto.NumeroCompleto())

	var venta *model.Venta
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.UpdateEstadoTx(tx, id, model.PresupuestoAceptado, model.PresupuestoConvertido); err != nil {
			if errors.Is(err, repository.ErrCondicionNoCumplida) {
				return ErrNoConvertible("el presupuesto ya fue convertido o cambió de estado")
			}
			return ErrAlmacenamiento(err)
		}
		var err error
		venta, err = crearVentaEnTx(s.ventas, tx, crearVentaParams{
			usuarioID:     usuarioID,
			cajaID:        caja.ID,
			clienteID:     clienteID,
			presupuestoID: &id,
			formaPago:     formaPago,
			descuentoPct:  presupuesto.DescuentoPorcentaje,
			lineas:        lineas,
			observacion:   observacion,
		})
		return err
	})
	if txErr != nil {
		return nil, txErr
	}

	log.Info().
		Str("presupuesto_id", id.String()).
		Str("venta_id", venta.ID.String()).
		Str("numero_venta", venta.NumeroCompleto()).
		Msg("presupuesto convertido a venta")

	resp := ventaToResponse(venta)
	for i, l := range lineas {
		resp.Items[i].Producto = l.nombre
	}
	return resp, nil
}

func (s *presupuestoService) MarcarVencidos(ctx context.Context) (int64, error) {
	n, err := s.repo.MarcarVencidos(ctx, time.Now())
	if err != nil {
		return 0, ErrAlmacenamiento(err)
	}
	if n > 0 {
		log.Info().Int64("cantidad", n).Msg("presupuestos marcados como vencidos")
	}
	return n, nil
}

func presupuestoToResponse(p *model.Presupuesto, conToken bool) *dto.PresupuestoResponse {
	items := make([]dto.ItemPresupuestoResponse, 0, len(p.Detalles))
	for _, d := range p.Detalles {
		nombre := ""
		if d.Producto != nil {
			nombre = d.Producto.Nombre
		}
		items = append(items, dto.ItemPresupuestoResponse{
			ProductoID:     d.ProductoID.String(),
			Producto:       nombre,
			Cantidad:       d.Cantidad,
			PrecioUnitario: d.PrecioUnitario,
			Subtotal:       d.Subtotal,
		})
	}
	resp := &dto.PresupuestoResponse{
		ID:               p.ID.String(),
		Numero:           p.Numero,
		NumeroCompleto:   p.NumeroCompleto(),
		Estado:           string(p.Estado),
		Cliente:          p.NombreCliente(),
		Subtotal:         p.Subtotal,
		DescuentoPct:     p.DescuentoPorcentaje,
		DescuentoMonto:   p.DescuentoMonto,
		Total:            p.Total,
		FechaVencimiento: p.FechaVencimiento.Format("2006-01-02"),
		Items:            items,
		CreatedAt:        p.CreatedAt.UTC().Format(time.RFC3339),
	}
	if conToken {
		resp.Token = p.Token
	}
	if p.ClienteTelefono != nil {
		resp.ClienteTelefono = *p.ClienteTelefono
	}
	if p.Notas != nil {
		resp.Observacion = *p.Notas
	}
	return resp
}
