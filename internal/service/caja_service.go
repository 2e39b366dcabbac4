package service

import (
	"context"
	"errors"
	"time"

	"github.com/mateoadann/ferrerp/internal/dto"
	"github.com/mateoadann/ferrerp/internal/model"
	"github.com/mateoadann/ferrerp/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CajaService interface {
	Abrir(ctx context.Context, usuarioID uuid.UUID, req dto.AbrirCajaRequest) (*dto.CajaResponse, error)
	Cerrar(ctx context.Context, usuarioID uuid.UUID, req dto.CerrarCajaRequest) (*dto.CajaResponse, error)
	RegistrarMovimiento(ctx context.Context, usuarioID uuid.UUID, req dto.MovimientoCajaRequest) (*dto.MovimientoCajaResponse, error)
	CajaActual(ctx context.Context) (*dto.CajaResponse, error)
	Historial(ctx context.Context, page, limit int) (*dto.CajaListResponse, error)

	// CajaAbierta devuelve la sesión abierta o ErrCajaNoAbierta. La usan
	// ventas y cobros para validar antes de registrar movimientos.
	CajaAbierta(ctx context.Context) (*model.Caja, error)

	// RegistrarMovimientoTx inserta un movimiento dentro de una transacción
	// en curso (venta, cobro, anulación).
	RegistrarMovimientoTx(tx *gorm.DB, m *model.MovimientoCaja) error
}

type cajaService struct {
	repo repository.CajaRepository
}

func NewCajaService(repo repository.CajaRepository) CajaService {
	return &cajaService{repo: repo}
}

// ── Abrir ─────────────────────────────────────────────────────────────────────

func (s *cajaService) Abrir(ctx context.Context, usuarioID uuid.UUID, req dto.AbrirCajaRequest) (*dto.CajaResponse, error) {
	if req.MontoInicial.IsNegative() {
		return nil, ErrMontoInvalido("el monto inicial no puede ser negativo")
	}
	if _, err := s.repo.FindAbierta(ctx); err == nil {
		return nil, ErrCajaYaAbierta()
	}

	caja := &model.Caja{
		FechaApertura:     time.Now(),
		UsuarioAperturaID: usuarioID,
		MontoInicial:      req.MontoInicial,
		Estado:            model.CajaAbierta,
		Observaciones:     strPtr(req.Observacion),
	}
	if err := s.repo.Create(ctx, caja); err != nil {
		// El índice parcial único resuelve la carrera entre dos aperturas
		// simultáneas: la que pierde cae acá.
		return nil, ErrCajaYaAbierta()
	}

	log.Info().
		Str("caja_id", caja.ID.String()).
		Str("monto_inicial", caja.MontoInicial.String()).
		Msg("caja abierta")

	return cajaToResponse(caja, false), nil
}

// ── Cerrar ────────────────────────────────────────────────────────────────────
// El monto esperado se calcula desde el ledger de movimientos, nunca desde
// un acumulador. Diferencia = real declarado - esperado.

func (s *cajaService) Cerrar(ctx context.Context, usuarioID uuid.UUID, req dto.CerrarCajaRequest) (*dto.CajaResponse, error) {
	if req.MontoReal.IsNegative() {
		return nil, ErrMontoInvalido("el monto real no puede ser negativo")
	}

	var caja *model.Caja
	var esperado, diferencia decimal.Decimal
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		// Lock y relectura del ledger dentro de la transacción: un movimiento
		// que se asienta después del cierre ya no pertenece a este arqueo, y
		// dos cierres simultáneos serializan sobre el update condicional.
		abierta, err := s.repo.FindAbiertaTx(tx)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCajaNoAbierta()
			}
			return ErrAlmacenamiento(err)
		}

		esperado = abierta.CalcularMontoEsperado()
		diferencia = req.MontoReal.Sub(esperado)
		ahora := time.Now()

		cierre := model.CierreCaja{
			FechaCierre:     ahora,
			UsuarioCierreID: usuarioID,
			MontoEsperado:   esperado,
			MontoReal:       req.MontoReal,
			Diferencia:      diferencia,
		}
		if req.Observacion != "" {
			cierre.Observaciones = strPtr(req.Observacion)
		}
		if err := s.repo.CerrarTx(tx, abierta.ID, cierre); err != nil {
			if errors.Is(err, repository.ErrCondicionNoCumplida) {
				return ErrCajaNoAbierta()
			}
			return ErrAlmacenamiento(err)
		}

		abierta.Estado = model.CajaCerrada
		abierta.FechaCierre = &cierre.FechaCierre
		abierta.UsuarioCierreID = &usuarioID
		abierta.MontoEsperado = &esperado
		abierta.MontoReal = &req.MontoReal
		abierta.Diferencia = &diferencia
		if cierre.Observaciones != nil {
			abierta.Observaciones = cierre.Observaciones
		}
		caja = abierta
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	evt := log.Info()
	if !diferencia.IsZero() {
		evt = log.Warn()
	}
	evt.Str("caja_id", caja.ID.String()).
		Str("esperado", esperado.String()).
		Str("real", req.MontoReal.String()).
		Str("diferencia", diferencia.String()).
		Msg("caja cerrada")

	return cajaToResponse(caja, true), nil
}

// ── RegistrarMovimiento ───────────────────────────────────────────────────────
// Ingreso / egreso manual sobre la caja abierta. Movements are immutable.

func (s *cajaService) RegistrarMovimiento(ctx context.Context, usuarioID uuid.UUID, req dto.MovimientoCajaRequest) (*dto.MovimientoCajaResponse, error) {
	if !req.Monto.IsPositive() {
		return nil, ErrMontoInvalido("el monto debe ser mayor a cero")
	}

	caja, err := s.CajaAbierta(ctx)
	if err != nil {
		return nil, err
	}

	mov := &model.MovimientoCaja{
		CajaID:      caja.ID,
		Tipo:        model.TipoMovimientoCaja(req.Tipo),
		Concepto:    model.ConceptoMovimientoCaja(req.Concepto),
		Descripcion: strPtr(req.Descripcion),
		Monto:       req.Monto,
		FormaPago:   model.PagoEfectivo,
		UsuarioID:   usuarioID,
	}
	if err := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		return s.repo.CreateMovimiento(ctx, tx, mov)
	}); err != nil {
		return nil, ErrAlmacenamiento(err)
	}

	return movimientoCajaToResponse(mov), nil
}

func (s *cajaService) CajaActual(ctx context.Context) (*dto.CajaResponse, error) {
	abierta, err := s.CajaAbierta(ctx)
	if err != nil {
		return nil, err
	}
	caja, err := s.repo.FindByID(ctx, abierta.ID)
	if err != nil {
		return nil, ErrAlmacenamiento(err)
	}
	// Para la caja abierta el esperado es informativo, se recalcula en vivo.
	esperado := caja.CalcularMontoEsperado()
	resp := cajaToResponse(caja, true)
	resp.MontoEsperado = &esperado
	return resp, nil
}

func (s *cajaService) Historial(ctx context.Context, page, limit int) (*dto.CajaListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 50
	}
	cajas, total, err := s.repo.ListCerradas(ctx, page, limit)
	if err != nil {
		return nil, ErrAlmacenamiento(err)
	}
	data := make([]dto.CajaResponse, 0, len(cajas))
	for i := range cajas {
		data = append(data, *cajaToResponse(&cajas[i], false))
	}
	return &dto.CajaListResponse{Data: data, Total: total, Page: page, Limit: limit}, nil
}

func (s *cajaService) CajaAbierta(ctx context.Context) (*model.Caja, error) {
	caja, err := s.repo.FindAbierta(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCajaNoAbierta()
		}
		return nil, ErrAlmacenamiento(err)
	}
	return caja, nil
}

func (s *cajaService) RegistrarMovimientoTx(tx *gorm.DB, m *model.MovimientoCaja) error {
	return s.repo.CreateMovimiento(context.Background(), tx, m)
}

func cajaToResponse(c *model.Caja, conMovimientos bool) *dto.CajaResponse {
	resp := &dto.CajaResponse{
		ID:            c.ID.String(),
		Estado:        string(c.Estado),
		MontoInicial:  c.MontoInicial,
		MontoEsperado: c.MontoEsperado,
		MontoReal:     c.MontoReal,
		Diferencia:    c.Diferencia,
		FechaApertura: c.FechaApertura.UTC().Format(time.RFC3339),
	}
	if c.FechaCierre != nil {
		fc := c.FechaCierre.UTC().Format(time.RFC3339)
		resp.FechaCierre = &fc
	}
	if c.Observaciones != nil {
		resp.Observacion = *c.Observaciones
	}
	if conMovimientos {
		for i := range c.Movimientos {
			resp.Movimientos = append(resp.Movimientos, *movimientoCajaToResponse(&c.Movimientos[i]))
		}
	}
	return resp
}

func movimientoCajaToResponse(m *model.MovimientoCaja) *dto.MovimientoCajaResponse {
	desc := ""
	if m.Descripcion != nil {
		desc = *m.Descripcion
	}
	return &dto.MovimientoCajaResponse{
		ID:          m.ID.String(),
		Tipo:        string(m.Tipo),
		Concepto:    string(m.Concepto),
		FormaPago:   string(m.FormaPago),
		Monto:       m.Monto,
		Descripcion: desc,
		CreatedAt:   m.CreatedAt.UTC().Format(time.RFC3339),
	}
}
