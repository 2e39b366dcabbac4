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

// CuentaCorrienteService administra el crédito de clientes. Los cargos nacen
// de ventas a cuenta corriente (CargarTx, dentro de la transacción de la
// venta); los pagos entran por ventanilla y generan el ingreso de caja.
type CuentaCorrienteService interface {
	// CargarTx aumenta la deuda del cliente validando el límite de crédito
	// en el mismo UPDATE. Registra el movimiento del ledger.
	CargarTx(tx *gorm.DB, clienteID uuid.UUID, monto decimal.Decimal, refTipo string, refID *uuid.UUID, descripcion string, usuarioID uuid.UUID) error

	// RevertirCargoTx reduce la deuda al anular una venta a crédito.
	RevertirCargoTx(tx *gorm.DB, clienteID uuid.UUID, monto decimal.Decimal, refID *uuid.UUID, descripcion string, usuarioID uuid.UUID) error

	// RegistrarPago cobra deuda en efectivo: baja el saldo y registra el
	// ingreso en la caja abierta. Sin caja abierta no hay cobro.
	RegistrarPago(ctx context.Context, usuarioID uuid.UUID, clienteID uuid.UUID, req dto.PagoCuentaCorrienteRequest) (*dto.MovimientoCuentaCorrienteResponse, error)

	Movimientos(ctx context.Context, clienteID uuid.UUID) ([]dto.MovimientoCuentaCorrienteResponse, error)
}

type cuentaCorrienteService struct {
	clienteRepo repository.ClienteRepository
	caja        CajaService
}

func NewCuentaCorrienteService(clienteRepo repository.ClienteRepository, caja CajaService) CuentaCorrienteService {
	return &cuentaCorrienteService{clienteRepo: clienteRepo, caja: caja}
}

func (s *cuentaCorrienteService) CargarTx(tx *gorm.DB, clienteID uuid.UUID, monto decimal.Decimal, refTipo string, refID *uuid.UUID, descripcion string, usuarioID uuid.UUID) error {
	if !monto.IsPositive() {
		return ErrMontoInvalido("el monto del cargo debe ser mayor a cero")
	}

	posterior, err := s.clienteRepo.CargarSaldoTx(tx, clienteID, monto)
	if err != nil {
		if errors.Is(err, repository.ErrCondicionNoCumplida) {
			c, ferr := s.clienteRepo.FindByID(context.Background(), clienteID)
			if ferr != nil {
				return ErrNoEncontrado("cliente")
			}
			return ErrLimiteCredito(c.CreditoDisponible())
		}
		return ErrAlmacenamiento(err)
	}

	mov := &model.MovimientoCuentaCorriente{
		ClienteID:      clienteID,
		Tipo:           model.MovCCCargo,
		Monto:          monto,
		SaldoAnterior:  posterior.Sub(monto),
		SaldoPosterior: posterior,
		ReferenciaTipo: strPtr(refTipo),
		ReferenciaID:   refID,
		Descripcion:    strPtr(descripcion),
		UsuarioID:      usuarioID,
	}
	if err := s.clienteRepo.CreateMovimientoCC(context.Background(), tx, mov); err != nil {
		return ErrAlmacenamiento(err)
	}
	return nil
}

func (s *cuentaCorrienteService) RevertirCargoTx(tx *gorm.DB, clienteID uuid.UUID, monto decimal.Decimal, refID *uuid.UUID, descripcion string, usuarioID uuid.UUID) error {
	posterior, err := s.clienteRepo.PagarSaldoTx(tx, clienteID, monto)
	if err != nil {
		if errors.Is(err, repository.ErrCondicionNoCumplida) {
			return ErrMontoInvalido("la reversión dejaría el saldo del cliente en negativo")
		}
		return ErrAlmacenamiento(err)
	}

	mov := &model.MovimientoCuentaCorriente{
		ClienteID:      clienteID,
		Tipo:           model.MovCCPago,
		Monto:          monto,
		SaldoAnterior:  posterior.Add(monto),
		SaldoPosterior: posterior,
		ReferenciaTipo: strPtr("anulacion_venta"),
		ReferenciaID:   refID,
		Descripcion:    strPtr(descripcion),
		UsuarioID:      usuarioID,
	}
	if err := s.clienteRepo.CreateMovimientoCC(context.Background(), tx, mov); err != nil {
		return ErrAlmacenamiento(err)
	}
	return nil
}

func (s *cuentaCorrienteService) RegistrarPago(ctx context.Context, usuarioID uuid.UUID, clienteID uuid.UUID, req dto.PagoCuentaCorrienteRequest) (*dto.MovimientoCuentaCorrienteResponse, error) {
	if !req.Monto.IsPositive() {
		return nil, ErrMontoInvalido("el monto del pago debe ser mayor a cero")
	}

	cliente, err := s.clienteRepo.FindByID(ctx, clienteID)
	if err != nil {
		return nil, ErrNoEncontrado("cliente")
	}
	if req.Monto.GreaterThan(cliente.SaldoCuentaCorriente) {
		return nil, ErrMontoInvalido(fmt.Sprintf(
			"el pago supera la deuda actual de %s", cliente.SaldoCuentaCorriente.StringFixed(2)))
	}

	caja, err := s.caja.CajaAbierta(ctx)
	if err != nil {
		return nil, err
	}

	var movCC *model.MovimientoCuentaCorriente
	txErr := runTx(ctx, s.clienteRepo.DB(), func(tx *gorm.DB) error {
		posterior, err := s.clienteRepo.PagarSaldoTx(tx, clienteID, req.Monto)
		if err != nil {
			if errors.Is(err, repository.ErrCondicionNoCumplida) {
				return ErrMontoInvalido("el pago supera la deuda actual")
			}
			return ErrAlmacenamiento(err)
		}

		movCC = &model.MovimientoCuentaCorriente{
			ClienteID:      clienteID,
			Tipo:           model.MovCCPago,
			Monto:          req.Monto,
			SaldoAnterior:  posterior.Add(req.Monto),
			SaldoPosterior: posterior,
			ReferenciaTipo: strPtr("pago"),
			Descripcion:    strPtr(req.Descripcion),
			UsuarioID:      usuarioID,
		}
		if err := s.clienteRepo.CreateMovimientoCC(ctx, tx, movCC); err != nil {
			return ErrAlmacenamiento(err)
		}

		descripcion := fmt.Sprintf("Cobro cuenta corriente - %s", cliente.Nombre)
		movCaja := &model.MovimientoCaja{
			CajaID:         caja.ID,
			Tipo:           model.MovCajaIngreso,
			Concepto:       model.ConceptoCobroCC,
			Descripcion:    &descripcion,
			Monto:          req.Monto,
			FormaPago:      model.PagoEfectivo,
			ReferenciaTipo: strPtr("pago_cc"),
			ReferenciaID:   &movCC.ID,
			UsuarioID:      usuarioID,
		}
		if err := s.caja.RegistrarMovimientoTx(tx, movCaja); err != nil {
			return ErrAlmacenamiento(err)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	log.Info().
		Str("cliente_id", clienteID.String()).
		Str("monto", req.Monto.String()).
		Msg("pago de cuenta corriente registrado")

	return movimientoCCToResponse(movCC), nil
}

func (s *cuentaCorrienteService) Movimientos(ctx context.Context, clienteID uuid.UUID) ([]dto.MovimientoCuentaCorrienteResponse, error) {
	if _, err := s.clienteRepo.FindByID(ctx, clienteID); err != nil {
		return nil, ErrNoEncontrado("cliente")
	}
	movs, err := s.clienteRepo.ListMovimientosCC(ctx, clienteID)
	if err != nil {
		return nil, ErrAlmacenamiento(err)
	}
	data := make([]dto.MovimientoCuentaCorrienteResponse, 0, len(movs))
	for i := range movs {
		data = append(data, *movimientoCCToResponse(&movs[i]))
	}
	return data, nil
}

func movimientoCCToResponse(m *model.MovimientoCuentaCorriente) *dto.MovimientoCuentaCorrienteResponse {
	desc := ""
	if m.Descripcion != nil {
		desc = *m.Descripcion
	}
	return &dto.MovimientoCuentaCorrienteResponse{
		ID:             m.ID.String(),
		Tipo:           string(m.Tipo),
		Monto:          m.Monto,
		SaldoAnterior:  m.SaldoAnterior,
		SaldoPosterior: m.SaldoPosterior,
		Descripcion:    desc,
		CreatedAt:      m.CreatedAt.UTC().Format(time.RFC3339),
	}
}
