package service

import (
	"context"

	"github.com/mateoadann/ferrerp/internal/dto"
	"github.com/mateoadann/ferrerp/internal/model"
	"github.com/mateoadann/ferrerp/internal/repository"

	"github.com/google/uuid"
)

type ClienteService interface {
	Crear(ctx context.Context, req dto.CrearClienteRequest) (*dto.ClienteResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.ClienteResponse, error)
	Listar(ctx context.Context, filter dto.ClienteFilter) (*dto.ClienteListResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarClienteRequest) (*dto.ClienteResponse, error)
	Desactivar(ctx context.Context, id uuid.UUID) error
}

type clienteService struct {
	repo repository.ClienteRepository
}

func NewClienteService(repo repository.ClienteRepository) ClienteService {
	return &clienteService{repo: repo}
}

func (s *clienteService) Crear(ctx context.Context, req dto.CrearClienteRequest) (*dto.ClienteResponse, error) {
	if req.LimiteCredito.IsNegative() {
		return nil, ErrMontoInvalido("el límite de crédito no puede ser negativo")
	}
	c := &model.Cliente{
		Nombre:        req.Nombre,
		DniCuit:       strPtr(req.DniCuit),
		Telefono:      strPtr(req.Telefono),
		Email:         strPtr(req.Email),
		Direccion:     strPtr(req.Direccion),
		LimiteCredito: req.LimiteCredito,
		Activo:        true,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, ErrAlmacenamiento(err)
	}
	return clienteToResponse(c), nil
}

func (s *clienteService) Obtener(ctx context.Context, id uuid.UUID) (*dto.ClienteResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNoEncontrado("cliente")
	}
	return clienteToResponse(c), nil
}

func (s *clienteService) Listar(ctx context.Context, filter dto.ClienteFilter) (*dto.ClienteListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	clientes, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, ErrAlmacenamiento(err)
	}
	data := make([]dto.ClienteResponse, 0, len(clientes))
	for i := range clientes {
		data = append(data, *clienteToResponse(&clientes[i]))
	}
	return &dto.ClienteListResponse{
		Data:  data,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

// Actualizar no toca el saldo de cuenta corriente; eso es territorio
// exclusivo de CuentaCorrienteService. Bajar el límite por debajo del saldo
// actual es válido: bloquea nuevos cargos sin invalidar la deuda existente.
func (s *clienteService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarClienteRequest) (*dto.ClienteResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNoEncontrado("cliente")
	}
	if req.LimiteCredito.IsNegative() {
		return nil, ErrMontoInvalido("el límite de crédito no puede ser negativo")
	}

	c.Nombre = req.Nombre
	c.DniCuit = strPtr(req.DniCuit)
	c.Telefono = strPtr(req.Telefono)
	c.Email = strPtr(req.Email)
	c.Direccion = strPtr(req.Direccion)
	c.LimiteCredito = req.LimiteCredito

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, ErrAlmacenamiento(err)
	}
	return clienteToResponse(c), nil
}

func (s *clienteService) Desactivar(ctx context.Context, id uuid.UUID) error {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return ErrNoEncontrado("cliente")
	}
	if c.TieneDeuda() {
		return ErrValidacion("no puede desactivarse un cliente con deuda en cuenta corriente")
	}
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return ErrAlmacenamiento(err)
	}
	return nil
}

func clienteToResponse(c *model.Cliente) *dto.ClienteResponse {
	resp := &dto.ClienteResponse{
		ID:                c.ID.String(),
		Nombre:            c.Nombre,
		LimiteCredito:     c.LimiteCredito,
		Saldo:             c.SaldoCuentaCorriente,
		CreditoDisponible: c.CreditoDisponible(),
		Activo:            c.Activo,
	}
	if c.DniCuit != nil {
		resp.DniCuit = *c.DniCuit
	}
	if c.Telefono != nil {
		resp.Telefono = *c.Telefono
	}
	if c.Email != nil {
		resp.Email = *c.Email
	}
	if c.Direccion != nil {
		resp.Direccion = *c.Direccion
	}
	return resp
}
