package service

import (
	"context"
	"testing"

	"github.com/mateoadann/ferrerp/internal/dto"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCrearProductoCodigoDuplicado(t *testing.T) {
	repo := newStubProductoRepo()
	svc := NewProductoService(repo)

	req := dto.CrearProductoRequest{
		Codigo:      "TOR-001",
		Nombre:      "Tornillo autoperforante 8mm",
		PrecioCosto: decimal.NewFromInt(50),
		PrecioVenta: decimal.NewFromInt(100),
	}
	_, err := svc.Crear(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.Crear(context.Background(), req)
	assert.True(t, EsKind(err, KindDuplicado), "esperaba duplicado, obtuve %v", err)
}

func TestCrearProductoPrecioNegativo(t *testing.T) {
	svc := NewProductoService(newStubProductoRepo())

	_, err := svc.Crear(context.Background(), dto.CrearProductoRequest{
		Codigo:      "TOR-002",
		Nombre:      "Tornillo",
		PrecioCosto: decimal.NewFromInt(-1),
		PrecioVenta: decimal.NewFromInt(100),
	})
	assert.True(t, EsKind(err, KindMontoInvalido))
}

func TestDesactivarYReactivarProducto(t *testing.T) {
	repo := newStubProductoRepo()
	svc := NewProductoService(repo)
	p := seedProducto(repo, "PIN-001", "Pintura látex 4L", 9000, 6)

	require.NoError(t, svc.Desactivar(context.Background(), p.ID))
	assert.False(t, p.Activo)

	require.NoError(t, svc.Reactivar(context.Background(), p.ID))
	assert.True(t, p.Activo)
}

func TestActualizarProductoNoTocaStock(t *testing.T) {
	repo := newStubProductoRepo()
	svc := NewProductoService(repo)
	p := seedProducto(repo, "CAN-001", "Caño PVC 110", 1200, 40)

	resp, err := svc.Actualizar(context.Background(), p.ID, dto.ActualizarProductoRequest{
		Nombre: strDe("Caño PVC 110mm x 4m"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Caño PVC 110mm x 4m", resp.Nombre)
	assert.True(t, p.StockActual.Equal(decimal.NewFromInt(40)))
}

func TestDesactivarClienteConDeuda(t *testing.T) {
	repo := newStubClienteRepo()
	svc := NewClienteService(repo)
	c := seedCliente(repo, "Corralón El Puente", 50000)
	c.SaldoCuentaCorriente = decimal.NewFromInt(1200)

	err := svc.Desactivar(context.Background(), c.ID)
	assert.True(t, EsKind(err, KindValidacion), "esperaba validación, obtuve %v", err)
	assert.True(t, c.Activo)
}

func TestDesactivarClienteSinDeuda(t *testing.T) {
	repo := newStubClienteRepo()
	svc := NewClienteService(repo)
	c := seedCliente(repo, "Juan Gómez", 0)

	require.NoError(t, svc.Desactivar(context.Background(), c.ID))
	assert.False(t, c.Activo)
}

func TestCrearClienteLimiteNegativo(t *testing.T) {
	svc := NewClienteService(newStubClienteRepo())

	_, err := svc.Crear(context.Background(), dto.CrearClienteRequest{
		Nombre:        "Cliente inválido",
		LimiteCredito: decimal.NewFromInt(-100),
	})
	assert.True(t, EsKind(err, KindMontoInvalido))
}
