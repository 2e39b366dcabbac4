package service

import (
	"context"
	"testing"

	"github.com/mateoadann/ferrerp/internal/dto"
	"github.com/mateoadann/ferrerp/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestAbrirCaja(t *testing.T) {
	repo := newStubCajaRepo()
	svc := NewCajaService(repo)

	resp, err := svc.Abrir(context.Background(), uuid.New(), dto.AbrirCajaRequest{
		MontoInicial: decimal.NewFromInt(500),
	})
	require.NoError(t, err)
	assert.Equal(t, "abierta", resp.Estado)
	assert.True(t, resp.MontoInicial.Equal(decimal.NewFromInt(500)))
}

func TestAbrirCajaMontoInicialNegativo(t *testing.T) {
	svc := NewCajaService(newStubCajaRepo())

	_, err := svc.Abrir(context.Background(), uuid.New(), dto.AbrirCajaRequest{
		MontoInicial: decimal.NewFromInt(-100),
	})
	assert.True(t, EsKind(err, KindMontoInvalido), "err = %v", err)
}

func TestAbrirCajaConOtraAbierta(t *testing.T) {
	repo := newStubCajaRepo()
	svc := NewCajaService(repo)
	seedCajaAbierta(repo, 200)

	_, err := svc.Abrir(context.Background(), uuid.New(), dto.AbrirCajaRequest{
		MontoInicial: decimal.NewFromInt(500),
	})
	assert.True(t, EsKind(err, KindCajaYaAbierta), "err = %v", err)
}

func TestCerrarCajaSinAbierta(t *testing.T) {
	svc := NewCajaService(newStubCajaRepo())

	_, err := svc.Cerrar(context.Background(), uuid.New(), dto.CerrarCajaRequest{
		MontoReal: decimal.NewFromInt(100),
	})
	assert.True(t, EsKind(err, KindCajaNoAbierta), "err = %v", err)
}

func TestCerrarCajaCalculaEsperadoYDiferencia(t *testing.T) {
	repo := newStubCajaRepo()
	svc := NewCajaService(repo)
	usuarioID := uuid.New()
	seedCajaAbierta(repo, 1000)

	// Ingreso manual de 300 y egreso de 200: esperado = 1000 + 300 - 200.
	_, err := svc.RegistrarMovimiento(context.Background(), usuarioID, dto.MovimientoCajaRequest{
		Tipo:        "ingreso",
		Concepto:    "otro",
		Monto:       decimal.NewFromInt(300),
		Descripcion: "aporte de caja chica",
	})
	require.NoError(t, err)
	_, err = svc.RegistrarMovimiento(context.Background(), usuarioID, dto.MovimientoCajaRequest{
		Tipo:        "egreso",
		Concepto:    "gasto",
		Monto:       decimal.NewFromInt(200),
		Descripcion: "compra de librería",
	})
	require.NoError(t, err)

	resp, err := svc.Cerrar(context.Background(), usuarioID, dto.CerrarCajaRequest{
		MontoReal: decimal.NewFromInt(1050),
	})
	require.NoError(t, err)

	assert.Equal(t, "cerrada", resp.Estado)
	require.NotNil(t, resp.MontoEsperado)
	assert.True(t, resp.MontoEsperado.Equal(decimal.NewFromInt(1100)), "esperado %s", resp.MontoEsperado)
	require.NotNil(t, resp.Diferencia)
	assert.True(t, resp.Diferencia.Equal(decimal.NewFromInt(-50)), "diferencia %s", resp.Diferencia)
	require.NotNil(t, resp.FechaCierre)
}

func TestCerrarCajaIgnoraMovimientosNoEfectivo(t *testing.T) {
	repo := newStubCajaRepo()
	svc := NewCajaService(repo)
	caja := seedCajaAbierta(repo, 1000)

	// Una venta con tarjeta queda asentada en el ledger pero no suma al
	// conteo físico del cajón.
	productos := newStubProductoRepo()
	movs := newStubMovimientoStockRepo()
	inventario := NewInventarioService(productos, movs, nil, stubParametros{})
	clientes := newStubClienteRepo()
	ventas := newStubVentaRepo()
	ventaSvc := NewVentaService(ventas, productos, clientes, newStubSecuenciaRepo(), inventario, svc, NewCuentaCorrienteService(clientes, svc))
	producto := seedProducto(productos, "AMO-001", "Amoladora", 400, 5)

	_, err := ventaSvc.Registrar(context.Background(), uuid.New(), dto.RegistrarVentaRequest{
		FormaPago: "tarjeta_debito",
		Items: []dto.ItemVentaRequest{
			{ProductoID: producto.ID.String(), Cantidad: decimal.NewFromInt(1)},
		},
	})
	require.NoError(t, err)
	require.Len(t, repo.cajas[caja.ID].Movimientos, 1)

	resp, err := svc.Cerrar(context.Background(), uuid.New(), dto.CerrarCajaRequest{
		MontoReal: decimal.NewFromInt(1000),
	})
	require.NoError(t, err)
	require.NotNil(t, resp.MontoEsperado)
	assert.True(t, resp.MontoEsperado.Equal(decimal.NewFromInt(1000)), "esperado %s", resp.MontoEsperado)
	assert.True(t, resp.Diferencia.IsZero())
}

func TestCerrarCajaDosVeces(t *testing.T) {
	repo := newStubCajaRepo()
	svc := NewCajaService(repo)
	seedCajaAbierta(repo, 1000)

	_, err := svc.Cerrar(context.Background(), uuid.New(), dto.CerrarCajaRequest{
		MontoReal: decimal.NewFromInt(1000),
	})
	require.NoError(t, err)

	_, err = svc.Cerrar(context.Background(), uuid.New(), dto.CerrarCajaRequest{
		MontoReal: decimal.NewFromInt(1000),
	})
	assert.True(t, EsKind(err, KindCajaNoAbierta), "err = %v", err)
}

// cajaRepoCierreCarrera simula un cierre que leyó la sesión cuando todavía
// estaba abierta, mientras otro cierre ya asentó el arqueo.
type cajaRepoCierreCarrera struct {
	*stubCajaRepo
	caja *model.Caja
}

func (r *cajaRepoCierreCarrera) FindAbiertaTx(tx *gorm.DB) (*model.Caja, error) {
	copia := *r.caja
	copia.Estado = model.CajaAbierta
	return &copia, nil
}

func TestCerrarCajaCarreraEntreCierres(t *testing.T) {
	repo := newStubCajaRepo()
	caja := seedCajaAbierta(repo, 1000)

	primero := NewCajaService(repo)
	resp, err := primero.Cerrar(context.Background(), uuid.New(), dto.CerrarCajaRequest{
		MontoReal: decimal.NewFromInt(950),
	})
	require.NoError(t, err)
	require.NotNil(t, resp.Diferencia)

	segundo := NewCajaService(&cajaRepoCierreCarrera{stubCajaRepo: repo, caja: caja})
	_, err = segundo.Cerrar(context.Background(), uuid.New(), dto.CerrarCajaRequest{
		MontoReal: decimal.NewFromInt(1000),
	})
	assert.True(t, EsKind(err, KindCajaNoAbierta), "err = %v", err)

	// El arqueo del primer cierre quedó intacto.
	require.NotNil(t, caja.MontoReal)
	assert.True(t, caja.MontoReal.Equal(decimal.NewFromInt(950)), "monto real %s", caja.MontoReal)
}

func TestRegistrarMovimientoSinCajaAbierta(t *testing.T) {
	svc := NewCajaService(newStubCajaRepo())

	_, err := svc.RegistrarMovimiento(context.Background(), uuid.New(), dto.MovimientoCajaRequest{
		Tipo:        "egreso",
		Concepto:    "retiro",
		Monto:       decimal.NewFromInt(100),
		Descripcion: "retiro del dueño",
	})
	assert.True(t, EsKind(err, KindCajaNoAbierta), "err = %v", err)
}

func TestCajaActualRecalculaEsperadoEnVivo(t *testing.T) {
	repo := newStubCajaRepo()
	svc := NewCajaService(repo)
	seedCajaAbierta(repo, 500)
	usuarioID := uuid.New()

	_, err := svc.RegistrarMovimiento(context.Background(), usuarioID, dto.MovimientoCajaRequest{
		Tipo:        "ingreso",
		Concepto:    "otro",
		Monto:       decimal.NewFromInt(250),
		Descripcion: "cobro suelto",
	})
	require.NoError(t, err)

	resp, err := svc.CajaActual(context.Background())
	require.NoError(t, err)
	require.NotNil(t, resp.MontoEsperado)
	assert.True(t, resp.MontoEsperado.Equal(decimal.NewFromInt(750)))
}
