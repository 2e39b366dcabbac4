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
)

func nuevoInventario() (*stubProductoRepo, *stubMovimientoStockRepo, InventarioService) {
	productos := newStubProductoRepo()
	movs := newStubMovimientoStockRepo()
	svc := NewInventarioService(productos, movs, nil, stubParametros{emailAlertas: "deposito@ferreteria.test"})
	return productos, movs, svc
}

func TestAjusteStockPositivo(t *testing.T) {
	productos, movs, svc := nuevoInventario()
	producto := seedProducto(productos, "TOR-001", "Tornillos x100", 25, 40)

	resp, err := svc.Ajustar(context.Background(), uuid.New(), dto.AjusteStockRequest{
		ProductoID: producto.ID.String(),
		Tipo:       "ajuste_positivo",
		Cantidad:   decimal.NewFromInt(10),
		Motivo:     "recuento físico",
	})
	require.NoError(t, err)

	assert.True(t, producto.StockActual.Equal(decimal.NewFromInt(50)))
	assert.True(t, resp.StockAnterior.Equal(decimal.NewFromInt(40)))
	assert.True(t, resp.StockPosterior.Equal(decimal.NewFromInt(50)))
	require.Len(t, movs.movimientos, 1)
	assert.Equal(t, model.MovStockAjustePositivo, movs.movimientos[0].Tipo)
	assert.True(t, movs.movimientos[0].Cantidad.Equal(decimal.NewFromInt(10)))
}

func TestAjusteStockNegativo(t *testing.T) {
	productos, _, svc := nuevoInventario()
	producto := seedProducto(productos, "TOR-001", "Tornillos x100", 25, 40)

	resp, err := svc.Ajustar(context.Background(), uuid.New(), dto.AjusteStockRequest{
		ProductoID: producto.ID.String(),
		Tipo:       "ajuste_negativo",
		Cantidad:   decimal.NewFromInt(15),
		Motivo:     "mercadería dañada",
	})
	require.NoError(t, err)

	assert.True(t, producto.StockActual.Equal(decimal.NewFromInt(25)))
	assert.True(t, resp.Cantidad.Equal(decimal.NewFromInt(-15)))
}

func TestAjusteNegativoMayorAlStock(t *testing.T) {
	productos, movs, svc := nuevoInventario()
	producto := seedProducto(productos, "TOR-001", "Tornillos x100", 25, 5)

	_, err := svc.Ajustar(context.Background(), uuid.New(), dto.AjusteStockRequest{
		ProductoID: producto.ID.String(),
		Tipo:       "ajuste_negativo",
		Cantidad:   decimal.NewFromInt(8),
		Motivo:     "rotura",
	})
	require.True(t, EsKind(err, KindStockInsuficiente), "err = %v", err)

	assert.True(t, producto.StockActual.Equal(decimal.NewFromInt(5)))
	assert.Empty(t, movs.movimientos)
}

func TestAjusteCantidadNoPositiva(t *testing.T) {
	productos, _, svc := nuevoInventario()
	producto := seedProducto(productos, "TOR-001", "Tornillos", 25, 5)

	_, err := svc.Ajustar(context.Background(), uuid.New(), dto.AjusteStockRequest{
		ProductoID: producto.ID.String(),
		Tipo:       "ajuste_positivo",
		Cantidad:   decimal.NewFromInt(-3),
		Motivo:     "carga errónea",
	})
	assert.True(t, EsKind(err, KindMontoInvalido), "err = %v", err)
}

func TestAjusteProductoInactivo(t *testing.T) {
	productos, _, svc := nuevoInventario()
	producto := seedProducto(productos, "VIE-001", "Discontinuado", 25, 5)
	producto.Activo = false

	_, err := svc.Ajustar(context.Background(), uuid.New(), dto.AjusteStockRequest{
		ProductoID: producto.ID.String(),
		Tipo:       "ajuste_positivo",
		Cantidad:   decimal.NewFromInt(1),
		Motivo:     "recuento",
	})
	assert.True(t, EsKind(err, KindProductoInactivo), "err = %v", err)
}

func TestAjustarTxRechazaTipoDesconocido(t *testing.T) {
	productos, _, svc := nuevoInventario()
	producto := seedProducto(productos, "TOR-001", "Tornillos", 25, 5)

	_, err := svc.AjustarTx(nil, producto.ID, "prestamo", decimal.NewFromInt(1), "prueba", "", nil, uuid.New())
	assert.True(t, EsKind(err, KindValidacion), "err = %v", err)
}

func TestStockBajoMinimo(t *testing.T) {
	productos, _, svc := nuevoInventario()
	bajo := seedProducto(productos, "CLA-001", "Clavos", 10, 2)
	bajo.StockMinimo = decimal.NewFromInt(5)
	ok := seedProducto(productos, "MAR-001", "Martillo", 100, 20)
	ok.StockMinimo = decimal.NewFromInt(5)

	resp, err := svc.StockBajoMinimo(context.Background())
	require.NoError(t, err)
	require.Len(t, resp, 1)
	assert.Equal(t, "CLA-001", resp[0].Codigo)
}

func TestListarMovimientosFiltraPorProducto(t *testing.T) {
	productos, _, svc := nuevoInventario()
	uno := seedProducto(productos, "A-001", "Producto A", 10, 50)
	otro := seedProducto(productos, "B-001", "Producto B", 10, 50)
	usuarioID := uuid.New()

	_, err := svc.AjustarTx(nil, uno.ID, model.MovStockAjustePositivo, decimal.NewFromInt(1), "recuento", "", nil, usuarioID)
	require.NoError(t, err)
	_, err = svc.AjustarTx(nil, otro.ID, model.MovStockAjustePositivo, decimal.NewFromInt(2), "recuento", "", nil, usuarioID)
	require.NoError(t, err)

	resp, err := svc.ListarMovimientos(context.Background(), dto.MovimientoStockFilter{ProductoID: uno.ID.String()})
	require.NoError(t, err)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, uno.ID.String(), resp.Data[0].ProductoID)
}
