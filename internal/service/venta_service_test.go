package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/mateoadann/ferrerp/internal/dto"
	"github.com/mateoadann/ferrerp/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type entornoVentas struct {
	productos  *stubProductoRepo
	clientes   *stubClienteRepo
	ventas     *stubVentaRepo
	cajas      *stubCajaRepo
	movsStock  *stubMovimientoStockRepo
	secuencias *stubSecuenciaRepo
	caja       CajaService
	svc        VentaService
}

func nuevoEntornoVentas() *entornoVentas {
	e := &entornoVentas{
		productos:  newStubProductoRepo(),
		clientes:   newStubClienteRepo(),
		ventas:     newStubVentaRepo(),
		cajas:      newStubCajaRepo(),
		movsStock:  newStubMovimientoStockRepo(),
		secuencias: newStubSecuenciaRepo(),
	}
	e.caja = NewCajaService(e.cajas)
	inventario := NewInventarioService(e.productos, e.movsStock, nil, stubParametros{diasValidez: 15})
	cuentaCte := NewCuentaCorrienteService(e.clientes, e.caja)
	e.svc = NewVentaService(e.ventas, e.productos, e.clientes, e.secuencias, inventario, e.caja, cuentaCte)
	return e
}

func (e *entornoVentas) movimientosCaja(cajaID uuid.UUID) []model.MovimientoCaja {
	return e.cajas.cajas[cajaID].Movimientos
}

func TestRegistrarVentaEfectivo(t *testing.T) {
	e := nuevoEntornoVentas()
	caja := seedCajaAbierta(e.cajas, 1000)
	producto := seedProducto(e.productos, "MAR-001", "Martillo galponero", 100, 10)

	resp, err := e.svc.Registrar(context.Background(), uuid.New(), dto.RegistrarVentaRequest{
		FormaPago:    "efectivo",
		DescuentoPct: decimal.NewFromInt(10),
		Items: []dto.ItemVentaRequest{
			{ProductoID: producto.ID.String(), Cantidad: decimal.NewFromInt(3)},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, resp.Numero)
	assert.Equal(t, fmt.Sprintf("%d-000001", time.Now().Year()), resp.NumeroCompleto)
	assert.True(t, resp.Subtotal.Equal(decimal.NewFromInt(300)), "subtotal %s", resp.Subtotal)
	assert.True(t, resp.DescuentoMonto.Equal(decimal.NewFromInt(30)), "descuento %s", resp.DescuentoMonto)
	assert.True(t, resp.Total.Equal(decimal.NewFromInt(270)), "total %s", resp.Total)
	assert.Equal(t, "completada", resp.Estado)

	// El stock bajó y quedó su movimiento en el ledger.
	assert.True(t, producto.StockActual.Equal(decimal.NewFromInt(7)))
	movs := e.movsStock.porProducto(producto.ID)
	require.Len(t, movs, 1)
	assert.Equal(t, model.MovStockVenta, movs[0].Tipo)
	assert.True(t, movs[0].Cantidad.Equal(decimal.NewFromInt(-3)))
	assert.True(t, movs[0].StockAnterior.Equal(decimal.NewFromInt(10)))
	assert.True(t, movs[0].StockPosterior.Equal(decimal.NewFromInt(7)))

	// El cobro entró a la caja como ingreso por venta.
	movsCaja := e.movimientosCaja(caja.ID)
	require.Len(t, movsCaja, 1)
	assert.Equal(t, model.MovCajaIngreso, movsCaja[0].Tipo)
	assert.Equal(t, model.ConceptoVenta, movsCaja[0].Concepto)
	assert.Equal(t, model.PagoEfectivo, movsCaja[0].FormaPago)
	assert.True(t, movsCaja[0].Monto.Equal(decimal.NewFromInt(270)))
}

func TestRegistrarVentaSinCajaAbierta(t *testing.T) {
	e := nuevoEntornoVentas()
	producto := seedProducto(e.productos, "MAR-001", "Martillo", 100, 10)

	_, err := e.svc.Registrar(context.Background(), uuid.New(), dto.RegistrarVentaRequest{
		FormaPago: "efectivo",
		Items: []dto.ItemVentaRequest{
			{ProductoID: producto.ID.String(), Cantidad: decimal.NewFromInt(1)},
		},
	})
	assert.True(t, EsKind(err, KindCajaNoAbierta), "err = %v", err)
	assert.Empty(t, e.ventas.ventas)
}

func TestRegistrarVentaStockInsuficiente(t *testing.T) {
	e := nuevoEntornoVentas()
	seedCajaAbierta(e.cajas, 0)
	producto := seedProducto(e.productos, "CLA-200", "Clavos 2 pulgadas", 50, 2)

	_, err := e.svc.Registrar(context.Background(), uuid.New(), dto.RegistrarVentaRequest{
		FormaPago: "efectivo",
		Items: []dto.ItemVentaRequest{
			{ProductoID: producto.ID.String(), Cantidad: decimal.NewFromInt(5)},
		},
	})
	require.True(t, EsKind(err, KindStockInsuficiente), "err = %v", err)

	// Nada quedó persistido: ni venta, ni movimiento, ni descuento de stock.
	assert.True(t, producto.StockActual.Equal(decimal.NewFromInt(2)))
	assert.Empty(t, e.ventas.ventas)
	assert.Empty(t, e.movsStock.movimientos)
}

func TestRegistrarVentaProductoInactivo(t *testing.T) {
	e := nuevoEntornoVentas()
	seedCajaAbierta(e.cajas, 0)
	producto := seedProducto(e.productos, "VIE-001", "Producto discontinuado", 80, 5)
	producto.Activo = false

	_, err := e.svc.Registrar(context.Background(), uuid.New(), dto.RegistrarVentaRequest{
		FormaPago: "efectivo",
		Items: []dto.ItemVentaRequest{
			{ProductoID: producto.ID.String(), Cantidad: decimal.NewFromInt(1)},
		},
	})
	assert.True(t, EsKind(err, KindProductoInactivo), "err = %v", err)
}

func TestRegistrarVentaDescuentoFueraDeRango(t *testing.T) {
	e := nuevoEntornoVentas()
	seedCajaAbierta(e.cajas, 0)
	producto := seedProducto(e.productos, "TAL-001", "Taladro", 500, 3)

	_, err := e.svc.Registrar(context.Background(), uuid.New(), dto.RegistrarVentaRequest{
		FormaPago:    "efectivo",
		DescuentoPct: decimal.NewFromInt(150),
		Items: []dto.ItemVentaRequest{
			{ProductoID: producto.ID.String(), Cantidad: decimal.NewFromInt(1)},
		},
	})
	assert.True(t, EsKind(err, KindMontoInvalido), "err = %v", err)
}

func TestRegistrarVentaCuentaCorriente(t *testing.T) {
	e := nuevoEntornoVentas()
	caja := seedCajaAbierta(e.cajas, 500)
	producto := seedProducto(e.productos, "CEM-001", "Cemento x50kg", 150, 20)
	cliente := seedCliente(e.clientes, "Corralón El Tano", 1000)

	resp, err := e.svc.Registrar(context.Background(), uuid.New(), dto.RegistrarVentaRequest{
		ClienteID: strDe(cliente.ID.String()),
		FormaPago: "cuenta_corriente",
		Items: []dto.ItemVentaRequest{
			{ProductoID: producto.ID.String(), Cantidad: decimal.NewFromInt(2)},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Corralón El Tano", resp.Cliente)

	// La deuda subió por el total y la caja no registró movimiento.
	assert.True(t, cliente.SaldoCuentaCorriente.Equal(decimal.NewFromInt(300)))
	assert.Empty(t, e.movimientosCaja(caja.ID))

	movsCC, _ := e.clientes.ListMovimientosCC(context.Background(), cliente.ID)
	require.Len(t, movsCC, 1)
	assert.Equal(t, model.MovCCCargo, movsCC[0].Tipo)
	assert.True(t, movsCC[0].SaldoAnterior.IsZero())
	assert.True(t, movsCC[0].SaldoPosterior.Equal(decimal.NewFromInt(300)))
}

func TestRegistrarVentaCuentaCorrienteSinCliente(t *testing.T) {
	e := nuevoEntornoVentas()
	seedCajaAbierta(e.cajas, 0)
	producto := seedProducto(e.productos, "CEM-001", "Cemento", 150, 20)

	_, err := e.svc.Registrar(context.Background(), uuid.New(), dto.RegistrarVentaRequest{
		FormaPago: "cuenta_corriente",
		Items: []dto.ItemVentaRequest{
			{ProductoID: producto.ID.String(), Cantidad: decimal.NewFromInt(1)},
		},
	})
	assert.True(t, EsKind(err, KindClienteRequerido), "err = %v", err)
}

func TestRegistrarVentaExcedeLimiteCredito(t *testing.T) {
	e := nuevoEntornoVentas()
	seedCajaAbierta(e.cajas, 0)
	producto := seedProducto(e.productos, "HIE-008", "Hierro del 8", 200, 50)
	cliente := seedCliente(e.clientes, "Cliente ajustado", 100)

	_, err := e.svc.Registrar(context.Background(), uuid.New(), dto.RegistrarVentaRequest{
		ClienteID: strDe(cliente.ID.String()),
		FormaPago: "cuenta_corriente",
		Items: []dto.ItemVentaRequest{
			{ProductoID: producto.ID.String(), Cantidad: decimal.NewFromInt(3)},
		},
	})
	require.True(t, EsKind(err, KindLimiteCredito), "err = %v", err)
	assert.True(t, cliente.SaldoCuentaCorriente.IsZero())
}

func TestNumeracionVentasConsecutiva(t *testing.T) {
	e := nuevoEntornoVentas()
	seedCajaAbierta(e.cajas, 0)
	producto := seedProducto(e.productos, "PIN-001", "Pintura látex", 90, 100)

	req := dto.RegistrarVentaRequest{
		FormaPago: "efectivo",
		Items: []dto.ItemVentaRequest{
			{ProductoID: producto.ID.String(), Cantidad: decimal.NewFromInt(1)},
		},
	}
	primera, err := e.svc.Registrar(context.Background(), uuid.New(), req)
	require.NoError(t, err)
	segunda, err := e.svc.Registrar(context.Background(), uuid.New(), req)
	require.NoError(t, err)

	assert.Equal(t, 1, primera.Numero)
	assert.Equal(t, 2, segunda.Numero)
}

func TestAnularVentaEfectivo(t *testing.T) {
	e := nuevoEntornoVentas()
	caja := seedCajaAbierta(e.cajas, 1000)
	producto := seedProducto(e.productos, "MAR-001", "Martillo", 100, 10)
	usuarioID := uuid.New()

	resp, err := e.svc.Registrar(context.Background(), usuarioID, dto.RegistrarVentaRequest{
		FormaPago: "efectivo",
		Items: []dto.ItemVentaRequest{
			{ProductoID: producto.ID.String(), Cantidad: decimal.NewFromInt(4)},
		},
	})
	require.NoError(t, err)
	ventaID := uuid.MustParse(resp.ID)

	require.NoError(t, e.svc.Anular(context.Background(), usuarioID, ventaID, "cliente se arrepintió"))

	// Stock repuesto con su movimiento de devolución.
	assert.True(t, producto.StockActual.Equal(decimal.NewFromInt(10)))
	movs := e.movsStock.porProducto(producto.ID)
	require.Len(t, movs, 2)
	assert.Equal(t, model.MovStockDevolucion, movs[1].Tipo)
	assert.True(t, movs[1].Cantidad.Equal(decimal.NewFromInt(4)))

	// Egreso compensatorio en caja, el ingreso original sigue intacto.
	movsCaja := e.movimientosCaja(caja.ID)
	require.Len(t, movsCaja, 2)
	assert.Equal(t, model.MovCajaEgreso, movsCaja[1].Tipo)
	assert.Equal(t, model.ConceptoDevolucion, movsCaja[1].Concepto)
	assert.True(t, movsCaja[1].Monto.Equal(decimal.NewFromInt(400)))

	venta, err := e.ventas.FindByID(context.Background(), ventaID)
	require.NoError(t, err)
	assert.Equal(t, model.VentaAnulada, venta.Estado)
	require.NotNil(t, venta.MotivoAnulacion)
	assert.Equal(t, "cliente se arrepintió", *venta.MotivoAnulacion)
}

func TestAnularVentaCuentaCorriente(t *testing.T) {
	e := nuevoEntornoVentas()
	caja := seedCajaAbierta(e.cajas, 0)
	producto := seedProducto(e.productos, "CAL-001", "Cal hidratada", 60, 30)
	cliente := seedCliente(e.clientes, "Cliente fiado", 500)
	usuarioID := uuid.New()

	resp, err := e.svc.Registrar(context.Background(), usuarioID, dto.RegistrarVentaRequest{
		ClienteID: strDe(cliente.ID.String()),
		FormaPago: "cuenta_corriente",
		Items: []dto.ItemVentaRequest{
			{ProductoID: producto.ID.String(), Cantidad: decimal.NewFromInt(5)},
		},
	})
	require.NoError(t, err)
	require.True(t, cliente.SaldoCuentaCorriente.Equal(decimal.NewFromInt(300)))

	require.NoError(t, e.svc.Anular(context.Background(), usuarioID, uuid.MustParse(resp.ID), "error de carga"))

	// La deuda se revirtió con un pago compensatorio, sin tocar la caja.
	assert.True(t, cliente.SaldoCuentaCorriente.IsZero())
	assert.Empty(t, e.movimientosCaja(caja.ID))

	movsCC, _ := e.clientes.ListMovimientosCC(context.Background(), cliente.ID)
	require.Len(t, movsCC, 2)
	assert.Equal(t, model.MovCCPago, movsCC[1].Tipo)
	require.NotNil(t, movsCC[1].ReferenciaTipo)
	assert.Equal(t, "anulacion_venta", *movsCC[1].ReferenciaTipo)
}

func TestAnularVentaDosVeces(t *testing.T) {
	e := nuevoEntornoVentas()
	seedCajaAbierta(e.cajas, 0)
	producto := seedProducto(e.productos, "MAR-001", "Martillo", 100, 10)
	usuarioID := uuid.New()

	resp, err := e.svc.Registrar(context.Background(), usuarioID, dto.RegistrarVentaRequest{
		FormaPago: "efectivo",
		Items: []dto.ItemVentaRequest{
			{ProductoID: producto.ID.String(), Cantidad: decimal.NewFromInt(1)},
		},
	})
	require.NoError(t, err)
	ventaID := uuid.MustParse(resp.ID)

	require.NoError(t, e.svc.Anular(context.Background(), usuarioID, ventaID, "duplicada"))
	err = e.svc.Anular(context.Background(), usuarioID, ventaID, "duplicada")
	assert.True(t, EsKind(err, KindNoAnulable), "err = %v", err)

	// La segunda anulación no volvió a tocar el stock.
	assert.True(t, producto.StockActual.Equal(decimal.NewFromInt(10)))
}
