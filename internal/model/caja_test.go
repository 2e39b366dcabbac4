package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCalcularMontoEsperadoSoloEfectivo(t *testing.T) {
	c := &Caja{
		MontoInicial: decimal.NewFromInt(1000),
		Movimientos: []MovimientoCaja{
			{Tipo: MovCajaIngreso, FormaPago: PagoEfectivo, Monto: decimal.NewFromInt(500)},
			{Tipo: MovCajaEgreso, FormaPago: PagoEfectivo, Monto: decimal.NewFromInt(200)},
			// Tarjeta y transferencia no tocan el cajón físico.
			{Tipo: MovCajaIngreso, FormaPago: PagoTarjetaDebito, Monto: decimal.NewFromInt(900)},
			{Tipo: MovCajaIngreso, FormaPago: PagoTransferencia, Monto: decimal.NewFromInt(700)},
		},
	}
	assert.True(t, c.CalcularMontoEsperado().Equal(decimal.NewFromInt(1300)))
}

func TestFormaPagoEsMetodoCaja(t *testing.T) {
	assert.True(t, PagoEfectivo.EsMetodoCaja())
	assert.True(t, PagoTarjetaDebito.EsMetodoCaja())
	assert.True(t, PagoTarjetaCredito.EsMetodoCaja())
	assert.True(t, PagoTransferencia.EsMetodoCaja())
	assert.False(t, PagoCuentaCorriente.EsMetodoCaja())
}
