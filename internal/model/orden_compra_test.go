package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestOrdenCompraActualizarEstado(t *testing.T) {
	o := &OrdenCompra{
		Estado: OrdenPendiente,
		Detalles: []OrdenCompraDetalle{
			{CantidadPedida: decimal.NewFromInt(10)},
			{CantidadPedida: decimal.NewFromInt(5)},
		},
	}

	o.ActualizarEstado()
	assert.Equal(t, OrdenPendiente, o.Estado)

	o.Detalles[0].CantidadRecibida = decimal.NewFromInt(4)
	o.ActualizarEstado()
	assert.Equal(t, OrdenRecibidaParcial, o.Estado)

	o.Detalles[0].CantidadRecibida = decimal.NewFromInt(10)
	o.Detalles[1].CantidadRecibida = decimal.NewFromInt(5)
	o.ActualizarEstado()
	assert.Equal(t, OrdenRecibidaCompleta, o.Estado)

	// El exceso sobre lo pedido también cierra la orden.
	o.Detalles[1].CantidadRecibida = decimal.NewFromInt(7)
	o.ActualizarEstado()
	assert.Equal(t, OrdenRecibidaCompleta, o.Estado)
}
