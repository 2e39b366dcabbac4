package model

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTransicionPresupuestoValida(t *testing.T) {
	casos := []struct {
		desde, hacia EstadoPresupuesto
		valida       bool
	}{
		{PresupuestoPendiente, PresupuestoAceptado, true},
		{PresupuestoPendiente, PresupuestoRechazado, true},
		{PresupuestoPendiente, PresupuestoVencido, true},
		{PresupuestoAceptado, PresupuestoConvertido, true},
		{PresupuestoPendiente, PresupuestoConvertido, false},
		{PresupuestoRechazado, PresupuestoAceptado, false},
		{PresupuestoVencido, PresupuestoAceptado, false},
		{PresupuestoConvertido, PresupuestoPendiente, false},
	}
	for _, c := range casos {
		assert.Equal(t, c.valida, TransicionPresupuestoValida(c.desde, c.hacia),
			"%s -> %s", c.desde, c.hacia)
	}
}

func TestPresupuestoEstaVencido(t *testing.T) {
	ahora := time.Now()
	p := &Presupuesto{Estado: PresupuestoPendiente, FechaVencimiento: ahora.AddDate(0, 0, -1)}
	assert.True(t, p.EstaVencido(ahora))

	vigente := &Presupuesto{Estado: PresupuestoPendiente, FechaVencimiento: ahora.AddDate(0, 0, 1)}
	assert.False(t, vigente.EstaVencido(ahora))

	// Un aceptado no vence aunque la fecha pase.
	aceptado := &Presupuesto{Estado: PresupuestoAceptado, FechaVencimiento: ahora.AddDate(0, 0, -1)}
	assert.False(t, aceptado.EstaVencido(ahora))
}

func TestPresupuestoCalcularTotales(t *testing.T) {
	p := &Presupuesto{
		DescuentoPorcentaje: decimal.NewFromInt(10),
		Detalles: []PresupuestoDetalle{
			{Subtotal: decimal.NewFromInt(300)},
			{Subtotal: decimal.NewFromInt(200)},
		},
	}
	p.CalcularTotales()

	assert.True(t, p.Subtotal.Equal(decimal.NewFromInt(500)))
	assert.True(t, p.DescuentoMonto.Equal(decimal.NewFromInt(50)))
	assert.True(t, p.Total.Equal(decimal.NewFromInt(450)))

	// Determinista: recalcular no cambia el resultado.
	p.CalcularTotales()
	assert.True(t, p.Total.Equal(decimal.NewFromInt(450)))
}

func TestPresupuestoNumeroCompleto(t *testing.T) {
	p := &Presupuesto{Numero: 42, Anio: 2026}
	assert.Equal(t, "2026-000042", p.NumeroCompleto())
}
