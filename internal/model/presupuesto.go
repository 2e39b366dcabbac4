package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EstadoPresupuesto sigue la máquina de estados estricta:
//
//	pendiente → aceptado | rechazado | vencido
//	aceptado  → convertido
//
// Cualquier otra transición es inválida. vencido la dispara el sistema al
// pasar la fecha de vencimiento; convertido solo lo fija una conversión
// exitosa a venta.
type EstadoPresupuesto string

const (
	PresupuestoPendiente  EstadoPresupuesto = "pendiente"
	PresupuestoAceptado   EstadoPresupuesto = "aceptado"
	PresupuestoRechazado  EstadoPresupuesto = "rechazado"
	PresupuestoVencido    EstadoPresupuesto = "vencido"
	PresupuestoConvertido EstadoPresupuesto = "convertido"
)

var transicionesPresupuesto = map[EstadoPresupuesto][]EstadoPresupuesto{
	PresupuestoPendiente: {PresupuestoAceptado, PresupuestoRechazado, PresupuestoVencido},
	PresupuestoAceptado:  {PresupuestoConvertido},
}

// TransicionPresupuestoValida consulta la tabla de transiciones permitidas.
func TransicionPresupuestoValida(desde, hacia EstadoPresupuesto) bool {
	for _, e := range transicionesPresupuesto[desde] {
		if e == hacia {
			return true
		}
	}
	return false
}

// Presupuesto es un borrador de precios con vigencia acotada, convertible a
// venta. No mueve stock ni caja hasta la conversión. Token permite compartir
// el documento por un enlace público no adivinable.
type Presupuesto struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Numero           int       `gorm:"not null;uniqueIndex:idx_presupuestos_numero_anio"`
	Anio             int       `gorm:"not null;uniqueIndex:idx_presupuestos_numero_anio"`
	Fecha            time.Time `gorm:"not null"`
	FechaVencimiento time.Time `gorm:"not null;index"`
	ClienteID        *uuid.UUID `gorm:"type:uuid;index"`
	// ClienteNombre/Telefono cubren presupuestos a clientes no registrados.
	ClienteNombre       *string `gorm:"type:varchar(100)"`
	ClienteTelefono     *string `gorm:"type:varchar(20)"`
	UsuarioID           uuid.UUID         `gorm:"type:uuid;not null"`
	Subtotal            decimal.Decimal   `gorm:"type:decimal(12,2);not null;default:0"`
	DescuentoPorcentaje decimal.Decimal   `gorm:"type:decimal(5,2);not null;default:0"`
	DescuentoMonto      decimal.Decimal   `gorm:"type:decimal(12,2);not null;default:0"`
	Total               decimal.Decimal   `gorm:"type:decimal(12,2);not null;default:0"`
	Estado              EstadoPresupuesto `gorm:"type:varchar(15);not null;default:'pendiente'"`
	Notas               *string
	Token               string `gorm:"type:varchar(64);uniqueIndex;not null"`
	CreatedAt           time.Time
	UpdatedAt           time.Time

	Detalles []PresupuestoDetalle `gorm:"foreignKey:PresupuestoID;constraint:OnDelete:CASCADE"`
	Cliente  *Cliente             `gorm:"foreignKey:ClienteID"`
}

// NumeroCompleto devuelve el número con formato AÑO-NNNNNN.
func (p *Presupuesto) NumeroCompleto() string {
	return fmt.Sprintf("%d-%06d", p.Anio, p.Numero)
}

// EstaVencido indica si un presupuesto pendiente superó su vigencia.
func (p *Presupuesto) EstaVencido(ahora time.Time) bool {
	return p.Estado == PresupuestoPendiente && ahora.After(p.FechaVencimiento)
}

// PuedeEditar: solo los pendientes admiten cambios.
func (p *Presupuesto) PuedeEditar() bool { return p.Estado == PresupuestoPendiente }

// PuedeAceptar: pendiente y todavía vigente.
func (p *Presupuesto) PuedeAceptar(ahora time.Time) bool {
	return p.Estado == PresupuestoPendiente && !p.EstaVencido(ahora)
}

// PuedeConvertir: únicamente los aceptados se convierten a venta.
func (p *Presupuesto) PuedeConvertir() bool { return p.Estado == PresupuestoAceptado }

// NombreCliente resuelve el nombre a mostrar, registrado o de texto libre.
func (p *Presupuesto) NombreCliente() string {
	if p.Cliente != nil {
		return p.Cliente.Nombre
	}
	if p.ClienteNombre != nil && *p.ClienteNombre != "" {
		return *p.ClienteNombre
	}
	return "Sin cliente"
}

// CalcularTotales recalcula subtotal, descuento y total desde los detalles.
func (p *Presupuesto) CalcularTotales() {
	subtotal := decimal.Zero
	for _, d := range p.Detalles {
		subtotal = subtotal.Add(d.Subtotal)
	}
	p.Subtotal = subtotal
	if p.DescuentoPorcentaje.IsPositive() {
		p.DescuentoMonto = subtotal.Mul(p.DescuentoPorcentaje).
			Div(decimal.NewFromInt(100)).Round(2)
	} else {
		p.DescuentoMonto = decimal.Zero
	}
	p.Total = subtotal.Sub(p.DescuentoMonto)
}

// PresupuestoDetalle es una línea de presupuesto, propiedad exclusiva del
// documento (borrado en cascada).
type PresupuestoDetalle struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PresupuestoID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductoID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Cantidad       decimal.Decimal `gorm:"type:decimal(12,3);not null"`
	PrecioUnitario decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Subtotal       decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	Producto *Producto `gorm:"foreignKey:ProductoID"`
}
