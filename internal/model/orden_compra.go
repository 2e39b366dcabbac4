package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EstadoOrdenCompra se deriva de las cantidades recibidas: pendiente sin
// recepciones, recibida_parcial con recepciones incompletas, recibida_completa
// cuando lo recibido cubre lo pedido. cancelada solo desde pendiente.
type EstadoOrdenCompra string

const (
	OrdenPendiente        EstadoOrdenCompra = "pendiente"
	OrdenRecibidaParcial  EstadoOrdenCompra = "recibida_parcial"
	OrdenRecibidaCompleta EstadoOrdenCompra = "recibida_completa"
	OrdenCancelada        EstadoOrdenCompra = "cancelada"
)

// OrdenCompra es un pedido a proveedor con recepciones incrementales.
// Numero es secuencial global (no por año).
type OrdenCompra struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Numero      int        `gorm:"uniqueIndex;not null"`
	Fecha       time.Time  `gorm:"not null;index"`
	ProveedorID uuid.UUID  `gorm:"type:uuid;not null;index"`
	UsuarioID   uuid.UUID  `gorm:"type:uuid;not null"`
	Estado      EstadoOrdenCompra `gorm:"type:varchar(20);not null;default:'pendiente'"`
	Total       decimal.Decimal   `gorm:"type:decimal(12,2);not null;default:0"`
	Notas       *string
	CreatedAt   time.Time

	Detalles  []OrdenCompraDetalle `gorm:"foreignKey:OrdenCompraID;constraint:OnDelete:CASCADE"`
	Proveedor *Proveedor           `gorm:"foreignKey:ProveedorID"`
}

// TableName evita la pluralización de GORM (orden_compras → ordenes_compra).
func (OrdenCompra) TableName() string { return "ordenes_compra" }

// PuedeRecibir indica si la orden admite más recepciones de mercadería.
func (o *OrdenCompra) PuedeRecibir() bool {
	return o.Estado == OrdenPendiente || o.Estado == OrdenRecibidaParcial
}

// PuedeCancelar: solo órdenes sin recepciones se cancelan.
func (o *OrdenCompra) PuedeCancelar() bool { return o.Estado == OrdenPendiente }

// CalcularTotal suma los subtotales de las líneas.
func (o *OrdenCompra) CalcularTotal() {
	total := decimal.Zero
	for _, d := range o.Detalles {
		total = total.Add(d.Subtotal)
	}
	o.Total = total
}

// ActualizarEstado recalcula el estado según lo recibido acumulado.
func (o *OrdenCompra) ActualizarEstado() {
	if len(o.Detalles) == 0 {
		return
	}
	totalPedido := decimal.Zero
	totalRecibido := decimal.Zero
	for _, d := range o.Detalles {
		totalPedido = totalPedido.Add(d.CantidadPedida)
		totalRecibido = totalRecibido.Add(d.CantidadRecibida)
	}
	switch {
	case totalRecibido.IsZero():
		o.Estado = OrdenPendiente
	case totalRecibido.GreaterThanOrEqual(totalPedido):
		o.Estado = OrdenRecibidaCompleta
	default:
		o.Estado = OrdenRecibidaParcial
	}
}

// OrdenCompraDetalle es una línea de pedido con seguimiento de lo recibido.
type OrdenCompraDetalle struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrdenCompraID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductoID       uuid.UUID       `gorm:"type:uuid;not null"`
	CantidadPedida   decimal.Decimal `gorm:"type:decimal(12,3);not null"`
	CantidadRecibida decimal.Decimal `gorm:"type:decimal(12,3);not null;default:0"`
	PrecioUnitario   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Subtotal         decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	Producto *Producto `gorm:"foreignKey:ProductoID"`
}

// CantidadPendiente es lo que falta recibir de la línea.
func (d *OrdenCompraDetalle) CantidadPendiente() decimal.Decimal {
	return d.CantidadPedida.Sub(d.CantidadRecibida)
}

// EstaCompleto indica si la línea ya se recibió por completo.
func (d *OrdenCompraDetalle) EstaCompleto() bool {
	return d.CantidadRecibida.GreaterThanOrEqual(d.CantidadPedida)
}
