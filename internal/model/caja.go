package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EstadoCaja modela el ciclo de vida de una sesión de caja:
// abierta → cerrada (terminal; para seguir operando se abre otra sesión).
type EstadoCaja string

const (
	CajaAbierta EstadoCaja = "abierta"
	CajaCerrada EstadoCaja = "cerrada"
)

// TipoMovimientoCaja distingue entradas de salidas de dinero.
type TipoMovimientoCaja string

const (
	MovCajaIngreso TipoMovimientoCaja = "ingreso"
	MovCajaEgreso  TipoMovimientoCaja = "egreso"
)

// ConceptoMovimientoCaja es el conjunto cerrado de causas de movimiento.
type ConceptoMovimientoCaja string

const (
	ConceptoVenta      ConceptoMovimientoCaja = "venta"
	ConceptoCobroCC    ConceptoMovimientoCaja = "cobro_cuenta_corriente"
	ConceptoPagoProv   ConceptoMovimientoCaja = "pago_proveedor"
	ConceptoGasto      ConceptoMovimientoCaja = "gasto"
	ConceptoRetiro     ConceptoMovimientoCaja = "retiro"
	ConceptoDevolucion ConceptoMovimientoCaja = "devolucion"
	ConceptoOtro       ConceptoMovimientoCaja = "otro"
)

// FormaPago cubre tanto los métodos que tocan la caja física como la venta
// a cuenta corriente (que no genera movimiento de caja).
type FormaPago string

const (
	PagoEfectivo        FormaPago = "efectivo"
	PagoTarjetaDebito   FormaPago = "tarjeta_debito"
	PagoTarjetaCredito  FormaPago = "tarjeta_credito"
	PagoTransferencia   FormaPago = "transferencia"
	PagoCuentaCorriente FormaPago = "cuenta_corriente"
)

// EsMetodoCaja indica si la forma de pago se registra como movimiento de caja.
func (f FormaPago) EsMetodoCaja() bool {
	switch f {
	case PagoEfectivo, PagoTarjetaDebito, PagoTarjetaCredito, PagoTransferencia:
		return true
	}
	return false
}

// Caja es una sesión de apertura/cierre del cajón físico. El sistema admite
// a lo sumo una caja abierta a la vez (índice parcial único en la base).
type Caja struct {
	ID                 uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FechaApertura      time.Time  `gorm:"not null;index"`
	FechaCierre        *time.Time
	UsuarioAperturaID  uuid.UUID       `gorm:"type:uuid;not null"`
	UsuarioCierreID    *uuid.UUID      `gorm:"type:uuid"`
	MontoInicial       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	// MontoEsperado se calcula al cierre desde la lista autoritativa de
	// movimientos: inicial + Σ ingresos efectivo − Σ egresos efectivo.
	MontoEsperado *decimal.Decimal `gorm:"type:decimal(12,2)"`
	MontoReal     *decimal.Decimal `gorm:"type:decimal(12,2)"`
	Diferencia    *decimal.Decimal `gorm:"type:decimal(12,2)"`
	Estado        EstadoCaja       `gorm:"type:varchar(10);not null;default:'abierta'"`
	Observaciones *string

	Movimientos []MovimientoCaja `gorm:"foreignKey:CajaID;constraint:OnDelete:CASCADE"`
}

// EstaAbierta indica si la sesión sigue operativa.
func (c *Caja) EstaAbierta() bool { return c.Estado == CajaAbierta }

// CalcularMontoEsperado recorre los movimientos cargados y devuelve el
// efectivo que debería haber en el cajón. Solo los movimientos con forma de
// pago efectivo afectan el conteo físico; débito/crédito/transferencia son
// informativos.
func (c *Caja) CalcularMontoEsperado() decimal.Decimal {
	esperado := c.MontoInicial
	for _, m := range c.Movimientos {
		if m.FormaPago != PagoEfectivo {
			continue
		}
		switch m.Tipo {
		case MovCajaIngreso:
			esperado = esperado.Add(m.Monto)
		case MovCajaEgreso:
			esperado = esperado.Sub(m.Monto)
		}
	}
	return esperado
}

// CierreCaja agrupa los valores del arqueo que se asientan al cerrar la
// sesión. Se aplica con un update condicional sobre estado = abierta.
type CierreCaja struct {
	FechaCierre     time.Time
	UsuarioCierreID uuid.UUID
	MontoEsperado   decimal.Decimal
	MontoReal       decimal.Decimal
	Diferencia      decimal.Decimal
	Observaciones   *string
}

// MovimientoCaja es un hecho inmutable del ledger de la caja. Las anulaciones
// registran movimientos compensatorios, nunca se edita ni borra uno existente.
type MovimientoCaja struct {
	ID             uuid.UUID              `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CajaID         uuid.UUID              `gorm:"type:uuid;not null;index"`
	Tipo           TipoMovimientoCaja     `gorm:"type:varchar(10);not null"`
	Concepto       ConceptoMovimientoCaja `gorm:"type:varchar(30);not null"`
	Descripcion    *string                `gorm:"type:varchar(200)"`
	Monto          decimal.Decimal        `gorm:"type:decimal(12,2);not null"` // siempre > 0, el signo lo da Tipo
	FormaPago      FormaPago              `gorm:"type:varchar(20);not null;default:'efectivo'"`
	ReferenciaTipo *string                `gorm:"type:varchar(20)"` // venta | anulacion_venta | pago_cc
	ReferenciaID   *uuid.UUID             `gorm:"type:uuid"`
	UsuarioID      uuid.UUID              `gorm:"type:uuid;not null"`
	CreatedAt      time.Time              `gorm:"index"`
}

// TableName fija el nombre histórico de la tabla.
func (MovimientoCaja) TableName() string { return "movimientos_caja" }
