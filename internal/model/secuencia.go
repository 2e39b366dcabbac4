package model

// AlcanceSecuencia identifica cada numerador independiente de documentos.
type AlcanceSecuencia string

const (
	SecuenciaVenta       AlcanceSecuencia = "venta"
	SecuenciaPresupuesto AlcanceSecuencia = "presupuesto"
	SecuenciaOrdenCompra AlcanceSecuencia = "orden_compra"
)

// Secuencia es la fila contadora de numeración de documentos. Ventas y
// presupuestos numeran por año calendario; las órdenes de compra usan un
// contador global (Anio = 0). El incremento es un UPSERT atómico, así dos
// emisiones concurrentes nunca reciben el mismo número. Los huecos por
// rollback son aceptables; los duplicados no.
type Secuencia struct {
	Alcance      AlcanceSecuencia `gorm:"type:varchar(20);primaryKey"`
	Anio         int              `gorm:"primaryKey"`
	UltimoNumero int              `gorm:"not null;default:0"`
}

// TableName fija el nombre de la tabla contadora.
func (Secuencia) TableName() string { return "secuencias" }
