package service

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Kind clasifica los errores de negocio. El handler los mapea a código HTTP
// sin inspeccionar el texto del mensaje.
type Kind string

const (
	KindNoEncontrado       Kind = "no_encontrado"
	KindProductoInactivo   Kind = "producto_inactivo"
	KindStockInsuficiente  Kind = "stock_insuficiente"
	KindLimiteCredito      Kind = "limite_credito_excedido"
	KindClienteRequerido   Kind = "cliente_requerido"
	KindCajaNoAbierta      Kind = "caja_no_abierta"
	KindCajaYaAbierta      Kind = "caja_ya_abierta"
	KindNoAnulable         Kind = "no_anulable"
	KindNoEditable         Kind = "no_editable"
	KindNoConvertible      Kind = "no_convertible"
	KindNoCancelable       Kind = "no_cancelable"
	KindTransicionInvalida Kind = "transicion_invalida"
	KindMontoInvalido      Kind = "monto_invalido"
	KindValidacion         Kind = "validacion"
	KindAlmacenamiento     Kind = "almacenamiento"
	KindCredencialInvalida Kind = "credencial_invalida"
	KindDuplicado          Kind = "duplicado"
)

// Error es el error de negocio que cruza la frontera del servicio. Datos
// es el detalle estructurado que el cliente necesita para reaccionar, por
// ejemplo solicitado/disponible en un faltante de stock.
type Error struct {
	Kind    Kind
	Mensaje string
	Datos   map[string]interface{}
	causa   error
}

func (e *Error) Error() string { return e.Mensaje }

func (e *Error) Unwrap() error { return e.causa }

// EsKind reporta si err es un *Error del Kind dado.
func EsKind(err error, k Kind) bool {
	var de *Error
	if !errors.As(err, &de) {
		return false
	}
	return de.Kind == k
}

// ─── Constructores ───────────────────────────────────────────────────────────

func ErrNoEncontrado(entidad string) *Error {
	return &Error{Kind: KindNoEncontrado, Mensaje: entidad + " no encontrado"}
}

func ErrProductoInactivo(nombre string) *Error {
	return &Error{
		Kind:    KindProductoInactivo,
		Mensaje: fmt.Sprintf("el producto %s está inactivo y no puede operarse", nombre),
	}
}

func ErrStockInsuficiente(producto string, solicitado, disponible decimal.Decimal) *Error {
	return &Error{
		Kind:    KindStockInsuficiente,
		Mensaje: fmt.Sprintf("stock insuficiente de %s", producto),
		Datos: map[string]interface{}{
			"producto":   producto,
			"solicitado": solicitado,
			"disponible": disponible,
		},
	}
}

func ErrLimiteCredito(disponible decimal.Decimal) *Error {
	return &Error{
		Kind:    KindLimiteCredito,
		Mensaje: "la operación excede el límite de crédito del cliente",
		Datos:   map[string]interface{}{"credito_disponible": disponible},
	}
}

func ErrClienteRequerido() *Error {
	return &Error{
		Kind:    KindClienteRequerido,
		Mensaje: "la venta a cuenta corriente requiere un cliente registrado",
	}
}

func ErrCajaNoAbierta() *Error {
	return &Error{Kind: KindCajaNoAbierta, Mensaje: "no hay una caja abierta"}
}

func ErrCajaYaAbierta() *Error {
	return &Error{Kind: KindCajaYaAbierta, Mensaje: "ya existe una caja abierta"}
}

func ErrNoAnulable(motivo string) *Error {
	return &Error{Kind: KindNoAnulable, Mensaje: motivo}
}

func ErrNoEditable(motivo string) *Error {
	return &Error{Kind: KindNoEditable, Mensaje: motivo}
}

func ErrNoConvertible(motivo string) *Error {
	return &Error{Kind: KindNoConvertible, Mensaje: motivo}
}

func ErrNoCancelable(motivo string) *Error {
	return &Error{Kind: KindNoCancelable, Mensaje: motivo}
}

func ErrTransicionInvalida(desde, hacia string) *Error {
	return &Error{
		Kind:    KindTransicionInvalida,
		Mensaje: fmt.Sprintf("transición de estado inválida: %s a %s", desde, hacia),
		Datos:   map[string]interface{}{"desde": desde, "hacia": hacia},
	}
}

func ErrMontoInvalido(motivo string) *Error {
	return &Error{Kind: KindMontoInvalido, Mensaje: motivo}
}

func ErrValidacion(motivo string) *Error {
	return &Error{Kind: KindValidacion, Mensaje: motivo}
}

func ErrCredencialInvalida() *Error {
	return &Error{Kind: KindCredencialInvalida, Mensaje: "usuario o contraseña incorrectos"}
}

func ErrDuplicado(motivo string) *Error {
	return &Error{Kind: KindDuplicado, Mensaje: motivo}
}

// ErrAlmacenamiento envuelve un error de infraestructura sin filtrar el
// detalle interno al cliente.
func ErrAlmacenamiento(causa error) *Error {
	return &Error{Kind: KindAlmacenamiento, Mensaje: "error interno de almacenamiento", causa: causa}
}
