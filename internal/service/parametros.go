package service

// Parametros provee los valores de negocio configurables. La implementación
// productiva lee de la configuración cargada al arranque (internal/config);
// los tests inyectan valores fijos.
type Parametros interface {
	// DiasValidezPresupuesto es la validez por defecto cuando la solicitud
	// no especifica una.
	DiasValidezPresupuesto() int
	// EmailAlertasStock recibe los avisos de stock bajo el mínimo. Vacío
	// desactiva el envío.
	EmailAlertasStock() string
	// NombreComercio encabeza los PDF y los emails salientes.
	NombreComercio() string
}
