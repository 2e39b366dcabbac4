package dto

type CrearProveedorRequest struct {
	Nombre        string  `json:"nombre"         validate:"required,min=2,max=200"`
	Cuit          *string `json:"cuit"           validate:"omitempty,max=13"`
	Telefono      *string `json:"telefono"`
	Email         *string `json:"email"          validate:"omitempty,email"`
	Direccion     *string `json:"direccion"`
	CondicionPago *string `json:"condicion_pago"`
	Notas         *string `json:"notas"`
}

type ProveedorResponse struct {
	ID            string  `json:"id"`
	Nombre        string  `json:"nombre"`
	Cuit          *string `json:"cuit,omitempty"`
	Telefono      *string `json:"telefono,omitempty"`
	Email         *string `json:"email,omitempty"`
	Direccion     *string `json:"direccion,omitempty"`
	CondicionPago *string `json:"condicion_pago,omitempty"`
	Notas         *string `json:"notas,omitempty"`
	Activo        bool    `json:"activo"`
}
