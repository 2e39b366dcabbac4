package handler

import (
	"errors"
	"net/http"
	"reflect"

	"github.com/mateoadann/ferrerp/internal/apierror"
	"github.com/mateoadann/ferrerp/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0, gt=0, required work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails —
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("JSON invalido: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// statusFor maps a business error Kind to its HTTP status code.
var statusFor = map[service.Kind]int{
	service.KindNoEncontrado:       http.StatusNotFound,
	service.KindProductoInactivo:   http.StatusBadRequest,
	service.KindClienteRequerido:   http.StatusBadRequest,
	service.KindMontoInvalido:      http.StatusBadRequest,
	service.KindValidacion:         http.StatusBadRequest,
	service.KindStockInsuficiente:  http.StatusConflict,
	service.KindLimiteCredito:      http.StatusConflict,
	service.KindCajaNoAbierta:      http.StatusConflict,
	service.KindCajaYaAbierta:      http.StatusConflict,
	service.KindNoAnulable:         http.StatusConflict,
	service.KindNoEditable:         http.StatusConflict,
	service.KindNoConvertible:      http.StatusConflict,
	service.KindNoCancelable:       http.StatusConflict,
	service.KindTransicionInvalida: http.StatusConflict,
	service.KindDuplicado:          http.StatusConflict,
	service.KindCredencialInvalida: http.StatusUnauthorized,
}

// respondError translates a service error into the API envelope. Unknown
// errors become an opaque 500 so internals never leak to clients.
func respondError(c *gin.Context, err error) {
	var de *service.Error
	if errors.As(err, &de) {
		status, ok := statusFor[de.Kind]
		if !ok {
			status = http.StatusInternalServerError
		}
		if status == http.StatusInternalServerError {
			c.Error(err)
			c.JSON(status, apierror.New("Error interno del servidor"))
			return
		}
		resp := struct {
			Detail string                 `json:"detail"`
			Codigo string                 `json:"codigo"`
			Datos  map[string]interface{} `json:"datos,omitempty"`
		}{Detail: de.Mensaje, Codigo: string(de.Kind), Datos: de.Datos}
		c.JSON(status, resp)
		return
	}
	c.Error(err)
	c.JSON(http.StatusInternalServerError, apierror.New("Error interno del servidor"))
}
