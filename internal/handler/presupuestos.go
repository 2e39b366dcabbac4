package handler

import (
	"fmt"
	"net/http"

	"github.com/mateoadann/ferrerp/internal/apierror"
	"github.com/mateoadann/ferrerp/internal/dto"
	"github.com/mateoadann/ferrerp/internal/infra"
	"github.com/mateoadann/ferrerp/internal/middleware"
	"github.com/mateoadann/ferrerp/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PresupuestosHandler struct {
	svc            service.PresupuestoService
	nombreComercio string
}

func NewPresupuestosHandler(svc service.PresupuestoService, nombreComercio string) *PresupuestosHandler {
	return &PresupuestosHandler{svc: svc, nombreComercio: nombreComercio}
}

// CrearPresupuesto godoc
// @Summary      Crear presupuesto
// @Description  Crea un presupuesto con precios congelados al momento de la emisión. No mueve stock ni caja.
// @Tags         presupuestos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CrearPresupuestoRequest true "Detalle del presupuesto"
// @Success      201  {object} dto.PresupuestoResponse
// @Router       /v1/presupuestos [post]
func (h *PresupuestosHandler) CrearPresupuesto(c *gin.Context) {
	var req dto.CrearPresupuestoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	usuarioID, _ := uuid.Parse(claims.UserID)

	resp, err := h.svc.Crear(c.Request.Context(), usuarioID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ActualizarPresupuesto replaces lines and header data while the quote is
// still pendiente.
func (h *PresupuestosHandler) ActualizarPresupuesto(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.ActualizarPresupuestoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Actualizar(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PresupuestosHandler) ObtenerPresupuesto(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	resp, err := h.svc.Obtener(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PresupuestosHandler) ListarPresupuestos(c *gin.Context) {
	var filter dto.PresupuestoFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CambiarEstado godoc
// @Summary      Aceptar o rechazar presupuesto
// @Description  Mueve el presupuesto por su máquina de estados (pendiente → aceptado | rechazado).
// @Tags         presupuestos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "UUID del presupuesto"
// @Param        body body dto.CambiarEstadoPresupuestoRequest true "Nuevo estado"
// @Success      200  {object} dto.PresupuestoResponse
// @Failure      409  {object} apierror.APIError
// @Router       /v1/presupuestos/{id}/estado [put]
func (h *PresupuestosHandler) CambiarEstado(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.CambiarEstadoPresupuestoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CambiarEstado(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ConvertirAVenta godoc
// @Summary      Convertir presupuesto aceptado en venta
// @Description  Crea la venta con los precios congelados del presupuesto, descontando stock y registrando el cobro.
// @Tags         presupuestos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "UUID del presupuesto"
// @Param        body body dto.ConvertirPresupuestoRequest true "Forma de pago"
// @Success      201  {object} dto.VentaResponse
// @Failure      409  {object} apierror.APIError
// @Router       /v1/presupuestos/{id}/convertir [post]
func (h *PresupuestosHandler) ConvertirAVenta(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.ConvertirPresupuestoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	usuarioID, _ := uuid.Parse(claims.UserID)

	resp, err := h.svc.ConvertirAVenta(c.Request.Context(), usuarioID, id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// EnviarPorEmail godoc
// @Summary      Enviar el presupuesto por email
// @Description  Renderiza el PDF y encola el envío al destinatario indicado.
// @Tags         presupuestos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "UUID del presupuesto"
// @Param        body body dto.EnviarPresupuestoRequest true "Destinatario"
// @Success      202  {object} map[string]string
// @Failure      404  {object} apierror.APIError
// @Router       /v1/presupuestos/{id}/enviar [post]
func (h *PresupuestosHandler) EnviarPorEmail(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.EnviarPresupuestoRequest
	if !bindAndValidate(c, &req) {
		return
	}

	if err := h.svc.EnviarPorEmail(c.Request.Context(), id, req.Email); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"mensaje": "Presupuesto encolado para envío"})
}

// ── Enlace público ────────────────────────────────────────────────────────────

// ObtenerPublico serves the quote for the shareable link. No auth: the token
// itself is the capability.
func (h *PresupuestosHandler) ObtenerPublico(c *gin.Context) {
	resp, err := h.svc.ObtenerPorToken(c.Request.Context(), c.Param("token"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DescargarPDF streams the rendered quote as an attachment.
func (h *PresupuestosHandler) DescargarPDF(c *gin.Context) {
	p, err := h.svc.ModeloPorToken(c.Request.Context(), c.Param("token"))
	if err != nil {
		respondError(c, err)
		return
	}
	data, err := infra.GenerarPresupuestoPDF(p, h.nombreComercio)
	if err != nil {
		c.Error(err)
		c.JSON(http.StatusInternalServerError, apierror.New("Error al generar el PDF"))
		return
	}
	fileName := fmt.Sprintf("presupuesto_%s.pdf", p.NumeroCompleto())
	c.Header("Content-Disposition", `attachment; filename="`+fileName+`"`)
	c.Data(http.StatusOK, "application/pdf", data)
}
