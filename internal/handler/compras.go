package handler

import (
	"net/http"

	"github.com/mateoadann/ferrerp/internal/apierror"
	"github.com/mateoadann/ferrerp/internal/dto"
	"github.com/mateoadann/ferrerp/internal/middleware"
	"github.com/mateoadann/ferrerp/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ComprasHandler struct{ svc service.CompraService }

func NewComprasHandler(svc service.CompraService) *ComprasHandler { return &ComprasHandler{svc: svc} }

// CrearOrden godoc
// @Summary      Crear orden de compra
// @Description  Emite una orden de compra a un proveedor. El stock recién se mueve al recibir mercadería.
// @Tags         compras
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CrearOrdenCompraRequest true "Detalle de la orden"
// @Success      201  {object} dto.OrdenCompraResponse
// @Router       /v1/compras [post]
func (h *ComprasHandler) CrearOrden(c *gin.Context) {
	var req dto.CrearOrdenCompraRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	usuarioID, _ := uuid.Parse(claims.UserID)

	resp, err := h.svc.CrearOrden(c.Request.Context(), usuarioID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Recibir godoc
// @Summary      Registrar recepción de mercadería
// @Description  Registra una recepción parcial o total: suma stock, actualiza cantidades recibidas y opcionalmente los costos.
// @Tags         compras
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "UUID de la orden"
// @Param        body body dto.RecibirOrdenCompraRequest true "Ítems recibidos"
// @Success      200  {object} dto.OrdenCompraResponse
// @Failure      409  {object} apierror.APIError
// @Router       /v1/compras/{id}/recibir [post]
func (h *ComprasHandler) Recibir(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.RecibirOrdenCompraRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	usuarioID, _ := uuid.Parse(claims.UserID)

	resp, err := h.svc.Recibir(c.Request.Context(), usuarioID, id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Cancelar cancels a pending order. Orders with receptions cannot be
// cancelled.
func (h *ComprasHandler) Cancelar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	if err := h.svc.Cancelar(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ComprasHandler) ObtenerOrden(c *gin.Context) {
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

func (h *ComprasHandler) ListarOrdenes(c *gin.Context) {
	var filter dto.OrdenCompraFilter
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
