package handler

import (
	"net/http"
	"time"

	"github.com/mateoadann/ferrerp/internal/apierror"
	"github.com/mateoadann/ferrerp/internal/service"

	"github.com/gin-gonic/gin"
)

type ReportesHandler struct{ svc service.ReporteService }

func NewReportesHandler(svc service.ReporteService) *ReportesHandler {
	return &ReportesHandler{svc: svc}
}

// ResumenVentas godoc
// @Summary      Resumen de ventas por período
// @Description  Totales y cantidad de ventas completadas agrupados por forma de pago. Sin parámetros cubre el día de hoy.
// @Tags         reportes
// @Produce      json
// @Security     BearerAuth
// @Param        desde query string false "Fecha inicial YYYY-MM-DD (inclusive)"
// @Param        hasta query string false "Fecha final YYYY-MM-DD (inclusive)"
// @Success      200 {object} dto.ResumenVentasResponse
// @Router       /v1/reportes/ventas [get]
func (h *ReportesHandler) ResumenVentas(c *gin.Context) {
	hoy := time.Now().Truncate(24 * time.Hour)
	desde, hasta := hoy, hoy

	if v := c.Query("desde"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("desde inválido, se espera YYYY-MM-DD"))
			return
		}
		desde = t
	}
	if v := c.Query("hasta"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("hasta inválido, se espera YYYY-MM-DD"))
			return
		}
		hasta = t
	}

	// hasta es inclusivo para el cliente; el servicio trabaja con límite
	// superior exclusivo.
	resp, err := h.svc.ResumenVentas(c.Request.Context(), desde, hasta.AddDate(0, 0, 1))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ValuacionStock godoc
// @Summary      Valuación del inventario activo
// @Tags         reportes
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.ValuacionStockResponse
// @Router       /v1/reportes/stock [get]
func (h *ReportesHandler) ValuacionStock(c *gin.Context) {
	resp, err := h.svc.ValuacionStock(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
