package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/Libreria-api/internal/application/analytics"
)

// DashboardHandler maneja el endpoint del dashboard financiero.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary godoc
// @Summary      Dashboard financiero
// @Description  Totales del día y del mes en curso y los 5 libros con más ingreso del mes.
// @Tags         finance
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardSummaryResponse
// @Router       /api/finance/dashboard [get]
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.uc.GetSummary(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(summary)
}
