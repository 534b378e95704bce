package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Libreria-api/internal/application/dto"
	"github.com/jhoicas/Libreria-api/internal/application/ledger"
)

// FinanceHandler consultas del libro contable (solo lectura).
type FinanceHandler struct {
	uc *ledger.UseCase
}

// NewFinanceHandler construye el handler.
func NewFinanceHandler(uc *ledger.UseCase) *FinanceHandler {
	return &FinanceHandler{uc: uc}
}

// Transactions godoc
// @Summary      Listar asientos contables
// @Tags         finance
// @Security     Bearer
// @Produce      json
// @Param        type        query  string  false  "income | expense"
// @Param        start_date  query  string  false  "Desde (RFC3339 o YYYY-MM-DD)"
// @Param        end_date    query  string  false  "Hasta (RFC3339 o YYYY-MM-DD, incluye el día completo)"
// @Success      200  {array}  dto.TransactionResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/finance/transactions [get]
func (h *FinanceHandler) Transactions(c *fiber.Ctx) error {
	q, err := ledgerQuery(c)
	if err != nil {
		return err
	}
	out, err := h.uc.List(c.UserContext(), q)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Summary godoc
// @Summary      Resumen financiero
// @Description  Ingresos, egresos y utilidad neta del período.
// @Tags         finance
// @Security     Bearer
// @Produce      json
// @Param        start_date  query  string  false  "Desde"
// @Param        end_date    query  string  false  "Hasta"
// @Success      200  {object}  dto.FinancialSummaryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/finance/summary [get]
func (h *FinanceHandler) Summary(c *fiber.Ctx) error {
	q, err := ledgerQuery(c)
	if err != nil {
		return err
	}
	out, err := h.uc.Summary(c.UserContext(), q)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

func ledgerQuery(c *fiber.Ctx) (dto.LedgerQuery, error) {
	var q dto.LedgerQuery
	if err := c.QueryParser(&q); err != nil {
		return q, badRequest("INVALID_QUERY", "parámetros inválidos")
	}
	return q, nil
}
