package ticket

import (
	"log/slog"
	"net/http"

	"github.com/eleven-am/support-backend/internal/shared"
	"github.com/labstack/echo/v4"
)

type Handler struct {
	store  *Store
	logger *slog.Logger
}

func NewHandler(store *Store, logger *slog.Logger) *Handler {
	return &Handler{
		store:  store,
		logger: logger,
	}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("/count", h.Count)
	g.GET("/status", h.StatusBreakdown)
}

type CountResponse struct {
	Count   int64  `json:"count"`
	Product string `json:"product,omitempty"`
}

type StatusBreakdownResponse struct {
	Total   int64            `json:"total"`
	Counts  map[string]int64 `json:"counts"`
	Product string           `json:"product,omitempty"`
}

// @Summary      Count tickets
// @Description  Returns the number of tickets, optionally scoped to one product
// @Tags         tickets
// @Produce      json
// @Param        product  query     string  false  "Product filter"
// @Success      200      {object}  ticket.CountResponse
// @Failure      500      {object}  shared.APIError
// @Router       /tickets/count [get]
func (h *Handler) Count(c echo.Context) error {
	product := c.QueryParam("product")

	count, err := h.store.Count(c.Request().Context(), product)
	if err != nil {
		h.logger.Error("failed to count tickets", "error", err, "product", product)
		return shared.InternalError("count_failed", "failed to count tickets")
	}

	return c.JSON(http.StatusOK, CountResponse{Count: count, Product: product})
}

// @Summary      Ticket status breakdown
// @Description  Returns ticket counts grouped by status
// @Tags         tickets
// @Produce      json
// @Param        product  query     string  false  "Product filter"
// @Success      200      {object}  ticket.StatusBreakdownResponse
// @Failure      500      {object}  shared.APIError
// @Router       /tickets/status [get]
func (h *Handler) StatusBreakdown(c echo.Context) error {
	product := c.QueryParam("product")

	counts, err := h.store.StatusCounts(c.Request().Context(), product)
	if err != nil {
		h.logger.Error("failed to aggregate statuses", "error", err, "product", product)
		return shared.InternalError("status_breakdown_failed", "failed to aggregate ticket statuses")
	}

	var total int64
	for _, n := range counts {
		total += n
	}

	return c.JSON(http.StatusOK, StatusBreakdownResponse{
		Total:   total,
		Counts:  counts,
		Product: product,
	})
}
