package routing

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/eleven-am/support-backend/internal/shared"
	"github.com/labstack/echo/v4"
)

type Handler struct {
	router *Router
	logger *slog.Logger
}

func NewHandler(router *Router, logger *slog.Logger) *Handler {
	return &Handler{
		router: router,
		logger: logger,
	}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.POST("", h.Query)
}

type QueryRequest struct {
	Query          string `json:"query" example:"How do I fix my battery issue?"`
	Product        string `json:"product,omitempty" example:"SmartWatch"`
	ConversationID string `json:"conversation_id,omitempty"`
}

// @Summary      Answer a support question
// @Description  Routes a natural-language question to ticket retrieval and/or analytics and returns one composed answer
// @Tags         query
// @Accept       json
// @Produce      json
// @Param        request  body      routing.QueryRequest  true  "Question"
// @Success      200      {object}  routing.ComposedAnswer
// @Failure      400      {object}  shared.APIError
// @Router       /query [post]
func (h *Handler) Query(c echo.Context) error {
	var req QueryRequest
	if err := c.Bind(&req); err != nil {
		return shared.BadRequest("invalid_request", "invalid request body")
	}

	req.Query = strings.TrimSpace(req.Query)
	if req.Query == "" {
		return shared.BadRequest("missing_query", "query text is required")
	}

	answer := h.router.Route(c.Request().Context(), Query{
		Text:           req.Query,
		Tenant:         req.Product,
		ConversationID: req.ConversationID,
	})

	return c.JSON(http.StatusOK, answer)
}
