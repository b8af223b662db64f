package bootstrap

import (
	"github.com/eleven-am/support-backend/internal/health"
	"github.com/eleven-am/support-backend/internal/llm"
	"github.com/eleven-am/support-backend/internal/ticket"
	"github.com/labstack/echo/v4"
	"github.com/qdrant/go-client/qdrant"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

const version = "1.0.0"

func ProvideHealthHandler(
	db *gorm.DB,
	redis *redis.Client,
	qdrant *qdrant.Client,
	llmClient *llm.Client,
	ticketStore *ticket.Store,
) *health.Handler {
	return health.NewHandler(
		db,
		redis,
		qdrant,
		llmClient,
		ticketStore,
		version,
	)
}

func metricsMiddleware(h *health.Handler) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			h.IncrementRequests()
			return next(c)
		}
	}
}

func RegisterHealthRoutes(e *echo.Echo, h *health.Handler) {
	e.Use(metricsMiddleware(h))
	h.RegisterRoutes(e)
}

var HealthModule = fx.Options(
	fx.Provide(ProvideHealthHandler),
	fx.Invoke(RegisterHealthRoutes),
)
