package bootstrap

import (
	"log/slog"
	"os"

	_ "github.com/eleven-am/support-backend/docs"
	"github.com/eleven-am/support-backend/internal/analytics"
	"github.com/eleven-am/support-backend/internal/conversation"
	"github.com/eleven-am/support-backend/internal/llm"
	"github.com/eleven-am/support-backend/internal/retrieval"
	"github.com/eleven-am/support-backend/internal/routing"
	"github.com/eleven-am/support-backend/internal/synthesis"
	"github.com/eleven-am/support-backend/internal/ticket"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/fx"
)

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func ProvideLogger(cfg *Config) *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}))
}

func ProvideRetrievalEngine(store *ticket.Store, logger *slog.Logger) *retrieval.Engine {
	return retrieval.NewEngine(store, logger)
}

func ProvideAnalyticsEngine(store *ticket.Store, logger *slog.Logger) *analytics.Engine {
	return analytics.NewEngine(store, logger)
}

func ProvideSynthesizer(llmClient *llm.Client, logger *slog.Logger) *synthesis.Synthesizer {
	return synthesis.NewSynthesizer(llmClient, logger)
}

func ProvideClassifier(llmClient *llm.Client, logger *slog.Logger) *routing.Classifier {
	return routing.NewClassifier(llmClient, logger)
}

func ProvideQueryRouter(
	classifier *routing.Classifier,
	retriever *retrieval.Engine,
	synthesizer *synthesis.Synthesizer,
	aggregator *analytics.Engine,
	conversations *conversation.Store,
	logger *slog.Logger,
) *routing.Router {
	return routing.NewRouter(classifier, retriever, synthesizer, aggregator, conversations, logger)
}

func ProvideTicketHandler(store *ticket.Store, logger *slog.Logger) *ticket.Handler {
	return ticket.NewHandler(store, logger.With("handler", "ticket"))
}

func ProvideQueryHandler(router *routing.Router, logger *slog.Logger) *routing.Handler {
	return routing.NewHandler(router, logger.With("handler", "query"))
}

type HandlerParams struct {
	fx.In

	TicketHandler *ticket.Handler
	QueryHandler  *routing.Handler
}

func RegisterRoutes(e *echo.Echo, params HandlerParams) {
	api := e.Group("/v1")

	params.TicketHandler.RegisterRoutes(api.Group("/tickets"))
	params.QueryHandler.RegisterRoutes(api.Group("/query"))

	e.GET("/swagger/*", echoSwagger.EchoWrapHandler())
}

var HandlersModule = fx.Options(
	fx.Provide(
		ProvideLogger,
		ProvideRetrievalEngine,
		ProvideAnalyticsEngine,
		ProvideSynthesizer,
		ProvideClassifier,
		ProvideQueryRouter,
		ProvideTicketHandler,
		ProvideQueryHandler,
	),
	fx.Invoke(RegisterRoutes),
)
