package bootstrap

import (
	"github.com/eleven-am/support-backend/internal/conversation"
	"github.com/eleven-am/support-backend/internal/llm"
	"github.com/eleven-am/support-backend/internal/ticket"
	"github.com/qdrant/go-client/qdrant"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

func ProvideTicketStore(db *gorm.DB, qdrantClient *qdrant.Client, llmClient *llm.Client, cfg *Config) *ticket.Store {
	return ticket.NewStore(db, qdrantClient, llmClient, cfg.TicketCollection)
}

func ProvideConversationStore(redisClient *redis.Client, cfg *Config) *conversation.Store {
	return conversation.NewStore(redisClient, cfg.ConversationTTL)
}

func RunMigrations(ticketStore *ticket.Store) error {
	return ticketStore.Migrate()
}

var StoresModule = fx.Options(
	fx.Provide(
		ProvideTicketStore,
		ProvideConversationStore,
	),
	fx.Invoke(RunMigrations),
)
