package routing

import (
	"context"

	"github.com/eleven-am/support-backend/internal/analytics"
	"github.com/eleven-am/support-backend/internal/conversation"
	"github.com/eleven-am/support-backend/internal/retrieval"
	"github.com/eleven-am/support-backend/internal/synthesis"
	"github.com/eleven-am/support-backend/internal/ticket"
)

// Query is one incoming question. Tenant narrows searches to a product
// line; ConversationID links the question to a history thread.
type Query struct {
	Text           string
	Tenant         string
	ConversationID string
}

// Decision is the routing verdict for one query. Derived once, then
// read-only.
type Decision struct {
	NeedsRetrieval bool
	NeedsAnalytics bool
	Rationale      string
}

// ComposedAnswer is the final merged response. Built once per query;
// Chart is nil unless the analytics branch ran.
type ComposedAnswer struct {
	Text             string              `json:"text"`
	TicketReferences []string            `json:"ticket_references"`
	Chart            *analytics.ChartSet `json:"chart,omitempty"`
}

// Retriever, Synthesizer and Aggregator are the branch capabilities the
// router dispatches to.
type Retriever interface {
	Search(ctx context.Context, query, tenant string, limit int) retrieval.Result
}

type Synthesizer interface {
	Synthesize(ctx context.Context, query string, tickets []*ticket.Ticket) synthesis.Answer
}

type Aggregator interface {
	Aggregate(ctx context.Context, tenant string) (*analytics.Summary, error)
}

// ConversationStore is the optional thread-history capability. A nil
// store disables history without changing routing behavior.
type ConversationStore interface {
	Recent(ctx context.Context, threadID string, n int) ([]conversation.Exchange, error)
	Append(ctx context.Context, threadID string, ex conversation.Exchange) error
}
