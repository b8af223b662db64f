package retrieval

import (
	"context"
	"errors"
	"log/slog"

	"github.com/eleven-am/support-backend/internal/shared"
	"github.com/eleven-am/support-backend/internal/ticket"
)

// Engine walks the three-tier fallback cascade. Each tier is attempted
// exactly once, with no retries and no backoff: worst-case latency is
// bounded by the sum of three attempts. Search never returns an error;
// total failure degrades to an empty result.
type Engine struct {
	store  Searcher
	logger *slog.Logger
}

func NewEngine(store Searcher, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		store:  store,
		logger: logger.With("component", "retrieval"),
	}
}

func (e *Engine) Search(ctx context.Context, query, tenant string, limit int) Result {
	tickets, err := e.store.SearchSemantic(ctx, query, tenant, limit)
	if err == nil {
		// Zero semantic hits is a terminal outcome: the service
		// answered, there is just nothing relevant.
		return Result{Tickets: capTickets(tickets, limit), Tier: TierSemantic}
	}

	if errors.Is(err, shared.ErrTransportUnavailable) {
		// The structured tiers hit the same store; if transport is
		// down they would fail identically.
		e.logger.Warn("store unreachable, abandoning cascade", "error", err)
		return emptyResult("store unreachable")
	}

	reason := "semantic search failed"
	if errors.Is(err, shared.ErrEmbeddingUnavailable) {
		reason = "embedding service unavailable"
	}
	e.logger.Warn("semantic tier failed, falling back to structured search",
		"error", err, "query", query)

	keywords := ExtractKeywords(query)
	if len(keywords) == 0 {
		return emptyResult(reason + "; no usable keywords")
	}

	tickets, err = e.store.SearchKeyword(ctx, keywords, tenant, limit)
	if err != nil {
		if errors.Is(err, shared.ErrTransportUnavailable) {
			e.logger.Warn("store unreachable during structured fallback", "error", err)
			return emptyResult("store unreachable")
		}
		e.logger.Warn("structured tier failed, falling back to raw filter", "error", err)
		return e.searchRaw(ctx, keywords, tenant, limit, reason)
	}
	if len(tickets) > 0 {
		return Result{
			Tickets:        capTickets(tickets, limit),
			Tier:           TierKeywordStructured,
			FallbackUsed:   true,
			FallbackReason: reason,
		}
	}

	// Structured search answered with nothing; the raw tier sidesteps
	// the statement builder in case the miss is a planner bug.
	return e.searchRaw(ctx, keywords, tenant, limit, reason)
}

func (e *Engine) searchRaw(ctx context.Context, keywords []string, tenant string, limit int, reason string) Result {
	tickets, err := e.store.SearchRaw(ctx, keywords, tenant, limit)
	if err != nil {
		e.logger.Warn("raw tier failed, returning empty result", "error", err)
		return emptyResult(reason + "; all tiers exhausted")
	}
	if len(tickets) == 0 {
		return emptyResult(reason + "; no matches in any tier")
	}
	return Result{
		Tickets:        capTickets(tickets, limit),
		Tier:           TierKeywordRaw,
		FallbackUsed:   true,
		FallbackReason: reason,
	}
}

func capTickets(tickets []*ticket.Ticket, limit int) []*ticket.Ticket {
	if limit > 0 && len(tickets) > limit {
		return tickets[:limit]
	}
	return tickets
}
