package routing

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/eleven-am/support-backend/internal/analytics"
	"github.com/eleven-am/support-backend/internal/conversation"
)

const (
	defaultSearchLimit = 5
	historyDepth       = 5
)

// Router is the query orchestrator: classify, dispatch to the
// retrieval and/or analytics branches, merge. Route never fails; every
// failure path degrades to explanatory text.
type Router struct {
	classifier    *Classifier
	retriever     Retriever
	synthesizer   Synthesizer
	aggregator    Aggregator
	conversations ConversationStore
	logger        *slog.Logger
	searchLimit   int
}

func NewRouter(
	classifier *Classifier,
	retriever Retriever,
	synthesizer Synthesizer,
	aggregator Aggregator,
	conversations ConversationStore,
	logger *slog.Logger,
) *Router {
	if logger == nil {
		logger = slog.Default()
	}
	return &Router{
		classifier:    classifier,
		retriever:     retriever,
		synthesizer:   synthesizer,
		aggregator:    aggregator,
		conversations: conversations,
		logger:        logger.With("component", "query-router"),
		searchLimit:   defaultSearchLimit,
	}
}

func (r *Router) Route(ctx context.Context, q Query) ComposedAnswer {
	decision := r.classifier.Classify(ctx, q.Text)
	r.logger.Debug("query classified",
		"needs_retrieval", decision.NeedsRetrieval,
		"needs_analytics", decision.NeedsAnalytics,
		"rationale", decision.Rationale)

	var (
		wg sync.WaitGroup

		retrievalText string
		references    []string

		summary  *analytics.Summary
		chartSet *analytics.ChartSet
	)

	// The branches read disjoint data, so they run concurrently. Each
	// carries its own error boundary: one branch failing or panicking
	// must never take the other down with it.
	if decision.NeedsRetrieval {
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer r.recoverBranch("retrieval")

			result := r.retriever.Search(ctx, q.Text, q.Tenant, r.searchLimit)
			if result.FallbackUsed {
				r.logger.Warn("retrieval degraded",
					"tier", result.Tier, "reason", result.FallbackReason)
			}

			answer := r.synthesizer.Synthesize(ctx, r.contextualText(ctx, q), result.Tickets)
			retrievalText = answer.Text
			references = dedupe(answer.TicketIDs)
		}()
	}

	if decision.NeedsAnalytics {
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer r.recoverBranch("analytics")

			s, err := r.aggregator.Aggregate(ctx, q.Tenant)
			if err != nil {
				r.logger.Error("analytics branch failed", "error", err, "tenant", q.Tenant)
				return
			}
			summary = s
			chartSet = analytics.ChartSpecs(s)
		}()
	}

	wg.Wait()

	if references == nil {
		references = []string{}
	}

	answer := ComposedAnswer{
		Text:             compose(retrievalText, summary),
		TicketReferences: references,
		Chart:            chartSet,
	}

	r.recordExchange(ctx, q, answer.Text)
	return answer
}

// contextualText prefixes the question with recent thread history so
// follow-up questions keep their referents. History loading is
// best-effort.
func (r *Router) contextualText(ctx context.Context, q Query) string {
	if r.conversations == nil || q.ConversationID == "" {
		return q.Text
	}

	history, err := r.conversations.Recent(ctx, q.ConversationID, historyDepth)
	if err != nil {
		r.logger.Warn("failed to load conversation history", "error", err, "thread", q.ConversationID)
		return q.Text
	}
	if len(history) == 0 {
		return q.Text
	}

	var sb strings.Builder
	sb.WriteString("Earlier in this conversation:\n")
	for _, ex := range history {
		fmt.Fprintf(&sb, "Q: %s\nA: %s\n", ex.Question, ex.Answer)
	}
	fmt.Fprintf(&sb, "\nCurrent question: %s", q.Text)
	return sb.String()
}

func (r *Router) recordExchange(ctx context.Context, q Query, answer string) {
	if r.conversations == nil || q.ConversationID == "" {
		return
	}

	err := r.conversations.Append(ctx, q.ConversationID, conversation.Exchange{
		Question: q.Text,
		Answer:   answer,
		AskedAt:  time.Now().UTC(),
	})
	if err != nil {
		r.logger.Warn("failed to record exchange", "error", err, "thread", q.ConversationID)
	}
}

func (r *Router) recoverBranch(branch string) {
	if rec := recover(); rec != nil {
		r.logger.Error("branch panicked", "branch", branch, "panic", rec)
	}
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
