package retrieval

import (
	"context"
	"strings"

	"github.com/eleven-am/support-backend/internal/ticket"
)

// Tier identifies which retrieval strategy produced a result.
type Tier string

const (
	TierSemantic          Tier = "semantic"
	TierKeywordStructured Tier = "keyword-structured"
	TierKeywordRaw        Tier = "keyword-raw"
	TierEmpty             Tier = "empty"
)

// Searcher is the slice of the ticket store the cascade needs. Each
// method maps to one tier and classifies its failures into the shared
// taxonomy.
type Searcher interface {
	SearchSemantic(ctx context.Context, query, tenant string, limit int) ([]*ticket.Ticket, error)
	SearchKeyword(ctx context.Context, keywords []string, tenant string, limit int) ([]*ticket.Ticket, error)
	SearchRaw(ctx context.Context, keywords []string, tenant string, limit int) ([]*ticket.Ticket, error)
}

// Result carries the retrieved tickets in relevance order plus
// degradation metadata. Tickets never exceeds the requested limit.
type Result struct {
	Tickets        []*ticket.Ticket
	Tier           Tier
	FallbackUsed   bool
	FallbackReason string
}

func emptyResult(reason string) Result {
	return Result{
		Tickets:        []*ticket.Ticket{},
		Tier:           TierEmpty,
		FallbackUsed:   reason != "",
		FallbackReason: reason,
	}
}

const maxKeywords = 3

// ExtractKeywords derives the structured-search terms from raw query
// text: lower-cased, whitespace-split, tokens of length <= 2 dropped,
// first three survivors in original order.
func ExtractKeywords(query string) []string {
	fields := strings.Fields(strings.ToLower(query))

	keywords := make([]string, 0, maxKeywords)
	for _, f := range fields {
		if len(f) <= 2 {
			continue
		}
		keywords = append(keywords, f)
		if len(keywords) == maxKeywords {
			break
		}
	}
	return keywords
}
