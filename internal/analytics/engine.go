package analytics

import (
	"context"
	"log/slog"
	"math"

	"github.com/eleven-am/support-backend/internal/shared"
	"github.com/eleven-am/support-backend/internal/ticket"
)

// scanLimit bounds the aggregation scan on large corpora.
const scanLimit = 1000

// Lister is the slice of the ticket store the aggregator reads.
type Lister interface {
	ListForAnalytics(ctx context.Context, tenant string, limit int) ([]*ticket.Ticket, error)
}

// NumericAggregate carries avg/min/max over an optional sample. The
// pointers are nil when the sample was empty, never zero-filled.
type NumericAggregate struct {
	Count int      `json:"count"`
	Avg   *float64 `json:"avg,omitempty"`
	Min   *float64 `json:"min,omitempty"`
	Max   *float64 `json:"max,omitempty"`
}

// Summary is the aggregation output. Category counts always sum to
// TotalScanned.
type Summary struct {
	Tenant         string           `json:"tenant,omitempty"`
	TotalScanned   int              `json:"total_scanned"`
	StatusCounts   map[string]int   `json:"status_counts"`
	PriorityCounts map[string]int   `json:"priority_counts"`
	ResponseHours  NumericAggregate `json:"response_hours"`
	Satisfaction   NumericAggregate `json:"satisfaction"`

	// SatisfactionBuckets groups ratings by integer floor (1..5).
	SatisfactionBuckets map[int]int `json:"satisfaction_buckets"`
}

type Engine struct {
	store  Lister
	logger *slog.Logger
}

func NewEngine(store Lister, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		store:  store,
		logger: logger.With("component", "analytics"),
	}
}

// Aggregate scans tickets for the optional tenant and accumulates the
// distributions. An empty corpus yields a zeroed, well-formed summary.
func (e *Engine) Aggregate(ctx context.Context, tenant string) (*Summary, error) {
	tickets, err := e.store.ListForAnalytics(ctx, tenant, scanLimit)
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		Tenant:              tenant,
		TotalScanned:        len(tickets),
		StatusCounts:        make(map[string]int),
		PriorityCounts:      make(map[string]int),
		SatisfactionBuckets: make(map[int]int),
	}

	var responseHours []float64
	var ratings []float64

	for _, t := range tickets {
		summary.StatusCounts[bucket(t.Status)]++
		summary.PriorityCounts[bucket(t.Priority)]++

		if t.FirstResponseAt != nil {
			hours := t.FirstResponseAt.Sub(t.CreatedAt).Hours()
			if hours >= 0 {
				responseHours = append(responseHours, hours)
			}
		}

		if t.SatisfactionRating != nil {
			ratings = append(ratings, *t.SatisfactionRating)
			summary.SatisfactionBuckets[int(math.Floor(*t.SatisfactionRating))]++
		}
	}

	summary.ResponseHours = aggregate(responseHours)
	summary.Satisfaction = aggregate(ratings)

	return summary, nil
}

func bucket(label string) string {
	if label == "" {
		return shared.UnknownBucket
	}
	return label
}

func aggregate(samples []float64) NumericAggregate {
	agg := NumericAggregate{Count: len(samples)}
	if len(samples) == 0 {
		return agg
	}

	min := samples[0]
	max := samples[0]
	sum := 0.0
	for _, v := range samples {
		sum += v
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	avg := sum / float64(len(samples))

	agg.Avg = &avg
	agg.Min = &min
	agg.Max = &max
	return agg
}
