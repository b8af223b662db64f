package analytics

import (
	"fmt"
	"sort"
)

// ChartSpec is a declarative, renderer-agnostic visualization
// descriptor. The core never interprets it; only the caller's
// presentation layer does.
type ChartSpec struct {
	Kind   string    `json:"kind"`
	Title  string    `json:"title"`
	Labels []string  `json:"labels"`
	Series []float64 `json:"series"`
	YLabel string    `json:"y_label,omitempty"`
}

// ChartSet bundles one spec per summary dimension. Specs with no data
// carry empty label/series slices rather than being nil.
type ChartSet struct {
	Status       ChartSpec `json:"status"`
	Priority     ChartSpec `json:"priority"`
	ResponseTime ChartSpec `json:"response_time"`
	Satisfaction ChartSpec `json:"satisfaction"`
}

// ChartSpecs renders a summary into chart descriptors. Labels are
// sorted so repeated calls over the same summary are identical.
func ChartSpecs(s *Summary) *ChartSet {
	return &ChartSet{
		Status:       countChart("Tickets by Status", s.StatusCounts),
		Priority:     countChart("Tickets by Priority", s.PriorityCounts),
		ResponseTime: aggregateChart("First Response Time", "hours", s.ResponseHours),
		Satisfaction: satisfactionChart(s),
	}
}

func countChart(title string, counts map[string]int) ChartSpec {
	labels := make([]string, 0, len(counts))
	for label := range counts {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	series := make([]float64, len(labels))
	for i, label := range labels {
		series[i] = float64(counts[label])
	}

	return ChartSpec{
		Kind:   "bar",
		Title:  title,
		Labels: labels,
		Series: series,
		YLabel: "tickets",
	}
}

func aggregateChart(title, unit string, agg NumericAggregate) ChartSpec {
	spec := ChartSpec{
		Kind:   "bar",
		Title:  title,
		Labels: []string{},
		Series: []float64{},
		YLabel: unit,
	}
	if agg.Count == 0 {
		return spec
	}

	spec.Labels = []string{"avg", "min", "max"}
	spec.Series = []float64{*agg.Avg, *agg.Min, *agg.Max}
	return spec
}

func satisfactionChart(s *Summary) ChartSpec {
	ratings := make([]int, 0, len(s.SatisfactionBuckets))
	for r := range s.SatisfactionBuckets {
		ratings = append(ratings, r)
	}
	sort.Ints(ratings)

	labels := make([]string, len(ratings))
	series := make([]float64, len(ratings))
	for i, r := range ratings {
		labels[i] = fmt.Sprintf("%d stars", r)
		series[i] = float64(s.SatisfactionBuckets[r])
	}

	return ChartSpec{
		Kind:   "bar",
		Title:  "Satisfaction Ratings",
		Labels: labels,
		Series: series,
		YLabel: "tickets",
	}
}
