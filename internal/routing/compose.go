package routing

import (
	"fmt"
	"sort"
	"strings"

	"github.com/eleven-am/support-backend/internal/analytics"
)

const analyticsHeader = "--- Ticket Analytics ---"

const couldNotProcessMessage = "I couldn't process your question. Try asking about a support issue or about ticket statistics."

// compose merges the branch outputs in fixed order: retrieval prose
// first, then the analytics section. Neither branch producing text
// yields the fixed could-not-process message.
func compose(retrievalText string, summary *analytics.Summary) string {
	var parts []string

	if retrievalText != "" {
		parts = append(parts, retrievalText)
	}
	if summary != nil {
		parts = append(parts, analyticsHeader+"\n"+formatSummary(summary))
	}

	if len(parts) == 0 {
		return couldNotProcessMessage
	}
	return strings.Join(parts, "\n\n")
}

func formatSummary(s *analytics.Summary) string {
	var sb strings.Builder

	sb.WriteString("Status distribution:\n")
	writeCounts(&sb, s.StatusCounts)

	sb.WriteString("Priority distribution:\n")
	writeCounts(&sb, s.PriorityCounts)

	sb.WriteString("First response time (hours):\n")
	fmt.Fprintf(&sb, "- average: %s\n", formatValue(s.ResponseHours.Avg))
	fmt.Fprintf(&sb, "- min: %s\n", formatValue(s.ResponseHours.Min))
	fmt.Fprintf(&sb, "- max: %s", formatValue(s.ResponseHours.Max))

	return sb.String()
}

func writeCounts(sb *strings.Builder, counts map[string]int) {
	labels := make([]string, 0, len(counts))
	for label := range counts {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	for _, label := range labels {
		fmt.Fprintf(sb, "- %s: %d\n", label, counts[label])
	}
}

func formatValue(v *float64) string {
	if v == nil {
		return "N/A"
	}
	return fmt.Sprintf("%.2f", *v)
}
