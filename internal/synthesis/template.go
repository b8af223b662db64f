package synthesis

import (
	"fmt"
	"strings"

	"github.com/eleven-am/support-backend/internal/ticket"
)

const (
	maxTemplateTickets    = 3
	descriptionTruncation = 150
	resolutionTruncation  = 200
)

const fallbackDisclosure = "Note: this answer was assembled from matching tickets directly because answer generation was unavailable."

// Canned tips keyed by the vocabulary that triggers them. First match
// in this order wins.
var tipTriggers = []struct {
	keyword string
	tip     string
}{
	{"battery", "Tip: battery drain is most often caused by background sync. Check Settings > Battery for the top consumers before replacing hardware."},
	{"camera", "Tip: camera issues frequently clear up after wiping the lens and toggling the camera permission off and on."},
	{"setup", "Tip: most setup failures are resolved by restarting the device and re-running the onboarding flow on a 2.4GHz network."},
}

// renderTemplate is the deterministic fallback renderer: verbatim
// ticket blocks instead of generated prose.
func renderTemplate(query string, tickets []*ticket.Ticket) string {
	var sb strings.Builder

	sb.WriteString("Here are the most relevant tickets I found:\n\n")

	shown := tickets
	if len(shown) > maxTemplateTickets {
		shown = shown[:maxTemplateTickets]
	}

	for _, t := range shown {
		fmt.Fprintf(&sb, "[%s] (%s) %s\n", t.ID, t.Priority, t.Subject)
		fmt.Fprintf(&sb, "Product: %s | Status: %s\n", t.Product, t.Status)
		fmt.Fprintf(&sb, "%s\n", truncate(t.Description, descriptionTruncation))
		if t.Resolution != "" {
			fmt.Fprintf(&sb, "Resolution: %s\n", truncate(t.Resolution, resolutionTruncation))
		}
		sb.WriteString("\n")
	}

	if remainder := len(tickets) - len(shown); remainder > 0 {
		fmt.Fprintf(&sb, "...and %d more\n\n", remainder)
	}

	if tip := tipFor(query); tip != "" {
		sb.WriteString(tip)
		sb.WriteString("\n\n")
	}

	sb.WriteString(fallbackDisclosure)
	return sb.String()
}

func tipFor(query string) string {
	lowered := strings.ToLower(query)
	for _, t := range tipTriggers {
		if strings.Contains(lowered, t.keyword) {
			return t.tip
		}
	}
	return ""
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
