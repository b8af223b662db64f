package synthesis

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/eleven-am/support-backend/internal/shared"
	"github.com/eleven-am/support-backend/internal/ticket"
)

type fakeGenerator struct {
	response string
	err      error
	prompts  []string
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.response, f.err
}

func makeTickets(n int) []*ticket.Ticket {
	tickets := make([]*ticket.Ticket, n)
	for i := range tickets {
		tickets[i] = &ticket.Ticket{
			ID:          fmt.Sprintf("TICK-%d", i+1),
			Subject:     fmt.Sprintf("Subject %d", i+1),
			Description: fmt.Sprintf("Description %d", i+1),
			Status:      "open",
			Priority:    "medium",
			Product:     "SmartWatch",
		}
	}
	return tickets
}

func TestSynthesize_EmptyInput(t *testing.T) {
	s := NewSynthesizer(&fakeGenerator{}, nil)

	answer := s.Synthesize(context.Background(), "anything", nil)

	if answer.Text != noResultsMessage {
		t.Errorf("expected no-results message, got %q", answer.Text)
	}
	if answer.TicketIDs == nil || len(answer.TicketIDs) != 0 {
		t.Error("references should be an empty, non-nil set")
	}
}

func TestSynthesize_GeneratedAnswer(t *testing.T) {
	gen := &fakeGenerator{response: "Fix the battery by disabling sync [TICK-1]."}
	s := NewSynthesizer(gen, nil)
	tickets := makeTickets(2)

	answer := s.Synthesize(context.Background(), "battery issue", tickets)

	if answer.Text != "Fix the battery by disabling sync [TICK-1]." {
		t.Errorf("unexpected answer text: %q", answer.Text)
	}
	if len(answer.TicketIDs) != 2 {
		t.Errorf("expected 2 references, got %d", len(answer.TicketIDs))
	}
	if len(gen.prompts) != 1 {
		t.Fatalf("expected one generation call, got %d", len(gen.prompts))
	}
	if !strings.Contains(gen.prompts[0], "TICK-1") || !strings.Contains(gen.prompts[0], "Subject 2") {
		t.Error("prompt should embed the ticket context block")
	}
}

func TestSynthesize_FallbackOnGenerationFailure(t *testing.T) {
	gen := &fakeGenerator{err: fmt.Errorf("boom: %w", shared.ErrGeneration)}
	s := NewSynthesizer(gen, nil)
	tickets := makeTickets(5)

	answer := s.Synthesize(context.Background(), "battery issue", tickets)

	blocks := strings.Count(answer.Text, "[TICK-")
	if blocks != 3 {
		t.Errorf("expected exactly 3 verbatim ticket blocks, got %d", blocks)
	}
	if !strings.Contains(answer.Text, "...and 2 more") {
		t.Error("expected remainder line '...and 2 more'")
	}
	if !strings.Contains(answer.Text, fallbackDisclosure) {
		t.Error("expected fallback disclosure note")
	}
	if len(answer.TicketIDs) != 5 {
		t.Errorf("references must include all 5 tickets, got %d", len(answer.TicketIDs))
	}
}

func TestSynthesize_FallbackOnEmptyGeneration(t *testing.T) {
	gen := &fakeGenerator{response: "   "}
	s := NewSynthesizer(gen, nil)

	answer := s.Synthesize(context.Background(), "camera blurry", makeTickets(1))

	if !strings.Contains(answer.Text, fallbackDisclosure) {
		t.Error("blank generation should fall back to the template")
	}
}

func TestRenderTemplate_Tips(t *testing.T) {
	tickets := makeTickets(1)

	tests := []struct {
		query   string
		tipWord string
	}{
		{"my battery is dying", "background sync"},
		{"Camera won't focus", "lens"},
		{"setup keeps failing", "onboarding"},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			out := renderTemplate(tt.query, tickets)
			if !strings.Contains(out, tt.tipWord) {
				t.Errorf("expected tip containing %q for query %q", tt.tipWord, tt.query)
			}
		})
	}

	out := renderTemplate("unrelated question", tickets)
	if strings.Contains(out, "Tip:") {
		t.Error("no tip expected for unrelated query")
	}
}

func TestRenderTemplate_NoRemainderLineWhenAllShown(t *testing.T) {
	out := renderTemplate("q", makeTickets(3))
	if strings.Contains(out, "...and") {
		t.Error("remainder line should be omitted when every ticket is shown")
	}
}

func TestRenderTemplate_Truncation(t *testing.T) {
	longDesc := strings.Repeat("d", 300)
	longRes := strings.Repeat("r", 300)
	tickets := []*ticket.Ticket{{
		ID:          "TICK-1",
		Subject:     "s",
		Description: longDesc,
		Resolution:  longRes,
		Product:     "App",
		Status:      "open",
		Priority:    "low",
	}}

	out := renderTemplate("q", tickets)

	if strings.Contains(out, longDesc) {
		t.Error("description should be truncated to 150 chars")
	}
	if !strings.Contains(out, strings.Repeat("d", 150)+"...") {
		t.Error("expected truncated description with ellipsis")
	}
	if !strings.Contains(out, strings.Repeat("r", 200)+"...") {
		t.Error("expected truncated resolution with ellipsis")
	}
}

func TestTruncate(t *testing.T) {
	if truncate("short", 10) != "short" {
		t.Error("short strings pass through")
	}
	if truncate("abcdef", 3) != "abc..." {
		t.Errorf("unexpected truncation: %q", truncate("abcdef", 3))
	}
}
