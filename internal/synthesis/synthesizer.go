package synthesis

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/eleven-am/support-backend/internal/llm"
	"github.com/eleven-am/support-backend/internal/ticket"
)

const noResultsMessage = "I couldn't find any support tickets matching your question. " +
	"Try rephrasing it or narrowing it to a specific product."

const answerPromptTemplate = `You are a customer support assistant. Using only the ticket context below, write a concise answer to the user's question. Cite ticket IDs in square brackets, e.g. [TICK-1001], for every claim you take from a ticket.

Question: %s

Ticket context:
%s

Answer:`

// Answer is the synthesizer output. TicketIDs always lists every
// retrieved ticket, whichever path produced the text.
type Answer struct {
	Text      string
	TicketIDs []string
}

type Synthesizer struct {
	generator llm.Generator
	logger    *slog.Logger
}

func NewSynthesizer(generator llm.Generator, logger *slog.Logger) *Synthesizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Synthesizer{
		generator: generator,
		logger:    logger.With("component", "synthesizer"),
	}
}

func (s *Synthesizer) Synthesize(ctx context.Context, query string, tickets []*ticket.Ticket) Answer {
	if len(tickets) == 0 {
		return Answer{Text: noResultsMessage, TicketIDs: []string{}}
	}

	ids := make([]string, len(tickets))
	for i, t := range tickets {
		ids[i] = t.ID
	}

	prompt := fmt.Sprintf(answerPromptTemplate, query, contextBlock(tickets))

	text, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		if llm.IsQuotaError(err) {
			s.logger.Warn("generation quota exhausted, using template fallback", "error", err)
		} else {
			s.logger.Warn("generation failed, using template fallback", "error", err)
		}
		return Answer{Text: renderTemplate(query, tickets), TicketIDs: ids}
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return Answer{Text: renderTemplate(query, tickets), TicketIDs: ids}
	}

	return Answer{Text: text, TicketIDs: ids}
}

func contextBlock(tickets []*ticket.Ticket) string {
	var sb strings.Builder
	for _, t := range tickets {
		fmt.Fprintf(&sb, "Ticket %s\nSubject: %s\nProduct: %s\nStatus: %s\nPriority: %s\nDescription: %s\n",
			t.ID, t.Subject, t.Product, t.Status, t.Priority, t.Description)
		if t.Resolution != "" {
			fmt.Fprintf(&sb, "Resolution: %s\n", t.Resolution)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
