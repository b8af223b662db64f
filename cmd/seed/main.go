package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/eleven-am/support-backend/internal/bootstrap"
	"github.com/eleven-am/support-backend/internal/shared"
	"github.com/eleven-am/support-backend/internal/ticket"
)

type fixtureTicket struct {
	ID                 string   `json:"id"`
	Subject            string   `json:"subject"`
	Description        string   `json:"description"`
	Resolution         string   `json:"resolution"`
	Status             string   `json:"status"`
	Priority           string   `json:"priority"`
	Product            string   `json:"product"`
	FirstResponseAt    *string  `json:"first_response_at"`
	ResolutionHours    *float64 `json:"resolution_hours"`
	SatisfactionRating *float64 `json:"satisfaction_rating"`
	Tags               []string `json:"tags"`
}

func main() {
	fixturePath := flag.String("fixture", "fixtures/tickets.json", "path to the ticket fixture file")
	skipEmbeddings := flag.Bool("skip-embeddings", false, "seed the database without vectorizing")
	flag.Parse()

	if err := run(*fixturePath, *skipEmbeddings); err != nil {
		fmt.Fprintf(os.Stderr, "seed failed: %v\n", err)
		os.Exit(1)
	}
}

func run(fixturePath string, skipEmbeddings bool) error {
	cfg := bootstrap.LoadConfig()
	ctx := context.Background()

	db, err := bootstrap.ProvideDatabase(cfg)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}

	qdrantClient, err := bootstrap.ProvideQdrantClient(cfg)
	if err != nil {
		return fmt.Errorf("connect to qdrant: %w", err)
	}

	llmClient := bootstrap.ProvideLLMClient(cfg)
	store := ticket.NewStore(db, qdrantClient, llmClient, cfg.TicketCollection)

	if err := store.Migrate(); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	if !skipEmbeddings {
		if err := store.EnsureCollection(ctx, uint64(cfg.EmbeddingDimension)); err != nil {
			return fmt.Errorf("ensure collection: %w", err)
		}
	}

	tickets, err := loadFixture(fixturePath)
	if err != nil {
		return err
	}

	created := 0
	embedded := 0
	for _, t := range tickets {
		if err := store.Create(ctx, t); err != nil {
			fmt.Fprintf(os.Stderr, "skipping %s: %v\n", t.ID, err)
			continue
		}
		created++

		if skipEmbeddings {
			continue
		}

		vector, err := llmClient.Embed(ctx, t.EmbeddingText())
		if err != nil {
			fmt.Fprintf(os.Stderr, "no embedding for %s: %v\n", t.ID, err)
			continue
		}
		if err := store.UpsertEmbedding(ctx, t, vector); err != nil {
			fmt.Fprintf(os.Stderr, "upsert failed for %s: %v\n", t.ID, err)
			continue
		}
		embedded++
	}

	fmt.Printf("seeded %d tickets (%d embedded) from %s\n", created, embedded, fixturePath)
	return nil
}

func loadFixture(path string) ([]*ticket.Ticket, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture: %w", err)
	}

	var fixtures []fixtureTicket
	if err := json.Unmarshal(data, &fixtures); err != nil {
		return nil, fmt.Errorf("parse fixture: %w", err)
	}

	tickets := make([]*ticket.Ticket, 0, len(fixtures))
	for _, f := range fixtures {
		if f.Status != "" && !shared.TicketStatus(f.Status).Valid() {
			fmt.Fprintf(os.Stderr, "ticket %s: unrecognized status %q\n", f.ID, f.Status)
		}
		if f.Priority != "" && !shared.TicketPriority(f.Priority).Valid() {
			fmt.Fprintf(os.Stderr, "ticket %s: unrecognized priority %q\n", f.ID, f.Priority)
		}
		t := &ticket.Ticket{
			ID:                 f.ID,
			Subject:            f.Subject,
			Description:        f.Description,
			Resolution:         f.Resolution,
			Status:             f.Status,
			Priority:           f.Priority,
			Product:            f.Product,
			ResolutionHours:    f.ResolutionHours,
			SatisfactionRating: f.SatisfactionRating,
			Tags:               shared.StringSlice(f.Tags),
		}
		if f.FirstResponseAt != nil {
			ts, err := time.Parse(time.RFC3339, *f.FirstResponseAt)
			if err != nil {
				return nil, fmt.Errorf("ticket %s: bad first_response_at: %w", f.ID, err)
			}
			t.FirstResponseAt = &ts
		}
		tickets = append(tickets, t)
	}
	return tickets, nil
}
