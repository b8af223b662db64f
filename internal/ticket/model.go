package ticket

import (
	"time"

	"github.com/eleven-am/support-backend/internal/shared"
)

// Ticket is immutable once retrieved: the query pipeline only ever
// reads rows, writes happen through the seeder.
type Ticket struct {
	ID          string `gorm:"primaryKey" json:"id"`
	Subject     string `gorm:"not null" json:"subject"`
	Description string `gorm:"type:text" json:"description"`
	Resolution  string `gorm:"type:text" json:"resolution,omitempty"`

	Status   string `gorm:"index" json:"status"`
	Priority string `gorm:"index" json:"priority"`

	// Product doubles as the tenant key for scoped queries.
	Product string `gorm:"index" json:"product"`

	FirstResponseAt    *time.Time `json:"first_response_at,omitempty"`
	ResolutionHours    *float64   `json:"resolution_hours,omitempty"`
	SatisfactionRating *float64   `json:"satisfaction_rating,omitempty"`

	Tags shared.StringSlice `gorm:"type:jsonb" json:"tags,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`
}

func (Ticket) TableName() string {
	return "tickets"
}

// EmbeddingText is the text vectorized for semantic search.
func (t *Ticket) EmbeddingText() string {
	text := t.Subject + "\n" + t.Description
	if t.Resolution != "" {
		text += "\n" + t.Resolution
	}
	return text
}
