package ticket

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/eleven-am/support-backend/internal/llm"
	"github.com/eleven-am/support-backend/internal/shared"
	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"gorm.io/gorm"
)

type Store struct {
	db         *gorm.DB
	qdrant     *qdrant.Client
	embedder   llm.Embedder
	collection string
}

func NewStore(db *gorm.DB, qdrantClient *qdrant.Client, embedder llm.Embedder, collection string) *Store {
	return &Store{
		db:         db,
		qdrant:     qdrantClient,
		embedder:   embedder,
		collection: collection,
	}
}

func (s *Store) Migrate() error {
	return s.db.AutoMigrate(&Ticket{})
}

// SearchSemantic is the tier-1 query shape: embed the query text and run
// a nearest-neighbor search, optionally scoped to one product. Failures
// are classified into the shared taxonomy so the retrieval engine can
// decide whether to fall through or short-circuit.
func (s *Store) SearchSemantic(ctx context.Context, query, tenant string, limit int) ([]*Ticket, error) {
	if s.qdrant == nil {
		return nil, fmt.Errorf("%w: qdrant client not configured", shared.ErrTransportUnavailable)
	}

	vector, err := s.embedder.Embed(ctx, query)
	if err != nil {
		if errors.Is(err, shared.ErrEmbeddingUnavailable) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: embed query: %v", shared.ErrEmbeddingUnavailable, err)
	}

	queryReq := &qdrant.QueryPoints{
		CollectionName: s.collection,
		Query:          qdrant.NewQuery(vector...),
		Limit:          qdrant.PtrOf(uint64(limit)),
		WithPayload:    qdrant.NewWithPayload(true),
	}
	if tenant != "" {
		queryReq.Filter = &qdrant.Filter{
			Must: []*qdrant.Condition{
				qdrant.NewMatch("product", tenant),
			},
		}
	}

	results, err := s.qdrant.Query(ctx, queryReq)
	if err != nil {
		return nil, classifyGRPCError(err)
	}

	ids := make([]string, 0, len(results))
	for _, r := range results {
		if r.Payload == nil {
			continue
		}
		if v, ok := r.Payload["ticket_id"]; ok {
			if id := v.GetStringValue(); id != "" {
				ids = append(ids, id)
			}
		}
	}

	if len(ids) == 0 {
		return []*Ticket{}, nil
	}

	var rows []*Ticket
	if err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, classifyDBError(err)
	}

	// Rows come back in table order; restore qdrant's relevance rank.
	byID := make(map[string]*Ticket, len(rows))
	for _, t := range rows {
		byID[t.ID] = t
	}
	ordered := make([]*Ticket, 0, len(ids))
	for _, id := range ids {
		if t, ok := byID[id]; ok {
			ordered = append(ordered, t)
		}
	}
	return ordered, nil
}

// matchPredicate is the shared tier-2/tier-3 filter shape. LOWER+LIKE
// rather than ILIKE so the predicate behaves identically on postgres
// and on the sqlite test harness.
const matchPredicate = "LOWER(subject) LIKE ? OR LOWER(description) LIKE ? OR LOWER(product) LIKE ?"

func keywordPattern(kw string) string {
	return "%" + strings.ToLower(kw) + "%"
}

// SearchKeyword is the tier-2 query shape: an OR-of-ORs substring filter
// over subject, description and product, built through the gorm
// statement builder.
func (s *Store) SearchKeyword(ctx context.Context, keywords []string, tenant string, limit int) ([]*Ticket, error) {
	if len(keywords) == 0 {
		return []*Ticket{}, nil
	}

	pattern := keywordPattern(keywords[0])
	or := s.db.Where(matchPredicate, pattern, pattern, pattern)
	for _, kw := range keywords[1:] {
		pattern = keywordPattern(kw)
		or = or.Or(s.db.Where(matchPredicate, pattern, pattern, pattern))
	}

	q := s.db.WithContext(ctx).Model(&Ticket{}).Where(or)

	if tenant != "" {
		q = q.Where("product = ?", tenant)
	}

	var rows []*Ticket
	if err := q.Limit(limit).Find(&rows).Error; err != nil {
		return nil, classifyDBError(err)
	}
	return rows, nil
}

// SearchRaw is the tier-3 query shape: the same predicate as
// SearchKeyword but as hand-written SQL, bypassing the statement
// builder entirely. Last resort against builder regressions.
func (s *Store) SearchRaw(ctx context.Context, keywords []string, tenant string, limit int) ([]*Ticket, error) {
	if len(keywords) == 0 {
		return []*Ticket{}, nil
	}

	var sb strings.Builder
	args := make([]any, 0, len(keywords)*3+2)

	sb.WriteString("SELECT * FROM tickets WHERE (")
	for i, kw := range keywords {
		if i > 0 {
			sb.WriteString(" OR ")
		}
		sb.WriteString("(" + matchPredicate + ")")
		pattern := keywordPattern(kw)
		args = append(args, pattern, pattern, pattern)
	}
	sb.WriteString(")")

	if tenant != "" {
		sb.WriteString(" AND product = ?")
		args = append(args, tenant)
	}

	sb.WriteString(" LIMIT ?")
	args = append(args, limit)

	var rows []*Ticket
	if err := s.db.WithContext(ctx).Raw(sb.String(), args...).Scan(&rows).Error; err != nil {
		return nil, classifyDBError(err)
	}
	return rows, nil
}

func (s *Store) Count(ctx context.Context, tenant string) (int64, error) {
	var count int64
	q := s.db.WithContext(ctx).Model(&Ticket{})
	if tenant != "" {
		q = q.Where("product = ?", tenant)
	}
	if err := q.Count(&count).Error; err != nil {
		return 0, classifyDBError(err)
	}
	return count, nil
}

// StatusCounts groups tickets by their literal status string. Blank
// statuses land in the Unknown bucket.
func (s *Store) StatusCounts(ctx context.Context, tenant string) (map[string]int64, error) {
	var rows []struct {
		Status string
		Count  int64
	}

	q := s.db.WithContext(ctx).Model(&Ticket{}).
		Select("status, COUNT(*) as count").
		Group("status")
	if tenant != "" {
		q = q.Where("product = ?", tenant)
	}
	if err := q.Scan(&rows).Error; err != nil {
		return nil, classifyDBError(err)
	}

	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		label := r.Status
		if label == "" {
			label = shared.UnknownBucket
		}
		counts[label] += r.Count
	}
	return counts, nil
}

// ListForAnalytics fetches the rows the analytics engine scans. The cap
// bounds a full-table scan on large corpora.
func (s *Store) ListForAnalytics(ctx context.Context, tenant string, limit int) ([]*Ticket, error) {
	q := s.db.WithContext(ctx).Model(&Ticket{}).Order("id")
	if tenant != "" {
		q = q.Where("product = ?", tenant)
	}

	var rows []*Ticket
	if err := q.Limit(limit).Find(&rows).Error; err != nil {
		return nil, classifyDBError(err)
	}
	return rows, nil
}

func (s *Store) Create(ctx context.Context, t *Ticket) error {
	if t.ID == "" {
		t.ID = shared.NewID("ticket_")
	}
	return s.db.WithContext(ctx).Create(t).Error
}

func (s *Store) GetByID(ctx context.Context, id string) (*Ticket, error) {
	var t Ticket
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, shared.ErrNotFound
	}
	return &t, err
}

// EnsureCollection creates the qdrant collection when missing. Called by
// the seeder before the first upsert.
func (s *Store) EnsureCollection(ctx context.Context, dimension uint64) error {
	exists, err := s.qdrant.CollectionExists(ctx, s.collection)
	if err != nil {
		return classifyGRPCError(err)
	}
	if exists {
		return nil
	}

	return s.qdrant.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: s.collection,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     dimension,
			Distance: qdrant.Distance_Cosine,
		}),
	})
}

// UpsertEmbedding writes the ticket's vector. The point ID is derived
// deterministically from the ticket ID so re-seeding overwrites instead
// of duplicating.
func (s *Store) UpsertEmbedding(ctx context.Context, t *Ticket, vector []float32) error {
	pointID := uuid.NewSHA1(uuid.NameSpaceOID, []byte(t.ID)).String()

	_, err := s.qdrant.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: s.collection,
		Points: []*qdrant.PointStruct{
			{
				Id:      qdrant.NewID(pointID),
				Vectors: qdrant.NewVectors(vector...),
				Payload: qdrant.NewValueMap(map[string]any{
					"ticket_id": t.ID,
					"product":   t.Product,
				}),
			},
		},
	})
	if err != nil {
		return classifyGRPCError(err)
	}
	return nil
}

func classifyGRPCError(err error) error {
	if st, ok := status.FromError(err); ok {
		switch st.Code() {
		case codes.Unavailable, codes.DeadlineExceeded:
			return fmt.Errorf("%w: %v", shared.ErrTransportUnavailable, err)
		}
	}
	return fmt.Errorf("%w: %v", shared.ErrService, err)
}

func classifyDBError(err error) error {
	var netErr net.Error
	if errors.As(err, &netErr) || errors.Is(err, driver.ErrBadConn) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", shared.ErrTransportUnavailable, err)
	}
	return fmt.Errorf("%w: %v", shared.ErrService, err)
}
