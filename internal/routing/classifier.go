package routing

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/eleven-am/support-backend/internal/llm"
	"github.com/eleven-am/support-backend/internal/shared"
)

const classifyPromptTemplate = `Decide which capabilities a customer-support question needs. Respond with a single JSON object and nothing else:
{"needsRAG": <true if the question asks about a support issue, problem or fix that ticket search could answer>, "needsChart": <true if the question asks for statistics, distributions or trends>, "rationale": "<one short sentence>"}

Question: %s`

// The two vocabularies are disjoint so a query can deterministically
// trigger either branch, both, or neither.
var (
	issuePattern = regexp.MustCompile(`\b(issue|issues|problem|problems|error|errors|fix|broken|fail|failed|failing|crash|crashes|bug|bugs|trouble|help|resolve|working)\b`)

	analyticsPattern = regexp.MustCompile(`\b(statistic|statistics|stats|chart|charts|graph|graphs|analytics|distribution|average|trend|trends|report|reports|breakdown|count|how many)\b`)
)

// Classifier derives a routing decision from query text: an LLM call
// first, the deterministic keyword classifier whenever the model fails
// or returns something unusable.
type Classifier struct {
	generator llm.Generator
	logger    *slog.Logger
}

func NewClassifier(generator llm.Generator, logger *slog.Logger) *Classifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Classifier{
		generator: generator,
		logger:    logger.With("component", "classifier"),
	}
}

func (c *Classifier) Classify(ctx context.Context, query string) Decision {
	output, err := c.generator.Generate(ctx, fmt.Sprintf(classifyPromptTemplate, query))
	if err != nil {
		if llm.IsQuotaError(err) {
			c.logger.Warn("classifier quota exhausted, using keyword classifier", "error", err)
		} else {
			c.logger.Warn("classifier call failed, using keyword classifier", "error", err)
		}
		return KeywordClassify(query)
	}

	decision, err := decodeDecision(output)
	if err != nil {
		c.logger.Warn("classifier output unusable, using keyword classifier",
			"error", err, "output_len", len(output))
		return KeywordClassify(query)
	}

	return decision
}

// rawDecision uses pointer fields so a missing flag is distinguishable
// from an explicit false: both flags must be present for the decision
// to count as well-formed.
type rawDecision struct {
	NeedsRAG   *bool  `json:"needsRAG"`
	NeedsChart *bool  `json:"needsChart"`
	Rationale  string `json:"rationale"`
}

func decodeDecision(output string) (Decision, error) {
	span, ok := extractJSONObject(output)
	if !ok {
		return Decision{}, fmt.Errorf("%w: no JSON object in output", shared.ErrMalformedDecision)
	}

	var raw rawDecision
	if err := json.Unmarshal([]byte(span), &raw); err != nil {
		return Decision{}, fmt.Errorf("%w: %v", shared.ErrMalformedDecision, err)
	}
	if raw.NeedsRAG == nil || raw.NeedsChart == nil {
		return Decision{}, fmt.Errorf("%w: missing capability flags", shared.ErrMalformedDecision)
	}

	return Decision{
		NeedsRetrieval: *raw.NeedsRAG,
		NeedsAnalytics: *raw.NeedsChart,
		Rationale:      raw.Rationale,
	}, nil
}

// extractJSONObject returns the first balanced {...} span in s. Models
// routinely wrap their JSON in prose or code fences; this cuts it out.
func extractJSONObject(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		ch := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}

// KeywordClassify is the deterministic fallback. A query matching
// neither vocabulary still routes to retrieval so no question goes
// unanswered.
func KeywordClassify(query string) Decision {
	lowered := strings.ToLower(query)

	decision := Decision{
		NeedsRetrieval: issuePattern.MatchString(lowered),
		NeedsAnalytics: analyticsPattern.MatchString(lowered),
	}

	switch {
	case decision.NeedsRetrieval && decision.NeedsAnalytics:
		decision.Rationale = "keyword classifier: issue and analytics vocabulary matched"
	case decision.NeedsAnalytics:
		decision.Rationale = "keyword classifier: analytics vocabulary matched"
	case decision.NeedsRetrieval:
		decision.Rationale = "keyword classifier: issue vocabulary matched"
	default:
		decision.NeedsRetrieval = true
		decision.Rationale = "keyword classifier: no vocabulary matched, defaulting to retrieval"
	}

	return decision
}
