package extraction

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/flight-insight/flightinsight/internal/domain"
	"github.com/flight-insight/flightinsight/internal/logger"
	"github.com/flight-insight/flightinsight/internal/metrics"
)

// Service extracts structured query parameters from a free-form user query
// using an LLM. Extraction is best-effort: any failure yields an empty
// parameter set, never an error, so the retrieval flow degrades instead of
// breaking.
type Service struct {
	gen   Generator
	vocab *domain.Vocabulary
}

// New creates a parameter extraction service.
func New(gen Generator, vocab *domain.Vocabulary) *Service {
	return &Service{gen: gen, vocab: vocab}
}

// Extract asks the model for structured parameters present in the query.
// Values the model returns as non-strings are dropped; keys are passed
// through as-is and validated downstream against the vocabulary.
func (s *Service) Extract(ctx context.Context, query string) domain.ExtractedParameters {
	log := logger.FromContext(ctx)

	raw, err := s.gen.Generate(ctx, s.buildPrompt(query))
	if err != nil {
		metrics.ExtractionRequestsTotal.WithLabelValues("api_error").Inc()
		log.Warn("parameter extraction call failed", zap.Error(err))
		return domain.ExtractedParameters{}
	}

	cleaned := stripCodeFence(raw)

	var parsed map[string]any
	if err := json.Unmarshal([]byte(cleaned), &parsed); err != nil {
		metrics.ExtractionRequestsTotal.WithLabelValues("parse_error").Inc()
		log.Warn("failed to parse extraction response",
			zap.Error(err), zap.String("raw_response", cleaned))
		return domain.ExtractedParameters{}
	}

	params := domain.ExtractedParameters{}
	for key, value := range parsed {
		str, ok := value.(string)
		if !ok {
			continue
		}
		params[domain.Param(key)] = str
	}

	metrics.ExtractionRequestsTotal.WithLabelValues("ok").Inc()
	return params
}

func (s *Service) buildPrompt(query string) string {
	return fmt.Sprintf(`Extract structured information from this airline review query: %q

Please extract the following information if present:
- airline (must be one of: %s)
- traveller_type (must be one of: %s)
- seat_type (must be one of: %s)
- route (origin and destination)
- aspect (specific aspect of interest, e.g., food, service, comfort)

Return the information in JSON format. Use exactly the keys mentioned above.
If a piece of information is not present or doesn't match the provided options, omit that field.`,
		query,
		strings.Join(s.vocab.Airlines(), ", "),
		strings.Join(s.vocab.TravellerTypes(), ", "),
		strings.Join(s.vocab.SeatTypes(), ", "),
	)
}

// stripCodeFence removes a surrounding markdown ```json fence, which models
// frequently wrap JSON output in despite instructions.
func stripCodeFence(raw string) string {
	s := strings.TrimSpace(raw)
	if after, ok := strings.CutPrefix(s, "```json"); ok {
		s = after
	} else if after, ok := strings.CutPrefix(s, "```"); ok {
		s = after
	}
	if idx := strings.LastIndex(s, "```"); idx >= 0 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}
