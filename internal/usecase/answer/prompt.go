package answer

import (
	"fmt"
	"sort"
	"strings"

	"github.com/flight-insight/flightinsight/internal/domain"
)

// maxPromptReviews caps how many review excerpts go into the prompt,
// regardless of how many the retriever returned.
const maxPromptReviews = 5

const groundingInstruction = "You are an AI assistant specialized in providing insights about airline reviews. " +
	"Use the provided reviews to answer the user's query. Be informative and base your answers on the reviews. " +
	"If the reviews don't contain relevant information to answer the query, say so. Be verbose and provide detailed responses."

const apologyTemplate = "You are an AI assistant specialized in providing insights about airline reviews. " +
	"Unfortunately, no relevant reviews were found for the following query: %q\n" +
	"Please inform the user that either they did not specify a supported airline or the airline they mentioned is not currently supported. " +
	"Apologize for the inconvenience and ask them to try again with a query that includes one of the following supported airlines: %s.\n" +
	"Encourage the user to be specific about which airline they are inquiring about in their next query."

// BuildPrompt assembles the generation prompt. With no reviews it produces
// an apology prompt enumerating the supported airlines; otherwise it grounds
// the model on the highest-scoring excerpts.
func BuildPrompt(query string, reviews []domain.ReviewRecord, airlines []string) string {
	if len(reviews) == 0 {
		return fmt.Sprintf(apologyTemplate, query, strings.Join(airlines, ", "))
	}

	sorted := make([]domain.ReviewRecord, len(reviews))
	copy(sorted, reviews)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Score > sorted[j].Score
	})
	if len(sorted) > maxPromptReviews {
		sorted = sorted[:maxPromptReviews]
	}

	var b strings.Builder
	b.WriteString(groundingInstruction)
	b.WriteString("\n\nRelevant Reviews:\n")
	for i, review := range sorted {
		fmt.Fprintf(&b, "Review %d: %s\n", i+1, review.Metadata.ReviewText)
	}
	fmt.Fprintf(&b, "\nUser Query: %s\n\nResponse:", query)

	return b.String()
}
