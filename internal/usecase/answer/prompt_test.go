package answer

import (
	"strings"
	"testing"

	"github.com/flight-insight/flightinsight/internal/domain"
)

func review(id string, score float64, text string) domain.ReviewRecord {
	return domain.ReviewRecord{
		ID:       id,
		Score:    score,
		Metadata: domain.ReviewMetadata{ReviewText: text},
	}
}

func TestBuildPrompt_NoReviews(t *testing.T) {
	airlines := []string{"Lufthansa", "Emirates", "ANA"}

	prompt := BuildPrompt("how is WizzAir?", nil, airlines)

	if !strings.Contains(prompt, "no relevant reviews were found") {
		t.Error("apology prompt missing the no-reviews notice")
	}
	if !strings.Contains(prompt, `"how is WizzAir?"`) {
		t.Error("apology prompt must quote the original query")
	}
	for _, airline := range airlines {
		if !strings.Contains(prompt, airline) {
			t.Errorf("apology prompt missing supported airline %q", airline)
		}
	}
	if strings.Contains(prompt, "Relevant Reviews:") {
		t.Error("apology prompt must not contain a reviews section")
	}
}

func TestBuildPrompt_WithReviews(t *testing.T) {
	reviews := []domain.ReviewRecord{
		review("reviews:1", 0.9, "Great legroom and food."),
		review("reviews:2", 0.8, "Flight was delayed twice."),
	}

	prompt := BuildPrompt("how is Emirates?", reviews, []string{"Emirates"})

	if !strings.Contains(prompt, "Review 1: Great legroom and food.") {
		t.Error("prompt missing first review excerpt")
	}
	if !strings.Contains(prompt, "Review 2: Flight was delayed twice.") {
		t.Error("prompt missing second review excerpt")
	}
	if !strings.Contains(prompt, "User Query: how is Emirates?") {
		t.Error("prompt missing the user query line")
	}
	if !strings.HasSuffix(prompt, "Response:") {
		t.Error("prompt must end with the response cue")
	}
}

func TestBuildPrompt_SortsByScoreDescending(t *testing.T) {
	reviews := []domain.ReviewRecord{
		review("reviews:1", 0.2, "low relevance"),
		review("reviews:2", 0.9, "high relevance"),
		review("reviews:3", 0.5, "mid relevance"),
	}

	prompt := BuildPrompt("q", reviews, []string{"Emirates"})

	if !strings.Contains(prompt, "Review 1: high relevance") {
		t.Errorf("highest scoring review must come first:\n%s", prompt)
	}
	if !strings.Contains(prompt, "Review 2: mid relevance") {
		t.Errorf("mid scoring review must come second:\n%s", prompt)
	}
	if !strings.Contains(prompt, "Review 3: low relevance") {
		t.Errorf("lowest scoring review must come last:\n%s", prompt)
	}
}

func TestBuildPrompt_CapsAtFiveReviews(t *testing.T) {
	var reviews []domain.ReviewRecord
	for i := 0; i < 8; i++ {
		reviews = append(reviews, review("id", float64(8-i)/10, "text"))
	}

	prompt := BuildPrompt("q", reviews, []string{"Emirates"})

	if strings.Count(prompt, "Review ") != 5 {
		t.Errorf("expected exactly 5 review excerpts, got %d", strings.Count(prompt, "Review "))
	}
	if strings.Contains(prompt, "Review 6:") {
		t.Error("prompt must not contain a sixth review")
	}
}

func TestBuildPrompt_DoesNotMutateInput(t *testing.T) {
	reviews := []domain.ReviewRecord{
		review("reviews:1", 0.1, "a"),
		review("reviews:2", 0.9, "b"),
	}

	BuildPrompt("q", reviews, []string{"Emirates"})

	if reviews[0].ID != "reviews:1" || reviews[1].ID != "reviews:2" {
		t.Error("input slice order must not change")
	}
}
