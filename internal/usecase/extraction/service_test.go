package extraction

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/flight-insight/flightinsight/internal/domain"
)

// --- Mocks ---

type mockGenerator struct {
	response   string
	err        error
	called     bool
	lastPrompt string
}

func (m *mockGenerator) Generate(_ context.Context, prompt string) (string, error) {
	m.called = true
	m.lastPrompt = prompt
	if m.err != nil {
		return "", m.err
	}
	return m.response, nil
}

func testVocab() *domain.Vocabulary {
	return domain.NewVocabulary(
		[]string{"Lufthansa", "Emirates", "ANA"},
		[]string{"Solo Leisure", "Business"},
		[]string{"Economy Class", "Business Class"},
	)
}

// --- Tests ---

func TestExtract_PlainJSON(t *testing.T) {
	gen := &mockGenerator{response: `{"airline": "Lufthansa", "aspect": "food"}`}
	svc := New(gen, testVocab())

	params := svc.Extract(context.Background(), "how is the food on Lufthansa?")

	if !gen.called {
		t.Fatal("expected generator to be called")
	}
	if params[domain.ParamAirline] != "Lufthansa" {
		t.Errorf("airline = %q, expected Lufthansa", params[domain.ParamAirline])
	}
	if params[domain.ParamAspect] != "food" {
		t.Errorf("aspect = %q, expected food", params[domain.ParamAspect])
	}
}

func TestExtract_StripsCodeFence(t *testing.T) {
	gen := &mockGenerator{response: "```json\n{\"airline\": \"Emirates\"}\n```"}
	svc := New(gen, testVocab())

	params := svc.Extract(context.Background(), "Emirates reviews")

	if params[domain.ParamAirline] != "Emirates" {
		t.Errorf("airline = %q, expected Emirates", params[domain.ParamAirline])
	}
}

func TestExtract_StripsBareFence(t *testing.T) {
	gen := &mockGenerator{response: "```\n{\"airline\": \"ANA\"}\n```"}
	svc := New(gen, testVocab())

	params := svc.Extract(context.Background(), "ANA reviews")

	if params[domain.ParamAirline] != "ANA" {
		t.Errorf("airline = %q, expected ANA", params[domain.ParamAirline])
	}
}

func TestExtract_ParseFailureReturnsEmpty(t *testing.T) {
	gen := &mockGenerator{response: "I could not find any parameters in that query."}
	svc := New(gen, testVocab())

	params := svc.Extract(context.Background(), "gibberish")

	if len(params) != 0 {
		t.Errorf("expected empty parameters on parse failure, got %v", params)
	}
}

func TestExtract_GeneratorErrorReturnsEmpty(t *testing.T) {
	gen := &mockGenerator{err: errors.New("quota exceeded")}
	svc := New(gen, testVocab())

	params := svc.Extract(context.Background(), "any query")

	if len(params) != 0 {
		t.Errorf("expected empty parameters on generator error, got %v", params)
	}
}

func TestExtract_DropsNonStringValues(t *testing.T) {
	gen := &mockGenerator{response: `{"airline": "Emirates", "rating": 5, "verified": true}`}
	svc := New(gen, testVocab())

	params := svc.Extract(context.Background(), "five star Emirates reviews")

	if len(params) != 1 {
		t.Fatalf("expected 1 parameter, got %d: %v", len(params), params)
	}
	if params[domain.ParamAirline] != "Emirates" {
		t.Errorf("airline = %q, expected Emirates", params[domain.ParamAirline])
	}
}

func TestExtract_PromptContainsVocabulary(t *testing.T) {
	gen := &mockGenerator{response: `{}`}
	svc := New(gen, testVocab())

	svc.Extract(context.Background(), "what do people think of ANA?")

	for _, want := range []string{
		"Lufthansa, Emirates, ANA",
		"Solo Leisure, Business",
		"Economy Class, Business Class",
		`"what do people think of ANA?"`,
	} {
		if !strings.Contains(gen.lastPrompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, gen.lastPrompt)
		}
	}
}

func TestStripCodeFence(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"no fence", `{"a":"b"}`, `{"a":"b"}`},
		{"json fence", "```json\n{\"a\":\"b\"}\n```", `{"a":"b"}`},
		{"bare fence", "```\n{\"a\":\"b\"}\n```", `{"a":"b"}`},
		{"leading whitespace", "  ```json\n{}\n```  ", "{}"},
		{"unclosed fence", "```json\n{}", "{}"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := stripCodeFence(tc.in); got != tc.want {
				t.Errorf("stripCodeFence(%q) = %q, expected %q", tc.in, got, tc.want)
			}
		})
	}
}
