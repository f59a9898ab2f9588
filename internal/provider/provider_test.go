package provider

import (
	"context"
	"errors"
	"strings"
	"testing"

	openai "github.com/sashabaranov/go-openai"

	"github.com/hyperifyio/goreport/internal/report"
)

// fakeClient returns a canned response or error.
type fakeClient struct {
	content string
	err     error
	gotReq  openai.ChatCompletionRequest
}

func (f *fakeClient) CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	f.gotReq = req
	if f.err != nil {
		return openai.ChatCompletionResponse{}, f.err
	}
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: f.content}},
		},
	}, nil
}

const validPayload = `{
  "title": "Soil Chemistry",
  "introduction": "An introduction.",
  "sections": [
    {"title": "Acidity", "content": "About pH."},
    {"title": "Nutrients", "content": "About NPK."}
  ],
  "conclusion": "A conclusion.",
  "references": ["Smith, J. (2020). Dirt. Soil Press."]
}`

func TestGenerate_ParsesModelOutput(t *testing.T) {
	fc := &fakeClient{content: "Here is your report:\n" + validPayload + "\nEnjoy!"}
	g := &Generator{Client: fc, Model: "test-model"}
	doc, err := g.Generate(context.Background(), "Soil Chemistry", 6, report.StyleTyped)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if doc.Title != "Soil Chemistry" {
		t.Fatalf("title = %q", doc.Title)
	}
	if len(doc.Sections) != 2 || doc.Sections[0].Title != "Acidity" {
		t.Fatalf("sections = %+v", doc.Sections)
	}
	if doc.RequestedPages != 6 {
		t.Fatalf("requested pages = %d", doc.RequestedPages)
	}
	if fc.gotReq.Model != "test-model" {
		t.Fatalf("model = %q", fc.gotReq.Model)
	}
}

func TestGenerate_TransportErrorIsGenerationError(t *testing.T) {
	g := &Generator{Client: &fakeClient{err: errors.New("connection refused")}, Model: "m"}
	_, err := g.Generate(context.Background(), "T", 5, report.StyleTyped)
	var genErr *GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("error %v is not a *GenerationError", err)
	}
	if genErr.Stage != "chat completion" {
		t.Fatalf("stage = %q", genErr.Stage)
	}
}

func TestGenerate_GarbageOutputIsGenerationError(t *testing.T) {
	g := &Generator{Client: &fakeClient{content: "I cannot help with that."}, Model: "m"}
	_, err := g.Generate(context.Background(), "T", 5, report.StyleTyped)
	var genErr *GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("error %v is not a *GenerationError", err)
	}
	if genErr.Stage != "parse payload" {
		t.Fatalf("stage = %q", genErr.Stage)
	}
}

func TestGenerate_NoModelConfigured(t *testing.T) {
	g := &Generator{}
	_, err := g.Generate(context.Background(), "T", 5, report.StyleTyped)
	var genErr *GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("error %v is not a *GenerationError", err)
	}
}

func TestBuildPrompt(t *testing.T) {
	p := BuildPrompt("Glacier Retreat", 10, report.StyleTyped)
	for _, want := range []string{
		`"Glacier Retreat"`,
		"fill 10 pages",
		"6000 words",
		"academic references",
		"Return ONLY a valid JSON object",
		"only ASCII characters",
	} {
		if !strings.Contains(p, want) {
			t.Fatalf("prompt missing %q:\n%s", want, p)
		}
	}

	hw := BuildPrompt("Glacier Retreat", 5, report.StyleHandwritten)
	if !strings.Contains(hw, "personal") {
		t.Fatalf("handwritten prompt not personal:\n%s", hw)
	}
	if strings.Contains(hw, "academic references") {
		t.Fatalf("handwritten prompt should not demand citations")
	}

	long := BuildPrompt("T", 30, report.StyleTyped)
	if !strings.Contains(long, "extended analysis") {
		t.Fatalf("high page count prompt missing expansion instruction")
	}
}

func TestFallback(t *testing.T) {
	doc := Fallback("Tidal Power", 8, report.StyleTyped)
	if doc.Title != "Tidal Power" {
		t.Fatalf("title = %q", doc.Title)
	}
	if doc.RequestedPages != 8 {
		t.Fatalf("requested pages = %d", doc.RequestedPages)
	}
	if len(doc.Sections) == 0 || len(doc.References) == 0 {
		t.Fatalf("fallback payload incomplete: %+v", doc)
	}
	if !strings.Contains(doc.Introduction, "Tidal Power") {
		t.Fatalf("introduction = %q", doc.Introduction)
	}

	hw := Fallback("Tidal Power", 8, report.StyleHandwritten)
	if hw.Introduction == doc.Introduction {
		t.Fatalf("handwritten fallback should read differently")
	}

	// Deterministic across calls.
	again := Fallback("Tidal Power", 8, report.StyleTyped)
	if doc.Introduction != again.Introduction || len(doc.Sections) != len(again.Sections) {
		t.Fatalf("fallback is not deterministic")
	}
}
