// Package provider obtains the structured report payload for a topic,
// either from an OpenAI-compatible model or, when that fails in any
// way, from a deterministic fallback generator. Downstream layout code
// always receives a valid payload.
package provider

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	openai "github.com/sashabaranov/go-openai"

	"github.com/hyperifyio/goreport/internal/llm"
	"github.com/hyperifyio/goreport/internal/report"
	"github.com/hyperifyio/goreport/internal/template"
)

// GenerationError wraps any failure between the model call and a parsed
// payload. Callers are expected to recover with Fallback rather than
// surface it to the end user.
type GenerationError struct {
	Stage string
	Err   error
}

func (e *GenerationError) Error() string {
	return "content generation: " + e.Stage + ": " + e.Err.Error()
}

func (e *GenerationError) Unwrap() error { return e.Err }

// Generator requests report payloads from a chat model.
type Generator struct {
	Client      llm.Client
	Model       string
	Temperature float32
}

// Generate asks the model for a report on topic sized to the requested
// page count and returns the normalized payload. Any transport, parse
// or shape failure returns a *GenerationError; use Fallback to recover.
func (g *Generator) Generate(ctx context.Context, topic string, pages int, style report.Style) (report.Document, error) {
	if g.Client == nil || strings.TrimSpace(g.Model) == "" {
		return report.Document{}, &GenerationError{Stage: "configuration", Err: errors.New("no model configured")}
	}
	if pages < 1 {
		pages = 1
	}

	prompt := BuildPrompt(topic, pages, style)
	temp := g.Temperature
	if temp == 0 {
		temp = 1
	}
	resp, err := g.Client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: temp,
		N:           1,
	})
	if err != nil {
		return report.Document{}, &GenerationError{Stage: "chat completion", Err: err}
	}
	if len(resp.Choices) == 0 {
		return report.Document{}, &GenerationError{Stage: "chat completion", Err: errors.New("no choices")}
	}

	doc, err := ParsePayload(resp.Choices[0].Message.Content)
	if err != nil {
		return report.Document{}, &GenerationError{Stage: "parse payload", Err: err}
	}
	log.Debug().Str("topic", topic).Int("sections", len(doc.Sections)).
		Int("references", len(doc.References)).Msg("content payload parsed")
	return report.Normalize(doc, topic, pages), nil
}

// BuildPrompt constructs the single-shot prompt requesting a strict
// JSON payload sized to the page count.
func BuildPrompt(topic string, pages int, style report.Style) string {
	profile := template.ForStyle(style)
	wordCount := pages * 600
	sections := template.SectionCount(pages)
	wordsPerSection := int(float64(wordCount) * 0.7 / float64(sections))

	var b strings.Builder
	fmt.Fprintf(&b, "Your task is to create a %s report on: %q\n\n", profile.Name, topic)
	b.WriteString("Requirements:\n")
	fmt.Fprintf(&b, "- Content should fill %d pages (approximately %d words total)\n", pages, wordCount)
	if pages >= 30 {
		b.WriteString("- Since the report spans a high page count, include extended analysis, elaborate descriptions, and additional subsections to cover all aspects comprehensively\n")
	}
	fmt.Fprintf(&b, "- Include exactly %d sections with meaningful titles, around %d words each\n", sections, wordsPerSection)
	fmt.Fprintf(&b, "- Use %s writing style with %s\n", profile.WritingStyle, profile.ContentStyle)
	if profile.RequireCitations {
		b.WriteString("- Include at least 5 detailed academic references with proper citation format, related to the topic\n")
	} else {
		b.WriteString("- Use more personal language and straightforward formatting\n")
	}
	b.WriteString("- Use only ASCII characters; do not use special symbols or unicode characters\n")
	b.WriteString("- Give each section a specific, unique, descriptive title related to its content; no generic titles like \"Section 1\"\n\n")
	b.WriteString("Return ONLY a valid JSON object with this exact structure:\n")
	fmt.Fprintf(&b, "{\n  \"title\": %q,\n", topic)
	fmt.Fprintf(&b, "  \"introduction\": \"A comprehensive introduction (%d words)\",\n", int(float64(wordCount)*0.15))
	b.WriteString("  \"sections\": [\n    ")
	b.WriteString(strings.Join(template.ExampleSections(topic, sections), ",\n    "))
	b.WriteString("\n  ],\n")
	b.WriteString("  \"conclusion\": \"A thorough conclusion\",\n")
	b.WriteString("  \"references\": [\n")
	b.WriteString("    \"Author, A. (Year). Title of reference. Journal/Publisher, Vol(Issue), pages.\"\n")
	b.WriteString("  ]\n}\n")
	return b.String()
}

// Fallback builds the deterministic payload substituted when generation
// fails: templated introduction and conclusion, rotating thematic
// section titles and the default citations, normalized for the page
// count.
func Fallback(topic string, pages int, style report.Style) report.Document {
	if pages < 1 {
		pages = 1
	}
	doc := report.Document{
		Title: topic,
		Introduction: fmt.Sprintf(
			"This report examines %s in depth, exploring its key aspects, historical context, and significance in the field.", topic),
		Conclusion: fmt.Sprintf(
			"In conclusion, %s represents an important area of study with significant implications for theory and practice in the field.", topic),
		Sections: report.PlaceholderSections(topic, pages),
	}
	if style == report.StyleHandwritten {
		doc.Introduction = fmt.Sprintf(
			"I wanted to put together some notes on %s: what it is, where it came from, and why it matters. These pages collect the main points worth remembering.", topic)
		doc.Conclusion = fmt.Sprintf(
			"Looking back over these notes, %s turns out to be a richer subject than it first appears, and well worth further reading.", topic)
	}
	return report.Normalize(doc, topic, pages)
}
