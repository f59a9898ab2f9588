// Package app wires configuration, content generation, and PDF
// rendering into the end-to-end report pipeline shared by the CLI and
// the HTTP server.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/goreport/internal/handwrite"
	"github.com/hyperifyio/goreport/internal/llm"
	"github.com/hyperifyio/goreport/internal/provider"
	"github.com/hyperifyio/goreport/internal/report"
	"github.com/hyperifyio/goreport/internal/typeset"
)

// App carries the resolved configuration and the model client for one
// or more report builds.
type App struct {
	Config Config
	Client llm.Client
}

// New resolves the model client from configuration. A missing model is
// not an error; builds then go straight to the fallback content.
func New(cfg Config) *App {
	a := &App{Config: cfg}
	if strings.TrimSpace(cfg.LLMModel) != "" {
		a.Client = llm.New(cfg.LLMBaseURL, cfg.LLMAPIKey)
	}
	return a
}

// BuildReport produces the finished PDF for a topic. Content comes from
// the configured model when one is available; any generation failure
// falls back to the deterministic placeholder payload so a PDF is
// always produced.
func (a *App) BuildReport(ctx context.Context, topic string, pages int, style report.Style) ([]byte, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, errors.New("topic must not be empty")
	}
	if pages < 1 {
		pages = 1
	}

	doc := a.content(ctx, topic, pages, style)

	if style == report.StyleHandwritten {
		return handwrite.BuildWithOptions(topic, doc, handwrite.Options{
			Seed:     a.Config.Seed,
			FontPath: a.Config.FontPath,
		})
	}
	return typeset.Build(topic, doc)
}

func (a *App) content(ctx context.Context, topic string, pages int, style report.Style) report.Document {
	if a.Client == nil {
		log.Debug().Str("topic", topic).Msg("no model configured; using fallback content")
		return provider.Fallback(topic, pages, style)
	}
	gen := &provider.Generator{
		Client:      a.Client,
		Model:       a.Config.LLMModel,
		Temperature: a.Config.LLMTemperature,
	}
	doc, err := gen.Generate(ctx, topic, pages, style)
	if err != nil {
		var genErr *provider.GenerationError
		if errors.As(err, &genErr) {
			log.Warn().Err(err).Str("topic", topic).Msg("content generation failed; using fallback content")
			return provider.Fallback(topic, pages, style)
		}
		log.Warn().Err(err).Str("topic", topic).Msg("unexpected generation error; using fallback content")
		return provider.Fallback(topic, pages, style)
	}
	return doc
}

// Run executes one CLI build: generate content, render the PDF, and
// write it to the configured output path.
func (a *App) Run(ctx context.Context) error {
	style := report.ParseStyle(a.Config.Style)
	pdf, err := a.BuildReport(ctx, a.Config.Topic, a.Config.Pages, style)
	if err != nil {
		return fmt.Errorf("build report: %w", err)
	}

	out := a.Config.OutputPath
	if strings.TrimSpace(out) == "" {
		out = "report.pdf"
	}
	if err := os.WriteFile(out, pdf, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}
	log.Info().Str("output", out).Int("bytes", len(pdf)).
		Str("style", style.String()).Msg("report written")
	return nil
}
