package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/goreport/internal/app"
)

func main() {
	// Logging setup
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	var (
		topic      string
		pages      int
		style      string
		output     string
		llmBaseURL string
		llmModel   string
		llmKey     string
		fontPath   string
		seed       int64
		configPath string
		envPath    string
		verbose    bool
	)

	flag.StringVar(&topic, "topic", "", "Report topic")
	flag.IntVar(&pages, "pages", 0, "Requested page count (default 5)")
	flag.StringVar(&style, "style", "", "Rendering style: typed or handwritten (default typed)")
	flag.StringVar(&output, "output", "", "Path to write the PDF (default report.pdf)")
	flag.StringVar(&llmBaseURL, "llm.base", os.Getenv("LLM_BASE_URL"), "OpenAI-compatible base URL")
	flag.StringVar(&llmModel, "llm.model", os.Getenv("LLM_MODEL"), "Model name; empty uses built-in fallback content")
	flag.StringVar(&llmKey, "llm.key", os.Getenv("LLM_API_KEY"), "API key for OpenAI-compatible server")
	flag.StringVar(&fontPath, "font", os.Getenv("HANDWRITING_FONT"), "Path to a handwriting TTF for the handwritten style (optional)")
	flag.Int64Var(&seed, "seed", 0, "Random seed for handwritten rendering; 0 uses the clock")
	flag.StringVar(&configPath, "config", "", "Path to YAML or JSON config file")
	flag.StringVar(&envPath, "env", "", "Path to dotenv file loaded before flags are resolved")
	flag.BoolVar(&verbose, "v", false, "Verbose logging")
	flag.Parse()

	if err := app.LoadEnvFiles(".env", envPath); err != nil {
		log.Fatal().Err(err).Msg("load env files")
	}

	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	cfg := app.Config{
		Topic:      topic,
		Pages:      pages,
		Style:      style,
		OutputPath: output,
		LLMBaseURL: llmBaseURL,
		LLMModel:   llmModel,
		LLMAPIKey:  llmKey,
		FontPath:   fontPath,
		Seed:       seed,
		Verbose:    verbose,
	}

	if configPath != "" {
		fc, err := app.LoadConfigFile(configPath)
		if err != nil {
			log.Fatal().Err(err).Str("config", configPath).Msg("load config file")
		}
		app.ApplyFileConfig(&cfg, fc)
	}
	if cfg.Pages == 0 {
		cfg.Pages = 5
	}
	if cfg.Verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	if cfg.Topic == "" {
		flag.Usage()
		log.Fatal().Msg("a topic is required (-topic)")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	if err := app.New(cfg).Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("report generation failed")
	}
}
