package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/goreport/internal/app"
	"github.com/hyperifyio/goreport/internal/jobstore"
	"github.com/hyperifyio/goreport/internal/web"
)

func main() {
	// Logging setup
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	var (
		addr       string
		jobTTL     time.Duration
		llmBaseURL string
		llmModel   string
		llmKey     string
		fontPath   string
		configPath string
		envPath    string
		verbose    bool
	)

	flag.StringVar(&addr, "addr", ":8080", "Listen address")
	flag.DurationVar(&jobTTL, "job.ttl", 15*time.Minute, "How long finished reports stay downloadable")
	flag.StringVar(&llmBaseURL, "llm.base", os.Getenv("LLM_BASE_URL"), "OpenAI-compatible base URL")
	flag.StringVar(&llmModel, "llm.model", os.Getenv("LLM_MODEL"), "Model name; empty uses built-in fallback content")
	flag.StringVar(&llmKey, "llm.key", os.Getenv("LLM_API_KEY"), "API key for OpenAI-compatible server")
	flag.StringVar(&fontPath, "font", os.Getenv("HANDWRITING_FONT"), "Path to a handwriting TTF for the handwritten style (optional)")
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
		LLMBaseURL: llmBaseURL,
		LLMModel:   llmModel,
		LLMAPIKey:  llmKey,
		FontPath:   fontPath,
		Verbose:    verbose,
	}
	if configPath != "" {
		fc, err := app.LoadConfigFile(configPath)
		if err != nil {
			log.Fatal().Err(err).Str("config", configPath).Msg("load config file")
		}
		app.ApplyFileConfig(&cfg, fc)
	}
	if cfg.Verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	a := app.New(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := jobstore.New(jobTTL)
	store.StartJanitor(ctx, time.Minute)

	srv := &web.Server{Store: store, Build: a.BuildReport}
	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutCtx); err != nil {
			log.Warn().Err(err).Msg("server shutdown")
		}
	}()

	log.Info().Str("addr", addr).Bool("model", a.Client != nil).Msg("report server listening")
	if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("server failed")
	}
	log.Info().Msg("server stopped")
}
