package main

import (
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"go.uber.org/zap"

	"typetrivia/internal/auth"
	"typetrivia/internal/config"
	"typetrivia/internal/httpapi"
	"typetrivia/internal/opentdb"
	"typetrivia/internal/prompts"
	"typetrivia/internal/score"
	"typetrivia/internal/store"
	"typetrivia/internal/translate"
)

const jwtSecretEnv = "TYPETRIVIA_JWT_SECRET"

func main() {
	defaultAddr := os.Getenv("ADDR")

	configPath := flag.String("config", "typetrivia.toml", "path to TOML config file")
	addr := flag.String("addr", defaultAddr, "HTTP listen address (overrides config)")
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(*configPath, *addr, logger); err != nil {
		logger.Fatal("server failed", zap.Error(err))
	}
}

func run(configPath, addrOverride string, logger *zap.Logger) error {
	secret := os.Getenv(jwtSecretEnv)
	if secret == "" {
		return fmt.Errorf("%s environment variable is required", jwtSecretEnv)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	listenAddr := cfg.Addr()
	if addrOverride != "" {
		listenAddr = addrOverride
	}

	db, err := store.Open(cfg.DBPath())
	if err != nil {
		return err
	}
	defer db.Close()

	httpClient := &http.Client{Timeout: 10 * time.Second}

	var translator prompts.Translator
	if cfg.TranslateEnabled() {
		translator = translate.NewClient(httpClient)
	}
	promptSource := prompts.NewSource(
		opentdb.NewClient(httpClient),
		translator,
		cfg.PromptAmount(),
		cfg.LangPair(),
		logger,
	)

	api := httpapi.NewAPI(
		score.NewService(db, db),
		promptSource,
		auth.NewService(db),
		auth.NewTokenManager([]byte(secret)),
		logger,
	)
	api.SetRankingLimit(cfg.RankingLimit())

	server := &http.Server{
		Addr:              listenAddr,
		Handler:           httpapi.NewRouter(api),
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("typetrivia-server listening",
		zap.String("addr", listenAddr),
		zap.String("db", cfg.DBPath()),
		zap.Bool("translate", cfg.TranslateEnabled()))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
