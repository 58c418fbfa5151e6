package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"typetrivia/internal/client"
	"typetrivia/internal/config"
)

func main() {
	configPath := flag.String("config", "typetrivia.toml", "path to TOML config file")
	server := flag.String("server", "http://127.0.0.1:8080", "typetrivia service base URL")
	timeout := flag.Duration("timeout", 10*time.Second, "HTTP timeout")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	err = client.Run(context.Background(), os.Stdin, os.Stdout, client.Config{
		ServerURL:    *server,
		RankingLimit: cfg.RankingLimit(),
		HTTPTimeout:  *timeout,
		Formula:      cfg.Formula(),
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
