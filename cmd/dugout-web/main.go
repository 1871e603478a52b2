package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/dugout-tcg/client/internal/cards"
	"github.com/dugout-tcg/client/internal/config"
	"github.com/dugout-tcg/client/internal/web"
)

func main() {
	port := flag.Int("port", 8080, "HTTP port to listen on")
	configPath := flag.String("config", "config.yaml", "path to config file")
	serverURL := flag.String("server", "", "game server websocket URL (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if *serverURL != "" {
		cfg.Server.URL = *serverURL
	}

	logger, err := cfg.Logging.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	catalog, err := cards.Load(cfg.Catalog.Path)
	if err != nil {
		logger.Warn("card catalog unavailable, showing raw ids", zap.Error(err))
		catalog = cards.Empty()
	}

	srv := web.NewServer(catalog, cfg.Server.URL, logger)

	addr := fmt.Sprintf(":%d", *port)
	logger.Info("dugout web UI ready", zap.String("url", fmt.Sprintf("http://localhost:%d", *port)))
	if err := srv.ListenAndServe(addr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
