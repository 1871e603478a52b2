package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/dugout-tcg/client/internal/cards"
	"github.com/dugout-tcg/client/internal/config"
	dugoutmcp "github.com/dugout-tcg/client/internal/mcp"
)

func main() {
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

	// Stdout carries the MCP protocol; logs must go elsewhere.
	cfg.Logging.Format = "json"
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

	dugoutmcp.SetServerURL(cfg.Server.URL)
	dugoutmcp.SetCatalog(catalog)
	dugoutmcp.SetLogger(logger)

	s := server.NewMCPServer("dugout", "1.0.0")
	dugoutmcp.RegisterTools(s)

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
