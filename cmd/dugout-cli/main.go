package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"go.uber.org/zap"

	"github.com/dugout-tcg/client/internal/cards"
	"github.com/dugout-tcg/client/internal/cli"
	"github.com/dugout-tcg/client/internal/config"
	"github.com/dugout-tcg/client/internal/net"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	switch cmd {
	case "join":
		runGame(os.Args[2:], false)
	case "watch":
		runGame(os.Args[2:], true)
	default:
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  dugout join --game ID --session ID [--server URL] [--config FILE]")
	fmt.Println("  dugout watch --game ID [--server URL] [--config FILE]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  join    Rejoin a game you hold a seat in")
	fmt.Println("  watch   Spectate a game")
}

func runGame(args []string, spectate bool) {
	name := "join"
	if spectate {
		name = "watch"
	}
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	gameID := fs.String("game", "", "game id to join")
	sessionID := fs.String("session", "", "your player session id")
	serverURL := fs.String("server", "", "game server websocket URL (overrides config)")
	configPath := fs.String("config", "config.yaml", "path to config file")
	fs.Parse(args)

	if *gameID == "" {
		fmt.Fprintln(os.Stderr, "Error: --game is required")
		os.Exit(1)
	}
	if !spectate && *sessionID == "" {
		fmt.Fprintln(os.Stderr, "Error: --session is required to join (use 'watch' to spectate)")
		os.Exit(1)
	}

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

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	channel, err := net.Dial(ctx, cfg.Server.URL, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer channel.Close()

	channel.RejoinOrSpectate(*gameID)

	app := cli.New(cli.Options{
		Sender:    channel,
		Events:    channel.Events(),
		Catalog:   catalog,
		SessionID: *sessionID,
		In:        os.Stdin,
		Out:       os.Stdout,
		Logger:    logger,
	})
	if err := app.Run(ctx); err != nil && ctx.Err() == nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
