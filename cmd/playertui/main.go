// Package main provides the player terminal UI.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"connectrpc.com/connect"
	"github.com/alecthomas/kingpin/v2"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	zlog "github.com/rs/zerolog/log"

	apiconnect "github.com/osa030/tunedeck/internal/api/connect"
	playerv1 "github.com/osa030/tunedeck/internal/api/playerv1"
	"github.com/osa030/tunedeck/internal/infra/logger"
)

var (
	app     = kingpin.New("tunedeck-tui", "tunedeck terminal player")
	server  = app.Flag("server", "Server address").Default("http://localhost:8080").String()
	token   = app.Flag("token", "Player token (or set PLAYER_TOKEN env)").Envar("PLAYER_TOKEN").String()
	logfile = app.Flag("logfile", "Write logs to this file (discarded when empty)").String()
	verbose = app.Flag("verbose", "Enable verbose (DEBUG) logging").Short('v').Bool()
)

func main() {
	_ = godotenv.Load()
	kingpin.MustParse(app.Parse(os.Args[1:]))

	// The terminal belongs to the UI, so logs go to a file or nowhere.
	loggerConfig := logger.Config{Output: logger.OutputDiscard, Level: "info"}
	if *logfile != "" {
		loggerConfig.Output = logger.OutputFile
		loggerConfig.File = *logfile
	}
	if *verbose {
		loggerConfig.Level = "debug"
	}
	closer, err := logger.Init(loggerConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer closer.Close()

	opts := []connect.ClientOption{
		connect.WithInterceptors(apiconnect.NewTokenHeaderInterceptor(*token)),
	}
	c := clients{
		player: playerv1.NewPlayerServiceClient(http.DefaultClient, *server, opts...),
		browse: playerv1.NewBrowseServiceClient(http.DefaultClient, *server, opts...),
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	notifications := make(chan *playerv1.Notification, 16)
	go c.stream(ctx, notifications)

	p := tea.NewProgram(newModel(ctx, c, notifications), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		zlog.Error().Msgf("UI error: %v", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
