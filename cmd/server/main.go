// Package main provides the player server entry point.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"syscall"
	"time"

	"connectrpc.com/connect"
	"github.com/alecthomas/kingpin/v2"
	"github.com/joho/godotenv"
	zlog "github.com/rs/zerolog/log"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	apiconnect "github.com/osa030/tunedeck/internal/api/connect"
	playerv1 "github.com/osa030/tunedeck/internal/api/playerv1"
	"github.com/osa030/tunedeck/internal/app/catalog"
	"github.com/osa030/tunedeck/internal/app/library"
	"github.com/osa030/tunedeck/internal/app/session"
	"github.com/osa030/tunedeck/internal/app/view"
	"github.com/osa030/tunedeck/internal/infra/config"
	"github.com/osa030/tunedeck/internal/infra/lastfm"
	"github.com/osa030/tunedeck/internal/infra/localfs"
	"github.com/osa030/tunedeck/internal/infra/logger"
	"github.com/osa030/tunedeck/internal/infra/spotify"
)

var (
	app        = kingpin.New("tunedeck-server", "tunedeck player server")
	configPath = app.Flag("config", "Path to config file (built-in defaults when empty)").String()
	verbose    = app.Flag("verbose", "Enable verbose (DEBUG) logging").Short('v').Bool()
	logfile    = app.Flag("logfile", "Path to log file (default: stdout)").String()

	listSourcesCmd = app.Command("list-sources", "List configured catalog sources and exit")
)

func init() {
	app.Command("start", "Start the server (default)").Default()
}

func main() {
	// Load .env file if it exists (errors are ignored)
	_ = godotenv.Load()

	command := kingpin.MustParse(app.Parse(os.Args[1:]))

	loggerConfig := logger.Config{Output: logger.OutputStdout, Level: "info"}
	if *verbose {
		loggerConfig.Level = "debug"
	}
	if *logfile != "" {
		loggerConfig.Output = logger.OutputFile
		loggerConfig.File = *logfile
	}
	closer, err := logger.Init(loggerConfig)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer closer.Close()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		zlog.Fatal().Msgf("Failed to load config: %v", err)
	}

	if command == listSourcesCmd.FullCommand() {
		printSources(cfg)
		return
	}

	if err := run(cfg); err != nil {
		zlog.Error().Msgf("Server error: %v", err)
		os.Exit(1)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		zlog.Info().Msg("No config file given, using defaults")
		return config.Default()
	}
	zlog.Info().Msgf("Loading config from %s", path)
	return config.Load(path)
}

// run executes the main server logic. Using a separate function ensures
// defer statements are executed even when returning with an error.
func run(cfg *config.Config) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	chain, err := catalog.NewChainFromConfig(cfg.Catalog, map[string]catalog.Factory{
		config.SourceFixture: catalog.FixtureFactory,
		config.SourceLocal:   localfs.NewFactory(ctx),
		config.SourceSpotify: spotify.NewFactory(ctx, cfg.Spotify),
	})
	if err != nil {
		return fmt.Errorf("failed to create catalog: %w", err)
	}

	lib, err := newLibrary(cfg)
	if err != nil {
		return err
	}

	enricher, err := newEnricher(cfg)
	if err != nil {
		return err
	}

	sessionMgr, err := session.NewManager(cfg, chain, lib, enricher)
	if err != nil {
		return fmt.Errorf("failed to create session manager: %w", err)
	}
	if err := sessionMgr.Start(ctx); err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}

	// Create HTTP mux
	mux := http.NewServeMux()
	opts := []connect.HandlerOption{
		connect.WithInterceptors(apiconnect.NewTokenInterceptor(cfg.Server.Token)),
	}
	mux.Handle(playerv1.NewPlayerServiceHandler(apiconnect.NewPlayerService(sessionMgr), opts...))
	mux.Handle(playerv1.NewBrowseServiceHandler(apiconnect.NewBrowseService(sessionMgr), opts...))

	if cfg.Server.Token == "" {
		zlog.Warn().Msg("server.token is empty, mutating calls are not authenticated")
	}

	// Create server with h2c (HTTP/2 cleartext) support
	server := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: h2c.NewHandler(mux, &http2.Server{}),
	}

	serverErrCh := make(chan error, 1)
	serverStartedCh := make(chan struct{})

	go func() {
		zlog.Info().Msgf("Starting server: addr=%s session=%s", cfg.Server.Addr, sessionMgr.ID())
		close(serverStartedCh)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrCh <- err
		}
	}()

	<-serverStartedCh
	// Give the server a moment to fully initialize
	time.Sleep(100 * time.Millisecond)

	executeHooks(cfg.Server.Hooks.OnStarted, "on_started")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigCh:
		zlog.Info().Msg("Received shutdown signal...")
	case <-sessionMgr.Done():
		zlog.Info().Msg("Session ended, shutting down...")
	case err := <-serverErrCh:
		sessionMgr.Close()
		return fmt.Errorf("server error: %w", err)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	// Close the session first to end active subscriptions
	sessionMgr.Close()

	if err := server.Shutdown(shutdownCtx); err != nil {
		zlog.Error().Msgf("Failed to shutdown server: %v", err)
	}

	zlog.Info().Msg("Server stopped")

	executeHooks(cfg.Server.Hooks.OnStopped, "on_stopped")

	return nil
}

// newLibrary seeds the library from the demo fixture when a fixture source
// is configured.
func newLibrary(cfg *config.Config) (*library.Library, error) {
	if !cfg.HasSource(config.SourceFixture) {
		return library.New(nil, nil), nil
	}
	_, seed, err := catalog.Fixture("fixture")
	if err != nil {
		return nil, fmt.Errorf("failed to load library seed: %w", err)
	}
	zlog.Info().Msgf("Library seeded: saved=%d following=%d", len(seed.Saved), len(seed.Following))
	return library.New(seed.Saved, seed.Following), nil
}

// newEnricher returns the Last.fm client, or nil when no API key is set.
func newEnricher(cfg *config.Config) (view.Enricher, error) {
	if !cfg.LastFm.Enabled() {
		zlog.Info().Msg("Last.fm API key not configured, artist enrichment disabled")
		return nil, nil
	}
	client, err := lastfm.New(lastfm.Config{APIKey: cfg.LastFm.APIKey})
	if err != nil {
		return nil, fmt.Errorf("failed to create Last.fm client: %w", err)
	}
	return client, nil
}

// printSources prints the configured catalog sources in lookup order.
func printSources(cfg *config.Config) {
	fmt.Println("Catalog Sources:")
	for i, s := range cfg.Catalog.Sources {
		fmt.Printf("  %d. %-10s %s\n", i+1, s.Type, s.DisplayName)
	}
}

// executeHooks runs a list of shell commands.
func executeHooks(hooks []string, stage string) {
	if len(hooks) == 0 {
		return
	}

	zlog.Info().Msgf("Executing %s hooks (%d commands)", stage, len(hooks))

	for _, hook := range hooks {
		zlog.Info().Msgf("Executing hook: %s", hook)
		cmd := exec.Command("sh", "-c", hook)
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr

		if err := cmd.Run(); err != nil {
			zlog.Error().Err(err).Msgf("Failed to execute hook: %s", hook)
		}
	}
}
