package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/adamspd/StudyGuide/content"
	"github.com/adamspd/StudyGuide/db"
	"github.com/adamspd/StudyGuide/handlers"
	"github.com/adamspd/StudyGuide/models"
	"github.com/adamspd/StudyGuide/utils"
	"github.com/urfave/cli/v3"
)

var Version = "v0.1.0"

func main() {
	cmd := &cli.Command{
		Name:    "studyguide",
		Usage:   "AI study guides over HTTP and in the terminal",
		Version: Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "env-file",
				Value: ".env",
				Usage: "dotenv file loaded before reading the environment",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "debug, info, warn or error (overrides LOG_LEVEL)",
			},
			&cli.IntFlag{
				Name:  "port",
				Usage: "HTTP port (overrides PORT)",
			},
		},
		Commands: []*cli.Command{
			serveCommand(),
			browseCommand(),
			guidesCommand(),
			showCommand(),
		},
		Action: runServe,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "studyguide: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads the environment and applies command-line overrides.
func loadConfig(cmd *cli.Command) (models.AppConfig, error) {
	cfg, err := utils.LoadConfig(cmd.String("env-file"))
	if err != nil {
		return cfg, err
	}
	if cmd.IsSet("log-level") {
		cfg.LogLevel = cmd.String("log-level")
	}
	if cmd.IsSet("port") {
		cfg.Port = strconv.Itoa(int(cmd.Int("port")))
	}
	return cfg, nil
}

func setupLogging(cfg models.AppConfig, quiet bool) (func() error, error) {
	return utils.SetupLogging(utils.LogOptions{
		Level: cfg.LogLevel,
		File:  cfg.LogFile,
		Quiet: quiet,
	})
}

// openCatalogDB loads the embedded guides and seeds them into the store at dbPath.
func openCatalogDB(dbPath string) (*db.DB, *content.Catalog, error) {
	catalog, err := content.LoadCatalog()
	if err != nil {
		return nil, nil, fmt.Errorf("load catalog: %w", err)
	}

	database, err := db.InitDB(dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("initialize database: %w", err)
	}

	result, err := database.SeedCatalog(catalog.Guides())
	if err != nil {
		database.Close()
		return nil, nil, fmt.Errorf("seed catalog: %w", err)
	}
	utils.LogStartup("Seeded %d guides, %d topics, %d blocks, %d quiz questions in %v",
		result.Guides, result.Topics, result.Blocks, result.QuizQuestions, result.TimeTaken)

	return database, catalog, nil
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:   "serve",
		Usage:  "start the HTTP API (default)",
		Action: runServe,
	}
}

func runServe(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	closeLog, err := setupLogging(cfg, false)
	if err != nil {
		return err
	}
	defer closeLog()

	utils.LogStartup("Study guide API %s starting...", Version)
	utils.LogConfig("Using port: %s", cfg.Port)
	utils.LogConfig("Using database path: %s", cfg.DBPath)

	database, _, err := openCatalogDB(cfg.DBPath)
	if err != nil {
		return err
	}

	utils.LogStartup("Setting up API routes...")
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handlers.NewRouter(database),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		utils.LogShutdown("Received shutdown signal, stopping server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			utils.LogError("Error shutting down server: %v", err)
		}
	}()

	utils.LogStartup("Server ready to accept connections at http://localhost:%s", cfg.Port)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		database.Close()
		return fmt.Errorf("server failed: %w", err)
	}

	if err := database.Close(); err != nil {
		utils.LogError("Error closing database: %v", err)
	} else {
		utils.LogShutdown("Database connection closed successfully")
	}
	return nil
}
