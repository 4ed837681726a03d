package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/Copay-Africa/copay-administration-sub000/internal/api"
	"github.com/Copay-Africa/copay-administration-sub000/internal/app"
	"github.com/Copay-Africa/copay-administration-sub000/internal/config"
	"github.com/Copay-Africa/copay-administration-sub000/internal/credential"
	"github.com/Copay-Africa/copay-administration-sub000/internal/logging"
)

func main() {
	configPath := flag.String("config", config.DefaultConfigPath(), "path to the configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "loading config: %v\n", err)
		os.Exit(1)
	}

	log, err := logging.New(cfg.LogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "opening log file: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	client := api.NewClient(cfg.BaseURL, log)

	// Restore a stored session token; a missing entry just means the
	// sign-in screen comes first.
	hasSession := false
	if token, err := credential.Get(credential.SessionTokenKey); err == nil && token != "" {
		client.SetToken(token)
		hasSession = true
	}

	log.Info("starting portal",
		zap.String("base_url", cfg.BaseURL),
		zap.Bool("session_restored", hasSession),
	)

	p := tea.NewProgram(app.New(client, log, *cfg, hasSession), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Error("program exited with error", zap.Error(err))
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
