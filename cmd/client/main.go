package main

import (
	"log/slog"
	"os"
	"path/filepath"

	"smartcampus/pkg/api"
	"smartcampus/pkg/client"
	"smartcampus/pkg/datastore"
	"smartcampus/pkg/logging"
	"smartcampus/pkg/session"
	"smartcampus/ui"
)

func main() {
	settings := client.LoadSettings()

	// Settings hold the defaults; env vars override for one run.
	level := settings.LogLevel
	if v := os.Getenv("SMARTCAMPUS_LOG_LEVEL"); v != "" {
		level = v
	}
	format := settings.LogFormat
	if v := os.Getenv("SMARTCAMPUS_LOG_FORMAT"); v != "" {
		format = v
	}
	_ = logging.Setup(logging.Options{
		Level:  level,
		Format: format,
		Output: os.Stdout,
	})

	serverURL := settings.ServerURL
	if v := os.Getenv("SMARTCAMPUS_SERVER_URL"); v != "" {
		serverURL = v
	}

	apiClient := api.New(serverURL)

	creds, err := session.NewCredentialStore("")
	if err != nil {
		slog.Error("open credential store", "err", err)
		os.Exit(1)
	}
	provider := session.NewProvider(apiClient, creds)

	var cache datastore.DataProviderFactory
	if factory, err := datastore.NewProviderFactory(filepath.Join(session.DefaultDir(), "cache.db")); err != nil {
		slog.Warn("local cache unavailable", "err", err)
	} else {
		cache = factory
		defer factory.Close() //nolint:errcheck
	}
	engine := client.NewEngine(apiClient, cache)

	ui.NewApp(provider, engine, apiClient, settings).Run()
}
