package main

import (
	"os"

	"github.com/awnumar/memguard"

	"github.com/MKhiriev/secure-vault/internal/client"
	"github.com/MKhiriev/secure-vault/internal/config"
	"github.com/MKhiriev/secure-vault/internal/logger"
	"github.com/MKhiriev/secure-vault/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	os.Exit(run())
}

func run() int {
	// interrupts are handled by the commands, which clear the clipboard and
	// lock the session before returning
	defer memguard.Purge()

	log := logger.NewClientLogger("secure-vault-client", os.Getenv("LOG_FILE"))
	cfg, err := config.GetClientConfig("")
	if err != nil {
		log.Error().Err(err).Msg("error getting configs")
		client.PrintError(os.Stderr, err)
		return 1
	}
	if !logger.SetLevel(cfg.App.LogLevel) {
		log.Warn().Str("level", cfg.App.LogLevel).Msg("unknown log level, keeping default")
	}

	app := client.NewApp(cfg, models.NewAppBuildInfo(buildVersion, buildDate, buildCommit), log)
	if err = app.Run(); err != nil {
		log.Error().Err(err).Msg("command failed")
		client.PrintError(os.Stderr, err)
		return 1
	}

	return 0
}
