package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/habitbot/internal/cli"
	"github.com/julianstephens/habitbot/internal/cli/system"
	"github.com/julianstephens/habitbot/internal/config"
	"github.com/julianstephens/habitbot/internal/constants"
	errs "github.com/julianstephens/habitbot/internal/errors"
	"github.com/julianstephens/habitbot/internal/logger"
	"github.com/julianstephens/habitbot/internal/storage"
	"github.com/julianstephens/habitbot/internal/storage/postgres"
	"github.com/julianstephens/habitbot/internal/storage/sqlite"
)

var CLI struct {
	Version  kong.VersionFlag
	Config   string `help:"SQLite file path or PostgreSQL connection string. Connection strings must NOT embed a password; use environment variables or .pgpass." env:"HABITBOT_DB" default:"~/.config/habitbot/habitbot.db"`
	BotToken string `help:"Bot API token. Falls back to the OS keyring when unset." env:"BOT_TOKEN"`
	AdminID  int64  `help:"Administrator user ID." env:"ADMIN_ID"`
	Debug    bool   `help:"Enable debug logging."`

	Run     system.RunCmd     `cmd:"" default:"1" help:"Start the bot."`
	Init    system.InitCmd    `cmd:"" help:"Initialize storage and run migrations."`
	Migrate system.MigrateCmd `cmd:"" help:"Run database migrations."`
	Doctor  system.DoctorCmd  `cmd:"" help:"Run health checks and diagnostics."`
	Token   struct {
		Set    system.TokenSetCmd    `cmd:"" help:"Store the bot token in the OS keyring."`
		Delete system.TokenDeleteCmd `cmd:"" help:"Remove the bot token from the OS keyring."`
	} `cmd:"" help:"Manage the stored bot token."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Telegram habit-tracking bot"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	target := config.ExpandPath(CLI.Config)

	var store storage.Provider
	if strings.HasPrefix(target, "postgres://") || strings.HasPrefix(target, "postgresql://") {
		if storage.HasEmbeddedCredentials(target) {
			fmt.Fprintf(os.Stderr, "❌ Error: connection strings with embedded credentials are not allowed.\n")
			fmt.Fprintf(os.Stderr, "       Use PGPASSWORD, a .pgpass file, or a passwordless connection string.\n")
			os.Exit(1)
		}
		store = postgres.New(target)
	} else {
		store = sqlite.New(target)
	}

	appCtx := &cli.Context{
		Store:    store,
		Storage:  target,
		BotToken: CLI.BotToken,
		AdminID:  CLI.AdminID,
		Debug:    CLI.Debug,
	}

	cfg := config.Config{Storage: target}
	if err := logger.Init(logger.Config{Debug: CLI.Debug, ConfigDir: cfg.ConfigDir()}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize logging: %v\n", err)
		os.Exit(1)
	}

	errs.Fatal(ctx.Run(appCtx))
}
