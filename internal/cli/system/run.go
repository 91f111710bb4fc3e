package system

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/julianstephens/habitbot/internal/bot"
	"github.com/julianstephens/habitbot/internal/cli"
	"github.com/julianstephens/habitbot/internal/logger"
	"github.com/julianstephens/habitbot/internal/session"
)

type RunCmd struct {
	// PollTimeout is the long-poll timeout in seconds.
	PollTimeout int `help:"Long-poll timeout in seconds." default:"30"`
}

// Run starts the bot: authenticate, long-poll for updates, and process
// them one at a time until interrupted.
func (cmd *RunCmd) Run(ctx *cli.Context) error {
	cfg, err := ctx.ResolveConfig()
	if err != nil {
		return err
	}

	if err := ctx.Store.Load(); err != nil {
		return err
	}
	defer ctx.Store.Close()

	api, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		return fmt.Errorf("failed to authenticate with Telegram: %w", err)
	}
	api.Debug = cfg.Debug
	logger.Info("Authorized", "account", api.Self.UserName, "admin", cfg.AdminID)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = cmd.PollTimeout
	updates := api.GetUpdatesChan(u)

	// StopReceivingUpdates closes the channel, letting the event loop
	// drain and return.
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sig
		logger.Info("Shutting down")
		api.StopReceivingUpdates()
	}()

	b := bot.New(api, ctx.Store, session.NewManager(), cfg.AdminID)
	b.Run(updates)
	return nil
}
