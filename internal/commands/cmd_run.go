package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/marinops/fleetcheck/internal/bot"
)

type RunCmd struct {
	flags *Flags
	app   *bot.App
}

// NewRunCmd creates a new run command
func NewRunCmd(flags *Flags, app *bot.App) *RunCmd {
	return &RunCmd{flags: flags, app: app}
}

// Register adds the run command to the application
func (cmd *RunCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "run",
		Usage:     "Start the Telegram bot",
		UsageText: "fleetcheck run",
		Description: `Connects to Telegram and polls for updates until interrupted.

The bot token is taken from --token / FLEETCHECK_TOKEN, falling back to the
telegram.token config key.`,
		Action: cmd.Run,
	})

	return app
}

func (cmd *RunCmd) Run(ctx context.Context, c *cli.Command) error {
	token := cmd.flags.Token
	if token == "" {
		token = cmd.app.Config.Telegram.Token
	}
	if token == "" {
		return fmt.Errorf("telegram token is required: set --token, FLEETCHECK_TOKEN, or telegram.token in the config file")
	}

	botLogger := log.With().Str("component", "telegram").Logger()
	b, err := bot.New(token, cmd.app.Config.Telegram.PollTimeout, cmd.app.Service, botLogger)
	if err != nil {
		return fmt.Errorf("start bot: %w", err)
	}

	// Photos can only be downloaded with the transport's credentials.
	cmd.app.Assets.SetFetcher(b.Fetcher())

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return b.Run(ctx)
}
