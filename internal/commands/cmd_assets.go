package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/marinops/fleetcheck/internal/bot"
)

type AssetsCmd struct {
	flags *Flags
	app   *bot.App

	// flags
	pattern string
}

// NewAssetsCmd creates a new assets command
func NewAssetsCmd(flags *Flags, app *bot.App) *AssetsCmd {
	return &AssetsCmd{flags: flags, app: app}
}

// Register adds the assets command to the application
func (cmd *AssetsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "assets",
		Usage:     "Manage the photo cache",
		UsageText: "fleetcheck assets <command>",
		Commands: []*cli.Command{
			{
				Name:        "prune",
				Usage:       "Delete cached photos",
				UsageText:   "fleetcheck assets prune [--pattern GLOB]",
				Description: `Deletes cached photo files whose names match the glob pattern. Assets are re-fetched on demand, so pruning is always safe.`,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:        "pattern",
						Usage:       "doublestar glob matched against cache file names",
						Value:       "*",
						Destination: &cmd.pattern,
					},
				},
				Action: cmd.runPrune,
			},
		},
	})

	return app
}

func (cmd *AssetsCmd) runPrune(ctx context.Context, c *cli.Command) error {
	removed, err := cmd.app.Assets.Prune(cmd.pattern)
	if err != nil {
		return fmt.Errorf("prune assets: %w", err)
	}

	fmt.Fprintf(c.Root().Writer, "Removed %d cached photo(s)\n", removed)
	return nil
}
