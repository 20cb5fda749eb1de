package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/marinops/fleetcheck/internal/bot"
	"github.com/marinops/fleetcheck/internal/core/inspection"
)

type JournalCmd struct {
	flags *Flags
	app   *bot.App

	// flags
	limit int
}

// NewJournalCmd creates a new journal command
func NewJournalCmd(flags *Flags, app *bot.App) *JournalCmd {
	return &JournalCmd{flags: flags, app: app}
}

// Register adds the journal command to the application
func (cmd *JournalCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:        "journal",
		Usage:       "List finalized inspections",
		UsageText:   "fleetcheck journal [--limit N]",
		Description: `Displays the journal of finalized inspections, newest first.`,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:        "limit",
				Usage:       "maximum entries to show (0 = all)",
				Value:       20,
				Destination: &cmd.limit,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *JournalCmd) run(ctx context.Context, c *cli.Command) error {
	entries, err := cmd.app.Journal.List(ctx, cmd.limit)
	if err != nil {
		return fmt.Errorf("list journal: %w", err)
	}

	if len(entries) == 0 {
		fmt.Fprintln(os.Stderr, "No inspections recorded")
		return nil
	}

	w := tabwriter.NewWriter(c.Root().Writer, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "DATE\tINSPECTOR\tENTITY\tVESSEL\tVIOLATIONS\tARTIFACT\tRECORDED")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\t%s\n",
			e.InspectedOn.Format(inspection.DateLayout),
			e.Inspector, e.Entity, e.Ship, e.Violations, e.Artifact,
			e.CreatedAt.Format(time.DateTime),
		)
	}

	return w.Flush()
}
