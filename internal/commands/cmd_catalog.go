package commands

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/marinops/fleetcheck/internal/bot"
)

type CatalogCmd struct {
	flags *Flags
	app   *bot.App
}

// NewCatalogCmd creates a new catalog command
func NewCatalogCmd(flags *Flags, app *bot.App) *CatalogCmd {
	return &CatalogCmd{flags: flags, app: app}
}

// Register adds the catalog command to the application
func (cmd *CatalogCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:        "catalog",
		Usage:       "Show the inspector roster and the operator fleets",
		UsageText:   "fleetcheck catalog",
		Description: `Displays the selection universe the dialogue offers: inspectors, legal entities, and each entity's vessels.`,
		Action:      cmd.run,
	})

	return app
}

func (cmd *CatalogCmd) run(ctx context.Context, c *cli.Command) error {
	out := c.Root().Writer
	cat := cmd.app.Catalog

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)

	fmt.Fprintln(w, "INSPECTOR ID\tNAME")
	for _, ins := range cat.Inspectors {
		fmt.Fprintf(w, "%s\t%s\n", ins.ID, ins.Name)
	}
	fmt.Fprintln(w, "\t")

	fmt.Fprintln(w, "ENTITY\tVESSELS")
	for _, e := range cat.Entities {
		fmt.Fprintf(w, "%s\t%s\n", e.Name, strings.Join(e.Ships, ", "))
	}

	return w.Flush()
}
