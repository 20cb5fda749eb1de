package main

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/marinops/fleetcheck/internal/bot"
	"github.com/marinops/fleetcheck/internal/commands"
	"github.com/marinops/fleetcheck/internal/core/assets"
	"github.com/marinops/fleetcheck/internal/core/config"
	"github.com/marinops/fleetcheck/internal/core/report"
	"github.com/marinops/fleetcheck/internal/data/db"
	"github.com/marinops/fleetcheck/internal/data/stores"
	"github.com/marinops/fleetcheck/pkg/logutils"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	// When installed via `go install module@version`, build() populates
	// these from runtime/debug.BuildInfo instead.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

func build() string {
	v, c, d := version, commit, date

	if v == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok {
			if mv := info.Main.Version; mv != "" && mv != "(devel)" {
				v = mv
			}
			for _, s := range info.Settings {
				switch s.Key {
				case "vcs.revision":
					c = s.Value
				case "vcs.time":
					d = s.Value
				}
			}
		}
	}

	short := c
	if len(c) > 7 {
		short = c[:7]
	}

	return fmt.Sprintf("%s (%s) %s", v, short, d)
}

func main() {
	ctx := context.Background()

	var (
		logCloser func()
		botApp    = &bot.App{}
		database  *db.DB
	)

	flags := &commands.Flags{}

	app := &cli.Command{
		Name:      "fleetcheck",
		Usage:     "Telegram bot for vessel inspection reports",
		UsageText: "fleetcheck [global options] command [command options]",
		Description: `Fleetcheck walks inspectors through a guided dialogue — inspector, legal
entity, vessel, inspection date, violations — and renders the finished
session into a text summary and a PDF report.

Run 'fleetcheck run' to start the bot.`,
		Version: build(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("FLEETCHECK_LOG_LEVEL"),
				Value:       "info",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file (defaults to stderr)",
				Sources:     cli.EnvVars("FLEETCHECK_LOG_FILE"),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("FLEETCHECK_CONFIG"),
				Value:       commands.DefaultConfigPath(),
				Destination: &flags.ConfigPath,
			},
			&cli.StringFlag{
				Name:        "data-dir",
				Usage:       "path to data directory",
				Sources:     cli.EnvVars("FLEETCHECK_DATA_DIR"),
				Value:       commands.DefaultDataDir(),
				Destination: &flags.DataDir,
			},
			&cli.StringFlag{
				Name:        "token",
				Usage:       "telegram bot token",
				Sources:     cli.EnvVars("FLEETCHECK_TOKEN"),
				Destination: &flags.Token,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			logger, closer, err := logutils.New(flags.LogLevel, flags.LogFile)
			if err != nil {
				return ctx, fmt.Errorf("setup logger: %w", err)
			}
			log.Logger = logger
			logCloser = closer

			cfg, err := config.Load(flags.ConfigPath, flags.DataDir)
			if err != nil {
				return ctx, fmt.Errorf("load config: %w", err)
			}

			if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
				return ctx, fmt.Errorf("create data dir: %w", err)
			}

			database, err = db.Open(cfg.DataDir)
			if err != nil {
				return ctx, fmt.Errorf("open database: %w", err)
			}

			// The photo fetcher is installed by the run command once the
			// transport is authenticated.
			assetMgr, err := assets.NewManager(cfg.AssetsDir(), nil, log.With().Str("component", "assets").Logger())
			if err != nil {
				return ctx, fmt.Errorf("create asset manager: %w", err)
			}

			cat := cfg.EffectiveCatalog()
			sessions := stores.NewSessionStore()
			journal := stores.NewJournalStore(database)
			renderer := report.NewRenderer(
				assetMgr,
				cfg.Report.FontPath,
				cfg.Report.ImageWidthMM,
				log.With().Str("component", "report").Logger(),
			)
			svc := bot.NewService(cat, sessions, journal, renderer, log.With().Str("component", "dialogue").Logger())

			// Populate the pre-allocated App struct (commands already hold a pointer to it)
			*botApp = *bot.NewApp(cfg, cat, sessions, journal, assetMgr, svc, database)

			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			if database != nil {
				if err := database.Close(); err != nil {
					log.Error().Err(err).Msg("failed to close database")
					return err
				}
			}

			if logCloser != nil {
				logCloser()
			}
			return nil
		},
	}

	runCmd := commands.NewRunCmd(flags, botApp)

	app = runCmd.Register(app)
	app = commands.NewCatalogCmd(flags, botApp).Register(app)
	app = commands.NewJournalCmd(flags, botApp).Register(app)
	app = commands.NewAssetsCmd(flags, botApp).Register(app)

	// Running the bot is the default action when no subcommand is provided
	app.Action = func(ctx context.Context, c *cli.Command) error {
		if c.Args().Len() > 0 {
			return fmt.Errorf("unknown command %q. Run 'fleetcheck --help' for usage", c.Args().First())
		}
		return runCmd.Run(ctx, c)
	}

	exitCode := 0
	runErr := app.Run(ctx, os.Args)
	if runErr != nil {
		fmt.Println()
		fmt.Println(runErr.Error())
		exitCode = 1
	}

	os.Exit(exitCode)
}
