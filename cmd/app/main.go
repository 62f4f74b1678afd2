package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/tlockney/quickpost/internal"
	pkgconfig "github.com/tlockney/quickpost/pkg/config"
)

// loadConfig builds the effective configuration: defaults, then the config
// file when present, then command-line overrides.
func loadConfig(cmd *cli.Command) (*internal.Config, error) {
	cfg := internal.NewDefaultConfig()

	if err := pkgconfig.LoadIfExists(cmd.String("config"), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if dir := cmd.Args().First(); dir != "" {
		cfg.Posts.Dir = dir
	}
	if cmd.IsSet("port") {
		cfg.App.HTTP.Port = int(cmd.Int("port"))
	}
	if cmd.IsSet("open") {
		cfg.Browser.AutoOpen = cmd.Bool("open")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func run(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if err := internal.Run(ctx, internal.WithConfig(cfg)); err != nil {
		return fmt.Errorf("app run error: %w", err)
	}

	return nil
}

func runMCP(_ context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	return internal.RunMCP(cfg)
}

func main() {
	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "Path to config file",
			DefaultText: "quickpost.yaml",
			Value:       "quickpost.yaml",
			Sources:     cli.EnvVars("QUICKPOST_CONFIG_FILE"),
		},
		&cli.IntFlag{
			Name:    "port",
			Aliases: []string{"p"},
			Usage:   "HTTP port to listen on",
			Sources: cli.EnvVars("QUICKPOST_PORT"),
		},
		&cli.BoolFlag{
			Name:  "open",
			Usage: "Open the editor in the default browser on startup",
		},
	}

	cmd := &cli.Command{
		Name:      "quickpost",
		Usage:     "Local web app for drafting and managing Markdown blog posts",
		ArgsUsage: "[posts-dir]",
		Action:    run,
		Flags:     flags,
		Commands: []*cli.Command{
			{
				Name:   "mcp",
				Usage:  "Serve post tools over the Model Context Protocol on stdio",
				Action: runMCP,
				Flags:  flags,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
