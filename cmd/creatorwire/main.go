package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	creatorwire "github.com/creatorwire/creatorwire"
	"github.com/creatorwire/creatorwire/internal/commands"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "creatorwire: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: creatorwire <sync|prune|regen> [flags]")
	}
	subcommand, args := args[0], args[1:]

	fs := flag.NewFlagSet("creatorwire "+subcommand, flag.ExitOnError)
	contentDir := fs.String("content-dir", "content", "Directory holding the flat content files")
	outputDir := fs.String("output-dir", "public", "Directory receiving the generated site")
	dsn := fs.String("dsn", "file:creatorwire.db", "SQLite connection string")
	siteName := fs.String("site-name", "CreatorWire", "Site name used in page titles")
	baseURL := fs.String("base-url", "", "Base URL prefixed to internal links")
	types := fs.String("types", "", "Comma separated content types (default: all)")
	force := fs.Bool("force", false, "Re-render every page even when nothing changed")
	logLevel := fs.String("log-level", "info", "Log level: trace, debug, info, warn, error")
	logFormat := fs.String("log-format", "console", "Log format: json, console, pretty")

	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := creatorwire.DefaultConfig()
	cfg.ContentDir = *contentDir
	cfg.OutputDir = *outputDir
	cfg.DSN = *dsn
	cfg.SiteName = *siteName
	cfg.BaseURL = *baseURL
	cfg.Logging.Level = *logLevel
	cfg.Logging.Format = *logFormat

	ctx := context.Background()
	app, err := creatorwire.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer app.Close()

	switch subcommand {
	case "sync":
		report, err := app.Sync(ctx, commands.SyncCommand{
			Types:       splitTypes(*types),
			ForceRender: *force,
		})
		if report != nil {
			fmt.Print(report.String())
		}
		if err != nil {
			return err
		}
		if report != nil && report.Failed() {
			return fmt.Errorf("%d files failed", len(report.Failures))
		}
		return nil
	case "prune":
		report, err := app.Prune(ctx, commands.PruneCommand{Types: splitTypes(*types)})
		if report != nil {
			fmt.Print(report.String())
		}
		return err
	case "regen":
		report, err := app.Regen(ctx)
		if report != nil {
			fmt.Print(report.String())
		}
		if err != nil {
			return err
		}
		if report != nil && report.Failed() {
			return fmt.Errorf("%d pages failed", len(report.Failures))
		}
		return nil
	default:
		return fmt.Errorf("unknown command %q, want sync, prune or regen", subcommand)
	}
}

func splitTypes(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
