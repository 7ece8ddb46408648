// wu-mqtt-bridge republishes Weather Underground conditions and
// forecasts to an MQTT broker and announces the matching Home
// Assistant entities over MQTT discovery. It runs one cycle and
// exits, which makes it a fit for cron.
//
// Usage:
//
//	wu-mqtt-bridge run [--dry-run]
//	wu-mqtt-bridge version
//
// Configuration comes from environment variables (see README.md). A
// .env file in the working directory is loaded first when present.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/Bernardstanislas/wu-mqtt-bridge/internal/app"
	"github.com/Bernardstanislas/wu-mqtt-bridge/internal/config"
	"github.com/Bernardstanislas/wu-mqtt-bridge/internal/logging"
)

var version = "dev"
var appName = "wu-mqtt-bridge"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Stdout, os.Stderr, os.Args[1:]); err != nil && !errors.Is(err, context.Canceled) {
		os.Exit(1)
	}
}

// run is the real entry point. main injects the OS-level pieces so
// tests can drive the whole lifecycle. run reports its own failures
// to stderr or the structured log; the returned error only decides
// the exit code.
func run(ctx context.Context, stdout, stderr io.Writer, args []string) error {
	var dryRun bool
	var command string

	// Two commands and three flags: parsed by hand to keep global
	// flag state out of the tests.
	for _, arg := range args {
		switch {
		case arg == "--dry-run":
			dryRun = true
		case arg == "--version":
			command = "version"
		case arg == "-h" || arg == "--help":
			return printUsage(stdout)
		case !strings.HasPrefix(arg, "-") && command == "":
			command = arg
		default:
			fmt.Fprintf(stderr, "unknown argument: %s\n", arg)
			printUsage(stderr)
			return fmt.Errorf("unknown argument: %s", arg)
		}
	}

	switch command {
	case "run":
		return runBridge(ctx, stdout, stderr, dryRun)
	case "version":
		fmt.Fprintf(stdout, "%s %s\n", appName, version)
		return nil
	case "":
		return printUsage(stdout)
	default:
		fmt.Fprintf(stderr, "unknown command: %s\n", command)
		printUsage(stderr)
		return fmt.Errorf("unknown command: %s", command)
	}
}

// runBridge executes one full bridge cycle.
func runBridge(ctx context.Context, stdout, stderr io.Writer, dryRun bool) error {
	// A missing .env is fine; only note real load problems.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(stderr, "warning: could not load .env: %v\n", err)
	}

	cfg, err := config.LoadFromEnv()
	if err != nil {
		fmt.Fprintf(stderr, "config error: %v\n", err)
		return err
	}
	if dryRun {
		cfg.DryRun = true
	}

	logger := logging.New(stderr, cfg, version, appName)
	slog.SetDefault(logger)

	slog.Info("starting",
		"app", appName,
		"version", version,
		"env", cfg.AppEnv,
		"geocode", cfg.Geocode.String(),
		"language", cfg.Language,
		"units", string(cfg.Units),
		"dry_run", cfg.DryRun,
	)

	if err := app.Run(ctx, cfg, stdout); err != nil {
		if errors.Is(err, context.Canceled) {
			slog.Info("interrupted")
			return err
		}
		slog.Error("run failed", "stage", app.Stage(err), "err", err)
		return err
	}

	slog.Info("shutting down")
	return nil
}

func printUsage(w io.Writer) error {
	fmt.Fprintln(w, "wu-mqtt-bridge - Weather Underground to MQTT bridge")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage: wu-mqtt-bridge <command> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  run        Fetch weather data and publish it to MQTT")
	fmt.Fprintln(w, "  version    Print the version")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  --dry-run   With run: print the messages instead of publishing")
	fmt.Fprintln(w, "  --version   Same as the version command")
	fmt.Fprintln(w, "  -h, --help  Show this help")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Configuration is read from environment variables; WU_GEOCODE is")
	fmt.Fprintln(w, "required. A .env file in the working directory is loaded first.")
	return nil
}
