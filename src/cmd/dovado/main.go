package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/maksimkurb/dovado/src/internal/commands"
	"github.com/maksimkurb/dovado/src/internal/config"
	"github.com/maksimkurb/dovado/src/internal/log"
)

var (
	version = "dev"
	commit  = "n/a"
	date    = "n/a"
)

const envLogLevel = "DOVADO_LOG_LEVEL"

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	appCtx := &commands.AppContext{
		Context:   ctx,
		LookupEnv: os.LookupEnv,
		Stdout:    stdout,
		Stderr:    stderr,
	}

	var (
		format   string
		logLevel string
		verbose  bool
		debug    bool
		color    bool
	)

	fs := flag.NewFlagSet("dovado", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&appCtx.ConfigPath, "config", config.DefaultConfigPath(), "Path to credentials file")
	fs.StringVar(&appCtx.Overrides.Username, "username", "", "Router username")
	fs.StringVar(&appCtx.Overrides.Password, "password", "", "Router password")
	fs.StringVar(&appCtx.Overrides.Host, "host", "", "Router host (default: autodetect from the default gateway)")
	fs.IntVar(&appCtx.Overrides.Port, "port", 0, fmt.Sprintf("Router port (default: %d)", config.DefaultPort))
	fs.StringVar(&appCtx.Overrides.Timeout, "timeout", "", fmt.Sprintf("Connect and read timeout (default: %s)", config.DefaultTimeout))
	fs.StringVar(&format, "format", string(commands.FormatJSON), "Output format for parsed answers: json, yaml or toml")
	fs.BoolVar(&verbose, "v", false, "Enable info logging")
	fs.BoolVar(&debug, "vv", false, "Enable debug logging, including protocol traffic")
	fs.StringVar(&logLevel, "log-level", "", fmt.Sprintf("Log level: debug, info, warn or error (default: $%s or error)", envLogLevel))
	fs.BoolVar(&color, "color", false, "Colour log output even when stderr is not a terminal")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "Dovado router client\n")
		fmt.Fprintf(stderr, "Version: %s (Commit: %s, Date: %s)\n\n", version, commit, date)
		fmt.Fprintf(stderr, "Usage: dovado [options] <command> [args...]\n\n")
		fmt.Fprintf(stderr, "Commands:\n")
		fmt.Fprintf(stderr, "  state                   Show device info and services\n")
		fmt.Fprintf(stderr, "  info                    Show device info\n")
		fmt.Fprintf(stderr, "  services                Show services\n")
		fmt.Fprintf(stderr, "  traffic                 Show raw traffic counters\n")
		fmt.Fprintf(stderr, "  help                    Show the router's command help\n")
		fmt.Fprintf(stderr, "  sms <telno> <message>   Send an SMS through the router\n")
		fmt.Fprintf(stderr, "  query [-raw] <command>  Run any router command\n")
		fmt.Fprintf(stderr, "  config [-write]         Show or save the effective credentials\n")
		fmt.Fprintf(stderr, "  version                 Show version\n")
		fmt.Fprintf(stderr, "Any other command is sent to the router as is.\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}

	log.SetForceStdErr(true)
	log.SetForceColor(color)
	if err := setupLogLevel(logLevel, verbose, debug); err != nil {
		fmt.Fprintf(stderr, "dovado: %v\n", err)
		return exitUsage
	}

	var err error
	if appCtx.Format, err = commands.ParseFormat(format); err != nil {
		fmt.Fprintf(stderr, "dovado: %v\n", err)
		return exitUsage
	}

	if fs.NArg() < 1 {
		fs.Usage()
		return exitUsage
	}

	cmds := []commands.Runner{
		commands.CreateStateCommand(),
		commands.CreateInfoCommand(),
		commands.CreateServicesCommand(),
		commands.CreateTrafficCommand(),
		commands.CreateHelpCommand(),
		commands.CreateSMSCommand(),
		commands.CreateQueryCommand(),
		commands.CreateConfigCommand(),
		commands.CreateVersionCommand(commands.BuildInfo{Version: version, Commit: commit, Date: date}),
	}

	subcommand := fs.Arg(0)
	var cmd commands.Runner = commands.CreateRawCommand(subcommand)
	for _, c := range cmds {
		if c.Name() == subcommand {
			cmd = c
			break
		}
	}

	if err := cmd.Init(fs.Args()[1:], appCtx); err != nil {
		if commands.IsUsageError(err) {
			if !errors.Is(err, flag.ErrHelp) {
				fmt.Fprintf(stderr, "dovado %s: %v\n", subcommand, err)
			}
			return exitUsage
		}
		return failed(stderr, err)
	}

	if err := cmd.Run(); err != nil {
		return failed(stderr, err)
	}
	return exitOK
}

// setupLogLevel applies DOVADO_LOG_LEVEL, then -log-level, then -v/-vv. The default
// is error so that only failures reach stderr.
func setupLogLevel(flagLevel string, verbose, debug bool) error {
	log.SetLevel(log.LevelError)

	for _, name := range []string{os.Getenv(envLogLevel), flagLevel} {
		if name == "" {
			continue
		}
		l, err := log.ParseLevel(name)
		if err != nil {
			return err
		}
		log.SetLevel(l)
	}

	switch {
	case debug:
		log.SetVerbose(true)
	case verbose:
		log.SetLevel(log.LevelInfo)
	}
	return nil
}

func failed(stderr io.Writer, err error) int {
	fmt.Fprintf(stderr, "Failed to contact router: %v\n", err)
	return exitFailure
}
