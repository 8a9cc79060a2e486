package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
	"github.com/lmittmann/tint"
	flag "github.com/spf13/pflag"

	rtt "github.com/filecoin-project/go-state-types/rt"

	"github.com/cpvesting/vesting-actors/actors/builtin"
	"github.com/cpvesting/vesting-actors/actors/builtin/vesting"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("vestingctl", flag.ContinueOnError)
	fs.SetInterspersed(false)
	fs.Usage = func() { printUsage(fs) }

	verboseFlag := fs.Bool("verbose", false, "enable verbose (debug) logging")
	envFileFlag := fs.String("env-file", ".env", "load environment variables from this file if it exists")
	dsnFlag := fs.String("pg-dsn", "", "PostgreSQL connection string (or set VESTING_PG_DSN env var)")
	ledgerFlag := fs.String("ledger", "", "name of the vesting ledger (or set VESTING_LEDGER env var)")
	callerFlag := fs.String("caller", "", "address sending the message (or set VESTING_CALLER env var)")
	timeFlag := fs.String("time", "", "block time as RFC3339 or unix seconds, defaults to the wall clock")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *envFileFlag != "" {
		if err := godotenv.Load(*envFileFlag); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to load %s: %w", *envFileFlag, err)
		}
	}
	if env := os.Getenv("VESTING_PG_DSN"); env != "" && *dsnFlag == "" {
		*dsnFlag = env
	}
	if env := os.Getenv("VESTING_LEDGER"); env != "" && *ledgerFlag == "" {
		*ledgerFlag = env
	}
	if env := os.Getenv("VESTING_CALLER"); env != "" && *callerFlag == "" {
		*callerFlag = env
	}

	if fs.NArg() == 0 {
		fs.Usage()
		return fmt.Errorf("no command given")
	}
	cmd, ok := commands[fs.Arg(0)]
	if !ok {
		fs.Usage()
		return fmt.Errorf("unknown command %q", fs.Arg(0))
	}

	clock := clockwork.NewRealClock()
	if *timeFlag != "" {
		t, err := parseTime(*timeFlag)
		if err != nil {
			return err
		}
		clock = clockwork.NewFakeClockAt(t)
	}

	log := newLogger(*verboseFlag)
	actorLevel := rtt.INFO
	if *verboseFlag {
		actorLevel = rtt.DEBUG
	}
	builtin.SetActorsLogLevel(actorLevel, vesting.Actor{})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c := &cli{
		log:    log,
		clock:  clock,
		dsn:    *dsnFlag,
		ledger: *ledgerFlag,
		caller: *callerFlag,
		out:    out,
	}
	return cmd.run(ctx, c, fs.Args()[1:])
}

func newLogger(verbose bool) *slog.Logger {
	logLevel := slog.LevelInfo
	if verbose {
		logLevel = slog.LevelDebug
	}
	return slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      logLevel,
		TimeFormat: time.RFC3339,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				a.Value = slog.TimeValue(a.Value.Time().UTC())
			}
			if s, ok := a.Value.Any().(string); ok && s == "" {
				return slog.Attr{}
			}
			return a
		},
	}))
}

// Accepts RFC3339 or a unix timestamp in seconds.
// parseTime accepts RFC3339 or unix seconds. Block times are unsigned, so instants before the epoch are refused.
func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if secs, perr := strconv.ParseInt(s, 10, 64); perr == nil {
		t, err = time.Unix(secs, 0).UTC(), nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q (use RFC3339, e.g. 2024-01-01T00:00:00Z, or unix seconds): %w", s, err)
	}
	if t.Unix() < 0 {
		return time.Time{}, fmt.Errorf("invalid time %q: before the unix epoch", s)
	}
	return t, nil
}

func printUsage(fs *flag.FlagSet) {
	fmt.Fprintf(os.Stderr, "Usage: vestingctl [flags] <command> [command flags]\n\nCommands:\n")
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(os.Stderr, "  %-18s %s\n", name, commands[name].usage)
	}
	fmt.Fprintf(os.Stderr, "\nFlags:\n%s", strings.TrimRight(fs.FlagUsages(), "\n")+"\n")
}
