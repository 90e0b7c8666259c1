package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/saltfishpr/retrier/internal/logging"
	"github.com/saltfishpr/retrier/retry"
)

// NewRootCmd creates the retrier command.
func NewRootCmd() *cobra.Command {
	var (
		configPath string
		logLevel   string
		abortCodes []int
		flagCfg    = retry.DefaultConfig()
	)

	cmd := &cobra.Command{
		Use:   "retrier [flags] -- command [args...]",
		Short: "Run a command until it succeeds",
		Long: `Run a command repeatedly until it exits with status 0, the retry limit
is reached, or the timeout elapses.

Between attempts retrier waits for the retry delay, optionally growing it
exponentially (--backoff) and adding random jitter (--jitter). The delay is
always clamped to [--min-retry-delay, --max-retry-delay].

Options can also be read from a YAML file (--config); flags given on the
command line take precedence over the file.`,
		Example: `  retrier --max-retry-count 5 --backoff -- curl -fsS http://localhost:8080/health
  retrier --config retry.yaml --abort-exit-code 2 -- ./migrate.sh`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := retry.DefaultConfig()
			if configPath != "" {
				loaded, err := retry.LoadConfig(configPath)
				if err != nil {
					return err
				}
				cfg = loaded
			}
			overrideChanged(cmd.Flags(), &cfg, flagCfg)
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid options: %w", err)
			}

			logger := logging.NewWithComponent(logging.Config{
				Level:  logLevel,
				Pretty: true,
				Output: cmd.ErrOrStderr(),
			}, "retrier")

			return run(cmd, cfg, abortCodes, logger, args)
		},
	}

	f := cmd.Flags()
	f.StringVar(&configPath, "config", "", "YAML file with retry options")
	f.StringVar(&logLevel, "log-level", "warn", "Log level (trace, debug, info, warn, error, off)")
	f.IntSliceVar(&abortCodes, "abort-exit-code", nil, "Exit codes that stop retrying and exit successfully")
	f.IntVar(&flagCfg.MaxRetryCount, "max-retry-count", flagCfg.MaxRetryCount, "Maximum number of attempts (0 means unbounded)")
	f.DurationVar(&flagCfg.RetryDelay, "retry-delay", flagCfg.RetryDelay, "Base delay between attempts")
	f.DurationVar(&flagCfg.Timeout, "timeout", flagCfg.Timeout, "Time budget for all attempts (0 disables)")
	f.BoolVar(&flagCfg.Backoff, "backoff", flagCfg.Backoff, "Grow the delay exponentially")
	f.Float64Var(&flagCfg.Factor, "factor", flagCfg.Factor, "Exponential base used with --backoff")
	f.DurationVar(&flagCfg.MinRetryDelay, "min-retry-delay", flagCfg.MinRetryDelay, "Lower bound of the delay")
	f.DurationVar(&flagCfg.MaxRetryDelay, "max-retry-delay", flagCfg.MaxRetryDelay, "Upper bound of the delay (0 means none)")
	f.BoolVar(&flagCfg.Jitter, "jitter", flagCfg.Jitter, "Add a random delay")
	f.DurationVar(&flagCfg.MinJitter, "min-jitter", flagCfg.MinJitter, "Lower bound of the random delay")
	f.DurationVar(&flagCfg.MaxJitter, "max-jitter", flagCfg.MaxJitter, "Upper bound of the random delay")
	f.StringVar(&flagCfg.JitterRandomSeed, "jitter-seed", flagCfg.JitterRandomSeed, "Seed for reproducible jitter")

	return cmd
}

// overrideChanged copies into cfg the fields whose flags were set explicitly.
func overrideChanged(flags *pflag.FlagSet, cfg *retry.Config, from retry.Config) {
	flags.Visit(func(f *pflag.Flag) {
		switch f.Name {
		case "max-retry-count":
			cfg.MaxRetryCount = from.MaxRetryCount
		case "retry-delay":
			cfg.RetryDelay = from.RetryDelay
		case "timeout":
			cfg.Timeout = from.Timeout
		case "backoff":
			cfg.Backoff = from.Backoff
		case "factor":
			cfg.Factor = from.Factor
		case "min-retry-delay":
			cfg.MinRetryDelay = from.MinRetryDelay
		case "max-retry-delay":
			cfg.MaxRetryDelay = from.MaxRetryDelay
		case "jitter":
			cfg.Jitter = from.Jitter
		case "min-jitter":
			cfg.MinJitter = from.MinJitter
		case "max-jitter":
			cfg.MaxJitter = from.MaxJitter
		case "jitter-seed":
			cfg.JitterRandomSeed = from.JitterRandomSeed
		}
	})
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := NewRootCmd()
	if err := cmd.ExecuteContext(ctx); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitCode(err)
	}
	return 0
}

// ExitCode returns the exit status of the last attempted command wrapped in
// err, or 1 if err does not carry one.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() > 0 {
		return exitErr.ExitCode()
	}
	return 1
}

func abortOn(codes []int, logger zerolog.Logger) func(err error, attempt int) bool {
	return func(err error, attempt int) bool {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return false
		}
		for _, code := range codes {
			if exitErr.ExitCode() == code {
				logger.Info().Int("attempt", attempt).Int("exit_code", code).Msg("abort exit code, stopping")
				return true
			}
		}
		return false
	}
}
