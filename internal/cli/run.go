package cli

import (
	"os/exec"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/saltfishpr/retrier/retry"
)

// run executes argv under a retry session configured by cfg.
func run(cmd *cobra.Command, cfg retry.Config, abortCodes []int, logger zerolog.Logger, argv []string) error {
	options := append(cfg.Options(),
		retry.WithLogger(logger),
		retry.WithOnErrorFunc(abortOn(abortCodes, logger)),
	)

	_, err := retry.Do(cmd.Context(), func() (struct{}, error) {
		c := exec.CommandContext(cmd.Context(), argv[0], argv[1:]...)
		c.Stdin = cmd.InOrStdin()
		c.Stdout = cmd.OutOrStdout()
		c.Stderr = cmd.ErrOrStderr()
		return struct{}{}, c.Run()
	}, options...)
	return err
}
