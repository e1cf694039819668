package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/lukas4311/WpfValidation/pkg/entity"
)

const dateLayout = "2006-01-02"

func rootCmd() *cobra.Command {
	var (
		flags   rootFlags
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Validate the example forms from the command line",
		Long: `formdemo builds one of the example forms, applies the flag values,
runs a validation pass and prints the errors, the error summary and whether
the form may be saved.

Configuration is read from FORMS_* environment variables and .env files.
With FORMS_REDIS_URL set, notifications are relayed through Redis.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringSliceVar(&flags.envFiles, "env-file", nil, "Additional .env files")
	cmd.PersistentFlags().StringVar(&flags.language, "lang", "", "Message language (overrides FORMS_LANGUAGE)")
	cmd.PersistentFlags().BoolVar(&flags.watch, "watch", false, "Print every notification to stderr")
	cmd.PersistentFlags().BoolVar(&flags.metrics, "metrics", false, "Print validation metrics after the run")
	cmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Time limit of the run")

	var run runner = func(fn formFunc) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			ctx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()

			a, err := newApp(ctx, flags, cmd.OutOrStdout(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer func() { _ = a.close(context.WithoutCancel(ctx)) }()

			if err := fn(ctx, a, cmd.OutOrStdout()); err != nil {
				return err
			}
			return a.finish()
		}
	}

	cmd.AddCommand(agreementCmd(run), callbatchCmd(run))
	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version %s\n", appName, Version)
		},
	})

	return cmd
}

// formFunc runs one form against the shared runtime.
type formFunc func(ctx context.Context, a *app, out io.Writer) error

// runner turns a formFunc into a cobra RunE with the shared runtime set up
// and torn down around it.
type runner func(fn formFunc) func(*cobra.Command, []string) error

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.ParseInLocation(dateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return t, nil
}

// report prints the validation state of e followed by extra lines.
func report(out io.Writer, e *entity.Entity, maySave bool, extra ...string) {
	fmt.Fprintf(out, "entity:   %s\n", e.ID())
	fmt.Fprintf(out, "valid:    %t\n", !e.HasErrors())

	if names := e.ErrorNames(); len(names) > 0 {
		fmt.Fprintln(out, "errors:")
		for _, name := range names {
			fmt.Fprintf(out, "  %s: %s\n", name, strings.Join(e.GetErrors(name), "; "))
		}
	}
	if summary := e.SummaryText(); summary != "" {
		fmt.Fprintln(out, "summary:")
		for line := range strings.SplitSeq(summary, "\n") {
			fmt.Fprintf(out, "  %s\n", line)
		}
	}
	fmt.Fprintf(out, "may save: %t\n", maySave)
	for _, line := range extra {
		fmt.Fprintln(out, line)
	}
}
