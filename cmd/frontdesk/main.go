package main

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/clinic/frontdesk/internal/config"
	"github.com/clinic/frontdesk/internal/console"
	"github.com/clinic/frontdesk/internal/domain/clinic"
	"github.com/clinic/frontdesk/internal/platform/cpf"
	"github.com/clinic/frontdesk/internal/platform/reporting"
	"github.com/clinic/frontdesk/internal/platform/temporal"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "frontdesk",
		Short:        "Clinic front-desk assistant",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(runCmd())
	rootCmd.AddCommand(checkCmd())
	return rootCmd
}

func runCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Start the interactive front-desk session",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSession(cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

func checkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate a single value without starting a session",
	}

	// check cpf
	cpfCmd := &cobra.Command{
		Use:   "cpf <number>...",
		Short: "Validate CPF check digits",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			invalid := 0
			for _, id := range args {
				if err := cpf.Validate(id, nil); err != nil {
					invalid++
					fmt.Fprintf(cmd.OutOrStdout(), "%s: %v\n", id, err)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: valid\n", cpf.Format(id))
			}
			if invalid > 0 {
				return fmt.Errorf("%d of %d CPF(s) invalid", invalid, len(args))
			}
			return nil
		},
	}
	cmd.AddCommand(cpfCmd)

	// check date
	dateCmd := &cobra.Command{
		Use:   "date <dd/MM/yyyy>",
		Short: "Validate an appointment date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			basic, _ := cmd.Flags().GetBool("basic")
			after, _ := cmd.Flags().GetString("after")

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			loc, err := cfg.Location()
			if err != nil {
				return err
			}

			opts := temporal.DateOptions{OnlyBasic: basic}
			if after != "" {
				prior, err := temporal.ParseDate(after, loc)
				if err != nil {
					return err
				}
				opts.Prior = &prior
			}
			date, err := temporal.ParseDate(args[0], loc)
			if err != nil {
				return err
			}
			v := temporal.NewValidator(temporal.SystemClock{Location: loc})
			if err := v.ValidateDate(date, opts); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: valid\n", temporal.FormatDate(date))
			return nil
		},
	}
	dateCmd.Flags().Bool("basic", false, "Allow past dates (report ranges)")
	dateCmd.Flags().String("after", "", "Earliest acceptable date (dd/MM/yyyy)")
	cmd.AddCommand(dateCmd)

	// check time
	timeCmd := &cobra.Command{
		Use:   "time <HH:mm>",
		Short: "Validate an appointment time",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			after, _ := cmd.Flags().GetString("after")

			var prior *temporal.TimeOfDay
			if after != "" {
				p, err := temporal.ParseTime(after)
				if err != nil {
					return err
				}
				prior = &p
			}
			t, err := temporal.ParseTime(args[0])
			if err != nil {
				return err
			}
			v := temporal.NewValidator(temporal.SystemClock{})
			if err := v.ValidateTimeOfDay(t, prior); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: valid\n", t)
			return nil
		},
	}
	timeCmd.Flags().String("after", "", "Start time the value must follow (HH:mm)")
	cmd.AddCommand(timeCmd)

	return cmd
}

func runSession(in io.Reader, out io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := newLogger(cfg)

	loc, err := cfg.Location()
	if err != nil {
		logger.Error().Err(err).Msg("failed to resolve time zone")
		return err
	}

	c := clinic.New(temporal.SystemClock{Location: loc})
	renderer := reporting.NewRenderer(reporting.Format(cfg.ReportFormat))
	logger.Info().
		Str("env", cfg.Env).
		Str("timezone", loc.String()).
		Str("report_format", string(renderer.Format())).
		Msg("session started")

	session := console.NewSession(in, out, c, renderer, logger, cfg.ClinicName)
	if err := session.Run(); err != nil {
		logger.Error().Err(err).Msg("session failed")
		return err
	}
	logger.Info().
		Int("patients", c.Patients.Len()).
		Msg("session ended")
	return nil
}

// newLogger writes JSON to stderr, or human-readable lines in development,
// so log output never interleaves with the prompts on stdout.
func newLogger(cfg *config.Config) zerolog.Logger {
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
	if cfg.IsDev() {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	}
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.WarnLevel
	}
	return logger.Level(level)
}
