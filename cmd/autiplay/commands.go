package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/five82/autiplay/internal/app"
	"github.com/five82/autiplay/internal/logtail"
)

const version = "0.1.0"

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#3b82f6"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#64748b"))
	goodStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#22c55e"))
)

func newRootCmd() *cobra.Command {
	var opts app.Options

	root := &cobra.Command{
		Use:           "autiplay",
		Short:         "A calm, predictable terminal app for kids",
		Long:          "AutiPlay offers a daily routine checklist, a feelings game and a calm room with breathing and ambient sounds.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Run(cmd.Context(), opts)
		},
	}
	root.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	flags := root.PersistentFlags()
	flags.StringVar(&opts.ConfigPath, "config", "", "config file (default ~/.config/autiplay/config.toml)")
	flags.StringVar(&opts.Profile, "profile", "", "profile whose progress is loaded and saved")
	flags.StringVar(&opts.Theme, "theme", "", "starting theme: light or dark")

	root.AddCommand(
		newServeCmd(&opts),
		newProgressCmd(&opts),
		newResetCmd(&opts),
		newLogsCmd(&opts),
	)
	return root
}

func newServeCmd(opts *app.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Host AutiPlay over SSH, one profile per SSH user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Serve(cmd.Context(), *opts)
		},
	}
}

func newProgressCmd(opts *app.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "progress",
		Short: "Show saved routine and feelings game progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := app.Open(*opts)
			if err != nil {
				return err
			}
			defer env.Close()

			writeReport(cmd.OutOrStdout(), env.Progress())
			return nil
		},
	}
}

func writeReport(w io.Writer, r app.Report) {
	line := func(label string, value any) {
		fmt.Fprintf(w, "%s %v\n", labelStyle.Render(label+":"), value)
	}

	fmt.Fprintln(w, headingStyle.Render("🌟 Progress for "+r.Profile))
	routine := fmt.Sprintf("%d of %d tasks", r.Done, r.Total)
	if r.Total > 0 && r.Done == r.Total {
		routine = goodStyle.Render(routine + " 🎉")
	}
	line("📋 Routine", routine)
	line("😊 Feelings", fmt.Sprintf("%d correct of %d (%d%%)", r.Score, r.Attempts, r.Accuracy))
}

func newResetCmd(opts *app.Options) *cobra.Command {
	return &cobra.Command{
		Use:       "reset [routine|emotions|all]",
		Short:     "Clear saved progress",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{app.ScopeRoutine, app.ScopeEmotions, app.ScopeAll},
		RunE: func(cmd *cobra.Command, args []string) error {
			scope := app.ScopeAll
			if len(args) == 1 {
				scope = args[0]
			}

			env, err := app.Open(*opts)
			if err != nil {
				return err
			}
			defer env.Close()

			if err := env.Reset(scope); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), goodStyle.Render(fmt.Sprintf("✔ Cleared %s progress for %s", scope, env.Config.Profile)))
			return nil
		},
	}
}

func newLogsCmd(opts *app.Options) *cobra.Command {
	var (
		lines int
		level string
		plain bool
	)
	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Print the tail of the log file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			minLevel, err := log.ParseLevel(strings.TrimSpace(level))
			if err != nil {
				return fmt.Errorf("invalid --level %q", level)
			}

			env, err := app.Open(*opts)
			if err != nil {
				return err
			}
			defer env.Close()

			tail, err := logtail.Read(env.Config.LogPath, lines)
			if err != nil {
				return err
			}
			tail = logtail.Filter(tail, minLevel)
			if !plain {
				tail = logtail.NewColorizer(lipgloss.DefaultRenderer()).Lines(tail)
			}
			for _, l := range tail {
				fmt.Fprintln(cmd.OutOrStdout(), l)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&lines, "lines", "n", 50, "number of lines to show (0 for all)")
	cmd.Flags().StringVar(&level, "level", "debug", "minimum level: debug, info, warn or error")
	cmd.Flags().BoolVar(&plain, "plain", false, "disable colors")
	return cmd
}
