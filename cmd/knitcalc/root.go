package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/knitcalc/internal/cli"
	"github.com/aretw0/knitcalc/internal/config"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	cfg    config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "knitcalc",
	Short: "Spread increases and decreases evenly across a row of knitting",
	Long: `knitcalc tells you where to place increases or decreases so they are spread
evenly across a row, and prints the result as a knitting instruction.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("config")
		debug, _ := cmd.Flags().GetBool("debug")

		var err error
		cfg, err = config.Load(path, cmd.Flags().Changed("config"))
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("lang") {
			cfg.Lang, _ = cmd.Flags().GetString("lang")
		}

		logger, err = cli.NewLogger(cfg.Log.Level, debug)
		if err != nil {
			return err
		}
		slog.SetDefault(logger)
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, cli.ErrRejected) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", config.DefaultFile, "Path to the YAML configuration file")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging to stderr")
	rootCmd.PersistentFlags().String("lang", "", "Language for instructions, e.g. en or nb-NO")
}

// colorProfile picks the terminal profile for stdout. Pipes and --no-color
// get plain text.
func colorProfile(noColor bool) termenv.Profile {
	if noColor || !term.IsTerminal(int(os.Stdout.Fd())) {
		return termenv.Ascii
	}
	return termenv.EnvColorProfile()
}
