package main

import (
	"context"

	"github.com/aretw0/knitcalc/internal/cli"
	"github.com/spf13/cobra"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start an interactive calculator session",
	Long: `Reads "<stitches> <changes>" lines and prints the instructions for each.
Type "inc" or "dec" to switch mode, "lang no" to switch language and "exit" to quit.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		headless, _ := cmd.Flags().GetBool("headless")
		noColor, _ := cmd.Flags().GetBool("no-color")
		debug, _ := cmd.Flags().GetBool("debug")

		ctx := cli.NewSignalContext(context.Background())
		defer ctx.Cancel()

		setup, err := cli.BuildEngine(ctx, cfg, logger, cli.EngineOptions{Debug: debug})
		if err != nil {
			return err
		}
		defer setup.Close()

		return cli.RunInteractive(ctx, setup.Engine, cli.RunOptions{
			Mode:     cfg.Mode,
			Lang:     cfg.Lang,
			Headless: headless,
			Profile:  colorProfile(noColor || headless),
		})
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().Bool("headless", false, "Run in headless mode (no banner, prompts or colours)")
	runCmd.Flags().Bool("no-color", false, "Disable colours")

	// 'run' is the default if no command is provided
	rootCmd.RunE = runCmd.RunE
	rootCmd.Flags().AddFlagSet(runCmd.Flags())
}
