package main

import (
	"os"
	"strconv"

	"github.com/aretw0/knitcalc"
	"github.com/aretw0/knitcalc/internal/cli"
	"github.com/aretw0/knitcalc/internal/dto"
	"github.com/spf13/cobra"
)

var calcCmd = &cobra.Command{
	Use:   "calc [stitches changes]",
	Short: "Calculate one row and print the instructions",
	Long: `Calculates how to spread the changes over the stitches on the needle.
Without arguments the classic example (166 stitches, 52 decreases) is shown.

Exits with status 1 when the input is invalid or asks for too many decreases.`,
	Args: cobra.RangeArgs(0, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		in := dto.DistributeInput{Lang: cfg.Lang}
		in.Stitches, _ = cmd.Flags().GetString("stitches")
		in.Changes, _ = cmd.Flags().GetString("changes")
		in.Mode, _ = cmd.Flags().GetString("mode")
		in.Expand, _ = cmd.Flags().GetBool("expand")

		switch len(args) {
		case 2:
			in.Stitches, in.Changes = args[0], args[1]
		case 1:
			in.Stitches = args[0]
		}
		if in.Stitches == "" && in.Changes == "" {
			ex := knitcalc.DefaultExample
			in.Stitches, in.Changes = strconv.Itoa(ex.Stitches), strconv.Itoa(ex.Changes)
			if in.Mode == "" {
				in.Mode = string(ex.Mode)
			}
		}

		format, _ := cmd.Flags().GetString("format")
		noColor, _ := cmd.Flags().GetBool("no-color")

		setup, err := cli.BuildEngine(cmd.Context(), cfg, logger, cli.EngineOptions{})
		if err != nil {
			return err
		}
		defer setup.Close()

		_, err = cli.Calc(cmd.Context(), setup.Engine, cli.CalcOptions{
			Input:       in,
			DefaultMode: cfg.Mode,
			Format:      format,
			Profile:     colorProfile(noColor),
		}, os.Stdout)
		return err
	},
}

func init() {
	rootCmd.AddCommand(calcCmd)

	calcCmd.Flags().StringP("stitches", "s", "", "Stitches currently on the needle")
	calcCmd.Flags().StringP("changes", "c", "", "Number of increases or decreases")
	calcCmd.Flags().StringP("mode", "m", "", "decrease or increase (default from config)")
	calcCmd.Flags().StringP("format", "f", cli.FormatText, "Output format: text, markdown or json")
	calcCmd.Flags().Bool("expand", false, "Include every individual action in JSON output")
	calcCmd.Flags().Bool("no-color", false, "Disable colours and markdown styling")
}
