package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/aretw0/knitcalc/internal/cli"
	"github.com/spf13/cobra"
)

var localesCmd = &cobra.Command{
	Use:   "locales",
	Short: "List the languages instructions can be printed in",
	RunE: func(cmd *cobra.Command, args []string) error {
		setup, err := cli.BuildEngine(cmd.Context(), cfg, logger, cli.EngineOptions{})
		if err != nil {
			return err
		}
		defer setup.Close()

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "LANG\tNAME\tALIASES")
		for _, t := range setup.Engine.Catalog().Tables() {
			fmt.Fprintf(w, "%s\t%s\t%s\n", t.Lang, t.Name, strings.Join(t.Aliases, ", "))
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(localesCmd)
}
