package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/knitcalc"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of knitcalc",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("knitcalc version %s\n", strings.TrimSpace(knitcalc.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
