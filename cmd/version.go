package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/goliq/internal/borehole"
	"github.com/alexiusacademia/goliq/internal/liquefaction"
	"github.com/alexiusacademia/goliq/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of goliq",
	Run: func(cmd *cobra.Command, args []string) {
		methods := make([]string, 0, len(liquefaction.JRAYears))
		for _, y := range liquefaction.JRAYears {
			methods = append(methods, fmt.Sprintf("JRA %d", y))
		}
		fmt.Print(version.Get(borehole.ParserVersion, methods...))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
