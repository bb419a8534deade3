package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"ferrite/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "ferrite",
	Short: "Ferrite static expression checker",
	Long:  `Ferrite runs static semantic checks over typed expression trees described by check scripts`,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics per file")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
