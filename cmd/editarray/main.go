package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vcrobe/editarray/cmd/editarray/commands"
)

// Version is set during build with -ldflags
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "editarray",
	Short: "Render and exercise EditArray widgets",
	Long: `editarray renders EditArray markup from a YAML description and replays
interaction scripts against a page, printing the resulting HTML.`,
	SilenceUsage: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of editarray",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "editarray version %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(commands.NewRenderCommand())
	rootCmd.AddCommand(commands.NewRunCommand())
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
