package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "atelier-cli",
		Short: "Atelier CLI tool",
		Long: `Atelier CLI runs the server's checks from the command line.

Available commands:
  validate    Check login or sign-up credentials against the form rules
  config      Load and validate the server configuration
  version     Print the version number

Use "atelier-cli [command] --help" for more information about a specific command.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newValidateCmd(), newConfigCmd(), newVersionCmd())
	return root
}

// Execute executes the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		rootCmd.PrintErrln("Error:", err)
		os.Exit(1)
	}
}
