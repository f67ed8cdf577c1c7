package cmd

import (
	"fmt"

	"github.com/nfrund/atelier/internal/config"
	"github.com/spf13/cobra"
)

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Load .env and the environment and report configuration problems",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.New()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✅ Configuration is valid\n")
			fmt.Fprintf(cmd.OutOrStdout(), "   Identity provider: %s\n", cfg.IdentityProvider)
			fmt.Fprintf(cmd.OutOrStdout(), "   Cache backend: %s\n", cfg.Cache.Backend)
			fmt.Fprintf(cmd.OutOrStdout(), "   Email provider: %s\n", cfg.Email.Provider)
			fmt.Fprintf(cmd.OutOrStdout(), "   Listening on: %s\n", cfg.App.Addr)
			return nil
		},
	}
}
