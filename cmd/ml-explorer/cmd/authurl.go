package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/ml-explorer/pkg/logger"
)

func authURLCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "auth-url",
		Short: "Print the Mercado Livre authorization URL",
		Long: "Builds the URL a user visits to grant access, from the configured " +
			"client id, redirect URI and scope.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			u := newAuthService(cfg, logger.Discard()).AuthorizationURL()
			if u == "" {
				return errors.New("ML_CLIENT_ID and ML_REDIRECT_URI must be set")
			}
			fmt.Fprintln(cmd.OutOrStdout(), u)
			return nil
		},
	}
}
