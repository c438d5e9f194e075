package cmd

import (
	"fmt"

	"github.com/ariebrainware/embryo-ai/endpoint"
	"github.com/spf13/cobra"
)

func resetPasswordsCmd() *cobra.Command {
	var password string
	cmd := &cobra.Command{
		Use:   "reset-passwords",
		Short: "Set every user's password to the reset password",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, db, err := bootstrap()
			if err != nil {
				return err
			}
			if password == "" {
				password = cfg.ResetPassword
			}
			ids, err := endpoint.ResetAllPasswords(db, password)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "reset %d passwords\n", len(ids))
			return nil
		},
	}
	cmd.Flags().StringVar(&password, "password", "", "new password (defaults to RESET_PASSWORD)")
	return cmd
}
