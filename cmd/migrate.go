package cmd

import (
	"github.com/ariebrainware/embryo-ai/util"
	"github.com/spf13/cobra"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, _, err := bootstrap(); err != nil {
				return err
			}
			logger := util.Logger()
			logger.Info().Msg("migrations applied")
			return nil
		},
	}
}
