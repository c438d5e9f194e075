package cmd

import (
	"os"

	"github.com/ariebrainware/embryo-ai/classifier"
	"github.com/ariebrainware/embryo-ai/config"
	"github.com/ariebrainware/embryo-ai/model"
	"github.com/ariebrainware/embryo-ai/util"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "embryo-ai",
		Short:         "Embryo grading clinic backend",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(serveCmd(), migrateCmd(), resetPasswordsCmd(), classifyCmd())
	return root
}

// Execute runs the command line. It exits with status 1 on error.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		logger := util.Logger()
		logger.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

// bootstrap loads configuration, sets up logging and the JWT secret, and opens the migrated database.
func bootstrap() (*config.Config, *gorm.DB, error) {
	cfg := config.LoadConfig()
	util.InitLogger(cfg.LogLevel, cfg.IsProduction())
	util.SetJWTSecret(cfg.JWTSecret)

	db, err := config.ConnectDatabase()
	if err != nil {
		return nil, nil, err
	}
	if err := model.Migrate(db); err != nil {
		return nil, nil, err
	}
	return cfg, db, nil
}

// newClassifier builds the ONNX-backed classifier from configuration.
func newClassifier(cfg *config.Config) (*classifier.Classifier, error) {
	backend, err := classifier.NewONNXBackend(cfg.ModelPath, cfg.ONNXLib, cfg.ModelInput, cfg.ModelOutput)
	if err != nil {
		return nil, err
	}
	return classifier.New(backend), nil
}
