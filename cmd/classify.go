package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/ariebrainware/embryo-ai/classifier"
	"github.com/ariebrainware/embryo-ai/config"
	"github.com/ariebrainware/embryo-ai/util"
	"github.com/spf13/cobra"
)

func classifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "classify <image>",
		Short: "Grade an embryo image file and print the result as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadConfig()
			util.InitLogger(cfg.LogLevel, cfg.IsProduction())

			clf, err := newClassifier(cfg)
			if err != nil {
				return err
			}
			return classifyFile(cmd, clf, args[0])
		},
	}
}

func classifyFile(cmd *cobra.Command, clf *classifier.Classifier, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	img, err := classifier.DecodeBytes(raw)
	if err != nil {
		return err
	}
	res, err := clf.ClassifyImage(cmd.Context(), img)
	if err != nil {
		return fmt.Errorf("classify %s: %w", path, err)
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}
