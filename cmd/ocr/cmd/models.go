package cmd

import (
	"fmt"

	"github.com/MeKo-Christian/pogo/internal/models"
	"github.com/spf13/cobra"
)

// modelsCmd groups model-artifact operations.
var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "Inspect the on-disk model and dictionary artifacts",
}

// modelsPrepareCmd implements the prepareModels public operation
// It reports readiness without downloading or extracting anything,
// since artifact provisioning is an external collaborator's
// responsibility.
var modelsPrepareCmd = &cobra.Command{
	Use:   "prepare",
	Short: "Report whether the detection/recognition models and dictionary are present",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		status := models.Prepare(cfg.ModelsDir)

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "version:    %s\n", models.Version)
		fmt.Fprintf(out, "models-dir: %s\n", status.Paths.Dir)
		fmt.Fprintf(out, "ready:      %v\n", status.Ready())
		fmt.Fprintf(out, "detection:      %v (%s)\n", status.DetectionExists, status.Paths.Detection)
		fmt.Fprintf(out, "recognition:    %v (%s)\n", status.RecognitionExists, status.Paths.Recognition)
		fmt.Fprintf(out, "classification: %v (%s) [optional]\n", status.ClassificationExists, status.Paths.Classification)
		fmt.Fprintf(out, "dictionary:     %v (%s)\n", status.DictionaryExists, status.Paths.Dictionary)

		if missing := status.MissingRequired(); len(missing) > 0 {
			return fmt.Errorf("missing required model files: %v", missing)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(modelsCmd)
	modelsCmd.AddCommand(modelsPrepareCmd)
}
