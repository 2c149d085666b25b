package cmd

import (
	"encoding/json"
	"fmt"
	"image"
	"log/slog"
	"os"
	"strings"

	"github.com/MeKo-Christian/pogo/internal/config"
	"github.com/MeKo-Christian/pogo/internal/pipeline"
	"github.com/MeKo-Christian/pogo/internal/utils"
	"github.com/spf13/cobra"
)

// imageCmd groups the per-image OCR operations.
var imageCmd = &cobra.Command{
	Use:   "image",
	Short: "Process images for OCR text detection and recognition",
	Long: `Process images through the full OCR pipeline: detection,
optional rotation classification, and text recognition.

Supported formats: JPEG, PNG, BMP

Examples:
  pogo image detect photo.jpg
  pogo image detect photo.jpg --format json --all-scores
  pogo image has-text photo.jpg`,
}

// detectCmd detects and recognizes text in one or more images.
var detectCmd = &cobra.Command{
	Use:          "detect [files...]",
	Short:        "Detect and recognize text in one or more images",
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()

		format := cfg.Output.Format
		if v, _ := cmd.Flags().GetString("format"); v != "" {
			format = v
		}
		includeAll, _ := cmd.Flags().GetBool("all-scores")
		outputFile, _ := cmd.Flags().GetString("output")

		pl, err := buildPipeline(cfg)
		if err != nil {
			return err
		}
		defer func() { _ = pl.Close() }()

		var outputs []string
		for _, path := range args {
			img, _, err := utils.LoadImage(path)
			if err != nil {
				return fmt.Errorf("failed to load %s: %w", path, err)
			}
			warnLowQuality(path, img)

			res, err := pl.ProcessImage(img)
			if err != nil {
				return fmt.Errorf("OCR failed for %s: %w", path, err)
			}

			lines := filterLines(res.Lines, includeAll, pl.Config())
			s, err := renderLines(path, lines, format)
			if err != nil {
				return err
			}
			outputs = append(outputs, s)
		}

		final := strings.Join(outputs, "\n")
		return writeOutput(cmd, outputFile, final)
	},
}

// hasTextCmd quick-checks an image for confidently recognizable text.
var hasTextCmd = &cobra.Command{
	Use:          "has-text [file]",
	Short:        "Quick-check whether an image contains confidently recognizable text",
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()

		pl, err := buildPipeline(cfg)
		if err != nil {
			return err
		}
		defer func() { _ = pl.Close() }()

		img, _, err := utils.LoadImage(args[0])
		if err != nil {
			return fmt.Errorf("failed to load %s: %w", args[0], err)
		}

		hasText, err := pl.HasHighConfidenceText(img)
		if err != nil {
			return fmt.Errorf("has-text check failed for %s: %w", args[0], err)
		}

		_, err = fmt.Fprintln(cmd.OutOrStdout(), hasText)
		return err
	},
}

// warnLowQuality logs a warning when an input image is grayscale, since
// low-contrast scans tend to under-detect text.
func warnLowQuality(path string, img image.Image) {
	q := utils.AssessImageQuality(img)
	if q.IsGrayscale {
		slog.Warn("grayscale input image, detection confidence may be lower", "path", path)
	}
}

// buildPipeline constructs a Pipeline from the resolved CLI/config
// settings: models directory, thread count, and GPU switch.
func buildPipeline(cfg *config.Config) (*pipeline.Pipeline, error) {
	b := pipeline.NewBuilder(cfg.ModelsDir).
		WithThreads(cfg.Pipeline.Detector.NumThreads).
		WithGPU(cfg.GPU.Enabled)
	pl, err := b.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build OCR pipeline: %w", err)
	}
	return pl, nil
}

// filterLines applies the confidence cutoff: FallbackMinRecognitionScore
// when includeAll is set, MinRecognitionScore otherwise.
func filterLines(lines []pipeline.Line, includeAll bool, cfg pipeline.Config) []pipeline.Line {
	threshold := cfg.MinRecognitionScore
	if includeAll {
		threshold = cfg.FallbackMinRecognitionScore
	}
	out := make([]pipeline.Line, 0, len(lines))
	for _, l := range lines {
		if l.Confidence >= threshold {
			out = append(out, l)
		}
	}
	return out
}

func renderLines(path string, lines []pipeline.Line, format string) (string, error) {
	switch format {
	case "json":
		type point struct{ X, Y float64 }
		type charBox struct {
			Text       string
			Confidence float64
			Points     [4]point
		}
		type region struct {
			Text       string
			Confidence float64
			Points     [4]point
			Bounds     struct{ Left, Top, Right, Bottom float64 }
			Chars      []charBox
		}
		regions := make([]region, 0, len(lines))
		for _, l := range lines {
			var r region
			r.Text = l.Text
			r.Confidence = l.Confidence
			for i, p := range l.Box {
				r.Points[i] = point{p.X, p.Y}
			}
			r.Bounds.Left, r.Bounds.Top = l.Box[0].X, l.Box[0].Y
			r.Bounds.Right, r.Bounds.Bottom = l.Box[0].X, l.Box[0].Y
			for _, p := range l.Box {
				if p.X < r.Bounds.Left {
					r.Bounds.Left = p.X
				}
				if p.X > r.Bounds.Right {
					r.Bounds.Right = p.X
				}
				if p.Y < r.Bounds.Top {
					r.Bounds.Top = p.Y
				}
				if p.Y > r.Bounds.Bottom {
					r.Bounds.Bottom = p.Y
				}
			}
			for _, c := range l.Chars {
				cb := charBox{Text: c.Text, Confidence: c.Confidence}
				for i, p := range c.Points {
					cb.Points[i] = point{p.X, p.Y}
				}
				r.Chars = append(r.Chars, cb)
			}
			regions = append(regions, r)
		}
		bts, err := json.MarshalIndent(struct {
			File    string
			Regions []region
		}{File: path, Regions: regions}, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to marshal JSON: %w", err)
		}
		return string(bts), nil
	default:
		var b strings.Builder
		fmt.Fprintf(&b, "%s:\n", path)
		for _, l := range lines {
			fmt.Fprintf(&b, "  %.2f\t%s\n", l.Confidence, l.Text)
		}
		return b.String(), nil
	}
}

func writeOutput(cmd *cobra.Command, outputFile, final string) error {
	if outputFile == "" {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), final)
		return err
	}
	if err := os.WriteFile(outputFile, []byte(final), 0o600); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	_, err := fmt.Fprintf(cmd.OutOrStdout(), "Results written to %s\n", outputFile)
	return err
}

func init() {
	rootCmd.AddCommand(imageCmd)
	imageCmd.AddCommand(detectCmd)
	imageCmd.AddCommand(hasTextCmd)

	detectCmd.Flags().StringP("format", "f", "text", "output format (text, json)")
	detectCmd.Flags().StringP("output", "o", "", "output file (default: stdout)")
	detectCmd.Flags().Bool("all-scores", false, "include regions between the fallback and standard confidence cutoffs")
}

// GetImageCommand returns the image command for testing purposes.
func GetImageCommand() *cobra.Command {
	return imageCmd
}
