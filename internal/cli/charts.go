package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ppiankov/surveyreport/internal/pipeline"
	"github.com/spf13/cobra"
)

var chartsDir string

// chartsCmd represents the charts command
var chartsCmd = &cobra.Command{
	Use:   "charts",
	Short: "Write every chart as a PNG file",
	Long: `Charts renders the same bar charts used in the PDF and writes one
PNG per field, named after its role (sex.png, age_bracket.png, ...).
Fields with no data are skipped.

Example:
  surveyreport charts --dir ./charts`,
	Args: cobra.NoArgs,
	RunE: runCharts,
}

func init() {
	rootCmd.AddCommand(chartsCmd)

	chartsCmd.Flags().StringVarP(&chartsDir, "dir", "d", "", "output directory (default: charts.dir from config)")
}

func runCharts(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if chartsDir != "" {
		cfg.Charts.Dir = chartsDir
	}

	p := pipeline.NewPipeline(cfg, logger)
	a, err := p.Analyze()
	if err != nil {
		return fmt.Errorf("charts failed: %w", err)
	}

	if err := os.MkdirAll(cfg.Charts.Dir, 0755); err != nil {
		return fmt.Errorf("create %s: %w", cfg.Charts.Dir, err)
	}

	written := 0
	for _, panel := range pipeline.DefaultPanel() {
		summary, _ := a.Category(panel.Role)
		if len(summary.Counts) == 0 {
			fmt.Fprintf(os.Stderr, "⚠ Skipped %q (no data)\n", panel.Caption)
			continue
		}

		img, err := p.Chart(a, panel.Role)
		if err != nil {
			return err
		}
		path := filepath.Join(cfg.Charts.Dir, string(panel.Role)+".png")
		if err := os.WriteFile(path, img, 0644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ %s\n", path)
		}
		written++
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote %d charts to %s\n", written, cfg.Charts.Dir)
	return nil
}
