package cli

import (
	"fmt"
	"os"

	"github.com/ppiankov/surveyreport/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	reportOut  string
	reportLogo string
)

// reportCmd represents the report command
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate the executive PDF report",
	Long: `Report loads the survey spreadsheet, normalizes the six categorical
fields, renders one bar chart per field and assembles the PDF:
a title page with the key figures, then two charts per page.

Example:
  surveyreport report
  surveyreport report --input "Encuesta Buenos Aires 2024.xlsx" --out reporte.pdf`,
	Args: cobra.NoArgs,
	RunE: runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().StringVarP(&reportOut, "out", "o", "", "output PDF path (default: report.output from config)")
	reportCmd.Flags().StringVar(&reportLogo, "logo", "", "optional branding image for the title page")
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if reportOut != "" {
		cfg.Report.Output = reportOut
	}
	if reportLogo != "" {
		cfg.Report.Logo = reportLogo
	}

	p := pipeline.NewPipeline(cfg, logger)
	result, err := p.BuildReport()
	if err != nil {
		return fmt.Errorf("report failed: %w", err)
	}

	if err := os.WriteFile(cfg.Report.Output, result.PDF, 0644); err != nil {
		return fmt.Errorf("write %s: %w", cfg.Report.Output, err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Loaded %d responses from %s\n", result.Analysis.Metrics.Total, result.Analysis.Source)
		fmt.Fprintf(os.Stderr, "✓ Rendered %d charts\n", result.Document.SectionCount())
		for _, caption := range result.Skipped {
			fmt.Fprintf(os.Stderr, "⚠ Skipped %q (no data)\n", caption)
		}
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Report written: %s (%d pages)\n", cfg.Report.Output, len(result.Document.Pages))
	return nil
}
