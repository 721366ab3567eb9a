package cli

import (
	"fmt"

	"github.com/ppiankov/surveyreport/internal/pipeline"
	"github.com/spf13/cobra"
)

var summaryJSON bool

// summaryCmd represents the summary command
var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print the survey figures without building the PDF",
	Long: `Summary prints the total number of responses, the indigenous
identification percentage and the ordered counts of every category.

Example:
  surveyreport summary
  surveyreport summary --json > summary.json`,
	Args: cobra.NoArgs,
	RunE: runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)

	summaryCmd.Flags().BoolVar(&summaryJSON, "json", false, "print JSON instead of tables")
}

func runSummary(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	a, err := pipeline.NewPipeline(cfg, logger).Analyze()
	if err != nil {
		return fmt.Errorf("summary failed: %w", err)
	}

	r := pipeline.NewRenderer()
	if summaryJSON {
		return r.RenderJSON(cmd.OutOrStdout(), a)
	}
	r.RenderSummary(cmd.OutOrStdout(), a)
	return nil
}
