package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/ppiankov/surveyreport/internal/report"
	"github.com/spf13/cobra"
)

var inspectJSON bool

// inspectCmd represents the inspect command
var inspectCmd = &cobra.Command{
	Use:   "inspect <file.pdf>",
	Short: "Show the page and chart layout of a generated report",
	Long: `Inspect reads a PDF and prints its page count and the number of
images on each page. A report has a title page followed by pages of at
most two charts.

Example:
  surveyreport inspect reporte_buenos_aires.pdf`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)

	inspectCmd.Flags().BoolVar(&inspectJSON, "json", false, "print JSON")
}

func runInspect(cmd *cobra.Command, args []string) error {
	api.DisableConfigDir()

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("open %s: %w", args[0], err)
	}
	defer func() { _ = f.Close() }()

	ins, err := report.Inspect(f)
	if err != nil {
		return fmt.Errorf("inspect %s: %w", args[0], err)
	}

	out := cmd.OutOrStdout()
	if inspectJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(ins)
	}

	fmt.Fprintf(out, "File:     %s\n", args[0])
	fmt.Fprintf(out, "Pages:    %d\n", ins.Pages)
	fmt.Fprintf(out, "Charts:   %d\n", ins.Sections())
	for i, n := range ins.ImagesPerPage {
		fmt.Fprintf(out, "  page %d: %d image(s)\n", i+1, n)
	}
	return nil
}
