package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ppiankov/surveyreport/internal/pipeline"
	"github.com/ppiankov/surveyreport/internal/server"
	"github.com/spf13/cobra"
)

var serveAddr string

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the summary, charts and PDF over HTTP",
	Long: `Serve starts an HTTP server with:

  GET /health              liveness
  GET /api/summary         metrics and category counts as JSON
  GET /charts/{role}.png   one chart (sex, age_bracket, education_level, ...)
  GET /report.pdf          the PDF report as a download

Reports are generated one at a time. The spreadsheet is loaded once and
reloaded when its modification time changes.

Example:
  surveyreport serve --addr :8080`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default: server.addr from config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	p := pipeline.NewPipeline(cfg, logger)
	srv := server.New(p, logger.Named("server"))

	fmt.Fprintf(os.Stderr, "Serving survey report on %s\n", cfg.Server.Addr)
	if err := srv.ListenAndServe(ctx, cfg.Server); err != nil {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}
