package pipeline

import (
	"errors"
	"fmt"
	"time"

	"github.com/ppiankov/surveyreport/internal/cache"
	"github.com/ppiankov/surveyreport/internal/chart"
	"github.com/ppiankov/surveyreport/internal/model"
	"github.com/ppiankov/surveyreport/internal/normalize"
	"github.com/ppiankov/surveyreport/internal/report"
	"github.com/ppiankov/surveyreport/internal/source"
	"go.uber.org/zap"
)

// TableLoader supplies the raw survey table
type TableLoader interface {
	Load() (*model.RawTable, error)
}

// ChartRenderer draws one chart as an image
type ChartRenderer interface {
	Render(s chart.Series) ([]byte, error)
}

// Pipeline orchestrates load, normalization, charting and report assembly
type Pipeline struct {
	loader    TableLoader
	charts    ChartRenderer
	assembler *report.Assembler
	panel     []Panel
	config    *model.Config
	logger    *zap.Logger
}

// NewPipeline creates a pipeline wired to the spreadsheet loader and chart renderer
func NewPipeline(cfg *model.Config, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}

	var tables cache.TableCache = cache.NopCache{}
	if cfg.Cache.Enabled {
		tables = cache.NewMemoryCache(cfg.Cache.TTL, 10*time.Minute)
	}

	loader := source.NewLoader(cfg.Input, tables, cfg.Cache.TTL, logger.Named("source"))
	charts := chart.NewRenderer(cfg.Charts.Width, cfg.Charts.Height)
	return NewPipelineWith(cfg, loader, charts, logger)
}

// NewPipelineWith creates a pipeline with explicit collaborators
func NewPipelineWith(cfg *model.Config, loader TableLoader, charts ChartRenderer, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	assembler := report.NewAssembler(report.Options{
		Title:        cfg.Report.Title,
		Organization: cfg.Report.Organization,
		LogoPath:     cfg.Report.Logo,
		CreatedAt:    cfg.Report.CreatedAt,
	}, logger.Named("report"))

	return &Pipeline{
		loader:    loader,
		charts:    charts,
		assembler: assembler,
		panel:     DefaultPanel(),
		config:    cfg,
		logger:    logger,
	}
}

// RoleSummary is the chart data of one role
type RoleSummary struct {
	Role    model.Role            `json:"role"`
	Caption string                `json:"caption"`
	Order   []string              `json:"order"`
	Counts  []model.CategoryCount `json:"counts"`
}

// Analysis is the normalized survey with its derived figures
type Analysis struct {
	Source     string                   `json:"source"`
	Records    model.CanonicalRecordSet `json:"-"`
	Metrics    model.SummaryMetrics     `json:"metrics"`
	Categories []RoleSummary            `json:"categories"`
}

// Category returns the summary of a role
func (a *Analysis) Category(role model.Role) (RoleSummary, bool) {
	for _, c := range a.Categories {
		if c.Role == role {
			return c, true
		}
	}
	return RoleSummary{}, false
}

// ReportResult contains the assembled report
type ReportResult struct {
	Analysis *Analysis
	Document *model.ReportDocument
	PDF      []byte
	Skipped  []string // captions of charts with nothing to draw
}

// Analyze loads the survey table, normalizes it and computes metrics and
// category orderings.
func (p *Pipeline) Analyze() (*Analysis, error) {
	raw, err := p.loader.Load()
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}

	records, err := normalize.Normalize(raw, p.config.Columns.RoleMap())
	if err != nil {
		return nil, fmt.Errorf("normalize %s: %w", raw.Path, err)
	}

	a := &Analysis{
		Source:  raw.Path,
		Records: records,
		Metrics: normalize.ComputeMetrics(records, p.config.Report.Affirmative),
	}
	for _, panel := range p.panel {
		order := normalize.OrderFor(panel.Role, records)
		a.Categories = append(a.Categories, RoleSummary{
			Role:    panel.Role,
			Caption: panel.Caption,
			Order:   order,
			Counts:  normalize.Counts(panel.Role, records, order),
		})
	}

	p.logger.Debug("survey analyzed",
		zap.String("source", raw.Path),
		zap.Int("records", a.Metrics.Total),
		zap.Float64("indigenous_percent", a.Metrics.IndigenousPercent))

	return a, nil
}

// Sections renders every panel chart in report order. Charts with no data are
// skipped and their captions returned.
func (p *Pipeline) Sections(a *Analysis) ([]model.Section, []string, error) {
	var sections []model.Section
	var skipped []string

	for _, panel := range p.panel {
		summary, _ := a.Category(panel.Role)
		if len(summary.Counts) == 0 {
			p.logger.Warn("chart has no data, skipping", zap.String("role", string(panel.Role)))
			skipped = append(skipped, panel.Caption)
			continue
		}

		img, err := p.charts.Render(seriesFor(panel, summary))
		if err != nil {
			return nil, nil, &model.RenderError{Index: len(sections), Caption: panel.Caption, Err: err}
		}
		sections = append(sections, model.Section{Caption: panel.Caption, Image: img})
	}

	return sections, skipped, nil
}

// Chart renders the chart of a single role
func (p *Pipeline) Chart(a *Analysis, role model.Role) ([]byte, error) {
	panel, ok := PanelFor(role)
	if !ok {
		return nil, fmt.Errorf("no chart for role %s", role)
	}
	summary, _ := a.Category(role)
	img, err := p.charts.Render(seriesFor(panel, summary))
	if err != nil {
		return nil, fmt.Errorf("chart %s: %w", role, err)
	}
	return img, nil
}

// BuildReport runs the whole pipeline and returns the PDF
func (p *Pipeline) BuildReport() (*ReportResult, error) {
	a, err := p.Analyze()
	if err != nil {
		return nil, err
	}

	sections, skipped, err := p.Sections(a)
	if err != nil {
		return nil, err
	}

	doc, pdf, err := p.assembler.Assemble(a.Metrics, sections)
	if err != nil {
		var renderErr *model.RenderError
		if errors.As(err, &renderErr) {
			p.logger.Error("report section failed",
				zap.Int("section", renderErr.Index),
				zap.String("caption", renderErr.Caption),
				zap.Error(renderErr.Err))
		}
		return nil, fmt.Errorf("assemble: %w", err)
	}

	p.logger.Info("report assembled",
		zap.Int("pages", len(doc.Pages)),
		zap.Int("sections", len(sections)),
		zap.Int("bytes", len(pdf)))

	return &ReportResult{
		Analysis: a,
		Document: doc,
		PDF:      pdf,
		Skipped:  skipped,
	}, nil
}

func seriesFor(panel Panel, summary RoleSummary) chart.Series {
	s := chart.Series{
		Title:   panel.Caption,
		Palette: panel.Palette,
	}
	for _, c := range summary.Counts {
		s.Labels = append(s.Labels, c.Label)
		s.Values = append(s.Values, float64(c.Count))
	}
	return s
}
