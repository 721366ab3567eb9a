// Package report assembles the paginated survey report and writes it as PDF.
package report

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"time"

	"github.com/ppiankov/surveyreport/internal/model"
	"go.uber.org/zap"
)

// SectionsPerPage is how many chart sections share one page
const SectionsPerPage = 2

// Options configures the text and branding of the report
type Options struct {
	Title        string
	Organization string
	LogoPath     string    // optional; a missing logo is skipped
	CreatedAt    time.Time // zero = now
}

// Assembler builds report documents
type Assembler struct {
	opts   Options
	logger *zap.Logger
}

// NewAssembler creates an assembler
func NewAssembler(opts Options, logger *zap.Logger) *Assembler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Assembler{opts: opts, logger: logger}
}

// Layout builds the document model: a title page with the key figures, then
// the chart sections two per page in input order. A section whose image
// cannot be decoded fails the whole report with *model.RenderError.
func (a *Assembler) Layout(metrics model.SummaryMetrics, sections []model.Section) (*model.ReportDocument, error) {
	doc := &model.ReportDocument{
		Title:        a.opts.Title,
		Organization: a.opts.Organization,
		Pages:        []model.Page{a.titlePage(metrics)},
	}

	for i, s := range sections {
		img, err := decodeSection(s)
		if err != nil {
			return nil, &model.RenderError{Index: i, Caption: s.Caption, Err: err}
		}
		if i%SectionsPerPage == 0 {
			doc.Pages = append(doc.Pages, model.Page{})
		}
		page := &doc.Pages[len(doc.Pages)-1]
		page.Blocks = append(page.Blocks, model.Block{Kind: model.BlockImage, Image: img})
	}

	return doc, nil
}

func (a *Assembler) titlePage(m model.SummaryMetrics) model.Page {
	var p model.Page
	add := func(b model.Block) { p.Blocks = append(p.Blocks, b) }

	add(model.Block{Kind: model.BlockTitle, Text: a.opts.Title})
	if a.opts.Organization != "" {
		add(model.Block{Kind: model.BlockSubtitle, Text: a.opts.Organization})
	}
	if logo := a.loadLogo(); logo != nil {
		add(model.Block{Kind: model.BlockLogo, Image: logo})
	}

	add(model.Block{Kind: model.BlockMetric, Key: "Total de encuestados", Value: fmt.Sprintf("%d", m.Total)})
	add(model.Block{Kind: model.BlockMetric, Key: "Identificación indígena", Value: FormatPercent(m.IndigenousPercent)})

	add(model.Block{Kind: model.BlockHeading, Text: "Distribución por sexo"})
	for _, c := range m.SexCounts {
		add(model.Block{Kind: model.BlockItem, Text: fmt.Sprintf("%s: %d", c.Label, c.Count)})
	}

	return p
}

// loadLogo reads the optional branding image; any problem is only logged
func (a *Assembler) loadLogo() *model.ImageBlock {
	if a.opts.LogoPath == "" {
		return nil
	}
	data, err := os.ReadFile(a.opts.LogoPath)
	if err != nil {
		a.logger.Warn("branding logo unavailable", zap.String("path", a.opts.LogoPath), zap.Error(err))
		return nil
	}
	img, err := decodeImage("", data)
	if err != nil {
		a.logger.Warn("branding logo unreadable", zap.String("path", a.opts.LogoPath), zap.Error(err))
		return nil
	}
	return img
}

// FormatPercent renders a percentage with one decimal place
func FormatPercent(p float64) string {
	return fmt.Sprintf("%.1f%%", p)
}

func decodeSection(s model.Section) (*model.ImageBlock, error) {
	if len(s.Image) == 0 {
		return nil, fmt.Errorf("empty image payload")
	}
	return decodeImage(s.Caption, s.Image)
}

// decodeImage fully decodes the payload. The PDF writer embeds some PNGs
// without inflating them, so damaged pixel data must be caught here.
func decodeImage(caption string, data []byte) (*model.ImageBlock, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, fmt.Errorf("image has no pixels (%dx%d)", b.Dx(), b.Dy())
	}
	return &model.ImageBlock{
		Caption: caption,
		Format:  format,
		Data:    data,
		Width:   b.Dx(),
		Height:  b.Dy(),
	}, nil
}
