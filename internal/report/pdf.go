package report

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/ppiankov/surveyreport/internal/model"
	"go.uber.org/zap"
)

// A4 portrait geometry in millimetres
const (
	pageMargin    = 15.0
	captionHeight = 8.0
	captionGap    = 2.0
	slotPadding   = 6.0
	logoWidth     = 40.0
	logoMaxHeight = 40.0
	itemHeight    = 8.0
)

// Assemble lays out and encodes the report in one step
func (a *Assembler) Assemble(metrics model.SummaryMetrics, sections []model.Section) (*model.ReportDocument, []byte, error) {
	doc, err := a.Layout(metrics, sections)
	if err != nil {
		return nil, nil, err
	}

	var buf bytes.Buffer
	if err := a.Encode(doc, &buf); err != nil {
		return nil, nil, err
	}
	return doc, buf.Bytes(), nil
}

// Encode writes the document as PDF. Image pages are divided into fixed slots
// so a caption always sits on the same page as its chart.
func (a *Assembler) Encode(doc *model.ReportDocument, w io.Writer) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetTitle(doc.Title, true)
	pdf.SetAuthor(doc.Organization, true)
	pdf.SetCreator("surveyreport", false)
	created := a.opts.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}
	pdf.SetCreationDate(created)
	pdf.SetModificationDate(created)

	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)

	enc := &encoder{pdf: pdf, tr: tr, logger: a.logger}

	section := 0
	for i, page := range doc.Pages {
		pdf.AddPage()
		if i == 0 {
			// the title page never breaks; items shrink to fit instead
			pdf.SetAutoPageBreak(false, 0)
			enc.titlePage(page)
			pdf.SetAutoPageBreak(true, pageMargin)
		} else {
			for slot, img := range page.Images() {
				if err := enc.imageSlot(section, slot, img); err != nil {
					return err
				}
				section++
			}
		}
		if pdf.Err() {
			return fmt.Errorf("write page %d: %w", i+1, pdf.Error())
		}
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

type encoder struct {
	pdf    *fpdf.Fpdf
	tr     func(string) string
	logger *zap.Logger
}

func (e *encoder) titlePage(page model.Page) {
	pdf := e.pdf
	_, pageH := pdf.GetPageSize()

	items := 0
	for _, b := range page.Blocks {
		if b.Kind == model.BlockItem {
			items++
		}
	}
	lineH, fontSize := itemHeight, 12.0

	for _, b := range page.Blocks {
		switch b.Kind {
		case model.BlockTitle:
			pdf.SetFont("Helvetica", "B", 16)
			pdf.CellFormat(0, 10, e.tr(b.Text), "", 1, "C", false, 0, "")
		case model.BlockSubtitle:
			pdf.SetFont("Helvetica", "", 12)
			pdf.CellFormat(0, 8, e.tr(b.Text), "", 1, "C", false, 0, "")
			pdf.Ln(6)
		case model.BlockLogo:
			e.logo(b.Image)
		case model.BlockMetric:
			pdf.SetFont("Helvetica", "", 12)
			pdf.CellFormat(0, 10, e.tr(b.Key+": "+b.Value), "", 1, "L", false, 0, "")
		case model.BlockHeading:
			pdf.Ln(6)
			pdf.SetFont("Helvetica", "B", 14)
			pdf.CellFormat(0, 10, e.tr(b.Text+":"), "", 1, "L", false, 0, "")
			lineH, fontSize = itemLayout(pageH-pageMargin-pdf.GetY(), items)
		case model.BlockItem:
			pdf.SetFont("Helvetica", "", fontSize)
			pdf.CellFormat(0, lineH, e.tr("- "+b.Text), "", 1, "L", false, 0, "")
		}
	}
}

// logo embeds the branding image; failures are logged and cleared
func (e *encoder) logo(img *model.ImageBlock) {
	pdf := e.pdf
	opts := fpdf.ImageOptions{ImageType: imageType(img.Format)}
	pdf.RegisterImageOptionsReader("logo", opts, bytes.NewReader(img.Data))
	if pdf.Err() {
		e.logger.Warn("branding logo skipped", zap.Error(pdf.Error()))
		pdf.ClearError()
		return
	}
	pageW, _ := pdf.GetPageSize()
	w, h := fit(float64(img.Width), float64(img.Height), logoWidth, logoMaxHeight)
	pdf.ImageOptions("logo", (pageW-w)/2, pdf.GetY(), w, h, true, opts, 0, "")
	pdf.Ln(4)
}

// imageSlot draws caption and chart inside the slot'th half of the page
func (e *encoder) imageSlot(index, slot int, img *model.ImageBlock) error {
	pdf := e.pdf
	pageW, pageH := pdf.GetPageSize()
	contentW := pageW - 2*pageMargin
	slotH := (pageH - 2*pageMargin) / SectionsPerPage
	top := pageMargin + float64(slot)*slotH

	name := fmt.Sprintf("section-%d", index)
	opts := fpdf.ImageOptions{ImageType: imageType(img.Format)}
	pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(img.Data))
	if pdf.Err() {
		err := pdf.Error()
		pdf.ClearError()
		return &model.RenderError{Index: index, Caption: img.Caption, Err: err}
	}

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(pageMargin, top)
	pdf.CellFormat(contentW, captionHeight, e.tr(img.Caption), "", 0, "L", false, 0, "")

	boxW := contentW
	boxH := slotH - captionHeight - captionGap - slotPadding
	w, h := fit(float64(img.Width), float64(img.Height), boxW, boxH)
	x := pageMargin + (boxW-w)/2
	y := top + captionHeight + captionGap

	pdf.ImageOptions(name, x, y, w, h, false, opts, 0, "")
	if pdf.Err() {
		err := pdf.Error()
		pdf.ClearError()
		return &model.RenderError{Index: index, Caption: img.Caption, Err: err}
	}
	return nil
}

// itemLayout shares the space left on the title page between n items.
// Line height never exceeds itemHeight; font size follows it.
func itemLayout(avail float64, n int) (lineH, fontSize float64) {
	lineH = itemHeight
	if n > 0 && avail/float64(n) < lineH {
		lineH = avail / float64(n)
	}
	if lineH < 1 {
		lineH = 1
	}
	return lineH, 12 * lineH / itemHeight
}

// fit scales (w, h) to the largest size inside (maxW, maxH) keeping aspect ratio
func fit(w, h, maxW, maxH float64) (float64, float64) {
	scale := maxW / w
	if h*scale > maxH {
		scale = maxH / h
	}
	return w * scale, h * scale
}

func imageType(format string) string {
	switch format {
	case "jpeg":
		return "JPG"
	case "gif":
		return "GIF"
	default:
		return "PNG"
	}
}
