package report

import (
	"fmt"
	"io"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	pdfmodel "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Inspection summarizes a generated PDF
type Inspection struct {
	Pages         int   `json:"pages"`
	ImagesPerPage []int `json:"images_per_page"`
}

// Sections returns the number of chart images after the title page
func (i *Inspection) Sections() int {
	n := 0
	for p, c := range i.ImagesPerPage {
		if p == 0 {
			continue
		}
		n += c
	}
	return n
}

// Inspect reads a PDF and counts its pages and per-page images
func Inspect(r io.ReadSeeker) (*Inspection, error) {
	ctx, err := api.ReadValidateAndOptimize(r, pdfmodel.NewDefaultConfiguration())
	if err != nil {
		return nil, fmt.Errorf("pdfcpu read: %w", err)
	}

	ins := &Inspection{Pages: ctx.PageCount}
	for pageNr := 1; pageNr <= ctx.PageCount; pageNr++ {
		ins.ImagesPerPage = append(ins.ImagesPerPage, len(pdfcpu.ImageObjNrs(ctx, pageNr)))
	}
	return ins, nil
}
