package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/ppiankov/surveyreport/internal/report"
)

// Renderer writes analysis results for terminals and scripts
type Renderer struct{}

// NewRenderer creates a renderer
func NewRenderer() *Renderer {
	return &Renderer{}
}

// RenderJSON writes the analysis as indented JSON
func (r *Renderer) RenderJSON(w io.Writer, a *Analysis) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(a); err != nil {
		return fmt.Errorf("encode summary: %w", err)
	}
	return nil
}

// RenderSummary prints the key figures and category tables with aligned columns
func (r *Renderer) RenderSummary(w io.Writer, a *Analysis) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "═══════════════════════════════════════════════════════════")
	fmt.Fprintln(w, "  Perfil Socioeconómico")
	fmt.Fprintln(w, "═══════════════════════════════════════════════════════════")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  Fuente:                   %s\n", a.Source)
	fmt.Fprintf(w, "  Total de encuestados:     %d\n", a.Metrics.Total)
	fmt.Fprintf(w, "  Identificación indígena:  %s\n", report.FormatPercent(a.Metrics.IndigenousPercent))
	fmt.Fprintln(w)

	for _, c := range a.Categories {
		fmt.Fprintf(w, "  %s\n", c.Caption)
		fmt.Fprintf(w, "  %s\n", strings.Repeat("─", runewidth.StringWidth(c.Caption)))
		if len(c.Counts) == 0 {
			fmt.Fprintln(w, "    (sin datos)")
			fmt.Fprintln(w)
			continue
		}

		width := 0
		for _, cc := range c.Counts {
			if n := runewidth.StringWidth(cc.Label); n > width {
				width = n
			}
		}
		if width > 48 {
			width = 48
		}
		for _, cc := range c.Counts {
			label := runewidth.Truncate(cc.Label, width, "…")
			fmt.Fprintf(w, "    %s  %5d\n", runewidth.FillRight(label, width), cc.Count)
		}
		fmt.Fprintln(w)
	}
}
