package pipeline

import (
	"bytes"
	"encoding/json"
	"errors"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/ppiankov/surveyreport/internal/chart"
	"github.com/ppiankov/surveyreport/internal/model"
	"github.com/ppiankov/surveyreport/internal/source"
)

type staticLoader struct {
	table *model.RawTable
	err   error
	calls int
}

func (l *staticLoader) Load() (*model.RawTable, error) {
	l.calls++
	return l.table, l.err
}

// fakeCharts draws a small solid PNG and records the series it was asked for
type fakeCharts struct {
	series []chart.Series
	failOn string
}

func (f *fakeCharts) Render(s chart.Series) ([]byte, error) {
	f.series = append(f.series, s)
	if f.failOn != "" && s.Title == f.failOn {
		return nil, errors.New("backend exploded")
	}
	img := image.NewRGBA(image.Rect(0, 0, 16, 10))
	for x := 0; x < 16; x++ {
		for y := 0; y < 10; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: 100, B: 50, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func row(sex, age, edu, occ, income, indigenous string) []model.Cell {
	cell := func(s string) model.Cell {
		if s == "" {
			return model.Null()
		}
		return model.Text(s)
	}
	return []model.Cell{
		model.Text("2024-05-01"), model.Text("Buenos Aires"), model.Text("Centro"),
		cell(sex), cell(age), cell(edu), cell(occ), cell(income),
		model.Text("3"), cell(indigenous),
	}
}

func surveyTable() *model.RawTable {
	return &model.RawTable{
		Path:    "datosbuenosaires.xlsx",
		Headers: []string{"Fecha", "Cantón", "Distrito", "Sexo", "Edad", "Estudios", "Ocupación", "Ingreso", "Hogar", "Indígena"},
		Rows: [][]model.Cell{
			row("a) Femenino", "c) 36-40", "b) Secundaria", "Agricultor", "b) Entre ₡250,000 y ₡350,000", "a) Sí"),
			row("b) Masculino", "a) 18-25", "a) Primaria", "Pescador", "a) Menos de ₡200,000", "b) No"),
			row("a) Femenino", "d) 41-50", "b) Secundaria", "Comerciante", "e) Más de ₡600,000", "b) No"),
			row("a) Femenino", "a) 18-25", "c) Universitaria", "Agricultor", "f) No sabe", "a) Sí"),
			row("", "b) 26-35", "b) Secundaria", "Docente", "", ""),
		},
	}
}

func newTestPipeline(loader TableLoader, charts ChartRenderer) *Pipeline {
	return NewPipelineWith(model.DefaultConfig(), loader, charts, nil)
}

func TestPipeline_Analyze(t *testing.T) {
	p := newTestPipeline(&staticLoader{table: surveyTable()}, &fakeCharts{})

	a, err := p.Analyze()
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	if a.Metrics.Total != 5 {
		t.Errorf("expected 5 records, got %d", a.Metrics.Total)
	}
	if a.Metrics.IndigenousPercent != 40 {
		t.Errorf("expected 40%%, got %f", a.Metrics.IndigenousPercent)
	}

	wantSex := []model.CategoryCount{{Label: "Femenino", Count: 3}, {Label: "Masculino", Count: 1}}
	if diff := cmp.Diff(wantSex, a.Metrics.SexCounts); diff != "" {
		t.Errorf("sex counts mismatch (-want +got):\n%s", diff)
	}

	age, _ := a.Category(model.RoleAgeBracket)
	if diff := cmp.Diff([]string{"18-25", "26-35", "36-40", "41-50"}, age.Order); diff != "" {
		t.Errorf("age order mismatch (-want +got):\n%s", diff)
	}

	income, _ := a.Category(model.RoleMonthlyIncomeBracket)
	wantIncome := []string{"Menos de ₡200,000", "Entre ₡250,000 y ₡350,000", "Más de ₡600,000"}
	if diff := cmp.Diff(wantIncome, income.Order); diff != "" {
		t.Errorf("income order mismatch (-want +got):\n%s", diff)
	}

	if len(a.Categories) != len(DefaultPanel()) {
		t.Errorf("expected %d categories, got %d", len(DefaultPanel()), len(a.Categories))
	}
}

func TestPipeline_BuildReport(t *testing.T) {
	charts := &fakeCharts{}
	p := newTestPipeline(&staticLoader{table: surveyTable()}, charts)

	result, err := p.BuildReport()
	if err != nil {
		t.Fatalf("BuildReport failed: %v", err)
	}

	if len(charts.series) != 6 {
		t.Fatalf("expected 6 charts, got %d", len(charts.series))
	}
	// 1 title page + 6 sections at 2 per page
	if len(result.Document.Pages) != 4 {
		t.Errorf("expected 4 pages, got %d", len(result.Document.Pages))
	}
	if !bytes.HasPrefix(result.PDF, []byte("%PDF-")) {
		t.Error("expected PDF output")
	}
	if len(result.Skipped) != 0 {
		t.Errorf("expected no skipped charts, got %v", result.Skipped)
	}

	// bars follow the category order
	edu := charts.series[2]
	if diff := cmp.Diff([]string{"Secundaria", "Primaria", "Universitaria"}, edu.Labels); diff != "" {
		t.Errorf("education bars mismatch (-want +got):\n%s", diff)
	}
}

func TestPipeline_SkipsEmptyChart(t *testing.T) {
	table := surveyTable()
	for i := range table.Rows {
		table.Rows[i][7] = model.Text("No sabe")
	}
	p := newTestPipeline(&staticLoader{table: table}, &fakeCharts{})

	result, err := p.BuildReport()
	if err != nil {
		t.Fatalf("BuildReport failed: %v", err)
	}
	if diff := cmp.Diff([]string{"E. Nivel de Ingresos Mensuales"}, result.Skipped); diff != "" {
		t.Errorf("skipped mismatch (-want +got):\n%s", diff)
	}
	// 5 sections -> 2+2+1
	if len(result.Document.Pages) != 4 {
		t.Errorf("expected 4 pages, got %d", len(result.Document.Pages))
	}
	if result.Document.SectionCount() != 5 {
		t.Errorf("expected 5 sections, got %d", result.Document.SectionCount())
	}
}

func TestPipeline_DataSourceError(t *testing.T) {
	loader := &staticLoader{err: &model.DataSourceError{Path: "datosbuenosaires.xlsx", Err: source.ErrNotFound}}
	p := newTestPipeline(loader, &fakeCharts{})

	_, err := p.BuildReport()

	var dsErr *model.DataSourceError
	if !errors.As(err, &dsErr) {
		t.Fatalf("expected DataSourceError, got %v", err)
	}
}

func TestPipeline_ConfigurationError(t *testing.T) {
	table := surveyTable()
	table.Headers = table.Headers[:8]
	for i := range table.Rows {
		table.Rows[i] = table.Rows[i][:8]
	}
	p := newTestPipeline(&staticLoader{table: table}, &fakeCharts{})

	_, err := p.BuildReport()

	var cfgErr *model.ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigurationError, got %v", err)
	}
	if cfgErr.Index != 9 {
		t.Errorf("expected index 9, got %d", cfgErr.Index)
	}
}

func TestPipeline_ChartFailureIsRenderError(t *testing.T) {
	charts := &fakeCharts{failOn: "C. Nivel Académico"}
	p := newTestPipeline(&staticLoader{table: surveyTable()}, charts)

	_, err := p.BuildReport()

	var renderErr *model.RenderError
	if !errors.As(err, &renderErr) {
		t.Fatalf("expected RenderError, got %v", err)
	}
	if renderErr.Index != 2 {
		t.Errorf("expected section 2, got %d", renderErr.Index)
	}
}

func TestPipeline_RealCharts(t *testing.T) {
	p := newTestPipeline(&staticLoader{table: surveyTable()}, chart.NewRenderer(480, 320))

	result, err := p.BuildReport()
	if err != nil {
		t.Fatalf("BuildReport failed: %v", err)
	}
	if result.Document.SectionCount() != 6 {
		t.Errorf("expected 6 sections, got %d", result.Document.SectionCount())
	}
}

func TestPipeline_Chart(t *testing.T) {
	charts := &fakeCharts{}
	p := newTestPipeline(&staticLoader{table: surveyTable()}, charts)

	a, err := p.Analyze()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := p.Chart(a, model.RoleOccupation); err != nil {
		t.Fatalf("Chart failed: %v", err)
	}
	if charts.series[0].Title != "D. Ocupación Principal (Top 10)" {
		t.Errorf("unexpected title %q", charts.series[0].Title)
	}
	if _, err := p.Chart(a, model.Role("hobby")); err == nil {
		t.Error("expected error for unknown role")
	}
}

func TestRenderer_Summary(t *testing.T) {
	p := newTestPipeline(&staticLoader{table: surveyTable()}, &fakeCharts{})
	a, err := p.Analyze()
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	NewRenderer().RenderSummary(&buf, a)
	out := buf.String()

	for _, want := range []string{"Total de encuestados:     5", "40.0%", "Femenino", "Menos de ₡200,000"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
}

func TestRenderer_JSON(t *testing.T) {
	p := newTestPipeline(&staticLoader{table: surveyTable()}, &fakeCharts{})
	a, err := p.Analyze()
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := NewRenderer().RenderJSON(&buf, a); err != nil {
		t.Fatal(err)
	}

	var decoded struct {
		Metrics    model.SummaryMetrics `json:"metrics"`
		Categories []RoleSummary        `json:"categories"`
	}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if decoded.Metrics.Total != 5 {
		t.Errorf("expected total 5, got %d", decoded.Metrics.Total)
	}
	if len(decoded.Categories) != 6 {
		t.Errorf("expected 6 categories, got %d", len(decoded.Categories))
	}
}
