package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/ppiankov/surveyreport/internal/model"
	"github.com/ppiankov/surveyreport/internal/report"
	"github.com/spf13/viper"
	"github.com/xuri/excelize/v2"
)

func init() {
	api.DisableConfigDir()
}

// isolate points HOME at an empty dir and clears global flag and viper state
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	viper.Reset()
	cfgFile, inputPath, verbose = "", "", false
	reportOut, reportLogo, chartsDir = "", "", ""
	summaryJSON, inspectJSON = false, false
	t.Cleanup(viper.Reset)
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := Execute()
	return out.String(), err
}

func writeSurvey(t *testing.T, path string) {
	t.Helper()

	rows := [][]interface{}{
		{"Fecha", "Cantón", "Distrito", "Sexo", "Edad", "Estudios", "Ocupación", "Ingreso", "Hogar", "Indígena"},
		{"2024-05-01", "Buenos Aires", "Centro", "a) Femenino", "b) 26-35", "b) Secundaria", "Agricultor", "a) Menos de ₡200,000", 4, "a) Sí"},
		{"2024-05-01", "Buenos Aires", "Volcán", "b) Masculino", "a) 18-25", "a) Primaria", "Pescador", "e) Más de ₡600,000", 3, "b) No"},
		{"2024-05-02", "Buenos Aires", "Centro", "a) Femenino", "a) 18-25", "b) Secundaria", "Agricultor", "b) Entre ₡250,000 y ₡350,000", 5, "b) No"},
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatal(err)
		}
		r := row
		if err := f.SetSheetRow("Sheet1", cell, &r); err != nil {
			t.Fatal(err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}
}

func TestVersion(t *testing.T) {
	isolate(t)

	out, err := execute(t, "version")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if !strings.Contains(out, "surveyreport v") {
		t.Errorf("unexpected version output %q", out)
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}
	want := model.DefaultConfig()
	if cfg.Input.Path != want.Input.Path {
		t.Errorf("expected %s, got %s", want.Input.Path, cfg.Input.Path)
	}
	if cfg.Server.ReadTimeout != want.Server.ReadTimeout {
		t.Errorf("expected %v, got %v", want.Server.ReadTimeout, cfg.Server.ReadTimeout)
	}
	if cfg.Columns.IndigenousIdentity != 9 {
		t.Errorf("expected column 9, got %d", cfg.Columns.IndigenousIdentity)
	}
}

func TestLoadConfig_FileEnvAndFlags(t *testing.T) {
	isolate(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
columns:
  indigenous_identity: 8
report:
  title: Encuesta Volcán
  created_at: 2024-06-01T00:00:00Z
cache:
  ttl: 5m
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	viper.SetConfigFile(path)
	if err := viper.ReadInConfig(); err != nil {
		t.Fatal(err)
	}
	t.Setenv("SURVEYREPORT_REPORT_OUTPUT", "volcan.pdf")
	viper.SetEnvPrefix("SURVEYREPORT")
	viper.SetEnvKeyReplacer(envKeyReplacer)
	viper.AutomaticEnv()
	inputPath = "volcan.xlsx"

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}

	if cfg.Columns.IndigenousIdentity != 8 {
		t.Errorf("expected column 8 from file, got %d", cfg.Columns.IndigenousIdentity)
	}
	if cfg.Columns.Sex != 3 {
		t.Errorf("expected default column 3, got %d", cfg.Columns.Sex)
	}
	if cfg.Report.Title != "Encuesta Volcán" {
		t.Errorf("unexpected title %q", cfg.Report.Title)
	}
	if !cfg.Report.CreatedAt.Equal(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected created_at %v", cfg.Report.CreatedAt)
	}
	if cfg.Cache.TTL != 5*time.Minute {
		t.Errorf("expected 5m ttl, got %v", cfg.Cache.TTL)
	}
	if cfg.Report.Output != "volcan.pdf" {
		t.Errorf("expected output from env, got %q", cfg.Report.Output)
	}
	if cfg.Input.Path != "volcan.xlsx" {
		t.Errorf("expected input from flag, got %q", cfg.Input.Path)
	}
}

func TestReport_EndToEnd(t *testing.T) {
	isolate(t)

	dir := t.TempDir()
	input := filepath.Join(dir, "datosbuenosaires.xlsx")
	output := filepath.Join(dir, "reporte.pdf")
	writeSurvey(t, input)

	out, err := execute(t, "report", "--input", input, "--out", output)
	if err != nil {
		t.Fatalf("report failed: %v", err)
	}
	if !strings.Contains(out, "Report written") {
		t.Errorf("unexpected output %q", out)
	}

	f, err := os.Open(output)
	if err != nil {
		t.Fatalf("report not written: %v", err)
	}
	defer func() { _ = f.Close() }()

	ins, err := report.Inspect(f)
	if err != nil {
		t.Fatalf("inspect failed: %v", err)
	}
	// title page + 6 charts at 2 per page
	if ins.Pages != 4 {
		t.Errorf("expected 4 pages, got %d", ins.Pages)
	}
}

func TestReport_MissingFile(t *testing.T) {
	isolate(t)

	dir := t.TempDir()
	_, err := execute(t, "report", "--input", filepath.Join(dir, "nada.xlsx"), "--out", filepath.Join(dir, "r.pdf"))
	if err == nil {
		t.Fatal("expected error for missing survey")
	}
	if !strings.Contains(err.Error(), model.NoDataMessage) {
		t.Errorf("expected no-data message, got %v", err)
	}
	if _, statErr := os.Stat(filepath.Join(dir, "r.pdf")); statErr == nil {
		t.Error("no PDF should be written")
	}
}

func TestSummary_JSON(t *testing.T) {
	isolate(t)

	input := filepath.Join(t.TempDir(), "datosbuenosaires.xlsx")
	writeSurvey(t, input)

	out, err := execute(t, "summary", "--input", input, "--json")
	if err != nil {
		t.Fatalf("summary failed: %v", err)
	}
	if !strings.Contains(out, `"total": 3`) {
		t.Errorf("expected total 3 in JSON:\n%s", out)
	}
}

func TestCharts_WritesPNGs(t *testing.T) {
	isolate(t)

	dir := t.TempDir()
	input := filepath.Join(dir, "datosbuenosaires.xlsx")
	writeSurvey(t, input)
	chartDir := filepath.Join(dir, "charts")

	if _, err := execute(t, "charts", "--input", input, "--dir", chartDir); err != nil {
		t.Fatalf("charts failed: %v", err)
	}

	for _, role := range model.Roles() {
		data, err := os.ReadFile(filepath.Join(chartDir, string(role)+".png"))
		if err != nil {
			t.Errorf("missing chart for %s: %v", role, err)
			continue
		}
		if !bytes.HasPrefix(data, []byte("\x89PNG")) {
			t.Errorf("%s.png is not a PNG", role)
		}
	}
}
