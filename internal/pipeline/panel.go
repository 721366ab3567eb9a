package pipeline

import (
	"github.com/ppiankov/surveyreport/internal/chart"
	"github.com/ppiankov/surveyreport/internal/model"
)

// Panel is one chart of the fixed report panel
type Panel struct {
	Role    model.Role
	Caption string
	Palette []string
}

// DefaultPanel returns the six charts of the socioeconomic profile, in report order
func DefaultPanel() []Panel {
	return []Panel{
		{Role: model.RoleSex, Caption: "A. Distribución por Género", Palette: chart.PalettePastel},
		{Role: model.RoleAgeBracket, Caption: "B. Rangos de Edad", Palette: chart.PaletteViridis},
		{Role: model.RoleEducationLevel, Caption: "C. Nivel Académico", Palette: chart.PaletteMagma},
		{Role: model.RoleOccupation, Caption: "D. Ocupación Principal (Top 10)", Palette: chart.PaletteRocket},
		{Role: model.RoleMonthlyIncomeBracket, Caption: "E. Nivel de Ingresos Mensuales", Palette: chart.PaletteCrest},
		{Role: model.RoleIndigenousIdentity, Caption: "F. Identificación Indígena", Palette: chart.PaletteSet2},
	}
}

// PanelFor returns the panel entry of a role
func PanelFor(role model.Role) (Panel, bool) {
	for _, p := range DefaultPanel() {
		if p.Role == role {
			return p, true
		}
	}
	return Panel{}, false
}
