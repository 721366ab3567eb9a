package model

import "time"

// Config is the complete surveyreport configuration
type Config struct {
	Input   InputConfig   `yaml:"input" mapstructure:"input"`
	Columns ColumnsConfig `yaml:"columns" mapstructure:"columns"`
	Report  ReportConfig  `yaml:"report" mapstructure:"report"`
	Charts  ChartsConfig  `yaml:"charts" mapstructure:"charts"`
	Cache   CacheConfig   `yaml:"cache" mapstructure:"cache"`
	Server  ServerConfig  `yaml:"server" mapstructure:"server"`
	Output  OutputConfig  `yaml:"output" mapstructure:"output"`
}

// InputConfig controls how the survey spreadsheet is found
type InputConfig struct {
	Path      string `yaml:"path" mapstructure:"path"`           // tried first
	Dir       string `yaml:"dir" mapstructure:"dir"`             // fallback search directory
	Match     string `yaml:"match" mapstructure:"match"`         // fallback file name must contain this
	Extension string `yaml:"extension" mapstructure:"extension"` // fallback file extension
	Sheet     string `yaml:"sheet" mapstructure:"sheet"`         // empty = first sheet
}

// ColumnsConfig is the positional column contract
type ColumnsConfig struct {
	Sex                  int `yaml:"sex" mapstructure:"sex"`
	AgeBracket           int `yaml:"age_bracket" mapstructure:"age_bracket"`
	EducationLevel       int `yaml:"education_level" mapstructure:"education_level"`
	Occupation           int `yaml:"occupation" mapstructure:"occupation"`
	MonthlyIncomeBracket int `yaml:"monthly_income_bracket" mapstructure:"monthly_income_bracket"`
	IndigenousIdentity   int `yaml:"indigenous_identity" mapstructure:"indigenous_identity"`
}

// RoleMap converts the configured indices into a ColumnRoleMap
func (c ColumnsConfig) RoleMap() ColumnRoleMap {
	return ColumnRoleMap{
		RoleSex:                  c.Sex,
		RoleAgeBracket:           c.AgeBracket,
		RoleEducationLevel:       c.EducationLevel,
		RoleOccupation:           c.Occupation,
		RoleMonthlyIncomeBracket: c.MonthlyIncomeBracket,
		RoleIndigenousIdentity:   c.IndigenousIdentity,
	}
}

// ReportConfig controls report text and output
type ReportConfig struct {
	Title        string `yaml:"title" mapstructure:"title"`
	Organization string `yaml:"organization" mapstructure:"organization"`
	Affirmative  string `yaml:"affirmative" mapstructure:"affirmative"` // indigenous identity marker
	Output       string `yaml:"output" mapstructure:"output"`
	Logo         string `yaml:"logo" mapstructure:"logo"` // optional branding image
	// CreatedAt pins the PDF creation date; zero means now
	CreatedAt time.Time `yaml:"created_at,omitempty" mapstructure:"created_at"`
}

// ChartsConfig controls chart raster size
type ChartsConfig struct {
	Width  int    `yaml:"width" mapstructure:"width"`
	Height int    `yaml:"height" mapstructure:"height"`
	Dir    string `yaml:"dir" mapstructure:"dir"`
}

// CacheConfig controls memoization of the loaded table
type CacheConfig struct {
	Enabled bool          `yaml:"enabled" mapstructure:"enabled"`
	TTL     time.Duration `yaml:"ttl" mapstructure:"ttl"` // 0 = for the process lifetime
}

// ServerConfig controls the HTTP surface
type ServerConfig struct {
	Addr            string        `yaml:"addr" mapstructure:"addr"`
	ReadTimeout     time.Duration `yaml:"read_timeout" mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout" mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" mapstructure:"shutdown_timeout"`
}

// OutputConfig controls terminal output
type OutputConfig struct {
	Verbose bool `yaml:"verbose" mapstructure:"verbose"`
}

// DefaultConfig returns the configuration for the Buenos Aires de Puntarenas survey
func DefaultConfig() *Config {
	return &Config{
		Input: InputConfig{
			Path:      "datosbuenosaires.xlsx",
			Dir:       ".",
			Match:     "Buenos Aires",
			Extension: ".xlsx",
		},
		Columns: ColumnsConfig{
			Sex:                  3,
			AgeBracket:           4,
			EducationLevel:       5,
			Occupation:           6,
			MonthlyIncomeBracket: 7,
			IndigenousIdentity:   9,
		},
		Report: ReportConfig{
			Title:        "Reporte Ejecutivo: Encuesta Buenos Aires",
			Organization: "Municipalidad de Buenos Aires, Puntarenas",
			Affirmative:  "sí",
			Output:       "reporte_buenos_aires.pdf",
		},
		Charts: ChartsConfig{
			Width:  900,
			Height: 560,
			Dir:    "charts",
		},
		Cache: CacheConfig{
			Enabled: true,
		},
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
	}
}
