// Package normalize turns the raw survey table into canonical records,
// summary metrics and per-role category orderings.
package normalize

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/ppiankov/surveyreport/internal/model"
)

// optionPrefix matches questionnaire option markers such as "a) " or "b)".
var optionPrefix = regexp.MustCompile(`^[a-z]\)\s*`)

// CleanLabel strips leading option markers from a value. Values without a
// marker are returned unchanged and null stays null. Cleaning twice is the
// same as cleaning once.
func CleanLabel(c model.Cell) model.Cell {
	if c.IsNull() {
		return c
	}
	return model.Text(cleanText(c.String))
}

func cleanText(s string) string {
	if !optionPrefix.MatchString(s) {
		return s
	}
	// \s is ASCII only; Unicode spaces after a marker must not hide the next one
	for optionPrefix.MatchString(s) {
		s = strings.TrimLeftFunc(optionPrefix.ReplaceAllString(s, ""), unicode.IsSpace)
	}
	return strings.TrimRightFunc(s, unicode.IsSpace)
}
