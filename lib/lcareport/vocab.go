package lcareport

import (
	"strings"
	"unicode"
)

// Canonical short codes for the closed report vocabulary. The raw labels
// below are the exact strings eLCA renders in the summary report; extending
// the vocabulary means extending these tables, never the call sites.
type CategoryCode string
type IndicatorCode string
type UnitCode string

// Synthetic aggregate over all construction elements.
const CategoryTotal CategoryCode = "TOTAL"

const categoryTotalLabel = "Total / Construction"

var indicatorsByLabel = map[string]IndicatorCode{
	"GWP":        "GWP",
	"ODP":        "ODP",
	"POCP":       "POCP",
	"AP":         "AP",
	"EP":         "EP",
	"Total PE":   "TPE",
	"PENRT":      "PENRT",
	"PENRM":      "PENRM",
	"PENRE":      "PENRE",
	"PERT":       "PERT",
	"PERM":       "PERM",
	"PERE":       "PERE",
	"ADP elem.":  "ADPE",
	"ADP fossil": "ADPF",
	"SM":         "SM",
	"FW":         "FW",
}

var unitsByLabel = map[string]UnitCode{
	"kg CO2 equiv.":   "CO2",
	"kg R11 equiv.":   "R11",
	"kg Ethen equiv.": "ETHEN",
	"kg SO2 equiv.":   "SO2",
	"kg PO4 equiv.":   "PO4",
	"kg Sb equiv.":    "SB",
	"MJ":              "MJ",
	"kg":              "KG",
	"m3":              "M3",
}

var indicatorLabels = map[IndicatorCode]string{}
var unitLabels = map[UnitCode]string{}

func init() {
	for label, code := range indicatorsByLabel {
		indicatorLabels[code] = label
	}
	for label, code := range unitsByLabel {
		unitLabels[code] = label
	}
}

// NormalizeCategory maps a report section heading to its canonical code.
// The aggregate heading maps to TOTAL; cost-group headings start with their
// classification number (e.g. "3.2 Außenwände") and map to KG<number>.
func NormalizeCategory(raw string) (CategoryCode, error) {
	if raw == categoryTotalLabel {
		return CategoryTotal, nil
	}
	if raw != "" && unicode.IsDigit(rune(raw[0])) {
		number, _, _ := strings.Cut(raw, " ")
		return CategoryCode("KG" + number), nil
	}
	return "", UnknownCategoryError{Raw: raw}
}

func NormalizeIndicator(raw string) (IndicatorCode, error) {
	code, ok := indicatorsByLabel[raw]
	if !ok {
		return "", UnknownIndicatorError{Raw: raw}
	}
	return code, nil
}

func NormalizeUnit(raw string) (UnitCode, error) {
	code, ok := unitsByLabel[raw]
	if !ok {
		return "", UnknownUnitError{Raw: raw}
	}
	return code, nil
}

// IndicatorLabel returns the raw report label for a canonical code, the
// inverse of NormalizeIndicator over the known vocabulary.
func IndicatorLabel(code IndicatorCode) (string, bool) {
	label, ok := indicatorLabels[code]
	return label, ok
}

func UnitLabel(code UnitCode) (string, bool) {
	label, ok := unitLabels[code]
	return label, ok
}
