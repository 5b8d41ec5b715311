package lcareport

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeCategory(t *testing.T) {
	code, err := NormalizeCategory("Total / Construction")
	require.NoError(t, err)
	require.Equal(t, CategoryTotal, code)

	code, err = NormalizeCategory("3.2 Außenwände")
	require.NoError(t, err)
	require.Equal(t, CategoryCode("KG3.2"), code)

	code, err = NormalizeCategory("1.1 Foo")
	require.NoError(t, err)
	require.Equal(t, CategoryCode("KG1.1"), code)

	// a bare classification number still yields a code
	code, err = NormalizeCategory("400")
	require.NoError(t, err)
	require.Equal(t, CategoryCode("KG400"), code)

	for _, raw := range []string{"", "Gesamt", "total / construction"} {
		_, err := NormalizeCategory(raw)
		require.ErrorIs(t, err, UnknownCategoryError{Raw: raw})
	}
}

func TestNormalizeIndicator(t *testing.T) {
	testCases := map[string]IndicatorCode{
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
	for raw, expected := range testCases {
		code, err := NormalizeIndicator(raw)
		require.NoError(t, err)
		require.Equal(t, expected, code)
	}

	_, err := NormalizeIndicator("gwp")
	require.ErrorIs(t, err, UnknownIndicatorError{Raw: "gwp"})
	_, err = NormalizeIndicator("ADP elem")
	require.ErrorIs(t, err, UnknownIndicatorError{Raw: "ADP elem"})
}

func TestNormalizeUnit(t *testing.T) {
	testCases := map[string]UnitCode{
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
	for raw, expected := range testCases {
		code, err := NormalizeUnit(raw)
		require.NoError(t, err)
		require.Equal(t, expected, code)
	}

	_, err := NormalizeUnit("mj")
	require.ErrorIs(t, err, UnknownUnitError{Raw: "mj"})
}

func TestVocabularyRoundTrip(t *testing.T) {
	for raw, code := range indicatorsByLabel {
		label, ok := IndicatorLabel(code)
		require.True(t, ok)
		require.Equal(t, raw, label)
	}
	for raw, code := range unitsByLabel {
		label, ok := UnitLabel(code)
		require.True(t, ok)
		require.Equal(t, raw, label)
	}

	_, ok := IndicatorLabel("NOPE")
	require.False(t, ok)
}
