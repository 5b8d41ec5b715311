package dgnbtemplate

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestBind(t *testing.T) {
	f := newTemplateFile(t, map[string]string{
		"C5": "#[KG1.1/GWP/CO2/TOTAL]",
		"D5": "[KG1.1/GWP/CO2/POTENTIAL]",
		"E5": "[KG9.9/XX/YY/TOTAL]",
	})
	defer f.Close()
	sheet := f.GetSheetName(0)

	placements, err := ScanPlacements(f, sheet)
	require.NoError(t, err)

	values := map[string]float64{
		"KG1.1/GWP/CO2/TOTAL":     16,
		"KG1.1/GWP/CO2/POTENTIAL": -2,
	}
	bound, err := Bind(context.Background(), f, sheet, placements, values)
	require.NoError(t, err)
	require.Equal(t, 2, bound)

	c5, err := f.GetCellValue(sheet, "C5")
	require.NoError(t, err)
	require.Equal(t, "16", c5)

	d5, err := f.GetCellValue(sheet, "D5")
	require.NoError(t, err)
	require.Equal(t, "-2", d5)

	// no value for this placeholder, the marker stays in place
	e5, err := f.GetCellValue(sheet, "E5")
	require.NoError(t, err)
	require.Equal(t, "[KG9.9/XX/YY/TOTAL]", e5)
}

func TestBindRoundTrip(t *testing.T) {
	values := map[string]float64{
		"TOTAL/GWP/CO2/MANUFACTURE": 120.5,
		"TOTAL/GWP/CO2/DISPOSAL":    30,
		"TOTAL/GWP/CO2/SERVICING":   12,
		"TOTAL/GWP/CO2/TOTAL":       162.5,
		"TOTAL/GWP/CO2/POTENTIAL":   -8,
	}

	cells := map[string]string{
		"B2": "[TOTAL/GWP/CO2/MANUFACTURE]",
		"C2": "[TOTAL/GWP/CO2/DISPOSAL]",
		"D2": "[TOTAL/GWP/CO2/SERVICING]",
		"E2": "#[TOTAL/GWP/CO2/TOTAL]",
		"F2": "#[TOTAL/GWP/CO2/POTENTIAL]",
	}
	f := newTemplateFile(t, cells)
	defer f.Close()
	sheet := f.GetSheetName(0)

	placements, err := ScanPlacements(f, sheet)
	require.NoError(t, err)
	require.Len(t, placements, len(values))

	bound, err := Bind(context.Background(), f, sheet, placements, values)
	require.NoError(t, err)
	require.Equal(t, len(values), bound)

	expected := map[string]string{
		"B2": "120.5",
		"C2": "30",
		"D2": "12",
		"E2": "162.5",
		"F2": "-8",
	}
	for cell, want := range expected {
		got, err := f.GetCellValue(sheet, cell)
		require.NoError(t, err)
		require.Equal(t, want, got, cell)
	}
}

func TestStampGeneratedAt(t *testing.T) {
	f := newTemplateFile(t, map[string]string{"A1": "header"})
	defer f.Close()
	sheet := f.GetSheetName(0)

	when := time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)
	require.NoError(t, StampGeneratedAt(f, sheet, "B1", when))

	b1, err := f.GetCellValue(sheet, "B1")
	require.NoError(t, err)
	require.Equal(t, "2026-03-14T15:09:26Z", b1)
}
