package lcareport

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestFlatten(t *testing.T) {
	report := Report{
		"KG1.1": {
			"GWP": {Unit: "CO2", Manufacture: 10, Disposal: 5, Servicing: 1, Total: 16, Potential: -2},
		},
	}

	flat, err := Flatten(report)
	require.NoError(t, err)

	expected := PlaceholderMap{
		"KG1.1/GWP/CO2/MANUFACTURE": 10,
		"KG1.1/GWP/CO2/DISPOSAL":    5,
		"KG1.1/GWP/CO2/SERVICING":   1,
		"KG1.1/GWP/CO2/TOTAL":       16,
		"KG1.1/GWP/CO2/POTENTIAL":   -2,
	}
	diff := cmp.Diff(expected, flat)
	if diff != "" {
		t.Fatal(diff)
	}
}

func TestFlattenFromParsedFragment(t *testing.T) {
	report, err := Parse(context.Background(), sectionWithRow(
		"1.1 Foo", "GWP", "kg CO2 equiv.", "10", "5", "1", "16", "-2",
	))
	require.NoError(t, err)

	flat, err := Flatten(report)
	require.NoError(t, err)
	require.Len(t, flat, 5)
	require.Equal(t, 16.0, flat["KG1.1/GWP/CO2/TOTAL"])
}

func TestFlattenKeysAreDistinctPerTriple(t *testing.T) {
	report := Report{
		"TOTAL": {
			"GWP": {Unit: "CO2", Total: 1},
			"ODP": {Unit: "R11", Total: 2},
		},
		"KG3.2": {
			"GWP": {Unit: "CO2", Total: 3},
		},
	}

	flat, err := Flatten(report)
	require.NoError(t, err)
	// 3 indicators x 5 fields, no collisions
	require.Len(t, flat, 15)
}

func TestDuplicatePlaceholderKey(t *testing.T) {
	m := PlaceholderMap{}
	require.NoError(t, put(m, "KG1.1/GWP/CO2/TOTAL", 16))

	err := put(m, "KG1.1/GWP/CO2/TOTAL", 99)
	require.ErrorIs(t, err, DuplicatePlaceholderKeyError{Key: "KG1.1/GWP/CO2/TOTAL"})
	// first write survives
	require.Equal(t, 16.0, m["KG1.1/GWP/CO2/TOTAL"])
}

func TestSortedKeys(t *testing.T) {
	m := PlaceholderMap{"b": 2, "a": 1, "c": 3}
	require.Equal(t, []string{"a", "b", "c"}, m.SortedKeys())
}
