package dgnbtemplate

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// newTemplateFile builds an in-memory workbook with the given cell contents
// on the default sheet, keyed by cell name (e.g. "A1").
func newTemplateFile(t *testing.T, cells map[string]string) *excelize.File {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	for cell, content := range cells {
		err := f.SetCellValue(sheet, cell, content)
		if err != nil {
			t.Fatal(err)
		}
	}
	return f
}

func saveTemplate(t *testing.T, dir, name string, cells map[string]string) {
	f := newTemplateFile(t, cells)
	defer f.Close()
	err := f.SaveAs(filepath.Join(dir, name))
	if err != nil {
		t.Fatal(err)
	}
}

func TestScanPlacements(t *testing.T) {
	f := newTemplateFile(t, map[string]string{
		"A1": "Gebäudeökobilanz",
		"B2": "[KG1.1/GWP/CO2/TOTAL]",
		"C2": "#[KG1.1/GWP/CO2/POTENTIAL]",
		"B3": " [KG3.2/FW/M3/TOTAL] ",
		"C3": "not [a] placeholder",
		"D3": "#[]",
	})
	defer f.Close()

	placements, err := ScanPlacements(f, f.GetSheetName(0))
	require.NoError(t, err)

	expected := Placements{
		{Row: 2, Col: 2, Name: "KG1.1/GWP/CO2/TOTAL"},
		{Row: 2, Col: 3, Name: "KG1.1/GWP/CO2/POTENTIAL"},
		{Row: 3, Col: 2, Name: "KG3.2/FW/M3/TOTAL"},
	}
	diff := cmp.Diff(expected, placements)
	if diff != "" {
		t.Fatal(diff)
	}
}

func TestMarkerVersioner(t *testing.T) {
	f := newTemplateFile(t, map[string]string{
		"A1":  "header",
		"B5":  "[KG1.1/GWP/CO2/TOTAL]",
		"A10": "V4.1",
	})
	defer f.Close()

	version, err := MarkerVersioner{}.Version(f)
	require.NoError(t, err)
	require.Equal(t, "4.1", version)
}

func TestMarkerVersionerMissingMarker(t *testing.T) {
	// last populated row has no V prefix in the first column
	f := newTemplateFile(t, map[string]string{
		"A1": "header",
		"A9": "4.1",
	})
	defer f.Close()

	_, err := MarkerVersioner{}.Version(f)
	require.ErrorIs(t, err, VersionMarkerNotFoundError{Sheet: f.GetSheetName(0)})

	empty := excelize.NewFile()
	defer empty.Close()
	_, err = MarkerVersioner{}.Version(empty)
	require.ErrorIs(t, err, VersionMarkerNotFoundError{Sheet: empty.GetSheetName(0)})
}

func TestStaticVersioner(t *testing.T) {
	version, err := StaticVersioner("4.1").Version(nil)
	require.NoError(t, err)
	require.Equal(t, "4.1", version)
}

// countingStore records which candidates were opened so tests can assert
// the resolver short-circuits on the first match.
type countingStore struct {
	DirStore
	opened []string
}

func (s *countingStore) Open(id string) (*excelize.File, error) {
	s.opened = append(s.opened, id)
	return s.DirStore.Open(id)
}

func TestResolveFirstMatch(t *testing.T) {
	dir := t.TempDir()
	saveTemplate(t, dir, "a.xlsx", map[string]string{
		"B2":  "[KG1.1/GWP/CO2/TOTAL]",
		"A10": "V4.1",
	})
	saveTemplate(t, dir, "b.xlsx", map[string]string{
		"C3":  "[KG1.1/GWP/CO2/TOTAL]",
		"A10": "V4.1",
	})
	saveTemplate(t, dir, "c.xlsx", map[string]string{
		"A10": "V3.0",
	})

	store := &countingStore{DirStore: DirStore{Dir: dir}}
	resolver := Resolver{Store: store, Versioner: MarkerVersioner{}}

	tmpl, err := resolver.Resolve(context.Background(), "4.1")
	require.NoError(t, err)
	defer tmpl.Close()

	require.Equal(t, "a.xlsx", tmpl.ID)
	require.Equal(t, Placements{{Row: 2, Col: 2, Name: "KG1.1/GWP/CO2/TOTAL"}}, tmpl.Placements)
	// scanning stopped at the first match, b and c were never opened
	require.Equal(t, []string{"a.xlsx"}, store.opened)
}

func TestResolveVersionNotFound(t *testing.T) {
	dir := t.TempDir()
	saveTemplate(t, dir, "a.xlsx", map[string]string{"A10": "V4.1"})
	saveTemplate(t, dir, "b.xlsx", map[string]string{"A10": "V3.0"})

	resolver := Resolver{
		Store:     DirStore{Dir: dir},
		Versioner: MarkerVersioner{},
	}
	_, err := resolver.Resolve(context.Background(), "9.9")
	require.ErrorIs(t, err, VersionNotFoundError{Version: "9.9"})
}

func TestDirStoreListsSorted(t *testing.T) {
	dir := t.TempDir()
	saveTemplate(t, dir, "zebra.xlsx", map[string]string{"A1": "V1"})
	saveTemplate(t, dir, "alpha.xlsx", map[string]string{"A1": "V1"})
	saveTemplate(t, dir, "midway.xlsx", map[string]string{"A1": "V1"})

	ids, err := DirStore{Dir: dir}.List()
	require.NoError(t, err)
	require.Equal(t, []string{"alpha.xlsx", "midway.xlsx", "zebra.xlsx"}, ids)
}
