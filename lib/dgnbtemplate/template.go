package dgnbtemplate

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("lib/dgnbtemplate")

// Placement is one cell of a template whose literal content names the
// placeholder it should receive. Row and Col are 1-based.
type Placement struct {
	Row  int
	Col  int
	Name string
}

type Placements []Placement

// Store enumerates candidate template identifiers and opens them as
// workbooks. A directory of .xlsx files is the only production
// implementation; tests may substitute their own.
type Store interface {
	List() ([]string, error)
	Open(id string) (*excelize.File, error)
}

type DirStore struct {
	Dir string
}

// List returns the xlsx files directly inside the directory, sorted, so
// resolution order is deterministic across platforms.
func (s DirStore) List() ([]string, error) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		return nil, err
	}

	var ids []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.EqualFold(filepath.Ext(name), ".xlsx") && !strings.HasPrefix(name, "~$") {
			ids = append(ids, name)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func (s DirStore) Open(id string) (*excelize.File, error) {
	return excelize.OpenFile(filepath.Join(s.Dir, id))
}

type VersionNotFoundError struct {
	Version string
}

func (e VersionNotFoundError) Error() string {
	return fmt.Sprintf("no template found for report version %q", e.Version)
}

// Template is a resolved, opened template workbook together with the
// placeholder sites found on its primary sheet.
type Template struct {
	ID         string
	File       *excelize.File
	Sheet      string
	Placements Placements
}

func (t *Template) Close() error {
	return t.File.Close()
}

// Resolver looks a template up by version tag. How a workbook declares its
// version is deployment-specific, so the extraction strategy is injected.
type Resolver struct {
	Store     Store
	Versioner Versioner
}

// Resolve scans candidates in sorted identifier order and returns the first
// whose extracted version string-equals the target; scanning stops there.
// If several templates share a version, the lexicographically first wins.
func (r Resolver) Resolve(ctx context.Context, version string) (*Template, error) {
	ctx, span := tracer.Start(ctx, "Resolve")
	defer span.End()
	span.SetAttributes(attribute.String("version", version))

	ids, err := r.Store.List()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to list templates")
		return nil, err
	}

	for _, id := range ids {
		f, err := r.Store.Open(id)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to open template")
			return nil, fmt.Errorf("open template %s: %w", id, err)
		}

		candidate, err := r.Versioner.Version(f)
		if err != nil {
			f.Close()
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to extract template version")
			return nil, fmt.Errorf("template %s: %w", id, err)
		}
		if candidate != version {
			slog.DebugContext(ctx, "skipping template", "id", id, "version", candidate)
			f.Close()
			continue
		}

		sheet := f.GetSheetName(0)
		placements, err := ScanPlacements(f, sheet)
		if err != nil {
			f.Close()
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to scan placements")
			return nil, fmt.Errorf("template %s: %w", id, err)
		}

		slog.DebugContext(ctx, "resolved template", "id", id, "version", version, "placements", len(placements))
		span.SetAttributes(
			attribute.String("template", id),
			attribute.Int("placements", len(placements)),
		)
		return &Template{
			ID:         id,
			File:       f,
			Sheet:      sheet,
			Placements: placements,
		}, nil
	}

	err = VersionNotFoundError{Version: version}
	span.RecordError(err)
	span.SetStatus(codes.Error, "no matching template")
	return nil, err
}

// Placeholder sites come in two delimiter conventions that both survive in
// deployed templates: [name] and #[name]. Both must keep working.
var placeholderPattern = regexp.MustCompile(`^#?\[([^\[\]]+)\]$`)

// ScanPlacements walks every cell of the sheet row-major and records each
// cell whose entire content is a bracket-delimited placeholder, preserving
// traversal order.
func ScanPlacements(f *excelize.File, sheet string) (Placements, error) {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, err
	}

	var placements Placements
	for rowIdx, row := range rows {
		for colIdx, cell := range row {
			m := placeholderPattern.FindStringSubmatch(strings.TrimSpace(cell))
			if m == nil {
				continue
			}
			placements = append(placements, Placement{
				Row:  rowIdx + 1,
				Col:  colIdx + 1,
				Name: m[1],
			})
		}
	}
	return placements, nil
}
