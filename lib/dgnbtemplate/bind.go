package dgnbtemplate

import (
	"context"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// Bind writes resolved placeholder values into their cells. A placement
// whose name has no value in the map is left untouched; templates routinely
// carry sites for indicators a given report never mentions. Returns the
// number of cells written.
func Bind(ctx context.Context, f *excelize.File, sheet string, placements Placements, values map[string]float64) (int, error) {
	ctx, span := tracer.Start(ctx, "Bind")
	defer span.End()

	bound := 0
	for _, p := range placements {
		value, ok := values[p.Name]
		if !ok {
			slog.DebugContext(ctx, "placeholder not in report, leaving cell alone", "name", p.Name)
			continue
		}

		cell, err := excelize.CoordinatesToCellName(p.Col, p.Row)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "bad placement coordinates")
			return bound, err
		}
		if err := f.SetCellValue(sheet, cell, value); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to write cell")
			return bound, err
		}
		bound++
	}

	span.SetAttributes(
		attribute.Int("placements", len(placements)),
		attribute.Int("bound", bound),
	)
	return bound, nil
}

// StampGeneratedAt writes a generation timestamp into a marker cell, e.g.
// "A1". Purely a convenience for operators reading the exported workbook.
func StampGeneratedAt(f *excelize.File, sheet, cell string, t time.Time) error {
	return f.SetCellValue(sheet, cell, t.Format(time.RFC3339))
}
