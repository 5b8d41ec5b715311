package lcareport

import (
	"context"
	"elca2dgnb/lib/htmlutil"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("lib/lcareport")

// Indicator holds the five lifecycle-phase values of one environmental
// impact indicator, in the unit reported for it.
type Indicator struct {
	Unit        UnitCode
	Manufacture float64
	Disposal    float64
	Servicing   float64
	Total       float64
	Potential   float64
}

type Category map[IndicatorCode]Indicator

// Report is the typed form of one eLCA summary report: category → indicator
// → five phase values. Built once per run, never mutated afterwards.
type Report map[CategoryCode]Category

// The summary fragment renders one section per category: a heading with the
// category label followed by an effects table whose body rows carry exactly
// seven cells (indicator, unit, manufacture, disposal, servicing, total,
// potential).
const (
	sectionSelector = "div.report-section"
	headingSelector = "h1, h2"
	rowSelector     = "table tbody tr"
)

// Parse transforms the summary report HTML fragment into a Report. The
// first unknown label anywhere aborts the parse; no partial Report is
// ever returned.
func Parse(ctx context.Context, fragment string) (Report, error) {
	ctx, span := tracer.Start(ctx, "Parse")
	defer span.End()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse report html")
		return nil, err
	}

	sections := doc.Find(sectionSelector)
	if sections.Length() == 0 {
		err := fmt.Errorf("report fragment contains no %q sections", sectionSelector)
		span.RecordError(err)
		span.SetStatus(codes.Error, "empty report")
		return nil, err
	}

	report := Report{}
	var parseErr error

	sections.EachWithBreak(func(_ int, section *goquery.Selection) bool {
		heading := htmlutil.CleanText(section.Find(headingSelector).First().Text())
		category, err := NormalizeCategory(heading)
		if err != nil {
			parseErr = err
			return false
		}

		indicators := Category{}
		section.Find(rowSelector).EachWithBreak(func(rowIdx int, row *goquery.Selection) bool {
			indicator, err := parseRow(category, rowIdx, row)
			if err != nil {
				parseErr = err
				return false
			}
			if _, exists := indicators[indicator.code]; exists {
				parseErr = DuplicateIndicatorError{Category: category, Indicator: indicator.code}
				return false
			}
			indicators[indicator.code] = indicator.Indicator
			return true
		})
		if parseErr != nil {
			return false
		}

		slog.DebugContext(ctx, "parsed report category", "category", category, "indicators", len(indicators))
		report[category] = indicators
		return true
	})

	if parseErr != nil {
		span.RecordError(parseErr)
		span.SetStatus(codes.Error, "report parse aborted")
		return nil, parseErr
	}

	span.SetAttributes(attribute.Int("categories", len(report)))
	return report, nil
}

type parsedRow struct {
	code IndicatorCode
	Indicator
}

func parseRow(category CategoryCode, rowIdx int, row *goquery.Selection) (parsedRow, error) {
	cells := row.Find("td")
	if cells.Length() != 7 {
		return parsedRow{}, fmt.Errorf(
			"category %s row %d: expected 7 cells, got %d",
			category, rowIdx, cells.Length(),
		)
	}

	label := htmlutil.CleanText(cells.Eq(0).Text())
	if label == "" {
		return parsedRow{}, MissingIndicatorLabelError{Category: category, Row: rowIdx}
	}
	code, err := NormalizeIndicator(label)
	if err != nil {
		return parsedRow{}, err
	}
	unit, err := NormalizeUnit(htmlutil.CleanText(cells.Eq(1).Text()))
	if err != nil {
		return parsedRow{}, err
	}

	values := [5]float64{}
	for i := range values {
		values[i] = coerceNumber(htmlutil.CleanText(cells.Eq(i + 2).Text()))
	}

	return parsedRow{
		code: code,
		Indicator: Indicator{
			Unit:        unit,
			Manufacture: values[0],
			Disposal:    values[1],
			Servicing:   values[2],
			Total:       values[3],
			Potential:   values[4],
		},
	}, nil
}

// coerceNumber reads a numeric report cell permissively: blank cells mean
// zero, a decimal comma is tolerated, and anything unparseable also
// collapses to zero with a warning, matching the lenient coercion the
// report consumer always applied.
func coerceNumber(s string) float64 {
	if s == "" {
		return 0
	}
	s = strings.ReplaceAll(s, ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		slog.Warn("non-numeric report cell coerced to zero", "raw", s)
		return 0
	}
	return v
}
