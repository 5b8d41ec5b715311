package export

import (
	"context"
	"database/sql"
	"elca2dgnb/lib/dgnbtemplate"
	"elca2dgnb/lib/lcareport"
	"elca2dgnb/services/export/db"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("services/export")

// ReportSource supplies the LCA summary report HTML fragment for a project.
// The elca scraper client is the production implementation.
type ReportSource interface {
	FetchProjectReport(ctx context.Context, projectId string) (string, error)
}

// Service runs the export pipeline: fetch report, parse, flatten, resolve a
// template by version, bind placeholder values, save the workbook, note the
// run. Strictly sequential; the first error at any stage aborts the run and
// nothing is saved.
type Service struct {
	source   ReportSource
	resolver dgnbtemplate.Resolver
	db       *sql.DB
	qry      *db.Queries
}

func NewService(source ReportSource, resolver dgnbtemplate.Resolver, database *sql.DB) Service {
	return Service{
		source:   source,
		resolver: resolver,
		db:       database,
		qry:      db.New(database),
	}
}

type ExportRequest struct {
	ProjectId string
	// version tag the template must carry
	Version    string
	OutputPath string
	// optional cell (e.g. "B1") stamped with the generation time
	StampCell string
}

type ExportResult struct {
	TemplateId   string
	Placeholders lcareport.PlaceholderMap
	Placements   dgnbtemplate.Placements
	CellsBound   int
}

func fail(span trace.Span, message string, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, message)
	return err
}

func (s Service) Export(ctx context.Context, req ExportRequest) (ExportResult, error) {
	ctx, span := tracer.Start(ctx, "Export")
	defer span.End()
	span.SetAttributes(
		attribute.String("project", req.ProjectId),
		attribute.String("version", req.Version),
	)

	fragment, err := s.source.FetchProjectReport(ctx, req.ProjectId)
	if err != nil {
		return ExportResult{}, fail(span, "failed to fetch report", err)
	}

	report, err := lcareport.Parse(ctx, fragment)
	if err != nil {
		return ExportResult{}, fail(span, "failed to parse report", err)
	}

	placeholders, err := lcareport.Flatten(report)
	if err != nil {
		return ExportResult{}, fail(span, "failed to flatten report", err)
	}
	slog.DebugContext(ctx, "flattened report", "placeholders", len(placeholders))

	tmpl, err := s.resolver.Resolve(ctx, req.Version)
	if err != nil {
		return ExportResult{}, fail(span, "failed to resolve template", err)
	}
	defer tmpl.Close()

	bound, err := dgnbtemplate.Bind(ctx, tmpl.File, tmpl.Sheet, tmpl.Placements, placeholders)
	if err != nil {
		return ExportResult{}, fail(span, "failed to bind placeholders", err)
	}

	if req.StampCell != "" {
		err := dgnbtemplate.StampGeneratedAt(tmpl.File, tmpl.Sheet, req.StampCell, time.Now())
		if err != nil {
			return ExportResult{}, fail(span, "failed to stamp generation time", err)
		}
	}

	if err := tmpl.File.SaveAs(req.OutputPath); err != nil {
		return ExportResult{}, fail(span, "failed to save workbook", err)
	}

	err = s.qry.CreateExportRun(ctx, db.CreateExportRunParams{
		ProjectID:     req.ProjectId,
		ReportVersion: req.Version,
		TemplateID:    tmpl.ID,
		OutputPath:    req.OutputPath,
		CellsBound:    int64(bound),
		CreatedAt:     time.Now(),
	})
	if err != nil {
		// the workbook is already on disk, losing the log row is not
		// worth failing the run over
		slog.WarnContext(ctx, "failed to note export run", "err", err)
	}

	slog.InfoContext(
		ctx, "export complete",
		"project", req.ProjectId,
		"template", tmpl.ID,
		"cells_bound", bound,
		"output", req.OutputPath,
	)
	return ExportResult{
		TemplateId:   tmpl.ID,
		Placeholders: placeholders,
		Placements:   tmpl.Placements,
		CellsBound:   bound,
	}, nil
}

// History returns past export runs, newest first.
func (s Service) History(ctx context.Context) ([]db.ExportRun, error) {
	ctx, span := tracer.Start(ctx, "History")
	defer span.End()

	runs, err := s.qry.ListExportRuns(ctx)
	if err != nil {
		return nil, fail(span, "failed to list export runs", err)
	}
	return runs, nil
}
