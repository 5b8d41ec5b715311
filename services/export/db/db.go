package db

import (
	"context"
	"database/sql"
	"time"

	_ "embed"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var Schema string

type Queries struct {
	db *sql.DB
}

func New(db *sql.DB) *Queries {
	return &Queries{db: db}
}

type ExportRun struct {
	ID            int64
	ProjectID     string
	ReportVersion string
	TemplateID    string
	OutputPath    string
	CellsBound    int64
	CreatedAt     time.Time
}

type CreateExportRunParams struct {
	ProjectID     string
	ReportVersion string
	TemplateID    string
	OutputPath    string
	CellsBound    int64
	CreatedAt     time.Time
}

const createExportRun = `
INSERT INTO export_run (project_id, report_version, template_id, output_path, cells_bound, created_at)
VALUES (?, ?, ?, ?, ?, ?)
`

func (q *Queries) CreateExportRun(ctx context.Context, arg CreateExportRunParams) error {
	_, err := q.db.ExecContext(
		ctx, createExportRun,
		arg.ProjectID,
		arg.ReportVersion,
		arg.TemplateID,
		arg.OutputPath,
		arg.CellsBound,
		arg.CreatedAt.Unix(),
	)
	return err
}

const listExportRuns = `
SELECT id, project_id, report_version, template_id, output_path, cells_bound, created_at
FROM export_run
ORDER BY created_at DESC, id DESC
`

func (q *Queries) ListExportRuns(ctx context.Context) ([]ExportRun, error) {
	rows, err := q.db.QueryContext(ctx, listExportRuns)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []ExportRun
	for rows.Next() {
		var run ExportRun
		var createdAt int64
		err := rows.Scan(
			&run.ID,
			&run.ProjectID,
			&run.ReportVersion,
			&run.TemplateID,
			&run.OutputPath,
			&run.CellsBound,
			&createdAt,
		)
		if err != nil {
			return nil, err
		}
		run.CreatedAt = time.Unix(createdAt, 0)
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
