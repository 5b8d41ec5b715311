package dgnbtemplate

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Versioner extracts the version tag a template workbook carries.
type Versioner interface {
	Version(f *excelize.File) (string, error)
}

// StaticVersioner reports the same version for every workbook. Used by
// deployments that enforce the template version out-of-band and keep a
// single template in the directory.
type StaticVersioner string

func (v StaticVersioner) Version(*excelize.File) (string, error) {
	return string(v), nil
}

type VersionMarkerNotFoundError struct {
	Sheet string
}

func (e VersionMarkerNotFoundError) Error() string {
	return fmt.Sprintf("no V<version> marker in the last populated row of sheet %q", e.Sheet)
}

// MarkerVersioner reads the version from the workbook itself: the first
// column of the primary sheet's last populated row must contain `V<version>`.
type MarkerVersioner struct{}

func (MarkerVersioner) Version(f *excelize.File) (string, error) {
	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return "", err
	}

	last := -1
	for i, row := range rows {
		for _, cell := range row {
			if strings.TrimSpace(cell) != "" {
				last = i
				break
			}
		}
	}
	if last < 0 {
		return "", VersionMarkerNotFoundError{Sheet: sheet}
	}

	marker := ""
	if len(rows[last]) > 0 {
		marker = strings.TrimSpace(rows[last][0])
	}
	if !strings.HasPrefix(marker, "V") {
		return "", VersionMarkerNotFoundError{Sheet: sheet}
	}
	return strings.TrimPrefix(marker, "V"), nil
}
