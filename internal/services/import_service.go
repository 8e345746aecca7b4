package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/nithishcb360/recruit-sub001/internal/identity"
	"github.com/nithishcb360/recruit-sub001/internal/models"
)

// importService turns candidate spreadsheets into bulk-create uploads. The
// first sheet is read; the header row maps columns by name so column order
// does not matter.
type importService struct {
	candidates CandidateService
	logger     *slog.Logger
}

func NewImportService(candidates CandidateService, logger *slog.Logger) ImportService {
	return &importService{candidates: candidates, logger: logger}
}

// headerAliases maps spreadsheet header names to canonical fields.
var headerAliases = map[string]string{
	"first name": "first_name",
	"first_name": "first_name",
	"firstname":  "first_name",
	"last name":  "last_name",
	"last_name":  "last_name",
	"lastname":   "last_name",
	"surname":    "last_name",
	"email":      "email",
	"e-mail":     "email",
	"phone":      "phone",
	"telephone":  "phone",
	"mobile":     "phone",
	"location":   "location",
	"city":       "location",
	"source":     "source",
}

// ParseWorkbook reads candidate rows out of an .xlsx workbook. Rows with no
// email and no name are skipped silently (trailing blank rows).
func (s *importService) ParseWorkbook(ctx context.Context, r io.Reader) ([]models.BulkCreateRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, workbookError(fmt.Sprintf("not a readable .xlsx workbook: %v", err))
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, workbookError("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	if len(rows) < 2 {
		return nil, workbookError(fmt.Sprintf("sheet %q has no data rows", sheets[0]))
	}

	columns := mapColumns(rows[0])
	if _, ok := columns["email"]; !ok {
		return nil, workbookError(fmt.Sprintf("sheet %q has no email column", sheets[0]))
	}

	out := make([]models.BulkCreateRow, 0, len(rows)-1)
	for _, cells := range rows[1:] {
		row := models.BulkCreateRow{
			FirstName: cellAt(cells, columns, "first_name"),
			LastName:  cellAt(cells, columns, "last_name"),
			Email:     cellAt(cells, columns, "email"),
			Phone:     cellAt(cells, columns, "phone"),
			Location:  cellAt(cells, columns, "location"),
			Source:    cellAt(cells, columns, "source"),
		}
		if row.Email == "" && row.FirstName == "" && row.LastName == "" {
			continue
		}
		if row.Source == "" {
			row.Source = "spreadsheet"
		}
		out = append(out, row)
	}

	s.logger.Info("workbook parsed", "sheet", sheets[0], "rows", len(out))
	return out, nil
}

// ImportWorkbook parses the workbook and pushes the rows through the bulk
// candidate pipeline.
func (s *importService) ImportWorkbook(ctx context.Context, r io.Reader, jobID identity.ID) (*models.BulkCreateResult, error) {
	rows, err := s.ParseWorkbook(ctx, r)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return &models.BulkCreateResult{
			Created: []models.Candidate{},
			Skipped: []models.BulkSkippedRow{},
			Errors:  []models.BulkFailedRow{},
		}, nil
	}
	return s.candidates.BulkCreate(ctx, &models.BulkCreateRequest{
		Candidates: rows,
		JobID:      jobID,
	})
}

// workbookError reports a structural problem with the upload as a validation
// error so the caller answers 400, not 500.
func workbookError(message string) ValidationErrors {
	return ValidationErrors{{Field: "file", Message: message, Rule: "workbook"}}
}

func mapColumns(header []string) map[string]int {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		key := strings.ToLower(strings.TrimSpace(name))
		if field, ok := headerAliases[key]; ok {
			if _, dup := columns[field]; !dup {
				columns[field] = i
			}
		}
	}
	return columns
}

func cellAt(cells []string, columns map[string]int, field string) string {
	idx, ok := columns[field]
	if !ok || idx >= len(cells) {
		return ""
	}
	return strings.TrimSpace(cells[idx])
}
