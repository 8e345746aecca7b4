package services

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func buildWorkbook(t *testing.T, rows [][]interface{}) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return &buf
}

func TestParseWorkbookMapsColumnsByHeader(t *testing.T) {
	svc := NewImportService(nil, testSlog())

	// Column order differs from the canonical one on purpose.
	buf := buildWorkbook(t, [][]interface{}{
		{"Email", "Last Name", "First Name", "City"},
		{"ada@example.com", "Lovelace", "Ada", "London"},
		{"grace@example.com", "Hopper", "Grace", "Arlington"},
	})

	rows, err := svc.ParseWorkbook(context.Background(), buf)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "Ada", rows[0].FirstName)
	assert.Equal(t, "Lovelace", rows[0].LastName)
	assert.Equal(t, "ada@example.com", rows[0].Email)
	assert.Equal(t, "London", rows[0].Location)
	assert.Equal(t, "spreadsheet", rows[0].Source)
}

func TestParseWorkbookSkipsBlankRows(t *testing.T) {
	svc := NewImportService(nil, testSlog())

	buf := buildWorkbook(t, [][]interface{}{
		{"first_name", "last_name", "email"},
		{"Ada", "Lovelace", "ada@example.com"},
		{"", "", ""},
	})

	rows, err := svc.ParseWorkbook(context.Background(), buf)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestParseWorkbookRequiresEmailColumn(t *testing.T) {
	svc := NewImportService(nil, testSlog())

	buf := buildWorkbook(t, [][]interface{}{
		{"first_name", "last_name"},
		{"Ada", "Lovelace"},
	})

	_, err := svc.ParseWorkbook(context.Background(), buf)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no email column")
}

func TestParseWorkbookRejectsGarbage(t *testing.T) {
	svc := NewImportService(nil, testSlog())

	_, err := svc.ParseWorkbook(context.Background(), bytes.NewBufferString("not a workbook"))
	assert.Error(t, err)
}

func TestImportWorkbookFeedsBulkCreate(t *testing.T) {
	backend := echoBulkBackend(t)
	defer backend.Close()

	candidates := newCandidateService(t, backend.URL)
	svc := NewImportService(candidates, testSlog())

	buf := buildWorkbook(t, [][]interface{}{
		{"first_name", "last_name", "email"},
		{"Ada", "Lovelace", "ada@example.com"},
		{"Grace", "Hopper", "grace@example.com"},
	})

	result, err := svc.ImportWorkbook(context.Background(), buf, 0)
	require.NoError(t, err)
	assert.Len(t, result.Created, 2)
	assert.Equal(t, 2, result.Stats.Created)
}
