package sheets

import (
	"context"
	"errors"
	"os"
	"sync"

	"github.com/xuri/excelize/v2"
)

// Appender appends rows to a ledger workbook on disk. The workbook is the
// at-least-once spreadsheet boundary: replays may append duplicate rows, and
// consumers dedupe on the (author, timestamp) columns.
type Appender struct {
	mu    sync.Mutex
	path  string
	sheet string
}

// NewAppender constructs an appender for a workbook path.
func NewAppender(path, sheet string) (*Appender, error) {
	if path == "" {
		return nil, errors.New("sheets: empty workbook path")
	}
	if sheet == "" {
		sheet = "ledger"
	}
	return &Appender{path: path, sheet: sheet}, nil
}

// AppendRow appends one row of fields to the ledger sheet.
func (a *Appender) AppendRow(ctx context.Context, fields []any) error {
	if a == nil {
		return errors.New("sheets: nil appender")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	file, err := a.open()
	if err != nil {
		return err
	}
	defer file.Close()

	rows, err := file.GetRows(a.sheet)
	if err != nil {
		return err
	}
	next := len(rows) + 1
	for i, field := range fields {
		cell, err := excelize.CoordinatesToCellName(i+1, next)
		if err != nil {
			return err
		}
		if err := file.SetCellValue(a.sheet, cell, field); err != nil {
			return err
		}
	}
	return file.SaveAs(a.path)
}

func (a *Appender) open() (*excelize.File, error) {
	if _, err := os.Stat(a.path); err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
		file := excelize.NewFile()
		file.SetSheetName("Sheet1", a.sheet)
		return file, nil
	}
	file, err := excelize.OpenFile(a.path)
	if err != nil {
		return nil, err
	}
	index, err := file.GetSheetIndex(a.sheet)
	if err != nil {
		return nil, err
	}
	if index == -1 {
		_, _ = file.NewSheet(a.sheet)
	}
	return file, nil
}
