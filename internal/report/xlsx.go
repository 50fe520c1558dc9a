// Package report exports a week of recorded trips as a spreadsheet.
package report

import (
	"commute-compensation-service/internal/domain"
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"
)

const SheetName = "Weekly report"

// ContentType is the media type of the workbook written by WriteXLSX.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var Headers = []string{
	"Date",
	"Technician",
	"Morning project",
	"Evening project",
	"Morning address",
	"Evening address",
	"Morning distance (km)",
	"Evening distance (km)",
	"Km to compensate",
}

// WriteXLSX writes one row per entry below a header row, followed by a
// total row. Distances that could not be looked up are left blank.
func WriteXLSX(w io.Writer, entries []domain.TripEntry) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("write xlsx: rename sheet: %w", err)
	}

	if err := f.SetSheetRow(SheetName, "A1", &Headers); err != nil {
		return fmt.Errorf("write xlsx: header: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("write xlsx: style: %w", err)
	}
	lastCol, _ := excelize.ColumnNumberToName(len(Headers))
	if err := f.SetCellStyle(SheetName, "A1", lastCol+"1", bold); err != nil {
		return fmt.Errorf("write xlsx: header style: %w", err)
	}

	totals := make([]float64, 0, len(entries))
	for i, e := range entries {
		row := []any{
			e.Date.Format(time.DateOnly),
			e.Technician,
			e.MorningProject,
			e.EveningProject,
			e.MorningAddress,
			e.EveningAddress,
			kmCell(e.MorningDistanceKm),
			kmCell(e.EveningDistanceKm),
			e.CompensatedKm,
		}

		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return fmt.Errorf("write xlsx: row %d: %w", i+1, err)
		}
		totals = append(totals, e.CompensatedKm)
	}

	totalRow := len(entries) + 2
	labelCell, _ := excelize.CoordinatesToCellName(1, totalRow)
	totalCell, _ := excelize.CoordinatesToCellName(len(Headers), totalRow)
	if err := f.SetCellValue(SheetName, labelCell, "Total"); err != nil {
		return fmt.Errorf("write xlsx: total label: %w", err)
	}
	if err := f.SetCellValue(SheetName, totalCell, domain.SumKm(totals...)); err != nil {
		return fmt.Errorf("write xlsx: total: %w", err)
	}
	if err := f.SetCellStyle(SheetName, labelCell, totalCell, bold); err != nil {
		return fmt.Errorf("write xlsx: total style: %w", err)
	}

	if err := f.SetColWidth(SheetName, "A", lastCol, 18); err != nil {
		return fmt.Errorf("write xlsx: column width: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}

// kmCell leaves the cell empty for an unknown distance.
func kmCell(km *float64) any {
	if km == nil {
		return nil
	}
	return *km
}
