package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const (
	sheetFL      = "FL"
	sheetSummary = "Summary"
)

// WriteXLSX saves a workbook with the FL table and a summary sheet
func WriteXLSX(path string, r *Report) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetFL); err != nil {
		return err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	header := make([]any, len(RowHeader))
	for i, h := range RowHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(sheetFL, "A1", &header); err != nil {
		return err
	}
	last, _ := excelize.CoordinatesToCellName(len(RowHeader), 1)
	if err := f.SetCellStyle(sheetFL, "A1", last, bold); err != nil {
		return err
	}
	for i, row := range r.Rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		values := rowValues(row)
		if err := f.SetSheetRow(sheetFL, cell, &values); err != nil {
			return fmt.Errorf("row %d: %w", i+1, err)
		}
	}
	if err := f.SetPanes(sheetFL, &excelize.Panes{
		Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft",
	}); err != nil {
		return err
	}

	if _, err := f.NewSheet(sheetSummary); err != nil {
		return err
	}
	s := r.Summary
	pairs := [][2]any{
		{"ID", r.ID},
		{"Source", r.Source},
		{"Method", r.Method},
		{"Latitude", r.Site.Lat},
		{"Longitude", r.Site.Lon},
		{"Start date", r.Site.StartDate},
		{"Ground water level (m)", r.Site.GroundWaterLevel},
		{"Rows", s.Rows},
		{"Min FL", s.MinFL},
		{"Max FL", s.MaxFL},
		{"Critical depth (m)", s.CriticalDepth},
		{"Liquefiable rows", s.Liquefiable},
		{"Risk", string(s.Risk)},
		{"Events", len(r.Events)},
		{"Generated", r.GeneratedAt.Format("2006-01-02 15:04:05Z")},
	}
	for i, p := range pairs {
		row := []any{p[0], p[1]}
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(sheetSummary, cell, &row); err != nil {
			return err
		}
	}
	if err := f.SetCellStyle(sheetSummary, "A1", fmt.Sprintf("A%d", len(pairs)), bold); err != nil {
		return err
	}
	if err := f.SetColWidth(sheetSummary, "A", "A", 24); err != nil {
		return err
	}

	return f.SaveAs(path)
}
