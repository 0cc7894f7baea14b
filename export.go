package main

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"

	"meditrack/catalog"
	"meditrack/models"
)

const exportSheet = "Reports"

var exportMetaColumns = []string{"Date", "Report Type", "Patient Name", "Age", "Gender"}
var exportTailColumns = []string{"Ultrasound Findings", "Ultrasound Impression", "Notes"}

// exportHeader is the full-workbook column set: metadata, every catalogue
// parameter in order, then free-text fields.
func exportHeader(cat *catalog.Catalog) []string {
	header := append([]string{}, exportMetaColumns...)
	header = append(header, cat.Names()...)
	return append(header, exportTailColumns...)
}

func exportRow(r models.Report, params []string) []string {
	row := []string{
		r.Date.Format("2006-01-02"),
		string(r.ReportType),
		r.PatientName,
		"",
		r.PatientGender,
	}
	if r.PatientAge != nil {
		row[3] = strconv.Itoa(*r.PatientAge)
	}
	for _, p := range params {
		if v, ok := r.Value(p); ok {
			row = append(row, strconv.FormatFloat(v, 'f', -1, 64))
		} else {
			row = append(row, "")
		}
	}
	return append(row, r.UltrasoundFindings, r.UltrasoundImpression, r.Notes)
}

// buildXLSX renders every report into a single-sheet workbook with the full
// catalogue column layout.
func buildXLSX(cat *catalog.Catalog, reports []models.Report) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	if _, err := f.NewSheet(exportSheet); err != nil {
		return nil, err
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"DDEBF7"}, Pattern: 1},
	})
	if err != nil {
		return nil, err
	}

	header := exportHeader(cat)
	for i, h := range header {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(exportSheet, cell, h); err != nil {
			return nil, err
		}
	}
	last, _ := excelize.CoordinatesToCellName(len(header), 1)
	if err := f.SetCellStyle(exportSheet, "A1", last, headerStyle); err != nil {
		return nil, err
	}

	params := cat.Names()
	for rowIdx, rep := range reports {
		row := exportRow(rep, params)
		for colIdx, val := range row {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				return nil, err
			}
			// Keep numeric cells numeric so spreadsheets can chart them.
			if colIdx >= len(exportMetaColumns) && colIdx < len(exportMetaColumns)+len(params) && val != "" {
				num, perr := strconv.ParseFloat(val, 64)
				if perr == nil {
					if err := f.SetCellValue(exportSheet, cell, num); err != nil {
						return nil, err
					}
					continue
				}
			}
			if err := f.SetCellValue(exportSheet, cell, val); err != nil {
				return nil, err
			}
		}
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return &buf, nil
}

// buildCSV renders reports as CSV. When a report type filter is active the
// parameter columns narrow to that type's panel.
func buildCSV(cat *catalog.Catalog, reports []models.Report, rt *catalog.ReportType) (*bytes.Buffer, error) {
	params := cat.Names()
	if rt != nil {
		params = cat.ParametersFor(*rt)
	}
	header := append([]string{}, exportMetaColumns...)
	header = append(header, params...)
	header = append(header, exportTailColumns...)

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, rep := range reports {
		if rt != nil && rep.ReportType != *rt {
			continue
		}
		if err := w.Write(exportRow(rep, params)); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return &buf, nil
}
