package main

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"meditrack/catalog"
	"meditrack/models"
)

func exportFixture() []models.Report {
	age := 42
	return []models.Report{
		{
			Date:        time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
			ReportType:  catalog.TypeCBP,
			PatientName: "Asha Rao",
			PatientAge:  &age,
			Values:      map[string]float64{"Hemoglobin": 11.2, "WBC": 9800},
			Notes:       "post-treatment follow up",
		},
		{
			Date:        time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC),
			ReportType:  catalog.TypeThyroid,
			PatientName: "Asha Rao",
			Values:      map[string]float64{"TSH": 2.1},
		},
	}
}

func TestBuildXLSX(t *testing.T) {
	cat := catalog.Default()
	buf, err := buildXLSX(cat, exportFixture())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(exportSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3, "header plus two reports")

	header := rows[0]
	assert.Equal(t, "Date", header[0])
	assert.Equal(t, "Report Type", header[1])
	assert.Equal(t, "Patient Name", header[2])
	assert.Len(t, header, len(exportMetaColumns)+cat.Len()+len(exportTailColumns))

	colOf := func(name string) int {
		for i, h := range header {
			if h == name {
				return i
			}
		}
		t.Fatalf("column %q not in header", name)
		return -1
	}

	first := rows[1]
	assert.Equal(t, "2026-03-10", first[0])
	assert.Equal(t, "Complete Blood Picture", first[1])
	assert.Equal(t, "Asha Rao", first[2])
	assert.Equal(t, "42", first[3])
	assert.Equal(t, "11.2", first[colOf("Hemoglobin")])
	assert.Equal(t, "9800", first[colOf("WBC")])

	second := rows[2]
	assert.Equal(t, "Thyroid Test", second[1])
	assert.Equal(t, "2.1", second[colOf("TSH")])
	// Undetected parameters stay blank, never zero.
	if idx := colOf("Hemoglobin"); idx < len(second) {
		assert.Empty(t, second[idx])
	}
}

func TestBuildCSVFullCatalogue(t *testing.T) {
	cat := catalog.Default()
	buf, err := buildCSV(cat, exportFixture(), nil)
	require.NoError(t, err)

	records, err := csv.NewReader(buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Len(t, records[0], len(exportMetaColumns)+cat.Len()+len(exportTailColumns))
}

func TestBuildCSVTypeFilterNarrowsColumns(t *testing.T) {
	cat := catalog.Default()
	rt := catalog.TypeThyroid
	buf, err := buildCSV(cat, exportFixture(), &rt)
	require.NoError(t, err)

	records, err := csv.NewReader(buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2, "header plus the single thyroid report")

	header := records[0]
	assert.Len(t, header, len(exportMetaColumns)+3+len(exportTailColumns))
	assert.Contains(t, header, "TSH")
	assert.NotContains(t, header, "Hemoglobin")

	row := records[1]
	assert.Equal(t, "2026-01-05", row[0])
	assert.Equal(t, "Thyroid Test", row[1])
}

func TestBuildCSVEmpty(t *testing.T) {
	buf, err := buildCSV(catalog.Default(), nil, nil)
	require.NoError(t, err)
	records, err := csv.NewReader(buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1, "header only")
}
