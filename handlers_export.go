package main

import (
	"net/http"
	"time"

	"meditrack/catalog"
	"meditrack/models"
)

func (a *App) exportReports(w http.ResponseWriter, r *http.Request) ([]models.Report, *catalog.ReportType, bool) {
	oid, ok := a.ownerID(w, r)
	if !ok {
		return nil, nil, false
	}

	var filter *catalog.ReportType
	if v := r.URL.Query().Get("type"); v != "" {
		rt, known := catalog.ParseReportType(v)
		if !known {
			writeErr(w, http.StatusBadRequest, "unknown report type: "+v)
			return nil, nil, false
		}
		filter = &rt
	}

	reports, err := a.store.ListAll(r.Context(), oid)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, "list reports")
		return nil, nil, false
	}
	if patient := r.URL.Query().Get("patient"); patient != "" {
		kept := reports[:0]
		for _, rep := range reports {
			if rep.PatientName == patient {
				kept = append(kept, rep)
			}
		}
		reports = kept
	}
	return reports, filter, true
}

// handleExportXLSX streams the full report history as an Excel workbook.
func (a *App) handleExportXLSX(w http.ResponseWriter, r *http.Request) {
	reports, filter, ok := a.exportReports(w, r)
	if !ok {
		return
	}
	if filter != nil {
		kept := reports[:0]
		for _, rep := range reports {
			if rep.ReportType == *filter {
				kept = append(kept, rep)
			}
		}
		reports = kept
	}

	buf, err := buildXLSX(a.cat, reports)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, "build workbook")
		return
	}
	name := "medical_reports_" + time.Now().Format("20060102") + ".xlsx"
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	_, _ = buf.WriteTo(w)
}

// handleExportCSV streams reports as CSV, with parameter columns narrowed
// when a type filter is set.
func (a *App) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	reports, filter, ok := a.exportReports(w, r)
	if !ok {
		return
	}
	buf, err := buildCSV(a.cat, reports, filter)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, "build csv")
		return
	}
	name := "medical_reports_" + time.Now().Format("20060102") + ".csv"
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	_, _ = buf.WriteTo(w)
}
