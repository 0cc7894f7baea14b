package main

import (
	"net/http"
	"strconv"

	"meditrack/catalog"
	"meditrack/models"
	"meditrack/trends"
)

// trendQuery pulls the shared history query knobs out of the request.
// patient narrows across patients sharing the account; required for history
// and changes, optional for summary.
func (a *App) trendQuery(w http.ResponseWriter, r *http.Request) (reports []models.Report, patient string, rt catalog.ReportType, param string, ok bool) {
	oid, okID := a.ownerID(w, r)
	if !okID {
		return nil, "", "", "", false
	}
	q := r.URL.Query()

	patient = q.Get("patient")
	param = q.Get("parameter")
	if patient == "" || param == "" {
		writeErr(w, http.StatusBadRequest, "patient and parameter query params are required")
		return nil, "", "", "", false
	}
	if _, known := a.cat.Lookup(param); !known {
		writeErr(w, http.StatusBadRequest, "unknown parameter: "+param)
		return nil, "", "", "", false
	}

	rt, known := catalog.ParseReportType(q.Get("type"))
	if !known {
		writeErr(w, http.StatusBadRequest, "unknown report type: "+q.Get("type"))
		return nil, "", "", "", false
	}

	reports, err := a.store.ListAll(r.Context(), oid)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, "list reports")
		return nil, "", "", "", false
	}
	return reports, patient, rt, param, true
}

// handleTrendHistory returns the chronological series of one parameter for
// one patient and report type, with change deltas and a moving average.
func (a *App) handleTrendHistory(w http.ResponseWriter, r *http.Request) {
	reports, patient, rt, param, ok := a.trendQuery(w, r)
	if !ok {
		return
	}
	points := trends.History(reports, patient, rt, param)
	if points == nil {
		points = []trends.Point{}
	}
	writeJSON(w, http.StatusOK, points)
}

// handleTrendSummary reports, per report type, how many reports a patient
// has, the span they cover, and which parameters have enough observations
// to trend.
func (a *App) handleTrendSummary(w http.ResponseWriter, r *http.Request) {
	oid, ok := a.ownerID(w, r)
	if !ok {
		return
	}
	patient := r.URL.Query().Get("patient")
	if patient == "" {
		writeErr(w, http.StatusBadRequest, "patient query param is required")
		return
	}
	reports, err := a.store.ListAll(r.Context(), oid)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, "list reports")
		return
	}
	writeJSON(w, http.StatusOK, trends.Summary(a.cat, reports, patient))
}

// handleSignificantChanges returns consecutive observations whose relative
// change crosses the threshold (percent, default 10).
func (a *App) handleSignificantChanges(w http.ResponseWriter, r *http.Request) {
	reports, patient, rt, param, ok := a.trendQuery(w, r)
	if !ok {
		return
	}

	threshold := trends.DefaultChangeThreshold
	if v := r.URL.Query().Get("threshold"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f <= 0 {
			writeErr(w, http.StatusBadRequest, "threshold must be a positive number")
			return
		}
		threshold = f
	}

	changes := trends.SignificantChanges(reports, patient, rt, param, threshold)
	if changes == nil {
		changes = []trends.Change{}
	}
	writeJSON(w, http.StatusOK, changes)
}
