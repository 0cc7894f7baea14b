package main

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"meditrack/catalog"
	"meditrack/models"
)

type reportResponse struct {
	Index                *int               `json:"index,omitempty"`
	ID                   string             `json:"id"`
	Date                 time.Time          `json:"date"`
	ReportType           string             `json:"reportType"`
	PatientName          string             `json:"patientName"`
	PatientAge           *int               `json:"patientAge,omitempty"`
	PatientGender        string             `json:"patientGender,omitempty"`
	Notes                string             `json:"notes,omitempty"`
	Values               map[string]float64 `json:"values"`
	DetectedCount        int                `json:"detectedCount"`
	UltrasoundFindings   string             `json:"ultrasoundFindings,omitempty"`
	UltrasoundImpression string             `json:"ultrasoundImpression,omitempty"`
	CreatedAt            time.Time          `json:"createdAt"`
}

func reportView(r models.Report, index int) reportResponse {
	out := reportResponse{
		ID:                   r.ID.Hex(),
		Date:                 r.Date,
		ReportType:           string(r.ReportType),
		PatientName:          r.PatientName,
		PatientAge:           r.PatientAge,
		PatientGender:        r.PatientGender,
		Notes:                r.Notes,
		Values:               r.Values,
		DetectedCount:        len(r.Values),
		UltrasoundFindings:   r.UltrasoundFindings,
		UltrasoundImpression: r.UltrasoundImpression,
		CreatedAt:            r.CreatedAt,
	}
	if index >= 0 {
		out.Index = &index
	}
	return out
}

func (a *App) ownerID(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	oid, err := primitive.ObjectIDFromHex(mustUserID(r))
	if err != nil {
		writeErr(w, http.StatusUnauthorized, "invalid token subject")
		return primitive.NilObjectID, false
	}
	return oid, true
}

// handleListReports returns the caller's reports, newest first. An optional
// ?type= filter narrows to one report type; indexes always refer to the
// unfiltered listing so they stay valid for delete.
func (a *App) handleListReports(w http.ResponseWriter, r *http.Request) {
	oid, ok := a.ownerID(w, r)
	if !ok {
		return
	}

	var filter *catalog.ReportType
	if v := r.URL.Query().Get("type"); v != "" {
		rt, ok := catalog.ParseReportType(v)
		if !ok {
			writeErr(w, http.StatusBadRequest, "unknown report type: "+v)
			return
		}
		filter = &rt
	}

	reports, err := a.store.ListAll(r.Context(), oid)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, "list reports")
		return
	}

	out := make([]reportResponse, 0, len(reports))
	for i, rep := range reports {
		if filter != nil && rep.ReportType != *filter {
			continue
		}
		out = append(out, reportView(rep, i))
	}
	writeJSON(w, http.StatusOK, out)
}

// handleCreateReport stores a manually entered report, bypassing OCR.
func (a *App) handleCreateReport(w http.ResponseWriter, r *http.Request) {
	oid, ok := a.ownerID(w, r)
	if !ok {
		return
	}

	var req reportPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}
	rt, ok := catalog.ParseReportType(req.ReportType)
	if !ok {
		writeErr(w, http.StatusBadRequest, "unknown report type: "+req.ReportType)
		return
	}
	for name := range req.Values {
		if _, ok := a.cat.Lookup(name); !ok {
			writeErr(w, http.StatusBadRequest, "unknown parameter: "+name)
			return
		}
	}

	date := time.Now().UTC()
	if req.Date != nil {
		date = req.Date.UTC()
	}

	rep := &models.Report{
		OwnerID:              oid,
		Date:                 date,
		ReportType:           rt,
		PatientName:          req.PatientName,
		PatientAge:           req.PatientAge,
		PatientGender:        req.PatientGender,
		Notes:                req.Notes,
		Values:               req.Values,
		UltrasoundFindings:   req.UltrasoundFindings,
		UltrasoundImpression: req.UltrasoundImpression,
	}
	if err := a.store.Append(r.Context(), rep); err != nil {
		if err == errPatientRequired {
			writeErr(w, http.StatusBadRequest, err.Error())
			return
		}
		writeErr(w, http.StatusInternalServerError, "store report")
		return
	}
	writeJSON(w, http.StatusCreated, reportView(*rep, -1))
}

// handleDeleteReport removes the report at the given newest-first index.
func (a *App) handleDeleteReport(w http.ResponseWriter, r *http.Request) {
	oid, ok := a.ownerID(w, r)
	if !ok {
		return
	}
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeErr(w, http.StatusBadRequest, "index must be an integer")
		return
	}
	if err := a.store.DeleteIndex(r.Context(), oid, index); err != nil {
		writeErr(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"deletedIndex": index})
}

// handleLatestStatus evaluates the most recent report's values against the
// catalogue's normal ranges.
func (a *App) handleLatestStatus(w http.ResponseWriter, r *http.Request) {
	oid, ok := a.ownerID(w, r)
	if !ok {
		return
	}
	rep, err := a.store.Get(r.Context(), oid, 0)
	if err != nil {
		writeErr(w, http.StatusNotFound, "no reports yet")
		return
	}

	params := a.cat.ParametersFor(rep.ReportType)
	out := latestStatusResponse{
		Date:       rep.Date,
		ReportType: string(rep.ReportType),
		Patient:    rep.PatientName,
		Parameters: make([]paramStatus, 0, len(params)),
	}
	for _, name := range params {
		spec, _ := a.cat.Lookup(name)
		var val *float64
		if v, ok := rep.Value(name); ok {
			val = &v
		}
		status, severity := a.cat.Evaluate(name, val)
		out.Parameters = append(out.Parameters, paramStatus{
			Parameter: spec.Name,
			Value:     val,
			Unit:      spec.Unit,
			NormalMin: spec.NormalMin,
			NormalMax: spec.NormalMax,
			Status:    string(status),
			Severity:  string(severity),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

// handleNormalRanges exposes the reference catalogue.
func (a *App) handleNormalRanges(w http.ResponseWriter, r *http.Request) {
	out := make([]rangeEntry, 0, a.cat.Len())
	for _, name := range a.cat.Names() {
		spec, _ := a.cat.Lookup(name)
		out = append(out, rangeEntry{
			Parameter: spec.Name,
			Unit:      spec.Unit,
			NormalMin: spec.NormalMin,
			NormalMax: spec.NormalMax,
		})
	}
	writeJSON(w, http.StatusOK, out)
}
