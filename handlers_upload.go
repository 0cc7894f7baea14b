package main

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"meditrack/catalog"
	"meditrack/models"
)

const maxUploadBytes = 20 << 20 // 20 MiB

// handleUpload accepts a document, runs it through OCR and extraction, and
// opens a review session holding the draft. Nothing is stored until the
// session is committed.
func (a *App) handleUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeErr(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer file.Close()

	text, err := a.ocr.ExtractText(r.Context(), header.Filename, file)
	if err != nil {
		writeErr(w, http.StatusBadGateway, "ocr failed: "+err.Error())
		return
	}
	if text == "" {
		writeErr(w, http.StatusUnprocessableEntity, "no text recognized in document")
		return
	}

	var override *catalog.ReportType
	if v := r.FormValue("reportType"); v != "" {
		rt, ok := catalog.ParseReportType(v)
		if !ok {
			writeErr(w, http.StatusBadRequest, "unknown report type: "+v)
			return
		}
		override = &rt
	}

	res := a.ex.Parse(text, override)
	s := a.sessions.create(mustUserID(r), res, text)
	writeJSON(w, http.StatusCreated, reviewView(s, true))
}

func (a *App) handleGetReview(w http.ResponseWriter, r *http.Request) {
	s, err := a.sessions.get(mustUserID(r), chi.URLParam(r, "id"))
	if err != nil {
		writeErr(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, reviewView(s, false))
}

// handleUpdateReview edits a draft. Setting reportType re-parses the raw text
// under the new type; freshly extracted values overwrite, values the new pass
// does not produce are left as they were.
func (a *App) handleUpdateReview(w http.ResponseWriter, r *http.Request) {
	var req reportPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}

	var override *catalog.ReportType
	if req.ReportType != "" {
		rt, ok := catalog.ParseReportType(req.ReportType)
		if !ok {
			writeErr(w, http.StatusBadRequest, "unknown report type: "+req.ReportType)
			return
		}
		override = &rt
	}

	s, err := a.sessions.update(mustUserID(r), chi.URLParam(r, "id"), func(s *reviewSession) {
		if override != nil && s.Result.ReportType != *override {
			fresh := a.ex.Parse(s.RawText, override)
			for k, v := range fresh.Values {
				s.Result.Values[k] = v
			}
			s.Result.ReportType = *override
			s.Result.Ultrasound = fresh.Ultrasound
		}
		if req.PatientName != "" {
			s.Result.Patient.Name = req.PatientName
		}
		if req.PatientAge != nil {
			s.Result.Patient.Age = req.PatientAge
		}
		if req.PatientGender != "" {
			s.Result.Patient.Gender = req.PatientGender
		}
		for k, v := range req.Values {
			if _, ok := a.cat.Lookup(k); ok {
				s.Result.Values[k] = v
			}
		}
	})
	if err != nil {
		writeErr(w, http.StatusConflict, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, reviewView(s, false))
}

// handleCommitReview persists the draft as a report and closes the session.
func (a *App) handleCommitReview(w http.ResponseWriter, r *http.Request) {
	var req reportPayload
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeErr(w, http.StatusBadRequest, "invalid json")
			return
		}
	}

	ownerID := mustUserID(r)
	s, err := a.sessions.get(ownerID, chi.URLParam(r, "id"))
	if err != nil {
		writeErr(w, http.StatusNotFound, err.Error())
		return
	}
	if s.terminal() {
		writeErr(w, http.StatusConflict, "review session is "+s.State)
		return
	}

	oid, err := primitive.ObjectIDFromHex(ownerID)
	if err != nil {
		writeErr(w, http.StatusUnauthorized, "invalid token subject")
		return
	}

	date := time.Now().UTC()
	if req.Date != nil {
		date = req.Date.UTC()
	}
	name := s.Result.Patient.Name
	if req.PatientName != "" {
		name = req.PatientName
	}

	rep := &models.Report{
		OwnerID:       oid,
		Date:          date,
		ReportType:    s.Result.ReportType,
		PatientName:   name,
		PatientAge:    s.Result.Patient.Age,
		PatientGender: s.Result.Patient.Gender,
		Notes:         req.Notes,
		Values:        s.Result.Values,
	}
	if s.Result.Ultrasound != nil {
		rep.UltrasoundFindings = s.Result.Ultrasound.Findings
		rep.UltrasoundImpression = s.Result.Ultrasound.Impression
	}

	if err := a.store.Append(r.Context(), rep); err != nil {
		if err == errPatientRequired {
			writeErr(w, http.StatusBadRequest, err.Error())
			return
		}
		writeErr(w, http.StatusInternalServerError, "store report")
		return
	}

	if _, err := a.sessions.finish(ownerID, s.ID, stateCommitted); err != nil {
		writeErr(w, http.StatusConflict, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, reportView(*rep, -1))
}

func (a *App) handleDiscardReview(w http.ResponseWriter, r *http.Request) {
	s, err := a.sessions.finish(mustUserID(r), chi.URLParam(r, "id"), stateDiscarded)
	if err != nil {
		writeErr(w, http.StatusConflict, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"sessionId": s.ID, "state": s.State})
}

func reviewView(s *reviewSession, includeRaw bool) reviewResponse {
	out := reviewResponse{
		SessionID:     s.ID,
		State:         s.State,
		ReportType:    string(s.Result.ReportType),
		PatientName:   s.Result.Patient.Name,
		PatientAge:    s.Result.Patient.Age,
		PatientGender: s.Result.Patient.Gender,
		Values:        s.Result.Values,
		DetectedCount: len(s.Result.Values),
	}
	if includeRaw {
		out.RawText = s.RawText
	}
	if us := s.Result.Ultrasound; us != nil {
		v := &ultrasoundView{Findings: us.Findings, Impression: us.Impression}
		for _, o := range us.Organs {
			v.Organs = append(v.Organs, organView{Organ: o.Organ, Size: o.Size, Status: o.Status})
		}
		out.Ultrasound = v
	}
	return out
}
