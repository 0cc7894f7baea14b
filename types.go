package main

import (
	"encoding/json"
	"net/http"
	"time"
)

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string `json:"token"`
}

type meResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
}

// reportPayload is the client-editable view of a report, used both for
// manual creation and for review edits before commit.
type reportPayload struct {
	Date                 *time.Time         `json:"date,omitempty"`
	ReportType           string             `json:"reportType,omitempty"`
	PatientName          string             `json:"patientName,omitempty"`
	PatientAge           *int               `json:"patientAge,omitempty"`
	PatientGender        string             `json:"patientGender,omitempty"`
	Notes                string             `json:"notes,omitempty"`
	Values               map[string]float64 `json:"values,omitempty"`
	UltrasoundFindings   string             `json:"ultrasoundFindings,omitempty"`
	UltrasoundImpression string             `json:"ultrasoundImpression,omitempty"`
}

type reviewResponse struct {
	SessionID     string             `json:"sessionId"`
	State         string             `json:"state"`
	ReportType    string             `json:"reportType"`
	PatientName   string             `json:"patientName,omitempty"`
	PatientAge    *int               `json:"patientAge,omitempty"`
	PatientGender string             `json:"patientGender,omitempty"`
	Values        map[string]float64 `json:"values"`
	DetectedCount int                `json:"detectedCount"`
	Ultrasound    *ultrasoundView    `json:"ultrasound,omitempty"`
	RawText       string             `json:"rawText,omitempty"`
}

type ultrasoundView struct {
	Findings   string      `json:"findings,omitempty"`
	Impression string      `json:"impression,omitempty"`
	Organs     []organView `json:"organs,omitempty"`
}

type organView struct {
	Organ  string `json:"organ"`
	Size   string `json:"size,omitempty"`
	Status string `json:"status,omitempty"`
}

type paramStatus struct {
	Parameter string   `json:"parameter"`
	Value     *float64 `json:"value,omitempty"`
	Unit      string   `json:"unit,omitempty"`
	NormalMin float64  `json:"normalMin"`
	NormalMax float64  `json:"normalMax"`
	Status    string   `json:"status"`
	Severity  string   `json:"severity"`
}

type latestStatusResponse struct {
	Date       time.Time     `json:"date"`
	ReportType string        `json:"reportType"`
	Patient    string        `json:"patient,omitempty"`
	Parameters []paramStatus `json:"parameters"`
}

type rangeEntry struct {
	Parameter string  `json:"parameter"`
	Unit      string  `json:"unit,omitempty"`
	NormalMin float64 `json:"normalMin"`
	NormalMax float64 `json:"normalMax"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
