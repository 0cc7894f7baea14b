package extract

import (
	"regexp"
	"strconv"
	"strings"
)

// PatientInfo is best-effort metadata pulled from the report header.
// Absence of any field is not an error.
type PatientInfo struct {
	Name   string `json:"name,omitempty"`
	Age    *int   `json:"age,omitempty"`
	Gender string `json:"gender,omitempty"`
}

var (
	patientNameRe = regexp.MustCompile(`(?im)^\s*(?:patient(?:'s)?\s*name|name\s*of\s*patient|patient|name)\s*[:\-]\s*([A-Za-z][A-Za-z.\s]{1,40})`)
	patientAgeRe  = regexp.MustCompile(`(?i)\bage\s*[:\-]?\s*(\d{1,3})`)
	genderRe      = regexp.MustCompile(`(?i)\b(?:sex|gender)\s*[:\-]?\s*(male|female|m|f)\b`)
	nameTailRe    = regexp.MustCompile(`(?i)\s+(?:age|sex|gender|dob|date)\b.*$`)
	spacesRe      = regexp.MustCompile(`\s+`)
)

// Patient extracts name/age/gender with dedicated low-priority regex
// families. OCR headers are noisy, so everything here is tolerant and
// best-effort.
func (e *Extractor) Patient(text string) PatientInfo {
	var info PatientInfo

	if m := patientNameRe.FindStringSubmatch(text); m != nil {
		name := nameTailRe.ReplaceAllString(m[1], "")
		name = spacesRe.ReplaceAllString(strings.TrimSpace(name), " ")
		info.Name = strings.Trim(name, ". ")
	}
	if m := patientAgeRe.FindStringSubmatch(text); m != nil {
		if age, err := strconv.Atoi(m[1]); err == nil && age > 0 && age < 130 {
			info.Age = &age
		}
	}
	if m := genderRe.FindStringSubmatch(text); m != nil {
		switch strings.ToLower(m[1]) {
		case "m", "male":
			info.Gender = "Male"
		case "f", "female":
			info.Gender = "Female"
		}
	}
	return info
}
