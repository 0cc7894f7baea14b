package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"meditrack/catalog"
)

// Report is one structured, persisted result of processing (or manually
// entering) a medical report. It is the unit of storage and of trend
// analysis.
//
// Values is keyed by catalogue parameter name and is sparse: a missing
// key means "not detected / not applicable". Absence is never encoded as
// zero, so status evaluation cannot produce a false Low.
type Report struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OwnerID primitive.ObjectID `bson:"ownerId"       json:"ownerId"`

	Date       time.Time          `bson:"date"       json:"date"`
	ReportType catalog.ReportType `bson:"reportType" json:"reportType"`

	// PatientName identifies whose record this is. It is distinct from
	// the account owner so one account can track a whole household.
	PatientName   string `bson:"patientName"             json:"patientName"`
	PatientAge    *int   `bson:"patientAge,omitempty"    json:"patientAge,omitempty"`
	PatientGender string `bson:"patientGender,omitempty" json:"patientGender,omitempty"`

	Notes  string             `bson:"notes,omitempty"  json:"notes,omitempty"`
	Values map[string]float64 `bson:"values,omitempty" json:"values,omitempty"`

	// Only meaningful when ReportType is Ultrasound Report.
	UltrasoundFindings   string `bson:"usFindings,omitempty"   json:"ultrasoundFindings,omitempty"`
	UltrasoundImpression string `bson:"usImpression,omitempty" json:"ultrasoundImpression,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

// Value returns the parameter value and whether it is present.
func (r *Report) Value(param string) (float64, bool) {
	v, ok := r.Values[param]
	return v, ok
}
