package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"meditrack/catalog"
)

func TestClassify(t *testing.T) {
	e := New(catalog.Default())

	tests := []struct {
		name string
		text string
		want catalog.ReportType
	}{
		{"liver keywords", "LIVER FUNCTION TEST\nSGOT: 32 U/L\nSGPT: 28 U/L", catalog.TypeLiverFunction},
		{"lft abbreviation", "LFT panel results attached", catalog.TypeLiverFunction},
		{"cbp keywords", "Complete Blood Picture\nHemoglobin: 13.5", catalog.TypeCBP},
		{"hemoglobin alone routes to cbp", "Hemoglobin: 13.5 g/dL", catalog.TypeCBP},
		{"thyroid keywords", "THYROID PROFILE\nTSH: 2.1", catalog.TypeThyroid},
		{"vitals keywords", "Vitals: BP 120/80, temperature 98.6 F", catalog.TypeVitalsCheck},
		{"ultrasound keyword", "ULTRASOUND ABDOMEN\nFindings: liver normal", catalog.TypeUltrasound},
		{"sonography keyword", "Whole abdomen sonography report", catalog.TypeUltrasound},
		{"mm measurement marker", "Gall bladder wall 3.2 mm, no calculi", catalog.TypeUltrasound},
		{"unmatched falls back to blood test", "Glucose 92 mg/dL", catalog.TypeBloodTest},
		{"empty input", "", catalog.TypeBloodTest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, e.Classify(tt.text))
		})
	}
}

// Liver reports mention blood counts too; the rule order must let the
// more specific type win.
func TestClassifyPriority(t *testing.T) {
	e := New(catalog.Default())

	text := "LIVER FUNCTION TEST\nHemoglobin: 13.5\nTotal Bilirubin: 0.8"
	assert.Equal(t, catalog.TypeLiverFunction, e.Classify(text))

	text = "USG ABDOMEN\nBilirubin mentioned in history\nCBD 4.1 mm"
	assert.Equal(t, catalog.TypeUltrasound, e.Classify(text))
}

// "mmHg" must not satisfy the millimetre measurement marker.
func TestClassifyMmHgNotUltrasound(t *testing.T) {
	e := New(catalog.Default())
	assert.Equal(t, catalog.TypeVitalsCheck, e.Classify("Blood pressure 130/85 mmHg"))
}
