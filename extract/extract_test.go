package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meditrack/catalog"
)

func TestFieldsSynonymsAndLayouts(t *testing.T) {
	e := New(catalog.Default())

	tests := []struct {
		name  string
		text  string
		param string
		want  float64
	}{
		{"colon separator", "Hemoglobin: 13.5 g/dL", "Hemoglobin", 13.5},
		{"dash separator", "Hemoglobin - 13.5", "Hemoglobin", 13.5},
		{"equals separator", "Hb = 13.5", "Hemoglobin", 13.5},
		{"bare spaces", "Haemoglobin 13.5", "Hemoglobin", 13.5},
		{"short synonym", "HB: 13.5", "Hemoglobin", 13.5},
		{"value before label", "13.5 g/dL Hemoglobin", "Hemoglobin", 13.5},
		{"integer value", "WBC count: 7500 /µL", "WBC", 7500},
		{"dotted synonym", "T. Bilirubin 0.9 mg/dL", "Total Bilirubin", 0.9},
		{"slash synonym", "SGOT/AST: 34", "SGOT (AST)", 34},
		{"thyroid hyphen", "T-3: 1.4 ng/mL", "T3 (Triiodothyronine)", 1.4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values := e.Fields(tt.text)
			got, ok := values[tt.param]
			require.True(t, ok, "expected %s detected in %q", tt.param, tt.text)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFieldsAbsenceIsNotZero(t *testing.T) {
	e := New(catalog.Default())

	values := e.Fields("Glucose: 92 mg/dL")
	assert.Equal(t, 92.0, values["Glucose"])
	_, present := values["Hemoglobin"]
	assert.False(t, present, "undetected parameters must stay absent")
}

func TestFieldsBloodPressureSlash(t *testing.T) {
	e := New(catalog.Default())

	values := e.Fields("BP: 130/85 mmHg recorded at rest")
	assert.Equal(t, 130.0, values["Blood Pressure Systolic"])
	assert.Equal(t, 85.0, values["Blood Pressure Diastolic"])
}

func TestFieldsDerivedProteinPanel(t *testing.T) {
	e := New(catalog.Default())

	t.Run("globulin and ratio derived", func(t *testing.T) {
		values := e.Fields("Total Protein: 7.0 g/dL\nAlbumin: 4.0 g/dL")
		assert.Equal(t, 3.0, values["Globulin"])
		assert.Equal(t, 1.33, values["A/G Ratio"])
	})

	t.Run("extracted globulin wins over derivation", func(t *testing.T) {
		values := e.Fields("Total Protein: 7.0\nAlbumin: 4.0\nGlobulin: 2.8")
		assert.Equal(t, 2.8, values["Globulin"])
		// Ratio still derives from the extracted globulin.
		assert.Equal(t, 1.43, values["A/G Ratio"])
	})

	t.Run("no albumin no derivation", func(t *testing.T) {
		values := e.Fields("Total Protein: 7.0 g/dL")
		_, ok := values["Globulin"]
		assert.False(t, ok)
		_, ok = values["A/G Ratio"]
		assert.False(t, ok)
	})
}

func TestParseEndToEnd(t *testing.T) {
	e := New(catalog.Default())

	text := `COMPLETE BLOOD PICTURE
Patient Name: Asha Rao
Age: 42 Sex: F
Hemoglobin: 11.2 g/dL
WBC count: 9800 /µL
Platelet count: 210000`

	res := e.Parse(text, nil)
	assert.Equal(t, catalog.TypeCBP, res.ReportType)
	assert.Equal(t, "Asha Rao", res.Patient.Name)
	require.NotNil(t, res.Patient.Age)
	assert.Equal(t, 42, *res.Patient.Age)
	assert.Equal(t, "Female", res.Patient.Gender)
	assert.Equal(t, 11.2, res.Values["Hemoglobin"])
	assert.Equal(t, 9800.0, res.Values["WBC"])
	assert.Equal(t, 210000.0, res.Values["Platelets"])
	assert.Nil(t, res.Ultrasound)
}

func TestParseProteinPanelScenario(t *testing.T) {
	e := New(catalog.Default())

	res := e.Parse("Hemoglobin: 13.5 g/dL\nAlbumin 4.0\nTotal Protein 7.0", nil)
	assert.Equal(t, catalog.TypeCBP, res.ReportType)
	assert.Equal(t, map[string]float64{
		"Hemoglobin":    13.5,
		"Albumin":       4.0,
		"Total Protein": 7.0,
		"Globulin":      3.0,
		"A/G Ratio":     1.33,
	}, res.Values)
}

func TestParseOverrideWins(t *testing.T) {
	e := New(catalog.Default())

	text := "Hemoglobin: 13.5" // would classify as CBP
	rt := catalog.TypeGeneral
	res := e.Parse(text, &rt)
	assert.Equal(t, catalog.TypeGeneral, res.ReportType)
	// Extraction is catalogue-wide regardless of the chosen type.
	assert.Equal(t, 13.5, res.Values["Hemoglobin"])
}

func TestParseUltrasoundSkipsValues(t *testing.T) {
	e := New(catalog.Default())

	text := `USG ABDOMEN
FINDINGS: Liver is normal in size and echotexture. Gall bladder wall 3.1 mm.
IMPRESSION: Normal study.`

	res := e.Parse(text, nil)
	assert.Equal(t, catalog.TypeUltrasound, res.ReportType)
	require.NotNil(t, res.Ultrasound)
	assert.Empty(t, res.Values, "ultrasound reports carry no quantitative values")
}

// Re-parsing the same text yields the same result; review round-trips
// never need the OCR service again.
func TestParseIdempotent(t *testing.T) {
	e := New(catalog.Default())

	text := "LFT\nTotal Protein: 7.2\nAlbumin: 4.1\nSGOT: 38"
	first := e.Parse(text, nil)
	second := e.Parse(text, nil)
	assert.Equal(t, first, second)
}
