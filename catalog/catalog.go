// Package catalog holds the static registry of clinical parameters the
// system knows how to extract, their synonym patterns, units and normal
// ranges, plus the closed set of report types. The registry is built once
// at startup and passed explicitly to the extractor and evaluators, so
// tests can substitute a smaller fixture.
package catalog

// ReportType is the closed-set classification of a medical document.
type ReportType string

const (
	TypeBloodTest     ReportType = "Blood Test"
	TypeVitalsCheck   ReportType = "Vitals Check"
	TypeGeneral       ReportType = "General Checkup"
	TypeLiverFunction ReportType = "Liver Function Test"
	TypeCBP           ReportType = "Complete Blood Picture"
	TypeThyroid       ReportType = "Thyroid Test"
	TypeComprehensive ReportType = "Comprehensive Health Check"
	TypeUltrasound    ReportType = "Ultrasound Report"
)

// Types lists every report type, in the order shown to users.
func Types() []ReportType {
	return []ReportType{
		TypeBloodTest,
		TypeVitalsCheck,
		TypeGeneral,
		TypeLiverFunction,
		TypeCBP,
		TypeThyroid,
		TypeComprehensive,
		TypeUltrasound,
	}
}

// ParseReportType maps a client-supplied string onto the closed set.
func ParseReportType(s string) (ReportType, bool) {
	for _, t := range Types() {
		if string(t) == s {
			return t, true
		}
	}
	return "", false
}

// ParameterSpec describes one clinical measurement: how it may be labelled
// in OCR text, its unit, and the normal range used for status evaluation.
// Synonyms are ordered regular-expression fragments, first match wins.
type ParameterSpec struct {
	Name      string   `json:"name"`
	Synonyms  []string `json:"-"`
	Unit      string   `json:"unit"`
	NormalMin float64  `json:"normalMin"`
	NormalMax float64  `json:"normalMax"`
}

// Catalog is the immutable parameter registry. Lookup is by name;
// Names preserves the declaration order, which doubles as the column
// order of the tabular store and exports.
type Catalog struct {
	params map[string]ParameterSpec
	order  []string
	byType map[ReportType][]string
}

// New builds a catalog from specs and a report-type → parameter grouping.
// Grouping entries naming unknown parameters are dropped.
func New(specs []ParameterSpec, byType map[ReportType][]string) *Catalog {
	c := &Catalog{
		params: make(map[string]ParameterSpec, len(specs)),
		order:  make([]string, 0, len(specs)),
		byType: make(map[ReportType][]string, len(byType)),
	}
	for _, s := range specs {
		if _, dup := c.params[s.Name]; dup {
			continue
		}
		c.params[s.Name] = s
		c.order = append(c.order, s.Name)
	}
	for t, names := range byType {
		kept := make([]string, 0, len(names))
		for _, n := range names {
			if _, ok := c.params[n]; ok {
				kept = append(kept, n)
			}
		}
		c.byType[t] = kept
	}
	return c
}

// Lookup returns the spec for a parameter name.
func (c *Catalog) Lookup(name string) (ParameterSpec, bool) {
	s, ok := c.params[name]
	return s, ok
}

// Names returns all parameter names in declaration (column) order.
func (c *Catalog) Names() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// Len reports the catalogue size.
func (c *Catalog) Len() int { return len(c.order) }

// ParametersFor returns the parameters considered relevant for a report
// type. Extraction is not restricted to this subset; it drives display
// and validation only.
func (c *Catalog) ParametersFor(t ReportType) []string {
	names := c.byType[t]
	out := make([]string, len(names))
	copy(out, names)
	return out
}

// Default returns the production catalogue. Ranges and synonyms follow
// common Indian lab report conventions; values are reference defaults,
// not medical advice.
func Default() *Catalog {
	specs := []ParameterSpec{
		// Basic vitals and blood chemistry
		{Name: "Hemoglobin", Synonyms: []string{"hemoglobin", "haemoglobin", "hb"}, Unit: "g/dL", NormalMin: 12.0, NormalMax: 17.0},
		{Name: "RBC", Synonyms: []string{"rbc count", "red blood cells", "red blood cell", "rbc"}, Unit: "million/µL", NormalMin: 4.0, NormalMax: 6.0},
		{Name: "WBC", Synonyms: []string{"wbc count", "white blood cells", "white blood cell", "total leucocyte", "leukocyte", "wbc"}, Unit: "/µL", NormalMin: 4000, NormalMax: 11000},
		{Name: "Platelets", Synonyms: []string{"platelet count", "platelets", "platelet"}, Unit: "/µL", NormalMin: 150000, NormalMax: 400000},
		{Name: "Glucose", Synonyms: []string{"fasting glucose", "blood glucose", "blood sugar", "glucose", "sugar"}, Unit: "mg/dL", NormalMin: 70, NormalMax: 100},
		{Name: "Cholesterol", Synonyms: []string{"total cholesterol", "serum cholesterol", "cholesterol"}, Unit: "mg/dL", NormalMin: 0, NormalMax: 200},
		{Name: "Blood Pressure Systolic", Synonyms: []string{"blood pressure systolic", "bp systolic", "systolic pressure", "systolic"}, Unit: "mmHg", NormalMin: 90, NormalMax: 120},
		{Name: "Blood Pressure Diastolic", Synonyms: []string{"blood pressure diastolic", "bp diastolic", "diastolic pressure", "diastolic"}, Unit: "mmHg", NormalMin: 60, NormalMax: 80},
		{Name: "Heart Rate", Synonyms: []string{"heart rate", "pulse rate", "pulse"}, Unit: "bpm", NormalMin: 60, NormalMax: 100},
		{Name: "Temperature", Synonyms: []string{"body temperature", "temperature", "temp"}, Unit: "°F", NormalMin: 97.0, NormalMax: 99.0},

		// Liver function panel
		{Name: "Total Bilirubin", Synonyms: []string{"total bilirubin", "bilirubin total", `t\.?\s*bilirubin`}, Unit: "mg/dL", NormalMin: 0.2, NormalMax: 1.2},
		{Name: "Conjugated Bilirubin", Synonyms: []string{"conjugated bilirubin", "direct bilirubin", `d\.?\s*bilirubin`}, Unit: "mg/dL", NormalMin: 0.0, NormalMax: 0.3},
		{Name: "Unconjugated Bilirubin", Synonyms: []string{"unconjugated bilirubin", "indirect bilirubin", `i\.?\s*bilirubin`}, Unit: "mg/dL", NormalMin: 0.2, NormalMax: 0.9},
		{Name: "SGOT (AST)", Synonyms: []string{`sgot\s*/?\s*ast`, "aspartate aminotransferase", "sgot", "ast"}, Unit: "U/L", NormalMin: 5, NormalMax: 40},
		{Name: "SGPT (ALT)", Synonyms: []string{`sgpt\s*/?\s*alt`, "alanine aminotransferase", "sgpt", "alt"}, Unit: "U/L", NormalMin: 5, NormalMax: 40},
		{Name: "Alkaline Phosphatase", Synonyms: []string{"alkaline phosphatase", `alk\.?\s*phosphatase`, "alp"}, Unit: "U/L", NormalMin: 30, NormalMax: 120},
		{Name: "Total Protein", Synonyms: []string{"total protein", "protein total", "serum protein"}, Unit: "g/dL", NormalMin: 6.0, NormalMax: 8.3},
		{Name: "Albumin", Synonyms: []string{"serum albumin", "albumin"}, Unit: "g/dL", NormalMin: 3.5, NormalMax: 5.5},
		{Name: "Globulin", Synonyms: []string{"serum globulin", "globulin"}, Unit: "g/dL", NormalMin: 2.0, NormalMax: 3.5},
		{Name: "A/G Ratio", Synonyms: []string{"a/g ratio", "a:g ratio", "albumin globulin ratio", "ag ratio"}, Unit: "ratio", NormalMin: 1.0, NormalMax: 2.5},
		{Name: "Gamma Glutamyl Transferase", Synonyms: []string{"gamma glutamyl transferase", "gamma glutamyl", `gamma\s*gt`, "ggt"}, Unit: "U/L", NormalMin: 8, NormalMax: 61},

		// Complete blood picture indices
		{Name: "PCV/HCT", Synonyms: []string{"packed cell volume", "haematocrit", "hematocrit", "pcv", "hct"}, Unit: "%", NormalMin: 36, NormalMax: 50},
		{Name: "MCV", Synonyms: []string{"mean corpuscular volume", "mcv"}, Unit: "fL", NormalMin: 80, NormalMax: 100},
		{Name: "MCH", Synonyms: []string{"mean corpuscular hemoglobin", "mch"}, Unit: "pg", NormalMin: 27, NormalMax: 32},
		{Name: "MCHC", Synonyms: []string{"mean corpuscular hemoglobin concentration", "mchc"}, Unit: "g/dL", NormalMin: 32, NormalMax: 36},
		{Name: "RDW-CV", Synonyms: []string{"red cell distribution width", "rdw-cv", "rdw"}, Unit: "%", NormalMin: 11.5, NormalMax: 14.5},
		{Name: "MPV", Synonyms: []string{"mean platelet volume", "mpv"}, Unit: "fL", NormalMin: 7.5, NormalMax: 11.5},

		// Differential count
		{Name: "Neutrophils", Synonyms: []string{"neutrophils", "neutrophil"}, Unit: "%", NormalMin: 40, NormalMax: 70},
		{Name: "Lymphocytes", Synonyms: []string{"lymphocytes", "lymphocyte"}, Unit: "%", NormalMin: 20, NormalMax: 40},
		{Name: "Monocytes", Synonyms: []string{"monocytes", "monocyte"}, Unit: "%", NormalMin: 2, NormalMax: 8},
		{Name: "Eosinophils", Synonyms: []string{"eosinophils", "eosinophil"}, Unit: "%", NormalMin: 1, NormalMax: 6},

		// Thyroid panel
		{Name: "T3 (Triiodothyronine)", Synonyms: []string{"triiodothyronine", "tri-iodothyronine", "t-3", "t3"}, Unit: "ng/mL", NormalMin: 0.8, NormalMax: 2.0},
		{Name: "T4 (Thyroxine)", Synonyms: []string{"thyroxine", "t-4", "t4"}, Unit: "µg/dL", NormalMin: 5.0, NormalMax: 12.0},
		{Name: "TSH", Synonyms: []string{"thyroid stimulating hormone", "thyroid stimulating harmone", "tsh"}, Unit: "µIU/mL", NormalMin: 0.4, NormalMax: 4.5},
	}

	byType := map[ReportType][]string{
		TypeBloodTest: {
			"Hemoglobin", "RBC", "WBC", "Platelets", "Glucose", "Cholesterol",
		},
		TypeVitalsCheck: {
			"Blood Pressure Systolic", "Blood Pressure Diastolic", "Heart Rate", "Temperature",
		},
		TypeLiverFunction: {
			"Total Bilirubin", "Conjugated Bilirubin", "Unconjugated Bilirubin",
			"SGOT (AST)", "SGPT (ALT)", "Alkaline Phosphatase",
			"Total Protein", "Albumin", "Globulin", "A/G Ratio",
			"Gamma Glutamyl Transferase",
		},
		TypeCBP: {
			"Hemoglobin", "RBC", "WBC", "Platelets",
			"PCV/HCT", "MCV", "MCH", "MCHC", "RDW-CV", "MPV",
			"Neutrophils", "Lymphocytes", "Monocytes", "Eosinophils",
		},
		TypeThyroid: {
			"T3 (Triiodothyronine)", "T4 (Thyroxine)", "TSH",
		},
		TypeGeneral: {
			"Hemoglobin", "Glucose", "Cholesterol",
			"Blood Pressure Systolic", "Blood Pressure Diastolic", "Heart Rate", "Temperature",
		},
	}
	// Comprehensive check covers everything.
	all := make([]string, 0, len(specs))
	for _, s := range specs {
		all = append(all, s.Name)
	}
	byType[TypeComprehensive] = all

	return New(specs, byType)
}
