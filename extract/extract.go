// Package extract turns raw OCR text into a structured draft report:
// report-type classification, per-parameter value extraction, patient
// metadata and ultrasound sections. All functions are pure with respect
// to the review workflow; re-parsing the same text is idempotent and
// never requires re-running OCR.
package extract

import (
	"math"
	"regexp"
	"strconv"

	"meditrack/catalog"
)

// matchStrategy tags one of the ordered regex families tried per synonym,
// tightest first. Ordering is part of the extraction contract.
type matchStrategy int

const (
	// "Hemoglobin: 13.5": label, separator run, number.
	strategyLabelValue matchStrategy = iota
	// "Hemoglobin (g/dL) ... 13.5": label then a number later on the
	// same line. Known precision/recall tradeoff on dense tables: a
	// number belonging to an unrelated field can be misattributed.
	strategyLabelWindow
	// "13.5 g/dL Hemoglobin": value-before-label layouts.
	strategyValueLabel
)

type synonymMatcher struct {
	strategy matchStrategy
	re       *regexp.Regexp
}

type paramMatchers struct {
	name     string
	matchers []synonymMatcher // synonym-major, strategy-minor
}

// Extractor applies the catalogue's synonym patterns to OCR text.
// Construct once; the compiled matchers are immutable.
type Extractor struct {
	cat      *catalog.Catalog
	matchers []paramMatchers
}

// New compiles matchers for every catalogue parameter. Synonyms are
// treated as case-insensitive regular-expression fragments.
func New(cat *catalog.Catalog) *Extractor {
	e := &Extractor{cat: cat}
	for _, name := range cat.Names() {
		spec, _ := cat.Lookup(name)
		pm := paramMatchers{name: name}
		for _, syn := range spec.Synonyms {
			pm.matchers = append(pm.matchers,
				synonymMatcher{strategyLabelValue, regexp.MustCompile(`(?i)` + syn + `[:\s\-=]*([0-9]+\.?[0-9]*)`)},
				synonymMatcher{strategyLabelWindow, regexp.MustCompile(`(?i)` + syn + `.*?([0-9]+\.?[0-9]*)`)},
				synonymMatcher{strategyValueLabel, regexp.MustCompile(`(?i)([0-9]+\.?[0-9]*)\s*(?:[a-zµ/%]+\s*)?` + syn)},
			)
		}
		e.matchers = append(e.matchers, pm)
	}
	return e
}

// Catalog returns the catalogue the extractor was built from.
func (e *Extractor) Catalog() *catalog.Catalog { return e.cat }

// bpRe recognizes blood pressure in systolic/diastolic slash notation.
// BP never appears as "label: number" on scanned reports, so this is
// checked globally and overrides any per-parameter partial match.
var bpRe = regexp.MustCompile(`(\d{2,3})/(\d{2,3})`)

// Fields recovers parameter values from text. For each catalogue
// parameter the synonym matchers run in order and the first parseable
// number wins; unparseable matches are treated as non-matches and the
// scan continues. Absence is the normal outcome for most parameters.
func (e *Extractor) Fields(text string) map[string]float64 {
	values := make(map[string]float64)
	for _, pm := range e.matchers {
		for _, m := range pm.matchers {
			sub := m.re.FindStringSubmatch(text)
			if sub == nil {
				continue
			}
			v, err := strconv.ParseFloat(sub[1], 64)
			if err != nil {
				continue
			}
			values[pm.name] = v
			break
		}
	}

	if sub := bpRe.FindStringSubmatch(text); sub != nil {
		sys, errS := strconv.ParseFloat(sub[1], 64)
		dia, errD := strconv.ParseFloat(sub[2], 64)
		if errS == nil && errD == nil {
			values["Blood Pressure Systolic"] = sys
			values["Blood Pressure Diastolic"] = dia
		}
	}

	applyDerived(values)
	return values
}

// applyDerived fills Globulin and A/G Ratio from the protein panel.
// Runs once after direct extraction and never overwrites an extracted
// value. Unmet preconditions are silently skipped.
func applyDerived(values map[string]float64) {
	alb, hasAlb := values["Albumin"]
	tp, hasTP := values["Total Protein"]
	if hasAlb && hasTP {
		if _, ok := values["Globulin"]; !ok {
			values["Globulin"] = round2(tp - alb)
		}
	}
	if glob, ok := values["Globulin"]; ok && glob > 0 && hasAlb {
		if _, ok := values["A/G Ratio"]; !ok {
			values["A/G Ratio"] = round2(alb / glob)
		}
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Result is the structured draft produced from one OCR pass.
type Result struct {
	ReportType catalog.ReportType `json:"reportType"`
	Values     map[string]float64 `json:"values"`
	Patient    PatientInfo        `json:"patient"`
	Ultrasound *UltrasoundResult  `json:"ultrasound,omitempty"`
}

// Parse classifies the text (unless the caller overrides the type) and
// runs the matching extraction path. Ultrasound reports take the
// free-text path and skip the quantitative loop entirely.
func (e *Extractor) Parse(text string, override *catalog.ReportType) Result {
	rt := e.Classify(text)
	if override != nil {
		rt = *override
	}
	res := Result{ReportType: rt, Patient: e.Patient(text)}
	if rt == catalog.TypeUltrasound {
		u := e.Ultrasound(text)
		res.Ultrasound = &u
		res.Values = map[string]float64{}
		return res
	}
	res.Values = e.Fields(text)
	return res
}
