package extract

import (
	"regexp"
	"strings"

	"meditrack/catalog"
)

// typeRule is one classifier step: a report type plus the indicator
// keywords (and optional pattern) that select it.
type typeRule struct {
	rtype    catalog.ReportType
	keywords []string
	pattern  *regexp.Regexp
}

// classifyRules run in priority order; report texts share vocabulary
// (a liver panel also mentions "blood"), so order matters. Ultrasound
// goes first because its free-text findings sections are otherwise
// easily misclassified as lab-value tables.
var classifyRules = []typeRule{
	{catalog.TypeUltrasound, []string{"ultrasound", "sonography", "usg"},
		regexp.MustCompile(`(?i)\b\d+(\.\d+)?\s*mm\b`)},
	{catalog.TypeLiverFunction, []string{"liver function", "lft", "sgot", "sgpt", "bilirubin"}, nil},
	{catalog.TypeCBP, []string{"complete blood", "cbc", "cbp", "hemoglobin", "wbc", "rbc"}, nil},
	{catalog.TypeThyroid, []string{"thyroid", "tsh", "t3", "t4"}, nil},
	{catalog.TypeVitalsCheck, []string{"blood pressure", "heart rate", "temperature", "vitals"}, nil},
}

// Classify picks a report type from indicator keywords. Total: any
// input, including the empty string, resolves to a type; unmatched text
// degrades to Blood Test. A caller-supplied override bypasses this
// entirely (see Extractor.Parse).
func (e *Extractor) Classify(text string) catalog.ReportType {
	lower := strings.ToLower(text)
	for _, r := range classifyRules {
		for _, kw := range r.keywords {
			if strings.Contains(lower, kw) {
				return r.rtype
			}
		}
		if r.pattern != nil && r.pattern.MatchString(text) {
			return r.rtype
		}
	}
	return catalog.TypeBloodTest
}
