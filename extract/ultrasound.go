package extract

import (
	"regexp"
	"strings"
)

// OrganObservation is one organ mention with a measured size and/or a
// qualitative descriptor lifted from the scan text.
type OrganObservation struct {
	Organ  string `json:"organ"`
	Size   string `json:"size,omitempty"`
	Status string `json:"status,omitempty"`
}

// UltrasoundResult is the free-text extraction path used for scan
// reports, which carry narrative sections instead of a value table.
type UltrasoundResult struct {
	Findings   string             `json:"findings,omitempty"`
	Impression string             `json:"impression,omitempty"`
	Organs     []OrganObservation `json:"organs,omitempty"`
}

var (
	findingsRe   = regexp.MustCompile(`(?is)\bfindings?\s*[:\-]?\s*(.+?)(?:\bimpression\b|\bconclusion\b|\badvice\b|\z)`)
	impressionRe = regexp.MustCompile(`(?is)\b(?:impression|conclusion)\s*[:\-]?\s*(.+?)(?:\badvice\b|\bsuggestion\b|\z)`)
)

// Organs scanned for, in report order. Sided kidneys come before the
// bare word so "right kidney" is not swallowed by "kidney".
var organNames = []string{
	"liver", "gall bladder", "gallbladder", "pancreas", "spleen",
	"right kidney", "left kidney", "kidney", "urinary bladder",
	"uterus", "prostate", "thyroid",
}

var organStatusWords = `(normal|enlarged|dilated|thickened|echogenic|heterogeneous|unremarkable|distended|atrophic|bulky)`

type organMatcher struct {
	organ  string
	sizeRe *regexp.Regexp
	descRe *regexp.Regexp
}

var organMatchers = buildOrganMatchers()

func buildOrganMatchers() []organMatcher {
	out := make([]organMatcher, 0, len(organNames))
	for _, organ := range organNames {
		out = append(out, organMatcher{
			organ:  organ,
			sizeRe: regexp.MustCompile(`(?i)` + organ + `[^\n.]*?(\d+(?:\.\d+)?)\s*(cm|mm)`),
			descRe: regexp.MustCompile(`(?i)` + organ + `[^\n]*?\b` + organStatusWords + `\b`),
		})
	}
	return out
}

// Ultrasound extracts organ sizes, qualitative status strings and the
// Findings/Impression sections bounded by their headers.
func (e *Extractor) Ultrasound(text string) UltrasoundResult {
	var res UltrasoundResult

	if m := findingsRe.FindStringSubmatch(text); m != nil {
		res.Findings = strings.TrimSpace(m[1])
	}
	if m := impressionRe.FindStringSubmatch(text); m != nil {
		res.Impression = strings.TrimSpace(m[1])
	}

	seen := make(map[string]bool)
	for _, om := range organMatchers {
		// "right kidney" already reported suppresses the bare "kidney" hit
		// on the same text.
		if covered(seen, om.organ) {
			continue
		}
		obs := OrganObservation{Organ: titleCase(om.organ)}
		if m := om.sizeRe.FindStringSubmatch(text); m != nil {
			obs.Size = m[1] + " " + strings.ToLower(m[2])
		}
		if m := om.descRe.FindStringSubmatch(text); m != nil {
			obs.Status = strings.ToLower(m[1])
		}
		if obs.Size != "" || obs.Status != "" {
			res.Organs = append(res.Organs, obs)
			seen[om.organ] = true
		}
	}
	return res
}

func covered(seen map[string]bool, organ string) bool {
	for s := range seen {
		if strings.Contains(s, organ) {
			return true
		}
	}
	return false
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
