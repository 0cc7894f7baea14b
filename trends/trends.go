// Package trends derives longitudinal views from stored reports:
// per-parameter history, test-frequency summaries and significant-change
// detection. All computations are pure and re-derived on each call from
// the snapshot passed in; nothing here owns state.
package trends

import (
	"sort"
	"time"

	"github.com/montanaflynn/stats"

	"meditrack/catalog"
	"meditrack/models"
)

// movingWindow is the trailing window for the moving average.
const movingWindow = 3

// DefaultChangeThreshold is the percent-change threshold used when the
// caller does not supply one.
const DefaultChangeThreshold = 10.0

// Point is one chronological observation of a parameter with its change
// from the previous observation. PercentChange is nil on the first point
// and whenever the previous value is zero.
type Point struct {
	Date           time.Time `json:"date"`
	Value          float64   `json:"value"`
	PercentChange  *float64  `json:"percentChange,omitempty"`
	AbsoluteChange *float64  `json:"absoluteChange,omitempty"`
	MovingAvg      float64   `json:"movingAvg"`
}

// History returns the date-ascending series of one parameter for one
// (patient, report type) pair. Rows missing the parameter are dropped.
func History(reports []models.Report, patient string, rt catalog.ReportType, param string) []Point {
	type obs struct {
		date  time.Time
		value float64
	}
	var rows []obs
	for _, r := range reports {
		if r.PatientName != patient || r.ReportType != rt {
			continue
		}
		if v, ok := r.Value(param); ok {
			rows = append(rows, obs{r.Date, v})
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].date.Before(rows[j].date) })

	points := make([]Point, 0, len(rows))
	for i, row := range rows {
		p := Point{Date: row.date, Value: row.value}
		if i > 0 {
			prev := rows[i-1].value
			abs := row.value - prev
			p.AbsoluteChange = &abs
			if prev != 0 {
				pct := abs / prev * 100
				p.PercentChange = &pct
			}
		}
		start := i - movingWindow + 1
		if start < 0 {
			start = 0
		}
		window := make(stats.Float64Data, 0, movingWindow)
		for _, w := range rows[start : i+1] {
			window = append(window, w.value)
		}
		p.MovingAvg, _ = stats.Mean(window)
		points = append(points, p)
	}
	return points
}

// TypeSummary describes how often one test type has been taken by a
// patient and which of its parameters have enough data to trend.
type TypeSummary struct {
	Count            int       `json:"count"`
	FirstDate        time.Time `json:"firstDate"`
	LastDate         time.Time `json:"lastDate"`
	MeanIntervalDays *float64  `json:"meanIntervalDays,omitempty"`
	// Parameters with at least two observations for this patient and
	// type. A single data point cannot show a trend, so it is excluded
	// from chart candidate lists.
	TrackableParameters []string `json:"trackableParameters"`
}

// Summary groups a patient's reports by type and computes counts, date
// bounds, mean testing interval and trackable parameters.
func Summary(cat *catalog.Catalog, reports []models.Report, patient string) map[catalog.ReportType]TypeSummary {
	byType := make(map[catalog.ReportType][]models.Report)
	for _, r := range reports {
		if r.PatientName == patient {
			byType[r.ReportType] = append(byType[r.ReportType], r)
		}
	}

	out := make(map[catalog.ReportType]TypeSummary, len(byType))
	for rt, rows := range byType {
		sort.Slice(rows, func(i, j int) bool { return rows[i].Date.Before(rows[j].Date) })

		s := TypeSummary{
			Count:     len(rows),
			FirstDate: rows[0].Date,
			LastDate:  rows[len(rows)-1].Date,
		}
		if len(rows) >= 2 {
			gaps := make(stats.Float64Data, 0, len(rows)-1)
			for i := 1; i < len(rows); i++ {
				gaps = append(gaps, rows[i].Date.Sub(rows[i-1].Date).Hours()/24)
			}
			if mean, err := stats.Mean(gaps); err == nil {
				s.MeanIntervalDays = &mean
			}
		}
		for _, param := range cat.Names() {
			n := 0
			for _, r := range rows {
				if _, ok := r.Value(param); ok {
					n++
				}
			}
			if n >= 2 {
				s.TrackableParameters = append(s.TrackableParameters, param)
			}
		}
		out[rt] = s
	}
	return out
}

// Change is a flagged transition between two consecutive same-parameter
// values whose percent change met the threshold.
type Change struct {
	Date           time.Time `json:"date"`
	FromValue      float64   `json:"fromValue"`
	ToValue        float64   `json:"toValue"`
	PercentChange  float64   `json:"percentChange"`
	AbsoluteChange float64   `json:"absoluteChange"`
	Direction      string    `json:"direction"` // increasing | decreasing
}

// SignificantChanges walks the history pairwise and emits an event for
// every |percent change| >= thresholdPercent. No smoothing is applied; a
// single noisy OCR misread can trigger a false positive, which is an
// accepted limitation.
func SignificantChanges(reports []models.Report, patient string, rt catalog.ReportType, param string, thresholdPercent float64) []Change {
	history := History(reports, patient, rt, param)

	var changes []Change
	for i := 1; i < len(history); i++ {
		curr := history[i]
		if curr.PercentChange == nil {
			continue
		}
		pct := *curr.PercentChange
		if pct < 0 {
			pct = -pct
		}
		if pct < thresholdPercent {
			continue
		}
		direction := "decreasing"
		if *curr.PercentChange > 0 {
			direction = "increasing"
		}
		changes = append(changes, Change{
			Date:           curr.Date,
			FromValue:      history[i-1].Value,
			ToValue:        curr.Value,
			PercentChange:  *curr.PercentChange,
			AbsoluteChange: *curr.AbsoluteChange,
			Direction:      direction,
		})
	}
	return changes
}
