package catalog

// Status classifies a value against a parameter's normal range.
type Status string

const (
	StatusLow     Status = "Low"
	StatusHigh    Status = "High"
	StatusNormal  Status = "Normal"
	StatusUnknown Status = "Unknown"
)

// Severity indicates how a status should be surfaced.
type Severity string

const (
	SeverityOK      Severity = "ok"
	SeverityAlert   Severity = "alert"
	SeverityUnknown Severity = "unknown"
)

// Evaluate classifies value against the parameter's normal range.
// Boundaries are inclusive of Normal. Unknown when the parameter has no
// catalogue entry or the value is missing.
func (c *Catalog) Evaluate(param string, value *float64) (Status, Severity) {
	spec, ok := c.Lookup(param)
	if !ok || value == nil {
		return StatusUnknown, SeverityUnknown
	}
	switch {
	case *value < spec.NormalMin:
		return StatusLow, SeverityAlert
	case *value > spec.NormalMax:
		return StatusHigh, SeverityAlert
	default:
		return StatusNormal, SeverityOK
	}
}
