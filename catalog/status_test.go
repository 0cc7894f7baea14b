package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func f(v float64) *float64 { return &v }

func TestEvaluate(t *testing.T) {
	c := Default() // Hemoglobin range is 12.0 – 17.0

	tests := []struct {
		name     string
		param    string
		value    *float64
		status   Status
		severity Severity
	}{
		{"below range", "Hemoglobin", f(11.9), StatusLow, SeverityAlert},
		{"lower boundary is normal", "Hemoglobin", f(12.0), StatusNormal, SeverityOK},
		{"inside range", "Hemoglobin", f(14.2), StatusNormal, SeverityOK},
		{"upper boundary is normal", "Hemoglobin", f(17.0), StatusNormal, SeverityOK},
		{"above range", "Hemoglobin", f(17.1), StatusHigh, SeverityAlert},
		{"missing value", "Hemoglobin", nil, StatusUnknown, SeverityUnknown},
		{"unknown parameter", "Vitamin D", f(30), StatusUnknown, SeverityUnknown},
		{"zero against zero-min range", "Cholesterol", f(0), StatusNormal, SeverityOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, severity := c.Evaluate(tt.param, tt.value)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.severity, severity)
		})
	}
}
