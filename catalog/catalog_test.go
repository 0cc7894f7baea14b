package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseReportType(t *testing.T) {
	for _, rt := range Types() {
		got, ok := ParseReportType(string(rt))
		require.True(t, ok, "round-trip %q", rt)
		assert.Equal(t, rt, got)
	}

	_, ok := ParseReportType("X-Ray")
	assert.False(t, ok)
	_, ok = ParseReportType("")
	assert.False(t, ok)
	// Matching is exact, not case-folded.
	_, ok = ParseReportType("blood test")
	assert.False(t, ok)
}

func TestDefaultCatalog(t *testing.T) {
	c := Default()

	require.Greater(t, c.Len(), 30)
	assert.Len(t, c.Names(), c.Len())

	// Declaration order is the stable column order.
	names := c.Names()
	assert.Equal(t, "Hemoglobin", names[0])

	hb, ok := c.Lookup("Hemoglobin")
	require.True(t, ok)
	assert.Equal(t, "g/dL", hb.Unit)
	assert.Equal(t, 12.0, hb.NormalMin)
	assert.Equal(t, 17.0, hb.NormalMax)

	_, ok = c.Lookup("Vitamin D")
	assert.False(t, ok)

	// The derived protein-panel parameters are first-class entries.
	for _, name := range []string{"Globulin", "A/G Ratio"} {
		_, ok := c.Lookup(name)
		assert.True(t, ok, name)
	}
}

func TestParametersFor(t *testing.T) {
	c := Default()

	assert.Equal(t, []string{"T3 (Triiodothyronine)", "T4 (Thyroxine)", "TSH"},
		c.ParametersFor(TypeThyroid))

	// Comprehensive covers the whole catalogue.
	assert.Equal(t, c.Names(), c.ParametersFor(TypeComprehensive))

	// Ultrasound is free-text only.
	assert.Empty(t, c.ParametersFor(TypeUltrasound))

	lft := c.ParametersFor(TypeLiverFunction)
	assert.Contains(t, lft, "SGOT (AST)")
	assert.Contains(t, lft, "A/G Ratio")
	assert.NotContains(t, lft, "TSH")
}

func TestNewDropsUnknownGroupEntries(t *testing.T) {
	c := New(
		[]ParameterSpec{{Name: "Hemoglobin", Synonyms: []string{"hb"}, NormalMin: 12, NormalMax: 17}},
		map[ReportType][]string{TypeBloodTest: {"Hemoglobin", "Ghost"}},
	)
	assert.Equal(t, []string{"Hemoglobin"}, c.ParametersFor(TypeBloodTest))
}
