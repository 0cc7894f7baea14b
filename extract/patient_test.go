package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meditrack/catalog"
)

func TestPatient(t *testing.T) {
	e := New(catalog.Default())

	tests := []struct {
		name   string
		text   string
		want   string
		age    int
		gender string
	}{
		{"labelled header", "Patient Name: Asha Rao\nAge: 42 Sex: F", "Asha Rao", 42, "Female"},
		{"name of patient form", "Name of Patient - Ravi Kumar\nAge - 61 Gender: Male", "Ravi Kumar", 61, "Male"},
		{"inline age tail cut", "Patient: John Smith Age 35 Sex M", "John Smith", 35, "Male"},
		{"dotted initials kept", "Name: K. Lakshmi\nAge: 29", "K. Lakshmi", 29, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := e.Patient(tt.text)
			assert.Equal(t, tt.want, info.Name)
			if tt.age > 0 {
				require.NotNil(t, info.Age)
				assert.Equal(t, tt.age, *info.Age)
			}
			assert.Equal(t, tt.gender, info.Gender)
		})
	}
}

func TestPatientAbsent(t *testing.T) {
	e := New(catalog.Default())
	info := e.Patient("Hemoglobin: 13.5 g/dL")
	assert.Empty(t, info.Name)
	assert.Nil(t, info.Age)
	assert.Empty(t, info.Gender)
}

func TestPatientAgeGuards(t *testing.T) {
	e := New(catalog.Default())

	info := e.Patient("Age: 250")
	assert.Nil(t, info.Age, "implausible ages are dropped")

	info = e.Patient("Age: 0")
	assert.Nil(t, info.Age)
}
