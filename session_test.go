package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meditrack/catalog"
	"meditrack/extract"
)

func draftResult() extract.Result {
	return extract.Result{
		ReportType: catalog.TypeCBP,
		Values:     map[string]float64{"Hemoglobin": 11.2},
	}
}

func TestSessionLifecycle(t *testing.T) {
	reg := newSessionRegistry()

	s := reg.create("owner-1", draftResult(), "raw text")
	assert.Equal(t, stateClassified, s.State)
	require.NotEmpty(t, s.ID)

	got, err := reg.get("owner-1", s.ID)
	require.NoError(t, err)
	assert.Equal(t, s.ID, got.ID)

	// Editing moves the draft to reviewing.
	got, err = reg.update("owner-1", s.ID, func(s *reviewSession) {
		s.Result.Values["Hemoglobin"] = 12.0
	})
	require.NoError(t, err)
	assert.Equal(t, stateReviewing, got.State)
	assert.Equal(t, 12.0, got.Result.Values["Hemoglobin"])

	got, err = reg.finish("owner-1", s.ID, stateCommitted)
	require.NoError(t, err)
	assert.Equal(t, stateCommitted, got.State)
}

func TestSessionTerminalStatesRejectEdits(t *testing.T) {
	for _, terminal := range []string{stateCommitted, stateDiscarded} {
		t.Run(terminal, func(t *testing.T) {
			reg := newSessionRegistry()
			s := reg.create("owner-1", draftResult(), "")

			_, err := reg.finish("owner-1", s.ID, terminal)
			require.NoError(t, err)

			_, err = reg.update("owner-1", s.ID, func(*reviewSession) {})
			assert.Error(t, err)
			_, err = reg.finish("owner-1", s.ID, stateCommitted)
			assert.Error(t, err, "a terminal session cannot transition again")
		})
	}
}

func TestSessionOwnerScoping(t *testing.T) {
	reg := newSessionRegistry()
	s := reg.create("owner-1", draftResult(), "")

	_, err := reg.get("owner-2", s.ID)
	assert.Error(t, err)
	_, err = reg.update("owner-2", s.ID, func(*reviewSession) {})
	assert.Error(t, err)
	_, err = reg.finish("owner-2", s.ID, stateDiscarded)
	assert.Error(t, err)

	// The rightful owner is unaffected.
	_, err = reg.get("owner-1", s.ID)
	assert.NoError(t, err)
}

func TestSessionUnknownID(t *testing.T) {
	reg := newSessionRegistry()
	_, err := reg.get("owner-1", "nope")
	assert.Error(t, err)
}
