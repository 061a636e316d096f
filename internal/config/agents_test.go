package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mld08/planning-app/pkg/core/model"
)

func writeAgentsFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "agents.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadAgentsFile_ValidFile(t *testing.T) {
	path := writeAgentsFile(t, `
agents:
  - id: a1
    firstName: Birama
    lastName: Diop
    email: birama.diop@example.org
    function: Chef d'equipe BVP
    gender: male
    isTeamLead: true
    isBVPLead: true
    activities:
      - port-brigade
  - firstName: Awa
    lastName: Ndiaye
    gender: female
    isCRSSOperator: true
    activities:
      - harbor-watch
      - courier
`)

	agents, err := LoadAgentsFile(path)
	require.NoError(t, err)
	require.Len(t, agents, 2)

	assert.Equal(t, "a1", agents[0].ID)
	assert.Equal(t, "Birama Diop", agents[0].FullName())
	assert.Equal(t, model.GenderMale, agents[0].Gender)
	assert.True(t, agents[0].IsBVPLead)
	assert.True(t, agents[0].QualifiedFor(model.ActivityPortBrigade))
	assert.True(t, agents[0].Available)
	assert.Zero(t, agents[0].DayCount)

	// Entries without an id get a generated one
	assert.NotEmpty(t, agents[1].ID)
	assert.True(t, agents[1].QualifiedFor(model.ActivityHarborWatch))
	assert.True(t, agents[1].QualifiedFor(model.ActivityCourier))
}

func TestLoadAgentsFile_AvailableDefaultsAndOverride(t *testing.T) {
	path := writeAgentsFile(t, `
agents:
  - firstName: Moussa
    lastName: Fall
    gender: male
  - firstName: Ousmane
    lastName: Sarr
    gender: male
    available: false
`)

	agents, err := LoadAgentsFile(path)
	require.NoError(t, err)
	require.Len(t, agents, 2)

	assert.True(t, agents[0].Available)
	assert.False(t, agents[1].Available)
}

func TestLoadAgentsFile_UnknownActivity(t *testing.T) {
	path := writeAgentsFile(t, `
agents:
  - firstName: Moussa
    lastName: Fall
    gender: male
    activities:
      - submarine-watch
`)

	_, err := LoadAgentsFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "submarine-watch")
}

func TestLoadAgentsFile_InvalidGender(t *testing.T) {
	path := writeAgentsFile(t, `
agents:
  - firstName: Moussa
    lastName: Fall
    gender: homme
`)

	_, err := LoadAgentsFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestLoadAgentsFile_EmptyFile(t *testing.T) {
	path := writeAgentsFile(t, `agents: []`)

	_, err := LoadAgentsFile(path)
	require.Error(t, err)
}
