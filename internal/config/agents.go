package config

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/mld08/planning-app/pkg/core/model"
)

// AgentSpec is one agent entry in an agents file. Workload counters are not
// part of the file: imported agents start at zero and existing counters are
// preserved on update.
type AgentSpec struct {
	ID        string `yaml:"id,omitempty"`
	FirstName string `yaml:"firstName" validate:"required"`
	LastName  string `yaml:"lastName" validate:"required"`
	Email     string `yaml:"email,omitempty" validate:"omitempty,email"`
	Function  string `yaml:"function,omitempty"`
	Gender    string `yaml:"gender" validate:"required,oneof=male female"`
	Available *bool  `yaml:"available,omitempty"`

	IsTeamLead             bool `yaml:"isTeamLead,omitempty"`
	IsOfficeChief          bool `yaml:"isOfficeChief,omitempty"`
	IsAirportCertInspector bool `yaml:"isAirportCertInspector,omitempty"`
	IsBVPLead              bool `yaml:"isBVPLead,omitempty"`
	IsFactoryLead          bool `yaml:"isFactoryLead,omitempty"`
	IsDriver               bool `yaml:"isDriver,omitempty"`
	IsCRSSOperator         bool `yaml:"isCRSSOperator,omitempty"`
	IsEmbarkedObserver     bool `yaml:"isEmbarkedObserver,omitempty"`

	Activities []string `yaml:"activities,omitempty"`
}

type agentsFile struct {
	Agents []AgentSpec `yaml:"agents" validate:"required,min=1,dive"`
}

var knownActivities = map[model.ActivityID]bool{
	model.ActivityHarborWatch:       true,
	model.ActivityPortBrigade:       true,
	model.ActivityCoastalPatrol:     true,
	model.ActivityFactoryInspection: true,
	model.ActivityCourier:           true,
	model.ActivityDriverPool:        true,
}

// LoadAgentsFile reads and validates an agents YAML file and converts its
// entries to agent records. Entries without an ID get a generated one, and
// availability defaults to true.
func LoadAgentsFile(path string) ([]*model.Agent, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read agents file: %w", err)
	}

	var file agentsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse agents file: %w", err)
	}

	if err := validate.Struct(&file); err != nil {
		return nil, fmt.Errorf("agents file validation failed: %w", err)
	}

	agents := make([]*model.Agent, 0, len(file.Agents))
	for i, spec := range file.Agents {
		agent, err := spec.toAgent()
		if err != nil {
			return nil, fmt.Errorf("agents[%d] (%s %s): %w", i, spec.FirstName, spec.LastName, err)
		}
		agents = append(agents, agent)
	}
	return agents, nil
}

func (s AgentSpec) toAgent() (*model.Agent, error) {
	activities := make(map[model.ActivityID]bool, len(s.Activities))
	for _, name := range s.Activities {
		id := model.ActivityID(name)
		if !knownActivities[id] {
			return nil, fmt.Errorf("unknown activity %q", name)
		}
		activities[id] = true
	}

	id := s.ID
	if id == "" {
		id = uuid.New().String()
	}

	available := true
	if s.Available != nil {
		available = *s.Available
	}

	return &model.Agent{
		ID:                     id,
		FirstName:              s.FirstName,
		LastName:               s.LastName,
		Email:                  s.Email,
		Function:               s.Function,
		Gender:                 model.Gender(s.Gender),
		Available:              available,
		IsTeamLead:             s.IsTeamLead,
		IsOfficeChief:          s.IsOfficeChief,
		IsAirportCertInspector: s.IsAirportCertInspector,
		IsBVPLead:              s.IsBVPLead,
		IsFactoryLead:          s.IsFactoryLead,
		IsDriver:               s.IsDriver,
		IsCRSSOperator:         s.IsCRSSOperator,
		IsEmbarkedObserver:     s.IsEmbarkedObserver,
		Activities:             activities,
	}, nil
}
