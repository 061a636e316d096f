package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/mld08/planning-app/pkg/core/model"
)

const agentColumns = `
	id, first_name, last_name, email, function, gender, available,
	is_team_lead, is_office_chief, is_airport_cert_inspector,
	is_bvp_lead, is_factory_lead, is_driver, is_crss_operator,
	is_embarked_observer, embark_start, embark_end,
	activities, day_count, night_count, last_shift, last_assigned`

func scanAgent(row pgx.Row) (*model.Agent, error) {
	var a model.Agent
	var activities []string
	err := row.Scan(
		&a.ID, &a.FirstName, &a.LastName, &a.Email, &a.Function, &a.Gender, &a.Available,
		&a.IsTeamLead, &a.IsOfficeChief, &a.IsAirportCertInspector,
		&a.IsBVPLead, &a.IsFactoryLead, &a.IsDriver, &a.IsCRSSOperator,
		&a.IsEmbarkedObserver, &a.EmbarkStart, &a.EmbarkEnd,
		&activities, &a.DayCount, &a.NightCount, &a.LastShift, &a.LastAssigned,
	)
	if err != nil {
		return nil, err
	}
	a.Activities = make(map[model.ActivityID]bool, len(activities))
	for _, activity := range activities {
		a.Activities[model.ActivityID(activity)] = true
	}
	return &a, nil
}

func queryAgents(ctx context.Context, d *DB, query string, args ...any) ([]*model.Agent, error) {
	rows, err := d.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query agents: %w", err)
	}
	defer rows.Close()

	var agents []*model.Agent
	for rows.Next() {
		agent, err := scanAgent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan agent: %w", err)
		}
		agents = append(agents, agent)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating agents: %w", err)
	}

	return agents, nil
}

// GetAvailableAgents retrieves every agent in the candidate pool, ordered by
// name for deterministic tie-breaking.
func (d *DB) GetAvailableAgents(ctx context.Context) ([]*model.Agent, error) {
	return queryAgents(ctx, d, `
		SELECT `+agentColumns+`
		FROM agent
		WHERE available
		ORDER BY last_name, first_name, id
	`)
}

// ListAgents retrieves all agents, available or not
func (d *DB) ListAgents(ctx context.Context) ([]*model.Agent, error) {
	return queryAgents(ctx, d, `
		SELECT `+agentColumns+`
		FROM agent
		ORDER BY last_name, first_name, id
	`)
}

// GetAgent retrieves a single agent by ID
func (d *DB) GetAgent(ctx context.Context, agentID string) (*model.Agent, error) {
	row := d.pool.QueryRow(ctx, `
		SELECT `+agentColumns+`
		FROM agent
		WHERE id = $1
	`, agentID)

	agent, err := scanAgent(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("agent %s: %w", agentID, model.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch agent %s: %w", agentID, err)
	}
	return agent, nil
}

// GetAgentsByIDs retrieves the agents with the given IDs. Missing IDs are
// silently omitted from the result.
func (d *DB) GetAgentsByIDs(ctx context.Context, agentIDs []string) ([]*model.Agent, error) {
	if len(agentIDs) == 0 {
		return nil, nil
	}
	return queryAgents(ctx, d, `
		SELECT `+agentColumns+`
		FROM agent
		WHERE id = ANY($1)
	`, agentIDs)
}

// UpsertAgent inserts an agent or updates their profile. Workload counters
// and shift history are only written on insert: on conflict the existing
// fairness signal survives the profile update.
func (d *DB) UpsertAgent(ctx context.Context, a *model.Agent) error {
	activities := make([]string, 0, len(a.Activities))
	for activity := range a.Activities {
		activities = append(activities, string(activity))
	}

	_, err := d.pool.Exec(ctx, `
		INSERT INTO agent (`+agentColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)
		ON CONFLICT (id) DO UPDATE SET
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			email = EXCLUDED.email,
			function = EXCLUDED.function,
			gender = EXCLUDED.gender,
			available = EXCLUDED.available,
			is_team_lead = EXCLUDED.is_team_lead,
			is_office_chief = EXCLUDED.is_office_chief,
			is_airport_cert_inspector = EXCLUDED.is_airport_cert_inspector,
			is_bvp_lead = EXCLUDED.is_bvp_lead,
			is_factory_lead = EXCLUDED.is_factory_lead,
			is_driver = EXCLUDED.is_driver,
			is_crss_operator = EXCLUDED.is_crss_operator,
			is_embarked_observer = EXCLUDED.is_embarked_observer,
			embark_start = EXCLUDED.embark_start,
			embark_end = EXCLUDED.embark_end,
			activities = EXCLUDED.activities
	`,
		a.ID, a.FirstName, a.LastName, a.Email, a.Function, a.Gender, a.Available,
		a.IsTeamLead, a.IsOfficeChief, a.IsAirportCertInspector,
		a.IsBVPLead, a.IsFactoryLead, a.IsDriver, a.IsCRSSOperator,
		a.IsEmbarkedObserver, a.EmbarkStart, a.EmbarkEnd,
		activities, a.DayCount, a.NightCount, a.LastShift, a.LastAssigned,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert agent %s: %w", a.ID, err)
	}
	return nil
}
