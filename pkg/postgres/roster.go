package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/mld08/planning-app/pkg/core/model"
)

const rosterColumns = `id, week, year, start_date, end_date, status, created_by, created_at`

const uniqueViolationCode = "23505"

func scanRoster(row pgx.Row) (*model.Roster, error) {
	var r model.Roster
	err := row.Scan(&r.ID, &r.Week, &r.Year, &r.StartDate, &r.EndDate, &r.Status, &r.CreatedBy, &r.CreatedAt)
	if err != nil {
		return nil, err
	}
	r.StartDate = r.StartDate.UTC()
	r.EndDate = r.EndDate.UTC()
	return &r, nil
}

// GetRoster retrieves a roster by ID
func (d *DB) GetRoster(ctx context.Context, rosterID string) (*model.Roster, error) {
	row := d.pool.QueryRow(ctx, `
		SELECT `+rosterColumns+`
		FROM roster
		WHERE id = $1
	`, rosterID)

	roster, err := scanRoster(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("roster %s: %w", rosterID, model.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch roster %s: %w", rosterID, err)
	}
	return roster, nil
}

// GetRosterByStartDate retrieves the roster for the week starting at the
// given date, if one exists.
func (d *DB) GetRosterByStartDate(ctx context.Context, start time.Time) (*model.Roster, error) {
	row := d.pool.QueryRow(ctx, `
		SELECT `+rosterColumns+`
		FROM roster
		WHERE start_date = $1
	`, start)

	roster, err := scanRoster(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("roster for %s: %w", start.Format("2006-01-02"), model.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch roster for %s: %w", start.Format("2006-01-02"), err)
	}
	return roster, nil
}

// GetLatestRoster retrieves the most recently started roster
func (d *DB) GetLatestRoster(ctx context.Context) (*model.Roster, error) {
	row := d.pool.QueryRow(ctx, `
		SELECT `+rosterColumns+`
		FROM roster
		ORDER BY start_date DESC
		LIMIT 1
	`)

	roster, err := scanRoster(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("no rosters exist: %w", model.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch latest roster: %w", err)
	}
	return roster, nil
}

// ListRosters retrieves all rosters, most recent week first
func (d *DB) ListRosters(ctx context.Context) ([]*model.Roster, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT `+rosterColumns+`
		FROM roster
		ORDER BY start_date DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list rosters: %w", err)
	}
	defer rows.Close()

	var rosters []*model.Roster
	for rows.Next() {
		roster, err := scanRoster(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan roster: %w", err)
		}
		rosters = append(rosters, roster)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read rosters: %w", err)
	}
	return rosters, nil
}

// ArchiveRostersEndedBefore flips active rosters whose week ended before the
// cutoff to archived status and returns how many were changed.
func (d *DB) ArchiveRostersEndedBefore(ctx context.Context, cutoff time.Time) (int, error) {
	tag, err := d.pool.Exec(ctx, `
		UPDATE roster
		SET status = $1
		WHERE status = $2 AND end_date < $3
	`, model.RosterArchived, model.RosterActive, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to archive rosters: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

// CommitWeek persists a generated week in one transaction: the roster
// record, all its assignments, and the updated workload counters of every
// agent the week touched. An advisory lock on the start date serialises
// concurrent runs for the same week; the loser observes the unique
// constraint on start_date and gets ErrDuplicateRoster.
func (d *DB) CommitWeek(ctx context.Context, ros *model.Roster, assignments []model.Assignment, agents []*model.Agent) error {
	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin commit transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, ros.StartDate.Format("2006-01-02"))
	if err != nil {
		return fmt.Errorf("failed to take week lock: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO roster (id, week, year, start_date, end_date, status, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, ros.ID, ros.Week, ros.Year, ros.StartDate, ros.EndDate, ros.Status, ros.CreatedBy, ros.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return fmt.Errorf("roster for %s: %w", ros.StartDate.Format("2006-01-02"), model.ErrDuplicateRoster)
		}
		return fmt.Errorf("failed to insert roster %s: %w", ros.ID, err)
	}

	for _, a := range assignments {
		_, err = tx.Exec(ctx, `
			INSERT INTO assignment (id, roster_id, agent_id, day, shift, activity, role, notes)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`, a.ID, a.RosterID, a.AgentID, a.Day, a.Shift, a.Activity, a.Role, a.Notes)
		if err != nil {
			return fmt.Errorf("failed to insert assignment %s: %w", a.ID, err)
		}
	}

	for _, agent := range agents {
		_, err = tx.Exec(ctx, `
			UPDATE agent
			SET day_count = $2, night_count = $3, last_shift = $4, last_assigned = $5
			WHERE id = $1
		`, agent.ID, agent.DayCount, agent.NightCount, agent.LastShift, agent.LastAssigned)
		if err != nil {
			return fmt.Errorf("failed to update counters for agent %s: %w", agent.ID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit week %s: %w", ros.ID, err)
	}
	return nil
}
