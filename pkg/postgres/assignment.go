package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/mld08/planning-app/pkg/core/model"
)

const assignmentColumns = `id, roster_id, agent_id, day, shift, activity, role, notes, created_at`

func scanAssignment(row pgx.Row) (*model.Assignment, error) {
	var a model.Assignment
	err := row.Scan(&a.ID, &a.RosterID, &a.AgentID, &a.Day, &a.Shift, &a.Activity, &a.Role, &a.Notes, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	a.Day = a.Day.UTC()
	return &a, nil
}

// GetAssignmentsByRoster retrieves all assignments for a roster, ordered by
// day then shift.
func (d *DB) GetAssignmentsByRoster(ctx context.Context, rosterID string) ([]model.Assignment, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT `+assignmentColumns+`
		FROM assignment
		WHERE roster_id = $1
		ORDER BY day, shift, activity, role
	`, rosterID)
	if err != nil {
		return nil, fmt.Errorf("failed to query assignments for roster %s: %w", rosterID, err)
	}
	defer rows.Close()

	var assignments []model.Assignment
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan assignment: %w", err)
		}
		assignments = append(assignments, *a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating assignments: %w", err)
	}

	return assignments, nil
}

// GetAssignment retrieves a single assignment by ID
func (d *DB) GetAssignment(ctx context.Context, assignmentID string) (*model.Assignment, error) {
	row := d.pool.QueryRow(ctx, `
		SELECT `+assignmentColumns+`
		FROM assignment
		WHERE id = $1
	`, assignmentID)

	assignment, err := scanAssignment(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("assignment %s: %w", assignmentID, model.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch assignment %s: %w", assignmentID, err)
	}
	return assignment, nil
}

// ReassignAssignment moves an assignment to a different agent and appends
// the audit entry, both in one transaction.
func (d *DB) ReassignAssignment(ctx context.Context, assignmentID, newAgentID string, entry *model.ModificationEntry) error {
	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin reassign transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `
		UPDATE assignment SET agent_id = $2 WHERE id = $1
	`, assignmentID, newAgentID)
	if err != nil {
		return fmt.Errorf("failed to reassign assignment %s: %w", assignmentID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("assignment %s: %w", assignmentID, model.ErrNotFound)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO modification (id, roster_id, user_id, action, details)
		VALUES ($1, $2, $3, $4, $5)
	`, entry.ID, entry.RosterID, entry.UserID, entry.Action, entry.Details)
	if err != nil {
		return fmt.Errorf("failed to insert modification entry %s: %w", entry.ID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit reassignment of %s: %w", assignmentID, err)
	}
	return nil
}

// GetModifications retrieves the audit trail for a roster, oldest first
func (d *DB) GetModifications(ctx context.Context, rosterID string) ([]model.ModificationEntry, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, roster_id, user_id, action, details, created_at
		FROM modification
		WHERE roster_id = $1
		ORDER BY created_at
	`, rosterID)
	if err != nil {
		return nil, fmt.Errorf("failed to query modifications for roster %s: %w", rosterID, err)
	}
	defer rows.Close()

	var entries []model.ModificationEntry
	for rows.Next() {
		var e model.ModificationEntry
		if err := rows.Scan(&e.ID, &e.RosterID, &e.UserID, &e.Action, &e.Details, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan modification entry: %w", err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating modifications: %w", err)
	}

	return entries, nil
}
