// Package postgres - DepartmentRepository implementation.
//
// Every mutation returns the standard outcome envelope. Failure codes are
// operation-scoped so callers can tell which step of a multi-step operation
// failed without parsing the message.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Haleralex/orghub/internal/domain/entities"
	domainErrors "github.com/Haleralex/orghub/internal/domain/errors"
	"github.com/Haleralex/orghub/internal/pkg/apiresp"
)

// Failure codes carried in the envelope for department operations.
const (
	CodeCreateFailed int32 = 1001
	CodeRenameFailed int32 = 1002
	CodeMoveFailed   int32 = 1003
	CodeDeleteFailed int32 = 1004
)

// DepartmentRepository persists the department tree.
type DepartmentRepository struct {
	pool *pgxpool.Pool
}

// NewDepartmentRepository creates a new DepartmentRepository.
func NewDepartmentRepository(pool *pgxpool.Pool) *DepartmentRepository {
	return &DepartmentRepository{pool: pool}
}

// departmentPayload is the JSON shape of a department inside the envelope.
type departmentPayload struct {
	ID        string    `json:"id"`
	ParentID  *string   `json:"parent_id"`
	Name      string    `json:"name"`
	SortOrder int32     `json:"sort_order"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func payloadFrom(d *entities.Department) departmentPayload {
	p := departmentPayload{
		ID:        d.ID().String(),
		Name:      d.Name(),
		SortOrder: d.SortOrder(),
		CreatedAt: d.CreatedAt(),
		UpdatedAt: d.UpdatedAt(),
	}
	if pid := d.ParentID(); pid != nil {
		s := pid.String()
		p.ParentID = &s
	}
	return p
}

// Create inserts a department and, when it has a parent, touches the parent
// row inside the same transaction so a dangling parent reference fails the
// whole operation.
func (r *DepartmentRepository) Create(ctx context.Context, dept *entities.Department) (apiresp.Resp, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return apiresp.Resp{}, fmt.Errorf("failed to begin transaction: %w", err)
	}

	query := `
		INSERT INTO departments (id, parent_id, name, sort_order, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, execErr := tx.Exec(ctx, query,
		dept.ID(),
		dept.ParentID(),
		dept.Name(),
		dept.SortOrder(),
		dept.CreatedAt(),
		dept.UpdatedAt(),
	)
	execErr = classifyWriteError(execErr, dept.Name())
	if resp, done, err := apiresp.RollbackOnError(ctx, tx, execErr, CodeCreateFailed); done {
		return resp, err
	}

	if pid := dept.ParentID(); pid != nil {
		tag, touchErr := tx.Exec(ctx,
			`UPDATE departments SET updated_at = $1 WHERE id = $2`,
			time.Now().UTC(), *pid,
		)
		if resp, done, err := apiresp.RollbackOnNoMatch(ctx, tx, tag, touchErr, CodeCreateFailed); done {
			return resp, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return apiresp.Resp{}, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return apiresp.Success(payloadFrom(dept)), nil
}

// Rename updates the department name. Renaming an unknown department rolls
// back and reports a no-match failure.
func (r *DepartmentRepository) Rename(ctx context.Context, id uuid.UUID, name string) (apiresp.Resp, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return apiresp.Resp{}, fmt.Errorf("failed to begin transaction: %w", err)
	}

	tag, execErr := tx.Exec(ctx,
		`UPDATE departments SET name = $2, updated_at = $3 WHERE id = $1`,
		id, name, time.Now().UTC(),
	)
	execErr = classifyWriteError(execErr, name)
	if resp, done, err := apiresp.RollbackOnNoMatch(ctx, tx, tag, execErr, CodeRenameFailed); done {
		return resp, err
	}

	if err := tx.Commit(ctx); err != nil {
		return apiresp.Resp{}, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return apiresp.Suc(), nil
}

// Move reparents a department. A nil parentID moves it to the top level.
func (r *DepartmentRepository) Move(ctx context.Context, id uuid.UUID, parentID *uuid.UUID) (apiresp.Resp, error) {
	if parentID != nil && *parentID == id {
		return apiresp.Resp{}, domainErrors.ErrSelfParent
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return apiresp.Resp{}, fmt.Errorf("failed to begin transaction: %w", err)
	}

	tag, execErr := tx.Exec(ctx,
		`UPDATE departments SET parent_id = $2, updated_at = $3 WHERE id = $1`,
		id, parentID, time.Now().UTC(),
	)
	if isForeignKeyViolation(execErr) {
		execErr = domainErrors.NewDomainError("PARENT_NOT_FOUND", "parent department not found", execErr)
	}
	if resp, done, err := apiresp.RollbackOnNoMatch(ctx, tx, tag, execErr, CodeMoveFailed); done {
		return resp, err
	}

	if err := tx.Commit(ctx); err != nil {
		return apiresp.Resp{}, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return apiresp.Suc(), nil
}

// Delete removes a department. A department that still has children is a
// business failure and rolls back; deleting an unknown id reports no match.
func (r *DepartmentRepository) Delete(ctx context.Context, id uuid.UUID) (apiresp.Resp, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return apiresp.Resp{}, fmt.Errorf("failed to begin transaction: %w", err)
	}

	var children int
	scanErr := tx.QueryRow(ctx,
		`SELECT COUNT(*) FROM departments WHERE parent_id = $1`, id,
	).Scan(&children)
	if scanErr == nil && children > 0 {
		scanErr = domainErrors.ErrDepartmentNotEmpty
	}
	if resp, done, err := apiresp.RollbackOnError(ctx, tx, scanErr, CodeDeleteFailed); done {
		return resp, err
	}

	tag, execErr := tx.Exec(ctx, `DELETE FROM departments WHERE id = $1`, id)
	if resp, done, err := apiresp.RollbackOnNoMatch(ctx, tx, tag, execErr, CodeDeleteFailed); done {
		return resp, err
	}

	if err := tx.Commit(ctx); err != nil {
		return apiresp.Resp{}, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return apiresp.Suc(), nil
}

// FindByID loads a single department into a success envelope.
func (r *DepartmentRepository) FindByID(ctx context.Context, id uuid.UUID) (apiresp.Resp, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT id, parent_id, name, sort_order, created_at, updated_at
		 FROM departments WHERE id = $1`, id,
	)

	dept, err := scanDepartment(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apiresp.Resp{}, domainErrors.ErrEntityNotFound
		}
		return apiresp.Resp{}, fmt.Errorf("failed to load department: %w", err)
	}

	return apiresp.Success(payloadFrom(dept)), nil
}

// List returns all departments ordered for tree rendering.
func (r *DepartmentRepository) List(ctx context.Context) (apiresp.Resp, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, parent_id, name, sort_order, created_at, updated_at
		 FROM departments
		 ORDER BY parent_id NULLS FIRST, sort_order, name`,
	)
	if err != nil {
		return apiresp.Resp{}, fmt.Errorf("failed to list departments: %w", err)
	}
	defer rows.Close()

	payload := make([]departmentPayload, 0)
	for rows.Next() {
		dept, err := scanDepartment(rows)
		if err != nil {
			return apiresp.Resp{}, fmt.Errorf("failed to scan department: %w", err)
		}
		payload = append(payload, payloadFrom(dept))
	}
	if err := rows.Err(); err != nil {
		return apiresp.Resp{}, fmt.Errorf("failed to iterate departments: %w", err)
	}

	return apiresp.Success(payload), nil
}

// scanDepartment restores an entity from a row.
func scanDepartment(row pgx.Row) (*entities.Department, error) {
	var (
		id        uuid.UUID
		parentID  *uuid.UUID
		name      string
		sortOrder int32
		createdAt time.Time
		updatedAt time.Time
	)
	if err := row.Scan(&id, &parentID, &name, &sortOrder, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	return entities.RestoreDepartment(id, parentID, name, sortOrder, createdAt, updatedAt), nil
}

// classifyWriteError maps constraint violations to domain errors so the
// envelope message is meaningful to the caller.
func classifyWriteError(err error, name string) error {
	if err == nil {
		return nil
	}
	if isUniqueViolation(err, "departments_parent_name_unique") {
		return domainErrors.NewDomainError(
			"DEPARTMENT_ALREADY_EXISTS",
			fmt.Sprintf("department %q already exists under this parent", name),
			err,
		)
	}
	if isForeignKeyViolation(err) {
		return domainErrors.NewDomainError("PARENT_NOT_FOUND", "parent department not found", err)
	}
	return err
}
