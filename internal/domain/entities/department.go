// Package entities - Department is the core entity of the org directory.
// Departments form a tree through an optional parent reference.
package entities

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Haleralex/orghub/internal/domain/errors"
)

// MaxDepartmentNameLength limits department names at the domain level.
const MaxDepartmentNameLength = 128

// Department represents one node of the organizational tree.
//
// Entity Pattern:
// - Has identity (ID)
// - Enforces invariants (non-empty name, no self-parenting)
// - Immutable from outside except through behavior methods
type Department struct {
	id        uuid.UUID
	parentID  *uuid.UUID // nil for top-level departments
	name      string
	sortOrder int32

	createdAt time.Time
	updatedAt time.Time
}

// NewDepartment creates a new department.
// Factory function with validation.
func NewDepartment(name string, parentID *uuid.UUID, sortOrder int32) (*Department, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.ValidationError{Field: "name", Message: "name is required"}
	}
	if len(name) > MaxDepartmentNameLength {
		return nil, errors.ValidationError{Field: "name", Message: "name exceeds maximum length"}
	}

	now := time.Now().UTC()
	d := &Department{
		id:        uuid.New(),
		parentID:  parentID,
		name:      name,
		sortOrder: sortOrder,
		createdAt: now,
		updatedAt: now,
	}

	if parentID != nil && *parentID == d.id {
		return nil, errors.ErrSelfParent
	}

	return d, nil
}

// RestoreDepartment rebuilds an entity from persisted state.
// Used by the repository layer only; performs no validation.
func RestoreDepartment(
	id uuid.UUID,
	parentID *uuid.UUID,
	name string,
	sortOrder int32,
	createdAt, updatedAt time.Time,
) *Department {
	return &Department{
		id:        id,
		parentID:  parentID,
		name:      name,
		sortOrder: sortOrder,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// Accessors

func (d *Department) ID() uuid.UUID        { return d.id }
func (d *Department) ParentID() *uuid.UUID { return d.parentID }
func (d *Department) Name() string         { return d.name }
func (d *Department) SortOrder() int32     { return d.sortOrder }
func (d *Department) CreatedAt() time.Time { return d.createdAt }
func (d *Department) UpdatedAt() time.Time { return d.updatedAt }

// IsRoot reports whether the department has no parent.
func (d *Department) IsRoot() bool { return d.parentID == nil }

// Rename changes the department name.
func (d *Department) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.ValidationError{Field: "name", Message: "name is required"}
	}
	if len(name) > MaxDepartmentNameLength {
		return errors.ValidationError{Field: "name", Message: "name exceeds maximum length"}
	}

	d.name = name
	d.updatedAt = time.Now().UTC()
	return nil
}

// MoveTo reparents the department. A nil parent moves it to the top level.
func (d *Department) MoveTo(parentID *uuid.UUID) error {
	if parentID != nil && *parentID == d.id {
		return errors.ErrSelfParent
	}

	d.parentID = parentID
	d.updatedAt = time.Now().UTC()
	return nil
}

// Reorder changes the sibling sort position.
func (d *Department) Reorder(sortOrder int32) {
	d.sortOrder = sortOrder
	d.updatedAt = time.Now().UTC()
}
