package entities

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainErrors "github.com/Haleralex/orghub/internal/domain/errors"
)

func TestNewDepartment(t *testing.T) {
	tests := []struct {
		name     string
		deptName string
		wantErr  bool
	}{
		{"valid name", "Engineering", false},
		{"name with surrounding spaces", "  Finance  ", false},
		{"empty name", "", true},
		{"whitespace-only name", "   ", true},
		{"name too long", strings.Repeat("x", MaxDepartmentNameLength+1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := NewDepartment(tt.deptName, nil, 0)

			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, domainErrors.IsValidationError(err))
				return
			}

			require.NoError(t, err)
			assert.NotEqual(t, uuid.Nil, d.ID())
			assert.Equal(t, strings.TrimSpace(tt.deptName), d.Name())
			assert.True(t, d.IsRoot())
			assert.False(t, d.CreatedAt().IsZero())
			assert.Equal(t, d.CreatedAt(), d.UpdatedAt())
		})
	}
}

func TestNewDepartment_WithParent(t *testing.T) {
	parent, err := NewDepartment("Engineering", nil, 0)
	require.NoError(t, err)

	parentID := parent.ID()
	child, err := NewDepartment("Platform", &parentID, 1)
	require.NoError(t, err)

	assert.False(t, child.IsRoot())
	require.NotNil(t, child.ParentID())
	assert.Equal(t, parent.ID(), *child.ParentID())
	assert.Equal(t, int32(1), child.SortOrder())
}

func TestDepartment_Rename(t *testing.T) {
	d, err := NewDepartment("Engineering", nil, 0)
	require.NoError(t, err)

	t.Run("valid rename", func(t *testing.T) {
		require.NoError(t, d.Rename("R&D"))
		assert.Equal(t, "R&D", d.Name())
	})

	t.Run("empty name rejected", func(t *testing.T) {
		err := d.Rename("  ")
		require.Error(t, err)
		assert.True(t, domainErrors.IsValidationError(err))
		assert.Equal(t, "R&D", d.Name(), "failed rename must not change state")
	})
}

func TestDepartment_MoveTo(t *testing.T) {
	d, err := NewDepartment("Platform", nil, 0)
	require.NoError(t, err)

	t.Run("self parent rejected", func(t *testing.T) {
		id := d.ID()
		assert.ErrorIs(t, d.MoveTo(&id), domainErrors.ErrSelfParent)
	})

	t.Run("move under another department", func(t *testing.T) {
		parentID := uuid.New()
		require.NoError(t, d.MoveTo(&parentID))
		require.NotNil(t, d.ParentID())
		assert.Equal(t, parentID, *d.ParentID())
	})

	t.Run("move to top level", func(t *testing.T) {
		require.NoError(t, d.MoveTo(nil))
		assert.True(t, d.IsRoot())
	})
}

func TestRestoreDepartment(t *testing.T) {
	original, err := NewDepartment("Engineering", nil, 3)
	require.NoError(t, err)

	restored := RestoreDepartment(
		original.ID(),
		original.ParentID(),
		original.Name(),
		original.SortOrder(),
		original.CreatedAt(),
		original.UpdatedAt(),
	)

	assert.Equal(t, original.ID(), restored.ID())
	assert.Equal(t, original.Name(), restored.Name())
	assert.Equal(t, original.SortOrder(), restored.SortOrder())
	assert.Equal(t, original.CreatedAt(), restored.CreatedAt())
}
