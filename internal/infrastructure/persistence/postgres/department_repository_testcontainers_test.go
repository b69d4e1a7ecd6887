// Package postgres - integration tests for the department repository with
// testcontainers.
//
// Running the tests:
//
//	go test ./internal/infrastructure/persistence/postgres/...
//
// Requirements:
//   - Docker running
//   - testcontainers-go installed
package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/Haleralex/orghub/internal/domain/entities"
	"github.com/Haleralex/orghub/internal/pkg/apiresp"
)

const departmentsSchema = `
CREATE TABLE departments (
	id         UUID PRIMARY KEY,
	parent_id  UUID REFERENCES departments (id),
	name       VARCHAR(128) NOT NULL,
	sort_order INTEGER NOT NULL DEFAULT 0,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL,
	CONSTRAINT departments_parent_name_unique UNIQUE NULLS NOT DISTINCT (parent_id, name)
);
`

// setupTestDB starts a throwaway PostgreSQL container and applies the schema.
func setupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("orghub_test"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(time.Minute),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = container.Terminate(ctx)
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	_, err = pool.Exec(ctx, departmentsSchema)
	require.NoError(t, err)

	return pool
}

func mustDepartment(t *testing.T, name string, parentID *uuid.UUID) *entities.Department {
	t.Helper()
	d, err := entities.NewDepartment(name, parentID, 0)
	require.NoError(t, err)
	return d
}

func TestDepartmentRepository_CreateAndFind(t *testing.T) {
	pool := setupTestDB(t)
	repo := NewDepartmentRepository(pool)
	ctx := context.Background()

	root := mustDepartment(t, "Engineering", nil)
	resp, err := repo.Create(ctx, root)
	require.NoError(t, err)
	assert.True(t, resp.IsSuccess())
	assert.Equal(t, int32(0), resp.Code())

	rootID := root.ID()
	child := mustDepartment(t, "Platform", &rootID)
	resp, err = repo.Create(ctx, child)
	require.NoError(t, err)
	assert.True(t, resp.IsSuccess())

	found, err := repo.FindByID(ctx, child.ID())
	require.NoError(t, err)
	require.True(t, found.IsSuccess())
	payload, ok := found.Data().(departmentPayload)
	require.True(t, ok)
	assert.Equal(t, "Platform", payload.Name)
	require.NotNil(t, payload.ParentID)
	assert.Equal(t, rootID.String(), *payload.ParentID)
}

func TestDepartmentRepository_Create_DuplicateName(t *testing.T) {
	pool := setupTestDB(t)
	repo := NewDepartmentRepository(pool)
	ctx := context.Background()

	first := mustDepartment(t, "Finance", nil)
	_, err := repo.Create(ctx, first)
	require.NoError(t, err)

	dup := mustDepartment(t, "Finance", nil)
	resp, err := repo.Create(ctx, dup)
	require.NoError(t, err, "constraint violations are business failures, not hard errors")
	assert.False(t, resp.IsSuccess())
	assert.Equal(t, CodeCreateFailed, resp.Code())
	assert.Contains(t, resp.Message(), "already exists")
}

func TestDepartmentRepository_Create_MissingParent(t *testing.T) {
	pool := setupTestDB(t)
	repo := NewDepartmentRepository(pool)
	ctx := context.Background()

	missing := uuid.New()
	orphan := mustDepartment(t, "Ghost", &missing)
	resp, err := repo.Create(ctx, orphan)
	require.NoError(t, err)
	assert.False(t, resp.IsSuccess())
	assert.Equal(t, CodeCreateFailed, resp.Code())
}

func TestDepartmentRepository_Rename(t *testing.T) {
	pool := setupTestDB(t)
	repo := NewDepartmentRepository(pool)
	ctx := context.Background()

	dept := mustDepartment(t, "Support", nil)
	_, err := repo.Create(ctx, dept)
	require.NoError(t, err)

	t.Run("existing department", func(t *testing.T) {
		resp, err := repo.Rename(ctx, dept.ID(), "Customer Success")
		require.NoError(t, err)
		assert.True(t, resp.IsSuccess())
	})

	t.Run("unknown department reports no match", func(t *testing.T) {
		resp, err := repo.Rename(ctx, uuid.New(), "Nobody")
		require.NoError(t, err)
		assert.False(t, resp.IsSuccess())
		assert.Equal(t, CodeRenameFailed, resp.Code())
		assert.Equal(t, apiresp.NoMatchMessage, resp.Message())
	})
}

func TestDepartmentRepository_Move(t *testing.T) {
	pool := setupTestDB(t)
	repo := NewDepartmentRepository(pool)
	ctx := context.Background()

	root := mustDepartment(t, "Engineering", nil)
	_, err := repo.Create(ctx, root)
	require.NoError(t, err)

	dept := mustDepartment(t, "Data", nil)
	_, err = repo.Create(ctx, dept)
	require.NoError(t, err)

	t.Run("move under root", func(t *testing.T) {
		rootID := root.ID()
		resp, err := repo.Move(ctx, dept.ID(), &rootID)
		require.NoError(t, err)
		assert.True(t, resp.IsSuccess())
	})

	t.Run("move to top level", func(t *testing.T) {
		resp, err := repo.Move(ctx, dept.ID(), nil)
		require.NoError(t, err)
		assert.True(t, resp.IsSuccess())
	})

	t.Run("unknown parent is a business failure", func(t *testing.T) {
		missing := uuid.New()
		resp, err := repo.Move(ctx, dept.ID(), &missing)
		require.NoError(t, err)
		assert.False(t, resp.IsSuccess())
		assert.Equal(t, CodeMoveFailed, resp.Code())
	})
}

func TestDepartmentRepository_Delete(t *testing.T) {
	pool := setupTestDB(t)
	repo := NewDepartmentRepository(pool)
	ctx := context.Background()

	root := mustDepartment(t, "Engineering", nil)
	_, err := repo.Create(ctx, root)
	require.NoError(t, err)

	rootID := root.ID()
	child := mustDepartment(t, "Platform", &rootID)
	_, err = repo.Create(ctx, child)
	require.NoError(t, err)

	t.Run("department with children is rejected", func(t *testing.T) {
		resp, err := repo.Delete(ctx, root.ID())
		require.NoError(t, err)
		assert.False(t, resp.IsSuccess())
		assert.Equal(t, CodeDeleteFailed, resp.Code())
		assert.Contains(t, resp.Message(), "children")
	})

	t.Run("leaf department is deleted", func(t *testing.T) {
		resp, err := repo.Delete(ctx, child.ID())
		require.NoError(t, err)
		assert.True(t, resp.IsSuccess())

		_, err = repo.FindByID(ctx, child.ID())
		require.Error(t, err)
	})

	t.Run("unknown department reports no match", func(t *testing.T) {
		resp, err := repo.Delete(ctx, uuid.New())
		require.NoError(t, err)
		assert.False(t, resp.IsSuccess())
		assert.Equal(t, apiresp.NoMatchMessage, resp.Message())
	})
}

func TestDepartmentRepository_List(t *testing.T) {
	pool := setupTestDB(t)
	repo := NewDepartmentRepository(pool)
	ctx := context.Background()

	for _, name := range []string{"Engineering", "Finance", "People"} {
		_, err := repo.Create(ctx, mustDepartment(t, name, nil))
		require.NoError(t, err)
	}

	resp, err := repo.List(ctx)
	require.NoError(t, err)
	require.True(t, resp.IsSuccess())

	payload, ok := resp.Data().([]departmentPayload)
	require.True(t, ok)
	assert.Len(t, payload, 3)
}
