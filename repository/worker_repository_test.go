package repository

import (
	"context"
	"testing"

	"laundrypos/configs"
	"laundrypos/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkerRoles(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, configs.SeedRoles(db))
	repo := NewWorkerRepository(db)
	ctx := context.Background()

	roles, err := repo.FindRolesByName(ctx, []string{entity.RoleCashier})
	require.NoError(t, err)
	require.Len(t, roles, 1)

	w := &entity.Worker{FirstName: "Ana", LastName: "Cruz", Email: "ana@x.io", Password: "x", Status: entity.WorkerActive, Roles: roles}
	require.NoError(t, repo.Create(ctx, w))

	got, err := repo.FindByEmail(ctx, "ana@x.io")
	require.NoError(t, err)
	assert.Equal(t, []string{entity.RoleCashier}, got.RoleNames())
	assert.Equal(t, "Ana Cruz", got.FullName())

	both, err := repo.FindRolesByName(ctx, []string{entity.RoleAdmin, entity.RoleInventory})
	require.NoError(t, err)
	require.NoError(t, repo.ReplaceRoles(ctx, got, both))

	got, err = repo.FindByID(ctx, w.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{entity.RoleAdmin, entity.RoleInventory}, got.RoleNames())

	n, err := repo.CountByEmail(ctx, "ana@x.io", w.ID)
	require.NoError(t, err)
	assert.Zero(t, n)

	require.NoError(t, repo.Update(ctx, w.ID, map[string]any{"status": entity.WorkerDeactivated}))
	got, _ = repo.FindByID(ctx, w.ID)
	assert.Equal(t, entity.WorkerDeactivated, got.Status)
}
