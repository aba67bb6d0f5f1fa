package repository

import (
	"context"
	"testing"
	"time"

	"laundrypos/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuditListAndPurge(t *testing.T) {
	db := newTestDB(t)
	repo := NewAuditRepository(db)
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, repo.Record(ctx, &entity.AuditLog{WorkerID: 1, Email: "ana@x.io", ActionType: entity.ActionLogOut, Details: "Account \"ana@x.io\" log off the system", OnPage: "Landing Page", CreatedAt: now}))
	require.NoError(t, repo.Record(ctx, &entity.AuditLog{WorkerID: 1, Email: "ana@x.io", ActionType: entity.ActionCreateService, Details: "Added Iron Service", OnPage: "Pricing Management", CreatedAt: now.Add(time.Minute)}))
	require.NoError(t, repo.Record(ctx, &entity.AuditLog{WorkerID: 2, Email: "ben@x.io", ActionType: entity.ActionLogOut, OnPage: "Landing Page", CreatedAt: now.AddDate(-2, 0, 0)}))

	logs, err := repo.List(ctx, AuditFilter{Action: entity.ActionLogOut})
	require.NoError(t, err)
	assert.Len(t, logs, 2)

	logs, err = repo.List(ctx, AuditFilter{Search: "iron"})
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, entity.ActionCreateService, logs[0].ActionType)

	types, err := repo.ActionTypes(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{entity.ActionCreateService, entity.ActionLogOut}, types)

	n, err := repo.PurgeBefore(ctx, now.AddDate(-1, 0, 0))
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}
