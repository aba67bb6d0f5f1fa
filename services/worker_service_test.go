package services

import (
	"context"
	"testing"

	"laundrypos/entity"
	"laundrypos/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newWorkerService(t *testing.T) (*WorkerService, *entity.Worker) {
	t.Helper()
	db := newServiceDB(t)
	svc := NewWorkerService(repository.NewWorkerRepository(db), NewAuditService(repository.NewAuditRepository(db)))
	admin := seedWorker(t, db, "admin@laundry.io", "secret123", entity.WorkerActive, entity.RoleAdmin)
	return svc, admin
}

func TestCreateWorkerGeneratesPassword(t *testing.T) {
	svc, admin := newWorkerService(t)
	out, err := svc.Create(context.Background(), adminSession(admin), CreateWorkerInput{
		FirstName:     "Ben",
		LastName:      "Reyes",
		Email:         "Ben@Laundry.io",
		ContactNumber: "09171234567",
		Roles:         []string{entity.RoleCashier},
	})
	require.NoError(t, err)

	assert.Regexp(t, `^pass-[A-Za-z0-9]{6}$`, out.InitialPassword)
	assert.Equal(t, "ben@laundry.io", out.Worker.Email)
	assert.Equal(t, entity.WorkerActive, out.Worker.Status)
	assert.Equal(t, []string{entity.RoleCashier}, out.Worker.RoleNames())
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(out.Worker.Password), []byte(out.InitialPassword)))
	assert.Equal(t, []string{entity.ActionCreateAccount}, auditActions(t, svc.Repo.DB))
}

func TestCreateWorkerValidation(t *testing.T) {
	svc, admin := newWorkerService(t)
	ctx := context.Background()
	base := CreateWorkerInput{FirstName: "Ben", LastName: "Reyes", Email: "ben@laundry.io", Roles: []string{entity.RoleCashier}}

	in := base
	in.Email = "admin@laundry.io"
	_, err := svc.Create(ctx, adminSession(admin), in)
	assert.ErrorIs(t, err, ErrEmailTaken)

	in = base
	in.ContactNumber = "12345"
	_, err = svc.Create(ctx, adminSession(admin), in)
	assert.ErrorIs(t, err, ErrInvalidInput)

	in = base
	in.Roles = nil
	_, err = svc.Create(ctx, adminSession(admin), in)
	assert.ErrorIs(t, err, ErrInvalidInput)

	in = base
	in.Roles = []string{"owner"}
	_, err = svc.Create(ctx, adminSession(admin), in)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSetStatus(t *testing.T) {
	svc, admin := newWorkerService(t)
	ctx := context.Background()
	other := seedWorker(t, svc.Repo.DB, "ben@laundry.io", "secret123", entity.WorkerActive, entity.RoleCashier)

	_, err := svc.SetStatus(ctx, adminSession(admin), admin.ID, entity.WorkerDeactivated)
	assert.ErrorIs(t, err, ErrSelfDeactivate)

	w, err := svc.SetStatus(ctx, adminSession(admin), other.ID, "deactivated")
	require.NoError(t, err)
	assert.Equal(t, entity.WorkerDeactivated, w.Status)

	_, err = svc.SetStatus(ctx, adminSession(admin), other.ID, "PAUSED")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateAndReplaceRoles(t *testing.T) {
	svc, admin := newWorkerService(t)
	ctx := context.Background()
	other := seedWorker(t, svc.Repo.DB, "ben@laundry.io", "secret123", entity.WorkerActive, entity.RoleCashier)

	email := "admin@laundry.io"
	_, err := svc.Update(ctx, adminSession(admin), other.ID, UpdateWorkerInput{Email: &email})
	assert.ErrorIs(t, err, ErrEmailTaken)

	addr := "Quezon City"
	w, err := svc.Update(ctx, adminSession(admin), other.ID, UpdateWorkerInput{Address: &addr})
	require.NoError(t, err)
	assert.Equal(t, "Quezon City", w.Address)

	w, err = svc.ReplaceRoles(ctx, adminSession(admin), other.ID, []string{entity.RoleInventory, entity.RoleCashier})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{entity.RoleInventory, entity.RoleCashier}, w.RoleNames())

	reloaded, err := svc.Repo.FindByID(ctx, other.ID)
	require.NoError(t, err)
	assert.Len(t, reloaded.Roles, 2)
}

func TestResetPassword(t *testing.T) {
	svc, admin := newWorkerService(t)
	ctx := context.Background()
	other := seedWorker(t, svc.Repo.DB, "ben@laundry.io", "secret123", entity.WorkerActive, entity.RoleCashier)

	out, err := svc.ResetPassword(ctx, adminSession(admin), other.ID)
	require.NoError(t, err)
	assert.Regexp(t, `^pass-[A-Za-z0-9]{6}$`, out.TemporaryPassword)

	stored, err := svc.Repo.FindByID(ctx, other.ID)
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte(out.TemporaryPassword)))
	assert.Error(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("secret123")))

	logs, err := svc.Audit.List(ctx, repository.AuditFilter{Action: entity.ActionUpdateAccount})
	require.NoError(t, err)
	require.NotEmpty(t, logs)
	assert.Equal(t, `Account "ben@laundry.io" password reset by Ana Cruz`, logs[0].Details)

	_, err = svc.ResetPassword(ctx, adminSession(admin), 9999)
	assert.True(t, IsNotFound(err))
}
