package services

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"laundrypos/checkout"
	"laundrypos/configs"
	"laundrypos/entity"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var dbSeq atomic.Int64

func newServiceDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:svc_%d?mode=memory&cache=shared", dbSeq.Add(1))
	db, err := configs.OpenDB("sqlite", dsn)
	require.NoError(t, err)
	require.NoError(t, configs.Migrate(db))
	require.NoError(t, configs.SeedRoles(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func seedWorker(t *testing.T, db *gorm.DB, email, password, status string, roles ...string) *entity.Worker {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	var rs []entity.Role
	if len(roles) > 0 {
		require.NoError(t, db.Where("name IN ?", roles).Find(&rs).Error)
	}
	w := &entity.Worker{
		FirstName: "Ana",
		LastName:  "Cruz",
		Email:     email,
		Password:  string(hash),
		Status:    status,
		Roles:     rs,
	}
	require.NoError(t, db.Create(w).Error)
	return w
}

func seedOrder(t *testing.T, db *gorm.DB, receipt, status, method, total string, at time.Time) *entity.Order {
	t.Helper()
	o := &entity.Order{
		ReceiptID:     receipt,
		Status:        status,
		TotalAmount:   decimal.RequireFromString(total),
		PaymentMethod: method,
		Model:         gorm.Model{CreatedAt: at, UpdatedAt: at},
	}
	require.NoError(t, db.Create(o).Error)
	return o
}

func adminSession(w *entity.Worker) checkout.Session {
	return checkout.Session{WorkerID: w.ID, Email: w.Email, Name: w.FullName(), Roles: []string{entity.RoleAdmin}}
}

func auditActions(t *testing.T, db *gorm.DB) []string {
	t.Helper()
	var out []string
	require.NoError(t, db.Model(&entity.AuditLog{}).Order("id ASC").Pluck("action_type", &out).Error)
	return out
}
