package entity

import (
	"strings"

	"gorm.io/gorm"
)

type Worker struct {
	gorm.Model
	FirstName     string `gorm:"size:100;not null" json:"firstName"`
	MiddleName    string `gorm:"size:100" json:"middleName"`
	LastName      string `gorm:"size:100;not null" json:"lastName"`
	Email         string `gorm:"uniqueIndex;not null" json:"email"`
	Password      string `json:"-"`
	Status        string `gorm:"size:16;not null;default:ACTIVE" json:"status"`
	ContactNumber string `gorm:"size:32" json:"contactNumber"`
	Address       string `json:"address"`

	Roles []Role `gorm:"many2many:worker_roles;" json:"roles"`
}

func (w *Worker) FullName() string {
	parts := []string{w.FirstName, w.MiddleName, w.LastName}
	out := make([]string, 0, 3)
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, " ")
}

func (w *Worker) RoleNames() []string {
	names := make([]string, 0, len(w.Roles))
	for _, r := range w.Roles {
		names = append(names, r.Name)
	}
	return names
}

type Role struct {
	gorm.Model
	Name       string `gorm:"size:50;uniqueIndex;not null" json:"name"`
	AccessPage string `json:"accessPage"`
}
