package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"net/mail"
	"regexp"
	"strings"

	"laundrypos/checkout"
	"laundrypos/entity"
	"laundrypos/repository"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const systemPage = "System Management"

var phPhone = regexp.MustCompile(`^(09|\+639)\d{9}$`)

var ErrSelfDeactivate = errors.New("cannot deactivate your own account")

type WorkerService struct {
	Repo  *repository.WorkerRepository
	Audit *AuditService
}

func NewWorkerService(repo *repository.WorkerRepository, audit *AuditService) *WorkerService {
	return &WorkerService{Repo: repo, Audit: audit}
}

type CreateWorkerInput struct {
	FirstName     string   `json:"firstName"`
	MiddleName    string   `json:"middleName"`
	LastName      string   `json:"lastName"`
	Email         string   `json:"email"`
	ContactNumber string   `json:"contactNumber"`
	Address       string   `json:"address"`
	Password      string   `json:"password"`
	Roles         []string `json:"roles"`
}

type UpdateWorkerInput struct {
	FirstName     *string `json:"firstName"`
	MiddleName    *string `json:"middleName"`
	LastName      *string `json:"lastName"`
	Email         *string `json:"email"`
	ContactNumber *string `json:"contactNumber"`
	Address       *string `json:"address"`
}

// CreateWorkerOut carries the initial password once so the admin can hand it
// over; it is never readable again.
type CreateWorkerOut struct {
	Worker          *entity.Worker `json:"worker"`
	InitialPassword string         `json:"initialPassword"`
}

// tempPassword mirrors the front desk format: "pass-" plus six alphanumerics.
func tempPassword() (string, error) {
	const chars = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	b := make([]byte, 6)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	for i := range b {
		b[i] = chars[int(b[i])%len(chars)]
	}
	return "pass-" + string(b), nil
}

func normalizeEmail(raw string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	if _, err := mail.ParseAddress(email); err != nil || email == "" {
		return "", invalid("invalid email")
	}
	return email, nil
}

func (s *WorkerService) List(ctx context.Context) ([]entity.Worker, error) {
	return s.Repo.List(ctx)
}

func (s *WorkerService) ListRoles(ctx context.Context) ([]entity.Role, error) {
	return s.Repo.ListRoles(ctx)
}

func (s *WorkerService) resolveRoles(ctx context.Context, names []string) ([]entity.Role, error) {
	if len(names) == 0 {
		return nil, invalid("select at least one role")
	}
	roles, err := s.Repo.FindRolesByName(ctx, names)
	if err != nil {
		return nil, err
	}
	seen := map[string]bool{}
	for _, r := range roles {
		seen[r.Name] = true
	}
	for _, n := range names {
		if !seen[n] {
			return nil, invalid("unknown role %q", n)
		}
	}
	return roles, nil
}

func (s *WorkerService) Create(ctx context.Context, sess checkout.Session, in CreateWorkerInput) (*CreateWorkerOut, error) {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	if in.FirstName == "" || in.LastName == "" {
		return nil, invalid("first and last name are required")
	}
	email, err := normalizeEmail(in.Email)
	if err != nil {
		return nil, err
	}
	contact := strings.TrimSpace(in.ContactNumber)
	if contact != "" && !phPhone.MatchString(contact) {
		return nil, invalid("contact number must look like 09XXXXXXXXX or +639XXXXXXXXX")
	}

	count, err := s.Repo.CountByEmail(ctx, email, 0)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrEmailTaken
	}
	roles, err := s.resolveRoles(ctx, in.Roles)
	if err != nil {
		return nil, err
	}

	password := in.Password
	if password == "" {
		if password, err = tempPassword(); err != nil {
			return nil, fmt.Errorf("generate password: %w", err)
		}
	} else if len(password) < 8 {
		return nil, invalid("password must be at least 8 characters")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.New("hash password failed")
	}

	w := &entity.Worker{
		FirstName:     in.FirstName,
		MiddleName:    strings.TrimSpace(in.MiddleName),
		LastName:      in.LastName,
		Email:         email,
		Password:      string(hashed),
		Status:        entity.WorkerActive,
		ContactNumber: contact,
		Address:       strings.TrimSpace(in.Address),
		Roles:         roles,
	}
	if err := s.Repo.Create(ctx, w); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	s.Audit.Try(ctx, sess, entity.ActionCreateAccount, fmt.Sprintf("Created Account %q", w.Email), systemPage)
	return &CreateWorkerOut{Worker: w, InitialPassword: password}, nil
}

func (s *WorkerService) Update(ctx context.Context, sess checkout.Session, id uint, in UpdateWorkerInput) (*entity.Worker, error) {
	u := map[string]any{}
	for col, v := range map[string]*string{
		"first_name": in.FirstName,
		"last_name":  in.LastName,
	} {
		if v == nil {
			continue
		}
		if strings.TrimSpace(*v) == "" {
			return nil, invalid("first and last name are required")
		}
		u[col] = strings.TrimSpace(*v)
	}
	if in.MiddleName != nil {
		u["middle_name"] = strings.TrimSpace(*in.MiddleName)
	}
	if in.Address != nil {
		u["address"] = strings.TrimSpace(*in.Address)
	}
	if in.ContactNumber != nil {
		contact := strings.TrimSpace(*in.ContactNumber)
		if contact != "" && !phPhone.MatchString(contact) {
			return nil, invalid("contact number must look like 09XXXXXXXXX or +639XXXXXXXXX")
		}
		u["contact_number"] = contact
	}
	if in.Email != nil {
		email, err := normalizeEmail(*in.Email)
		if err != nil {
			return nil, err
		}
		count, err := s.Repo.CountByEmail(ctx, email, id)
		if err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, ErrEmailTaken
		}
		u["email"] = email
	}
	if len(u) == 0 {
		return nil, invalid("nothing to update")
	}

	if err := s.Repo.Update(ctx, id, u); err != nil {
		return nil, err
	}
	w, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.Audit.Try(ctx, sess, entity.ActionUpdateAccount, fmt.Sprintf("Updated Account %q Information", w.Email), systemPage)
	return w, nil
}

// SetStatus activates or deactivates an account. A worker cannot deactivate
// the account they are logged in with.
func (s *WorkerService) SetStatus(ctx context.Context, sess checkout.Session, id uint, status string) (*entity.Worker, error) {
	status = strings.ToUpper(strings.TrimSpace(status))
	if status != entity.WorkerActive && status != entity.WorkerDeactivated {
		return nil, invalid("status must be ACTIVE or DEACTIVATED")
	}
	if status == entity.WorkerDeactivated && id == sess.WorkerID {
		return nil, ErrSelfDeactivate
	}
	if err := s.Repo.Update(ctx, id, map[string]any{"status": status}); err != nil {
		return nil, err
	}
	w, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	verb := "REACTIVATED"
	if status == entity.WorkerDeactivated {
		verb = "DEACTIVATED"
	}
	s.Audit.Try(ctx, sess, entity.ActionUpdateAccount, fmt.Sprintf("Account %q %s by %s", w.Email, verb, sess.Name), systemPage)
	return w, nil
}

func (s *WorkerService) ReplaceRoles(ctx context.Context, sess checkout.Session, id uint, names []string) (*entity.Worker, error) {
	w, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	roles, err := s.resolveRoles(ctx, names)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.ReplaceRoles(ctx, w, roles); err != nil {
		return nil, err
	}
	w.Roles = roles
	s.Audit.Try(ctx, sess, entity.ActionUpdateAccount,
		fmt.Sprintf("Updated Account %q roles to %s", w.Email, strings.Join(w.RoleNames(), ", ")), systemPage)
	return w, nil
}

type ResetPasswordOut struct {
	Worker            *entity.Worker `json:"worker"`
	TemporaryPassword string         `json:"temporaryPassword"`
}

// ResetPassword replaces a worker's password with a fresh temporary one that
// the admin hands over in person.
func (s *WorkerService) ResetPassword(ctx context.Context, sess checkout.Session, id uint) (*ResetPasswordOut, error) {
	w, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	password, err := tempPassword()
	if err != nil {
		return nil, fmt.Errorf("generate password: %w", err)
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.New("hash password failed")
	}
	if err := s.Repo.Update(ctx, w.ID, map[string]any{"password": string(hashed)}); err != nil {
		return nil, err
	}
	s.Audit.Try(ctx, sess, entity.ActionUpdateAccount, fmt.Sprintf("Account %q password reset by %s", w.Email, sess.Name), systemPage)
	return &ResetPasswordOut{Worker: w, TemporaryPassword: password}, nil
}
