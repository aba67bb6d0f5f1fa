package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"laundrypos/checkout"
	"laundrypos/entity"
	"laundrypos/repository"
	"laundrypos/utils"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const landingPage = "Landing Page"

// AuthService handles worker login and the logged-in worker's own account.
type AuthService struct {
	workerRepo *repository.WorkerRepository
	audit      *AuditService
	jwtSecret  string
	jwtTTL     time.Duration
}

func NewAuthService(repo *repository.WorkerRepository, audit *AuditService, secret string, ttl time.Duration) *AuthService {
	return &AuthService{
		workerRepo: repo,
		audit:      audit,
		jwtSecret:  secret,
		jwtTTL:     ttl,
	}
}

// SessionOf builds the session a token is issued for.
func SessionOf(w *entity.Worker) checkout.Session {
	return checkout.Session{
		WorkerID: w.ID,
		Email:    w.Email,
		Name:     w.FullName(),
		Roles:    w.RoleNames(),
	}
}

// Login checks the credentials, rejects deactivated accounts and issues a JWT.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *entity.Worker, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	w, err := s.workerRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(w.Password), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}
	if w.Status == entity.WorkerDeactivated {
		return "", nil, ErrAccountDeactivated
	}

	sess := SessionOf(w)
	token, err := utils.GenerateToken(sess, s.jwtSecret, s.jwtTTL)
	if err != nil {
		return "", nil, fmt.Errorf("generate token: %w", err)
	}

	s.audit.Try(ctx, sess, entity.ActionLogIn, fmt.Sprintf("Account %q log in the system", w.Email), landingPage)
	return token, w, nil
}

func (s *AuthService) Me(ctx context.Context, workerID uint) (*entity.Worker, error) {
	return s.workerRepo.FindByID(ctx, workerID)
}

func (s *AuthService) ChangePassword(ctx context.Context, sess checkout.Session, current, next string) error {
	if len(next) < 8 {
		return invalid("new password must be at least 8 characters")
	}
	w, err := s.workerRepo.FindByID(ctx, sess.WorkerID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(w.Password), []byte(current)); err != nil {
		return ErrInvalidCredentials
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return errors.New("hash password failed")
	}
	if err := s.workerRepo.Update(ctx, w.ID, map[string]any{"password": string(hashed)}); err != nil {
		return err
	}
	s.audit.Try(ctx, sess, entity.ActionUpdateAccount, fmt.Sprintf("Account %q changed password", w.Email), landingPage)
	return nil
}

// Logout only records the event; tokens are stateless and expire on their own.
func (s *AuthService) Logout(ctx context.Context, sess checkout.Session) {
	s.audit.Try(ctx, sess, entity.ActionLogOut, fmt.Sprintf("Account %q log off the system", sess.Email), landingPage)
}
