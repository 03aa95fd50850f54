package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	dom "example.com/cafe-admin/internal/domain/user"
)

type PasswordHasher interface {
	Hash(password string) (string, error)
}

type Service struct {
	repo   dom.Repository
	hasher PasswordHasher
}

func NewService(repo dom.Repository, hasher PasswordHasher) *Service {
	return &Service{repo: repo, hasher: hasher}
}

type CreateUserInput struct {
	ExecutorRole dom.RoleCode
	Name         string
	Email        string
	Password     string
	RoleCode     dom.RoleCode
}

func (s *Service) CreateUser(ctx context.Context, in CreateUserInput) (*dom.User, error) {
	if !dom.CanManageUsers(in.ExecutorRole) {
		return nil, dom.ErrForbidden
	}
	return s.create(ctx, in)
}

func (s *Service) create(ctx context.Context, in CreateUserInput) (*dom.User, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if name == "" || email == "" || in.Password == "" {
		return nil, dom.ErrInvalidUser
	}

	role := in.RoleCode
	if role == "" {
		role = dom.RoleCodeStaff
	}
	if !role.IsValid() {
		return nil, dom.ErrInvalidRoleCode
	}

	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return nil, dom.ErrEmailAlreadyUsed
	} else if !errors.Is(err, dom.ErrUserNotFound) {
		return nil, err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	return s.repo.Create(ctx, &dom.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		RoleCode:     role,
	})
}

func (s *Service) GetUser(ctx context.Context, id string) (*dom.User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListUsers(ctx context.Context) ([]*dom.User, error) {
	return s.repo.List(ctx)
}

func (s *Service) DeleteUser(ctx context.Context, executorRole dom.RoleCode, id string) error {
	if !dom.CanManageUsers(executorRole) {
		return dom.ErrForbidden
	}
	return s.repo.Delete(ctx, id)
}

// EnsureAdmin creates the bootstrap administrator unless an account with
// that email already exists. An empty email or password is a no-op.
func (s *Service) EnsureAdmin(ctx context.Context, name, email, password string) error {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil
	}
	if name == "" {
		name = "Administrator"
	}

	u, err := s.create(ctx, CreateUserInput{
		Name:     name,
		Email:    email,
		Password: password,
		RoleCode: dom.RoleCodeAdmin,
	})
	if errors.Is(err, dom.ErrEmailAlreadyUsed) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("bootstrap admin: %w", err)
	}

	slog.InfoContext(ctx, "bootstrap admin created", slog.String("user_id", u.ID), slog.String("email", u.Email))
	return nil
}
