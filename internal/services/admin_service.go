package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/multicomhq/chitfund-backend/internal/apperrors"
	"github.com/multicomhq/chitfund-backend/internal/models"
	"github.com/multicomhq/chitfund-backend/internal/repositories"
	"github.com/multicomhq/chitfund-backend/pkg/token"
	"golang.org/x/crypto/bcrypt"
)

// AdminService handles operator authentication.
type AdminService struct {
	adminRepo repositories.AdminRepository
	tokens    *token.Service
}

// NewAdminService creates a new AdminService
func NewAdminService(adminRepo repositories.AdminRepository, tokens *token.Service) *AdminService {
	return &AdminService{
		adminRepo: adminRepo,
		tokens:    tokens,
	}
}

// Login verifies credentials and issues an admin session token. The same
// generic error covers unknown usernames and wrong passwords.
func (s *AdminService) Login(ctx context.Context, username, password string) (*models.Admin, string, error) {
	admin, err := s.adminRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, "", apperrors.ErrUnauthenticated
		}
		return nil, "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(password)) != nil {
		return nil, "", apperrors.ErrUnauthenticated
	}

	tok, err := s.tokens.IssueAdminToken(admin.ID.Hex())
	if err != nil {
		return nil, "", err
	}
	return admin, tok, nil
}

// Register creates an operator account with a bcrypt-hashed password. Intended
// for initial setup; duplicate usernames fail with Conflict.
func (s *AdminService) Register(ctx context.Context, username, password, role string) (*models.Admin, string, error) {
	if role == "" {
		role = models.RoleAdmin
	}
	if !models.ValidRole(role) {
		return nil, "", fmt.Errorf("%w: unknown role %q", apperrors.ErrValidation, role)
	}

	if _, err := s.adminRepo.FindByUsername(ctx, username); err == nil {
		return nil, "", fmt.Errorf("%w: admin already exists", apperrors.ErrConflict)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	admin := &models.Admin{
		Username: username,
		Password: string(hash),
		Role:     role,
	}
	if err := s.adminRepo.Create(ctx, admin); err != nil {
		return nil, "", err
	}

	tok, err := s.tokens.IssueAdminToken(admin.ID.Hex())
	if err != nil {
		return nil, "", err
	}
	return admin, tok, nil
}
