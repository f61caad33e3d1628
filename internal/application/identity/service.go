package identity

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/socialboost/backend/internal/domain/identity"
	"github.com/socialboost/backend/internal/domain/shared"
)

// TokenIssuer signs access tokens for authenticated users.
// The JWT implementation lives in infrastructure/auth.
type TokenIssuer interface {
	Issue(email string, role shared.Role) (string, error)
}

// Service handles account registration and login
type Service struct {
	userRepo identity.Repository
	tokens   TokenIssuer
}

// NewService creates a new identity Service
func NewService(userRepo identity.Repository, tokens TokenIssuer) *Service {
	return &Service{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

// Register creates a customer account and signs them in
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	exists, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "an account with this email already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user, err := identity.NewUser(req.Name, email, string(hash), shared.RoleUser)
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	return s.authResponse(user)
}

// Login verifies credentials and returns a signed token.
// Unknown email and wrong password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, shared.NewDomainError("UNAUTHORIZED", "invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, shared.NewDomainError("UNAUTHORIZED", "invalid email or password")
	}

	return s.authResponse(user)
}

// GetProfile returns the account behind the authenticated actor
func (s *Service) GetProfile(ctx context.Context, actor shared.Actor) (*UserResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, actor.Email)
	if err != nil {
		return nil, err
	}
	response := ToUserResponse(user)
	return &response, nil
}

func (s *Service) authResponse(user *identity.User) (*AuthResponse, error) {
	token, err := s.tokens.Issue(user.Email, user.Role)
	if err != nil {
		return nil, err
	}
	return &AuthResponse{
		Token: token,
		User:  ToUserResponse(user),
	}, nil
}
